package feed

// Flags are the client-local, per-dish interaction flags. They are distinct
// from server truth: a toggle flips them immediately and the remote call
// that follows never rolls them back.
type Flags struct {
	Liked      bool
	Bookmarked bool
}

// Interactions holds flags keyed by dish ID. Entries are created lazily on
// first use, survive navigation away and back, and live as long as the
// engine. Nothing here is persisted; a fresh engine starts at defaults.
type Interactions struct {
	flags map[string]Flags
}

func NewInteractions() *Interactions {
	return &Interactions{flags: make(map[string]Flags)}
}

// Flags returns the current flags for the dish, defaulting to all-false.
func (s *Interactions) Flags(dishID string) Flags {
	return s.flags[dishID]
}

// ToggleLiked flips the liked flag and returns the new value.
func (s *Interactions) ToggleLiked(dishID string) bool {
	f := s.flags[dishID]
	f.Liked = !f.Liked
	s.flags[dishID] = f
	return f.Liked
}

// ToggleBookmarked flips the bookmarked flag and returns the new value.
func (s *Interactions) ToggleBookmarked(dishID string) bool {
	f := s.flags[dishID]
	f.Bookmarked = !f.Bookmarked
	s.flags[dishID] = f
	return f.Bookmarked
}
