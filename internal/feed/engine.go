package feed

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/bitemap/bitemap-cli/internal/dish"
)

// Engine composes the navigator, the single live playback controller and the
// interaction store over one fixed dish sequence. Exactly one dish is active
// at a time; navigating tears down the previous clip before the next one
// starts, so two clips never overlap.
//
// The engine is single-threaded by contract: the UI event loop owns it, and
// remote persistence runs outside it, reporting failures back through
// ReportFailure only.
type Engine struct {
	dishes       []dish.Dish
	nav          Navigator
	playback     *Playback
	interactions *Interactions
	log          zerolog.Logger
}

func NewEngine(dishes []dish.Dish, logger zerolog.Logger) *Engine {
	e := &Engine{
		dishes:       append([]dish.Dish(nil), dishes...),
		nav:          NewNavigator(len(dishes)),
		interactions: NewInteractions(),
		log:          logger,
	}
	e.mountCurrent()
	return e
}

// Replace swaps in a whole new dish sequence. Refresh replaces, never merges.
// The index resets to the first dish; an empty sequence resets to the empty
// state. Interaction flags are kept: they are keyed by dish ID and the store
// lives as long as the engine.
func (e *Engine) Replace(dishes []dish.Dish) {
	e.unmountCurrent()
	e.dishes = append([]dish.Dish(nil), dishes...)
	e.nav = NewNavigator(len(e.dishes))
	e.mountCurrent()
}

func (e *Engine) Empty() bool { return len(e.dishes) == 0 }

func (e *Engine) Len() int { return len(e.dishes) }

// Current reports the active index. ok is false for an empty feed.
func (e *Engine) Current() (int, bool) { return e.nav.Current() }

// Active returns the dish under the cursor.
func (e *Engine) Active() (dish.Dish, bool) {
	idx, ok := e.nav.Current()
	if !ok {
		return dish.Dish{}, false
	}
	return e.dishes[idx], true
}

// Playback exposes the controller for the active dish, nil when the feed is
// empty.
func (e *Engine) Playback() *Playback { return e.playback }

// ActiveFlags returns the interaction flags for the active dish.
func (e *Engine) ActiveFlags() Flags {
	d, ok := e.Active()
	if !ok {
		return Flags{}
	}
	return e.interactions.Flags(d.ID)
}

// Flags returns the interaction flags for any dish by ID.
func (e *Engine) Flags(dishID string) Flags {
	return e.interactions.Flags(dishID)
}

// Apply runs one navigation intent. Navigating to the index already shown
// (a one-dish feed wrapping onto itself) leaves the running clip alone
// instead of restarting it.
func (e *Engine) Apply(intent Intent) (changed bool) {
	before, ok := e.nav.Current()
	if !ok {
		return false
	}
	e.nav.Apply(intent)
	after, _ := e.nav.Current()
	if after == before {
		return false
	}
	e.unmountCurrent()
	e.mountCurrent()
	return true
}

// Tick advances the active clip; the clip loops at its length without
// moving the feed.
func (e *Engine) Tick(dt time.Duration) {
	if e.playback != nil {
		e.playback.Advance(dt)
	}
}

// TogglePlayback is the tap on the media surface.
func (e *Engine) TogglePlayback() {
	if e.playback != nil {
		e.playback.Toggle()
	}
}

// ToggleLiked optimistically flips the liked flag for the active dish and
// returns its ID and new value. The remote record call is the caller's to
// fire; its outcome never reaches back here.
func (e *Engine) ToggleLiked() (dishID string, liked, ok bool) {
	d, ok := e.Active()
	if !ok {
		return "", false, false
	}
	return d.ID, e.interactions.ToggleLiked(d.ID), true
}

// ToggleBookmarked is the bookmark counterpart of ToggleLiked.
func (e *Engine) ToggleBookmarked() (dishID string, bookmarked, ok bool) {
	d, ok := e.Active()
	if !ok {
		return "", false, false
	}
	return d.ID, e.interactions.ToggleBookmarked(d.ID), true
}

// Markers is the derived progress indicator: one marker per dish, the
// active one set.
func (e *Engine) Markers() []bool {
	idx, ok := e.nav.Current()
	if !ok {
		return nil
	}
	markers := make([]bool, len(e.dishes))
	markers[idx] = true
	return markers
}

// ReportFailure is the observability sink for fire-and-forget calls. Local
// state is already committed by the time a failure lands here, so it is
// logged and nothing else.
func (e *Engine) ReportFailure(op, dishID string, err error) {
	if err == nil {
		return
	}
	e.log.Warn().Str("op", op).Str("dish_id", dishID).Err(err).Msg("persistence call failed")
}

func (e *Engine) mountCurrent() {
	d, ok := e.Active()
	if !ok {
		e.playback = nil
		return
	}
	e.playback = NewPlayback(d.VideoURL, d.ClipLength())
	e.playback.OnBecomeActive()
}

func (e *Engine) unmountCurrent() {
	if e.playback != nil {
		e.playback.OnBecomeInactive()
		e.playback = nil
	}
}
