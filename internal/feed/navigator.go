package feed

// Intent is the closed set of navigation intents. Every raw input channel
// (tap zones, arrow keys) resolves to exactly one of these two.
type Intent int

const (
	IntentAdvance Intent = iota
	IntentRetreat
)

func (i Intent) String() string {
	if i == IntentRetreat {
		return "retreat"
	}
	return "advance"
}

// IntentForKey maps a key name to a navigation intent. Up retreats toward
// earlier dishes, down advances, matching the vertical swipe directions.
func IntentForKey(key string) (Intent, bool) {
	switch key {
	case "up":
		return IntentRetreat, true
	case "down":
		return IntentAdvance, true
	}
	return 0, false
}

// IntentForTap maps a tap at row y within a viewport of the given height.
// The upper half retreats, the lower half advances.
func IntentForTap(y, height int) (Intent, bool) {
	if height <= 0 || y < 0 || y >= height {
		return 0, false
	}
	if y < height/2 {
		return IntentRetreat, true
	}
	return IntentAdvance, true
}

// Navigator owns the current index into a fixed-size collection and applies
// wraparound advance/retreat. Empty collections have no current index.
type Navigator struct {
	size    int
	current int
}

func NewNavigator(size int) Navigator {
	if size < 0 {
		size = 0
	}
	return Navigator{size: size}
}

func (n Navigator) Size() int { return n.size }

// Current reports the active index. ok is false when the collection is empty.
func (n Navigator) Current() (int, bool) {
	if n.size == 0 {
		return 0, false
	}
	return n.current, true
}

func (n *Navigator) Advance() {
	if n.size == 0 {
		return
	}
	n.current = (n.current + 1) % n.size
}

func (n *Navigator) Retreat() {
	if n.size == 0 {
		return
	}
	n.current = (n.current - 1 + n.size) % n.size
}

func (n *Navigator) Apply(intent Intent) {
	if intent == IntentRetreat {
		n.Retreat()
		return
	}
	n.Advance()
}
