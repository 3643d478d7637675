package chatclient

// DefaultScrollThreshold is how close to the bottom, in pixels, the
// viewport must be for a new message to pull it down.
const DefaultScrollThreshold = 100.0

// ScrollAnchor decides whether the view follows new messages. A reader
// who has scrolled up past the threshold is never yanked back down.
type ScrollAnchor struct {
	Threshold float64

	offset float64 // current distance from the bottom
}

func NewScrollAnchor() *ScrollAnchor {
	return &ScrollAnchor{Threshold: DefaultScrollThreshold}
}

// SetOffset records the viewport's distance from the bottom; call it on
// every scroll event.
func (a *ScrollAnchor) SetOffset(px float64) {
	if px < 0 {
		px = 0
	}
	a.offset = px
}

// ShouldFollow reports whether an append may move the scroll position,
// judged at the time of the mutation.
func (a *ScrollAnchor) ShouldFollow() bool {
	return a.offset <= a.Threshold
}

// Followed resets the offset after the view snapped to the newest
// message.
func (a *ScrollAnchor) Followed() {
	a.offset = 0
}
