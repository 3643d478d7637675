package chatclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollAnchorFollowsNearBottom(t *testing.T) {
	a := NewScrollAnchor()

	assert.True(t, a.ShouldFollow(), "fresh anchor sits at the bottom")

	a.SetOffset(40)
	assert.True(t, a.ShouldFollow())

	a.SetOffset(DefaultScrollThreshold)
	assert.True(t, a.ShouldFollow(), "the threshold itself still follows")
}

func TestScrollAnchorHoldsWhenScrolledUp(t *testing.T) {
	a := NewScrollAnchor()

	a.SetOffset(DefaultScrollThreshold + 1)
	assert.False(t, a.ShouldFollow(), "a reader scrolled past the threshold is never yanked down")
}

func TestScrollAnchorFollowedResets(t *testing.T) {
	a := NewScrollAnchor()

	a.SetOffset(30)
	a.Followed()
	assert.True(t, a.ShouldFollow())

	a.SetOffset(-5)
	assert.True(t, a.ShouldFollow(), "negative offsets clamp to the bottom")
}
