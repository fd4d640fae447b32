package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var photos = []string{"a.jpg", "b.jpg", "c.jpg"}

func TestLightboxOpenClampsIndex(t *testing.T) {
	lb := NewLightbox(nil)

	lb.Open(photos, 7)
	assert.True(t, lb.IsOpen())
	assert.Equal(t, 2, lb.Index())
	assert.Equal(t, "3 / 3", lb.Position())

	lb.Open(photos, -4)
	assert.Equal(t, 0, lb.Index())
	assert.Equal(t, "a.jpg", lb.Current())
}

func TestLightboxOpenResetsPreviousSession(t *testing.T) {
	lb := NewLightbox(nil)
	lb.Open(photos, 2)
	lb.Close()
	assert.Equal(t, 2, lb.Index(), "close keeps the index")

	lb.Open([]string{"x.jpg", "y.jpg"}, 0)
	assert.Equal(t, 0, lb.Index())
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, lb.Images())
}

func TestLightboxWrapAround(t *testing.T) {
	for n := 1; n <= 5; n++ {
		images := make([]string, n)
		for i := range images {
			images[i] = string(rune('a' + i))
		}
		for start := 0; start < n; start++ {
			lb := NewLightbox(nil)
			lb.Open(images, start)
			lb.Next()
			assert.GreaterOrEqual(t, lb.Index(), 0)
			assert.Less(t, lb.Index(), n)
			lb.Prev()
			assert.Equal(t, start, lb.Index(), "n=%d start=%d", n, start)
		}
	}

	lb := NewLightbox(nil)
	lb.Open(photos, 2)
	lb.Next()
	assert.Equal(t, 0, lb.Index())
	lb.Prev()
	lb.Prev()
	assert.Equal(t, 1, lb.Index())
}

func TestLightboxEmptyList(t *testing.T) {
	lb := NewLightbox(nil)
	lb.Open(nil, 3)
	lb.Next()
	lb.Prev()
	assert.Equal(t, 0, lb.Index())
	assert.Equal(t, "", lb.Current())
	assert.Equal(t, "", lb.Position())
}

func TestLightboxKeyboard(t *testing.T) {
	keys := NewDispatcher()
	lb := NewLightbox(keys)
	assert.Empty(t, lb.KeyBindings())

	lb.Open(photos, 0)
	require.Equal(t, 1, keys.Listeners())
	assert.Equal(t, ActionNext, lb.KeyBindings()[KeyArrowRight])

	keys.Dispatch(KeyArrowRight)
	assert.Equal(t, 1, lb.Index())
	keys.Dispatch(KeyArrowLeft)
	keys.Dispatch(KeyArrowLeft)
	assert.Equal(t, 2, lb.Index())
	keys.Dispatch("Enter")
	assert.Equal(t, 2, lb.Index())

	keys.Dispatch(KeyEscape)
	assert.False(t, lb.IsOpen())
	assert.Equal(t, 0, keys.Listeners())
}

func TestLightboxListenersDoNotAccumulate(t *testing.T) {
	keys := NewDispatcher()
	lb := NewLightbox(keys)

	for i := 0; i < 10; i++ {
		lb.Open(photos, i)
		lb.Open(photos, 0)
		assert.Equal(t, 1, keys.Listeners())
		lb.Close()
		assert.Equal(t, 0, keys.Listeners())
	}

	lb.Open(photos, 0)
	lb.Dispose()
	assert.Equal(t, 0, keys.Listeners())
	lb.Dispose()
	assert.Equal(t, 0, keys.Listeners())
}
