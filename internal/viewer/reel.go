package viewer

import (
	"context"
	"sync"
	"time"
)

// DefaultReelSpeed is the scroll speed in pixels per second.
const DefaultReelSpeed = 40.0

// Reel is the auto-scrolling image strip. It renders the image sequence twice
// back to back and wraps the offset to zero once it passes the end of the
// first copy, so the strip appears endless.
//
// A Reel does not own a clock. Whoever hosts the frames drives it: Run
// takes ticks from a Go timer, while server-rendered pages hand the loop to
// the browser as a CSS animation lasting Period, paused on hover and touch
// the same way PointerEnter and TouchStart pause Tick.
type Reel struct {
	mu      sync.Mutex
	images  []string
	width   float64
	speed   float64
	offset  float64
	paused  bool
	pointer bool
	touch   bool
}

// NewReel builds a reel whose single sequence is width pixels wide.
func NewReel(images []string, width, speed float64) *Reel {
	if speed <= 0 {
		speed = DefaultReelSpeed
	}
	return &Reel{
		images: append([]string(nil), images...),
		width:  width,
		speed:  speed,
	}
}

// Active reports whether the reel scrolls at all.
func (r *Reel) Active() bool { return len(r.images) >= 2 && r.width > 0 }

// Frames is the doubled sequence to lay out.
func (r *Reel) Frames() []string {
	if !r.Active() {
		return append([]string(nil), r.images...)
	}
	frames := make([]string, 0, 2*len(r.images))
	frames = append(frames, r.images...)
	return append(frames, r.images...)
}

// Tick advances the offset by speed*dt unless paused.
func (r *Reel) Tick(dt time.Duration) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Active() || r.paused || dt <= 0 {
		return r.offset
	}
	r.offset += r.speed * dt.Seconds()
	if r.offset >= r.width {
		r.offset = 0
	}
	return r.offset
}

// Period is how long one unpaused loop over the first copy takes. It is
// zero for an inactive reel.
func (r *Reel) Period() time.Duration {
	if !r.Active() {
		return 0
	}
	return time.Duration(r.width / r.speed * float64(time.Second))
}

// Offset is the current scroll position.
func (r *Reel) Offset() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.offset
}

// Paused reports whether user interaction has halted scrolling.
func (r *Reel) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// PointerEnter pauses the reel while a pointer hovers it.
func (r *Reel) PointerEnter() { r.setHold(&r.pointer, true) }

// PointerLeave releases the hover pause.
func (r *Reel) PointerLeave() { r.setHold(&r.pointer, false) }

// TouchStart pauses the reel while a finger rests on it.
func (r *Reel) TouchStart() { r.setHold(&r.touch, true) }

// TouchEnd releases the touch pause. The reel resumes only when neither
// pointer nor touch holds it.
func (r *Reel) TouchEnd() { r.setHold(&r.touch, false) }

func (r *Reel) setHold(flag *bool, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	*flag = on
	r.paused = r.pointer || r.touch
}

// Run advances the reel on every frame received until ctx is done or frames
// is closed. draw, when set, receives the offset after each tick.
func (r *Reel) Run(ctx context.Context, frames <-chan time.Time, draw func(offset float64)) {
	if !r.Active() {
		return
	}
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case now, ok := <-frames:
			if !ok {
				return
			}
			var dt time.Duration
			if !last.IsZero() {
				dt = now.Sub(last)
			}
			last = now
			offset := r.Tick(dt)
			if draw != nil {
				draw(offset)
			}
		}
	}
}
