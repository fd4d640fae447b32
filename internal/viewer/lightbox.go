package viewer

import "fmt"

// Action is what a bound key does to the lightbox.
type Action string

const (
	ActionClose Action = "close"
	ActionNext  Action = "next"
	ActionPrev  Action = "prev"
)

var lightboxBindings = map[string]Action{
	KeyEscape:     ActionClose,
	KeyArrowRight: ActionNext,
	KeyArrowLeft:  ActionPrev,
}

// Lightbox is the full-screen image viewer. The zero value is a closed,
// empty viewer without keyboard support.
type Lightbox struct {
	keys   KeySource
	detach func()

	open   bool
	images []string
	index  int
}

// NewLightbox returns a closed lightbox that binds keys on keys while open.
// keys may be nil when the host has no keyboard.
func NewLightbox(keys KeySource) *Lightbox {
	return &Lightbox{keys: keys}
}

// Open shows images starting at index. Any state left from a previous
// session is replaced. The index is clamped into range for nonempty lists.
func (l *Lightbox) Open(images []string, index int) {
	l.images = append([]string(nil), images...)
	l.index = clamp(index, len(l.images))
	l.open = true
	l.attach()
}

// Close hides the viewer and releases its key listener. The index is kept
// until the next Open.
func (l *Lightbox) Close() {
	l.open = false
	l.release()
}

// Dispose releases host resources; call it when the view is torn down.
func (l *Lightbox) Dispose() {
	l.Close()
}

// Next advances with wrap-around.
func (l *Lightbox) Next() {
	if n := len(l.images); n > 0 {
		l.index = (l.index + 1) % n
	}
}

// Prev retreats with wrap-around.
func (l *Lightbox) Prev() {
	if n := len(l.images); n > 0 {
		l.index = (l.index - 1 + n) % n
	}
}

// IsOpen reports whether the viewer is shown.
func (l *Lightbox) IsOpen() bool { return l.open }

// Index is the position of the current image.
func (l *Lightbox) Index() int { return l.index }

// Images returns the list being paged.
func (l *Lightbox) Images() []string { return l.images }

// Current returns the current image URL, or "" for an empty list.
func (l *Lightbox) Current() string {
	if len(l.images) == 0 {
		return ""
	}
	return l.images[l.index]
}

// Position is the "current / total" indicator.
func (l *Lightbox) Position() string {
	if len(l.images) == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", l.index+1, len(l.images))
}

// NextIndex is the index Next would move to.
func (l *Lightbox) NextIndex() int {
	if n := len(l.images); n > 0 {
		return (l.index + 1) % n
	}
	return 0
}

// PrevIndex is the index Prev would move to.
func (l *Lightbox) PrevIndex() int {
	if n := len(l.images); n > 0 {
		return (l.index - 1 + n) % n
	}
	return 0
}

// KeyBindings lists the active key bindings. It is empty while closed.
func (l *Lightbox) KeyBindings() map[string]Action {
	if !l.open {
		return map[string]Action{}
	}
	bindings := make(map[string]Action, len(lightboxBindings))
	for k, a := range lightboxBindings {
		bindings[k] = a
	}
	return bindings
}

// HandleKey applies the binding for key, if any, while open.
func (l *Lightbox) HandleKey(key string) {
	if !l.open {
		return
	}
	switch lightboxBindings[key] {
	case ActionClose:
		l.Close()
	case ActionNext:
		l.Next()
	case ActionPrev:
		l.Prev()
	}
}

func (l *Lightbox) attach() {
	if l.keys == nil || l.detach != nil {
		return
	}
	l.detach = l.keys.AddKeyListener(l.HandleKey)
}

func (l *Lightbox) release() {
	if l.detach == nil {
		return
	}
	l.detach()
	l.detach = nil
}

func clamp(index, n int) int {
	if n == 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
