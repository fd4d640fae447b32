package viewer

import "sync"

// Keys understood by the lightbox.
const (
	KeyEscape     = "Escape"
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
)

// KeyHandler receives key names such as "Escape" or "ArrowLeft".
type KeyHandler func(key string)

// KeySource is the host's global keyboard event target.
type KeySource interface {
	// AddKeyListener registers h and returns the function that removes it.
	AddKeyListener(h KeyHandler) (remove func())
}

// Dispatcher is an in-process KeySource. Hosts feed it key events with
// Dispatch; it also lets callers count attached listeners.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]KeyHandler
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]KeyHandler)}
}

// AddKeyListener implements KeySource.
func (d *Dispatcher) AddKeyListener(h KeyHandler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextID
	d.nextID++
	d.listeners[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			delete(d.listeners, id)
			d.mu.Unlock()
		})
	}
}

// Dispatch delivers key to every attached listener.
func (d *Dispatcher) Dispatch(key string) {
	d.mu.Lock()
	handlers := make([]KeyHandler, 0, len(d.listeners))
	for _, h := range d.listeners {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(key)
	}
}

// Listeners reports how many listeners are attached.
func (d *Dispatcher) Listeners() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}
