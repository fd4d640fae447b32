// Package site holds the top-level page state of the public website: which
// view is shown, which overlays are open and the transient notification.
package site

import (
	"fmt"
	"strings"
	"time"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 5 * time.Second

// View is a main page state.
type View string

const (
	ViewHome     View = "home"
	ViewFAQ      View = "faq"
	ViewProperty View = "property"
)

// LightboxOverlay is the open media viewer.
type LightboxOverlay struct {
	Images []string
	Index  int
}

// ApplyOverlay is the open application panel for one room.
type ApplyOverlay struct {
	PropertyID string
	RoomID     string
}

// Notification is a transient banner message.
type Notification struct {
	Message   string
	ExpiresAt time.Time
}

// State is the whole page state. Main view and overlays change
// independently.
type State struct {
	View        View
	PropertyID  string
	ScrollToTop bool

	Lightbox *LightboxOverlay
	Apply    *ApplyOverlay
	Admin    bool

	notification *Notification
}

// New starts on the home view with nothing open.
func New() *State {
	return &State{View: ViewHome}
}

// Key renders the main state as "home", "faq" or "property:<id>".
func (s *State) Key() string {
	if s.View == ViewProperty {
		return fmt.Sprintf("%s:%s", ViewProperty, s.PropertyID)
	}
	return string(s.View)
}

// ParseKey restores a main state from its Key form.
func ParseKey(key string) (View, string, error) {
	switch {
	case key == string(ViewHome) || key == "":
		return ViewHome, "", nil
	case key == string(ViewFAQ):
		return ViewFAQ, "", nil
	case strings.HasPrefix(key, string(ViewProperty)+":"):
		id := strings.TrimPrefix(key, string(ViewProperty)+":")
		if id == "" {
			return "", "", fmt.Errorf("site: property key without id")
		}
		return ViewProperty, id, nil
	}
	return "", "", fmt.Errorf("site: unknown view %q", key)
}

// SelectProperty shows a property detail page and asks the host to scroll
// to the top.
func (s *State) SelectProperty(id string) {
	s.View = ViewProperty
	s.PropertyID = id
	s.ScrollToTop = true
}

// Navigate switches to home or faq and clears the selected property.
func (s *State) Navigate(v View) error {
	if v != ViewHome && v != ViewFAQ {
		return fmt.Errorf("site: cannot navigate to %q", v)
	}
	s.View = v
	s.PropertyID = ""
	s.ScrollToTop = true
	return nil
}

func (s *State) OpenLightbox(images []string, index int) {
	s.Lightbox = &LightboxOverlay{Images: images, Index: index}
}

func (s *State) CloseLightbox() { s.Lightbox = nil }

func (s *State) OpenApply(propertyID, roomID string) {
	s.Apply = &ApplyOverlay{PropertyID: propertyID, RoomID: roomID}
}

func (s *State) CloseApply() { s.Apply = nil }

func (s *State) OpenAdmin()  { s.Admin = true }
func (s *State) CloseAdmin() { s.Admin = false }

// Notify replaces any current notification with msg, visible until
// now+NotificationTTL.
func (s *State) Notify(msg string, now time.Time) {
	s.notification = &Notification{Message: msg, ExpiresAt: now.Add(NotificationTTL)}
}

// Notification returns the banner visible at now, if any.
func (s *State) Notification(now time.Time) (Notification, bool) {
	if s.notification == nil || !now.Before(s.notification.ExpiresAt) {
		return Notification{}, false
	}
	return *s.notification, true
}

// DismissNotification hides the banner early.
func (s *State) DismissNotification() { s.notification = nil }
