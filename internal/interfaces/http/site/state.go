package site

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	sitestate "github.com/livinglux/coliving-site/internal/site"
	"go.uber.org/zap"
)

const (
	flashCookie   = "ll_flash"
	sessionCookie = "ll_session"

	// GalleryLightbox names the property gallery in the lightbox query.
	GalleryLightbox = "gallery"
)

// Query keys that carry overlay state in page URLs.
const (
	queryLightbox = "lightbox"
	queryIndex    = "i"
	queryApply    = "apply"
	queryAdmin    = "admin"
	queryRoomPage = "r."
)

// buildState restores the page state for one request. property is the zero
// value on home and faq.
func (h *Handler) buildState(w http.ResponseWriter, r *http.Request, view sitestate.View, property catalog.Property) *sitestate.State {
	state := sitestate.New()
	if view == sitestate.ViewProperty {
		state.SelectProperty(property.ID)
	} else if err := state.Navigate(view); err != nil {
		h.logger.Warn("unexpected page view", zap.String("view", string(view)))
	}

	q := r.URL.Query()
	if view == sitestate.ViewProperty {
		if images, ok := lightboxImages(property, q.Get(queryLightbox)); ok {
			index, _ := common.ParseIndex(q.Get(queryIndex), 0)
			state.OpenLightbox(images, index)
		}
		if roomID := q.Get(queryApply); roomID != "" {
			if room, ok := property.Room(roomID); ok && room.IsAvailable() {
				state.OpenApply(property.ID, roomID)
			}
		}
	}
	if q.Get(queryAdmin) == "1" {
		state.OpenAdmin()
	}

	if msg, at, ok := h.takeFlash(w, r); ok {
		state.Notify(msg, at)
	}
	return state
}

// lightboxImages resolves the lightbox query value to an image list.
func lightboxImages(p catalog.Property, key string) ([]string, bool) {
	switch key {
	case "":
		return nil, false
	case GalleryLightbox:
		return p.Gallery(), true
	}
	room, ok := p.Room(key)
	if !ok {
		return nil, false
	}
	return room.Images, true
}

// setFlash stores a one-shot notification for the next page view.
func (h *Handler) setFlash(w http.ResponseWriter, msg string) {
	value := fmt.Sprintf("%d|%s", h.now().UnixMilli(), msg)
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(value)),
		Path:     "/",
		MaxAge:   int(sitestate.NotificationTTL / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the flash cookie.
func (h *Handler) takeFlash(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return "", time.Time{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return "", time.Time{}, false
	}
	stamp, msg, ok := strings.Cut(string(raw), "|")
	if !ok || msg == "" {
		return "", time.Time{}, false
	}
	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return "", time.Time{}, false
	}
	return msg, time.UnixMilli(ms), true
}

// ensureSession returns the visitor's session subject, issuing a cookie
// when there is none or it no longer verifies.
func (h *Handler) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := h.sessionFromCookie(r); ok {
		return id
	}
	if h.sessions == nil {
		return ""
	}
	s, err := h.sessions.Issue()
	if err != nil {
		h.logger.Warn("issue page session failed", zap.Error(err))
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    s.Token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return s.UserID
}

func (h *Handler) sessionFromCookie(r *http.Request) (string, bool) {
	if h.sessions == nil {
		return "", false
	}
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	claims, err := h.sessions.Verify(c.Value)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// pageURL rebuilds a page link with the given query values.
func pageURL(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// with copies q and applies the given key/value pairs. An empty value
// removes the key.
func with(q url.Values, kv ...string) url.Values {
	out := make(url.Values, len(q)+len(kv)/2)
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			out.Del(kv[i])
			continue
		}
		out.Set(kv[i], kv[i+1])
	}
	return out
}
