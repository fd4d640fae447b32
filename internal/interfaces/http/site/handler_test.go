package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"github.com/livinglux/coliving-site/internal/session"
	sitestate "github.com/livinglux/coliving-site/internal/site"
	"github.com/livinglux/coliving-site/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSubmissions struct {
	err  error
	cmds []publicapp.SubmitApplicationCommand
}

func (s *stubSubmissions) Enabled() bool { return true }

func (s *stubSubmissions) Submit(_ context.Context, cmd publicapp.SubmitApplicationCommand) (*domain.Application, error) {
	s.cmds = append(s.cmds, cmd)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Application{ID: "1", PropertyID: cmd.PropertyID, RoomID: cmd.RoomID}, nil
}

type pageFixture struct {
	router      http.Handler
	submissions *stubSubmissions
	now         time.Time
}

func newPageFixture(t *testing.T, mode config.ApplyMode) *pageFixture {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	f := &pageFixture{
		submissions: &stubSubmissions{},
		now:         time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	h := NewHandler(Config{
		Logger:       zap.NewNop(),
		Catalog:      c,
		Sessions:     session.NewManager([]byte("page-secret"), time.Hour),
		Submissions:  f.submissions,
		ApplyMode:    mode,
		ContactEmail: "info@livinglux.lu",
		Now:          func() time.Time { return f.now },
	})
	r := chi.NewRouter()
	h.Register(r)
	f.router = r
	return f
}

func (f *pageFixture) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *pageFixture) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHomeAndFAQPages(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	rec := f.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `data-view="home"`)
	assert.Contains(t, body, "Maison de Maître Dommeldange")
	assert.Contains(t, body, "8 Rooms available")
	assert.Contains(t, body, "Fully Rented")
	assert.NotNil(t, cookieNamed(rec, sessionCookie))

	rec = f.get(t, "/faq")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="faq"`)
	assert.Contains(t, rec.Body.String(), "Is there an agency fee?")
}

func TestPropertyPage(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	rec := f.get(t, "/properties/limpertsberg-house")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-view="property:limpertsberg-house"`)
	assert.Contains(t, body, "data-scroll-top")
	assert.Contains(t, body, "Currently Rented")
	assert.Contains(t, body, "Available: 2026-03-01")
	assert.Contains(t, body, `class="reel"`)
	assert.NotContains(t, body, `id="lightbox"`)
	assert.NotContains(t, body, `id="apply"`)

	rec = f.get(t, "/properties/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Property not found")
}

func TestPropertyLightboxFromQuery(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	rec := f.get(t, "/properties/dom-house?lightbox=gallery&i=5")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="lightbox"`)
	assert.Contains(t, body, "3 / 3")
	assert.Contains(t, body, "Escape")
	assert.Contains(t, body, "ArrowRight")

	rec = f.get(t, "/properties/dom-house?lightbox=unknown-room")
	assert.NotContains(t, rec.Body.String(), `id="lightbox"`)
}

func TestLightboxLinksWrap(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)
	p, err := c.Property("dom-house")
	require.NoError(t, err)

	q := url.Values{queryLightbox: {GalleryLightbox}, queryIndex: {"2"}}
	view := buildLightbox("/properties/dom-house", q, &sitestate.LightboxOverlay{Images: p.Gallery(), Index: 2})
	require.NotNil(t, view)
	assert.Equal(t, "3 / 3", view.Position)
	assert.Contains(t, view.NextURL, "i=0")
	assert.Contains(t, view.PrevURL, "i=1")
	assert.Equal(t, "/properties/dom-house", view.CloseURL)
	assert.Equal(t, view.CloseURL, view.Keys["Escape"])
	assert.Equal(t, view.NextURL, view.Keys["ArrowRight"])
	assert.Equal(t, view.PrevURL, view.Keys["ArrowLeft"])

	assert.Nil(t, buildLightbox("/", nil, nil))
}

func TestCarouselLinks(t *testing.T) {
	images := []string{"a.jpg", "b.jpg", "c.jpg"}
	view := buildCarousel("/properties/x", url.Values{"r.x-r1": {"0"}}, "x-r1", images)
	assert.True(t, view.Pageable)
	assert.Equal(t, "a.jpg", view.Current)
	assert.Contains(t, view.NextURL, "r.x-r1=1")
	assert.Contains(t, view.PrevURL, "r.x-r1=2")
	assert.Contains(t, view.ExpandURL, "lightbox=x-r1")
	assert.Contains(t, view.ExpandURL, "i=0")

	single := buildCarousel("/properties/x", nil, "x-r2", []string{"only.jpg"})
	assert.False(t, single.Pageable)
	assert.Empty(t, single.NextURL)
}

func TestReelView(t *testing.T) {
	assert.False(t, buildReel([]string{"one.jpg"}).Active)

	reel := buildReel([]string{"a.jpg", "b.jpg"})
	assert.True(t, reel.Active)
	assert.Len(t, reel.Frames, 4)
	assert.Equal(t, 2*reelFrameWidth, reel.Width)
	assert.InDelta(t, float64(2*reelFrameWidth)/viewer.DefaultReelSpeed, reel.Duration, 0.001)
}

func TestApplyPostRedirectGet(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	rec := f.post(t, "/properties/dom-house/rooms/d-r1/apply", url.Values{
		"fullName": {"Marie Curie"},
		"email":    {"marie@example.lu"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/properties/dom-house", rec.Header().Get("Location"))
	require.Len(t, f.submissions.cmds, 1)
	assert.Equal(t, "dom-house", f.submissions.cmds[0].PropertyID)
	assert.Equal(t, "d-r1", f.submissions.cmds[0].RoomID)
	assert.Equal(t, "Marie Curie", f.submissions.cmds[0].Input.FullName)
	assert.NotEmpty(t, f.submissions.cmds[0].OwnerID)

	flash := cookieNamed(rec, flashCookie)
	require.NotNil(t, flash)

	page := f.get(t, "/properties/dom-house", flash)
	assert.Contains(t, page.Body.String(), flashSubmitted)
	cleared := cookieNamed(page, flashCookie)
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	f.now = f.now.Add(6 * time.Second)
	page = f.get(t, "/properties/dom-house", flash)
	assert.NotContains(t, page.Body.String(), flashSubmitted)
}

func TestApplyErrorsRedirect(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		location string
		flash    string
	}{
		{name: "unavailable", err: publicapp.ErrRoomUnavailable, location: "/properties/dom-house", flash: flashUnavailable},
		{name: "in flight", err: publicapp.ErrSubmissionInFlight, location: "/properties/dom-house", flash: flashInFlight},
		{name: "store off", err: publicapp.ErrStoreDisabled, location: "/properties/dom-house", flash: flashStoreOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPageFixture(t, config.ApplyModeForm)
			f.submissions.err = tt.err

			rec := f.post(t, "/properties/dom-house/rooms/d-r1/apply", url.Values{"fullName": {"Marie"}})
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))

			flash := cookieNamed(rec, flashCookie)
			require.NotNil(t, flash)
			page := f.get(t, tt.location, flash)
			assert.Contains(t, page.Body.String(), tt.flash)
		})
	}
}

func TestApplyRetryKeepsFormValues(t *testing.T) {
	posted := url.Values{
		"fullName":     {"Marie <Curie>"},
		"email":        {"marie@example.lu"},
		"contractType": {"CDD"},
		"grossSalary":  {"NaN"},
		"message":      {"Quiet tenant"},
	}
	tests := []struct {
		name   string
		err    error
		status int
		notice string
	}{
		{name: "invalid", err: &domain.ValidationError{Fields: []domain.FieldError{{Field: "grossSalary", Reason: "salary must be a number"}}}, status: http.StatusUnprocessableEntity, notice: "Please check: grossSalary"},
		{name: "write failure", err: assert.AnError, status: http.StatusInternalServerError, notice: flashFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPageFixture(t, config.ApplyModeForm)
			f.submissions.err = tt.err

			rec := f.post(t, "/properties/dom-house/rooms/d-r1/apply", posted)
			require.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Header().Get("Location"))
			assert.Nil(t, cookieNamed(rec, flashCookie))

			body := rec.Body.String()
			assert.Contains(t, body, tt.notice)
			assert.Contains(t, body, `id="apply"`)
			assert.Contains(t, body, `action="/properties/dom-house/rooms/d-r1/apply"`)
			assert.Contains(t, body, `value="Marie &lt;Curie&gt;"`)
			assert.Contains(t, body, `value="marie@example.lu"`)
			assert.Contains(t, body, `value="NaN"`)
			assert.Contains(t, body, "<option selected>CDD</option>")
			assert.Contains(t, body, "<option>CDI</option>")
			assert.Contains(t, body, ">Quiet tenant</textarea>")
			assert.Contains(t, body, `href="/properties/dom-house"`)
		})
	}
}

func TestApplyPanelOnlyForAvailableRooms(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	body := f.get(t, "/properties/limpertsberg-house?apply=h-r2").Body.String()
	assert.NotContains(t, body, `id="apply"`)
	assert.NotContains(t, body, "/rooms/h-r2/apply")

	body = f.get(t, "/properties/limpertsberg-house?apply=h-r1").Body.String()
	assert.Contains(t, body, `id="apply"`)

	contact := newPageFixture(t, config.ApplyModeContact)
	body = contact.get(t, "/properties/limpertsberg-house?apply=h-r2").Body.String()
	assert.NotContains(t, body, `id="apply"`)
}

func TestApplyUnknownRoom(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)
	f.submissions.err = catalog.ErrNotFound

	rec := f.post(t, "/properties/dom-house/rooms/nope/apply", url.Values{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplyPanelModes(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)
	body := f.get(t, "/properties/dom-house?apply=d-r1").Body.String()
	assert.Contains(t, body, `id="apply"`)
	assert.Contains(t, body, `action="/properties/dom-house/rooms/d-r1/apply"`)
	assert.Contains(t, body, "<option>CDI</option>")

	contact := newPageFixture(t, config.ApplyModeContact)
	body = contact.get(t, "/properties/dom-house?apply=d-r1").Body.String()
	assert.Contains(t, body, "info@livinglux.lu")
	assert.Contains(t, body, "Gross and net monthly salary")
	assert.NotContains(t, body, "<form")

	rec := contact.post(t, "/properties/dom-house/rooms/d-r1/apply", url.Values{"fullName": {"Marie"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, contact.submissions.cmds)
}

func TestAdminOverlay(t *testing.T) {
	f := newPageFixture(t, config.ApplyModeForm)

	assert.NotContains(t, f.get(t, "/").Body.String(), `id="admin"`)

	body := f.get(t, "/?admin=1").Body.String()
	assert.Contains(t, body, `id="admin"`)
	assert.Contains(t, body, "/api/admin/applications/stream")
}
