package public

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	"github.com/livinglux/coliving-site/internal/notify"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"github.com/livinglux/coliving-site/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMailer struct {
	configured bool
	err        error
	sent       []notify.Message
}

func (m *fakeMailer) Configured() bool { return m.configured }

func (m *fakeMailer) Send(_ context.Context, msg notify.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeSubmissions struct {
	err  error
	cmds []publicapp.SubmitApplicationCommand
}

func (f *fakeSubmissions) Enabled() bool { return true }

func (f *fakeSubmissions) Submit(_ context.Context, cmd publicapp.SubmitApplicationCommand) (*domain.Application, error) {
	f.cmds = append(f.cmds, cmd)
	if f.err != nil {
		return nil, f.err
	}
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Application{
		ID:         "65f0c0ffee",
		FullName:   cmd.Input.FullName,
		PropertyID: cmd.PropertyID,
		RoomID:     cmd.RoomID,
		CreatedAt:  &now,
	}, nil
}

type fixture struct {
	router      http.Handler
	mailer      *fakeMailer
	submissions *fakeSubmissions
	sessions    *session.Manager
}

func newFixture(t *testing.T, mode config.ApplyMode) *fixture {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)

	f := &fixture{
		mailer:      &fakeMailer{configured: true},
		submissions: &fakeSubmissions{},
		sessions:    session.NewManager([]byte("test-secret"), time.Hour),
	}
	logger := zap.NewNop()
	h := NewHandler(Config{
		Logger:       logger,
		Catalog:      c,
		Sessions:     f.sessions,
		Submissions:  f.submissions,
		Mailer:       f.mailer,
		ApplyMode:    mode,
		ContactEmail: "info@livinglux.lu",
	})

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.Register(r, common.AuthMiddleware(logger, f.sessions))
	})
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSendApplicationEndpoint(t *testing.T) {
	valid := `{"fullName":"Marie","email":"marie@example.lu","propertyName":"Dom House","roomName":"Room 2","message":"Hi\nthere"}`

	tests := []struct {
		name       string
		method     string
		body       string
		configured bool
		sendErr    error
		status     int
		want       map[string]any
	}{
		{name: "get", method: http.MethodGet, configured: true, status: http.StatusMethodNotAllowed, want: map[string]any{"error": "Method not allowed"}},
		{name: "put", method: http.MethodPut, body: valid, configured: true, status: http.StatusMethodNotAllowed, want: map[string]any{"error": "Method not allowed"}},
		{name: "missing email", method: http.MethodPost, body: `{"fullName":"Marie"}`, configured: true, status: http.StatusBadRequest, want: map[string]any{"error": "Missing required fields"}},
		{name: "missing body", method: http.MethodPost, configured: true, status: http.StatusBadRequest, want: map[string]any{"error": "Missing required fields"}},
		{name: "smtp absent", method: http.MethodPost, body: valid, configured: false, status: http.StatusInternalServerError, want: map[string]any{"error": "SMTP not configured on server"}},
		{name: "send failure", method: http.MethodPost, body: valid, configured: true, sendErr: errors.New("dial tcp: refused"), status: http.StatusInternalServerError, want: map[string]any{"error": "Failed to send email"}},
		{name: "success", method: http.MethodPost, body: valid, configured: true, status: http.StatusOK, want: map[string]any{"ok": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.ApplyModeForm)
			f.mailer.configured = tt.configured
			f.mailer.err = tt.sendErr

			rec := f.do(t, tt.method, "/api/send-application", tt.body, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec))
		})
	}
}

func TestSendApplicationMessageContent(t *testing.T) {
	f := newFixture(t, config.ApplyModeForm)
	rec := f.do(t, http.MethodPost, "/api/send-application",
		`{"fullName":"Marie","email":"marie@example.lu","propertyName":"Dom House","roomName":"Room 2","message":"Hi\nthere"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "New application from Marie for Dom House - Room 2", f.mailer.sent[0].Subject)
	assert.Contains(t, f.mailer.sent[0].HTML, "Hi<br/>there")
}

func TestPropertyEndpoints(t *testing.T) {
	f := newFixture(t, config.ApplyModeForm)

	rec := f.do(t, http.MethodGet, "/api/properties", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	assert.Len(t, items, 4)

	rec = f.do(t, http.MethodGet, "/api/properties?type=Apartment", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"].([]any), 2)

	rec = f.do(t, http.MethodGet, "/api/properties?type=Castle", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/properties/limpertsberg-house", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decode(t, rec)
	availability := detail["availability"].(map[string]any)
	assert.Equal(t, "text-emerald-600", availability["colorClass"])
	rooms := detail["rooms"].([]any)
	second := rooms[1].(map[string]any)
	assert.Equal(t, "Currently Rented", second["availabilityLabel"])
	assert.Equal(t, false, second["canApply"])
	assert.Equal(t, "form", detail["apply"].(map[string]any)["mode"])

	rec = f.do(t, http.MethodGet, "/api/properties/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "property not found", decode(t, rec)["error"])
}

func TestGaragesContentAndSearch(t *testing.T) {
	f := newFixture(t, config.ApplyModeForm)

	rec := f.do(t, http.MethodGet, "/api/garages?status=available", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["items"].([]any), 2)

	rec = f.do(t, http.MethodGet, "/api/content", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["faqs"].([]any), 5)

	rec = f.do(t, http.MethodGet, "/api/search?q=etoile", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "limpertsberg-house", items[0].(map[string]any)["id"])
}

func TestSessionAndApplicationFlow(t *testing.T) {
	f := newFixture(t, config.ApplyModeForm)

	rec := f.do(t, http.MethodPost, "/api/session", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	sess := decode(t, rec)
	token := sess["token"].(string)

	rec = f.do(t, http.MethodGet, "/api/auth/verify", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sess["userId"], decode(t, rec)["user"].(map[string]any)["id"])

	body := `{"propertyId":"dom-house","roomId":"d-r1","fullName":"Marie"}`
	rec = f.do(t, http.MethodPost, "/api/applications", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/applications", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "dom-house", created["propertyId"])
	assert.Equal(t, "d-r1", created["roomId"])
	require.Len(t, f.submissions.cmds, 1)
	assert.Equal(t, sess["userId"], f.submissions.cmds[0].OwnerID)
}

func TestApplicationErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "validation", err: &domain.ValidationError{Fields: []domain.FieldError{{Field: "email", Reason: "email is required"}}}, status: http.StatusBadRequest},
		{name: "store disabled", err: publicapp.ErrStoreDisabled, status: http.StatusServiceUnavailable},
		{name: "not found", err: catalog.ErrNotFound, status: http.StatusNotFound},
		{name: "unavailable", err: publicapp.ErrRoomUnavailable, status: http.StatusBadRequest},
		{name: "in flight", err: publicapp.ErrSubmissionInFlight, status: http.StatusConflict},
		{name: "write failure", err: errors.New("store application: timeout"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.ApplyModeForm)
			f.submissions.err = tt.err
			s, err := f.sessions.Issue()
			require.NoError(t, err)

			rec := f.do(t, http.MethodPost, "/api/applications", `{"propertyId":"dom-house","roomId":"d-r1"}`, s.Token)
			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, decode(t, rec)["error"])
		})
	}
}

func TestContactMode(t *testing.T) {
	f := newFixture(t, config.ApplyModeContact)
	s, err := f.sessions.Issue()
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/applications", `{"propertyId":"dom-house","roomId":"d-r1"}`, s.Token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.submissions.cmds)

	rec = f.do(t, http.MethodGet, "/api/properties/dom-house", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	apply := decode(t, rec)["apply"].(map[string]any)
	assert.Equal(t, "contact", apply["mode"])
	assert.Equal(t, "info@livinglux.lu", apply["email"])
	assert.NotEmpty(t, apply["checklist"])
}
