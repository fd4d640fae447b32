package admin

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
	adminapp "github.com/livinglux/coliving-site/internal/admin/application"
	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeReviews struct {
	enabled   bool
	items     []admindomain.InboundApplication
	err       error
	snapshots []adminapp.Snapshot
}

func (f *fakeReviews) Enabled() bool { return f.enabled }

func (f *fakeReviews) List(context.Context) ([]admindomain.InboundApplication, error) {
	return f.items, f.err
}

func (f *fakeReviews) Subscribe(context.Context) <-chan adminapp.Snapshot {
	out := make(chan adminapp.Snapshot, len(f.snapshots))
	for _, s := range f.snapshots {
		out <- s
	}
	close(out)
	return out
}

func newRouter(reviews adminapp.ReviewService) http.Handler {
	r := chi.NewRouter()
	NewHandler(Config{Logger: zap.NewNop(), Reviews: reviews}).Register(r)
	return r
}

func sample(id string, created time.Time) admindomain.InboundApplication {
	return admindomain.InboundApplication{
		ID:         id,
		FullName:   "Applicant " + id,
		PropertyID: "dom-house",
		RoomID:     "d-r1",
		CreatedAt:  &created,
	}
}

func TestApplicationList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("ok", func(t *testing.T) {
		reviews := &fakeReviews{enabled: true, items: []admindomain.InboundApplication{sample("b", now), sample("a", now.Add(-time.Hour))}}
		rec := httptest.NewRecorder()
		newRouter(reviews).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body listResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, statusOK, body.Status)
		require.Len(t, body.Items, 2)
		assert.Equal(t, "b", body.Items[0].ID)
		assert.Equal(t, "d-r1", body.Items[0].RoomID)
	})

	t.Run("empty list is not null", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&fakeReviews{enabled: true}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","items":[]}`, rec.Body.String())
	})

	t.Run("store disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&fakeReviews{err: adminapp.ErrStoreDisabled}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"error":"application store is not configured"}`, rec.Body.String())
	})

	t.Run("read failure", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&fakeReviews{enabled: true, err: errors.New("server selection timeout")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func parseEvents(t *testing.T, raw string) []listResponse {
	t.Helper()
	var events []listResponse
	for _, block := range strings.Split(raw, "\n\n") {
		for _, line := range strings.Split(block, "\n") {
			data, ok := strings.CutPrefix(line, "data: ")
			if !ok {
				continue
			}
			var ev listResponse
			require.NoError(t, json.Unmarshal([]byte(data), &ev))
			events = append(events, ev)
		}
	}
	return events
}

func TestApplicationStream(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reviews := &fakeReviews{
		enabled: true,
		snapshots: []adminapp.Snapshot{
			{Items: []admindomain.InboundApplication{}},
			{Items: []admindomain.InboundApplication{sample("a", now)}},
			{Err: errors.New("change stream closed")},
		},
	}

	rec := httptest.NewRecorder()
	newRouter(reviews).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications/stream", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "event: applications\n")

	events := parseEvents(t, rec.Body.String())
	require.Len(t, events, 3)

	assert.Equal(t, statusOK, events[0].Status)
	assert.Empty(t, events[0].Items)
	assert.Empty(t, events[0].Error)

	assert.Equal(t, statusOK, events[1].Status)
	require.Len(t, events[1].Items, 1)
	assert.Equal(t, "a", events[1].Items[0].ID)

	assert.Equal(t, statusError, events[2].Status)
	assert.NotEmpty(t, events[2].Error)
}

func TestApplicationStreamDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeReviews{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/applications/stream", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApplicationStreamEndsWithClient(t *testing.T) {
	reviews := adminapp.NewReviewService(blockingReader{})
	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/applications/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		newRouter(reviews).ServeHTTP(rec, req)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not return after client disconnect")
	}
}

// blockingReader never reports a change.
type blockingReader struct{}

func (blockingReader) FindAll(context.Context) ([]admindomain.InboundApplication, error) {
	return nil, nil
}

func (blockingReader) Changes(ctx context.Context) (<-chan struct{}, <-chan error) {
	changes := make(chan struct{})
	errs := make(chan error)
	go func() {
		<-ctx.Done()
		close(changes)
	}()
	return changes, errs
}
