package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	adminapp "github.com/livinglux/coliving-site/internal/admin/application"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	"go.uber.org/zap"
)

func (h *Handler) applicationListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.StoreTimeout)
		defer cancel()

		apps, err := h.reviews.List(ctx)
		if errors.Is(err, adminapp.ErrStoreDisabled) {
			common.WriteError(h.logger, w, http.StatusServiceUnavailable, adminapp.ErrStoreDisabled.Error())
			return
		}
		if err != nil {
			h.logger.Error("admin application list failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load applications")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, buildListResponse(apps))
	}
}

// applicationStreamHandler pushes the full list as a Server-Sent Event on
// subscribe and after every change. The subscription ends with the request.
func (h *Handler) applicationStreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.reviews.Enabled() {
			common.WriteError(h.logger, w, http.StatusServiceUnavailable, adminapp.ErrStoreDisabled.Error())
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()
		snapshots := h.reviews.Subscribe(ctx)

		ticker := time.NewTicker(h.heartbeat)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
					return
				}
				flusher.Flush()
			case snap, ok := <-snapshots:
				if !ok {
					return
				}
				event := buildListResponse(snap.Items)
				if snap.Err != nil {
					h.logger.Warn("admin application stream failed", zap.Error(snap.Err))
					event = listResponse{Status: statusError, Items: []applicationResponse{}, Error: "subscription failed"}
				}
				if err := writeEvent(w, "applications", event); err != nil {
					h.logger.Debug("admin stream client gone", zap.Error(err))
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
