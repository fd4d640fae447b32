package public

import (
	"context"
	"net/http"
	"time"

	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	"github.com/livinglux/coliving-site/internal/notify"
	"go.uber.org/zap"
)

// sendApplicationHandler mails an application straight to the operator.
// It answers every method so non-POST requests get a JSON 405.
func (h *Handler) sendApplicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			common.WriteError(h.logger, w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		var req notify.ApplicationMail
		if err := common.DecodeJSON(w, r, &req); err != nil || !req.Valid() {
			common.WriteError(h.logger, w, http.StatusBadRequest, "Missing required fields")
			return
		}

		if h.mailer == nil || !h.mailer.Configured() {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "SMTP not configured on server")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		if err := h.mailer.Send(ctx, notify.BuildApplicationMessage(req)); err != nil {
			h.logger.Error("error sending mail", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "Failed to send email")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]bool{"ok": true})
	}
}
