package public

import (
	"net/http"

	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	"go.uber.org/zap"
)

// sessionCreateHandler signs the visitor in anonymously.
func (h *Handler) sessionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s, err := h.sessions.Issue()
		if err != nil {
			h.logger.Error("session issue failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to start session")
			return
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, s)
	}
}

func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to read session principal")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
