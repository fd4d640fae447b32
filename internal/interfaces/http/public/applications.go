package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"go.uber.org/zap"
)

func (h *Handler) applicationCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.applyMode == config.ApplyModeContact {
			common.WriteError(h.logger, w, http.StatusNotFound, "applications are handled by email")
			return
		}

		var req applicationRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteError(h.logger, w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		user, _ := common.UserFromContext(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), common.StoreTimeout)
		defer cancel()

		app, err := h.submissions.Submit(ctx, publicapp.SubmitApplicationCommand{
			PropertyID: req.PropertyID,
			RoomID:     req.RoomID,
			OwnerID:    user.ID,
			Input:      req.input(),
		})
		if err != nil {
			h.writeSubmissionError(w, err)
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildApplicationResponse(app))
	}
}

func (h *Handler) writeSubmissionError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			fields[f.Field] = f.Reason
		}
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]any{
			"error":  "invalid application",
			"fields": fields,
		})
	case errors.Is(err, publicapp.ErrStoreDisabled):
		common.WriteError(h.logger, w, http.StatusServiceUnavailable, publicapp.ErrStoreDisabled.Error())
	case errors.Is(err, catalog.ErrNotFound):
		common.WriteError(h.logger, w, http.StatusNotFound, "property or room not found")
	case errors.Is(err, publicapp.ErrRoomUnavailable):
		common.WriteError(h.logger, w, http.StatusBadRequest, "room is not available")
	case errors.Is(err, publicapp.ErrSubmissionInFlight):
		common.WriteError(h.logger, w, http.StatusConflict, publicapp.ErrSubmissionInFlight.Error())
	default:
		h.logger.Error("application submission failed", zap.Error(err))
		common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to submit application, please try again")
	}
}
