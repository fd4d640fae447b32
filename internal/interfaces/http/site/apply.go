package site

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	publicapp "github.com/livinglux/coliving-site/internal/public/application"
	"github.com/livinglux/coliving-site/internal/public/domain"
	sitestate "github.com/livinglux/coliving-site/internal/site"
	"go.uber.org/zap"
)

const (
	flashSubmitted   = "Application sent! We will get back to you within 24 hours."
	flashUnavailable = "This room is no longer available."
	flashInFlight    = "Your application is already being sent."
	flashStoreOff    = "Online applications are unavailable right now. Please email us instead."
	flashFailed      = "We could not send your application. Please try again."
)

// applyHandler accepts the room application form and redirects back to the
// property page with a flash message. Rejected input and failed writes
// re-render the page with the form still filled in.
func (h *Handler) applyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.applyMode == config.ApplyModeContact || h.submissions == nil {
			http.NotFound(w, r)
			return
		}

		propertyID := chi.URLParam(r, "id")
		roomID := chi.URLParam(r, "roomId")
		back := "/properties/" + url.PathEscape(propertyID)

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxRequestBody)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		ownerID := h.ensureSession(w, r)

		ctx, cancel := context.WithTimeout(r.Context(), common.StoreTimeout)
		defer cancel()

		_, err := h.submissions.Submit(ctx, publicapp.SubmitApplicationCommand{
			PropertyID: propertyID,
			RoomID:     roomID,
			OwnerID:    ownerID,
			Input:      formInput(r.PostForm),
		})

		var verr *domain.ValidationError
		switch {
		case err == nil:
			h.setFlash(w, flashSubmitted)
		case errors.Is(err, catalog.ErrNotFound):
			http.NotFound(w, r)
			return
		case errors.As(err, &verr):
			h.retryForm(w, r, http.StatusUnprocessableEntity, propertyID, roomID, validationMessage(verr))
			return
		case errors.Is(err, publicapp.ErrRoomUnavailable):
			h.setFlash(w, flashUnavailable)
		case errors.Is(err, publicapp.ErrSubmissionInFlight):
			h.setFlash(w, flashInFlight)
		case errors.Is(err, publicapp.ErrStoreDisabled):
			h.setFlash(w, flashStoreOff)
		default:
			h.logger.Error("page application submission failed", zap.Error(err))
			h.retryForm(w, r, http.StatusInternalServerError, propertyID, roomID, flashFailed)
			return
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// retryForm renders the property page with the apply panel still open and
// the posted values filled in.
func (h *Handler) retryForm(w http.ResponseWriter, r *http.Request, status int, propertyID, roomID, msg string) {
	p, err := h.catalog.Property(propertyID)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	state := sitestate.New()
	state.SelectProperty(p.ID)
	state.OpenApply(p.ID, roomID)
	state.Notify(msg, h.now())

	path := "/properties/" + url.PathEscape(p.ID)
	q := url.Values{queryApply: {roomID}}
	h.renderProperty(w, status, path, q, p, state, r.PostForm)
}

func formInput(form url.Values) domain.ApplicationInput {
	return domain.ApplicationInput{
		FullName:     form.Get("fullName"),
		Email:        form.Get("email"),
		Phone:        form.Get("phone"),
		Occupation:   form.Get("occupation"),
		Employer:     form.Get("employer"),
		ContractType: form.Get("contractType"),
		GrossSalary:  form.Get("grossSalary"),
		NetSalary:    form.Get("netSalary"),
		MoveInDate:   form.Get("moveInDate"),
		Duration:     form.Get("duration"),
		Message:      form.Get("message"),
	}
}

func validationMessage(verr *domain.ValidationError) string {
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return "Please check: " + strings.Join(names, ", ")
}
