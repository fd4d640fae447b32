package public

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	"go.uber.org/zap"
)

// ContactChecklist lists what an applicant should include when the site
// runs in contact mode.
var ContactChecklist = []string{
	"Full name and phone number",
	"Property and room you are interested in",
	"Desired move-in date and length of stay",
	"Occupation, employer and contract type",
	"Gross and net monthly salary",
}

func (h *Handler) propertyListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		properties := h.catalog.Properties
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			t := catalog.PropertyType(raw)
			if t != catalog.PropertyTypeHouse && t != catalog.PropertyTypeApartment {
				common.WriteError(h.logger, w, http.StatusBadRequest, "type must be House or Apartment")
				return
			}
			properties = h.catalog.PropertiesOfType(t)
		}

		items := make([]propertySummaryResponse, 0, len(properties))
		for _, p := range properties {
			items = append(items, buildPropertySummary(p))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, propertyListResponse{Items: items})
	}
}

func (h *Handler) propertyDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.catalog.Property(chi.URLParam(r, "id"))
		if errors.Is(err, catalog.ErrNotFound) {
			common.WriteError(h.logger, w, http.StatusNotFound, "property not found")
			return
		}
		if err != nil {
			h.logger.Error("property lookup failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "failed to load property")
			return
		}

		rooms := make([]roomResponse, 0, len(p.Rooms))
		for _, room := range p.Rooms {
			rooms = append(rooms, buildRoomResponse(room))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, propertyDetailResponse{
			propertySummaryResponse: buildPropertySummary(p),
			Description:             p.Description,
			LocationHighlights:      p.LocationHighlights,
			Amenities:               p.Amenities,
			Gallery:                 p.Gallery(),
			Rooms:                   rooms,
			Apply:                   h.applyPanel(),
		})
	}
}

func (h *Handler) applyPanel() applyPanelResponse {
	if h.applyMode == config.ApplyModeContact {
		return applyPanelResponse{
			Mode:      string(config.ApplyModeContact),
			Email:     h.contactEmail,
			Checklist: ContactChecklist,
		}
	}
	return applyPanelResponse{Mode: string(config.ApplyModeForm)}
}

func (h *Handler) garageListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		garages := h.catalog.Garages
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status := catalog.GarageStatus(raw)
			if status != catalog.GarageAvailable && status != catalog.GarageRented {
				common.WriteError(h.logger, w, http.StatusBadRequest, "status must be available or rented")
				return
			}
			garages = h.catalog.GaragesWithStatus(status)
		}
		if garages == nil {
			garages = []catalog.Garage{}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, garageListResponse{Items: garages})
	}
}

func (h *Handler) contentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		common.WriteJSON(h.logger, w, http.StatusOK, contentResponse{
			CoreValues: h.catalog.CoreValues,
			HouseRules: h.catalog.HouseRules,
			FAQs:       h.catalog.FAQs,
		})
	}
}

func (h *Handler) searchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), common.StoreTimeout)
		defer cancel()

		results, err := h.search.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			h.logger.Error("catalog search failed", zap.Error(err))
			common.WriteError(h.logger, w, http.StatusInternalServerError, "search failed")
			return
		}

		items := make([]propertySummaryResponse, 0, len(results))
		for _, p := range results {
			items = append(items, buildPropertySummary(p))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, propertyListResponse{Items: items})
	}
}
