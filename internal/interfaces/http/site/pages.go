package site

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/config"
	"github.com/livinglux/coliving-site/internal/interfaces/http/public"
	"github.com/livinglux/coliving-site/internal/public/domain"
	sitestate "github.com/livinglux/coliving-site/internal/site"
	"go.uber.org/zap"
)

func (h *Handler) homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ensureSession(w, r)
		state := h.buildState(w, r, sitestate.ViewHome, catalog.Property{})

		home := &homeView{
			CoreValues: h.catalog.CoreValues,
			HouseRules: h.catalog.HouseRules,
			Garages:    h.catalog.Garages,
		}
		for _, p := range h.catalog.Properties {
			home.Properties = append(home.Properties, buildPropertyCard(p))
		}

		data := h.basePage(r.URL.Path, r.URL.Query(), state, "LivingLux Coliving Luxembourg")
		data.Home = home
		h.render(w, http.StatusOK, "home", data)
	}
}

func (h *Handler) faqHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ensureSession(w, r)
		state := h.buildState(w, r, sitestate.ViewFAQ, catalog.Property{})

		data := h.basePage(r.URL.Path, r.URL.Query(), state, "FAQ | LivingLux")
		data.FAQs = h.catalog.FAQs
		h.render(w, http.StatusOK, "faq", data)
	}
}

func (h *Handler) propertyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.catalog.Property(chi.URLParam(r, "id"))
		if errors.Is(err, catalog.ErrNotFound) {
			h.render(w, http.StatusNotFound, "notfound", pageData{Title: "Not found | LivingLux"})
			return
		}
		if err != nil {
			h.logger.Error("property lookup failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		h.ensureSession(w, r)
		state := h.buildState(w, r, sitestate.ViewProperty, p)
		h.renderProperty(w, http.StatusOK, r.URL.Path, r.URL.Query(), p, state, nil)
	}
}

// renderProperty renders a property page. form prefills the apply panel
// after a rejected submission.
func (h *Handler) renderProperty(w http.ResponseWriter, status int, path string, q url.Values, p catalog.Property, state *sitestate.State, form url.Values) {
	view := &propertyView{
		Property:     p,
		Availability: catalog.Summarize(p.Rooms),
		Hero:         buildCarousel(path, q, GalleryLightbox, p.Gallery()),
		Reel:         buildReel(reelImages(p)),
		Lightbox:     buildLightbox(path, q, state.Lightbox),
	}
	for _, room := range p.Rooms {
		card := roomCard{
			Room:     room,
			Label:    room.AvailabilityLabel(),
			CanApply: room.IsAvailable(),
			Carousel: buildCarousel(path, q, room.ID, room.Images),
		}
		if card.CanApply {
			card.ApplyURL = pageURL(path, with(q, queryApply, room.ID))
		}
		view.Rooms = append(view.Rooms, card)
	}
	if state.Apply != nil {
		view.Apply = h.buildApply(path, q, p, state.Apply.RoomID, form)
	}

	data := h.basePage(path, q, state, p.Title+" | LivingLux")
	data.Property = view
	h.render(w, status, "property", data)
}

func (h *Handler) buildApply(path string, q url.Values, p catalog.Property, roomID string, form url.Values) *applyView {
	room, _ := p.Room(roomID)
	view := &applyView{
		PropertyTitle: p.Title,
		RoomID:        room.ID,
		RoomName:      room.Name,
		CloseURL:      pageURL(path, with(q, queryApply, "")),
	}
	if h.applyMode == config.ApplyModeContact {
		view.Contact = true
		view.Email = h.contactEmail
		view.Checklist = public.ContactChecklist
		return view
	}
	view.ActionURL = path + "/rooms/" + url.PathEscape(room.ID) + "/apply"
	view.Values = form
	chosen := form.Get("contractType")
	for _, ct := range domain.ContractTypes {
		view.ContractTypes = append(view.ContractTypes, contractOption{
			Value:    string(ct),
			Selected: string(ct) == chosen,
		})
	}
	return view
}

func (h *Handler) basePage(path string, q url.Values, state *sitestate.State, title string) pageData {
	data := pageData{
		Title:       title,
		StateKey:    state.Key(),
		ScrollToTop: state.ScrollToTop,
		AdminOpen:   state.Admin,
		AdminURL:    pageURL(path, with(q, queryAdmin, "1")),
		CloseAdmin:  pageURL(path, with(q, queryAdmin, "")),
	}
	if n, ok := state.Notification(h.now()); ok {
		data.Notification = n.Message
	}
	return data
}
