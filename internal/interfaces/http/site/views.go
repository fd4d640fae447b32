package site

import (
	"net/url"
	"strconv"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/interfaces/http/common"
	sitestate "github.com/livinglux/coliving-site/internal/site"
	"github.com/livinglux/coliving-site/internal/viewer"
)

// reelFrameWidth is the rendered width of one reel image in pixels.
const reelFrameWidth = 280

type pageData struct {
	Title        string
	StateKey     string
	ScrollToTop  bool
	Notification string
	AdminOpen    bool
	AdminURL     string
	CloseAdmin   string

	Home     *homeView
	FAQs     []catalog.FAQ
	Property *propertyView
}

type homeView struct {
	CoreValues []catalog.CoreValue
	HouseRules []catalog.HouseRule
	Properties []propertyCard
	Garages    []catalog.Garage
}

type propertyCard struct {
	catalog.Property
	Availability catalog.AvailabilitySummary
	URL          string
}

type carouselView struct {
	Current   string
	Pageable  bool
	PrevURL   string
	NextURL   string
	ExpandURL string
}

type reelView struct {
	Active   bool
	Frames   []string
	Width    int
	Duration float64
}

// lightboxView is the open lightbox. Keys maps a keyboard key to the link
// it follows.
type lightboxView struct {
	Current  string
	Position string
	PrevURL  string
	NextURL  string
	CloseURL string
	Keys     map[string]string
}

type roomCard struct {
	catalog.Room
	Label    string
	CanApply bool
	ApplyURL string
	Carousel carouselView
}

type applyView struct {
	PropertyTitle string
	RoomID        string
	RoomName      string
	ActionURL     string
	CloseURL      string
	Values        url.Values
	ContractTypes []contractOption
	Contact       bool
	Email         string
	Checklist     []string
}

type contractOption struct {
	Value    string
	Selected bool
}

type propertyView struct {
	catalog.Property
	Availability catalog.AvailabilitySummary
	Hero         carouselView
	Reel         reelView
	Rooms        []roomCard
	Lightbox     *lightboxView
	Apply        *applyView
}

func buildPropertyCard(p catalog.Property) propertyCard {
	return propertyCard{
		Property:     p,
		Availability: catalog.Summarize(p.Rooms),
		URL:          "/properties/" + url.PathEscape(p.ID),
	}
}

// buildCarousel pages images under the query key "r.<name>"; expanding
// opens the lightbox named key at the visible image.
func buildCarousel(path string, q url.Values, key string, images []string) carouselView {
	param := queryRoomPage + key
	index, _ := common.ParseIndex(q.Get(param), 0)

	c := viewer.NewCarousel(images)
	c.Seek(index)
	view := carouselView{Current: c.Current(), Pageable: c.Pageable()}

	lb := viewer.NewLightbox(nil)
	c.Expand(lb)
	view.ExpandURL = pageURL(path, with(q, queryLightbox, key, queryIndex, strconv.Itoa(lb.Index())))

	if view.Pageable {
		c.Next()
		view.NextURL = pageURL(path, with(q, param, strconv.Itoa(c.Index())))
		c.Prev()
		c.Prev()
		view.PrevURL = pageURL(path, with(q, param, strconv.Itoa(c.Index())))
	}
	return view
}

func buildReel(images []string) reelView {
	width := float64(len(images) * reelFrameWidth)
	reel := viewer.NewReel(images, width, viewer.DefaultReelSpeed)
	return reelView{
		Active:   reel.Active(),
		Frames:   reel.Frames(),
		Width:    int(width),
		Duration: reel.Period().Seconds(),
	}
}

// buildLightbox renders the open lightbox. Every key binding becomes a
// link so the page works without client state.
func buildLightbox(path string, q url.Values, overlay *sitestate.LightboxOverlay) *lightboxView {
	if overlay == nil {
		return nil
	}
	keys := viewer.NewDispatcher()
	lb := viewer.NewLightbox(keys)
	lb.Open(overlay.Images, overlay.Index)
	defer lb.Dispose()

	view := &lightboxView{
		Current:  lb.Current(),
		Position: lb.Position(),
		NextURL:  pageURL(path, with(q, queryIndex, strconv.Itoa(lb.NextIndex()))),
		PrevURL:  pageURL(path, with(q, queryIndex, strconv.Itoa(lb.PrevIndex()))),
		CloseURL: pageURL(path, with(q, queryLightbox, "", queryIndex, "")),
	}
	actions := map[viewer.Action]string{
		viewer.ActionClose: view.CloseURL,
		viewer.ActionNext:  view.NextURL,
		viewer.ActionPrev:  view.PrevURL,
	}
	bindings := lb.KeyBindings()
	view.Keys = make(map[string]string, len(bindings))
	for key, action := range bindings {
		view.Keys[key] = actions[action]
	}
	return view
}

func reelImages(p catalog.Property) []string {
	seen := make(map[string]struct{})
	var images []string
	add := func(img string) {
		if _, dup := seen[img]; dup || img == "" {
			return
		}
		seen[img] = struct{}{}
		images = append(images, img)
	}
	for _, img := range p.Gallery() {
		add(img)
	}
	for _, room := range p.Rooms {
		for _, img := range room.Images {
			add(img)
		}
	}
	return images
}
