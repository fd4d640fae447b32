package public

import (
	"time"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/public/domain"
)

type propertySummaryResponse struct {
	ID           string                      `json:"id"`
	Title        string                      `json:"title"`
	Location     string                      `json:"location"`
	Address      string                      `json:"address"`
	TotalSpace   string                      `json:"totalSpace"`
	Type         catalog.PropertyType        `json:"type"`
	MapPos       catalog.MapPos              `json:"mapPos"`
	Tags         []string                    `json:"tags"`
	Image        string                      `json:"image"`
	RoomCount    int                         `json:"roomCount"`
	Availability catalog.AvailabilitySummary `json:"availability"`
}

type roomResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Price             *int               `json:"price"`
	Charges           *int               `json:"charges"`
	Size              string             `json:"size"`
	Available         string             `json:"available"`
	AvailabilityLabel string             `json:"availabilityLabel"`
	Status            catalog.RoomStatus `json:"status"`
	Features          string             `json:"features"`
	Images            []string           `json:"images"`
	CanApply          bool               `json:"canApply"`
}

type propertyDetailResponse struct {
	propertySummaryResponse
	Description        string              `json:"description"`
	LocationHighlights []catalog.Highlight `json:"locationHighlights"`
	Amenities          []string            `json:"amenities"`
	Gallery            []string            `json:"gallery"`
	Rooms              []roomResponse      `json:"rooms"`
	Apply              applyPanelResponse  `json:"apply"`
}

// applyPanelResponse tells the client which apply panel to show.
type applyPanelResponse struct {
	Mode      string   `json:"mode"`
	Email     string   `json:"email,omitempty"`
	Checklist []string `json:"checklist,omitempty"`
}

type contentResponse struct {
	CoreValues []catalog.CoreValue `json:"coreValues"`
	HouseRules []catalog.HouseRule `json:"houseRules"`
	FAQs       []catalog.FAQ       `json:"faqs"`
}

type garageListResponse struct {
	Items []catalog.Garage `json:"items"`
}

type propertyListResponse struct {
	Items []propertySummaryResponse `json:"items"`
}

type applicationRequest struct {
	PropertyID   string `json:"propertyId"`
	RoomID       string `json:"roomId"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Occupation   string `json:"occupation"`
	Employer     string `json:"employer"`
	ContractType string `json:"contractType"`
	GrossSalary  string `json:"grossSalary"`
	NetSalary    string `json:"netSalary"`
	MoveInDate   string `json:"moveInDate"`
	Duration     string `json:"duration"`
	Message      string `json:"message"`
}

func (r applicationRequest) input() domain.ApplicationInput {
	return domain.ApplicationInput{
		FullName:     r.FullName,
		Email:        r.Email,
		Phone:        r.Phone,
		Occupation:   r.Occupation,
		Employer:     r.Employer,
		ContractType: r.ContractType,
		GrossSalary:  r.GrossSalary,
		NetSalary:    r.NetSalary,
		MoveInDate:   r.MoveInDate,
		Duration:     r.Duration,
		Message:      r.Message,
	}
}

type applicationResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	ContractType string     `json:"contractType"`
	MoveInDate   string     `json:"moveInDate"`
	PropertyID   string     `json:"propertyId"`
	PropertyName string     `json:"propertyName"`
	RoomID       string     `json:"roomId"`
	RoomName     string     `json:"roomName"`
	CreatedAt    *time.Time `json:"createdAt"`
}

func buildApplicationResponse(app *domain.Application) applicationResponse {
	return applicationResponse{
		ID:           app.ID,
		FullName:     app.FullName,
		Email:        app.Email.String(),
		ContractType: string(app.ContractType),
		MoveInDate:   app.MoveInDate,
		PropertyID:   app.PropertyID,
		PropertyName: app.PropertyName,
		RoomID:       app.RoomID,
		RoomName:     app.RoomName,
		CreatedAt:    app.CreatedAt,
	}
}

func buildPropertySummary(p catalog.Property) propertySummaryResponse {
	return propertySummaryResponse{
		ID:           p.ID,
		Title:        p.Title,
		Location:     p.Location,
		Address:      p.Address,
		TotalSpace:   p.TotalSpace,
		Type:         p.Type,
		MapPos:       p.MapPos,
		Tags:         p.Tags,
		Image:        p.Image,
		RoomCount:    len(p.Rooms),
		Availability: catalog.Summarize(p.Rooms),
	}
}

func buildRoomResponse(room catalog.Room) roomResponse {
	return roomResponse{
		ID:                room.ID,
		Name:              room.Name,
		Price:             room.Price,
		Charges:           room.Charges,
		Size:              room.Size,
		Available:         room.Available,
		AvailabilityLabel: room.AvailabilityLabel(),
		Status:            room.Status,
		Features:          room.Features,
		Images:            room.Images,
		CanApply:          room.IsAvailable(),
	}
}
