package admin

import (
	"time"

	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
)

const (
	statusOK    = "ok"
	statusError = "error"
)

type applicationResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Occupation   string     `json:"occupation"`
	Employer     string     `json:"employer"`
	ContractType string     `json:"contractType"`
	GrossSalary  string     `json:"grossSalary"`
	NetSalary    string     `json:"netSalary"`
	MoveInDate   string     `json:"moveInDate"`
	Duration     string     `json:"duration"`
	Message      string     `json:"message,omitempty"`
	PropertyID   string     `json:"propertyId"`
	PropertyName string     `json:"propertyName"`
	RoomID       string     `json:"roomId"`
	RoomName     string     `json:"roomName"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// listResponse is both the one-shot list body and the payload of each
// stream event.
type listResponse struct {
	Status string                `json:"status"`
	Items  []applicationResponse `json:"items"`
	Error  string                `json:"error,omitempty"`
}

func buildApplicationResponse(app admindomain.InboundApplication) applicationResponse {
	return applicationResponse{
		ID:           app.ID,
		FullName:     app.FullName,
		Email:        app.Email,
		Phone:        app.Phone,
		Occupation:   app.Occupation,
		Employer:     app.Employer,
		ContractType: app.ContractType,
		GrossSalary:  app.GrossSalary,
		NetSalary:    app.NetSalary,
		MoveInDate:   app.MoveInDate,
		Duration:     app.Duration,
		Message:      app.Message,
		PropertyID:   app.PropertyID,
		PropertyName: app.PropertyName,
		RoomID:       app.RoomID,
		RoomName:     app.RoomName,
		CreatedAt:    app.CreatedAt,
	}
}

func buildListResponse(apps []admindomain.InboundApplication) listResponse {
	items := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		items = append(items, buildApplicationResponse(app))
	}
	return listResponse{Status: statusOK, Items: items}
}
