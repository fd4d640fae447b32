package mongo

import (
	"time"

	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
	"github.com/livinglux/coliving-site/internal/notify"
	"github.com/livinglux/coliving-site/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationDocument is the stored shape of a room application.
type ApplicationDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	FullName     string             `bson:"fullName"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	Occupation   string             `bson:"occupation"`
	Employer     string             `bson:"employer"`
	ContractType string             `bson:"contractType"`
	GrossSalary  string             `bson:"grossSalary"`
	NetSalary    string             `bson:"netSalary"`
	MoveInDate   string             `bson:"moveInDate"`
	Duration     string             `bson:"duration"`
	Message      string             `bson:"message,omitempty"`
	PropertyID   string             `bson:"propertyId"`
	PropertyName string             `bson:"propertyName"`
	RoomID       string             `bson:"roomId"`
	RoomName     string             `bson:"roomName"`
	OwnerID      string             `bson:"userId,omitempty"`
	CreatedAt    *time.Time         `bson:"createdAt,omitempty"`
}

func newApplicationDocument(app *domain.Application) ApplicationDocument {
	return ApplicationDocument{
		ID:           primitive.NewObjectID(),
		FullName:     app.FullName,
		Email:        app.Email.String(),
		Phone:        app.Phone,
		Occupation:   app.Occupation,
		Employer:     app.Employer,
		ContractType: string(app.ContractType),
		GrossSalary:  app.GrossSalary.String(),
		NetSalary:    app.NetSalary.String(),
		MoveInDate:   app.MoveInDate,
		Duration:     app.Duration,
		Message:      app.Message,
		PropertyID:   app.PropertyID,
		PropertyName: app.PropertyName,
		RoomID:       app.RoomID,
		RoomName:     app.RoomName,
		OwnerID:      app.OwnerID,
	}
}

func (d ApplicationDocument) toAdminDomain() admindomain.InboundApplication {
	return admindomain.InboundApplication{
		ID:           d.ID.Hex(),
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		Occupation:   d.Occupation,
		Employer:     d.Employer,
		ContractType: d.ContractType,
		GrossSalary:  d.GrossSalary,
		NetSalary:    d.NetSalary,
		MoveInDate:   d.MoveInDate,
		Duration:     d.Duration,
		Message:      d.Message,
		PropertyID:   d.PropertyID,
		PropertyName: d.PropertyName,
		RoomID:       d.RoomID,
		RoomName:     d.RoomName,
		OwnerID:      d.OwnerID,
		CreatedAt:    d.CreatedAt,
	}
}

// FailedNotificationDocument keeps an undelivered operator notification.
type FailedNotificationDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Target        string             `bson:"target"`
	Channel       string             `bson:"channel"`
	ApplicationID string             `bson:"applicationId,omitempty"`
	Payload       NotificationBody   `bson:"payload"`
	Error         string             `bson:"error"`
	Attempts      int                `bson:"attempts"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
	LastTriedAt   time.Time          `bson:"lastTriedAt"`
}

// NotificationBody is the rendered message kept for a later retry.
type NotificationBody struct {
	Subject string `bson:"subject"`
	ReplyTo string `bson:"replyTo,omitempty"`
	HTML    string `bson:"html"`
	Text    string `bson:"text"`
}

func newFailedNotificationDocument(f notify.FailedNotification) FailedNotificationDocument {
	return FailedNotificationDocument{
		Target:        "operator_notification",
		Channel:       f.Channel,
		ApplicationID: f.ApplicationID,
		Payload: NotificationBody{
			Subject: f.Message.Subject,
			ReplyTo: f.Message.ReplyTo,
			HTML:    f.Message.HTML,
			Text:    f.Message.Text,
		},
		Error:       f.Error,
		Attempts:    f.Attempts,
		Status:      f.Status,
		CreatedAt:   f.CreatedAt,
		LastTriedAt: f.LastTriedAt,
	}
}

func (d FailedNotificationDocument) toNotify() notify.FailedNotification {
	return notify.FailedNotification{
		ID:            d.ID.Hex(),
		Channel:       d.Channel,
		ApplicationID: d.ApplicationID,
		Message: notify.Message{
			Subject: d.Payload.Subject,
			ReplyTo: d.Payload.ReplyTo,
			HTML:    d.Payload.HTML,
			Text:    d.Payload.Text,
		},
		Error:       d.Error,
		Attempts:    d.Attempts,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt,
		LastTriedAt: d.LastTriedAt,
	}
}
