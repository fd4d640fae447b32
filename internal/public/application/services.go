package application

import (
	"context"
	"errors"

	"github.com/livinglux/coliving-site/internal/catalog"
	"github.com/livinglux/coliving-site/internal/public/domain"
)

var (
	// ErrRoomUnavailable is returned when the room does not accept applications.
	ErrRoomUnavailable = errors.New("room is not available")
	// ErrStoreDisabled is returned when no application store is configured.
	ErrStoreDisabled = errors.New("application store is not configured")
	// ErrSubmissionInFlight is returned while a submission from the same
	// session is still being written.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// ApplicationRepository persists applications.
// Create assigns ID and CreatedAt on success.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
}

// SubmissionGuard serialises submissions per key.
type SubmissionGuard interface {
	// Acquire returns ErrSubmissionInFlight when key is already held.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Notifier tells the operator about a stored application. Enqueue must not
// block on delivery.
type Notifier interface {
	Enqueue(app domain.Application)
}

// RoomCatalog resolves the room an application targets.
type RoomCatalog interface {
	Room(propertyID, roomID string) (catalog.Property, catalog.Room, error)
}

// SubmissionRecorder counts outcomes.
type SubmissionRecorder interface {
	ApplicationSubmitted(result string)
}

// SubmitApplicationCommand captures a form post for one room.
type SubmitApplicationCommand struct {
	PropertyID string
	RoomID     string
	OwnerID    string
	Input      domain.ApplicationInput
}

// SubmissionService handles the write use-case.
type SubmissionService interface {
	Submit(ctx context.Context, cmd SubmitApplicationCommand) (*domain.Application, error)
	Enabled() bool
}
