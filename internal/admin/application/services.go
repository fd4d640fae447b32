package application

import (
	"context"
	"errors"

	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
)

// ErrStoreDisabled is returned when no application store is configured.
var ErrStoreDisabled = errors.New("application store is not configured")

// ApplicationReader reads submitted applications.
type ApplicationReader interface {
	FindAll(ctx context.Context) ([]admindomain.InboundApplication, error)
	// Changes signals every write to the collection until ctx is done. The
	// error channel carries at most one terminal error.
	Changes(ctx context.Context) (<-chan struct{}, <-chan error)
}

// Snapshot is one state of the live list. Err distinguishes a failed
// subscription from an empty list.
type Snapshot struct {
	Items []admindomain.InboundApplication
	Err   error
}

// ReviewService describes operator read use-cases.
type ReviewService interface {
	List(ctx context.Context) ([]admindomain.InboundApplication, error)
	// Subscribe emits an initial snapshot and a fresh one after every change.
	// The channel closes when ctx is done or after an error snapshot.
	Subscribe(ctx context.Context) <-chan Snapshot
	Enabled() bool
}
