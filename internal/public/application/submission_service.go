package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/livinglux/coliving-site/internal/public/domain"
)

// SubmissionDeps wires the submission use-case. Repo may be nil, in which
// case every submission fails with ErrStoreDisabled. Notifier and Recorder
// are optional.
type SubmissionDeps struct {
	Catalog  RoomCatalog
	Repo     ApplicationRepository
	Guard    SubmissionGuard
	Notifier Notifier
	Recorder SubmissionRecorder
}

type submissionService struct {
	deps SubmissionDeps
}

// NewSubmissionService creates the submission use-case.
func NewSubmissionService(deps SubmissionDeps) SubmissionService {
	return &submissionService{deps: deps}
}

func (s *submissionService) Enabled() bool {
	return s.deps.Repo != nil
}

func (s *submissionService) Submit(ctx context.Context, cmd SubmitApplicationCommand) (*domain.Application, error) {
	app, result, err := s.submit(ctx, cmd)
	if s.deps.Recorder != nil {
		s.deps.Recorder.ApplicationSubmitted(result)
	}
	return app, err
}

func (s *submissionService) submit(ctx context.Context, cmd SubmitApplicationCommand) (*domain.Application, string, error) {
	if s.deps.Repo == nil {
		return nil, "disabled", ErrStoreDisabled
	}

	property, room, err := s.deps.Catalog.Room(cmd.PropertyID, cmd.RoomID)
	if err != nil {
		return nil, "not_found", err
	}
	if !room.IsAvailable() {
		return nil, "unavailable", fmt.Errorf("%w: %s", ErrRoomUnavailable, room.Name)
	}

	app, err := domain.NewApplication(cmd.Input)
	if err != nil {
		return nil, "invalid", err
	}
	app.PropertyID = property.ID
	app.PropertyName = property.Title
	app.RoomID = room.ID
	app.RoomName = room.Name
	app.OwnerID = cmd.OwnerID

	if s.deps.Guard != nil {
		release, err := s.deps.Guard.Acquire(ctx, guardKey(cmd))
		if err != nil {
			if errors.Is(err, ErrSubmissionInFlight) {
				return nil, "conflict", err
			}
			return nil, "error", fmt.Errorf("acquire submission guard: %w", err)
		}
		defer release()
	}

	if err := s.deps.Repo.Create(ctx, app); err != nil {
		return nil, "error", fmt.Errorf("store application: %w", err)
	}

	if s.deps.Notifier != nil {
		s.deps.Notifier.Enqueue(*app)
	}
	return app, "ok", nil
}

func guardKey(cmd SubmitApplicationCommand) string {
	if cmd.OwnerID != "" {
		return cmd.OwnerID
	}
	return cmd.PropertyID + "/" + cmd.RoomID
}
