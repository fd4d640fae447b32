package application

import (
	"context"
	"fmt"

	admindomain "github.com/livinglux/coliving-site/internal/admin/domain"
)

type reviewService struct {
	reader ApplicationReader
}

// NewReviewService creates the review use-case. reader may be nil when no
// store is configured.
func NewReviewService(reader ApplicationReader) ReviewService {
	return &reviewService{reader: reader}
}

func (s *reviewService) Enabled() bool {
	return s.reader != nil
}

func (s *reviewService) List(ctx context.Context) ([]admindomain.InboundApplication, error) {
	if s.reader == nil {
		return nil, ErrStoreDisabled
	}
	apps, err := s.reader.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	admindomain.SortNewestFirst(apps)
	return apps, nil
}

func (s *reviewService) Subscribe(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)

		if s.reader == nil {
			send(ctx, out, Snapshot{Err: ErrStoreDisabled})
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		changes, errs := s.reader.Changes(ctx)

		if !s.emit(ctx, out) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				send(ctx, out, Snapshot{Err: fmt.Errorf("watch applications: %w", err)})
				return
			case _, ok := <-changes:
				if !ok {
					// Readers send the terminal error before closing changes.
					if err := pending(errs); err != nil {
						send(ctx, out, Snapshot{Err: fmt.Errorf("watch applications: %w", err)})
					}
					return
				}
				if !s.emit(ctx, out) {
					return
				}
			}
		}
	}()

	return out
}

// emit re-reads the full list and sends it. It returns false once the
// subscription should end.
func (s *reviewService) emit(ctx context.Context, out chan<- Snapshot) bool {
	apps, err := s.List(ctx)
	if err != nil {
		send(ctx, out, Snapshot{Err: err})
		return false
	}
	if apps == nil {
		apps = []admindomain.InboundApplication{}
	}
	return send(ctx, out, Snapshot{Items: apps})
}

func pending(errs <-chan error) error {
	if errs == nil {
		return nil
	}
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

func send(ctx context.Context, out chan<- Snapshot, snap Snapshot) bool {
	select {
	case out <- snap:
		return true
	case <-ctx.Done():
		return false
	}
}
