package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/livinglux/coliving-site/internal/public/domain"
	"go.uber.org/zap"
)

// Channel is one delivery route.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// FailedNotification is a delivery that exhausted its attempts.
type FailedNotification struct {
	ID            string
	Channel       string
	ApplicationID string
	Message       Message
	Error         string
	Attempts      int
	Status        string
	CreatedAt     time.Time
	LastTriedAt   time.Time
}

const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
	StatusAbandoned = "abandoned"
)

const failureSaveTimeout = 5 * time.Second

// FailureStore persists failed deliveries for the retry job.
type FailureStore interface {
	Save(ctx context.Context, f FailedNotification) error
	Pending(ctx context.Context, limit int) ([]FailedNotification, error)
	MarkDelivered(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, attempts int, cause error, abandon bool) error
}

// Recorder counts delivery attempts per channel.
type Recorder interface {
	NotificationSent(channel string, err error)
}

// Options tunes a Notifier.
type Options struct {
	Attempts   int
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Notifier fans an application out to every channel in the background.
type Notifier struct {
	channels []Channel
	failures FailureStore
	recorder Recorder
	logger   *zap.Logger
	opts     Options
	wg       sync.WaitGroup
}

// NewNotifier builds a notifier over channels. failures and recorder may
// be nil.
func NewNotifier(logger *zap.Logger, channels []Channel, failures FailureStore, recorder Recorder, opts Options) *Notifier {
	if opts.Attempts < 1 {
		opts.Attempts = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 200 * time.Millisecond
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Notifier{channels: channels, failures: failures, recorder: recorder, logger: logger, opts: opts}
}

// Enqueue notifies the operator about app without blocking the caller.
func (n *Notifier) Enqueue(app domain.Application) {
	if len(n.channels) == 0 {
		return
	}
	msg := BuildApplicationMessage(MailFromApplication(app))

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.opts.Timeout)
		defer cancel()
		n.deliver(ctx, app.ID, msg)
	}()
}

// Wait blocks until background deliveries have finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ctx context.Context, applicationID string, msg Message) {
	for _, ch := range n.channels {
		err := n.sendWithRetry(ctx, ch, msg)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrNotConfigured) {
			continue
		}
		n.logger.Warn("notification delivery failed",
			zap.String("channel", ch.Name()),
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
		n.persistFailure(ch.Name(), applicationID, msg, err)
	}
}

func (n *Notifier) sendWithRetry(ctx context.Context, ch Channel, msg Message) error {
	var lastErr error
	for i := 0; i < n.opts.Attempts; i++ {
		lastErr = ch.Send(ctx, msg)
		if n.recorder != nil && !errors.Is(lastErr, ErrNotConfigured) {
			n.recorder.NotificationSent(ch.Name(), lastErr)
		}
		if lastErr == nil || errors.Is(lastErr, ErrNotConfigured) {
			return lastErr
		}
		if i < n.opts.Attempts-1 {
			select {
			case <-ctx.Done():
				return lastErr
			case <-time.After(n.opts.RetryDelay):
			}
		}
	}
	return lastErr
}

// persistFailure saves on a fresh deadline; the delivery context may
// already have expired.
func (n *Notifier) persistFailure(channel, applicationID string, msg Message, cause error) {
	if n.failures == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), failureSaveTimeout)
	defer cancel()
	now := time.Now().UTC()
	err := n.failures.Save(ctx, FailedNotification{
		Channel:       channel,
		ApplicationID: applicationID,
		Message:       msg,
		Error:         cause.Error(),
		Attempts:      n.opts.Attempts,
		Status:        StatusPending,
		CreatedAt:     now,
		LastTriedAt:   now,
	})
	if err != nil {
		n.logger.Error("failed to persist notification failure", zap.String("channel", channel), zap.Error(err))
	}
}
