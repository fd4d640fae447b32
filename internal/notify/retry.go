package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MaxRetryAttempts is the total number of deliveries tried before a
// failure is abandoned.
const MaxRetryAttempts = 10

// RetryJob re-sends persisted failures on a cron schedule.
type RetryJob struct {
	store    FailureStore
	channels map[string]Channel
	recorder Recorder
	logger   *zap.Logger
	cron     *cron.Cron
	batch    int
}

// NewRetryJob returns a job that retries failures over channels.
func NewRetryJob(logger *zap.Logger, store FailureStore, channels []Channel, recorder Recorder) *RetryJob {
	byName := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		byName[ch.Name()] = ch
	}
	return &RetryJob{
		store:    store,
		channels: byName,
		recorder: recorder,
		logger:   logger,
		cron:     cron.New(),
		batch:    50,
	}
}

// Start schedules the job with spec, e.g. "@every 10m".
func (j *RetryJob) Start(spec string) error {
	_, err := j.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.Error("notification retry run failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule notification retry %q: %w", spec, err)
	}
	j.cron.Start()
	j.logger.Info("notification retry scheduled", zap.String("spec", spec))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (j *RetryJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce retries every pending failure once and reports how many were
// delivered.
func (j *RetryJob) RunOnce(ctx context.Context) (int, error) {
	pending, err := j.store.Pending(ctx, j.batch)
	if err != nil {
		return 0, fmt.Errorf("load pending notifications: %w", err)
	}

	delivered := 0
	for _, f := range pending {
		ch, ok := j.channels[f.Channel]
		if !ok {
			continue
		}
		sendErr := ch.Send(ctx, f.Message)
		if j.recorder != nil {
			j.recorder.NotificationSent(f.Channel, sendErr)
		}
		if sendErr == nil {
			if err := j.store.MarkDelivered(ctx, f.ID); err != nil {
				j.logger.Error("mark notification delivered", zap.String("id", f.ID), zap.Error(err))
				continue
			}
			delivered++
			continue
		}

		attempts := f.Attempts + 1
		abandon := attempts >= MaxRetryAttempts
		if err := j.store.MarkFailed(ctx, f.ID, attempts, sendErr, abandon); err != nil {
			j.logger.Error("mark notification failed", zap.String("id", f.ID), zap.Error(err))
		}
	}

	if len(pending) > 0 {
		j.logger.Info("notification retry run",
			zap.Int("pending", len(pending)),
			zap.Int("delivered", delivered),
		)
	}
	return delivered, nil
}
