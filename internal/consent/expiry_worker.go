package consent

import (
	"context"
	"log/slog"
	"time"
)

// ExpiryWorker periodically expires consents whose validity has ended.
// It runs as a background goroutine and is safe to stop via its context or the Stop method.
//
// An interval of 0 disables the worker.
type ExpiryWorker struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewExpiryWorker creates a worker but does not start it.
func NewExpiryWorker(service *Service, interval time.Duration, logger *slog.Logger) *ExpiryWorker {
	return &ExpiryWorker{
		service:  service,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start runs an expiry pass immediately, then repeats on the configured interval
// until ctx is cancelled or Stop is called.
func (w *ExpiryWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info("consent expiry worker disabled")
		close(w.done)
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)

	go w.loop(ctx)

	w.logger.Info("consent expiry worker started",
		slog.Duration("interval", w.interval))
}

// Stop signals the worker to exit and waits for it to finish.
func (w *ExpiryWorker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	<-w.done
}

func (w *ExpiryWorker) loop(ctx context.Context) {
	defer close(w.done)

	w.expire(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.expire(ctx)
		}
	}
}

func (w *ExpiryWorker) expire(ctx context.Context) {
	expired, err := w.service.ExpireConsents(ctx)
	if err != nil {
		w.logger.Warn("consent expiry pass failed",
			slog.String("error", err.Error()))
	}
	if expired > 0 {
		w.logger.Info("consents expired",
			slog.Int("count", expired))
	}
}
