package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/worker/domain"
)

// spawnWorkerPool spawns N worker goroutines based on concurrency configuration
func (w *Worker) spawnWorkerPool(ctx context.Context) {
	w.logger.Info("Spawning worker pool",
		slog.Int("concurrency", w.concurrency),
		slog.String("worker_id", w.workerID),
	)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.workerLoop(ctx, i)
	}

	w.logger.Info("Worker pool spawned successfully",
		slog.Int("worker_count", w.concurrency),
	)
}

// workerLoop is the main processing loop for each worker goroutine
func (w *Worker) workerLoop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	workerName := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("Worker goroutine started",
		slog.String("worker_name", workerName),
		slog.Int("worker_num", workerNum),
	)

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker goroutine stopping - stopChan closed",
				slog.String("worker_name", workerName),
			)
			return

		case <-ctx.Done():
			w.logger.Info("Worker goroutine stopping - context canceled",
				slog.String("worker_name", workerName),
			)
			return

		case msg, ok := <-w.applications:
			if !ok {
				w.logger.Info("Worker goroutine stopping - applications channel closed",
					slog.String("worker_name", workerName),
				)
				return
			}

			w.handleMessage(ctx, workerName, msg)
		}
	}
}

// handleMessage processes one message and settles it with ACK or NACK
func (w *Worker) handleMessage(ctx context.Context, workerName string, msg *domain.ApplicationMessage) {
	w.logger.Info("Worker received application",
		slog.String("worker_name", workerName),
		slog.String("application_id", msg.ApplicationID),
		slog.Uint64("delivery_tag", msg.DeliveryTag),
	)

	err := w.processApplication(ctx, msg)
	if err == nil {
		if ackErr := w.broker.Ack(msg.DeliveryTag); ackErr != nil {
			w.logger.Error("Failed to ACK message",
				slog.String("worker_name", workerName),
				slog.String("application_id", msg.ApplicationID),
				slog.String("error", ackErr.Error()),
			)
			return
		}
		w.logger.Info("Application processed successfully",
			slog.String("worker_name", workerName),
			slog.String("application_id", msg.ApplicationID),
		)
		return
	}

	w.logger.Error("Application processing failed",
		slog.String("worker_name", workerName),
		slog.String("application_id", msg.ApplicationID),
		slog.String("error", err.Error()),
	)

	requeue := shouldRequeue(err)
	if requeue {
		w.waitBeforeRequeue(ctx)
	}
	if nackErr := w.broker.Nack(msg.DeliveryTag, requeue); nackErr != nil {
		w.logger.Error("Failed to NACK message",
			slog.String("worker_name", workerName),
			slog.String("application_id", msg.ApplicationID),
			slog.String("error", nackErr.Error()),
		)
		return
	}

	w.logger.Info("Message NACKed",
		slog.String("worker_name", workerName),
		slog.String("application_id", msg.ApplicationID),
		slog.Bool("requeue", requeue),
	)
}

// waitBeforeRequeue holds a message back for requeueDelay before it is requeued.
// Shutdown cuts the wait short.
func (w *Worker) waitBeforeRequeue(ctx context.Context) {
	timer := time.NewTimer(w.requeueDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-w.stopChan:
	}
}

// shouldRequeue determines if a message should be requeued based on the error type
func shouldRequeue(err error) bool {
	// The application is already settled
	if errors.Is(err, domain.ErrApplicationAlreadyClaimed) {
		return false
	}

	if errors.Is(err, domain.ErrApplicationNotFound) {
		return false
	}

	if errors.Is(err, domain.ErrMaxRetriesExceeded) {
		return false
	}

	if errors.Is(err, domain.ErrInvalidPayload) {
		return false
	}

	var retryableErr *domain.RetryableError
	if errors.As(err, &retryableErr) {
		return true
	}

	// Default: don't requeue for unknown errors
	return false
}
