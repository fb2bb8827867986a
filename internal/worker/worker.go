package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/worker/domain"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ApplicationStore is the persistence the worker needs
type ApplicationStore interface {
	ClaimApplication(ctx context.Context, applicationID, workerID string, staleAfter time.Duration) (*domain.Application, error)
	GetJobOfferState(ctx context.Context, jobOfferID string) (*domain.JobOfferState, error)
	SubmitApplication(ctx context.Context, app *domain.Application) error
	RejectApplication(ctx context.Context, applicationID, reason string) error
	ReleaseApplication(ctx context.Context, applicationID, reason string) error
	FailApplication(ctx context.Context, applicationID, reason string) error
}

// Broker is the message queue the worker consumes from
type Broker interface {
	Qos(prefetchCount int) error
	Consume(consumerTag string) (<-chan amqp.Delivery, error)
	Ack(deliveryTag uint64) error
	Nack(deliveryTag uint64, requeue bool) error
	QueueName() string
}

// ErrDeliveriesClosed is returned by Start when the broker stops delivering messages
var ErrDeliveriesClosed = errors.New("rabbitmq delivery channel closed")

// Config holds worker configuration
type Config struct {
	Logger         *slog.Logger
	Store          ApplicationStore
	Broker         Broker
	WorkerID       string
	Concurrency    int
	PrefetchCount  int
	ProcessTimeout time.Duration
	RequeueDelay   time.Duration
}

// Worker consumes application messages and records their outcome
type Worker struct {
	logger         *slog.Logger
	store          ApplicationStore
	broker         Broker
	workerID       string
	concurrency    int
	prefetchCount  int
	processTimeout time.Duration
	requeueDelay   time.Duration
	now            func() time.Time
	applications   chan *domain.ApplicationMessage
	wg             sync.WaitGroup
	stopChan       chan struct{}
	stopOnce       sync.Once
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	prefetchCount := cfg.PrefetchCount
	if prefetchCount <= 0 {
		prefetchCount = concurrency
	}

	processTimeout := cfg.ProcessTimeout
	if processTimeout <= 0 {
		processTimeout = 30 * time.Second
	}

	requeueDelay := cfg.RequeueDelay
	if requeueDelay <= 0 {
		requeueDelay = 2 * time.Second
	}

	workerID := cfg.WorkerID
	if workerID == "" {
		workerID = defaultWorkerID()
	}

	return &Worker{
		logger:         cfg.Logger,
		store:          cfg.Store,
		broker:         cfg.Broker,
		workerID:       workerID,
		concurrency:    concurrency,
		prefetchCount:  prefetchCount,
		processTimeout: processTimeout,
		requeueDelay:   requeueDelay,
		now:            time.Now,
		applications:   make(chan *domain.ApplicationMessage),
		stopChan:       make(chan struct{}),
	}
}

func defaultWorkerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%s", host, uuid.NewString()[:8])
}

// Start consumes messages until ctx is canceled or the broker closes the delivery channel
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("process_timeout", w.processTimeout),
		slog.Duration("requeue_delay", w.requeueDelay),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return err
	}

	w.spawnWorkerPool(ctx)

	err = w.startMessageDispatcher(ctx, deliveries)

	// Workers drain what was dispatched and exit
	close(w.applications)

	return err
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.stopOnce.Do(func() {
		close(w.stopChan)
	})
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
