// Package persist writes finished analyses to the profile store in the
// background so that storage latency and failures never reach the caller.
package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonathan/redflag/internal/db"
	"github.com/jonathan/redflag/internal/types"
)

const (
	// DefaultBufferSize is the number of pending writes held before new ones are dropped.
	DefaultBufferSize = 64
	// DefaultWriteTimeout bounds a single store write.
	DefaultWriteTimeout = 10 * time.Second
)

// Store is the subset of *db.DB the queue writes to.
type Store interface {
	UpsertProfile(ctx context.Context, rec *db.ProfileRecord) error
}

// Queue is a fire-and-forget writer. Record never blocks and never fails.
type Queue struct {
	store        Store
	logger       *slog.Logger
	writeTimeout time.Duration
	now          func() time.Time

	mu     sync.Mutex
	closed bool
	jobs   chan *db.ProfileRecord
	done   chan struct{}
}

// Option configures a Queue.
type Option func(*Queue)

// WithBufferSize sets the pending write capacity.
func WithBufferSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.jobs = make(chan *db.ProfileRecord, n)
		}
	}
}

// WithWriteTimeout sets the per-write timeout.
func WithWriteTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.writeTimeout = d
		}
	}
}

// WithLogger sets the logger. The queue tags its lines with component=persist.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) {
		if l != nil {
			q.logger = l
		}
	}
}

// NewQueue starts a queue with a single worker writing to store.
func NewQueue(store Store, opts ...Option) *Queue {
	q := &Queue{
		store:        store,
		logger:       slog.Default(),
		writeTimeout: DefaultWriteTimeout,
		now:          time.Now,
		jobs:         make(chan *db.ProfileRecord, DefaultBufferSize),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.logger = q.logger.With("component", "persist")

	go q.run()
	return q
}

// Record enqueues result for storage. The request context is not used for the
// write itself, so a write outlives the request that produced it.
func (q *Queue) Record(_ context.Context, result *types.AnalysisResult) {
	if result == nil {
		return
	}
	rec := db.NewProfileRecord(result, q.now())

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("queue closed, dropping profile", "username", rec.Username)
		return
	}
	select {
	case q.jobs <- rec:
	default:
		q.logger.Warn("queue full, dropping profile", "username", rec.Username)
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for rec := range q.jobs {
		q.write(rec)
	}
}

func (q *Queue) write(rec *db.ProfileRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), q.writeTimeout)
	defer cancel()

	if err := q.store.UpsertProfile(ctx, rec); err != nil {
		q.logger.Error("failed to save profile", "username", rec.Username, "error", err)
		return
	}
	q.logger.Debug("saved profile", "username", rec.Username, "analysis_id", rec.AnalysisID)
}

// Close stops accepting records and waits for pending writes to finish or ctx to end.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
