package auth

import (
	"context"
	"sync"
	"time"
)

// Activity event types emitted by the auth flows.
const (
	ActivityLoginSuccess   = "auth.login.success"
	ActivityLoginFailure   = "auth.login.failure"
	ActivityAccountCreated = "auth.account.created"
)

// ActivityEvent describes a single auth side effect worth recording.
type ActivityEvent struct {
	EventType  string         `json:"event_type"`
	UserID     string         `json:"user_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// ActivitySink receives activity events. Implementations must not block the
// caller: request handlers report activity after the response is committed
// and a sink failure never surfaces to the client.
type ActivitySink interface {
	Record(ctx context.Context, event ActivityEvent) error
}

// ActivitySinkFunc adapts a function to the ActivitySink interface.
type ActivitySinkFunc func(ctx context.Context, event ActivityEvent) error

func (f ActivitySinkFunc) Record(ctx context.Context, event ActivityEvent) error {
	return f(ctx, event)
}

type noopActivitySink struct{}

func (noopActivitySink) Record(context.Context, ActivityEvent) error {
	return nil
}

// NoopActivitySink returns a sink that discards every event.
func NoopActivitySink() ActivitySink {
	return noopActivitySink{}
}

func normalizeActivitySink(sink ActivitySink) ActivitySink {
	if sink == nil {
		return noopActivitySink{}
	}
	return sink
}

func normalizeActivityEvent(event ActivityEvent) ActivityEvent {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return event
}

// AsyncActivitySink decouples activity recording from the request path. A
// single worker drains a buffered queue and hands events to the wrapped
// sink. When the queue is full the event is dropped and counted, never
// blocking the producer.
type AsyncActivitySink struct {
	sink   ActivitySink
	logger Logger

	queue  chan ActivityEvent
	done   chan struct{}
	closed sync.Once

	mu      sync.Mutex
	dropped int64
}

// DefaultActivityQueueSize is used when no explicit size is configured.
const DefaultActivityQueueSize = 256

// NewAsyncActivitySink wraps sink with a buffered, single worker queue.
func NewAsyncActivitySink(sink ActivitySink, size int) *AsyncActivitySink {
	if sink == nil {
		sink = NoopActivitySink()
	}
	if size <= 0 {
		size = DefaultActivityQueueSize
	}

	a := &AsyncActivitySink{
		sink:   sink,
		logger: defLogger{},
		queue:  make(chan ActivityEvent, size),
		done:   make(chan struct{}),
	}

	go a.run()

	return a
}

func (a *AsyncActivitySink) WithLogger(l Logger) *AsyncActivitySink {
	if l != nil {
		a.logger = l
	}
	return a
}

// Record enqueues the event without blocking. Events submitted after Close
// or while the queue is full are dropped.
func (a *AsyncActivitySink) Record(_ context.Context, event ActivityEvent) error {
	event = normalizeActivityEvent(event)

	select {
	case <-a.done:
		a.countDrop(event)
		return nil
	default:
	}

	select {
	case a.queue <- event:
	default:
		a.countDrop(event)
	}

	return nil
}

// Dropped reports how many events were discarded due to backpressure or
// shutdown.
func (a *AsyncActivitySink) Dropped() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dropped
}

// Close stops intake and drains events already queued.
func (a *AsyncActivitySink) Close() {
	a.closed.Do(func() {
		close(a.done)
	})
}

func (a *AsyncActivitySink) countDrop(event ActivityEvent) {
	a.mu.Lock()
	a.dropped++
	a.mu.Unlock()
	a.logger.Warn("activity sink queue full, dropping event: %s", event.EventType)
}

func (a *AsyncActivitySink) run() {
	for {
		select {
		case event := <-a.queue:
			a.deliver(event)
		case <-a.done:
			for {
				select {
				case event := <-a.queue:
					a.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (a *AsyncActivitySink) deliver(event ActivityEvent) {
	if err := a.sink.Record(context.Background(), event); err != nil {
		a.logger.Error("activity sink record failed: %s: %v", event.EventType, err)
	}
}
