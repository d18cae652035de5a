// internal/eventbus/bus.go
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"coursehub/internal/util"
)

// Handler consumes a fire-and-forget event. A returned error is delivered to
// the bus's ErrorReporter and never reaches the publisher.
type Handler func(ctx context.Context, payload any) error

// RequestHandler serves a request/reply event. The first handler to return
// determines the result delivered to the requester.
type RequestHandler func(ctx context.Context, payload any) (any, error)

// ErrorReporter receives failures from fire-and-forget handlers. It is the
// only place such failures become observable.
type ErrorReporter interface {
	HandlerFailed(topic string, err error)
}

// LogReporter reports handler failures to a structured logger.
type LogReporter struct {
	Logger *slog.Logger
}

// HandlerFailed implements ErrorReporter.
func (r LogReporter) HandlerFailed(topic string, err error) {
	r.Logger.Error("event handler failed", "topic", topic, "error", err)
}

// DefaultRequestTimeout bounds Request calls when no option overrides it.
const DefaultRequestTimeout = 5 * time.Second

// Option configures a Bus.
type Option func(*Bus)

// WithRequestTimeout overrides the deadline applied to Request calls.
func WithRequestTimeout(d time.Duration) Option {
	return func(b *Bus) { b.requestTimeout = d }
}

// Bus is an in-process publish/subscribe dispatcher. It is constructed
// explicitly and injected into every component that publishes or subscribes;
// there is no ambient singleton. Subscriptions happen once at process start,
// dispatch is read-many afterwards.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	repliers map[string][]RequestHandler

	reporter       ErrorReporter
	requestTimeout time.Duration
}

// New creates a Bus delivering handler failures to reporter.
func New(reporter ErrorReporter, opts ...Option) *Bus {
	b := &Bus{
		handlers:       make(map[string][]Handler),
		repliers:       make(map[string][]RequestHandler),
		reporter:       reporter,
		requestTimeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a fire-and-forget handler for a topic. Handlers are
// initiated in registration order on publish; completion order is not
// guaranteed.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// SubscribeRequest registers a reply-capable handler for a topic.
func (b *Bus) SubscribeRequest(topic string, h RequestHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.repliers[topic] = append(b.repliers[topic], h)
}

// Publish delivers the payload to every handler registered for topic. Each
// handler runs as its own goroutine; a handler's failure or panic never
// affects its siblings or the publisher. The dispatch context is detached
// from the caller's cancellation: side effects must outlive the trigger.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) {
	b.mu.RLock()
	hs := b.handlers[topic]
	b.mu.RUnlock()

	ctx = context.WithoutCancel(ctx)
	for _, h := range hs {
		go b.dispatch(ctx, topic, h, payload)
	}
}

func (b *Bus) dispatch(ctx context.Context, topic string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.reporter.HandlerFailed(topic, fmt.Errorf("handler panic: %v", r))
		}
	}()
	if err := h(ctx, payload); err != nil {
		b.reporter.HandlerFailed(topic, err)
	}
}

type reply struct {
	value any
	err   error
}

// Request publishes the payload to the topic's reply-capable handlers and
// returns the first reply, value or error. The wait is bounded: if no handler
// replies before the configured deadline the call fails with
// util.ErrRequestTimeout instead of hanging. Late replies are dropped.
func (b *Bus) Request(ctx context.Context, topic string, payload any) (any, error) {
	b.mu.RLock()
	hs := b.repliers[topic]
	b.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, b.requestTimeout)
	defer cancel()

	replies := make(chan reply, 1)
	for _, h := range hs {
		go func(h RequestHandler) {
			defer func() {
				if r := recover(); r != nil {
					b.reporter.HandlerFailed(topic, fmt.Errorf("handler panic: %v", r))
				}
			}()
			v, err := h(ctx, payload)
			select {
			case replies <- reply{value: v, err: err}:
			default: // a sibling already replied
			}
		}(h)
	}

	select {
	case r := <-replies:
		return r.value, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request %q: %w", topic, util.ErrRequestTimeout)
		}
		return nil, ctx.Err()
	}
}
