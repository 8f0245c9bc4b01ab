package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/requestcontext"
)

const (
	defaultInboxSize      = 256
	defaultDeliverTimeout = 5 * time.Second
)

// Publisher accepts events from domain services and delivers them to a sink
// on a background goroutine, so audit writes never sit on the request path.
// Close drains the buffered events before returning.
type Publisher struct {
	sink    Sink
	logger  *slog.Logger
	inbox   chan Event
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	timeout time.Duration
}

type PublisherOption func(p *Publisher)

func WithLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithInboxSize sets the event buffer. Emit blocks once the buffer fills.
func WithInboxSize(size int) PublisherOption {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

// WithDeliverTimeout bounds each sink write.
func WithDeliverTimeout(timeout time.Duration) PublisherOption {
	return func(p *Publisher) {
		p.timeout = timeout
	}
}

// NewPublisher starts the delivery goroutine immediately.
func NewPublisher(sink Sink, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		sink:    sink,
		logger:  slog.Default(),
		inbox:   make(chan Event, defaultInboxSize),
		quit:    make(chan struct{}),
		timeout: defaultDeliverTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Emit enriches the event from the request context and queues it. It blocks
// only when the inbox is full, and gives up if ctx is done first.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.Actor == "" {
		event.Actor = requestcontext.Actor(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Device == "" {
		event.Device = requestcontext.DeviceSummary(ctx)
	}

	select {
	case <-p.quit:
		return dErrors.New(dErrors.CodeInvalidState, "audit publisher closed")
	default:
	}

	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return dErrors.New(dErrors.CodeInvalidState, "audit publisher closed")
	}
}

// Close stops accepting events, drains the inbox, and waits for delivery.
func (p *Publisher) Close() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for {
		select {
		case event := <-p.inbox:
			p.deliver(event)
		case <-p.quit:
			for {
				select {
				case event := <-p.inbox:
					p.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (p *Publisher) deliver(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.sink.Append(ctx, event); err != nil {
		p.logger.Error("audit event dropped",
			"action", string(event.Action),
			"person_key", event.PersonKey.String(),
			"error", err,
		)
	}
}
