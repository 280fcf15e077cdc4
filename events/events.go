package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated      EventType = "user_created"
	EventTypeTransferCreated  EventType = "transfer_created"
	EventTypeTransferResolved EventType = "transfer_resolved"
	EventTypePostCreated      EventType = "post_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent represents a new user signup
type UserCreatedEvent struct {
	UserID   uuid.UUID
	Username string
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// TransferCreatedEvent represents a new transfer proposal or payment request
type TransferCreatedEvent struct {
	TransferID uuid.UUID
	FromUserID *uuid.UUID
	ToUserID   *uuid.UUID
	Amount     decimal.Decimal
	Status     string
}

func (e TransferCreatedEvent) Type() EventType {
	return EventTypeTransferCreated
}

// TransferResolvedEvent represents a transfer reaching a terminal state
type TransferResolvedEvent struct {
	TransferID uuid.UUID
	FromUserID *uuid.UUID
	ToUserID   *uuid.UUID
	Amount     decimal.Decimal
	Accepted   bool
}

func (e TransferResolvedEvent) Type() EventType {
	return EventTypeTransferResolved
}

// PostCreatedEvent represents a new feed post
type PostCreatedEvent struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	PostType string
}

func (e PostCreatedEvent) Type() EventType {
	return EventTypePostCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional wrapper around the main bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful DB commit.
// Uses a background context so event delivery outlives the request.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
