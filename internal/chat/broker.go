package chat

import (
	"context"
	"sync"

	"github.com/rakasatria/folio/internal/models"
)

// Event is one pushed chat occurrence, fanned out to every connected
// participant except its author.
type Event struct {
	Type    string             `json:"type"`
	Message models.ChatMessage `json:"message"`
}

const EventMessage = "message"

type Handler func(Event)

// Broker carries events between hub instances so a message sent on one
// server reaches clients connected to another.
type Broker interface {
	Publish(ctx context.Context, ev Event) error
	// Subscribe invokes fn once per published event until stop is called.
	Subscribe(ctx context.Context, fn Handler) (stop func(), err error)
}

// MemoryBroker is the single-process Broker, used in tests and when no
// redis address is configured.
type MemoryBroker struct {
	mu   sync.Mutex
	next int
	subs map[int]Handler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[int]Handler)}
}

func (b *MemoryBroker) Publish(_ context.Context, ev Event) error {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(ev)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context, fn Handler) (func(), error) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}, nil
}
