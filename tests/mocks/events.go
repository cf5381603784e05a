package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	sharedBus "github.com/davicafu/infopanel/internal/shared/infra/platform/bus"
)

// ---------------- Event store ----------------

// InMemoryEventStore es un event store append-only en memoria con
// inyección de fallos.
type InMemoryEventStore struct {
	mu      sync.Mutex
	Records []sharedEvents.Record
	// FailOn, si está definido, decide si un Store concreto falla.
	FailOn func(r sharedEvents.Record) error
	// Attempts cuenta todas las llamadas a Store, incluso las fallidas.
	Attempts []sharedEvents.Record
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{}
}

func (s *InMemoryEventStore) Store(ctx context.Context, r sharedEvents.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attempts = append(s.Attempts, r)
	if s.FailOn != nil {
		if err := s.FailOn(r); err != nil {
			return err
		}
	}
	for _, existing := range s.Records {
		if existing.EventID == r.EventID {
			return fmt.Errorf("duplicate event id %s", r.EventID)
		}
	}
	s.Records = append(s.Records, r)
	return nil
}

func (s *InMemoryEventStore) ListByAggregate(ctx context.Context, aggregateID string) ([]sharedEvents.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []sharedEvents.Record
	for _, r := range s.Records {
		if r.AggregateID == aggregateID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

// EventTypes devuelve los tipos almacenados, en orden.
func (s *InMemoryEventStore) EventTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		types = append(types, r.EventType)
	}
	return types
}

var _ sharedEvents.EventStore = (*InMemoryEventStore)(nil)
var _ sharedEvents.EventHistory = (*InMemoryEventStore)(nil)

// MockEventStore es la versión testify/mock.
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) Store(ctx context.Context, r sharedEvents.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// ---------------- Broadcaster ----------------

// RecordingBroadcaster guarda todo lo publicado.
type RecordingBroadcaster struct {
	mu       sync.Mutex
	Messages []sharedBus.Message
	// Err se devuelve en cada Publish si está definido.
	Err error
}

func (b *RecordingBroadcaster) Publish(ctx context.Context, channel string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.Err != nil {
		return b.Err
	}
	b.Messages = append(b.Messages, sharedBus.Message{Channel: channel, Payload: append([]byte(nil), message...)})
	return nil
}

// Payloads devuelve los mensajes como strings.
func (b *RecordingBroadcaster) Payloads() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, 0, len(b.Messages))
	for _, m := range b.Messages {
		out = append(out, string(m.Payload))
	}
	return out
}

var _ sharedBus.Broadcaster = (*RecordingBroadcaster)(nil)

// ---------------- Publisher ----------------

// ErrPublisherDown simula un publisher caído.
var ErrPublisherDown = errors.New("publisher down")

// RecordingPublisher implementa EventPublisher sin store ni broker.
type RecordingPublisher struct {
	mu        sync.Mutex
	Published []sharedEvents.DomainEvent
	Err       error
}

func (p *RecordingPublisher) Publish(ctx context.Context, evt sharedEvents.DomainEvent) error {
	return p.PublishAll(ctx, []sharedEvents.DomainEvent{evt})
}

func (p *RecordingPublisher) PublishAll(ctx context.Context, evts []sharedEvents.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.Published = append(p.Published, evts...)
	return nil
}

// Types devuelve los tipos publicados, en orden.
func (p *RecordingPublisher) Types() []sharedEvents.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]sharedEvents.EventType, 0, len(p.Published))
	for _, e := range p.Published {
		out = append(out, e.EventType())
	}
	return out
}

var _ sharedEvents.EventPublisher = (*RecordingPublisher)(nil)
