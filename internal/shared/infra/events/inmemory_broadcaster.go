package events

import (
	"context"
	"sync"

	sharedBus "github.com/davicafu/infopanel/internal/shared/infra/platform/bus"
)

// InMemoryBroadcaster reparte mensajes entre suscriptores del mismo proceso.
// Se usa en despliegues locales o cuando Redis no está disponible al arrancar.
type InMemoryBroadcaster struct {
	subscribers map[string][]chan sharedBus.Message
	mu          sync.RWMutex
}

// Verifica en tiempo de compilación que cumple la interfaz
var _ sharedBus.Broadcaster = (*InMemoryBroadcaster)(nil)

func NewInMemoryBroadcaster() *InMemoryBroadcaster {
	return &InMemoryBroadcaster{
		subscribers: make(map[string][]chan sharedBus.Message),
	}
}

// Publish entrega el mensaje a cada suscriptor del canal sin bloquear: si el
// buffer de un suscriptor está lleno, ese suscriptor lo pierde.
func (b *InMemoryBroadcaster) Publish(ctx context.Context, channel string, message []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	payload := make([]byte, len(message))
	copy(payload, message)

	for _, sub := range b.subscribers[channel] {
		select {
		case sub <- sharedBus.Message{Channel: channel, Payload: payload}:
		default:
		}
	}
	return nil
}

// Subscribe registra un oyente nuevo en el canal.
func (b *InMemoryBroadcaster) Subscribe(channel string, bufferSize int) <-chan sharedBus.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan sharedBus.Message, bufferSize)
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	return ch
}
