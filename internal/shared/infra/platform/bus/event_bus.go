package bus

import "context"

// Broadcaster publica un mensaje ya serializado en un canal pub/sub.
// El protocolo del broker queda oculto detrás de los adapters.
type Broadcaster interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

// Message es lo que reciben los suscriptores en memoria.
type Message struct {
	Channel string
	Payload []byte
}
