package events

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
	sharedBus "github.com/davicafu/infopanel/internal/shared/infra/platform/bus"
)

// DefaultChannel es el canal único donde escuchan las pantallas.
const DefaultChannel = "infodisplay"

// Publisher implementa EventPublisher: serializar, guardar, difundir y
// notificar, en ese orden estricto.
type Publisher struct {
	store       sharedEvents.EventStore
	broadcaster sharedBus.Broadcaster
	channel     string
	log         *zap.Logger
}

func NewPublisher(store sharedEvents.EventStore, broadcaster sharedBus.Broadcaster, channel string, log *zap.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		store:       store,
		broadcaster: broadcaster,
		channel:     channel,
		log:         log,
	}
}

// Publish pasa un evento por los cuatro pasos. El broadcast sólo ocurre si
// el store aceptó el evento.
func (p *Publisher) Publish(ctx context.Context, evt sharedEvents.DomainEvent) error {
	log := p.log.With(
		zap.String("event_type", string(evt.EventType())),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID()),
	)

	// 1. Serializar
	env := sharedEvents.ToEnvelope(evt)
	data, err := json.Marshal(env)
	if err != nil {
		log.Error("Failed to serialize domain event", zap.Error(err))
		return sharedEvents.NewPublishingError(evt, fmt.Errorf("%w: %v", sharedEvents.ErrSerializationFailed, err))
	}

	// 2. Guardar en el log durable
	if err := p.store.Store(ctx, sharedEvents.NewRecord(env, data)); err != nil {
		log.Error("Failed to store domain event, skipping broadcast", zap.Error(err))
		return sharedEvents.NewPublishingError(evt, fmt.Errorf("%w: %v", sharedEvents.ErrStorageFailed, err))
	}
	log.Debug("Domain event stored")

	// 3. Difundir el sobre completo
	if err := p.broadcaster.Publish(ctx, p.channel, data); err != nil {
		log.Error("Failed to broadcast domain event", zap.String("channel", p.channel), zap.Error(err))
		return sharedEvents.NewPublishingError(evt, err)
	}

	// 4. Notificación gruesa, si el tipo tiene categoría
	category, ok := sharedEvents.NotificationFor(evt.EventType())
	if !ok {
		log.Debug("Domain event published (no notification category)")
		return nil
	}

	note, err := json.Marshal(sharedEvents.Notification{Type: category})
	if err != nil {
		return sharedEvents.NewPublishingError(evt, fmt.Errorf("%w: %v", sharedEvents.ErrSerializationFailed, err))
	}
	if err := p.broadcaster.Publish(ctx, p.channel, note); err != nil {
		log.Error("Failed to broadcast notification",
			zap.String("channel", p.channel), zap.String("category", string(category)), zap.Error(err))
		return sharedEvents.NewPublishingError(evt, err)
	}

	log.Debug("Domain event published", zap.String("category", string(category)))
	return nil
}

// PublishAll publica en orden y se detiene en el primer error. Lo ya
// publicado se queda publicado (éxito como prefijo, no todo-o-nada).
func (p *Publisher) PublishAll(ctx context.Context, evts []sharedEvents.DomainEvent) error {
	for i, evt := range evts {
		if err := p.Publish(ctx, evt); err != nil {
			p.log.Warn("⚠️ Publishing stopped, remaining events not attempted",
				zap.Int("published", i),
				zap.Int("not_attempted", len(evts)-i-1),
				zap.String("failed_event_type", string(evt.EventType())),
			)
			return err
		}
	}
	return nil
}

// Verificación estática
var _ sharedEvents.EventPublisher = (*Publisher)(nil)
