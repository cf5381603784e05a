package events

// AggregateRoot se embebe en los agregados que registran eventos.
// El buffer es privado del agregado: nunca se comparte entre instancias.
type AggregateRoot struct {
	domainEvents []DomainEvent
}

// RecordEvent añade un evento al buffer. No valida nada.
func (a *AggregateRoot) RecordEvent(e DomainEvent) {
	a.domainEvents = append(a.domainEvents, e)
}

// DomainEvents devuelve una copia del buffer sin vaciarlo.
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.domainEvents))
	copy(out, a.domainEvents)
	return out
}

// ClearDomainEvents vacía el buffer.
func (a *AggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// Recorder es lo que ve una operación de un agregado.
type Recorder interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

var _ Recorder = (*AggregateRoot)(nil)
