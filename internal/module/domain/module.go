package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	sharedEvents "github.com/davicafu/infopanel/internal/shared/domain/events"
)

const AggregateType = "Module"

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Module es un bloque de la pantalla (tiempo, tranvía, calendario...) que se
// puede activar, renombrar o reordenar. La clave es su identidad.
type Module struct {
	sharedEvents.AggregateRoot `json:"-"`

	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	Position  int       `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewModule no registra eventos: los módulos se siembran al arrancar.
func NewModule(key, name string, position int, enabled bool) (*Module, error) {
	if !keyPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: invalid key %q", ErrInvalidModule, key)
	}
	if err := validate(name, position); err != nil {
		return nil, err
	}
	return &Module{
		Key:       key,
		Name:      strings.TrimSpace(name),
		Enabled:   enabled,
		Position:  position,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Update cambia nombre y posición. Sin cambios reales no registra evento.
func (m *Module) Update(name string, position int) error {
	if err := validate(name, position); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == m.Name && position == m.Position {
		return nil
	}
	m.Name = name
	m.Position = position
	m.UpdatedAt = time.Now().UTC()
	m.RecordEvent(ModuleUpdatedEvent{BaseEvent: m.base(), Name: m.Name, Position: m.Position})
	return nil
}

// SetEnabled sólo registra module.toggled si el valor cambia.
func (m *Module) SetEnabled(enabled bool) {
	if m.Enabled == enabled {
		return
	}
	m.Enabled = enabled
	m.UpdatedAt = time.Now().UTC()
	m.RecordEvent(ModuleToggledEvent{BaseEvent: m.base(), Enabled: m.Enabled})
}

func (m *Module) Toggle() {
	m.SetEnabled(!m.Enabled)
}

func (m *Module) base() sharedEvents.BaseEvent {
	return sharedEvents.NewBaseEvent(m.Key, AggregateType)
}

func validate(name string, position int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidModule)
	}
	if position < 0 {
		return fmt.Errorf("%w: position must be >= 0", ErrInvalidModule)
	}
	return nil
}

// DefaultModules son los módulos con los que arranca una instalación nueva.
func DefaultModules() []*Module {
	defaults := []struct {
		key, name string
	}{
		{"weather", "Tiempo"},
		{"tram", "Tranvía"},
		{"calendar", "Calendario"},
		{"announcements", "Anuncios"},
		{"countdowns", "Cuentas atrás"},
	}
	out := make([]*Module, 0, len(defaults))
	for i, d := range defaults {
		m, _ := NewModule(d.key, d.name, i, true)
		out = append(out, m)
	}
	return out
}
