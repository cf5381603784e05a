package events

// EventType es el discriminador de un evento ("agregado.accion").
type EventType string

// Tipos de evento conocidos. Cualquier tipo nuevo debe añadirse también a
// notificationTable, aunque sea con CategoryNone.
const (
	AnnouncementCreated  EventType = "announcement.created"
	AnnouncementUpdated  EventType = "announcement.updated"
	AnnouncementApproved EventType = "announcement.approved"
	AnnouncementRejected EventType = "announcement.rejected"
	AnnouncementDeleted  EventType = "announcement.deleted"

	CountdownCreated EventType = "countdown.created"
	CountdownUpdated EventType = "countdown.updated"
	CountdownDeleted EventType = "countdown.deleted"

	ModuleUpdated EventType = "module.updated"
	ModuleToggled EventType = "module.toggled"
)

// Category es la notificación gruesa que reciben los clientes ligeros.
type Category string

const (
	CategoryNone         Category = ""
	AnnouncementsUpdated Category = "announcements_updated"
	CountdownChanged     Category = "countdown_updated"
	ModulesUpdated       Category = "modules_updated"
)

// notificationTable es cerrada: una entrada por cada EventType declarado.
var notificationTable = map[EventType]Category{
	AnnouncementCreated:  AnnouncementsUpdated,
	AnnouncementUpdated:  AnnouncementsUpdated,
	AnnouncementApproved: AnnouncementsUpdated,
	AnnouncementRejected: AnnouncementsUpdated,
	AnnouncementDeleted:  AnnouncementsUpdated,

	CountdownCreated: CountdownChanged,
	CountdownUpdated: CountdownChanged,
	CountdownDeleted: CountdownChanged,

	ModuleUpdated: ModulesUpdated,
	ModuleToggled: ModulesUpdated,
}

// KnownEventTypes lista todos los tipos declarados, en orden estable.
func KnownEventTypes() []EventType {
	return []EventType{
		AnnouncementCreated, AnnouncementUpdated, AnnouncementApproved, AnnouncementRejected, AnnouncementDeleted,
		CountdownCreated, CountdownUpdated, CountdownDeleted,
		ModuleUpdated, ModuleToggled,
	}
}

// IsKnown indica si el tipo tiene decisión de notificación registrada.
func (t EventType) IsKnown() bool {
	_, ok := notificationTable[t]
	return ok
}

// NotificationFor devuelve la categoría asociada. ok=false significa que no
// hay que publicar notificación secundaria (tipo desconocido o CategoryNone).
func NotificationFor(t EventType) (Category, bool) {
	c, ok := notificationTable[t]
	if !ok || c == CategoryNone {
		return CategoryNone, false
	}
	return c, true
}

// Notification es el mensaje mínimo {type: categoría}. No lleva eventType,
// así los suscriptores lo distinguen del sobre completo.
type Notification struct {
	Type Category `json:"type"`
}
