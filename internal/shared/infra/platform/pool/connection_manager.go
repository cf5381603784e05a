// Package pool simula un pool de conexiones al broker dentro de un proceso
// trabajador: una sola conexión "actual" que se revalida en cada uso.
package pool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrConnectionCreationFailed se devuelve cuando no se puede producir ninguna
// conexión. El manager no reintenta: eso lo decide quien llama.
var ErrConnectionCreationFailed = errors.New("connection creation failed")

// DefaultMaxRequests es el umbral de peticiones por conexión por defecto.
const DefaultMaxRequests = 100

// Hooks aísla al manager del transporte real, así los tests pueden simular
// caídas de conexión o cambios de proceso sin sockets.
type Hooks[C any] struct {
	Create    func(ctx context.Context, host string, port int) (C, error)
	Ping      func(ctx context.Context, conn C) error
	Close     func(conn C) error
	ProcessID func() int
}

// Handle es la conexión cacheada junto con el proceso que la creó.
//
// Cada GetOrCreate presta el handle a quien llama, que debe devolverlo con
// Release una sola vez. Un handle reemplazado queda retirado y se cierra
// cuando su último usuario lo devuelve.
type Handle[C any] struct {
	Conn      C
	PID       int
	CreatedAt time.Time

	m       *Manager[C]
	users   int // protegido por m.mu
	retired bool
	closed  bool
}

// Release devuelve el préstamo obtenido con GetOrCreate.
func (h *Handle[C]) Release() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	if h.users > 0 {
		h.users--
	}
	h.m.closeIfIdle(h)
}

// Manager guarda como mucho un Handle vivo por proceso.
type Manager[C any] struct {
	hooks       Hooks[C]
	maxRequests int
	log         *zap.Logger

	mu       sync.Mutex
	current  *Handle[C]
	pid      int
	requests int
}

// NewManager se construye una vez por proceso y se pasa por referencia.
func NewManager[C any](hooks Hooks[C], maxRequests int, log *zap.Logger) *Manager[C] {
	if hooks.ProcessID == nil {
		hooks.ProcessID = os.Getpid
	}
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	return &Manager[C]{
		hooks:       hooks,
		maxRequests: maxRequests,
		log:         log,
		pid:         hooks.ProcessID(),
	}
}

// GetOrCreate devuelve la conexión actual revalidándola: identidad del
// proceso, número de usos y ping. El handle devuelto está prestado: hay que
// llamar a Release al terminar de usarlo.
func (m *Manager[C]) GetOrCreate(ctx context.Context, host string, port int) (*Handle[C], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// 1. El proceso cambió (fork / respawn): la conexión heredada no sirve
	if pid := m.hooks.ProcessID(); pid != m.pid {
		m.log.Info("Process identity changed, dropping broker connection",
			zap.Int("old_pid", m.pid), zap.Int("pid", pid))
		m.discard()
		m.pid = pid
		m.requests = 0
	}

	// 2. Vida acotada, independiente de si la conexión sigue viva
	m.requests++
	if m.requests > m.maxRequests {
		m.log.Debug("Broker connection reached max requests, recycling",
			zap.Int("requests", m.requests-1), zap.Int("max_requests", m.maxRequests))
		m.discard()
		m.requests = 1
	}

	// 3. No hay conexión: crear
	if m.current == nil {
		return m.lease(m.create(ctx, host, port))
	}

	// 4. Hay conexión: comprobar que sigue viva
	if err := m.hooks.Ping(ctx, m.current.Conn); err != nil {
		m.log.Warn("Broker connection failed liveness check, replacing",
			zap.Int("pid", m.pid), zap.Error(err))
		m.discard()
		return m.lease(m.create(ctx, host, port))
	}
	return m.lease(m.current, nil)
}

// Do presta la conexión actual a fn y la devuelve al terminar.
func (m *Manager[C]) Do(ctx context.Context, host string, port int, fn func(conn C) error) error {
	h, err := m.GetOrCreate(ctx, host, port)
	if err != nil {
		return err
	}
	defer h.Release()
	return fn(h.Conn)
}

// Requests devuelve las peticiones servidas por la conexión actual.
func (m *Manager[C]) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// Close retira la conexión actual (apagado del proceso). Si alguien la está
// usando, se cierra cuando la devuelva.
func (m *Manager[C]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discard()
	m.requests = 0
}

func (m *Manager[C]) create(ctx context.Context, host string, port int) (*Handle[C], error) {
	conn, err := m.hooks.Create(ctx, host, port)
	if err != nil {
		m.log.Error("Failed to connect to broker",
			zap.String("host", host), zap.Int("port", port), zap.Error(err))
		return nil, fmt.Errorf("%w: %s:%d: %v", ErrConnectionCreationFailed, host, port, err)
	}

	if err := m.hooks.Ping(ctx, conn); err != nil {
		m.closeQuietly(conn)
		m.log.Error("New broker connection failed liveness check",
			zap.String("host", host), zap.Int("port", port), zap.Error(err))
		return nil, fmt.Errorf("%w: %s:%d: ping: %v", ErrConnectionCreationFailed, host, port, err)
	}

	m.current = &Handle[C]{Conn: conn, PID: m.pid, CreatedAt: time.Now().UTC(), m: m}
	m.log.Debug("Broker connection created",
		zap.String("host", host), zap.Int("port", port), zap.Int("pid", m.pid))
	return m.current, nil
}

func (m *Manager[C]) lease(h *Handle[C], err error) (*Handle[C], error) {
	if err != nil {
		return nil, err
	}
	h.users++
	return h, nil
}

// discard retira el handle actual; sólo se cierra ya si nadie lo usa.
func (m *Manager[C]) discard() {
	if m.current == nil {
		return
	}
	m.current.retired = true
	m.closeIfIdle(m.current)
	m.current = nil
}

func (m *Manager[C]) closeIfIdle(h *Handle[C]) {
	if !h.retired || h.closed || h.users > 0 {
		return
	}
	h.closed = true
	m.closeQuietly(h.Conn)
}

// closeQuietly ignora los errores de cierre: la conexión ya se da por perdida.
func (m *Manager[C]) closeQuietly(conn C) {
	if m.hooks.Close == nil {
		return
	}
	if err := m.hooks.Close(conn); err != nil {
		m.log.Debug("Ignoring error while closing broker connection", zap.Error(err))
	}
}
