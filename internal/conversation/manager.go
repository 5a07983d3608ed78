// internal/conversation/manager.go
package conversation

import (
	"sync"

	apperrors "cinechat/internal/common/errors"
	"cinechat/internal/common/logger"
)

// Manager owns the in-memory session table and serializes all session
// mutation behind one mutex. Sessions are ephemeral; nothing is persisted.
type Manager struct {
	mu       sync.Mutex
	engine   *Engine
	sessions map[string]*Session
	logger   logger.Logger
}

func NewManager(engine *Engine, log logger.Logger) *Manager {
	return &Manager{
		engine:   engine,
		sessions: make(map[string]*Session),
		logger: log.With(map[string]interface{}{
			"component": "sessions",
		}),
	}
}

// Create registers a new session and returns its id.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.engine.NewSession()
	m.sessions[s.ID] = s
	return s
}

// Do runs fn with exclusive access to the named session. External calls
// (catalog, generation) must happen outside fn; only state transitions
// belong inside.
func (m *Manager) Do(id string, fn func(*Engine, *Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return apperrors.NewSessionUnknownError(id)
	}
	return fn(m.engine, s)
}

// Delete removes a session. Unknown ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
