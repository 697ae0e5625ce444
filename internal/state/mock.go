// internal/state/mock.go
package state

// Mock is a test double for Manager.
type Mock struct {
	sessions map[string]Session
	saveErr  error
	closed   bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{sessions: make(map[string]Session)}
}

func (m *Mock) GetSession(path string) (*Session, error) {
	s, ok := m.sessions[path]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &s, nil
}

func (m *Mock) SaveSession(s Session) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.Path] = s
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetSaveError(err error) { m.saveErr = err }

func (m *Mock) Closed() bool { return m.closed }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
