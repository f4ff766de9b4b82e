package store

// Memory is a map-backed Slot for tests and throwaway sessions.
type Memory struct {
	data map[string][]byte

	// Error injection for testing
	GetErr error
	SetErr error

	// Writes counts successful Set calls.
	Writes int
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Set(key string, data []byte) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = append([]byte(nil), data...)
	m.Writes++
	return nil
}
