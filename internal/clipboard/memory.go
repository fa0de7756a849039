package clipboard

import "sync"

// MemorySource is a deterministic in-memory Source for tests. SetContent
// replaces the clipboard and bumps the change counter, mirroring how a real
// pasteboard behaves on copy.
type MemorySource struct {
	mu      sync.Mutex
	counter uint64
	reps    Representations

	// Fail, when set, is returned by every adapter call. Lets tests
	// exercise the watcher's error handling.
	Fail error
}

func NewMemorySource() *MemorySource {
	return &MemorySource{}
}

// SetContent places new content on the fake clipboard and increments the
// change counter.
func (m *MemorySource) SetContent(reps Representations) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reps = reps
	m.counter++
}

// SetFail makes subsequent adapter calls return err (nil restores normal
// behavior).
func (m *MemorySource) SetFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fail = err
}

func (m *MemorySource) ChangeCounter() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return 0, m.Fail
	}
	return m.counter, nil
}

func (m *MemorySource) Read() (*Representations, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	reps := m.reps
	return &reps, nil
}

func (m *MemorySource) Write(reps *Representations) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.reps = *reps
	m.counter++
	return nil
}

// Current returns the fake clipboard content, for assertions.
func (m *MemorySource) Current() Representations {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reps
}
