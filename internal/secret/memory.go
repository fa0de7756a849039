package secret

import (
	"sync"

	"github.com/dmitrijs2005/clipvault/internal/common"
)

// Memory is an in-memory Store used in tests and on platforms without a
// usable keyring. Secrets are copied on the way in and out.
type Memory struct {
	mu      sync.Mutex
	secrets map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{secrets: make(map[string][]byte)}
}

func memKey(service, account string) string {
	return service + "\x00" + account
}

func (m *Memory) Get(service, account string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.secrets[memKey(service, account)]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(service, account string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.secrets[memKey(service, account)] = v
	return nil
}

func (m *Memory) Delete(service, account string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.secrets, memKey(service, account))
	return nil
}
