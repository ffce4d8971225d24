package ports_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/ribs/pkg/domain"
	"github.com/aretw0/ribs/pkg/ports"
)

// MockStore is an in-memory implementation of StateStore for testing purposes.
// States are kept as JSON to simulate serialization.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]byte),
	}
}

func (m *MockStore) Save(ctx context.Context, key string, state *domain.SavedState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.data[key] = b
	return nil
}

func (m *MockStore) Load(ctx context.Context, key string) (*domain.SavedState, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, domain.ErrCapsuleNotFound
	}
	var state domain.SavedState
	if err := json.Unmarshal(b, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestStateStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, NewMockStore())
}
