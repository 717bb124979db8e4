package store

import "sync"

// Memory is an in-process map guarded by a mutex. State is lost on restart.
type Memory[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]V
}

func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{items: make(map[K]V)}
}

func (m *Memory[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.items[key]
	return v, ok
}

// Update performs a read-modify-write of a single key. fn must not call back into the store.
func (m *Memory[K, V]) Update(key K, fn func(current V, exists bool) (V, bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, exists := m.items[key]
	next, keep := fn(current, exists)
	if !keep {
		delete(m.items, key)
		return
	}

	m.items[key] = next
}

func (m *Memory[K, V]) Delete(key K) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

func (m *Memory[K, V]) Values() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	values := make([]V, 0, len(m.items))
	for _, v := range m.items {
		values = append(values, v)
	}

	return values
}

func (m *Memory[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}
