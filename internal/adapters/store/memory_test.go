package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUpdateAndGet(t *testing.T) {
	m := NewMemory[int64, int]()

	_, ok := m.Get(1)
	assert.False(t, ok)

	m.Update(1, func(current int, exists bool) (int, bool) {
		assert.False(t, exists)
		return current + 5, true
	})

	v, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryUpdateDeletesWhenNotKept(t *testing.T) {
	m := NewMemory[int64, string]()
	m.Update(7, func(string, bool) (string, bool) { return "x", true })

	m.Update(7, func(current string, exists bool) (string, bool) {
		assert.True(t, exists)
		assert.Equal(t, "x", current)
		return "", false
	})

	_, ok := m.Get(7)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestMemoryDeleteAndValues(t *testing.T) {
	m := NewMemory[string, int]()
	m.Update("a", func(int, bool) (int, bool) { return 1, true })
	m.Update("b", func(int, bool) (int, bool) { return 2, true })

	assert.ElementsMatch(t, []int{1, 2}, m.Values())

	m.Delete("a")
	m.Delete("missing")
	assert.Equal(t, []int{2}, m.Values())
}

func TestMemoryConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	m := NewMemory[int64, int]()

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Update(1, func(current int, _ bool) (int, bool) { return current + 1, true })
		}()
	}
	wg.Wait()

	v, _ := m.Get(1)
	assert.Equal(t, 100, v)
}
