package port

// Store is a key/value backend for process-wide state.
// Update runs fn under the key's lock; returning false from fn deletes the key.
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Update(key K, fn func(current V, exists bool) (next V, keep bool))
	Delete(key K)
	Values() []V
	Len() int
}
