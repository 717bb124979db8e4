package service

import "sync"

// SerialQueue runs tasks for the same key one at a time in submission order.
// Tasks for different keys run concurrently.
type SerialQueue struct {
	mu      sync.Mutex
	pending map[int64][]func()
	wg      sync.WaitGroup
}

func NewSerialQueue() *SerialQueue {
	return &SerialQueue{pending: make(map[int64][]func())}
}

func (q *SerialQueue) Enqueue(key int64, task func()) {
	q.mu.Lock()
	tasks, running := q.pending[key]
	q.pending[key] = append(tasks, task)
	q.mu.Unlock()

	if running {
		return
	}

	q.wg.Add(1)
	go q.drain(key)
}

// Wait blocks until every queued task has finished.
func (q *SerialQueue) Wait() {
	q.wg.Wait()
}

func (q *SerialQueue) drain(key int64) {
	defer q.wg.Done()

	for {
		q.mu.Lock()
		tasks := q.pending[key]
		if len(tasks) == 0 {
			delete(q.pending, key)
			q.mu.Unlock()
			return
		}

		task := tasks[0]
		q.pending[key] = tasks[1:]
		q.mu.Unlock()

		task()
	}
}
