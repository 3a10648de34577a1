package scan

import (
	"sync"

	"github.com/pranshuparmar/memtree/pkg/model"
)

// Batch is the complete result of one scan pass in delivery order.
type Batch []*model.Node

// Queue hands whole batches from scan workers to the controller. Push never
// blocks a producer and TryPop never blocks the consumer.
type Queue struct {
	mu      sync.Mutex
	batches []Batch
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(b Batch) {
	q.mu.Lock()
	q.batches = append(q.batches, b)
	q.mu.Unlock()
}

func (q *Queue) TryPop() (Batch, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.batches) == 0 {
		return nil, false
	}
	b := q.batches[0]
	q.batches[0] = nil
	q.batches = q.batches[1:]
	return b, true
}

// Drain discards every queued batch and returns how many were dropped.
func (q *Queue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.batches)
	q.batches = nil
	return n
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.batches)
}
