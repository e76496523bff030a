package shm

import "sync/atomic"

// QueueCapacity is the fixed number of slots in a Queue, matching the
// original BeamformWorkQueue's work_items[1<<6].
const QueueCapacity = 1 << 6

const queueMask = QueueCapacity - 1

// Queue is a single-producer/single-consumer ring buffer of WorkItem,
// backed by one packed 64-bit atomic word: the low 32 bits hold the
// write index, the high 32 bits the read index. Producer and consumer
// each advance their own half with a plain add, so no CAS is needed on
// the hot path.
//
// Reserve/Commit are split so a producer can populate an item's fields
// before publishing it, and so a consumer can read an item before
// advancing past it. This mirrors beamform_work_queue_push/push_commit
// and beamform_work_queue_pop/pop_commit in the original C source.
type Queue struct {
	index atomic.Uint64
	items [QueueCapacity]WorkItem
}

func splitIndex(packed uint64) (widx, ridx uint32) {
	return uint32(packed), uint32(packed >> 32)
}

// Reserve returns a pointer to the next free slot for the producer to
// populate, without yet making it visible to the consumer. It returns
// ErrWorkQueueFull if the ring is full.
func (q *Queue) Reserve() (*WorkItem, error) {
	packed := q.index.Load()
	widx, ridx := splitIndex(packed)
	if widx-ridx >= QueueCapacity-1 {
		return nil, ErrWorkQueueFull
	}
	item := &q.items[widx&queueMask]
	*item = WorkItem{}
	return item, nil
}

// Commit publishes the most recently Reserve'd slot by advancing the
// write index. Must be called exactly once per successful Reserve, in
// order.
func (q *Queue) Commit() {
	q.index.Add(1)
}

// Push reserves a slot, populates it with item, and commits it in one
// call. Returns ErrWorkQueueFull if the ring has no free slot.
func (q *Queue) Push(item WorkItem) error {
	slot, err := q.Reserve()
	if err != nil {
		return err
	}
	*slot = item
	q.Commit()
	return nil
}

// Peek returns a pointer to the next committed-but-unconsumed item
// without advancing the read index. It returns ErrQueueEmpty if the
// producer has not committed past the consumer's current position.
func (q *Queue) Peek() (*WorkItem, error) {
	packed := q.index.Load()
	widx, ridx := splitIndex(packed)
	if widx == ridx {
		return nil, ErrQueueEmpty
	}
	return &q.items[ridx&queueMask], nil
}

// PopCommit advances the read index past the item last returned by
// Peek, making its slot available for reuse by the producer.
func (q *Queue) PopCommit() {
	q.index.Add(1 << 32)
}

// Pop is the Peek+PopCommit convenience form for consumers that process
// an item synchronously and have no need to hold it across a yield
// point.
func (q *Queue) Pop() (WorkItem, error) {
	item, err := q.Peek()
	if err != nil {
		return WorkItem{}, err
	}
	v := *item
	q.PopCommit()
	return v, nil
}

// Len reports the number of committed, unconsumed items currently in
// the queue.
func (q *Queue) Len() int {
	packed := q.index.Load()
	widx, ridx := splitIndex(packed)
	return int((widx - ridx) & queueMask)
}

// Reset returns the queue to its empty state. Not safe for concurrent
// use with Push/Pop.
func (q *Queue) Reset() {
	q.index.Store(0)
}
