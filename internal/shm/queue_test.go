package shm

import "testing"

func TestQueuePushPop(t *testing.T) {
	var q Queue

	if err := q.Push(WorkItem{Kind: WorkCompute}); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if got := q.Len(); got != 1 {
		t.Fatalf("Len() = %d, want 1", got)
	}

	item, err := q.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if item.Kind != WorkCompute {
		t.Fatalf("Kind = %v, want WorkCompute", item.Kind)
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() after Pop = %d, want 0", got)
	}

	if _, err := q.Pop(); err != ErrQueueEmpty {
		t.Fatalf("Pop on empty queue = %v, want ErrQueueEmpty", err)
	}
}

func TestQueueFillsUpAndDrains(t *testing.T) {
	var q Queue

	for i := 0; i < QueueCapacity-1; i++ {
		if err := q.Push(WorkItem{Kind: WorkKind(i % 2)}); err != nil {
			t.Fatalf("Push #%d: %v", i, err)
		}
	}
	if err := q.Push(WorkItem{}); err != ErrWorkQueueFull {
		t.Fatalf("Push past capacity = %v, want ErrWorkQueueFull", err)
	}

	for i := 0; i < QueueCapacity-1; i++ {
		if _, err := q.Pop(); err != nil {
			t.Fatalf("Pop #%d: %v", i, err)
		}
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() after draining = %d, want 0", got)
	}
}

func TestQueueWrapsIndicesAcrossManyCycles(t *testing.T) {
	var q Queue
	for cycle := 0; cycle < QueueCapacity*4; cycle++ {
		if err := q.Push(WorkItem{Kind: WorkUploadBuffer, Upload: UploadTarget(cycle % 5)}); err != nil {
			t.Fatalf("cycle %d Push: %v", cycle, err)
		}
		item, err := q.Pop()
		if err != nil {
			t.Fatalf("cycle %d Pop: %v", cycle, err)
		}
		if item.Upload != UploadTarget(cycle%5) {
			t.Fatalf("cycle %d Upload = %v, want %v", cycle, item.Upload, cycle%5)
		}
	}
}

func TestWorkItemDoneClosesBarrier(t *testing.T) {
	w := WorkItem{CompletionBarrier: make(chan struct{})}
	w.Done()
	select {
	case <-w.CompletionBarrier:
	default:
		t.Fatal("barrier not closed after Done")
	}

	// Done on a nil barrier must not panic.
	var w2 WorkItem
	w2.Done()
}
