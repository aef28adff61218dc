package geom

import "testing"

func TestRingBufferFIFOOrder(t *testing.T) {
	rb := NewRingBuffer[int](3)
	rb.Enqueue(1)
	rb.Enqueue(2)
	rb.Enqueue(3)

	for _, want := range []int{1, 2, 3} {
		got, ok := rb.Dequeue()
		if !ok || got != want {
			t.Fatalf("Dequeue() = (%v, %v), want (%v, true)", got, ok, want)
		}
	}
	if _, ok := rb.Dequeue(); ok {
		t.Fatalf("Dequeue() on empty buffer returned ok=true")
	}
}

func TestRingBufferDropsWhenFull(t *testing.T) {
	rb := NewRingBuffer[int](2)
	if !rb.Enqueue(1) || !rb.Enqueue(2) {
		t.Fatalf("expected first two enqueues to succeed")
	}
	if rb.Enqueue(3) {
		t.Fatalf("expected enqueue past capacity to be dropped")
	}
	if rb.Len() != 2 {
		t.Fatalf("Len() = %v, want 2", rb.Len())
	}
}

func TestRingBufferWrapAround(t *testing.T) {
	rb := NewRingBuffer[int](2)
	rb.Enqueue(1)
	rb.Enqueue(2)
	rb.Dequeue()
	rb.Enqueue(3)

	got, _ := rb.Dequeue()
	if got != 2 {
		t.Fatalf("Dequeue() = %v, want 2", got)
	}
	got, _ = rb.Dequeue()
	if got != 3 {
		t.Fatalf("Dequeue() = %v, want 3", got)
	}
}
