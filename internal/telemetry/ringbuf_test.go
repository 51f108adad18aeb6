package telemetry

import (
	"fmt"
	"sync"
	"testing"
)

func TestRingBufferPushAndSnapshot(t *testing.T) {
	rb := NewRingBuffer(4)

	rb.Push(Event{Kind: KindStartup, Msg: "a"})
	rb.Push(Event{Kind: KindTrendsFetch, Msg: "b"})

	snap := rb.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 events, got %d", len(snap))
	}
	if snap[0].Msg != "a" || snap[1].Msg != "b" {
		t.Errorf("snapshot out of order: %v", snap)
	}
}

func TestRingBufferOverwrite(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 5; i++ {
		rb.Push(Event{Kind: KindTrendsFetch, Msg: fmt.Sprintf("%d", i)})
	}

	snap := rb.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events after overflow, got %d", len(snap))
	}
	// Oldest two were overwritten.
	want := []string{"2", "3", "4"}
	for i, w := range want {
		if snap[i].Msg != w {
			t.Errorf("snap[%d].Msg = %q, want %q", i, snap[i].Msg, w)
		}
	}
}

func TestRingBufferLast(t *testing.T) {
	rb := NewRingBuffer(8)
	for i := 0; i < 5; i++ {
		rb.Push(Event{Kind: KindTrendsFetch, Msg: fmt.Sprintf("%d", i)})
	}

	last := rb.Last(2)
	if len(last) != 2 {
		t.Fatalf("expected 2 events, got %d", len(last))
	}
	if last[0].Msg != "3" || last[1].Msg != "4" {
		t.Errorf("Last(2) wrong: %v", last)
	}

	if got := rb.Last(100); len(got) != 5 {
		t.Errorf("Last(100) should return all 5 events, got %d", len(got))
	}
	if got := rb.Last(0); got != nil {
		t.Errorf("Last(0) should be nil, got %v", got)
	}
}

func TestRingBufferStats(t *testing.T) {
	rb := NewRingBuffer(16)
	rb.Push(Event{Kind: KindGenerateStart})
	rb.Push(Event{Kind: KindGenerateComplete})
	rb.Push(Event{Kind: KindGenerateStart})

	stats := rb.Stats()
	if stats[KindGenerateStart] != 2 {
		t.Errorf("expected 2 gen.start, got %d", stats[KindGenerateStart])
	}
	if stats[KindGenerateComplete] != 1 {
		t.Errorf("expected 1 gen.complete, got %d", stats[KindGenerateComplete])
	}
}

func TestRingBufferExtraMapCopied(t *testing.T) {
	rb := NewRingBuffer(4)
	extra := map[string]any{"k": "v1"}
	rb.Push(Event{Kind: KindStartup, Extra: extra})

	extra["k"] = "v2"

	snap := rb.Snapshot()
	if snap[0].Extra["k"] != "v1" {
		t.Errorf("Extra map should be copied on Push, got %v", snap[0].Extra["k"])
	}
}

func TestRingBufferConcurrent(t *testing.T) {
	rb := NewRingBuffer(64)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rb.Push(Event{Kind: KindTrendsFetch})
				rb.Snapshot()
				rb.Len()
			}
		}()
	}
	wg.Wait()

	if rb.Len() != 64 {
		t.Errorf("buffer should be full at capacity 64, got %d", rb.Len())
	}
}
