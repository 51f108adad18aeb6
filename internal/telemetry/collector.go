package telemetry

// Goroutine safety:
// The drain goroutine is the sole reader of c.ch and the sole writer to c.w.
// Collector.mu protects only the c.buf pointer (read by drain, written by
// SetRingBuffer). The ring buffer's own mu handles concurrent Push/Snapshot
// calls. No nested lock acquisition occurs: drain releases Collector.mu
// before calling rb.Push().

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// writerChanSize is the capacity of the async write channel.
	// At ~200 bytes/event, 4096 events buffers ~800KB.
	writerChanSize = 4096
)

// record carries both serialized bytes (for disk) and the original Event
// (for ring buffer). This avoids a lossy JSON round-trip through the ring
// buffer; fields like Dur (json:"-") survive in the ring copy.
type record struct {
	data []byte
	ev   Event
}

// Collector serializes events as JSONL via an async background writer.
// Goroutine-safe. All tracked events flow through a buffered channel to a
// drain goroutine that writes to disk and pushes to the ring buffer.
// Tracking never blocks and never surfaces an error to the caller.
type Collector struct {
	mu        sync.Mutex
	buf       *RingBuffer   // nil until SetRingBuffer
	sessionID string        // random hex, set once at creation
	ch        chan record   // buffered channel for async writes
	w         io.Writer     // destination (event log file)
	dropped   atomic.Uint64 // events dropped due to full channel, encode failure, or write error
	closed    atomic.Bool   // true after Close(); prevents send-on-closed-channel panic
	done      chan struct{} // closed when drain goroutine exits
	closeOnce sync.Once
}

// NewCollector creates a Collector writing JSONL to w asynchronously.
// Starts a background drain goroutine. Call Close() to flush and stop.
func NewCollector(w io.Writer) *Collector {
	var sid [8]byte
	_, _ = rand.Read(sid[:])

	c := &Collector{
		sessionID: fmt.Sprintf("%x", sid[:]),
		ch:        make(chan record, writerChanSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go c.drain()
	return c
}

// NewNullCollector creates a Collector that discards output.
// Callers should still call Close() to stop the drain goroutine.
func NewNullCollector() *Collector {
	return NewCollector(io.Discard)
}

// drain is the background goroutine that reads from ch and writes to disk + ring buffer.
func (c *Collector) drain() {
	defer close(c.done)
	for rec := range c.ch {
		if _, err := c.w.Write(rec.data); err != nil {
			c.dropped.Add(1)
		}

		c.mu.Lock()
		rb := c.buf
		c.mu.Unlock()

		if rb != nil {
			rb.Push(rec.ev)
		}
	}
}

// Track writes an event to the JSONL log (and ring buffer if attached).
// Sets Time (if zero) and SessionID. Goroutine-safe. Non-blocking: if the
// channel is full or the collector is closed, the event is dropped and the
// drop counter is incremented.
//
// Safe to call concurrently with Close(). If Close() races between the
// closed-flag check and the channel send, the resulting panic is recovered
// and the event is counted as dropped.
func (c *Collector) Track(e Event) {
	defer func() {
		if recover() != nil {
			c.dropped.Add(1)
		}
	}()

	if c.closed.Load() {
		c.dropped.Add(1)
		return
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = c.sessionID

	data, err := json.Marshal(e)
	if err != nil {
		c.dropped.Add(1)
		return
	}
	data = append(data, '\n')

	select {
	case c.ch <- record{data: data, ev: e}:
	default:
		c.dropped.Add(1)
	}
}

// Info tracks an info-level event.
func (c *Collector) Info(kind EventKind, comp string, msg string) {
	c.Track(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn tracks a warn-level event.
func (c *Collector) Warn(kind EventKind, comp string, msg string) {
	c.Track(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error tracks an error-level event. Nil err is safe (logged as empty string).
func (c *Collector) Error(kind EventKind, comp string, err error) {
	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	c.Track(Event{Level: LevelError, Kind: kind, Comp: comp, Err: errStr})
}

// SetRingBuffer attaches a ring buffer for live inspection.
func (c *Collector) SetRingBuffer(buf *RingBuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = buf
}

// Dropped returns the number of events dropped since creation.
func (c *Collector) Dropped() uint64 {
	return c.dropped.Load()
}

// Close flushes pending events, stops the drain goroutine, and reports
// any dropped events to stderr. Safe to call while other goroutines may
// still be calling Track(); those calls are dropped, not panicked.
func (c *Collector) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.ch)
		<-c.done

		if d := c.dropped.Load(); d > 0 {
			fmt.Fprintf(os.Stderr, "postforge: %d events dropped during session %s\n", d, c.sessionID)
		}
	})
}
