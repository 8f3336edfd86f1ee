// Package ioloop implements the background I/O thread of spec §5: a
// single OS thread that polls pipe reads/writes and process-exit
// events, appending a (callback, payload) pair to a "transfers" queue
// for every completion, and signaling the main thread through a
// device-provided wakeup. The main thread drains the queue and runs
// each callback synchronously between device events; no Resource,
// Log, or View is ever touched from the background goroutine itself.
//
// Grounded on internal/integration/process's Supervisor/Process pair
// for the background process-lifecycle shape, and on spec §5's
// "producer appends + atomic signal, consumer moves the tail"
// discipline for the transfers queue — the only state shared across
// the goroutine boundary here is Scheduler.queue, guarded by a single
// mutex, exactly as spec §5 requires.
package ioloop

import (
	"sync"
)

// Completion is what a background event becomes once it reaches the
// transfers queue: the kernel-side outcome (process exit, or a pipe
// becoming ready) paired with enough data for the callback to act on
// it without touching the background goroutine's own state.
type Completion struct {
	// ExitCode and Errno are populated for process-exit completions;
	// Errno carries the underlying error, matching spec §7's
	// io-failure kind (the Completion record stores exit code and
	// errno, surfaced to the Refraction via its annotation).
	ExitCode int
	Errno    error

	// Data carries bytes read from a pipe for a read completion. A
	// nil Data with Errno == nil and EOF == true signals the pipe
	// reached end of file; interrupt() (see Manager.Interrupt) ends
	// the process, whose final completion carries a zero-length Data
	// with EOF set, per spec §5's
	// "forces the next transition to perform a zero-length transfer
	// and finalize".
	Data []byte
	EOF  bool
}

// Callback is run synchronously on the main thread once its Completion
// is drained from the queue. It must tolerate the Resource or
// Refraction it targets having been closed or mutated since the
// background event fired — spec §5 requires callbacks to track state
// via Position, not raw offsets, for exactly this reason.
type Callback func(Completion)

// transfer is one queued (callback, payload) pair.
type transfer struct {
	callback Callback
	payload  Completion
}

// Scheduler owns the transfers queue and the wakeup signal a concrete
// Device implementation uses to interrupt the main thread's blocking
// TransferEvent call. Scheduler itself never runs editor logic; it
// only accumulates transfers and lets the main thread claim them.
type Scheduler struct {
	mu     sync.Mutex
	queue  []transfer
	wakeup chan struct{}
}

// New creates an empty Scheduler. The wakeup channel has a buffer of
// 1, which is sufficient since the channel only needs to carry "the
// queue is non-empty", not a count.
func New() *Scheduler {
	return &Scheduler{wakeup: make(chan struct{}, 1)}
}

// Wakeup returns the channel a Device's event loop selects on
// alongside its own input source, so a background completion can
// unblock a pending TransferEvent call.
func (s *Scheduler) Wakeup() <-chan struct{} {
	return s.wakeup
}

// push appends a transfer and signals Wakeup without blocking. Called
// only from background goroutines (one per supervised process or
// pipe), never from the main thread.
func (s *Scheduler) push(cb Callback, payload Completion) {
	s.mu.Lock()
	s.queue = append(s.queue, transfer{callback: cb, payload: payload})
	s.mu.Unlock()

	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

// Drain claims every transfer queued so far and runs their callbacks
// in FIFO order, matching spec §5's "once drained, execute in FIFO
// order with respect to the completion of their system event". This
// is the only method the main thread calls; everything else in this
// package runs off-thread.
func (s *Scheduler) Drain() {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, t := range pending {
		t.callback(t.payload)
	}
}

// Pending reports the number of transfers currently queued, used by
// tests and by the session's status line to show outstanding I/O.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
