// Package mux is the request multiplexer (C6): it owns the single
// transport the client talks to, assigns each outgoing Command Record or
// batch a callback index, parks a one-shot completion handle under that
// index, and demultiplexes incoming responses back to the caller that is
// waiting on them.
//
// The callback-slot table and free-list allocator are grounded in TiKV
// client-go's batchCommandsBuilder (idAlloc, entry table, reset-on-drain);
// the goroutine-pair lifecycle (Start/Stop, sync.WaitGroup, stopChan) is
// grounded in the teacher's Worker.
package mux

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vkclient/internal/protocol"
	"vkclient/internal/transport"
	"vkclient/pkg/vkerrors"
)

// slot is a Callback Slot from spec.md §3: created at submit, destroyed
// after exactly one of (response delivered, error delivered, cancellation).
// completed guards against the slot being finalized twice — once by Stop's
// drain and once by the writer goroutine's own late completion, or vice
// versa — whichever side reaches completeLocked first wins and the other is
// a discarded late response.
type slot struct {
	index     uint32
	done      chan struct{}
	resp      transport.Response
	completed bool
}

// Mux is the multiplexer. One Mux owns one Transport for the lifetime of a
// client connection.
type Mux struct {
	transport transport.Transport
	log       *zap.Logger

	mu       sync.Mutex
	slots    map[uint32]*slot
	freeList []uint32
	nextIdx  uint32
	closed   bool
	closeErr error

	defaultTimeout time.Duration

	submitCh chan submission
	stopChan chan struct{}
	wg       sync.WaitGroup

	inflight prometheus.Gauge
	total    prometheus.Counter
}

type submission struct {
	ctx  context.Context
	cmd  protocol.Cmd
	slot *slot
}

// New constructs a Mux bound to t. defaultTimeout is the client-wide
// fallback used when neither a per-call nor a per-batch timeout is given.
func New(t transport.Transport, defaultTimeout time.Duration, log *zap.Logger, reg *prometheus.Registry) *Mux {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mux{
		transport:      t,
		log:            log,
		slots:          make(map[uint32]*slot),
		defaultTimeout: defaultTimeout,
		submitCh:       make(chan submission, 256),
		stopChan:       make(chan struct{}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vkclient_mux_inflight_requests",
			Help: "Number of Command Records with a live callback slot.",
		}),
		total: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vkclient_mux_requests_total",
			Help: "Total Command Records submitted through the multiplexer.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.inflight, m.total)
	}
	return m
}

// Start launches the writer goroutine that serializes submissions onto the
// transport. A dedicated reader is unnecessary here because Transport.Submit
// is synchronous per call; the writer goroutine plays the role spec.md §4.5
// assigns to the single-writer-lock / single-reader-task split for a
// transport whose I/O is itself blocking.
func (m *Mux) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.writeLoop()
	}()
}

// Stop drains every live slot with a ClosingError and stops accepting new
// submissions.
func (m *Mux) Stop() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.closeErr = &vkerrors.ClosingError{Msg: "multiplexer is shutting down"}
	close(m.stopChan)
	for _, s := range m.slots {
		m.completeLocked(s, transport.Response{}, m.closeErr)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Mux) writeLoop() {
	for {
		select {
		case sub := <-m.submitCh:
			m.drive(sub)
		case <-m.stopChan:
			return
		}
	}
}

func (m *Mux) drive(sub submission) {
	// Merge the caller's context with the Mux's own shutdown signal so a
	// transport call that is still in flight when Stop runs gets cancelled
	// instead of holding the writer goroutine (and Stop's wg.Wait) hostage.
	ctx, cancel := context.WithCancel(sub.ctx)
	stopWatch := make(chan struct{})
	go func() {
		select {
		case <-m.stopChan:
			cancel()
		case <-stopWatch:
		}
	}()

	resp, err := m.transport.Submit(ctx, sub.cmd)
	close(stopWatch)
	cancel()

	m.mu.Lock()
	if err != nil {
		m.completeLocked(sub.slot, transport.Response{}, err)
	} else {
		m.completeLocked(sub.slot, resp, resp.Err)
	}
	m.mu.Unlock()
}

// allocSlot assigns the next free callback index, growing the table lazily
// and only reusing an index after its slot has been freed (spec.md §4.5
// step 1, and the Invariants in §3: indices are never reused while a slot
// is live).
func (m *Mux) allocSlot() *slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var idx uint32
	if n := len(m.freeList); n > 0 {
		idx = m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
	} else {
		idx = m.nextIdx
		m.nextIdx++
	}
	s := &slot{index: idx, done: make(chan struct{})}
	m.slots[idx] = s
	m.inflight.Inc()
	return s
}

// completeLocked resolves a slot exactly once and returns its index to the
// free-list. Caller must hold m.mu. A second call for an already-completed
// slot — a late transport response racing Stop's drain, or the reverse — is
// a no-op: the "late response discarded" rule from spec.md §4.5 Timeouts.
func (m *Mux) completeLocked(s *slot, resp transport.Response, err error) {
	if s.completed {
		return
	}
	s.completed = true
	s.resp = resp
	if err != nil {
		s.resp.Err = err
	}
	close(s.done)
	delete(m.slots, s.index)
	m.freeList = append(m.freeList, s.index)
	m.inflight.Dec()
}

// effectiveTimeout resolves spec.md §4.5's "effective timeout = per-call
// override ∨ batch option ∨ client default".
func effectiveTimeout(perCall, perBatch *time.Duration, clientDefault time.Duration) time.Duration {
	if perCall != nil {
		return *perCall
	}
	if perBatch != nil {
		return *perBatch
	}
	return clientDefault
}

// Submit sends a single Command Record and waits for its response, subject
// to the effective timeout. On cancellation or timeout the waiter detaches
// but the slot stays live until the transport answers (or Stop drains it),
// per spec.md §4.5 Cancellation.
func (m *Mux) Submit(ctx context.Context, cmd protocol.Cmd, perCallTimeout *time.Duration) (any, error) {
	m.mu.Lock()
	if m.closed {
		err := m.closeErr
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	s := m.allocSlot()
	m.total.Inc()

	// A Blocking command (BLPOP/BRPOP with a zero wait) is governed by its
	// own argument, not the client's request timeout — composing it into
	// effectiveTimeout would make the client time out a call the server was
	// never going to answer early. Wait on the caller's own context instead.
	if cmd.Blocking {
		waitCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		select {
		case m.submitCh <- submission{ctx: ctx, cmd: cmd, slot: s}:
		case <-waitCtx.Done():
			return m.abandonBlocking(s)
		}

		select {
		case <-s.done:
			return s.resp.Value, s.resp.Err
		case <-waitCtx.Done():
			return m.abandonBlocking(s)
		}
	}

	timeout := effectiveTimeout(perCallTimeout, nil, m.defaultTimeout)
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case m.submitCh <- submission{ctx: ctx, cmd: cmd, slot: s}:
	case <-timeoutCtx.Done():
		return m.abandon(s, timeout)
	}

	select {
	case <-s.done:
		return s.resp.Value, s.resp.Err
	case <-timeoutCtx.Done():
		return m.abandon(s, timeout)
	}
}

// abandon gives up waiting on s without touching its bookkeeping: the slot
// stays live until the writer goroutine (or Stop) eventually completes it,
// so its index is never recycled out from under a response still in flight.
func (m *Mux) abandon(s *slot, timeout time.Duration) (any, error) {
	select {
	case <-s.done:
		// Response arrived in the race window between the timeout firing
		// and this goroutine observing it; honor it instead of the timeout.
		return s.resp.Value, s.resp.Err
	default:
	}
	return nil, &vkerrors.TimeoutError{Msg: "request timed out", TimeoutMs: uint32(timeout.Milliseconds())}
}

// abandonBlocking is abandon for a Blocking command: its caller's own
// context was cancelled, not any request timeout, so it reports a
// RequestError instead of a misleading TimeoutError.
func (m *Mux) abandonBlocking(s *slot) (any, error) {
	select {
	case <-s.done:
		return s.resp.Value, s.resp.Err
	default:
	}
	return nil, &vkerrors.RequestError{Msg: "blocking request cancelled before the server replied"}
}

// SubmitBatch sends an ordered batch as one atomic or non-atomic unit and
// returns one value/error pair per command, positionally aligned.
func (m *Mux) SubmitBatch(ctx context.Context, cmds []protocol.Cmd, atomic bool, batchTimeout *time.Duration) ([]transport.Response, error) {
	m.mu.Lock()
	if m.closed {
		err := m.closeErr
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	timeout := effectiveTimeout(nil, batchTimeout, m.defaultTimeout)
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		resp []transport.Response
		err  error
	}
	resCh := make(chan result, 1)
	go func() {
		resp, err := m.transport.SubmitBatch(timeoutCtx, cmds, atomic)
		resCh <- result{resp, err}
	}()

	select {
	case r := <-resCh:
		if r.err != nil {
			return nil, r.err
		}
		return r.resp, nil
	case <-timeoutCtx.Done():
		return nil, &vkerrors.TimeoutError{Msg: "batch timed out", TimeoutMs: uint32(timeout.Milliseconds())}
	}
}
