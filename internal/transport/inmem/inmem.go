// Package inmem is a deterministic fake Transport used by multiplexer and
// slot-lifecycle unit tests that must control response timing precisely —
// late responses, timeouts, closing drains — without touching a socket.
package inmem

import (
	"context"
	"sync"

	"vkclient/internal/protocol"
	"vkclient/internal/transport"
)

// Transport answers every Submit from a caller-installed responder func (or
// with "OK" when none is installed), and while Hold is active blocks every
// call until ReleaseAll releases them all.
type Transport struct {
	mu        sync.Mutex
	threshold int
	leaked    map[uint64][]string
	nextH     uint64
	responder func(cmd protocol.Cmd) (transport.Response, error)

	hold    bool
	pending []chan struct{}
}

func New(threshold int) *Transport {
	return &Transport{threshold: threshold, leaked: make(map[uint64][]string)}
}

// SetResponder installs the function used to answer every subsequent
// Submit/SubmitBatch call.
func (t *Transport) SetResponder(f func(cmd protocol.Cmd) (transport.Response, error)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responder = f
}

// Hold makes every subsequent Submit block until ReleaseAll is called,
// simulating a slow or stuck transport for timeout/cancellation tests.
func (t *Transport) Hold() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hold = true
}

func (t *Transport) ReleaseAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hold = false
	for _, ch := range t.pending {
		close(ch)
	}
	t.pending = nil
}

func (t *Transport) LeakVec(args []string) (low, high uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextH++
	h := t.nextH
	t.leaked[h] = args
	return uint32(h), uint32(h >> 32)
}

func (t *Transport) MaxArgsThreshold() int { return t.threshold }

func (t *Transport) waitIfHeld(ctx context.Context) error {
	t.mu.Lock()
	if !t.hold {
		t.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	t.pending = append(t.pending, ch)
	t.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Transport) Submit(ctx context.Context, cmd protocol.Cmd) (transport.Response, error) {
	if err := t.waitIfHeld(ctx); err != nil {
		return transport.Response{}, err
	}
	t.mu.Lock()
	f := t.responder
	t.mu.Unlock()
	if f == nil {
		return transport.Response{Value: "OK"}, nil
	}
	return f(cmd)
}

func (t *Transport) SubmitBatch(ctx context.Context, cmds []protocol.Cmd, atomic bool) ([]transport.Response, error) {
	out := make([]transport.Response, len(cmds))
	for i, cmd := range cmds {
		resp, err := t.Submit(ctx, cmd)
		if err != nil {
			return nil, err
		}
		out[i] = resp
	}
	return out, nil
}
