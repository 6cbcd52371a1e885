package mux

import (
	"context"
	"testing"
	"time"

	"vkclient/internal/protocol"
	"vkclient/internal/transport"
	"vkclient/internal/transport/inmem"
)

func newTestMux(t *testing.T, it *inmem.Transport) *Mux {
	t.Helper()
	m := New(it, 200*time.Millisecond, nil, nil)
	m.Start()
	t.Cleanup(m.Stop)
	return m
}

func TestSubmit_HappyPath(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: "OK"}, nil
	})
	m := newTestMux(t, it)

	val, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.Get, Args: []string{"k"}}, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if val != "OK" {
		t.Fatalf("val = %v, want OK", val)
	}
}

func TestSubmit_TimesOutWhenTransportHangs(t *testing.T) {
	it := inmem.New(1024)
	it.Hold()
	m := newTestMux(t, it)

	short := 20 * time.Millisecond
	_, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.Get}, &short)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	it.ReleaseAll()
}

func TestSubmit_PerCallTimeoutOverridesDefault(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: "OK"}, nil
	})
	// A one-nanosecond client default would expire before any response; only
	// the per-call override lets this call succeed.
	m := New(it, time.Nanosecond, nil, nil)
	m.Start()
	defer m.Stop()

	long := 5 * time.Second
	val, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.Get}, &long)
	if err != nil || val != "OK" {
		t.Fatalf("Submit: val=%v err=%v", val, err)
	}
}

func TestStop_DrainsLiveSlotsWithClosingError(t *testing.T) {
	it := inmem.New(1024)
	it.Hold()
	m := New(it, 5*time.Second, nil, nil)
	m.Start()

	resultCh := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.Get}, nil)
		resultCh <- err
	}()

	time.Sleep(30 * time.Millisecond)
	m.Stop()

	select {
	case err := <-resultCh:
		if err == nil {
			t.Fatalf("expected ClosingError after Stop")
		}
	case <-time.After(time.Second):
		t.Fatalf("Submit did not return after Stop")
	}
}

func TestSubmit_RejectsAfterClose(t *testing.T) {
	it := inmem.New(1024)
	m := New(it, time.Second, nil, nil)
	m.Start()
	m.Stop()

	_, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.Get}, nil)
	if err == nil {
		t.Fatalf("expected error submitting after close")
	}
}

func TestSubmit_BlockingCommandIgnoresClientDefaultTimeout(t *testing.T) {
	it := inmem.New(1024)
	it.Hold()
	m := New(it, 20*time.Millisecond, nil, nil)
	m.Start()
	defer m.Stop()

	resultCh := make(chan error, 1)
	go func() {
		_, err := m.Submit(context.Background(), protocol.Cmd{RequestType: protocol.BLPop, Blocking: true}, nil)
		resultCh <- err
	}()

	select {
	case err := <-resultCh:
		t.Fatalf("blocking command returned early with a client-default timeout: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	it.ReleaseAll()

	select {
	case err := <-resultCh:
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Submit did not return after release")
	}
}

func TestSubmit_BlockingCommandHonorsCallerCancellation(t *testing.T) {
	it := inmem.New(1024)
	it.Hold()
	m := newTestMux(t, it)

	ctx, cancel := context.WithCancel(context.Background())
	resultCh := make(chan error, 1)
	go func() {
		_, err := m.Submit(ctx, protocol.Cmd{RequestType: protocol.BLPop, Blocking: true}, nil)
		resultCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-resultCh:
		if err == nil {
			t.Fatalf("expected an error after caller cancellation")
		}
	case <-time.After(time.Second):
		t.Fatalf("Submit did not return after cancellation")
	}
	it.ReleaseAll()
}

func TestSubmitBatch_ReturnsPositionalResults(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: cmd.RequestType}, nil
	})
	m := newTestMux(t, it)

	cmds := []protocol.Cmd{
		{RequestType: protocol.Get, Args: []string{"a"}},
		{RequestType: protocol.Incr, Args: []string{"b"}},
	}
	results, err := m.SubmitBatch(context.Background(), cmds, false, nil)
	if err != nil {
		t.Fatalf("SubmitBatch: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Value != protocol.Get || results[1].Value != protocol.Incr {
		t.Fatalf("results out of order: %+v", results)
	}
}
