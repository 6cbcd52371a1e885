package client

import (
	"context"
	"testing"

	"vkclient/internal/protocol"
	"vkclient/internal/transport"
	"vkclient/internal/transport/inmem"
	"vkclient/pkg/commands"
	"vkclient/pkg/config"
)

func testConfig(addrs ...config.NodeAddr) config.ClientConfig {
	cfg, err := config.NewResolver().WithAddresses(addrs...).Build()
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestStandaloneClient_GetSet(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		if cmd.RequestType == protocol.Set {
			return transport.Response{Value: "OK"}, nil
		}
		return transport.Response{Value: "v"}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	if _, err := c.Set(context.Background(), "k", "v", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	val, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if val != "v" {
		t.Fatalf("val = %v, want v", val)
	}
}

func TestStandaloneClient_MSetPreservesOrder(t *testing.T) {
	it := inmem.New(1024)
	var gotArgs []string
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		gotArgs = cmd.Args
		return transport.Response{Value: "OK"}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	_, err := c.MSet(context.Background(), []commands.KeyValue{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}})
	if err != nil {
		t.Fatalf("MSet: %v", err)
	}
	want := []string{"a", "1", "b", "2"}
	if len(gotArgs) != len(want) {
		t.Fatalf("args = %v, want %v", gotArgs, want)
	}
	for i := range want {
		if gotArgs[i] != want[i] {
			t.Fatalf("args[%d] = %v, want %v", i, gotArgs[i], want[i])
		}
	}
}

func TestStandaloneClient_ExecBatchEmptyReturnsEmptyResults(t *testing.T) {
	it := inmem.New(1024)
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	b := c.NewStandaloneBatch(false)
	results, err := c.Exec(context.Background(), b, nil)
	if err != nil {
		t.Fatalf("Exec of an empty batch should not error, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %+v, want an empty slice", results)
	}
}

func TestStandaloneClient_BLPopPassesThroughBlockingCommand(t *testing.T) {
	it := inmem.New(1024)
	var gotCmd protocol.Cmd
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		gotCmd = cmd
		return transport.Response{Value: []any{"list", "item"}}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	val, err := c.BLPop(context.Background(), 0, "list")
	if err != nil {
		t.Fatalf("BLPop: %v", err)
	}
	if !gotCmd.Blocking {
		t.Fatalf("BLPOP Command Record reaching the transport should be marked Blocking")
	}
	vals, ok := val.([]any)
	if !ok || len(vals) != 2 {
		t.Fatalf("BLPop = %v, want [list item]", val)
	}
}

func TestStandaloneClient_SMembersDecodesToSet(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: []any{"a", "b", "a"}}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	val, err := c.SMembers(context.Background(), "s")
	if err != nil {
		t.Fatalf("SMembers: %v", err)
	}
	set, ok := val.(map[any]struct{})
	if !ok {
		t.Fatalf("SMembers = %v (%T), want map[any]struct{}", val, val)
	}
	if len(set) != 2 {
		t.Fatalf("set = %v, want 2 distinct members", set)
	}
}

func TestStandaloneClient_ExecBatchDecodesSetPositions(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		if cmd.RequestType == protocol.SMembers {
			return transport.Response{Value: []any{"x", "y"}}, nil
		}
		return transport.Response{Value: cmd.RequestType}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	b := c.NewStandaloneBatch(false)
	b.Get("a").SMembers("s")
	results, err := c.Exec(context.Background(), b, nil)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	set, ok := results[1].Value.(map[any]struct{})
	if !ok || len(set) != 2 {
		t.Fatalf("results[1].Value = %v (%T), want a 2-element set", results[1].Value, results[1].Value)
	}
}

func TestStandaloneClient_ExecBatchRunsInOrder(t *testing.T) {
	it := inmem.New(1024)
	it.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: cmd.RequestType}, nil
	})
	c := NewStandaloneClient(it, testConfig(config.NodeAddr{Host: "localhost", Port: 6379}), nil, nil)
	defer c.Close()

	b := c.NewStandaloneBatch(false)
	b.Get("a").Incr("b")
	results, err := c.Exec(context.Background(), b, nil)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(results) != 2 || results[0].Value != protocol.Get || results[1].Value != protocol.Incr {
		t.Fatalf("results out of order: %+v", results)
	}
}

func TestClusterClient_RoutesDeterministically(t *testing.T) {
	addrA := config.NodeAddr{Host: "node-a", Port: 7000}
	addrB := config.NodeAddr{Host: "node-b", Port: 7001}
	cfg := testConfig(addrA, addrB)

	itA := inmem.New(1024)
	itB := inmem.New(1024)
	itA.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: "from-a"}, nil
	})
	itB.SetResponder(func(cmd protocol.Cmd) (transport.Response, error) {
		return transport.Response{Value: "from-b"}, nil
	})

	cc, err := NewClusterClient(cfg, []transport.Transport{itA, itB}, nil, nil)
	if err != nil {
		t.Fatalf("NewClusterClient: %v", err)
	}
	defer cc.Close()

	v1, err := cc.Get(context.Background(), "same-key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	v2, err := cc.Get(context.Background(), "same-key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v1 != v2 {
		t.Fatalf("routing for the same key was not stable: %v vs %v", v1, v2)
	}
}

func TestClusterClient_ByAddressRejectsUnknown(t *testing.T) {
	addrA := config.NodeAddr{Host: "node-a", Port: 7000}
	cfg := testConfig(addrA)
	it := inmem.New(1024)
	cc, err := NewClusterClient(cfg, []transport.Transport{it}, nil, nil)
	if err != nil {
		t.Fatalf("NewClusterClient: %v", err)
	}
	defer cc.Close()

	if _, err := cc.one(ByAddress("node-z:1234")); err == nil {
		t.Fatalf("expected error for unknown address")
	}
}

func TestClusterClient_AllNodesFansOut(t *testing.T) {
	addrA := config.NodeAddr{Host: "node-a", Port: 7000}
	addrB := config.NodeAddr{Host: "node-b", Port: 7001}
	cfg := testConfig(addrA, addrB)
	itA := inmem.New(1024)
	itB := inmem.New(1024)
	cc, err := NewClusterClient(cfg, []transport.Transport{itA, itB}, nil, nil)
	if err != nil {
		t.Fatalf("NewClusterClient: %v", err)
	}
	defer cc.Close()

	vals, errs := cc.Ping(context.Background(), AllNodes())
	if len(vals) != 2 || len(errs) != 2 {
		t.Fatalf("expected 2 results, got vals=%v errs=%v", vals, errs)
	}
	for _, e := range errs {
		if e != nil {
			t.Fatalf("unexpected error: %v", e)
		}
	}
}
