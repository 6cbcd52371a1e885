package client

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"vkclient/internal/protocol"
	"vkclient/internal/transport/goredis"
	"vkclient/pkg/commands"
	"vkclient/pkg/config"
	"vkclient/pkg/options"
)

// These exercise the facade end to end against a real RESP server
// (miniredis) through the go-redis transport bridge, rather than the
// inmem.Transport fake client_test.go uses, to catch wire-encoding mistakes
// the fake can't see.

func newMiniredisClient(t *testing.T, opts ...func(*redis.Options)) (*StandaloneClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	ro := &redis.Options{Addr: mr.Addr()}
	for _, o := range opts {
		o(ro)
	}
	rc := redis.NewClient(ro)
	tr := goredis.New(rc, 1<<20)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("miniredis port: %v", err)
	}
	cfg := testConfig(config.NodeAddr{Host: mr.Host(), Port: port})
	c := NewStandaloneClient(tr, cfg, nil, nil)
	t.Cleanup(c.Close)
	return c, mr
}

func TestIntegration_SetGetWithExpiry(t *testing.T) {
	c, mr := newMiniredisClient(t)
	ctx := context.Background()

	exp, err := protocol.NewRelativeSecondsExpiry(30)
	if err != nil {
		t.Fatalf("expiry: %v", err)
	}
	if _, err := c.Set(ctx, "greeting", "hello", options.NewSetOptions().WithExpiry(exp)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Get = %v, want hello", got)
	}
	if ttl := mr.TTL("greeting"); ttl <= 0 {
		t.Fatalf("TTL on miniredis = %v, want a positive duration", ttl)
	}
}

func TestIntegration_ZAddZRangeByScore(t *testing.T) {
	c, _ := newMiniredisClient(t)
	ctx := context.Background()

	members := []options.SortedSetMember{
		{Score: 1, Member: "one"},
		{Score: 2, Member: "two"},
		{Score: 3, Member: "three"},
	}
	if _, err := c.ZAdd(ctx, "scores", members, nil); err != nil {
		t.Fatalf("ZAdd: %v", err)
	}

	rng := options.NewRangeOptions(protocol.ScoreBoundary(1.5, false), protocol.InfScoreBoundary(true))
	got, err := c.ZRange(ctx, "scores", rng)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	vals, ok := got.([]any)
	if !ok || len(vals) != 2 {
		t.Fatalf("ZRange = %v (%T), want [two three]", got, got)
	}
	if vals[0] != "two" || vals[1] != "three" {
		t.Fatalf("ZRange = %v, want [two three]", vals)
	}
}

func TestIntegration_NonAtomicBatchReportsPerCommandFailure(t *testing.T) {
	c, _ := newMiniredisClient(t)
	ctx := context.Background()

	if _, err := c.Set(ctx, "notalist", "x", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}

	b := c.NewStandaloneBatch(false)
	b.Get("notalist").LPush("notalist", "v").Get("notalist")
	results, err := c.Exec(ctx, b, nil)
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].Err != nil {
		t.Fatalf("results[0] should succeed, got %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Fatalf("LPUSH against a string key should fail, got %+v", results[1])
	}
	if results[2].Err != nil {
		t.Fatalf("results[2] should still run despite results[1] failing, got %v", results[2].Err)
	}
}

func TestIntegration_AtomicBatchAbortsOnWatchedKeyChange(t *testing.T) {
	c, mr := newMiniredisClient(t, func(o *redis.Options) { o.PoolSize = 1 })
	ctx := context.Background()

	if _, err := c.Set(ctx, "balance", "100", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Watch(ctx, "balance"); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// An interfering writer touches the watched key before EXEC runs.
	if err := mr.Set("balance", "999"); err != nil {
		t.Fatalf("interfering Set: %v", err)
	}

	b := c.NewStandaloneBatch(true)
	b.Incr("balance")
	if _, err := c.Exec(ctx, b, nil); err == nil {
		t.Fatalf("expected the atomic batch to abort after balance changed under the watch")
	}
}

func TestIntegration_SubscribeReceivesPublishedMessage(t *testing.T) {
	c, mr := newMiniredisClient(t)
	ctx := context.Background()

	if err := c.Subscribe(ctx, "news"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	// The dedicated pub/sub connection registers with miniredis
	// asynchronously; retry the publish until it reaches a subscriber.
	deadline := time.Now().Add(time.Second)
	for mr.Publish("news", "hello") == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	msg, err := c.GetPubSubMessage(ctx)
	if err != nil {
		t.Fatalf("GetPubSubMessage: %v", err)
	}
	if msg.Channel != "news" || msg.Payload != "hello" {
		t.Fatalf("msg = %+v, want {Channel:news Payload:hello}", msg)
	}
}

func TestIntegration_LargeMSetGoesThroughLeakedHandle(t *testing.T) {
	c, _ := newMiniredisClient(t)
	ctx := context.Background()

	big := make([]byte, 8192)
	for i := range big {
		big[i] = 'x'
	}
	pairs := make([]commands.KeyValue, 0, 200)
	for i := 0; i < 200; i++ {
		pairs = append(pairs, commands.KeyValue{Key: "bulk:" + strconv.Itoa(i), Value: string(big)})
	}

	if _, err := c.MSet(ctx, pairs); err != nil {
		t.Fatalf("MSet: %v", err)
	}
	got, err := c.Get(ctx, "bulk:0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	s, ok := got.(string)
	if !ok || s != string(big) {
		t.Fatalf("Get returned wrong value for bulk:0 (len %d, want %d)", len(s), len(big))
	}
}
