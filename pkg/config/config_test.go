package config

import "testing"

func TestResolver_RequiresAtLeastOneAddress(t *testing.T) {
	_, err := NewResolver().Build()
	if err == nil {
		t.Fatalf("expected ValidationError for empty address list")
	}
}

func TestResolver_RejectsNegativeBackoff(t *testing.T) {
	_, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		WithBackoff(BackoffSpec{NumRetries: -1}).
		Build()
	if err == nil {
		t.Fatalf("expected ValidationError for negative backoff")
	}
}

func TestResolver_RejectsOutOfRangeSamplePercentage(t *testing.T) {
	_, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		WithSamplePercentage(101).
		Build()
	if err == nil {
		t.Fatalf("expected ValidationError for samplePercentage > 100")
	}
}

func TestResolver_RejectsShardedChannelsOutsideClusterMode(t *testing.T) {
	_, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		WithSubscriptions(SubscriptionSet{Sharded: []string{"shard1"}}).
		Build()
	if err == nil {
		t.Fatalf("expected ValidationError for sharded subscriptions outside cluster mode")
	}
}

func TestResolver_AcceptsShardedChannelsInClusterMode(t *testing.T) {
	cfg, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		WithClusterMode().
		WithSubscriptions(SubscriptionSet{Sharded: []string{"shard1"}}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.ClusterMode || len(cfg.Subscriptions.Sharded) != 1 {
		t.Fatalf("unexpected resolved config: %+v", cfg)
	}
}

func TestResolver_RejectsTelemetryFileWithMissingParent(t *testing.T) {
	_, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		WithTelemetryFile("file:///no/such/dir/telemetry.json").
		Build()
	if err == nil {
		t.Fatalf("expected ValidationError for missing telemetry parent dir")
	}
}

func TestResolver_DefaultsAreSane(t *testing.T) {
	cfg, err := NewResolver().
		WithAddresses(NodeAddr{Host: "localhost", Port: 6379}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Protocol != RESP3 {
		t.Fatalf("expected RESP3 default protocol")
	}
	if cfg.InflightCap != 1000 {
		t.Fatalf("expected default inflight cap of 1000, got %d", cfg.InflightCap)
	}
}

func TestBackoffCurve_PreviewLengthCapsAtNumRetries(t *testing.T) {
	curve := NewBackoffCurve(BackoffSpec{NumRetries: 3, Factor: 100, ExponentBase: 2})
	durations := curve.Preview(10)
	if len(durations) > 3 {
		t.Fatalf("expected at most 3 previewed intervals, got %d", len(durations))
	}
}

func TestBackoffCurve_PreviewIsIncreasing(t *testing.T) {
	curve := NewBackoffCurve(BackoffSpec{NumRetries: 4, Factor: 100, ExponentBase: 2})
	durations := curve.Preview(4)
	for i := 1; i < len(durations); i++ {
		if durations[i] < durations[i-1] {
			t.Fatalf("expected non-decreasing backoff curve, got %v", durations)
		}
	}
}
