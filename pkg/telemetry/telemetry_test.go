package telemetry

import "testing"

func TestInit_FirstCallWins(t *testing.T) {
	reset()
	defer reset()

	reg1 := Init(Config{Kind: ExporterHTTP, Endpoint: ":9090", ServiceName: "vkclient-bench"}, nil)
	if reg1 == nil {
		t.Fatalf("expected non-nil registry from first Init")
	}
	if !Initialized() {
		t.Fatalf("expected Initialized() to be true")
	}
	if ActiveConfig().Endpoint != ":9090" {
		t.Fatalf("ActiveConfig = %+v", ActiveConfig())
	}

	reg2 := Init(Config{Kind: ExporterFile, Endpoint: "/tmp/telemetry.jsonl"}, nil)
	if reg2 != reg1 {
		t.Fatalf("second Init call should return the first registry, not a new one")
	}
	if ActiveConfig().Endpoint != ":9090" {
		t.Fatalf("second Init call must not overwrite the active config: %+v", ActiveConfig())
	}
}

func TestInit_UninitializedHasZeroConfig(t *testing.T) {
	reset()
	defer reset()

	if Initialized() {
		t.Fatalf("expected Initialized() to be false before any Init call")
	}
	if Registry() != nil {
		t.Fatalf("expected nil registry before any Init call")
	}
}
