package commands

import (
	"testing"

	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func argsEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("args = %v, want %v", got, want)
		}
	}
}

func TestSet_FullGrammar(t *testing.T) {
	f := NewFactory(nil)
	expiry, err := protocol.NewAbsoluteSecondsExpiry(1700000000)
	if err != nil {
		t.Fatalf("NewAbsoluteSecondsExpiry: %v", err)
	}
	opts := options.NewSetOptions().WithNX().WithGet().WithExpiry(expiry)
	cmd, err := f.Set("k", "v", opts)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	argsEqual(t, cmd.Args, []string{"k", "v", "NX", "GET", "EXAT", "1700000000"})
}

func TestSet_BareNilOptions(t *testing.T) {
	f := NewFactory(nil)
	cmd, err := f.Set("k", "v", nil)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	argsEqual(t, cmd.Args, []string{"k", "v"})
}

func TestMSet_PreservesOrder(t *testing.T) {
	f := NewFactory(nil)
	pairs := []KeyValue{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "c", Value: "3"}}
	cmd := f.MSet(pairs)
	argsEqual(t, cmd.Args, []string{"a", "1", "b", "2", "c", "3"})

	cmd2 := f.MSet(pairs)
	argsEqual(t, cmd2.Args, cmd.Args)
}

func TestZAdd_RejectsNXWithGT(t *testing.T) {
	f := NewFactory(nil)
	opts := options.NewZAddOptions().WithNX().WithGT()
	_, err := f.ZAdd("zs", []options.SortedSetMember{{Score: 1, Member: "m"}}, opts)
	if err == nil {
		t.Fatalf("expected ValidationError for NX+GT")
	}
}

func TestZAdd_RejectsIncrWithMultipleMembers(t *testing.T) {
	f := NewFactory(nil)
	opts := options.NewZAddOptions().WithIncr()
	members := []options.SortedSetMember{{Score: 1, Member: "a"}, {Score: 2, Member: "b"}}
	_, err := f.ZAdd("zs", members, opts)
	if err == nil {
		t.Fatalf("expected ValidationError for INCR with multiple members")
	}
}

func TestZAdd_Encoding(t *testing.T) {
	f := NewFactory(nil)
	opts := options.NewZAddOptions().WithGT().WithChanged()
	cmd, err := f.ZAdd("zs", []options.SortedSetMember{{Score: 1.5, Member: "m1"}}, opts)
	if err != nil {
		t.Fatalf("ZAdd: %v", err)
	}
	argsEqual(t, cmd.Args, []string{"zs", "GT", "CH", "1.5", "m1"})
}

func TestZRangeStore_RejectsWithScores(t *testing.T) {
	f := NewFactory(nil)
	ro := options.NewRangeOptions(protocol.IndexBoundary(0), protocol.IndexBoundary(-1)).WithScores()
	_, err := f.ZRangeStore("dest", "src", ro)
	if err == nil {
		t.Fatalf("expected ValidationError for ZRANGESTORE WITHSCORES")
	}
}

func TestZRange_ByScoreWithLimit(t *testing.T) {
	f := NewFactory(nil)
	ro := options.NewRangeOptions(
		protocol.ScoreBoundary(1, false),
		protocol.ScoreBoundary(10, false),
	).WithLimit(0, 5)
	cmd, err := f.ZRange("zs", ro)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	argsEqual(t, cmd.Args, []string{"zs", "1", "10", "BYSCORE", "LIMIT", "0", "5"})
}

func TestHSetEx_Encoding(t *testing.T) {
	f := NewFactory(nil)
	expiry, err := protocol.NewRelativeSecondsExpiry(60)
	if err != nil {
		t.Fatalf("NewRelativeSecondsExpiry: %v", err)
	}
	opts := options.NewHSetExOptions().WithFNX().WithExpiry(expiry)
	cmd, err := f.HSetEx("h", []KeyValue{{Key: "f1", Value: "v1"}}, opts)
	if err != nil {
		t.Fatalf("HSetEx: %v", err)
	}
	argsEqual(t, cmd.Args, []string{"h", "FNX", "EX", "60", "FIELDS", "1", "f1", "v1"})
}

func TestXAdd_TrimRequiresThreshold(t *testing.T) {
	f := NewFactory(nil)
	opts := &options.XAddOptions{Trim: options.TrimMaxLen}
	_, err := f.XAdd("stream", "*", []KeyValue{{Key: "f", Value: "v"}}, opts)
	if err == nil {
		t.Fatalf("expected ValidationError for trim without threshold")
	}
}

func TestGeoSearchStore_RejectsWithFlags(t *testing.T) {
	f := NewFactory(nil)
	opts := options.NewGeoSearchFromMember("m").WithRadius(100, "km").WithDistFlag()
	_, err := f.GeoSearchStore("dest", "src", opts)
	if err == nil {
		t.Fatalf("expected ValidationError for GEOSEARCHSTORE with WITHDIST")
	}
}

func TestBLPop_EncodesKeysThenTimeout(t *testing.T) {
	f := NewFactory(nil)
	cmd := f.BLPop(0, "k1", "k2")
	argsEqual(t, cmd.Args, []string{"k1", "k2", "0"})
	if !cmd.Blocking {
		t.Fatalf("BLPOP Command Record should be marked Blocking")
	}
}

func TestBRPop_MarksBlocking(t *testing.T) {
	f := NewFactory(nil)
	cmd := f.BRPop(5, "k1")
	argsEqual(t, cmd.Args, []string{"k1", "5"})
	if !cmd.Blocking {
		t.Fatalf("BRPOP Command Record should be marked Blocking")
	}
}

func TestScan_NilOptions(t *testing.T) {
	f := NewFactory(nil)
	cmd := f.Scan(0, nil)
	argsEqual(t, cmd.Args, []string{"0"})
}

func TestPing_EmptyVsMessage(t *testing.T) {
	f := NewFactory(nil)
	if got := f.Ping("").Args; got != nil {
		t.Fatalf("Ping(\"\") args = %v, want nil", got)
	}
	argsEqual(t, f.Ping("hello").Args, []string{"hello"})
}
