package protocol

import "testing"

func TestExpiry_NonIntegerCountFails(t *testing.T) {
	if _, err := NewRelativeSecondsExpiry(1.5); err == nil {
		t.Fatalf("expected ValidationError for non-integer expiry count")
	}
}

func TestExpiry_EncodesTwoTokens(t *testing.T) {
	exp, err := NewRelativeSecondsExpiry(60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w := NewArgWriter(0)
	exp.EncodeSet(w)
	args := w.Args()
	if len(args) != 2 || args[0] != "EX" || args[1] != "60" {
		t.Fatalf("expected two tokens [EX 60], got %v", args)
	}
}

func TestExpiry_HashFieldRestrictions(t *testing.T) {
	keep := KeepExpiry()
	w := NewArgWriter(0)
	if err := keep.EncodeHashField(w, false, false); err == nil {
		t.Fatalf("expected ValidationError when KEEPTTL disallowed")
	}

	persist := PersistExpiry()
	w2 := NewArgWriter(0)
	if err := persist.EncodeHashField(w2, false, false); err == nil {
		t.Fatalf("expected ValidationError when PERSIST disallowed")
	}
}

func TestBoundary_RejectsMixedScoreLex(t *testing.T) {
	score := ScoreBoundary(1, false)
	lex := LexBoundary("a", false)
	if err := ValidateRangePair(score, lex); err == nil {
		t.Fatalf("expected ValidationError mixing score and lex boundaries")
	}
}

func TestBoundary_InfScoreEncodesSentinel(t *testing.T) {
	b := InfScoreBoundary(true)
	tok, byScore, byLex := b.Encode()
	if tok != "+inf" || !byScore || byLex {
		t.Fatalf("unexpected encoding: %q byScore=%v byLex=%v", tok, byScore, byLex)
	}
}
