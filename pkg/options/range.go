package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// RangeOptions mirrors the ZRANGE/ZRANGESTORE grammar from spec.md §4.1:
//
//	[dest,] key, start, stop, [BYSCORE|BYLEX], [REV], [LIMIT offset count], [WITHSCORES]
//
// When Start/Stop are index boundaries they need no BYSCORE/BYLEX keyword;
// when they are score/lex boundaries the keyword is derived from the
// boundary kind itself, so callers never pass it redundantly.
type RangeOptions struct {
	Start, Stop protocol.Boundary
	Reverse     bool
	LimitOffset *int64
	LimitCount  *int64
	Scores      bool
}

func NewRangeOptions(start, stop protocol.Boundary) *RangeOptions {
	return &RangeOptions{Start: start, Stop: stop}
}

func (o *RangeOptions) WithRev() *RangeOptions { o.Reverse = true; return o }

func (o *RangeOptions) WithLimit(offset, count int64) *RangeOptions {
	o.LimitOffset = &offset
	o.LimitCount = &count
	return o
}

func (o *RangeOptions) WithScores() *RangeOptions { o.Scores = true; return o }

// ToArgs writes start, stop, and the trailing modifiers. LIMIT is only
// valid alongside BYSCORE/BYLEX, enforced here since it is meaningless (and
// rejected by the server) against a plain index range.
func (o *RangeOptions) ToArgs(w *protocol.ArgWriter) error {
	if err := protocol.ValidateRangePair(o.Start, o.Stop); err != nil {
		return err
	}
	startTok, startByScore, startByLex := o.Start.Encode()
	stopTok, _, _ := o.Stop.Encode()
	w.Str(startTok).Str(stopTok)

	byRange := startByScore || startByLex
	if startByScore {
		w.Keyword("BYSCORE")
	} else if startByLex {
		w.Keyword("BYLEX")
	}
	if o.Reverse {
		w.Keyword("REV")
	}
	if o.LimitOffset != nil {
		if !byRange {
			return &vkerrors.ValidationError{Msg: "LIMIT requires BYSCORE or BYLEX"}
		}
		w.Keyword("LIMIT").Int(*o.LimitOffset).Int(*o.LimitCount)
	}
	if o.Scores {
		w.Keyword("WITHSCORES")
	}
	return nil
}
