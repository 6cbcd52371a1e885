package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// UpdateKind selects ZADD's NX/XX mutual-exclusion group.
type UpdateKind int

const (
	UpdateNone UpdateKind = iota
	UpdateNX
	UpdateXX
)

// ComparisonKind selects ZADD's GT/LT mutual-exclusion group.
type ComparisonKind int

const (
	ComparisonNone ComparisonKind = iota
	ComparisonGT
	ComparisonLT
)

// ZAddOptions mirrors spec.md §4.1:
//
//	key, [NX|XX], [GT|LT], [CH], [INCR], (score member)+
type ZAddOptions struct {
	Update     UpdateKind
	Comparison ComparisonKind
	Changed    bool
	Incr       bool
}

func NewZAddOptions() *ZAddOptions { return &ZAddOptions{} }

func (o *ZAddOptions) WithNX() *ZAddOptions { o.Update = UpdateNX; return o }
func (o *ZAddOptions) WithXX() *ZAddOptions { o.Update = UpdateXX; return o }
func (o *ZAddOptions) WithGT() *ZAddOptions { o.Comparison = ComparisonGT; return o }
func (o *ZAddOptions) WithLT() *ZAddOptions { o.Comparison = ComparisonLT; return o }
func (o *ZAddOptions) WithChanged() *ZAddOptions { o.Changed = true; return o }
func (o *ZAddOptions) WithIncr() *ZAddOptions { o.Incr = true; return o }

// SortedSetMember is one (score, member) pair of a ZADD call.
type SortedSetMember struct {
	Score  float64
	Member string
}

// Validate rejects NX combined with GT/LT and rejects INCR with anything
// but exactly one member, both before any Command Record is constructed.
func (o *ZAddOptions) Validate(members []SortedSetMember) error {
	if o.Update == UpdateNX && o.Comparison != ComparisonNone {
		return &vkerrors.ValidationError{Msg: "ZADD: NX cannot be combined with GT or LT"}
	}
	if o.Incr && len(members) != 1 {
		return &vkerrors.ValidationError{Msg: "ZADD: INCR requires exactly one member"}
	}
	return nil
}

// ToArgs writes the option flags (not the score/member pairs, which the
// caller appends after validating member count against Incr).
func (o *ZAddOptions) ToArgs(w *protocol.ArgWriter) {
	switch o.Update {
	case UpdateNX:
		w.Keyword("NX")
	case UpdateXX:
		w.Keyword("XX")
	}
	switch o.Comparison {
	case ComparisonGT:
		w.Keyword("GT")
	case ComparisonLT:
		w.Keyword("LT")
	}
	if o.Changed {
		w.Keyword("CH")
	}
	if o.Incr {
		w.Keyword("INCR")
	}
}
