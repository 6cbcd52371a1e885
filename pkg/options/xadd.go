package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// TrimStrategy selects MAXLEN vs MINID trimming for XADD.
type TrimStrategy int

const (
	TrimNone TrimStrategy = iota
	TrimMaxLen
	TrimMinID
)

// XAddOptions mirrors spec.md §4.1:
//
//	key, [NOMKSTREAM], [MAXLEN|MINID, [=|~], threshold, [LIMIT n]], (id | *), (field value)+
type XAddOptions struct {
	NoMkStream bool
	Trim       TrimStrategy
	Exact      bool // true: '='; false: '~'. Meaningless when Trim == TrimNone.
	trimSet    bool
	Threshold  string
	Limit      *int64
}

func NewXAddOptions() *XAddOptions { return &XAddOptions{} }

func (o *XAddOptions) WithNoMkStream() *XAddOptions { o.NoMkStream = true; return o }

func (o *XAddOptions) WithMaxLen(exact bool, threshold string) *XAddOptions {
	o.Trim = TrimMaxLen
	o.Exact = exact
	o.trimSet = true
	o.Threshold = threshold
	return o
}

func (o *XAddOptions) WithMinID(exact bool, threshold string) *XAddOptions {
	o.Trim = TrimMinID
	o.Exact = exact
	o.trimSet = true
	o.Threshold = threshold
	return o
}

func (o *XAddOptions) WithLimit(n int64) *XAddOptions {
	o.Limit = &n
	return o
}

// ToArgs writes NOMKSTREAM and the trim clause. Exactness (=/~) is
// mandatory whenever trimming is requested, per spec.md §4.1.
func (o *XAddOptions) ToArgs(w *protocol.ArgWriter) error {
	if o.NoMkStream {
		w.Keyword("NOMKSTREAM")
	}
	if o.Trim == TrimNone {
		if o.Limit != nil {
			return &vkerrors.ValidationError{Msg: "LIMIT requires MAXLEN or MINID trimming"}
		}
		return nil
	}
	if !o.trimSet || o.Threshold == "" {
		return &vkerrors.ValidationError{Msg: "trimming requires a threshold"}
	}
	if o.Trim == TrimMaxLen {
		w.Keyword("MAXLEN")
	} else {
		w.Keyword("MINID")
	}
	if o.Exact {
		w.Keyword("=")
	} else {
		w.Keyword("~")
	}
	w.Str(o.Threshold)
	if o.Limit != nil {
		w.Keyword("LIMIT").Int(*o.Limit)
	}
	return nil
}
