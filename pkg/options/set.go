// Package options holds the option structs consumed by pkg/commands'
// factories. Mutual exclusion between flags is enforced once, here, rather
// than at every call site (spec.md §9 Design Notes).
package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// ConditionalKind selects SET's NX/XX/IFEQ mutual-exclusion group.
type ConditionalKind int

const (
	ConditionalNone ConditionalKind = iota
	ConditionalNX
	ConditionalXX
	ConditionalIfEq
)

// SetOptions mirrors the SET grammar from spec.md §4.1:
//
//	key, value, [NX|XX|IFEQ cmp], [GET], [KEEPTTL | EX n | PX n | EXAT n | PXAT n]
type SetOptions struct {
	Conditional  ConditionalKind
	IfEqValue    string
	ReturnOldGet bool
	Expiry       *protocol.ExpirySpec
}

func NewSetOptions() *SetOptions { return &SetOptions{} }

func (o *SetOptions) WithNX() *SetOptions { o.Conditional = ConditionalNX; return o }
func (o *SetOptions) WithXX() *SetOptions { o.Conditional = ConditionalXX; return o }

func (o *SetOptions) WithIfEq(cmp string) *SetOptions {
	o.Conditional = ConditionalIfEq
	o.IfEqValue = cmp
	return o
}

func (o *SetOptions) WithGet() *SetOptions { o.ReturnOldGet = true; return o }

func (o *SetOptions) WithExpiry(e protocol.ExpirySpec) *SetOptions {
	o.Expiry = &e
	return o
}

// ToArgs appends the conditional/GET/expiry suffix onto w, having already
// written key and value. Only one conditional mode may be set — that's
// enforced structurally since Conditional is a single field — and it
// rejects conflicting IFEQ usage.
func (o *SetOptions) ToArgs(w *protocol.ArgWriter) error {
	switch o.Conditional {
	case ConditionalNX:
		w.Keyword("NX")
	case ConditionalXX:
		w.Keyword("XX")
	case ConditionalIfEq:
		if o.IfEqValue == "" {
			return &vkerrors.ValidationError{Msg: "IFEQ requires a comparison value"}
		}
		w.KeywordValue("IFEQ", o.IfEqValue)
	}
	if o.ReturnOldGet {
		w.Keyword("GET")
	}
	if o.Expiry != nil {
		if o.Expiry.Kind == protocol.ExpiryPersist {
			return &vkerrors.ValidationError{Msg: "PERSIST is not valid for SET"}
		}
		o.Expiry.EncodeSet(w)
	}
	return nil
}
