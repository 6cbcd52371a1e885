package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// HashConditional selects HSETEX's FNX/FXX mutual-exclusion group.
type HashConditional int

const (
	HashConditionalNone HashConditional = iota
	HashConditionalFNX
	HashConditionalFXX
)

// HSetExOptions mirrors spec.md §4.1:
//
//	key, [FNX|FXX], [EX|PX|EXAT|PXAT n | KEEPTTL], FIELDS count, field..., value...
type HSetExOptions struct {
	Conditional HashConditional
	Expiry      *protocol.ExpirySpec
}

func NewHSetExOptions() *HSetExOptions { return &HSetExOptions{} }

func (o *HSetExOptions) WithFNX() *HSetExOptions { o.Conditional = HashConditionalFNX; return o }
func (o *HSetExOptions) WithFXX() *HSetExOptions { o.Conditional = HashConditionalFXX; return o }

func (o *HSetExOptions) WithExpiry(e protocol.ExpirySpec) *HSetExOptions {
	o.Expiry = &e
	return o
}

func (o *HSetExOptions) ToArgs(w *protocol.ArgWriter) error {
	switch o.Conditional {
	case HashConditionalFNX:
		w.Keyword("FNX")
	case HashConditionalFXX:
		w.Keyword("FXX")
	}
	if o.Expiry != nil {
		// KEEPTTL valid, PERSIST is not (spec.md §4.1).
		if err := o.Expiry.EncodeHashField(w, true, false); err != nil {
			return err
		}
	}
	return nil
}

// HGetExOptions mirrors spec.md §4.1:
//
//	key, [EX|PX|EXAT|PXAT n | PERSIST], FIELDS count, field...
type HGetExOptions struct {
	Expiry *protocol.ExpirySpec
}

func NewHGetExOptions() *HGetExOptions { return &HGetExOptions{} }

func (o *HGetExOptions) WithExpiry(e protocol.ExpirySpec) *HGetExOptions {
	o.Expiry = &e
	return o
}

func (o *HGetExOptions) ToArgs(w *protocol.ArgWriter) error {
	if o.Expiry == nil {
		return nil
	}
	if o.Expiry.Kind == protocol.ExpiryKeep {
		return &vkerrors.ValidationError{Msg: "KEEPTTL is not valid for HGETEX"}
	}
	// PERSIST valid, KEEPTTL is not (spec.md §4.1).
	return o.Expiry.EncodeHashField(w, false, true)
}
