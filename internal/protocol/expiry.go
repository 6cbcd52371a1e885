package protocol

import "vkclient/pkg/vkerrors"

// ExpiryKind discriminates the ExpirySpec sum type.
type ExpiryKind int

const (
	ExpiryKeep ExpiryKind = iota
	ExpiryPersist
	ExpiryAbsoluteSeconds
	ExpiryAbsoluteMilliseconds
	ExpiryRelativeSeconds
	ExpiryRelativeMilliseconds
)

// ExpirySpec is the sum type from spec.md §3: Keep, Persist,
// AbsoluteSeconds(n), AbsoluteMilliseconds(n), RelativeSeconds(n),
// RelativeMilliseconds(n). Integrality is validated at construction; a
// non-integer count is an immediate caller-visible ValidationError, raised
// before any Command Record exists.
type ExpirySpec struct {
	Kind  ExpiryKind
	Count int64
}

func KeepExpiry() ExpirySpec    { return ExpirySpec{Kind: ExpiryKeep} }
func PersistExpiry() ExpirySpec { return ExpirySpec{Kind: ExpiryPersist} }

// NewAbsoluteSecondsExpiry validates count is integral before returning the
// spec; non-integer counts (passed here as float64 to mirror how dynamic
// callers typically arrive with a numeric value) fail immediately.
func NewAbsoluteSecondsExpiry(count float64) (ExpirySpec, error) {
	return newCountedExpiry(ExpiryAbsoluteSeconds, count)
}

func NewAbsoluteMillisecondsExpiry(count float64) (ExpirySpec, error) {
	return newCountedExpiry(ExpiryAbsoluteMilliseconds, count)
}

func NewRelativeSecondsExpiry(count float64) (ExpirySpec, error) {
	return newCountedExpiry(ExpiryRelativeSeconds, count)
}

func NewRelativeMillisecondsExpiry(count float64) (ExpirySpec, error) {
	return newCountedExpiry(ExpiryRelativeMilliseconds, count)
}

func newCountedExpiry(kind ExpiryKind, count float64) (ExpirySpec, error) {
	if count != float64(int64(count)) {
		return ExpirySpec{}, &vkerrors.ValidationError{Msg: "expiry count must be an integer"}
	}
	return ExpirySpec{Kind: kind, Count: int64(count)}, nil
}

// EncodeSet renders the SET-command expiry suffix: KEEPTTL is a bare
// keyword; EX/PX/EXAT/PXAT are always two tokens (keyword, value), per the
// two-token resolution in spec.md §9.
func (e ExpirySpec) EncodeSet(w *ArgWriter) {
	switch e.Kind {
	case ExpiryKeep:
		w.Keyword("KEEPTTL")
	case ExpiryAbsoluteSeconds:
		w.KeywordValue("EXAT", IntToString(e.Count))
	case ExpiryAbsoluteMilliseconds:
		w.KeywordValue("PXAT", IntToString(e.Count))
	case ExpiryRelativeSeconds:
		w.KeywordValue("EX", IntToString(e.Count))
	case ExpiryRelativeMilliseconds:
		w.KeywordValue("PX", IntToString(e.Count))
	case ExpiryPersist:
		// SET has no PERSIST keyword; absence of any expiry token is the
		// equivalent and is a caller error to request explicitly.
	}
}

// EncodeHashField renders the HSETEX/HGETEX expiry vocabulary, which adds
// PERSIST (HGETEX only) and restricts KEEPTTL to HSETEX. Callers pass
// allowKeepTTL/allowPersist to enforce the per-command restriction described
// in spec.md §4.1; violations are ValidationErrors raised before encoding.
func (e ExpirySpec) EncodeHashField(w *ArgWriter, allowKeepTTL, allowPersist bool) error {
	switch e.Kind {
	case ExpiryKeep:
		if !allowKeepTTL {
			return &vkerrors.ValidationError{Msg: "KEEPTTL is not valid for this command"}
		}
		w.Keyword("KEEPTTL")
	case ExpiryPersist:
		if !allowPersist {
			return &vkerrors.ValidationError{Msg: "PERSIST is not valid for this command"}
		}
		w.Keyword("PERSIST")
	case ExpiryAbsoluteSeconds:
		w.KeywordValue("EXAT", IntToString(e.Count))
	case ExpiryAbsoluteMilliseconds:
		w.KeywordValue("PXAT", IntToString(e.Count))
	case ExpiryRelativeSeconds:
		w.KeywordValue("EX", IntToString(e.Count))
	case ExpiryRelativeMilliseconds:
		w.KeywordValue("PX", IntToString(e.Count))
	}
	return nil
}
