package protocol

import "vkclient/pkg/vkerrors"

// BoundaryKind selects which of the three boundary encodings (index, score,
// lex) a Boundary value carries.
type BoundaryKind int

const (
	BoundaryIndex BoundaryKind = iota
	BoundaryScore
	BoundaryLex
)

// Boundary is a range endpoint for ZRANGE/ZRANGESTORE-style commands: a
// signed index (negative = from end), an inclusive/exclusive/±∞ score, or an
// inclusive `[`/exclusive `(`/`+`/`-` lex token.
type Boundary struct {
	Kind      BoundaryKind
	Index     int64
	Score     float64
	IsInf     bool
	InfSign   int // +1 or -1, only meaningful when IsInf
	LexValue  string
	LexIsInf  bool
	LexSign   int // +1 ('+') or -1 ('-'), only meaningful when LexIsInf
	Exclusive bool
}

// IndexBoundary builds a rank-based endpoint.
func IndexBoundary(i int64) Boundary {
	return Boundary{Kind: BoundaryIndex, Index: i}
}

// ScoreBoundary builds a numeric score endpoint; exclusive wraps the token
// in the server's "(" exclusive-prefix convention when encoded.
func ScoreBoundary(score float64, exclusive bool) Boundary {
	return Boundary{Kind: BoundaryScore, Score: score, Exclusive: exclusive}
}

// InfScoreBoundary builds a ±∞ score endpoint.
func InfScoreBoundary(positive bool) Boundary {
	sign := -1
	if positive {
		sign = 1
	}
	return Boundary{Kind: BoundaryScore, IsInf: true, InfSign: sign}
}

// LexBoundary builds a lexicographic endpoint with the explicit
// inclusive/exclusive prefix the caller chose.
func LexBoundary(value string, exclusive bool) Boundary {
	return Boundary{Kind: BoundaryLex, LexValue: value, Exclusive: exclusive}
}

// LexInfBoundary builds the `+` (positive(=true)) or `-` sentinel.
func LexInfBoundary(positive bool) Boundary {
	sign := -1
	if positive {
		sign = 1
	}
	return Boundary{Kind: BoundaryLex, LexIsInf: true, LexSign: sign}
}

// Encode renders the boundary's wire token. byScore/byLex report whether
// this boundary requires the BYSCORE/BYLEX keyword to accompany it in range
// queries (index boundaries never do).
func (b Boundary) Encode() (token string, needsByScore bool, needsByLex bool) {
	switch b.Kind {
	case BoundaryIndex:
		return IntToString(b.Index), false, false
	case BoundaryScore:
		if b.IsInf {
			if b.InfSign >= 0 {
				return "+inf", true, false
			}
			return "-inf", true, false
		}
		v := FloatToString(b.Score)
		if b.Exclusive {
			return "(" + v, true, false
		}
		return v, true, false
	case BoundaryLex:
		if b.LexIsInf {
			if b.LexSign >= 0 {
				return "+", false, true
			}
			return "-", false, true
		}
		prefix := "["
		if b.Exclusive {
			prefix = "("
		}
		return prefix + b.LexValue, false, true
	default:
		return "", false, false
	}
}

// ValidateRangePair rejects mixing a score boundary with a lex boundary,
// which the server grammar never accepts together.
func ValidateRangePair(start, stop Boundary) error {
	if start.Kind != stop.Kind {
		// Index paired with either is fine only when both are index; any
		// other mismatch is a caller error.
		if start.Kind == BoundaryIndex || stop.Kind == BoundaryIndex {
			return &vkerrors.ValidationError{Msg: "range boundaries must both be index, or both be score/lex"}
		}
		return &vkerrors.ValidationError{Msg: "cannot mix score and lex range boundaries"}
	}
	return nil
}
