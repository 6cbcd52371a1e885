package protocol

import "strconv"

// IntToString renders a signed integer as its decimal textual form, with no
// locale dependence — the form every numeric command argument takes on the
// wire.
func IntToString(n int64) string {
	return strconv.FormatInt(n, 10)
}

// UintToString renders an unsigned integer as decimal textual form.
func UintToString(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// FloatToString renders a float64 as the server expects: decimal, with the
// special values the server recognizes as literal tokens.
func FloatToString(f float64) string {
	switch {
	case isPosInf(f):
		return "+inf"
	case isNegInf(f):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

func isPosInf(f float64) bool { return f > 0 && f*0.5 == f }
func isNegInf(f float64) bool { return f < 0 && f*0.5 == f }

// ArgWriter accumulates an ordered argument vector. Order within a vector is
// load-bearing and must match the server's command grammar exactly; methods
// append in call order and nothing else reorders them.
type ArgWriter struct {
	args []string
}

// NewArgWriter starts a vector, optionally seeded with a known-size hint to
// avoid reallocation for long vectors (e.g. MSET with many pairs).
func NewArgWriter(sizeHint int) *ArgWriter {
	return &ArgWriter{args: make([]string, 0, sizeHint)}
}

func (w *ArgWriter) Str(s string) *ArgWriter {
	w.args = append(w.args, s)
	return w
}

func (w *ArgWriter) Strs(ss ...string) *ArgWriter {
	w.args = append(w.args, ss...)
	return w
}

func (w *ArgWriter) Int(n int64) *ArgWriter {
	w.args = append(w.args, IntToString(n))
	return w
}

func (w *ArgWriter) Float(f float64) *ArgWriter {
	w.args = append(w.args, FloatToString(f))
	return w
}

// Keyword appends a bare flag token, e.g. "NX", "WITHSCORES".
func (w *ArgWriter) Keyword(kw string) *ArgWriter {
	w.args = append(w.args, kw)
	return w
}

// KeywordValue appends a "KEYWORD value" pair as two separate tokens — the
// server accepts only two tokens for EX/PX/EXAT/PXAT and similar, never one
// concatenated token (spec.md §9 Open Questions).
func (w *ArgWriter) KeywordValue(kw string, value string) *ArgWriter {
	w.args = append(w.args, kw, value)
	return w
}

func (w *ArgWriter) Args() []string {
	return w.args
}
