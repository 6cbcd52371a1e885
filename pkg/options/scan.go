package options

import "vkclient/internal/protocol"

// ScanOptions is shared by SCAN/HSCAN/SSCAN/ZSCAN: MATCH pattern, COUNT
// hint, TYPE (SCAN only), and NOVALUES (HSCAN only).
type ScanOptions struct {
	Match    string
	Count    *int64
	Type     string // SCAN only
	NoValues bool   // HSCAN only
}

func NewScanOptions() *ScanOptions { return &ScanOptions{} }

func (o *ScanOptions) WithMatch(pattern string) *ScanOptions { o.Match = pattern; return o }
func (o *ScanOptions) WithCount(n int64) *ScanOptions        { o.Count = &n; return o }
func (o *ScanOptions) WithType(t string) *ScanOptions        { o.Type = t; return o }
func (o *ScanOptions) WithNoValues() *ScanOptions            { o.NoValues = true; return o }

func (o *ScanOptions) ToArgs(w *protocol.ArgWriter) {
	if o.Match != "" {
		w.Keyword("MATCH").Str(o.Match)
	}
	if o.Count != nil {
		w.Keyword("COUNT").Int(*o.Count)
	}
	if o.Type != "" {
		w.Keyword("TYPE").Str(o.Type)
	}
	if o.NoValues {
		w.Keyword("NOVALUES")
	}
}

// FlushMode is FLUSHALL/FLUSHDB's optional SYNC/ASYNC trailing token.
type FlushMode int

const (
	FlushDefault FlushMode = iota
	FlushSync
	FlushAsync
)

func (m FlushMode) ToArgs(w *protocol.ArgWriter) {
	switch m {
	case FlushSync:
		w.Keyword("SYNC")
	case FlushAsync:
		w.Keyword("ASYNC")
	}
}
