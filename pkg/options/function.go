package options

import "vkclient/internal/protocol"

// FunctionLoadOptions mirrors spec.md §4.1: "[REPLACE], code".
type FunctionLoadOptions struct {
	Replace bool
}

func (o FunctionLoadOptions) ToArgs(w *protocol.ArgWriter) {
	if o.Replace {
		w.Keyword("REPLACE")
	}
}

// FCallArgs mirrors spec.md §4.1: "func, keys_count, keys..., args...".
type FCallArgs struct {
	Function string
	Keys     []string
	Args     []string
}

func (f FCallArgs) ToArgs(w *protocol.ArgWriter) {
	w.Str(f.Function).Int(int64(len(f.Keys))).Strs(f.Keys...).Strs(f.Args...)
}
