package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) Eval(script string, keys, args []string) protocol.Cmd {
	w := protocol.NewArgWriter(2 + len(keys) + len(args)).
		Str(script).Int(int64(len(keys))).Strs(keys...).Strs(args...)
	return f.build(protocol.Eval, w.Args())
}

func (f *Factory) EvalSha(sha1 string, keys, args []string) protocol.Cmd {
	w := protocol.NewArgWriter(2 + len(keys) + len(args)).
		Str(sha1).Int(int64(len(keys))).Strs(keys...).Strs(args...)
	return f.build(protocol.EvalSha, w.Args())
}

func (f *Factory) ScriptLoad(script string) protocol.Cmd {
	return f.build(protocol.ScriptLoad, []string{script})
}

func (f *Factory) FunctionLoad(code string, opts *options.FunctionLoadOptions) protocol.Cmd {
	w := protocol.NewArgWriter(2)
	if opts != nil {
		opts.ToArgs(w)
	}
	w.Str(code)
	return f.build(protocol.FunctionLoad, w.Args())
}

func (f *Factory) FCall(call options.FCallArgs) protocol.Cmd {
	w := protocol.NewArgWriter(2 + len(call.Keys) + len(call.Args))
	call.ToArgs(w)
	return f.build(protocol.FCall, w.Args())
}

func (f *Factory) FCallReadOnly(call options.FCallArgs) protocol.Cmd {
	w := protocol.NewArgWriter(2 + len(call.Keys) + len(call.Args))
	call.ToArgs(w)
	return f.build(protocol.FCallReadOnly, w.Args())
}
