package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) Scan(cursor uint64, opts *options.ScanOptions) protocol.Cmd {
	w := protocol.NewArgWriter(6).Str(protocol.UintToString(cursor))
	if opts != nil {
		opts.ToArgs(w)
	}
	return f.build(protocol.Scan, w.Args())
}

func (f *Factory) HScan(key string, cursor uint64, opts *options.ScanOptions) protocol.Cmd {
	w := protocol.NewArgWriter(7).Str(key).Str(protocol.UintToString(cursor))
	if opts != nil {
		opts.ToArgs(w)
	}
	return f.build(protocol.HScan, w.Args())
}

func (f *Factory) SScan(key string, cursor uint64, opts *options.ScanOptions) protocol.Cmd {
	w := protocol.NewArgWriter(6).Str(key).Str(protocol.UintToString(cursor))
	if opts != nil {
		opts.ToArgs(w)
	}
	return f.build(protocol.SScan, w.Args())
}

func (f *Factory) ZScan(key string, cursor uint64, opts *options.ScanOptions) protocol.Cmd {
	w := protocol.NewArgWriter(6).Str(key).Str(protocol.UintToString(cursor))
	if opts != nil {
		opts.ToArgs(w)
	}
	return f.build(protocol.ZScan, w.Args())
}
