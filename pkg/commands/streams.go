package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

// XAdd encodes spec.md §4.1's XADD grammar. id may be "*" for
// server-assigned IDs.
func (f *Factory) XAdd(key, id string, fields []KeyValue, opts *options.XAddOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(6 + len(fields)*2).Str(key)
	if opts != nil {
		if err := opts.ToArgs(w); err != nil {
			return protocol.Cmd{}, err
		}
	}
	w.Str(id)
	for _, fv := range fields {
		w.Str(fv.Key).Str(fv.Value)
	}
	return f.build(protocol.XAdd, w.Args()), nil
}

func (f *Factory) XRange(key, start, end string) protocol.Cmd {
	return f.build(protocol.XRange, []string{key, start, end})
}

func (f *Factory) XRangeCount(key, start, end string, count int64) protocol.Cmd {
	return f.build(protocol.XRange, []string{key, start, end, "COUNT", protocol.IntToString(count)})
}

func (f *Factory) XRevRange(key, end, start string) protocol.Cmd {
	return f.build(protocol.XRevRange, []string{key, end, start})
}

func (f *Factory) XLen(key string) protocol.Cmd {
	return f.build(protocol.XLen, []string{key})
}

// XRead encodes spec.md §4.1's "[COUNT n] [BLOCK ms] STREAMS key... id...".
// A zero blockMs means no BLOCK clause (non-blocking read); the blocking
// semantics for blockMs > 0 live in the multiplexer, not here.
func (f *Factory) XRead(count, blockMs int64, keys, ids []string) protocol.Cmd {
	w := protocol.NewArgWriter(4 + len(keys) + len(ids))
	if count > 0 {
		w.Keyword("COUNT").Int(count)
	}
	if blockMs > 0 {
		w.Keyword("BLOCK").Int(blockMs)
	}
	w.Keyword("STREAMS").Strs(keys...).Strs(ids...)
	if blockMs > 0 {
		return f.buildBlocking(protocol.XRead, w.Args())
	}
	return f.build(protocol.XRead, w.Args())
}

func (f *Factory) XGroupCreate(key, group, id string, mkstream bool) protocol.Cmd {
	w := protocol.NewArgWriter(5).Keyword("CREATE").Str(key).Str(group).Str(id)
	if mkstream {
		w.Keyword("MKSTREAM")
	}
	return f.build(protocol.XGroupCreate, w.Args())
}

func (f *Factory) XReadGroup(group, consumer string, count int64, keys, ids []string) protocol.Cmd {
	w := protocol.NewArgWriter(6 + len(keys) + len(ids)).
		Keyword("GROUP").Str(group).Str(consumer)
	if count > 0 {
		w.Keyword("COUNT").Int(count)
	}
	w.Keyword("STREAMS").Strs(keys...).Strs(ids...)
	return f.build(protocol.XReadGroup, w.Args())
}

func (f *Factory) XAck(key, group string, ids ...string) protocol.Cmd {
	w := protocol.NewArgWriter(2 + len(ids)).Str(key).Str(group).Strs(ids...)
	return f.build(protocol.XAck, w.Args())
}
