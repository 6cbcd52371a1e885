package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) HSet(key string, fields []KeyValue) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(fields)*2).Str(key)
	for _, fv := range fields {
		w.Str(fv.Key).Str(fv.Value)
	}
	return f.build(protocol.HSet, w.Args())
}

func (f *Factory) HGet(key, field string) protocol.Cmd {
	return f.build(protocol.HGet, []string{key, field})
}

func (f *Factory) HDel(key string, fields ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(fields)).Str(key).Strs(fields...)
	return f.build(protocol.HDel, w.Args())
}

func (f *Factory) HGetAll(key string) protocol.Cmd {
	return f.build(protocol.HGetAll, []string{key})
}

func (f *Factory) HMGet(key string, fields ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(fields)).Str(key).Strs(fields...)
	return f.build(protocol.HMGet, w.Args())
}

func (f *Factory) HIncrBy(key, field string, delta int64) protocol.Cmd {
	return f.build(protocol.HIncrBy, []string{key, field, protocol.IntToString(delta)})
}

func (f *Factory) HExists(key, field string) protocol.Cmd {
	return f.build(protocol.HExists, []string{key, field})
}

// HSetEx encodes spec.md §4.1:
//
//	key, [FNX|FXX], [EX|PX|EXAT|PXAT n | KEEPTTL], FIELDS count, field..., value...
func (f *Factory) HSetEx(key string, fields []KeyValue, opts *options.HSetExOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(4 + len(fields)*2).Str(key)
	if opts != nil {
		if err := opts.ToArgs(w); err != nil {
			return protocol.Cmd{}, err
		}
	}
	w.Keyword("FIELDS").Int(int64(len(fields)))
	for _, fv := range fields {
		w.Str(fv.Key)
	}
	for _, fv := range fields {
		w.Str(fv.Value)
	}
	return f.build(protocol.HSetEx, w.Args()), nil
}

// HGetEx encodes spec.md §4.1:
//
//	key, [EX|PX|EXAT|PXAT n | PERSIST], FIELDS count, field...
func (f *Factory) HGetEx(key string, fields []string, opts *options.HGetExOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(3 + len(fields)).Str(key)
	if opts != nil {
		if err := opts.ToArgs(w); err != nil {
			return protocol.Cmd{}, err
		}
	}
	w.Keyword("FIELDS").Int(int64(len(fields))).Strs(fields...)
	return f.build(protocol.HGetEx, w.Args()), nil
}
