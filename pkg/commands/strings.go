package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) Get(key string) protocol.Cmd {
	return f.build(protocol.Get, []string{key})
}

// Set encodes the full SET grammar from spec.md §4.1: key, value,
// [NX|XX|IFEQ cmp], [GET], [KEEPTTL | EX n | PX n | EXAT n | PXAT n].
// opts may be nil for a bare SET.
func (f *Factory) Set(key, value string, opts *options.SetOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(6).Str(key).Str(value)
	if opts != nil {
		if err := opts.ToArgs(w); err != nil {
			return protocol.Cmd{}, err
		}
	}
	return f.build(protocol.Set, w.Args()), nil
}

func (f *Factory) GetSet(key, value string) protocol.Cmd {
	return f.build(protocol.GetSet, []string{key, value})
}

func (f *Factory) GetDel(key string) protocol.Cmd {
	return f.build(protocol.GetDel, []string{key})
}

func (f *Factory) Append(key, value string) protocol.Cmd {
	return f.build(protocol.Append, []string{key, value})
}

func (f *Factory) StrLen(key string) protocol.Cmd {
	return f.build(protocol.StrLen, []string{key})
}

func (f *Factory) Incr(key string) protocol.Cmd {
	return f.build(protocol.Incr, []string{key})
}

func (f *Factory) IncrBy(key string, delta int64) protocol.Cmd {
	return f.build(protocol.IncrBy, []string{key, protocol.IntToString(delta)})
}

func (f *Factory) IncrByFloat(key string, delta float64) protocol.Cmd {
	return f.build(protocol.IncrByFloat, []string{key, protocol.FloatToString(delta)})
}

func (f *Factory) Decr(key string) protocol.Cmd {
	return f.build(protocol.Decr, []string{key})
}

func (f *Factory) DecrBy(key string, delta int64) protocol.Cmd {
	return f.build(protocol.DecrBy, []string{key, protocol.IntToString(delta)})
}

func (f *Factory) MGet(keys ...string) protocol.Cmd {
	return f.build(protocol.MGet, keys)
}

// KeyValue is one key/value pair for MSET. Pairs are encoded in the order
// given — using a map here would make encoding non-deterministic and break
// the purity invariant (spec.md §8: equal input yields byte-equal output).
type KeyValue struct {
	Key   string
	Value string
}

// MSet is the canonical example of the large-argument handoff: with enough
// pairs the summed byte length trips MAX_REQUEST_ARGS_LEN and the resulting
// Cmd carries a leaked-vector handle instead of an inline slice (spec.md §8
// scenario 5).
func (f *Factory) MSet(pairs []KeyValue) protocol.Cmd {
	w := protocol.NewArgWriter(len(pairs) * 2)
	for _, p := range pairs {
		w.Str(p.Key).Str(p.Value)
	}
	return f.build(protocol.MSet, w.Args())
}

func (f *Factory) SetRange(key string, offset int64, value string) protocol.Cmd {
	return f.build(protocol.SetRange, []string{key, protocol.IntToString(offset), value})
}

func (f *Factory) GetRange(key string, start, end int64) protocol.Cmd {
	return f.build(protocol.GetRange, []string{key, protocol.IntToString(start), protocol.IntToString(end)})
}
