package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
	"vkclient/pkg/vkerrors"
)

// ZAdd encodes spec.md §4.1's ZADD grammar and enforces the option struct's
// own mutual-exclusion rules before any Command Record is built.
func (f *Factory) ZAdd(key string, members []options.SortedSetMember, opts *options.ZAddOptions) (protocol.Cmd, error) {
	if opts == nil {
		opts = options.NewZAddOptions()
	}
	if err := opts.Validate(members); err != nil {
		return protocol.Cmd{}, err
	}
	w := protocol.NewArgWriter(4 + len(members)*2).Str(key)
	opts.ToArgs(w)
	for _, m := range members {
		w.Float(m.Score).Str(m.Member)
	}
	return f.build(protocol.ZAdd, w.Args()), nil
}

func (f *Factory) ZScore(key, member string) protocol.Cmd {
	return f.build(protocol.ZScore, []string{key, member})
}

func (f *Factory) ZIncrBy(key string, delta float64, member string) protocol.Cmd {
	return f.build(protocol.ZIncrBy, []string{key, protocol.FloatToString(delta), member})
}

func (f *Factory) ZRem(key string, members ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(members)).Str(key).Strs(members...)
	return f.build(protocol.ZRem, w.Args())
}

func (f *Factory) ZCard(key string) protocol.Cmd {
	return f.build(protocol.ZCard, []string{key})
}

func (f *Factory) ZRange(key string, opts *options.RangeOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(8).Str(key)
	if err := opts.ToArgs(w); err != nil {
		return protocol.Cmd{}, err
	}
	return f.build(protocol.ZRange, w.Args()), nil
}

func (f *Factory) ZRangeStore(dest, src string, opts *options.RangeOptions) (protocol.Cmd, error) {
	if opts.Scores {
		return protocol.Cmd{}, &vkerrors.ValidationError{Msg: "ZRANGESTORE does not support WITHSCORES"}
	}
	w := protocol.NewArgWriter(8).Str(dest).Str(src)
	if err := opts.ToArgs(w); err != nil {
		return protocol.Cmd{}, err
	}
	return f.build(protocol.ZRangeStore, w.Args()), nil
}

func (f *Factory) ZRangeByScore(key string, min, max protocol.Boundary) (protocol.Cmd, error) {
	if err := protocol.ValidateRangePair(min, max); err != nil {
		return protocol.Cmd{}, err
	}
	minTok, _, _ := min.Encode()
	maxTok, _, _ := max.Encode()
	return f.build(protocol.ZRangeByScore, []string{key, minTok, maxTok}), nil
}
