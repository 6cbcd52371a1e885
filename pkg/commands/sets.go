package commands

import "vkclient/internal/protocol"

func (f *Factory) SAdd(key string, members ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(members)).Str(key).Strs(members...)
	return f.build(protocol.SAdd, w.Args())
}

func (f *Factory) SRem(key string, members ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(members)).Str(key).Strs(members...)
	return f.build(protocol.SRem, w.Args())
}

// SMembers is decoded by the client facade as a set, not an ordered list — the
// batch assembler (C4) records this command's index so the caller's result
// vector post-processes it accordingly (spec.md §4, Batch Assembler).
func (f *Factory) SMembers(key string) protocol.Cmd {
	return f.build(protocol.SMembers, []string{key})
}

func (f *Factory) SInter(keys ...string) protocol.Cmd {
	return f.build(protocol.SInter, keys)
}

func (f *Factory) SUnion(keys ...string) protocol.Cmd {
	return f.build(protocol.SUnion, keys)
}

func (f *Factory) SDiff(keys ...string) protocol.Cmd {
	return f.build(protocol.SDiff, keys)
}

func (f *Factory) SIsMember(key, member string) protocol.Cmd {
	return f.build(protocol.SIsMember, []string{key, member})
}

func (f *Factory) SCard(key string) protocol.Cmd {
	return f.build(protocol.SCard, []string{key})
}
