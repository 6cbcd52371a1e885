package commands

import (
	"vkclient/internal/protocol"
)

func (f *Factory) LPush(key string, values ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(values)).Str(key).Strs(values...)
	return f.build(protocol.LPush, w.Args())
}

func (f *Factory) RPush(key string, values ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(values)).Str(key).Strs(values...)
	return f.build(protocol.RPush, w.Args())
}

func (f *Factory) LPop(key string) protocol.Cmd {
	return f.build(protocol.LPop, []string{key})
}

func (f *Factory) LPopCount(key string, count int64) protocol.Cmd {
	return f.build(protocol.LPop, []string{key, protocol.IntToString(count)})
}

func (f *Factory) RPop(key string) protocol.Cmd {
	return f.build(protocol.RPop, []string{key})
}

func (f *Factory) RPopCount(key string, count int64) protocol.Cmd {
	return f.build(protocol.RPop, []string{key, protocol.IntToString(count)})
}

func (f *Factory) LRange(key string, start, stop int64) protocol.Cmd {
	return f.build(protocol.LRange, []string{key, protocol.IntToString(start), protocol.IntToString(stop)})
}

func (f *Factory) LLen(key string) protocol.Cmd {
	return f.build(protocol.LLen, []string{key})
}

func (f *Factory) LRem(key string, count int64, value string) protocol.Cmd {
	return f.build(protocol.LRem, []string{key, protocol.IntToString(count), value})
}

func (f *Factory) LIndex(key string, index int64) protocol.Cmd {
	return f.build(protocol.LIndex, []string{key, protocol.IntToString(index)})
}

func (f *Factory) LSet(key string, index int64, value string) protocol.Cmd {
	return f.build(protocol.LSet, []string{key, protocol.IntToString(index), value})
}

func (f *Factory) LTrim(key string, start, stop int64) protocol.Cmd {
	return f.build(protocol.LTrim, []string{key, protocol.IntToString(start), protocol.IntToString(stop)})
}

// BLPop blocks on the multiplexer side, not here: timeoutSeconds == 0 means
// block indefinitely, so the Command Record is marked Blocking and the
// multiplexer bypasses the client's default request timeout for it rather
// than racing the server's own wait.
func (f *Factory) BLPop(timeoutSeconds float64, keys ...string) protocol.Cmd {
	w := protocol.NewArgWriter(len(keys) + 1).Strs(keys...).Float(timeoutSeconds)
	return f.buildBlocking(protocol.BLPop, w.Args())
}

func (f *Factory) BRPop(timeoutSeconds float64, keys ...string) protocol.Cmd {
	w := protocol.NewArgWriter(len(keys) + 1).Strs(keys...).Float(timeoutSeconds)
	return f.buildBlocking(protocol.BRPop, w.Args())
}
