package commands

import "vkclient/internal/protocol"

func (f *Factory) PfAdd(key string, elements ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(elements)).Str(key).Strs(elements...)
	return f.build(protocol.PfAdd, w.Args())
}

func (f *Factory) PfCount(keys ...string) protocol.Cmd {
	return f.build(protocol.PfCount, keys)
}

func (f *Factory) PfMerge(dest string, sources ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(sources)).Str(dest).Strs(sources...)
	return f.build(protocol.PfMerge, w.Args())
}
