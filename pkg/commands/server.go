package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) ConfigGet(parameters ...string) protocol.Cmd {
	return f.build(protocol.ConfigGet, parameters)
}

func (f *Factory) ConfigSet(settings []KeyValue) protocol.Cmd {
	w := protocol.NewArgWriter(len(settings) * 2)
	for _, s := range settings {
		w.Str(s.Key).Str(s.Value)
	}
	return f.build(protocol.ConfigSet, w.Args())
}

func (f *Factory) Info(sections ...string) protocol.Cmd {
	return f.build(protocol.Info, sections)
}

func (f *Factory) FlushAll(mode options.FlushMode) protocol.Cmd {
	w := protocol.NewArgWriter(1)
	mode.ToArgs(w)
	return f.build(protocol.FlushAll, w.Args())
}

func (f *Factory) FlushDB(mode options.FlushMode) protocol.Cmd {
	w := protocol.NewArgWriter(1)
	mode.ToArgs(w)
	return f.build(protocol.FlushDB, w.Args())
}

func (f *Factory) DBSize() protocol.Cmd {
	return f.build(protocol.DBSize, nil)
}

func (f *Factory) Ping(message string) protocol.Cmd {
	if message == "" {
		return f.build(protocol.Ping, nil)
	}
	return f.build(protocol.Ping, []string{message})
}

func (f *Factory) ClientGetName() protocol.Cmd {
	return f.build(protocol.ClientGetName, nil)
}

func (f *Factory) ClientSetName(name string) protocol.Cmd {
	return f.build(protocol.ClientSetName, []string{name})
}
