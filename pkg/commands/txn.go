package commands

import "vkclient/internal/protocol"

// Multi, Exec, and Discard are not exposed on the client facade (C7); an
// atomic batch gets its MULTI/EXEC framing from the transport. Watch and
// Unwatch are exposed as StandaloneClient methods (and Watch on
// StandaloneBatch), which build them here since the wire shape is identical.

func (f *Factory) Watch(keys ...string) protocol.Cmd {
	return f.build(protocol.Watch, keys)
}

func (f *Factory) Unwatch() protocol.Cmd {
	return f.build(protocol.Unwatch, nil)
}

func (f *Factory) Multi() protocol.Cmd {
	return f.build(protocol.Multi, nil)
}

func (f *Factory) Exec() protocol.Cmd {
	return f.build(protocol.Exec, nil)
}

func (f *Factory) Discard() protocol.Cmd {
	return f.build(protocol.Discard, nil)
}
