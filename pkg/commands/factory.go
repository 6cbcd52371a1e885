// Package commands is the command factory (C3): one pure constructor per
// logical operation, composing the argument encoder (C1) into Command
// Records (C2). A Factory never performs I/O, never allocates a callback
// slot, and never touches shared state — its only failure mode short of a
// well-formed Cmd is a ValidationError raised before the Cmd exists.
package commands

import "vkclient/internal/protocol"

// Factory builds Command Records, applying the transport's large-argument
// threshold via leaker (nil is legal — see protocol.NewCmd).
type Factory struct {
	leaker protocol.VectorLeaker
}

func NewFactory(leaker protocol.VectorLeaker) *Factory {
	return &Factory{leaker: leaker}
}

// Leaker exposes the large-argument leaker this factory was built with, so a
// client facade can hand the same one to a pipeline.Batch it starts.
func (f *Factory) Leaker() protocol.VectorLeaker { return f.leaker }

func (f *Factory) build(rt protocol.RequestType, args []string) protocol.Cmd {
	return protocol.NewCmd(rt, args, f.leaker)
}

// buildBlocking is build for a command whose own argument, not the client's
// request timeout, governs how long the server may hold it open.
func (f *Factory) buildBlocking(rt protocol.RequestType, args []string) protocol.Cmd {
	return protocol.NewBlockingCmd(rt, args, f.leaker)
}
