// Package transport defines the downward, transport-facing boundary (spec.md
// §6): the interface the multiplexer (C6) uses to hand framed requests to
// whatever performs the actual network I/O, and the large-argument escape
// hatch the argument encoder (C1) uses to leak oversize vectors.
package transport

import (
	"context"

	"vkclient/internal/protocol"
	"vkclient/internal/pubsub"
)

// Response is the decoded result of one submitted Cmd. Err, when non-nil,
// is one of the vkerrors taxonomy members; Value is nil whenever Err is set.
type Response struct {
	Value any
	Err   error
}

// Transport is the multiplexer's only dependency on the outside world. A
// real implementation forwards to a native client (or, per this module's
// addition, to a wire bridge); a fake implementation can answer
// deterministically for tests.
type Transport interface {
	// Submit sends a single Command Record and returns its decoded response
	// or a context/transport error. The transport is responsible for its own
	// retries; Submit returning an error means the multiplexer's view of this
	// request is final.
	Submit(ctx context.Context, cmd protocol.Cmd) (Response, error)

	// SubmitBatch sends an ordered sequence of Command Records as a single
	// atomic or non-atomic batch and returns one Response per command, in
	// the same order.
	SubmitBatch(ctx context.Context, cmds []protocol.Cmd, atomic bool) ([]Response, error)

	protocol.VectorLeaker
}

// PubSubTransport is implemented by a Transport that can also distinguish
// out-of-band pub/sub push frames from command responses (spec.md §4.6) and
// dispatch them to a pubsub.State. Not every Transport needs this — inmem's
// fakes, for instance, have no notion of an independent subscription
// connection — so it is a capability interface a client facade type-asserts
// for rather than a requirement on Transport itself.
type PubSubTransport interface {
	// NewPubSubSession opens a dedicated subscription connection that
	// dispatches every incoming frame to state until the session is closed.
	NewPubSubSession(ctx context.Context, state *pubsub.State) (PubSubSession, error)
}

// PubSubSession is one open subscription connection. Every method issues the
// matching command on that connection and, on success, the caller is
// responsible for updating the pubsub.State's subscription table to match.
type PubSubSession interface {
	Subscribe(ctx context.Context, channels ...string) error
	Unsubscribe(ctx context.Context, channels ...string) error
	PSubscribe(ctx context.Context, patterns ...string) error
	PUnsubscribe(ctx context.Context, patterns ...string) error
	SSubscribe(ctx context.Context, channels ...string) error
	SUnsubscribe(ctx context.Context, channels ...string) error
	Close() error
}
