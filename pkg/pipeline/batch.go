// Package pipeline is the batch assembler (C4): a self-referential generic
// builder that accumulates Command Records for a standalone or cluster
// batch, then hands the whole vector to the multiplexer as one atomic or
// non-atomic submission (spec.md §4, Batch Assembler).
package pipeline

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/commands"
	"vkclient/pkg/vkerrors"
)

// setDecodedRequestTypes marks the request types whose responses the client
// facade decodes as a set rather than an ordered array — SMEMBERS, SINTER,
// SUNION, and SDIFF all return unordered collections the wire format cannot
// distinguish from a plain array on its own.
var setDecodedRequestTypes = map[protocol.RequestType]bool{
	protocol.SMembers: true,
	protocol.SInter:   true,
	protocol.SUnion:   true,
	protocol.SDiff:    true,
}

// Batch holds the accumulated Command Records plus any validation errors
// raised while building them. A non-empty Errors means Commands and Errors
// are both non-authoritative — the caller must not submit the batch.
type Batch struct {
	Commands       []protocol.Cmd
	IsAtomic       bool
	Errors         []string
	setDecodedIdxs []int
}

// SetDecodedIndexes reports which positions in the eventual response vector
// must be decoded as a set rather than an ordered array.
func (b *Batch) SetDecodedIndexes() []int { return b.setDecodedIdxs }

// IsSetDecoded reports whether a single (non-batched) command of this
// RequestType must be decoded as a set rather than an ordered array — the
// same classification SetDecodedIndexes applies across a batch.
func IsSetDecoded(rt protocol.RequestType) bool { return setDecodedRequestTypes[rt] }

// BaseBatch is the shared generic builder for StandaloneBatch and
// ClusterBatch, mirroring the self-referential pattern so chained calls
// return the concrete batch type instead of BaseBatch itself.
type BaseBatch[T StandaloneBatch | ClusterBatch] struct {
	Batch
	self    *T
	factory *commands.Factory
}

// StandaloneBatch assembles commands for a single-node deployment.
type StandaloneBatch struct {
	BaseBatch[StandaloneBatch]
}

// ClusterBatch assembles commands for a clustered deployment. Every command
// in the batch must route to the same slot when IsAtomic is true; neither
// this type nor the multiplexer checks that, so it rests with the caller.
type ClusterBatch struct {
	BaseBatch[ClusterBatch]
}

// NewStandaloneBatch starts a batch. isAtomic selects MULTI/EXEC framing
// (true) versus a plain pipeline (false).
func NewStandaloneBatch(isAtomic bool, leaker protocol.VectorLeaker) *StandaloneBatch {
	b := StandaloneBatch{BaseBatch: BaseBatch[StandaloneBatch]{
		Batch:   Batch{IsAtomic: isAtomic},
		factory: commands.NewFactory(leaker),
	}}
	b.self = &b
	return &b
}

func NewClusterBatch(isAtomic bool, leaker protocol.VectorLeaker) *ClusterBatch {
	b := ClusterBatch{BaseBatch: BaseBatch[ClusterBatch]{
		Batch:   Batch{IsAtomic: isAtomic},
		factory: commands.NewFactory(leaker),
	}}
	b.self = &b
	return &b
}

func (b *BaseBatch[T]) addCmd(cmd protocol.Cmd) *T {
	if setDecodedRequestTypes[cmd.RequestType] {
		b.setDecodedIdxs = append(b.setDecodedIdxs, len(b.Commands))
	}
	b.Commands = append(b.Commands, cmd)
	return b.self
}

// addFallible records a validation failure against the batch instead of
// propagating it immediately — a batch is built fluently across many chained
// calls, so the error surfaces when the caller inspects Errors or attempts
// to submit, exactly as valkey-glide's BaseBatch.addError does.
func (b *BaseBatch[T]) addFallible(cmd protocol.Cmd, err error) *T {
	if err != nil {
		b.Errors = append(b.Errors, err.Error())
		return b.self
	}
	return b.addCmd(cmd)
}

// Validate returns a ValidationError aggregating every error recorded while
// building the batch, or nil if none occurred.
func (b *Batch) Validate() error {
	if len(b.Errors) == 0 {
		return nil
	}
	msg := b.Errors[0]
	for _, e := range b.Errors[1:] {
		msg += "; " + e
	}
	return &vkerrors.ValidationError{Msg: msg}
}

func (b *StandaloneBatch) Get(key string) *StandaloneBatch {
	return b.addCmd(b.factory.Get(key))
}

func (b *StandaloneBatch) Set(key, value string) *StandaloneBatch {
	cmd, err := b.factory.Set(key, value, nil)
	return b.addFallible(cmd, err)
}

func (b *StandaloneBatch) Incr(key string) *StandaloneBatch {
	return b.addCmd(b.factory.Incr(key))
}

func (b *StandaloneBatch) SMembers(key string) *StandaloneBatch {
	return b.addCmd(b.factory.SMembers(key))
}

func (b *StandaloneBatch) Watch(keys ...string) *StandaloneBatch {
	return b.addCmd(b.factory.Watch(keys...))
}

func (b *ClusterBatch) Get(key string) *ClusterBatch {
	return b.addCmd(b.factory.Get(key))
}

func (b *ClusterBatch) Set(key, value string) *ClusterBatch {
	cmd, err := b.factory.Set(key, value, nil)
	return b.addFallible(cmd, err)
}

func (b *ClusterBatch) Incr(key string) *ClusterBatch {
	return b.addCmd(b.factory.Incr(key))
}

func (b *ClusterBatch) SMembers(key string) *ClusterBatch {
	return b.addCmd(b.factory.SMembers(key))
}
