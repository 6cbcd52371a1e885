// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client is the client facade (C7): the public surface an
// application calls, built on top of the command factory (C3), the batch
// assembler (C4), and the request multiplexer (C6). BaseClient carries the
// plumbing both StandaloneClient and ClusterClient share; neither embeds the
// other, mirroring spec.md §3's split between a standalone and a cluster
// Connection State.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vkclient/internal/mux"
	"vkclient/internal/protocol"
	"vkclient/internal/pubsub"
	"vkclient/internal/transport"
	"vkclient/pkg/commands"
	"vkclient/pkg/config"
	"vkclient/pkg/pipeline"
	"vkclient/pkg/vkerrors"
)

// BaseClient wires one Transport to a Mux and a Factory that shares the
// transport's large-argument threshold. StandaloneClient and ClusterClient
// each own one BaseClient per node they talk to.
type BaseClient struct {
	mux       *mux.Mux
	transport transport.Transport
	factory   *commands.Factory
	cfg       config.ClientConfig
	log       *zap.Logger
	decoder   protocol.Decoder

	pubsubMu      sync.Mutex
	pubsubState   *pubsub.State
	pubsubSession transport.PubSubSession
}

// NewBaseClient starts the multiplexer's writer goroutine and is ready to
// submit immediately — LazyConnect in cfg governs only the transport's own
// connection timing, which is outside this module's scope (spec.md §1).
func NewBaseClient(t transport.Transport, cfg config.ClientConfig, log *zap.Logger, reg *prometheus.Registry) *BaseClient {
	if log == nil {
		log = zap.NewNop()
	}
	m := mux.New(t, cfg.RequestTimeout, log, reg)
	m.Start()
	return &BaseClient{
		mux:       m,
		transport: t,
		factory:   commands.NewFactory(t),
		cfg:       cfg,
		log:       log,
		decoder:   protocol.DefaultDecoder{},
	}
}

// Close drains every live callback slot with a ClosingError, stops the
// writer goroutine, and closes the pub/sub session if one was ever opened.
// Safe to call more than once.
func (c *BaseClient) Close() {
	c.pubsubMu.Lock()
	sess := c.pubsubSession
	c.pubsubMu.Unlock()
	if sess != nil {
		_ = sess.Close()
	}
	c.mux.Stop()
}

// Factory exposes the command factory directly for callers that want to
// build a Cmd without an accompanying convenience method.
func (c *BaseClient) Factory() *commands.Factory { return c.factory }

func (c *BaseClient) submit(ctx context.Context, cmd protocol.Cmd) (any, error) {
	value, err := c.mux.Submit(ctx, cmd, nil)
	if err != nil {
		return nil, err
	}
	if pipeline.IsSetDecoded(cmd.RequestType) {
		return c.decoder.DecodeSet(value)
	}
	return value, nil
}

// submitErr is the shape every factory method that can fail before
// producing a Cmd returns; callers pass it straight through unless the
// ValidationError itself needs to short-circuit the round trip.
func (c *BaseClient) submitErr(ctx context.Context, cmd protocol.Cmd, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return c.submit(ctx, cmd)
}

// ExecBatch submits an already-built batch as one atomic or non-atomic unit
// and returns one Response per command, positionally aligned with
// batch.Commands, with every set-decoded position (SMEMBERS, SINTER, SUNION,
// SDIFF) converted to its set shape before returning. An empty batch is not
// an error — spec.md §8 Boundary behaviors requires it return an empty
// response array. Callers must check batch.Validate() themselves first if
// they want to distinguish a build-time error from a submission error; this
// method re-checks it anyway so a malformed batch never reaches the wire.
func (c *BaseClient) ExecBatch(ctx context.Context, batch *pipeline.Batch, timeoutMs *uint32) ([]transport.Response, error) {
	if err := batch.Validate(); err != nil {
		return nil, err
	}
	var timeout *time.Duration
	if timeoutMs != nil {
		d := time.Duration(*timeoutMs) * time.Millisecond
		timeout = &d
	}
	results, err := c.mux.SubmitBatch(ctx, batch.Commands, batch.IsAtomic, timeout)
	if err != nil {
		return nil, err
	}
	for _, idx := range batch.SetDecodedIndexes() {
		if idx < 0 || idx >= len(results) || results[idx].Err != nil {
			continue
		}
		decoded, derr := c.decoder.DecodeSet(results[idx].Value)
		if derr != nil {
			results[idx] = transport.Response{Err: derr}
			continue
		}
		results[idx].Value = decoded
	}
	return results, nil
}

// ensurePubSub opens the dedicated pub/sub session on first use, per
// spec.md §4.6's "subscription set is part of the connection-request
// message; post-connect updates use dedicated subscribe/unsubscribe
// commands" — there is no socket to attach it to before the first
// subscribe call reaches here.
func (c *BaseClient) ensurePubSub() (transport.PubSubSession, *pubsub.State, error) {
	c.pubsubMu.Lock()
	defer c.pubsubMu.Unlock()
	if c.pubsubSession != nil {
		return c.pubsubSession, c.pubsubState, nil
	}
	pst, ok := c.transport.(transport.PubSubTransport)
	if !ok {
		return nil, nil, &vkerrors.RequestError{Msg: "transport does not support pub/sub"}
	}
	state := pubsub.NewState(c.cfg.PubSubMode, c.cfg.PubSubCallback, c.log)
	sess, err := pst.NewPubSubSession(context.Background(), state)
	if err != nil {
		return nil, nil, err
	}
	c.pubsubState = state
	c.pubsubSession = sess
	return sess, state, nil
}

// Subscribe adds exact-channel subscriptions, opening the pub/sub session on
// first use.
func (c *BaseClient) Subscribe(ctx context.Context, channels ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.Subscribe(ctx, channels...); err != nil {
		return err
	}
	state.Subscribe(channels...)
	return nil
}

func (c *BaseClient) Unsubscribe(ctx context.Context, channels ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.Unsubscribe(ctx, channels...); err != nil {
		return err
	}
	state.Unsubscribe(channels...)
	return nil
}

func (c *BaseClient) PSubscribe(ctx context.Context, patterns ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.PSubscribe(ctx, patterns...); err != nil {
		return err
	}
	state.PSubscribe(patterns...)
	return nil
}

func (c *BaseClient) PUnsubscribe(ctx context.Context, patterns ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.PUnsubscribe(ctx, patterns...); err != nil {
		return err
	}
	state.PUnsubscribe(patterns...)
	return nil
}

func (c *BaseClient) SSubscribe(ctx context.Context, channels ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.SSubscribe(ctx, channels...); err != nil {
		return err
	}
	state.SSubscribe(channels...)
	return nil
}

func (c *BaseClient) SUnsubscribe(ctx context.Context, channels ...string) error {
	sess, state, err := c.ensurePubSub()
	if err != nil {
		return err
	}
	if err := sess.SUnsubscribe(ctx, channels...); err != nil {
		return err
	}
	state.SUnsubscribe(channels...)
	return nil
}

// GetPubSubMessage blocks until a message is available or ctx is done. It
// is only meaningful under the DeliveryQueue mode (the default); under
// DeliveryCallback the queue is never populated (spec.md §4.6).
func (c *BaseClient) GetPubSubMessage(ctx context.Context) (pubsub.Message, error) {
	c.pubsubMu.Lock()
	state := c.pubsubState
	c.pubsubMu.Unlock()
	if state == nil {
		return pubsub.Message{}, &vkerrors.RequestError{Msg: "not subscribed to any channel"}
	}
	return state.GetPubSubMessage(ctx)
}

// TryGetPubSubMessage returns the oldest queued message without blocking.
func (c *BaseClient) TryGetPubSubMessage() (pubsub.Message, bool) {
	c.pubsubMu.Lock()
	state := c.pubsubState
	c.pubsubMu.Unlock()
	if state == nil {
		return pubsub.Message{}, false
	}
	return state.TryGetPubSubMessage()
}
