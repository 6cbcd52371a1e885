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

package goredis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"vkclient/internal/pubsub"
	"vkclient/internal/transport"
	"vkclient/pkg/vkerrors"
)

// pubsubCapable is the slice of *redis.Client's method set this bridge
// needs. redis.Cmdable itself doesn't expose Subscribe/PSubscribe/SSubscribe
// — those live one level up, on the concrete client types — so Transport
// type-asserts for this narrower interface rather than widening Cmdable.
type pubsubCapable interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// NewPubSubSession opens one dedicated *redis.PubSub connection and starts a
// goroutine that dispatches every frame it receives into state, until Close
// is called. Implements transport.PubSubTransport.
func (t *Transport) NewPubSubSession(ctx context.Context, state *pubsub.State) (transport.PubSubSession, error) {
	pc, ok := t.client.(pubsubCapable)
	if !ok {
		return nil, &vkerrors.RequestError{Msg: "underlying client does not support pub/sub"}
	}
	ps := pc.Subscribe(ctx)
	sess := &pubSubSession{ps: ps, state: state, done: make(chan struct{})}
	go sess.run()
	return sess, nil
}

// pubSubSession wraps one *redis.PubSub connection, draining it into a
// pubsub.State until closed.
type pubSubSession struct {
	ps    *redis.PubSub
	state *pubsub.State
	done  chan struct{}
}

func (s *pubSubSession) run() {
	ch := s.ps.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.state.Dispatch(pubsub.Message{
				Channel: msg.Channel,
				Pattern: msg.Pattern,
				Payload: msg.Payload,
				Sharded: s.state.IsSharded(msg.Channel),
			})
		case <-s.done:
			return
		}
	}
}

func (s *pubSubSession) Subscribe(ctx context.Context, channels ...string) error {
	return s.ps.Subscribe(ctx, channels...)
}

func (s *pubSubSession) Unsubscribe(ctx context.Context, channels ...string) error {
	return s.ps.Unsubscribe(ctx, channels...)
}

func (s *pubSubSession) PSubscribe(ctx context.Context, patterns ...string) error {
	return s.ps.PSubscribe(ctx, patterns...)
}

func (s *pubSubSession) PUnsubscribe(ctx context.Context, patterns ...string) error {
	return s.ps.PUnsubscribe(ctx, patterns...)
}

func (s *pubSubSession) SSubscribe(ctx context.Context, channels ...string) error {
	return s.ps.SSubscribe(ctx, channels...)
}

func (s *pubSubSession) SUnsubscribe(ctx context.Context, channels ...string) error {
	return s.ps.SUnsubscribe(ctx, channels...)
}

func (s *pubSubSession) Close() error {
	close(s.done)
	return s.ps.Close()
}
