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

// Package pubsub is the pub/sub state (C8): it tracks the three subscription
// kinds (exact channel, pattern, sharded channel), and siphons incoming
// pub/sub frames to either a caller-supplied callback or an unbounded inbound
// queue, chosen once at connect time and held for the connection's lifetime
// (spec.md §4.6) to avoid lost-message races from switching delivery modes
// mid-connection.
package pubsub

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Message is one delivered pub/sub frame.
type Message struct {
	Channel string
	Pattern string // non-empty only for a pattern-matched delivery
	Payload string
	Sharded bool
}

// DeliveryMode is chosen once, at connect time, and never switched.
type DeliveryMode int

const (
	// DeliveryQueue buffers messages for pull-based consumption via
	// GetPubSubMessage/TryGetPubSubMessage.
	DeliveryQueue DeliveryMode = iota
	// DeliveryCallback pushes each message to a caller-supplied function as
	// it arrives, on the goroutine that calls Dispatch.
	DeliveryCallback
)

// Callback receives one message at a time under DeliveryCallback mode. It
// must not block for long — Dispatch calls it synchronously.
type Callback func(Message)

// warnQueueDepth is the soft watermark past which State logs a warning on
// every subsequent power-of-two depth, since spec.md §4.6 requires a warning
// rather than back-pressure when nothing is draining the queue.
const warnQueueDepth = 1000

// State is the subscription table plus inbound delivery for one connection.
// The subscription set is shared and updated atomically with respect to
// incoming frames (spec.md §5, Shared resource policy).
type State struct {
	mu sync.Mutex

	exact   map[string]bool
	pattern map[string]bool
	sharded map[string]bool

	mode     DeliveryMode
	callback Callback

	queue    []Message
	notifyCh chan struct{}

	log *zap.Logger
}

// NewState builds a subscription table bound to one delivery mode for the
// lifetime of the connection. callback is ignored (and may be nil) under
// DeliveryQueue.
func NewState(mode DeliveryMode, callback Callback, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	return &State{
		exact:    make(map[string]bool),
		pattern:  make(map[string]bool),
		sharded:  make(map[string]bool),
		mode:     mode,
		callback: callback,
		notifyCh: make(chan struct{}, 1),
		log:      log,
	}
}

func setAdd(m map[string]bool, keys []string) {
	for _, k := range keys {
		m[k] = true
	}
}

func setRemove(m map[string]bool, keys []string) {
	for _, k := range keys {
		delete(m, k)
	}
}

func (s *State) Subscribe(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setAdd(s.exact, channels)
}

func (s *State) Unsubscribe(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setRemove(s.exact, channels)
}

func (s *State) PSubscribe(patterns ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setAdd(s.pattern, patterns)
}

func (s *State) PUnsubscribe(patterns ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setRemove(s.pattern, patterns)
}

func (s *State) SSubscribe(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setAdd(s.sharded, channels)
}

func (s *State) SUnsubscribe(channels ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setRemove(s.sharded, channels)
}

// IsSharded reports whether channel is currently tracked as a sharded
// subscription, so a transport's dispatch loop can tag an incoming frame
// correctly when the wire protocol itself doesn't distinguish the two.
func (s *State) IsSharded(channel string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sharded[channel]
}

// Subscriptions returns a snapshot of the three subscription sets, for
// rebuilding the connection-request message's subscription table (spec.md
// §4.4) after a reconnect.
func (s *State) Subscriptions() (exact, patterns, sharded []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.exact {
		exact = append(exact, k)
	}
	for k := range s.pattern {
		patterns = append(patterns, k)
	}
	for k := range s.sharded {
		sharded = append(sharded, k)
	}
	return
}

// Dispatch delivers one incoming pub/sub frame. Under DeliveryCallback it
// invokes the callback synchronously; under DeliveryQueue it appends to the
// inbound queue and wakes one blocked GetPubSubMessage call.
func (s *State) Dispatch(m Message) {
	if s.mode == DeliveryCallback {
		if s.callback != nil {
			s.callback(m)
		}
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, m)
	depth := len(s.queue)
	s.mu.Unlock()

	if depth >= warnQueueDepth && depth&(depth-1) == 0 {
		s.log.Warn("pub/sub inbound queue is growing with no drainer", zap.Int("depth", depth))
	}

	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// TryGetPubSubMessage returns the oldest queued message without blocking.
// Only valid under DeliveryQueue; returns (Message{}, false) if the queue is
// empty or the mode is DeliveryCallback.
func (s *State) TryGetPubSubMessage() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Message{}, false
	}
	m := s.queue[0]
	s.queue = s.queue[1:]
	return m, true
}

// GetPubSubMessage blocks until a message is available or ctx is done.
func (s *State) GetPubSubMessage(ctx context.Context) (Message, error) {
	for {
		if m, ok := s.TryGetPubSubMessage(); ok {
			return m, nil
		}
		select {
		case <-s.notifyCh:
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}
