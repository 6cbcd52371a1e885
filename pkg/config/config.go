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

// Package config is the connection configuration resolver (C5): it
// validates and normalizes user-supplied connection settings into an opaque
// request the transport consumes, without ever opening a socket itself.
package config

import (
	"time"

	"vkclient/internal/pubsub"
	"vkclient/pkg/vkerrors"
)

// ReadFromPolicy selects which node(s) a cluster read may be served from.
type ReadFromPolicy int

const (
	ReadFromPrimary ReadFromPolicy = iota
	ReadFromPreferReplica
	ReadFromAZAffinity
	ReadFromAZAffinityReplicasAndPrimary
)

// ProtocolVersion selects the wire protocol the transport negotiates.
type ProtocolVersion int

const (
	RESP2 ProtocolVersion = iota
	RESP3
)

// TLSMode selects whether and how the transport authenticates the server
// certificate.
type TLSMode int

const (
	TLSDisabled TLSMode = iota
	TLSEnabled
	TLSInsecureSkipVerify
)

// NodeAddr is one endpoint in the configured endpoint list.
type NodeAddr struct {
	Host string
	Port int
}

// Credentials holds the optional AUTH identity.
type Credentials struct {
	Username string
	Password string
}

// BackoffSpec is the reconnect curve `(num_retries, factor, exponent_base)`
// from spec.md §3. The transport owns the actual reconnection loop; the
// resolver only validates and forwards this.
type BackoffSpec struct {
	NumRetries   int
	Factor       int
	ExponentBase int
}

// SubscriptionSet is the initial subscription table sent as part of the
// connection request. Sharded channels are only legal when ClusterMode is
// true.
type SubscriptionSet struct {
	Exact   []string
	Pattern []string
	Sharded []string
}

// ClientConfig is the Connection State record from spec.md §3, pre-resolved
// into the shape the transport's connection request carries.
type ClientConfig struct {
	Addresses        []NodeAddr
	TLS              TLSMode
	Credentials      *Credentials
	ReadFrom         ReadFromPolicy
	Protocol         ProtocolVersion
	RequestTimeout   time.Duration
	InflightCap      int
	ClientName       string
	LazyConnect      bool
	Backoff          BackoffSpec
	DatabaseIndex    int
	ClusterMode      bool
	Subscriptions    SubscriptionSet
	PubSubMode       pubsub.DeliveryMode
	PubSubCallback   pubsub.Callback
	ClientAZ         string
	SamplePercentage int
	FlushIntervalMs  int
	TelemetryFile    string
}

// Resolver builds and validates a ClientConfig fluently, mirroring the
// chainable With* option-struct pattern used across this module's option
// types.
type Resolver struct {
	cfg ClientConfig
	err error
}

func NewResolver() *Resolver {
	return &Resolver{cfg: ClientConfig{
		RequestTimeout: 250 * time.Millisecond,
		InflightCap:    1000,
		Protocol:       RESP3,
	}}
}

func (r *Resolver) WithAddresses(addrs ...NodeAddr) *Resolver {
	r.cfg.Addresses = addrs
	return r
}

func (r *Resolver) WithTLS(mode TLSMode) *Resolver {
	r.cfg.TLS = mode
	return r
}

func (r *Resolver) WithCredentials(username, password string) *Resolver {
	r.cfg.Credentials = &Credentials{Username: username, Password: password}
	return r
}

func (r *Resolver) WithReadFrom(p ReadFromPolicy) *Resolver {
	r.cfg.ReadFrom = p
	return r
}

func (r *Resolver) WithProtocol(v ProtocolVersion) *Resolver {
	r.cfg.Protocol = v
	return r
}

func (r *Resolver) WithRequestTimeout(d time.Duration) *Resolver {
	r.cfg.RequestTimeout = d
	return r
}

func (r *Resolver) WithInflightCap(n int) *Resolver {
	r.cfg.InflightCap = n
	return r
}

func (r *Resolver) WithClientName(name string) *Resolver {
	r.cfg.ClientName = name
	return r
}

func (r *Resolver) WithLazyConnect() *Resolver {
	r.cfg.LazyConnect = true
	return r
}

func (r *Resolver) WithBackoff(spec BackoffSpec) *Resolver {
	r.cfg.Backoff = spec
	return r
}

func (r *Resolver) WithDatabaseIndex(idx int) *Resolver {
	r.cfg.DatabaseIndex = idx
	return r
}

func (r *Resolver) WithClusterMode() *Resolver {
	r.cfg.ClusterMode = true
	return r
}

func (r *Resolver) WithSubscriptions(s SubscriptionSet) *Resolver {
	r.cfg.Subscriptions = s
	return r
}

// WithPubSubCallback switches pub/sub delivery from the default queue mode
// (drained via getPubSubMessage/tryGetPubSubMessage) to push-callback mode
// for the connection's lifetime, per spec.md §4.6's delivery-mode stability
// requirement.
func (r *Resolver) WithPubSubCallback(cb pubsub.Callback) *Resolver {
	r.cfg.PubSubMode = pubsub.DeliveryCallback
	r.cfg.PubSubCallback = cb
	return r
}

func (r *Resolver) WithClientAZ(az string) *Resolver {
	r.cfg.ClientAZ = az
	return r
}

func (r *Resolver) WithSamplePercentage(p int) *Resolver {
	r.cfg.SamplePercentage = p
	return r
}

func (r *Resolver) WithFlushIntervalMs(ms int) *Resolver {
	r.cfg.FlushIntervalMs = ms
	return r
}

func (r *Resolver) WithTelemetryFile(path string) *Resolver {
	r.cfg.TelemetryFile = path
	return r
}

// Build validates every field per spec.md §4.4 and returns the resolved
// ClientConfig, or the first validation failure encountered.
func (r *Resolver) Build() (ClientConfig, error) {
	if len(r.cfg.Addresses) == 0 {
		return ClientConfig{}, &vkerrors.ValidationError{Msg: "at least one address is required"}
	}
	if r.cfg.Backoff.NumRetries < 0 || r.cfg.Backoff.Factor < 0 || r.cfg.Backoff.ExponentBase < 0 {
		return ClientConfig{}, &vkerrors.ValidationError{Msg: "backoff num_retries, factor, and exponent_base must be non-negative"}
	}
	if r.cfg.SamplePercentage < 0 || r.cfg.SamplePercentage > 100 {
		return ClientConfig{}, &vkerrors.ValidationError{Msg: "samplePercentage must be within [0, 100]"}
	}
	if r.cfg.FlushIntervalMs != 0 && r.cfg.FlushIntervalMs <= 0 {
		return ClientConfig{}, &vkerrors.ValidationError{Msg: "flushIntervalMs must be positive"}
	}
	if r.cfg.TelemetryFile != "" {
		if err := validateTelemetryFileParent(r.cfg.TelemetryFile); err != nil {
			return ClientConfig{}, err
		}
	}
	if len(r.cfg.Subscriptions.Sharded) > 0 && !r.cfg.ClusterMode {
		return ClientConfig{}, &vkerrors.ValidationError{Msg: "sharded channel subscriptions require cluster mode"}
	}
	return r.cfg, nil
}
