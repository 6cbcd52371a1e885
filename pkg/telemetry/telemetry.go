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

// Package telemetry is the telemetry initializer (C9): a single-shot,
// process-wide setup of the trace/metric exporters a client process uses.
// The first call wins; every later call is a no-op that only logs a warning
// (spec.md §4.8) — there is no re-init path, and no per-client telemetry
// state, since spec.md models it as process-wide.
package telemetry

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ExporterKind selects the transport the trace/metric exporters use.
type ExporterKind int

const (
	ExporterHTTP ExporterKind = iota
	ExporterGRPC
	ExporterFile
)

// Config is the caller-supplied exporter configuration for the one allowed
// Init call.
type Config struct {
	Kind        ExporterKind
	Endpoint    string // host:port for HTTP/gRPC, file path for ExporterFile
	ServiceName string
}

var (
	initialized atomic.Bool
	mu          sync.Mutex
	active      Config
	registry    *prometheus.Registry
)

// Init configures the process-wide exporters from cfg and returns the
// prometheus.Registry every client's metrics should register into. Only the
// first call in the process takes effect; every subsequent call logs a
// warning and returns the registry from the first call, ignoring cfg.
func Init(cfg Config, log *zap.Logger) *prometheus.Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if !initialized.CompareAndSwap(false, true) {
		log.Warn("telemetry already initialized; ignoring subsequent Init call",
			zap.Int("kind", int(active.Kind)),
			zap.String("endpoint", active.Endpoint))
		mu.Lock()
		defer mu.Unlock()
		return registry
	}

	mu.Lock()
	active = cfg
	registry = prometheus.NewRegistry()
	mu.Unlock()

	log.Info("telemetry initialized",
		zap.Int("kind", int(cfg.Kind)),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("service", cfg.ServiceName))
	return registry
}

// Initialized reports whether Init has run in this process.
func Initialized() bool { return initialized.Load() }

// ActiveConfig returns the Config installed by the winning Init call. The
// zero Config is returned if Init has never been called.
func ActiveConfig() Config {
	mu.Lock()
	defer mu.Unlock()
	return active
}

// Registry returns the registry Init created, or nil if Init has never run.
func Registry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// reset is test-only: it undoes Init so each test gets a fresh singleton.
// Production code has no equivalent — spec.md §4.8 explicitly has no re-init
// path outside restarting the process.
func reset() {
	initialized.Store(false)
	mu.Lock()
	active = Config{}
	registry = nil
	mu.Unlock()
}
