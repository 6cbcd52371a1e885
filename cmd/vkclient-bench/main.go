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

// Package main is a small, runnable demonstration of the client facade: it
// resolves a connection configuration from flags, drives a fixed SET/GET/INCR
// mix through a StandaloneClient in a loop, and
// reports inflight/submitted counters on a Prometheus /metrics endpoint
// until SIGINT/SIGTERM.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"vkclient/internal/transport/goredis"
	"vkclient/pkg/client"
	"vkclient/pkg/config"
	"vkclient/pkg/telemetry"
)

func main() {
	addr := flag.String("addr", "", "host:port of the server to connect to; empty starts an embedded miniredis instance for a self-contained demo")
	requestTimeout := flag.Duration("request_timeout", 250*time.Millisecond, "per-request timeout applied when no per-call override is given")
	inflightCap := flag.Int("inflight_cap", 1000, "advisory cap on concurrently outstanding requests")
	opsPerSecond := flag.Int("ops_per_second", 50, "target command rate the demo loop issues")
	duration := flag.Duration("duration", 0, "stop after this long; 0 runs until a signal is received")
	metricsAddr := flag.String("metrics_addr", ":9090", "Prometheus /metrics listen address; empty disables the endpoint")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	target := *addr
	if target == "" {
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatal("failed to start embedded miniredis", zap.Error(err))
		}
		defer mr.Close()
		target = mr.Addr()
		log.Info("started embedded miniredis", zap.String("addr", target))
	}

	host, portStr, err := net.SplitHostPort(target)
	if err != nil {
		log.Fatal("invalid addr", zap.String("addr", target), zap.Error(err))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatal("invalid port in addr", zap.String("addr", target), zap.Error(err))
	}

	cfg, err := config.NewResolver().
		WithAddresses(config.NodeAddr{Host: host, Port: port}).
		WithRequestTimeout(*requestTimeout).
		WithInflightCap(*inflightCap).
		WithClientName("vkclient-bench").
		Build()
	if err != nil {
		log.Fatal("invalid connection configuration", zap.Error(err))
	}

	reg := telemetry.Init(telemetry.Config{
		Kind:        telemetry.ExporterHTTP,
		Endpoint:    *metricsAddr,
		ServiceName: "vkclient-bench",
	}, log)

	redisClient := redis.NewClient(&redis.Options{Addr: target})
	transport := goredis.New(redisClient, 1<<20)
	c := client.NewStandaloneClient(transport, cfg, log, reg)
	defer c.Close()

	var httpServer *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		httpServer = &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			log.Info("metrics server listening", zap.String("addr", *metricsAddr))
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal("metrics server failed", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go runDemoLoop(ctx, c, *opsPerSecond, log, done)

	if *duration > 0 {
		go func() {
			time.Sleep(*duration)
			stop <- syscall.SIGTERM
		}()
	}

	<-stop
	log.Info("shutting down")
	cancel()
	<-done

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("metrics server shutdown failed", zap.Error(err))
		}
	}
	log.Info("stopped")
}

// runDemoLoop issues a fixed SET/GET/INCR mix at roughly opsPerSecond
// until ctx is cancelled, then closes done.
func runDemoLoop(ctx context.Context, c *client.StandaloneClient, opsPerSecond int, log *zap.Logger, done chan<- struct{}) {
	defer close(done)
	if opsPerSecond <= 0 {
		opsPerSecond = 1
	}
	ticker := time.NewTicker(time.Second / time.Duration(opsPerSecond))
	defer ticker.Stop()

	var n int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n++
			key := "bench:" + strconv.FormatInt(n, 10)
			if _, err := c.Set(ctx, key, "v", nil); err != nil {
				log.Warn("SET failed", zap.Error(err))
				continue
			}
			if _, err := c.Get(ctx, key); err != nil {
				log.Warn("GET failed", zap.Error(err))
			}
			if _, err := c.Incr(ctx, "bench:counter"); err != nil {
				log.Warn("INCR failed", zap.Error(err))
			}
		}
	}
}
