package config

import (
	"math"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BackoffCurve previews the reconnect delays a BackoffSpec produces, for
// logging and diagnostics only — the transport, not this module, drives the
// actual reconnection retries (spec.md §1, Out of scope).
type BackoffCurve struct {
	spec BackoffSpec
}

func NewBackoffCurve(spec BackoffSpec) *BackoffCurve {
	return &BackoffCurve{spec: spec}
}

// Preview renders the first n backoff intervals an
// exponential backoff with this curve's factor and exponent base would
// produce, built on backoff.ExponentialBackOff the same way a retrying
// submit path would configure it.
func (c *BackoffCurve) Preview(n int) []time.Duration {
	if n > c.spec.NumRetries {
		n = c.spec.NumRetries
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Duration(c.spec.Factor) * time.Millisecond
	eb.Multiplier = math.Max(float64(c.spec.ExponentBase), 1)
	eb.RandomizationFactor = 0 // deterministic curve for display, unlike a live retry loop
	eb.MaxInterval = time.Hour
	eb.MaxElapsedTime = 0 // unbounded: this curve is a preview, not a live retry loop
	eb.Reset()

	out := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		d := eb.NextBackOff()
		if d == backoff.Stop {
			break
		}
		out = append(out, d)
	}
	return out
}
