package client

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vkclient/internal/transport"
	"vkclient/pkg/commands"
	"vkclient/pkg/config"
	"vkclient/pkg/options"
	"vkclient/pkg/pipeline"
)

// StandaloneClient is the facade for a single-node (or single-replica-set,
// non-cluster) deployment.
type StandaloneClient struct {
	*BaseClient
}

func NewStandaloneClient(t transport.Transport, cfg config.ClientConfig, log *zap.Logger, reg *prometheus.Registry) *StandaloneClient {
	return &StandaloneClient{BaseClient: NewBaseClient(t, cfg, log, reg)}
}

// NewStandaloneBatch starts a batch pre-bound to this client's large-argument
// threshold, ready for Exec.
func (c *StandaloneClient) NewStandaloneBatch(isAtomic bool) *pipeline.StandaloneBatch {
	return pipeline.NewStandaloneBatch(isAtomic, c.factory.Leaker())
}

// Exec submits a standalone batch assembled with NewStandaloneBatch.
func (c *StandaloneClient) Exec(ctx context.Context, b *pipeline.StandaloneBatch, opts *pipeline.StandaloneBatchOptions) ([]transport.Response, error) {
	var timeout *uint32
	if opts != nil {
		timeout = opts.Timeout
	}
	return c.ExecBatch(ctx, &b.Batch, timeout)
}

func (c *StandaloneClient) Get(ctx context.Context, key string) (any, error) {
	return c.submit(ctx, c.factory.Get(key))
}

func (c *StandaloneClient) Set(ctx context.Context, key, value string, opts *options.SetOptions) (any, error) {
	cmd, err := c.factory.Set(key, value, opts)
	return c.submitErr(ctx, cmd, err)
}

func (c *StandaloneClient) GetDel(ctx context.Context, key string) (any, error) {
	return c.submit(ctx, c.factory.GetDel(key))
}

func (c *StandaloneClient) MGet(ctx context.Context, keys ...string) (any, error) {
	return c.submit(ctx, c.factory.MGet(keys...))
}

func (c *StandaloneClient) MSet(ctx context.Context, pairs []commands.KeyValue) (any, error) {
	return c.submit(ctx, c.factory.MSet(pairs))
}

func (c *StandaloneClient) Incr(ctx context.Context, key string) (any, error) {
	return c.submit(ctx, c.factory.Incr(key))
}

func (c *StandaloneClient) IncrBy(ctx context.Context, key string, delta int64) (any, error) {
	return c.submit(ctx, c.factory.IncrBy(key, delta))
}

func (c *StandaloneClient) HSet(ctx context.Context, key string, fields []commands.KeyValue) (any, error) {
	return c.submit(ctx, c.factory.HSet(key, fields))
}

func (c *StandaloneClient) HGet(ctx context.Context, key, field string) (any, error) {
	return c.submit(ctx, c.factory.HGet(key, field))
}

func (c *StandaloneClient) HGetAll(ctx context.Context, key string) (any, error) {
	return c.submit(ctx, c.factory.HGetAll(key))
}

func (c *StandaloneClient) LPush(ctx context.Context, key string, values ...string) (any, error) {
	return c.submit(ctx, c.factory.LPush(key, values...))
}

func (c *StandaloneClient) LRange(ctx context.Context, key string, start, stop int64) (any, error) {
	return c.submit(ctx, c.factory.LRange(key, start, stop))
}

func (c *StandaloneClient) SAdd(ctx context.Context, key string, members ...string) (any, error) {
	return c.submit(ctx, c.factory.SAdd(key, members...))
}

func (c *StandaloneClient) SMembers(ctx context.Context, key string) (any, error) {
	return c.submit(ctx, c.factory.SMembers(key))
}

// BLPop blocks until an element is available on one of keys or ctx is
// cancelled when timeoutSeconds is 0; otherwise it returns after at most
// timeoutSeconds.
func (c *StandaloneClient) BLPop(ctx context.Context, timeoutSeconds float64, keys ...string) (any, error) {
	return c.submit(ctx, c.factory.BLPop(timeoutSeconds, keys...))
}

func (c *StandaloneClient) BRPop(ctx context.Context, timeoutSeconds float64, keys ...string) (any, error) {
	return c.submit(ctx, c.factory.BRPop(timeoutSeconds, keys...))
}

func (c *StandaloneClient) ZAdd(ctx context.Context, key string, members []options.SortedSetMember, opts *options.ZAddOptions) (any, error) {
	cmd, err := c.factory.ZAdd(key, members, opts)
	return c.submitErr(ctx, cmd, err)
}

func (c *StandaloneClient) ZRange(ctx context.Context, key string, opts *options.RangeOptions) (any, error) {
	cmd, err := c.factory.ZRange(key, opts)
	return c.submitErr(ctx, cmd, err)
}

func (c *StandaloneClient) Publish(ctx context.Context, channel, message string) (any, error) {
	return c.submit(ctx, c.factory.Publish(channel, message))
}

func (c *StandaloneClient) Eval(ctx context.Context, script string, keys, args []string) (any, error) {
	return c.submit(ctx, c.factory.Eval(script, keys, args))
}

func (c *StandaloneClient) Ping(ctx context.Context, message string) (any, error) {
	return c.submit(ctx, c.factory.Ping(message))
}

func (c *StandaloneClient) ConfigGet(ctx context.Context, parameter string) (any, error) {
	return c.submit(ctx, c.factory.ConfigGet(parameter))
}

// Watch and Unwatch are exposed here for callers that pair them with an
// atomic StandaloneBatch; Multi, Exec, and Discard are not exposed on the
// client, since the atomic batch supplies its own MULTI/EXEC framing.
func (c *StandaloneClient) Watch(ctx context.Context, keys ...string) (any, error) {
	return c.submit(ctx, c.factory.Watch(keys...))
}

func (c *StandaloneClient) Unwatch(ctx context.Context) (any, error) {
	return c.submit(ctx, c.factory.Unwatch())
}
