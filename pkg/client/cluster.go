package client

import (
	"context"
	"hash/fnv"
	"math/rand"

	rendezvous "github.com/dgryski/go-rendezvous"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vkclient/internal/transport"
	"vkclient/pkg/commands"
	"vkclient/pkg/config"
	"vkclient/pkg/options"
	"vkclient/pkg/pipeline"
	"vkclient/pkg/vkerrors"
)

// RouteHint selects which node(s) of a cluster deployment a ClusterClient
// call targets. spec.md §3 leaves cluster routing itself out of scope for
// the Connection State; this module adds hint resolution because a client
// facade cannot otherwise be exercised against more than one node.
type RouteHint struct {
	kind    routeKind
	slotKey string
	address string
}

type routeKind int

const (
	routeRandomNode routeKind = iota
	routeAllPrimaries
	routeAllNodes
	routeBySlotKey
	routeByAddress
)

func RandomNode() RouteHint                { return RouteHint{kind: routeRandomNode} }
func AllPrimaries() RouteHint              { return RouteHint{kind: routeAllPrimaries} }
func AllNodes() RouteHint                  { return RouteHint{kind: routeAllNodes} }
func BySlotKey(key string) RouteHint       { return RouteHint{kind: routeBySlotKey, slotKey: key} }
func ByAddress(addr string) RouteHint      { return RouteHint{kind: routeByAddress, address: addr} }

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// ClusterClient fans a single logical client out across every configured
// node address. There is no real cluster topology here — no CLUSTER SLOTS
// parsing, no moved-slot redirect handling (that is server-driven cluster
// management, out of scope per spec.md §1) — so BySlotKey and the
// preferReplica/azAffinity read-from policies are both modeled as
// deterministic rendezvous-hash picks over the configured address set
// rather than a real primary/replica topology. This keeps routing
// reproducible for a given key without inventing a topology cache this
// module has no way to keep correct.
type ClusterClient struct {
	cfg   config.ClientConfig
	log   *zap.Logger
	nodes map[string]*BaseClient
	addrs []string
	ring  *rendezvous.Rendezvous
}

// NewClusterClient builds one BaseClient per (address, transport) pair.
// transports must have the same length and order as cfg.Addresses.
func NewClusterClient(cfg config.ClientConfig, transports []transport.Transport, log *zap.Logger, reg *prometheus.Registry) (*ClusterClient, error) {
	if len(transports) != len(cfg.Addresses) {
		return nil, &vkerrors.ValidationError{Msg: "one transport is required per configured address"}
	}
	if log == nil {
		log = zap.NewNop()
	}
	cc := &ClusterClient{cfg: cfg, log: log, nodes: make(map[string]*BaseClient, len(transports))}
	for i, addr := range cfg.Addresses {
		key := addr.Host + ":" + itoa(addr.Port)
		cc.addrs = append(cc.addrs, key)
		cc.nodes[key] = NewBaseClient(transports[i], cfg, log, reg)
	}
	cc.ring = rendezvous.New(cc.addrs, hashString)
	return cc, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Close stops every per-node multiplexer.
func (c *ClusterClient) Close() {
	for _, n := range c.nodes {
		n.Close()
	}
}

// resolve returns the BaseClient(s) a RouteHint targets.
func (c *ClusterClient) resolve(hint RouteHint) ([]*BaseClient, error) {
	switch hint.kind {
	case routeByAddress:
		n, ok := c.nodes[hint.address]
		if !ok {
			return nil, &vkerrors.ValidationError{Msg: "unknown node address: " + hint.address}
		}
		return []*BaseClient{n}, nil
	case routeBySlotKey:
		addr := c.pickForKey(hint.slotKey)
		return []*BaseClient{c.nodes[addr]}, nil
	case routeAllPrimaries, routeAllNodes:
		out := make([]*BaseClient, 0, len(c.addrs))
		for _, a := range c.addrs {
			out = append(out, c.nodes[a])
		}
		return out, nil
	default: // routeRandomNode
		a := c.addrs[rand.Intn(len(c.addrs))]
		return []*BaseClient{c.nodes[a]}, nil
	}
}

// pickForKey applies the configured ReadFromPolicy on top of the rendezvous
// ring: a primary read hashes the bare key, while a replica-preferring
// policy hashes a distinguishing suffix so it lands on a different (but
// still key-stable) member of the same node set.
func (c *ClusterClient) pickForKey(key string) string {
	switch c.cfg.ReadFrom {
	case config.ReadFromPreferReplica, config.ReadFromAZAffinity, config.ReadFromAZAffinityReplicasAndPrimary:
		return c.ring.Lookup(key + "#replica")
	default:
		return c.ring.Lookup(key)
	}
}

func (c *ClusterClient) one(hint RouteHint) (*BaseClient, error) {
	targets, err := c.resolve(hint)
	if err != nil {
		return nil, err
	}
	if len(targets) != 1 {
		return nil, &vkerrors.ValidationError{Msg: "route hint resolved to more than one node for a single-response command"}
	}
	return targets[0], nil
}

func (c *ClusterClient) Get(ctx context.Context, key string) (any, error) {
	n, err := c.one(BySlotKey(key))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.Get(key))
}

func (c *ClusterClient) Set(ctx context.Context, key, value string, opts *options.SetOptions) (any, error) {
	n, err := c.one(BySlotKey(key))
	if err != nil {
		return nil, err
	}
	cmd, err := n.factory.Set(key, value, opts)
	return n.submitErr(ctx, cmd, err)
}

func (c *ClusterClient) Incr(ctx context.Context, key string) (any, error) {
	n, err := c.one(BySlotKey(key))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.Incr(key))
}

func (c *ClusterClient) HSet(ctx context.Context, key string, fields []commands.KeyValue) (any, error) {
	n, err := c.one(BySlotKey(key))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.HSet(key, fields))
}

func (c *ClusterClient) SAdd(ctx context.Context, key string, members ...string) (any, error) {
	n, err := c.one(BySlotKey(key))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.SAdd(key, members...))
}

// BLPop routes by the first key, matching how a real cluster requires every
// key in a blocking multi-key command to hash to the same slot.
func (c *ClusterClient) BLPop(ctx context.Context, timeoutSeconds float64, keys ...string) (any, error) {
	if len(keys) == 0 {
		return nil, &vkerrors.ValidationError{Msg: "BLPOP requires at least one key"}
	}
	n, err := c.one(BySlotKey(keys[0]))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.BLPop(timeoutSeconds, keys...))
}

func (c *ClusterClient) BRPop(ctx context.Context, timeoutSeconds float64, keys ...string) (any, error) {
	if len(keys) == 0 {
		return nil, &vkerrors.ValidationError{Msg: "BRPOP requires at least one key"}
	}
	n, err := c.one(BySlotKey(keys[0]))
	if err != nil {
		return nil, err
	}
	return n.submit(ctx, n.factory.BRPop(timeoutSeconds, keys...))
}

// Ping fans out to every node under AllNodes, returning one result per node
// in address order.
func (c *ClusterClient) Ping(ctx context.Context, hint RouteHint) ([]any, []error) {
	targets, err := c.resolve(hint)
	if err != nil {
		return nil, []error{err}
	}
	vals := make([]any, len(targets))
	errs := make([]error, len(targets))
	for i, n := range targets {
		vals[i], errs[i] = n.submit(ctx, n.factory.Ping(""))
	}
	return vals, errs
}

// NewClusterBatch starts a batch pinned to the node hint resolves to —
// callers are responsible for keeping every key in an atomic batch mapped
// to the same hint, exactly as a real cluster's single-slot MULTI/EXEC
// requires.
func (c *ClusterClient) NewClusterBatch(isAtomic bool, hint RouteHint) (*pipeline.ClusterBatch, *BaseClient, error) {
	n, err := c.one(hint)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewClusterBatch(isAtomic, n.factory.Leaker()), n, nil
}

// Exec submits a cluster batch against the node it was started on.
func (c *ClusterClient) Exec(ctx context.Context, n *BaseClient, b *pipeline.ClusterBatch, opts *pipeline.ClusterBatchOptions) ([]transport.Response, error) {
	var timeout *uint32
	if opts != nil {
		timeout = opts.Timeout
	}
	return n.ExecBatch(ctx, &b.Batch, timeout)
}
