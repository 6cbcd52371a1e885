// Package goredis bridges this module's Command Records onto a real (or
// miniredis-backed) server via github.com/redis/go-redis/v9's generic Do
// escape hatch. go-redis builds exactly the same argv shape this module's
// encoder builds, so the bridge is a pass-through rather than a
// reimplementation of RESP.
package goredis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"vkclient/internal/protocol"
	"vkclient/internal/transport"
	"vkclient/pkg/vkerrors"
)

// wireName maps each RequestType to the token sequence go-redis's Do expects
// as its first argument(s) — the command name, and for multi-word commands
// (CLUSTER INFO, CONFIG GET, PUBSUB CHANNELS, ...) its subcommand.
var wireName = map[protocol.RequestType][]string{
	protocol.Get:         {"GET"},
	protocol.Set:         {"SET"},
	protocol.GetSet:      {"GETSET"},
	protocol.GetDel:      {"GETDEL"},
	protocol.Append:      {"APPEND"},
	protocol.StrLen:      {"STRLEN"},
	protocol.Incr:        {"INCR"},
	protocol.IncrBy:      {"INCRBY"},
	protocol.IncrByFloat: {"INCRBYFLOAT"},
	protocol.Decr:        {"DECR"},
	protocol.DecrBy:      {"DECRBY"},
	protocol.MGet:        {"MGET"},
	protocol.MSet:        {"MSET"},
	protocol.SetRange:    {"SETRANGE"},
	protocol.GetRange:    {"GETRANGE"},

	protocol.HSet:     {"HSET"},
	protocol.HGet:     {"HGET"},
	protocol.HDel:     {"HDEL"},
	protocol.HGetAll:  {"HGETALL"},
	protocol.HMGet:    {"HMGET"},
	protocol.HIncrBy:  {"HINCRBY"},
	protocol.HExists:  {"HEXISTS"},
	protocol.HSetEx:   {"HSETEX"},
	protocol.HGetEx:   {"HGETEX"},

	protocol.LPush:  {"LPUSH"},
	protocol.RPush:  {"RPUSH"},
	protocol.LPop:   {"LPOP"},
	protocol.RPop:   {"RPOP"},
	protocol.LRange: {"LRANGE"},
	protocol.LLen:   {"LLEN"},
	protocol.LRem:   {"LREM"},
	protocol.LIndex: {"LINDEX"},
	protocol.LSet:   {"LSET"},
	protocol.LTrim:  {"LTRIM"},
	protocol.BLPop:  {"BLPOP"},
	protocol.BRPop:  {"BRPOP"},

	protocol.SAdd:      {"SADD"},
	protocol.SRem:      {"SREM"},
	protocol.SMembers:  {"SMEMBERS"},
	protocol.SInter:    {"SINTER"},
	protocol.SUnion:    {"SUNION"},
	protocol.SDiff:     {"SDIFF"},
	protocol.SIsMember: {"SISMEMBER"},
	protocol.SCard:     {"SCARD"},

	protocol.ZAdd:          {"ZADD"},
	protocol.ZScore:        {"ZSCORE"},
	protocol.ZIncrBy:       {"ZINCRBY"},
	protocol.ZRem:          {"ZREM"},
	protocol.ZCard:         {"ZCARD"},
	protocol.ZRange:        {"ZRANGE"},
	protocol.ZRangeStore:   {"ZRANGESTORE"},
	protocol.ZRangeByScore: {"ZRANGEBYSCORE"},

	protocol.XAdd:         {"XADD"},
	protocol.XRange:       {"XRANGE"},
	protocol.XRevRange:    {"XREVRANGE"},
	protocol.XLen:         {"XLEN"},
	protocol.XRead:        {"XREAD"},
	protocol.XGroupCreate: {"XGROUP", "CREATE"},
	protocol.XReadGroup:   {"XREADGROUP"},
	protocol.XAck:         {"XACK"},

	protocol.Subscribe:           {"SUBSCRIBE"},
	protocol.Unsubscribe:         {"UNSUBSCRIBE"},
	protocol.PSubscribe:          {"PSUBSCRIBE"},
	protocol.PUnsubscribe:        {"PUNSUBSCRIBE"},
	protocol.SSubscribe:          {"SSUBSCRIBE"},
	protocol.SUnsubscribe:        {"SUNSUBSCRIBE"},
	protocol.Publish:             {"PUBLISH"},
	protocol.SPublish:            {"SPUBLISH"},
	protocol.PubSubChannels:      {"PUBSUB", "CHANNELS"},
	protocol.PubSubShardChannels: {"PUBSUB", "SHARDCHANNELS"},
	protocol.PubSubNumSub:        {"PUBSUB", "NUMSUB"},

	protocol.GeoAdd:         {"GEOADD"},
	protocol.GeoPos:         {"GEOPOS"},
	protocol.GeoDist:        {"GEODIST"},
	protocol.GeoSearch:      {"GEOSEARCH"},
	protocol.GeoSearchStore: {"GEOSEARCHSTORE"},

	protocol.PfAdd:   {"PFADD"},
	protocol.PfCount: {"PFCOUNT"},
	protocol.PfMerge: {"PFMERGE"},

	protocol.Eval:          {"EVAL"},
	protocol.EvalSha:       {"EVALSHA"},
	protocol.ScriptLoad:    {"SCRIPT", "LOAD"},
	protocol.FunctionLoad:  {"FUNCTION", "LOAD"},
	protocol.FCall:         {"FCALL"},
	protocol.FCallReadOnly: {"FCALL_RO"},

	protocol.ConfigGet:     {"CONFIG", "GET"},
	protocol.ConfigSet:     {"CONFIG", "SET"},
	protocol.Info:          {"INFO"},
	protocol.FlushAll:      {"FLUSHALL"},
	protocol.FlushDB:       {"FLUSHDB"},
	protocol.DBSize:        {"DBSIZE"},
	protocol.Ping:          {"PING"},
	protocol.ClientGetName: {"CLIENT", "GETNAME"},
	protocol.ClientSetName: {"CLIENT", "SETNAME"},

	protocol.ClusterInfo:            {"CLUSTER", "INFO"},
	protocol.ClusterNodes:           {"CLUSTER", "NODES"},
	protocol.ClusterKeySlot:         {"CLUSTER", "KEYSLOT"},
	protocol.ClusterCountKeysInSlot: {"CLUSTER", "COUNTKEYSINSLOT"},

	protocol.Scan:  {"SCAN"},
	protocol.HScan: {"HSCAN"},
	protocol.SScan: {"SSCAN"},
	protocol.ZScan: {"ZSCAN"},

	protocol.Watch:   {"WATCH"},
	protocol.Unwatch: {"UNWATCH"},
	protocol.Multi:   {"MULTI"},
	protocol.Exec:    {"EXEC"},
	protocol.Discard: {"DISCARD"},
}

// leakedVecStore holds oversize argument vectors handed off by the encoder
// via LeakVec, keyed by the 64-bit handle split across HandleLow/HandleHigh.
// A real native transport would own this allocation across a process
// boundary; here it is in-process, since goredis never crosses one.
type leakedVecStore struct {
	mu       sync.Mutex
	next     uint64
	byHandle map[uint64][]string
}

func newLeakedVecStore() *leakedVecStore {
	return &leakedVecStore{byHandle: make(map[uint64][]string)}
}

func (s *leakedVecStore) leak(args []string) (low, high uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	handle := s.next
	s.byHandle[handle] = args
	return uint32(handle), uint32(handle >> 32)
}

func (s *leakedVecStore) resolve(low, high uint32) []string {
	handle := uint64(low) | uint64(high)<<32
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byHandle[handle]
}

// Transport forwards Command Records to a redis.Cmdable, usually a
// *redis.Client pointed at a real server or a miniredis instance in tests.
type Transport struct {
	client    redis.Cmdable
	leaked    *leakedVecStore
	threshold int
}

// New wraps client. threshold is the MAX_REQUEST_ARGS_LEN the encoder
// compares the summed argument length against; it has no bearing on
// go-redis itself, which has no such limit, but the core's handle-vs-inline
// choice must still be exercised end to end.
func New(client redis.Cmdable, threshold int) *Transport {
	return &Transport{client: client, leaked: newLeakedVecStore(), threshold: threshold}
}

func (t *Transport) LeakVec(args []string) (low, high uint32) { return t.leaked.leak(args) }
func (t *Transport) MaxArgsThreshold() int                    { return t.threshold }

func (t *Transport) argv(cmd protocol.Cmd) ([]any, error) {
	name, ok := wireName[cmd.RequestType]
	if !ok {
		return nil, &vkerrors.RequestError{Msg: "unknown request type"}
	}
	args := cmd.Args
	if cmd.IsHandle {
		args = t.leaked.resolve(cmd.HandleLow, cmd.HandleHigh)
	}
	argv := make([]any, 0, len(name)+len(args))
	for _, n := range name {
		argv = append(argv, n)
	}
	for _, a := range args {
		argv = append(argv, a)
	}
	return argv, nil
}

func (t *Transport) Submit(ctx context.Context, cmd protocol.Cmd) (transport.Response, error) {
	argv, err := t.argv(cmd)
	if err != nil {
		return transport.Response{}, err
	}
	res := t.client.Do(ctx, argv...)
	val, err := res.Result()
	if err != nil && err != redis.Nil {
		return transport.Response{Err: wrapError(err)}, nil
	}
	if err == redis.Nil {
		return transport.Response{Value: nil}, nil
	}
	return transport.Response{Value: val}, nil
}

// SubmitBatch runs a go-redis pipeline (non-atomic) or a go-redis TxPipeline
// (atomic), matching the server-side semantics spec.md §4.3 requires.
func (t *Transport) SubmitBatch(ctx context.Context, cmds []protocol.Cmd, atomic bool) ([]transport.Response, error) {
	var pipe redis.Pipeliner
	if atomic {
		pipe = t.client.TxPipeline()
	} else {
		pipe = t.client.Pipeline()
	}

	cmders := make([]*redis.Cmd, len(cmds))
	for i, cmd := range cmds {
		argv, err := t.argv(cmd)
		if err != nil {
			return nil, err
		}
		cmders[i] = pipe.Do(ctx, argv...)
	}

	_, err := pipe.Exec(ctx)
	if err != nil && err != redis.Nil {
		if atomic {
			return nil, &vkerrors.ExecAbortError{Msg: err.Error()}
		}
		// Non-atomic: go-redis surfaces the first per-command failure (e.g. a
		// WRONGTYPE) as Exec's own return value, but every Cmd still ran and
		// carries its own result below — that per-slot error is the one that
		// matters here, not this aggregate one. A genuine connection failure
		// shows up the same way, as an error on every individual Cmd.Result().
	}

	out := make([]transport.Response, len(cmds))
	for i, c := range cmders {
		val, cerr := c.Result()
		if cerr != nil && cerr != redis.Nil {
			out[i] = transport.Response{Err: wrapError(cerr)}
			continue
		}
		out[i] = transport.Response{Value: val}
	}
	return out, nil
}

// wrapError maps a go-redis failure onto the taxonomy: an error reply from
// the server becomes a RequestError, anything else a ConnectionError.
func wrapError(err error) error {
	if _, ok := err.(redis.Error); ok {
		return &vkerrors.RequestError{Msg: err.Error()}
	}
	return &vkerrors.ConnectionError{Msg: "transport request failed", Cause: err}
}
