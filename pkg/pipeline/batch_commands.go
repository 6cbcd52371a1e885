package pipeline

import (
	"vkclient/pkg/commands"
	"vkclient/pkg/options"
)

// The remaining command categories follow the same addCmd/addFallible shape
// as batch.go's initial set; they are split out here purely for file size,
// not for any difference in how they're built.

func (b *StandaloneBatch) GetDel(key string) *StandaloneBatch {
	return b.addCmd(b.factory.GetDel(key))
}

func (b *StandaloneBatch) MGet(keys ...string) *StandaloneBatch {
	return b.addCmd(b.factory.MGet(keys...))
}

func (b *StandaloneBatch) HSet(key string, fields []commands.KeyValue) *StandaloneBatch {
	return b.addCmd(b.factory.HSet(key, fields))
}

func (b *StandaloneBatch) HGetAll(key string) *StandaloneBatch {
	return b.addCmd(b.factory.HGetAll(key))
}

func (b *StandaloneBatch) LPush(key string, values ...string) *StandaloneBatch {
	return b.addCmd(b.factory.LPush(key, values...))
}

func (b *StandaloneBatch) LRange(key string, start, stop int64) *StandaloneBatch {
	return b.addCmd(b.factory.LRange(key, start, stop))
}

func (b *StandaloneBatch) SAdd(key string, members ...string) *StandaloneBatch {
	return b.addCmd(b.factory.SAdd(key, members...))
}

func (b *StandaloneBatch) ZAdd(key string, members []options.SortedSetMember, opts *options.ZAddOptions) *StandaloneBatch {
	cmd, err := b.factory.ZAdd(key, members, opts)
	return b.addFallible(cmd, err)
}

func (b *StandaloneBatch) ZRange(key string, opts *options.RangeOptions) *StandaloneBatch {
	cmd, err := b.factory.ZRange(key, opts)
	return b.addFallible(cmd, err)
}

func (b *StandaloneBatch) Unwatch() *StandaloneBatch {
	return b.addCmd(b.factory.Unwatch())
}

func (b *ClusterBatch) GetDel(key string) *ClusterBatch {
	return b.addCmd(b.factory.GetDel(key))
}

func (b *ClusterBatch) HSet(key string, fields []commands.KeyValue) *ClusterBatch {
	return b.addCmd(b.factory.HSet(key, fields))
}

func (b *ClusterBatch) HGetAll(key string) *ClusterBatch {
	return b.addCmd(b.factory.HGetAll(key))
}

func (b *ClusterBatch) LPush(key string, values ...string) *ClusterBatch {
	return b.addCmd(b.factory.LPush(key, values...))
}

func (b *ClusterBatch) SAdd(key string, members ...string) *ClusterBatch {
	return b.addCmd(b.factory.SAdd(key, members...))
}

func (b *ClusterBatch) ZAdd(key string, members []options.SortedSetMember, opts *options.ZAddOptions) *ClusterBatch {
	cmd, err := b.factory.ZAdd(key, members, opts)
	return b.addFallible(cmd, err)
}

