// Package protocol implements the argument encoder (C1) and the command
// record (C2): the pure layer that turns typed requests into the argument
// vectors the server expects, with no I/O and no shared state.
package protocol

// RequestType identifies the server operation a Cmd encodes. It is the
// single closed enumeration shared by the factories, the batch assembler,
// and the multiplexer. Earlier, duplicated naming schemes (e.g. a
// "GetString" alongside "Get") are not carried forward — see SPEC_FULL.md §9.
type RequestType uint32

const (
	RequestTypeUnknown RequestType = iota

	// Strings
	Get
	Set
	GetSet
	GetDel
	Append
	StrLen
	Incr
	IncrBy
	IncrByFloat
	Decr
	DecrBy
	MGet
	MSet
	SetRange
	GetRange

	// Hashes
	HSet
	HGet
	HDel
	HGetAll
	HMGet
	HIncrBy
	HExists
	HSetEx
	HGetEx

	// Lists
	LPush
	RPush
	LPop
	RPop
	LRange
	LLen
	LRem
	LIndex
	LSet
	LTrim
	BLPop
	BRPop

	// Sets
	SAdd
	SRem
	SMembers
	SInter
	SUnion
	SDiff
	SIsMember
	SCard

	// Sorted sets
	ZAdd
	ZScore
	ZIncrBy
	ZRem
	ZCard
	ZRange
	ZRangeStore
	ZRangeByScore

	// Streams
	XAdd
	XRange
	XRevRange
	XLen
	XRead
	XGroupCreate
	XReadGroup
	XAck

	// Pub/Sub
	Subscribe
	Unsubscribe
	PSubscribe
	PUnsubscribe
	SSubscribe
	SUnsubscribe
	Publish
	SPublish
	PubSubChannels
	PubSubShardChannels
	PubSubNumSub

	// Geospatial
	GeoAdd
	GeoPos
	GeoDist
	GeoSearch
	GeoSearchStore

	// HyperLogLog
	PfAdd
	PfCount
	PfMerge

	// Scripting
	Eval
	EvalSha
	ScriptLoad
	FunctionLoad
	FCall
	FCallReadOnly

	// Server/config
	ConfigGet
	ConfigSet
	Info
	FlushAll
	FlushDB
	DBSize
	Ping
	ClientGetName
	ClientSetName

	// Cluster/management
	ClusterInfo
	ClusterNodes
	ClusterKeySlot
	ClusterCountKeysInSlot

	// Scan family
	Scan
	HScan
	SScan
	ZScan

	// Transaction control (pipeline package only)
	Watch
	Unwatch
	Multi
	Exec
	Discard
)
