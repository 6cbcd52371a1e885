package commands

import "vkclient/internal/protocol"

func (f *Factory) ClusterInfo() protocol.Cmd {
	return f.build(protocol.ClusterInfo, nil)
}

func (f *Factory) ClusterNodes() protocol.Cmd {
	return f.build(protocol.ClusterNodes, nil)
}

func (f *Factory) ClusterKeySlot(key string) protocol.Cmd {
	return f.build(protocol.ClusterKeySlot, []string{key})
}

func (f *Factory) ClusterCountKeysInSlot(slot int64) protocol.Cmd {
	return f.build(protocol.ClusterCountKeysInSlot, []string{protocol.IntToString(slot)})
}
