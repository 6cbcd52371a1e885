package commands

import "vkclient/internal/protocol"

// Subscribe, Unsubscribe, and their pattern/sharded variants never return a
// single reply the way other commands do — the server pushes one
// confirmation message per channel, then unrelated published messages
// forever after. The Command Record only carries the wire request; delivery
// is internal/pubsub's job (C8), not the factory's.

func (f *Factory) Subscribe(channels ...string) protocol.Cmd {
	return f.build(protocol.Subscribe, channels)
}

func (f *Factory) Unsubscribe(channels ...string) protocol.Cmd {
	return f.build(protocol.Unsubscribe, channels)
}

func (f *Factory) PSubscribe(patterns ...string) protocol.Cmd {
	return f.build(protocol.PSubscribe, patterns)
}

func (f *Factory) PUnsubscribe(patterns ...string) protocol.Cmd {
	return f.build(protocol.PUnsubscribe, patterns)
}

func (f *Factory) SSubscribe(channels ...string) protocol.Cmd {
	return f.build(protocol.SSubscribe, channels)
}

func (f *Factory) SUnsubscribe(channels ...string) protocol.Cmd {
	return f.build(protocol.SUnsubscribe, channels)
}

func (f *Factory) Publish(channel, message string) protocol.Cmd {
	return f.build(protocol.Publish, []string{channel, message})
}

func (f *Factory) SPublish(channel, message string) protocol.Cmd {
	return f.build(protocol.SPublish, []string{channel, message})
}

func (f *Factory) PubSubChannels(pattern string) protocol.Cmd {
	if pattern == "" {
		return f.build(protocol.PubSubChannels, nil)
	}
	return f.build(protocol.PubSubChannels, []string{pattern})
}

func (f *Factory) PubSubShardChannels(pattern string) protocol.Cmd {
	if pattern == "" {
		return f.build(protocol.PubSubShardChannels, nil)
	}
	return f.build(protocol.PubSubShardChannels, []string{pattern})
}

func (f *Factory) PubSubNumSub(channels ...string) protocol.Cmd {
	return f.build(protocol.PubSubNumSub, channels)
}
