package commands

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/options"
)

func (f *Factory) GeoAdd(key string, points map[string]options.GeoPoint, members []string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(members)*3).Str(key)
	for _, m := range members {
		p := points[m]
		w.Float(p.Longitude).Float(p.Latitude).Str(m)
	}
	return f.build(protocol.GeoAdd, w.Args())
}

func (f *Factory) GeoPos(key string, members ...string) protocol.Cmd {
	w := protocol.NewArgWriter(1 + len(members)).Str(key).Strs(members...)
	return f.build(protocol.GeoPos, w.Args())
}

func (f *Factory) GeoDist(key, member1, member2, unit string) protocol.Cmd {
	args := []string{key, member1, member2}
	if unit != "" {
		args = append(args, unit)
	}
	return f.build(protocol.GeoDist, args)
}

func (f *Factory) GeoSearch(key string, opts *options.GeoSearchOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(10).Str(key)
	if err := opts.ToArgs(w, false); err != nil {
		return protocol.Cmd{}, err
	}
	return f.build(protocol.GeoSearch, w.Args()), nil
}

func (f *Factory) GeoSearchStore(dest, src string, opts *options.GeoSearchOptions) (protocol.Cmd, error) {
	w := protocol.NewArgWriter(10).Str(dest).Str(src)
	if err := opts.ToArgs(w, true); err != nil {
		return protocol.Cmd{}, err
	}
	return f.build(protocol.GeoSearchStore, w.Args()), nil
}
