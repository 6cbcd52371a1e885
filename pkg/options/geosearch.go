package options

import (
	"vkclient/internal/protocol"
	"vkclient/pkg/vkerrors"
)

// GeoOriginKind selects FROMMEMBER vs FROMLONLAT.
type GeoOriginKind int

const (
	OriginFromMember GeoOriginKind = iota
	OriginFromLonLat
)

// GeoShapeKind selects BYRADIUS vs BYBOX.
type GeoShapeKind int

const (
	ShapeByRadius GeoShapeKind = iota
	ShapeByBox
)

// GeoPoint is {longitude, latitude} from spec.md §3. Range validation is
// the server's job; the core does not revalidate out-of-range coordinates.
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// GeoSearchOptions mirrors spec.md §4.1:
//
//	[dest,] key, (FROMMEMBER m | FROMLONLAT lon lat), (BYRADIUS r unit | BYBOX w h unit),
//	[WITHCOORD] [WITHDIST] [WITHHASH] [STOREDIST] [COUNT n [ANY]] [ASC|DESC]
type GeoSearchOptions struct {
	Origin       GeoOriginKind
	Member       string
	Point        GeoPoint
	Shape        GeoShapeKind
	Radius       float64
	Width        float64
	Height       float64
	Unit         string
	WithCoord    bool
	WithDist     bool
	WithHash     bool
	StoreDist    bool
	Count        *int64
	CountAny     bool
	Asc, Desc    bool
}

func NewGeoSearchFromMember(member string) *GeoSearchOptions {
	return &GeoSearchOptions{Origin: OriginFromMember, Member: member}
}

func NewGeoSearchFromLonLat(p GeoPoint) *GeoSearchOptions {
	return &GeoSearchOptions{Origin: OriginFromLonLat, Point: p}
}

func (o *GeoSearchOptions) WithRadius(r float64, unit string) *GeoSearchOptions {
	o.Shape = ShapeByRadius
	o.Radius = r
	o.Unit = unit
	return o
}

func (o *GeoSearchOptions) WithBox(w, h float64, unit string) *GeoSearchOptions {
	o.Shape = ShapeByBox
	o.Width = w
	o.Height = h
	o.Unit = unit
	return o
}

func (o *GeoSearchOptions) WithCoordFlag() *GeoSearchOptions { o.WithCoord = true; return o }
func (o *GeoSearchOptions) WithDistFlag() *GeoSearchOptions  { o.WithDist = true; return o }
func (o *GeoSearchOptions) WithHashFlag() *GeoSearchOptions  { o.WithHash = true; return o }
func (o *GeoSearchOptions) WithStoreDist() *GeoSearchOptions { o.StoreDist = true; return o }

func (o *GeoSearchOptions) WithCount(n int64, any bool) *GeoSearchOptions {
	o.Count = &n
	o.CountAny = any
	return o
}

func (o *GeoSearchOptions) WithAsc() *GeoSearchOptions  { o.Asc = true; return o }
func (o *GeoSearchOptions) WithDesc() *GeoSearchOptions { o.Desc = true; return o }

// ToArgs writes the origin/shape/flags suffix. isStoreVariant distinguishes
// GEOSEARCHSTORE (only STOREDIST valid) from GEOSEARCH (only WITH* valid).
func (o *GeoSearchOptions) ToArgs(w *protocol.ArgWriter, isStoreVariant bool) error {
	switch o.Origin {
	case OriginFromMember:
		w.Keyword("FROMMEMBER").Str(o.Member)
	case OriginFromLonLat:
		w.Keyword("FROMLONLAT").Float(o.Point.Longitude).Float(o.Point.Latitude)
	}
	switch o.Shape {
	case ShapeByRadius:
		w.Keyword("BYRADIUS").Float(o.Radius).Str(o.Unit)
	case ShapeByBox:
		w.Keyword("BYBOX").Float(o.Width).Float(o.Height).Str(o.Unit)
	}
	if isStoreVariant {
		if o.WithCoord || o.WithDist || o.WithHash {
			return &vkerrors.ValidationError{Msg: "WITH* flags are only valid for GEOSEARCH, not GEOSEARCHSTORE"}
		}
		if o.StoreDist {
			w.Keyword("STOREDIST")
		}
	} else {
		if o.StoreDist {
			return &vkerrors.ValidationError{Msg: "STOREDIST is only valid for GEOSEARCHSTORE"}
		}
		if o.WithCoord {
			w.Keyword("WITHCOORD")
		}
		if o.WithDist {
			w.Keyword("WITHDIST")
		}
		if o.WithHash {
			w.Keyword("WITHHASH")
		}
	}
	if o.Count != nil {
		w.Keyword("COUNT").Int(*o.Count)
		if o.CountAny {
			w.Keyword("ANY")
		}
	}
	if o.Asc && o.Desc {
		return &vkerrors.ValidationError{Msg: "ASC and DESC are mutually exclusive"}
	}
	if o.Asc {
		w.Keyword("ASC")
	}
	if o.Desc {
		w.Keyword("DESC")
	}
	return nil
}
