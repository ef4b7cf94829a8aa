package citycore

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NeighborFeatureCollection renders KNearest results as a GeoJSON
// FeatureCollection of Point features, for handing proximity results to a
// map widget. This is a presentation-layer convenience; GeoGrid and
// TieredInvertedIndex never import it.
//
// resolve must return the latitude/longitude for a neighbor's id; callers
// typically back this with their own id->Place map, the same indirection
// used when resolving any returned identifier back to a full record.
func NeighborFeatureCollection(neighbors []Neighbor, resolve func(id int64) (lat, lon float64, ok bool)) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range neighbors {
		lat, lon, ok := resolve(n.ID)
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.Point{lon, lat})
		f.ID = n.ID
		f.Properties = geojson.Properties{
			"distance_miles": n.DistanceMiles,
		}
		fc.Append(f)
	}
	return fc
}
