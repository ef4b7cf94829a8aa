package citycore

import "testing"

func TestNeighborFeatureCollection(t *testing.T) {
	neighbors := []Neighbor{
		{ID: 1, DistanceMiles: 3.5},
		{ID: 2, DistanceMiles: 7.1},
	}
	coords := map[int64][2]float64{
		1: {40.0, -74.0},
	}

	fc := NeighborFeatureCollection(neighbors, func(id int64) (float64, float64, bool) {
		c, ok := coords[id]
		if !ok {
			return 0, 0, false
		}
		return c[0], c[1], true
	})

	if len(fc.Features) != 1 {
		t.Fatalf("FeatureCollection has %d features, want 1 (unresolvable id skipped)", len(fc.Features))
	}
	f := fc.Features[0]
	if f.ID != int64(1) {
		t.Errorf("feature ID = %v, want 1", f.ID)
	}
	if dm, ok := f.Properties["distance_miles"].(float64); !ok || dm != 3.5 {
		t.Errorf("distance_miles property = %v, want 3.5", f.Properties["distance_miles"])
	}
}
