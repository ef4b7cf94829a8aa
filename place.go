// Package citycore implements the in-memory dual index at the heart of a
// geographic city search service: a latitude/longitude grid for proximity
// queries (GeoGrid) and a tiered inverted index for lexical search
// (TieredInvertedIndex). Both are populated once during a warm-up phase and
// queried many times afterward; neither index supports deletion.
package citycore

import "strings"

// Place is the external data contract both indexes read from. The core
// never mutates a Place and never retains a reference to it beyond the
// projections it needs (coordinates/country for GeoGrid, tokenized words
// for TieredInvertedIndex) — callers own the Place slice and resolve
// returned ids back to full records themselves.
type Place struct {
	ID             int64
	Name           string
	AlternateNames []string
	Latitude       float64
	Longitude      float64
	CountryCode    string
	FeatureClass   string
	FeatureCode    string
	Admin1         string
	Admin2         string
	Admin3         string
	Admin4         string
	Timezone       string
	Population     int64
}

// ValidateCoordinates reports a programmer error if lat/lon fall outside
// WGS-84 degree ranges. GeoGrid.Insert and GeoGrid.KNearest call this;
// TieredInvertedIndex does not read coordinates and does not validate them.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return wrapProgrammer("latitude %f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return wrapProgrammer("longitude %f out of range [-180, 180]", lon)
	}
	return nil
}

// adminTags returns the tier-2 classification/administrative tokens for a
// place: country code, feature class/code, admin1..4, each lower-cased and
// only when non-empty.
func (p Place) adminTags() []string {
	raw := []string{p.CountryCode, p.FeatureClass, p.FeatureCode, p.Admin1, p.Admin2, p.Admin3, p.Admin4}
	tags := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			tags = append(tags, strings.ToLower(s))
		}
	}
	return tags
}

// timezoneTags splits Timezone on '/' into its lower-cased path segments,
// e.g. "America/Argentina/Buenos_Aires" -> ["america", "argentina", "buenos_aires"].
func (p Place) timezoneTags() []string {
	if p.Timezone == "" {
		return nil
	}
	parts := strings.Split(p.Timezone, "/")
	tags := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			tags = append(tags, strings.ToLower(s))
		}
	}
	return tags
}
