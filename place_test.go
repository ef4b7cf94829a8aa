package citycore

import "testing"

func TestValidateCoordinates(t *testing.T) {
	cases := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"origin", 0, 0, false},
		{"bounds", 90, 180, false},
		{"negative bounds", -90, -180, false},
		{"lat too high", 90.001, 0, true},
		{"lat too low", -90.5, 0, true},
		{"lon too high", 0, 180.5, true},
		{"lon too low", 0, -181, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCoordinates(tc.lat, tc.lon)
			if tc.wantErr && err == nil {
				t.Fatalf("ValidateCoordinates(%v,%v) = nil, want error", tc.lat, tc.lon)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateCoordinates(%v,%v) = %v, want nil", tc.lat, tc.lon, err)
			}
		})
	}
}

func TestPlaceAdminTags(t *testing.T) {
	p := Place{
		CountryCode:  "US",
		FeatureClass: "P",
		FeatureCode:  "",
		Admin1:       "TX",
	}
	tags := p.adminTags()
	want := []string{"us", "p", "tx"}
	if len(tags) != len(want) {
		t.Fatalf("adminTags() = %v, want %v", tags, want)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Errorf("adminTags()[%d] = %q, want %q", i, tags[i], w)
		}
	}
}

func TestPlaceTimezoneTags(t *testing.T) {
	p := Place{Timezone: "America/Argentina/Buenos_Aires"}
	tags := p.timezoneTags()
	want := []string{"america", "argentina", "buenos_aires"}
	if len(tags) != len(want) {
		t.Fatalf("timezoneTags() = %v, want %v", tags, want)
	}
	for i, w := range want {
		if tags[i] != w {
			t.Errorf("timezoneTags()[%d] = %q, want %q", i, tags[i], w)
		}
	}

	if got := (Place{}).timezoneTags(); got != nil {
		t.Errorf("timezoneTags() on empty timezone = %v, want nil", got)
	}
}
