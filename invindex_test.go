package citycore

import "testing"

func TestSearchEmptyQuery(t *testing.T) {
	idx := NewTieredInvertedIndex()
	idx.Insert(Place{ID: 1, Name: "Paris", Population: 2_000_000})

	if got := idx.Search("", 10); got != nil {
		t.Errorf("Search(\"\", 10) = %v, want nil", got)
	}
	if got := idx.Search("nonexistentword", 10); got != nil {
		t.Errorf("Search(unknown word) = %v, want nil", got)
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	idx := NewTieredInvertedIndex()
	p := Place{ID: 1, Name: "Austin", Population: 950_000, CountryCode: "US"}
	idx.Insert(p)
	idx.Insert(p)

	if _, ok := idx.documents[1]; !ok {
		t.Fatal("place 1 should be indexed")
	}
	if got := idx.words["austin"].tiers[0][1]; got != 950_000 {
		t.Errorf("posting weight = %d, want 950000 (inserted once, not doubled)", got)
	}
}

// A tier-0 hit always outranks a tier-1-only hit.
func TestTierDominance(t *testing.T) {
	idx := NewTieredInvertedIndex()
	idx.Insert(Place{ID: 1, Name: "Paris", Population: 2_000_000})
	idx.Insert(Place{ID: 2, Name: "Lutetia", AlternateNames: []string{"Paris"}, Population: 10})

	got := idx.Search("paris", 10)
	want := []int64{1, 2}
	assertIDSlice(t, got, want)
}

// Within tier 0, higher population breaks coverage ties. A third place
// keeps idf("springfield") above zero, and the larger population sits on
// the larger id so the id tie-break alone would give the opposite order.
func TestPopulationTieBreakInTierZero(t *testing.T) {
	idx := NewTieredInvertedIndex()
	idx.Insert(Place{ID: 1, Name: "Springfield", Population: 50_000})
	idx.Insert(Place{ID: 2, Name: "Springfield", Population: 150_000})
	idx.Insert(Place{ID: 3, Name: "Shelbyville", Population: 60_000})

	got := idx.Search("springfield", 10)
	assertIDSlice(t, got, []int64{2, 1})
}

// Coverage (distinct matched words) dominates raw posting weight. A third
// place keeps idf("san") above zero, so "San" carries the larger weighted
// score and only coverage puts "San Jose" first.
func TestCoverageBeatsWeight(t *testing.T) {
	idx := NewTieredInvertedIndex()
	idx.Insert(Place{ID: 1, Name: "San Jose", Population: 1_000_000})
	idx.Insert(Place{ID: 2, Name: "San", Population: 10_000_000})
	idx.Insert(Place{ID: 3, Name: "Oakland", Population: 400_000})

	got := idx.Search("san jose", 10)
	assertIDSlice(t, got, []int64{1, 2})
}

func TestSearchRespectsK(t *testing.T) {
	idx := NewTieredInvertedIndex()
	for i := int64(1); i <= 10; i++ {
		idx.Insert(Place{ID: i, Name: "townsville", Population: i * 1000})
	}
	got := idx.Search("townsville", 3)
	if len(got) != 3 {
		t.Fatalf("Search(k=3) returned %d results, want 3", len(got))
	}
}

func TestSearchAcrossTiersFillsK(t *testing.T) {
	idx := NewTieredInvertedIndex()
	idx.Insert(Place{ID: 1, Name: "Springfield", Population: 10})
	idx.Insert(Place{ID: 2, AlternateNames: []string{"Springfield"}, Population: 10})
	idx.Insert(Place{ID: 3, Admin1: "springfield"})

	got := idx.Search("springfield", 10)
	assertIDSlice(t, got, []int64{1, 2, 3})
}

func TestDfIncrementsOncePerDistinctWordPerPlace(t *testing.T) {
	idx := NewTieredInvertedIndex()
	// "paris" appears in both name and alternate names of the same place.
	idx.Insert(Place{ID: 1, Name: "Paris", AlternateNames: []string{"Paris"}, Population: 5})
	if idx.df["paris"] != 1 {
		t.Errorf("df[paris] = %d, want 1", idx.df["paris"])
	}
	// but postings exist at both tier 0 and tier 1.
	if idx.words["paris"].tiers[0][1] == 0 {
		t.Errorf("expected tier 0 posting for paris/1")
	}
	if idx.words["paris"].tiers[1][1] == 0 {
		t.Errorf("expected tier 1 posting for paris/1")
	}
}

func assertIDSlice(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
