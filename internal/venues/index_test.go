package venues

import "testing"

func testPlaces() []Place {
	return []Place{
		{ID: "cafe-central", Name: "Central Cafe", Categories: []string{"food", "coffee"}, Floor: 1,
			Location: Coordinate{Lat: 47.4506, Lng: 8.5628}},
		{ID: "cafe-north", Name: "North End Coffee", Categories: []string{"food", "coffee"}, Floor: 2,
			Location: Coordinate{Lat: 47.4530, Lng: 8.5660}},
		{ID: "gate-a1", Name: "Gate A1", Categories: []string{"gate"}, Floor: 2,
			Location: Coordinate{Lat: 47.4502, Lng: 8.5621}},
		{ID: "restrooms", Name: "Main Hall Restrooms", Categories: []string{"restroom"}, Floor: 1,
			Location: Coordinate{Lat: 47.4504, Lng: 8.5625}},
	}
}

func TestIndexGet(t *testing.T) {
	idx := NewIndex(testPlaces())

	if p, ok := idx.Get("gate-a1"); !ok || p.Name != "Gate A1" {
		t.Errorf("expected Gate A1, got %+v (ok=%v)", p, ok)
	}
	if _, ok := idx.Get("missing"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestIndexSearch(t *testing.T) {
	idx := NewIndex(testPlaces())

	t.Run("Fuzzy match on name", func(t *testing.T) {
		results := idx.Search("centrl cafe", SearchOptions{})
		if len(results) == 0 {
			t.Fatal("expected a fuzzy match despite the typo")
		}
		if results[0].Place.ID != "cafe-central" {
			t.Errorf("expected cafe-central first, got %q", results[0].Place.ID)
		}
	})

	t.Run("Empty query lists everything", func(t *testing.T) {
		results := idx.Search("", SearchOptions{})
		if len(results) != 4 {
			t.Errorf("expected all 4 places, got %d", len(results))
		}
	})

	t.Run("Category filter", func(t *testing.T) {
		results := idx.Search("", SearchOptions{Category: "coffee"})
		if len(results) != 2 {
			t.Fatalf("expected 2 coffee places, got %d", len(results))
		}
		for _, r := range results {
			if !hasCategory(r.Place, "coffee") {
				t.Errorf("place %q lacks category", r.Place.ID)
			}
		}
	})

	t.Run("Category match is case-insensitive", func(t *testing.T) {
		if got := idx.Search("", SearchOptions{Category: "Coffee"}); len(got) != 2 {
			t.Errorf("expected 2 places, got %d", len(got))
		}
	})

	t.Run("Radius filter excludes far places", func(t *testing.T) {
		near := Coordinate{Lat: 47.4505, Lng: 8.5626}
		results := idx.Search("", SearchOptions{Near: &near, RadiusMeters: 100})
		for _, r := range results {
			if r.DistanceMeters > 100 {
				t.Errorf("place %q at %.0fm exceeds radius", r.Place.ID, r.DistanceMeters)
			}
			if r.Place.ID == "cafe-north" {
				t.Error("cafe-north is ~300m away and should be excluded")
			}
		}
		if len(results) == 0 {
			t.Error("expected nearby places within 100m")
		}
	})

	t.Run("Nearest first on equal scores", func(t *testing.T) {
		near := Coordinate{Lat: 47.4504, Lng: 8.5625}
		results := idx.Search("", SearchOptions{Near: &near})
		if results[0].Place.ID != "restrooms" {
			t.Errorf("expected the co-located restrooms first, got %q", results[0].Place.ID)
		}
		for i := 1; i < len(results); i++ {
			if results[i].DistanceMeters < results[i-1].DistanceMeters {
				t.Fatal("expected results ordered by distance")
			}
		}
	})

	t.Run("Limit caps results", func(t *testing.T) {
		if got := idx.Search("", SearchOptions{Limit: 2}); len(got) != 2 {
			t.Errorf("expected 2 results, got %d", len(got))
		}
	})

	t.Run("No match returns empty", func(t *testing.T) {
		if got := idx.Search("zzzzzz", SearchOptions{}); len(got) != 0 {
			t.Errorf("expected no results, got %d", len(got))
		}
	})
}
