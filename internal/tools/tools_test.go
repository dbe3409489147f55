package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/venues"
)

func testIndex() venues.Index {
	return venues.NewIndex([]venues.Place{
		{ID: "cafe-central", Name: "Central Cafe", Categories: []string{"food", "coffee"}, Floor: 1,
			Location:    venues.Coordinate{Lat: 47.4506, Lng: 8.5628},
			Description: "Coffee and pastries."},
		{ID: "gate-a1", Name: "Gate A1", Categories: []string{"gate"}, Floor: 2,
			Location: venues.Coordinate{Lat: 47.4502, Lng: 8.5621}},
	})
}

func TestRegisterAll(t *testing.T) {
	reg := agent.NewRegistry()
	if err := RegisterAll(reg, testIndex(), venues.NewStraightLineNavigator()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var names []string
	for _, d := range reg.List() {
		names = append(names, d.Name)
	}
	want := []string{"search_places", "get_directions", "get_place_details"}
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %v", len(want), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d: expected %q, got %q", i, want[i], names[i])
		}
	}

	if err := RegisterAll(reg, testIndex(), venues.NewStraightLineNavigator()); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}

func TestSearchPlacesTool(t *testing.T) {
	tool := NewSearchPlaces(testIndex())
	ctx := context.Background()

	t.Run("Finds by fuzzy name", func(t *testing.T) {
		value, err := tool.Handler(ctx, map[string]any{"query": "central"})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		result := value.(map[string]any)
		if result["count"] != 1 {
			t.Fatalf("expected 1 match, got %v", result["count"])
		}
		places := result["places"].([]placeSummary)
		if places[0].ID != "cafe-central" {
			t.Errorf("expected cafe-central, got %q", places[0].ID)
		}
	})

	t.Run("Missing query is an error", func(t *testing.T) {
		if _, err := tool.Handler(ctx, map[string]any{}); err == nil {
			t.Error("expected error for missing query")
		}
	})

	t.Run("Radius without a reference point is an error", func(t *testing.T) {
		_, err := tool.Handler(ctx, map[string]any{"query": "cafe", "radius_meters": 50.0})
		if err == nil || !strings.Contains(err.Error(), "near_lat") {
			t.Errorf("expected coordinate requirement, got %v", err)
		}
	})

	t.Run("Half a coordinate is an error", func(t *testing.T) {
		_, err := tool.Handler(ctx, map[string]any{"query": "cafe", "near_lat": 47.45})
		if err == nil {
			t.Error("expected error for near_lat without near_lng")
		}
	})

	t.Run("Distance filter applies", func(t *testing.T) {
		value, err := tool.Handler(ctx, map[string]any{
			"query":         "a",
			"near_lat":      47.4506,
			"near_lng":      8.5628,
			"radius_meters": 10.0,
		})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		result := value.(map[string]any)
		for _, p := range result["places"].([]placeSummary) {
			if p.ID == "gate-a1" {
				t.Error("gate-a1 is outside the 10m radius")
			}
		}
	})
}

func TestGetDirectionsTool(t *testing.T) {
	tool := NewGetDirections(testIndex(), venues.NewStraightLineNavigator())
	ctx := context.Background()

	t.Run("Routes between known places", func(t *testing.T) {
		value, err := tool.Handler(ctx, map[string]any{"from_id": "cafe-central", "to_id": "gate-a1"})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		route := value.(*venues.Route)
		if route.From != "cafe-central" || route.To != "gate-a1" {
			t.Errorf("unexpected route endpoints %+v", route)
		}
		if len(route.Steps) == 0 {
			t.Error("expected steps")
		}
	})

	t.Run("Unknown place is an error", func(t *testing.T) {
		_, err := tool.Handler(ctx, map[string]any{"from_id": "cafe-central", "to_id": "atlantis"})
		if err == nil || !strings.Contains(err.Error(), "atlantis") {
			t.Errorf("expected unknown-place error, got %v", err)
		}
	})

	t.Run("Missing ids are an error", func(t *testing.T) {
		if _, err := tool.Handler(ctx, map[string]any{"from_id": "cafe-central"}); err == nil {
			t.Error("expected error for missing to_id")
		}
	})
}

func TestGetPlaceDetailsTool(t *testing.T) {
	tool := NewGetPlaceDetails(testIndex())
	ctx := context.Background()

	t.Run("Returns the full place", func(t *testing.T) {
		value, err := tool.Handler(ctx, map[string]any{"place_id": "cafe-central"})
		if err != nil {
			t.Fatalf("handler failed: %v", err)
		}
		place := value.(venues.Place)
		if place.Description != "Coffee and pastries." {
			t.Errorf("unexpected place %+v", place)
		}
	})

	t.Run("Unknown id is an error", func(t *testing.T) {
		if _, err := tool.Handler(ctx, map[string]any{"place_id": "nope"}); err == nil {
			t.Error("expected error for unknown place")
		}
	})

	t.Run("Missing id is an error", func(t *testing.T) {
		if _, err := tool.Handler(ctx, map[string]any{}); err == nil {
			t.Error("expected error for missing place_id")
		}
	})
}

func TestParamHelpers(t *testing.T) {
	args := map[string]any{
		"s": "text",
		"f": 2.5,
		"i": float64(3),
		"n": 7,
	}

	if GetStringParam(args, "s", "") != "text" {
		t.Error("string param lost")
	}
	if GetStringParam(args, "missing", "dflt") != "dflt" {
		t.Error("string default not applied")
	}
	if GetFloatParam(args, "f", 0) != 2.5 {
		t.Error("float param lost")
	}
	if GetIntParam(args, "i", 0) != 3 {
		t.Error("float64-encoded int not accepted")
	}
	if GetIntParam(args, "n", 0) != 7 {
		t.Error("int param lost")
	}
	if GetIntParam(args, "s", 9) != 9 {
		t.Error("type mismatch should fall back to default")
	}
}
