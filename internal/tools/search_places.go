package tools

import (
	"context"
	"fmt"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/venues"
)

const defaultSearchLimit = 5

// placeSummary is the compact shape search results are returned in.
type placeSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Categories     []string `json:"categories,omitempty"`
	Floor          int      `json:"floor"`
	DistanceMeters float64  `json:"distance_meters,omitempty"`
}

// NewSearchPlaces builds the search_places tool over the given index.
func NewSearchPlaces(index venues.Index) *agent.Descriptor {
	return &agent.Descriptor{
		Name:        "search_places",
		Description: "Search for places in the venue by name. Supports filtering by category and by distance from a point. Returns up to 'limit' matches, best match first.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Name or partial name of the place to find. Fuzzy matching is applied.",
				},
				"category": map[string]any{
					"type":        "string",
					"description": "Only return places with this category, e.g. 'restroom', 'food', 'gate'.",
				},
				"near_lat": map[string]any{
					"type":        "number",
					"description": "Latitude of a reference point to sort and filter by distance.",
				},
				"near_lng": map[string]any{
					"type":        "number",
					"description": "Longitude of the reference point.",
				},
				"radius_meters": map[string]any{
					"type":        "number",
					"description": "Only return places within this distance of the reference point.",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results (default 5).",
				},
			},
			"required": []string{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			query := GetStringParam(args, "query", "")
			if query == "" {
				return nil, fmt.Errorf("missing required parameter 'query'")
			}

			opts := venues.SearchOptions{
				Category:     GetStringParam(args, "category", ""),
				RadiusMeters: GetFloatParam(args, "radius_meters", 0),
				Limit:        GetIntParam(args, "limit", defaultSearchLimit),
			}
			_, hasLat := args["near_lat"]
			_, hasLng := args["near_lng"]
			if hasLat || hasLng {
				if !hasLat || !hasLng {
					return nil, fmt.Errorf("near_lat and near_lng must be provided together")
				}
				opts.Near = &venues.Coordinate{
					Lat: GetFloatParam(args, "near_lat", 0),
					Lng: GetFloatParam(args, "near_lng", 0),
				}
			}
			if opts.RadiusMeters > 0 && opts.Near == nil {
				return nil, fmt.Errorf("radius_meters requires near_lat and near_lng")
			}

			results := index.Search(query, opts)
			summaries := make([]placeSummary, 0, len(results))
			for _, r := range results {
				summaries = append(summaries, placeSummary{
					ID:             r.Place.ID,
					Name:           r.Place.Name,
					Categories:     r.Place.Categories,
					Floor:          r.Place.Floor,
					DistanceMeters: r.DistanceMeters,
				})
			}
			return map[string]any{
				"places": summaries,
				"count":  len(summaries),
			}, nil
		},
	}
}
