package tools

import (
	"context"
	"fmt"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/venues"
)

// NewGetPlaceDetails builds the get_place_details tool.
func NewGetPlaceDetails(index venues.Index) *agent.Descriptor {
	return &agent.Descriptor{
		Name:        "get_place_details",
		Description: "Get the full record for a single place, including its description and exact location. Use a place ID from search_places.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"place_id": map[string]any{
					"type":        "string",
					"description": "ID of the place to look up.",
				},
			},
			"required": []string{"place_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			id := GetStringParam(args, "place_id", "")
			if id == "" {
				return nil, fmt.Errorf("missing required parameter 'place_id'")
			}
			place, ok := index.Get(id)
			if !ok {
				return nil, fmt.Errorf("no place with id %q", id)
			}
			return place, nil
		},
	}
}
