package tools

import (
	"context"
	"fmt"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/venues"
)

// NewGetDirections builds the get_directions tool. Place IDs come from
// search_places results.
func NewGetDirections(index venues.Index, nav venues.Navigator) *agent.Descriptor {
	return &agent.Descriptor{
		Name:        "get_directions",
		Description: "Get walking directions between two places in the venue. Use place IDs from search_places.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"from_id": map[string]any{
					"type":        "string",
					"description": "ID of the starting place.",
				},
				"to_id": map[string]any{
					"type":        "string",
					"description": "ID of the destination place.",
				},
			},
			"required": []string{"from_id", "to_id"},
		},
		Handler: func(ctx context.Context, args map[string]any) (any, error) {
			fromID := GetStringParam(args, "from_id", "")
			toID := GetStringParam(args, "to_id", "")
			if fromID == "" || toID == "" {
				return nil, fmt.Errorf("both from_id and to_id are required")
			}

			from, ok := index.Get(fromID)
			if !ok {
				return nil, fmt.Errorf("no place with id %q", fromID)
			}
			to, ok := index.Get(toID)
			if !ok {
				return nil, fmt.Errorf("no place with id %q", toID)
			}

			route, err := nav.Route(ctx, from, to)
			if err != nil {
				return nil, fmt.Errorf("route from %q to %q: %w", fromID, toID, err)
			}
			return route, nil
		},
	}
}
