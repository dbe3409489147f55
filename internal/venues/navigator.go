package venues

import (
	"context"
	"fmt"
	"math"
)

// Step is one leg of a route.
type Step struct {
	Instruction    string  `json:"instruction"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Route is a walkable path between two places.
type Route struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	DistanceMeters float64 `json:"distance_meters"`
	WalkTimeMin    float64 `json:"walk_time_minutes"`
	Steps          []Step  `json:"steps"`
}

// Navigator plans routes between places. Implementations wrap whatever
// navigation backend the venue provides; the default one works from
// coordinates alone.
type Navigator interface {
	Route(ctx context.Context, from, to Place) (*Route, error)
}

// walkingSpeed is a typical indoor pace in meters per minute.
const walkingSpeed = 70.0

// straightLineNavigator plans as-the-crow-flies routes with floor changes.
type straightLineNavigator struct{}

// NewStraightLineNavigator returns a Navigator that routes by direct
// distance plus a step per floor change. It never fails for places with
// valid coordinates.
func NewStraightLineNavigator() Navigator {
	return straightLineNavigator{}
}

func (straightLineNavigator) Route(_ context.Context, from, to Place) (*Route, error) {
	if from.ID == to.ID {
		return &Route{
			From: from.ID,
			To:   to.ID,
			Steps: []Step{
				{Instruction: fmt.Sprintf("You are already at %s.", to.Name)},
			},
		}, nil
	}

	distance := Distance(from.Location, to.Location)
	route := &Route{
		From:           from.ID,
		To:             to.ID,
		DistanceMeters: math.Round(distance),
	}

	route.Steps = append(route.Steps, Step{
		Instruction:    fmt.Sprintf("From %s, head toward %s.", from.Name, to.Name),
		DistanceMeters: math.Round(distance),
	})

	if floors := to.Floor - from.Floor; floors != 0 {
		verb := "up"
		if floors < 0 {
			verb = "down"
			floors = -floors
		}
		noun := "floor"
		if floors > 1 {
			noun = "floors"
		}
		route.Steps = append(route.Steps, Step{
			Instruction: fmt.Sprintf("Take the stairs or elevator %s %d %s to floor %d.", verb, floors, noun, to.Floor),
		})
		// A floor change costs about a minute of walking.
		distance += walkingSpeed * float64(floors)
	}

	route.Steps = append(route.Steps, Step{
		Instruction: fmt.Sprintf("Arrive at %s.", to.Name),
	})
	route.WalkTimeMin = math.Round(distance/walkingSpeed*10) / 10
	return route, nil
}
