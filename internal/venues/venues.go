// Package venues models a venue's places and navigation between them.
// The assistant's tools are thin wrappers over the Index and Navigator
// defined here.
package venues

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a single point of interest inside the venue.
type Place struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Categories  []string   `json:"categories,omitempty"`
	Floor       int        `json:"floor"`
	Location    Coordinate `json:"location"`
	Description string     `json:"description,omitempty"`
}

// venueFile is the on-disk shape of a venue definition.
type venueFile struct {
	Name   string  `json:"name"`
	Places []Place `json:"places"`
}

// LoadPlaces reads a venue JSON file and returns its places.
func LoadPlaces(path string) ([]Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read venue file: %w", err)
	}
	var vf venueFile
	if err := json.Unmarshal(data, &vf); err != nil {
		return nil, fmt.Errorf("parse venue file %s: %w", path, err)
	}
	for i, p := range vf.Places {
		if p.ID == "" {
			return nil, fmt.Errorf("venue file %s: place %d has no id", path, i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("venue file %s: place %q has no name", path, p.ID)
		}
	}
	return vf.Places, nil
}

const earthRadiusMeters = 6371000

// Distance returns the haversine distance between two coordinates in meters.
func Distance(a, b Coordinate) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
