package venues

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// SearchOptions narrows a place search. Zero values mean no filter.
type SearchOptions struct {
	Category     string
	Near         *Coordinate
	RadiusMeters float64
	Limit        int
}

// SearchResult is a matched place with its fuzzy score and, when a
// reference point was given, the distance to it.
type SearchResult struct {
	Place          Place
	Score          int
	DistanceMeters float64
}

// Index finds places by name.
type Index interface {
	// Search returns places matching query, best match first. An empty
	// query matches everything, subject to the option filters.
	Search(query string, opts SearchOptions) []SearchResult
	// Get returns the place with the given ID.
	Get(id string) (Place, bool)
}

// memoryIndex is the in-memory Index over a fixed place list.
type memoryIndex struct {
	places []Place
	byID   map[string]int
}

// NewIndex builds an in-memory index over the given places.
func NewIndex(places []Place) Index {
	idx := &memoryIndex{
		places: append([]Place(nil), places...),
		byID:   make(map[string]int, len(places)),
	}
	for i, p := range idx.places {
		idx.byID[p.ID] = i
	}
	return idx
}

func (idx *memoryIndex) Get(id string) (Place, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return Place{}, false
	}
	return idx.places[i], true
}

func (idx *memoryIndex) Search(query string, opts SearchOptions) []SearchResult {
	var results []SearchResult
	if strings.TrimSpace(query) == "" {
		for _, p := range idx.places {
			results = append(results, SearchResult{Place: p})
		}
	} else {
		matches := fuzzy.FindFrom(query, placeSource(idx.places))
		for _, m := range matches {
			results = append(results, SearchResult{Place: idx.places[m.Index], Score: m.Score})
		}
	}

	results = idx.filter(results, opts)

	if opts.Near != nil {
		// Distance breaks score ties so the closest match wins.
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Score != results[j].Score {
				return results[i].Score > results[j].Score
			}
			return results[i].DistanceMeters < results[j].DistanceMeters
		})
	}

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func (idx *memoryIndex) filter(results []SearchResult, opts SearchOptions) []SearchResult {
	filtered := results[:0]
	for _, r := range results {
		if opts.Category != "" && !hasCategory(r.Place, opts.Category) {
			continue
		}
		if opts.Near != nil {
			r.DistanceMeters = Distance(*opts.Near, r.Place.Location)
			if opts.RadiusMeters > 0 && r.DistanceMeters > opts.RadiusMeters {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func hasCategory(p Place, category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// placeSource adapts a place slice to the fuzzy matcher.
type placeSource []Place

func (s placeSource) String(i int) string { return s[i].Name }
func (s placeSource) Len() int            { return len(s) }
