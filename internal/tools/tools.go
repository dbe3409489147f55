// Package tools defines the venue tools the assistant can call. Each
// tool is an agent.Descriptor bundling its JSON schema with a handler;
// handlers validate their own arguments and return plain data that
// serializes cleanly into tool results.
package tools

import (
	"encoding/json"

	"github.com/codefionn/wayfinder/internal/agent"
	"github.com/codefionn/wayfinder/internal/venues"
)

// RegisterAll registers every venue tool into the registry.
func RegisterAll(reg *agent.Registry, index venues.Index, nav venues.Navigator) error {
	for _, d := range []*agent.Descriptor{
		NewSearchPlaces(index),
		NewGetDirections(index, nav),
		NewGetPlaceDetails(index),
	} {
		if err := reg.Register(d); err != nil {
			return err
		}
	}
	return nil
}

// GetStringParam returns the string value at key, or defaultVal.
func GetStringParam(params map[string]any, key string, defaultVal string) string {
	if val, ok := params[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return defaultVal
}

// GetIntParam returns the integer value at key, or defaultVal. JSON
// decoding hands numbers over as float64, so that shape is accepted too.
func GetIntParam(params map[string]any, key string, defaultVal int) int {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return int(i)
			}
		}
	}
	return defaultVal
}

// GetFloatParam returns the numeric value at key, or defaultVal.
func GetFloatParam(params map[string]any, key string, defaultVal float64) float64 {
	if val, ok := params[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f
			}
		}
	}
	return defaultVal
}
