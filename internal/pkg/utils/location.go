package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coordinates is a latitude/longitude pair as sent by the nurse app.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// ParseCoordinates reads a location stored either as a JSON pair ("[lat,lng]")
// or as an object ({"lat":..,"lng":..}). Free-text locations return false.
// Positions are never range-checked.
func ParseCoordinates(raw string) (Coordinates, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Coordinates{}, false
	}

	var pair []float64
	if err := json.Unmarshal([]byte(raw), &pair); err == nil {
		if len(pair) != 2 {
			return Coordinates{}, false
		}
		return Coordinates{Latitude: pair[0], Longitude: pair[1]}, true
	}

	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil && obj.Lat != nil && obj.Lng != nil {
		return Coordinates{Latitude: *obj.Lat, Longitude: *obj.Lng}, true
	}

	return Coordinates{}, false
}

// DisplayLocation normalises a stored location for responses.
// Coordinates become "lat,lng"; anything else is passed through trimmed.
func DisplayLocation(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	if c, ok := ParseCoordinates(trimmed); ok {
		s := strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
		return &s
	}
	return &trimmed
}
