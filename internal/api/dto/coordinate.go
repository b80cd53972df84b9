package dto

import (
	"strconv"
	"strings"
)

// Coordinate accepts a JSON number or numeric string. Missing or unparsable
// input leaves the value unset — the explicit location-unknown sentinel —
// rather than failing the request or defaulting to a valid-looking (0,0).
type Coordinate struct {
	value *float64
}

// UnmarshalJSON never reports an error; bad input simply yields an unset value.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	c.value = &f
	return nil
}

// Value returns the parsed coordinate, or nil when unknown.
func (c Coordinate) Value() *float64 {
	return c.value
}
