package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Price is a product price. Decoding never fails: a JSON number or numeric
// string is used as-is, anything else (null, text, objects) becomes 0.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price(coerceNumber(data))
	return nil
}

// String formats the price the shortest way that round-trips (12, 12.5).
func (p Price) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}

// coerceNumber reads a JSON number or numeric string, falling back to 0.
func coerceNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		return ParseNumber(s)
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseNumber parses user or API text as a number; blank or invalid text is 0.
func ParseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// UnmarshalJSON accepts the category object, a bare name string, or a bare id.
func (c *Category) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '{':
		var obj struct {
			ID   json.RawMessage `json:"id"`
			Name string          `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.ID = int(coerceNumber(obj.ID))
		c.Name = obj.Name
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		c.Name = name
	default:
		c.ID = int(coerceNumber(data))
	}
	return nil
}
