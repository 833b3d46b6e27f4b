package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// Tier is a persisted bonus rate row.
type Tier struct {
	Name      string
	Rate      float64
	UpdatedAt time.Time
}

// TierRate is the rate-only view of a Tier.
type TierRate struct {
	Name string
	Rate float64
}

// RateSheet is the ordered result of reading every tier. Order is ascending by name.
type RateSheet []TierRate

// Map returns the sheet as a plain name -> rate mapping.
func (s RateSheet) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, tr := range s {
		m[tr.Name] = tr.Rate
	}
	return m
}

// MarshalJSON encodes the sheet as a JSON object keeping the sheet order.
func (s RateSheet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tr := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tr.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(tr.Rate)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DefaultTiers is the tier set seeded on first initialization.
var DefaultTiers = RateSheet{
	{Name: "Level I", Rate: 0.00005},
	{Name: "Level II", Rate: 0.000055},
	{Name: "Level III", Rate: 0.00006},
}
