package models

import (
	"bytes"
	"encoding/json"
)

// NullFloat is a float that may be absent. Absent values serialize as null,
// which charting libraries draw as a gap.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some wraps a present value.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// Floats wraps every value as present.
func Floats(vs ...float64) []NullFloat {
	out := make([]NullFloat, len(vs))
	for i, v := range vs {
		out[i] = Some(v)
	}
	return out
}

func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*n = NullFloat{}
		return nil
	}
	if err := json.Unmarshal(b, &n.Float64); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
