package engine

import "encoding/json"

// Metric is a computed figure that may be unavailable because one of its
// inputs (typically a market price) was missing. It marshals to JSON null
// when not valid, so consumers can never mistake "no figure" for zero.
type Metric struct {
	Value float64
	Valid bool
}

// Available wraps a computed value.
func Available(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Unavailable is the absent-value marker.
func Unavailable() Metric {
	return Metric{}
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric{}
		return nil
	}
	if err := json.Unmarshal(data, &m.Value); err != nil {
		return err
	}
	m.Valid = true
	return nil
}

// lessDesc reports whether a sorts before b: valid entries first,
// descending by value. Unavailable entries all sort after valid ones.
func lessDesc(a, b Metric) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	if !a.Valid {
		return false
	}
	return a.Value > b.Value
}
