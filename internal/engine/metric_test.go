package engine

import (
	"encoding/json"
	"testing"
)

func TestMetric_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		m    Metric
		want string
	}{
		{"available", Available(12.5), "12.5"},
		{"available zero", Available(0), "0"},
		{"unavailable", Unavailable(), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.m)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMetric_UnmarshalJSON(t *testing.T) {
	var m Metric
	if err := json.Unmarshal([]byte("null"), &m); err != nil {
		t.Fatalf("Unmarshal null: %v", err)
	}
	if m.Valid {
		t.Error("null should decode unavailable")
	}
	if err := json.Unmarshal([]byte("3.25"), &m); err != nil {
		t.Fatalf("Unmarshal value: %v", err)
	}
	if !m.Valid || m.Value != 3.25 {
		t.Errorf("got %+v, want valid 3.25", m)
	}
}

func TestLessDesc(t *testing.T) {
	tests := []struct {
		name string
		a, b Metric
		want bool
	}{
		{"valid before unavailable", Available(1), Unavailable(), true},
		{"unavailable after valid", Unavailable(), Available(-100), false},
		{"descending values", Available(50), Available(10), true},
		{"ascending values", Available(10), Available(50), false},
		{"both unavailable", Unavailable(), Unavailable(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lessDesc(tt.a, tt.b); got != tt.want {
				t.Errorf("lessDesc = %v, want %v", got, tt.want)
			}
		})
	}
}
