package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases and trims", "  Bench Press ", "bench press"},
		{"collapses internal runs", "Bench \t  Press", "bench press"},
		{"punctuation becomes separators", "Pec-Deck (Machine)", "pec deck machine"},
		{"strips accents", "Crème Brûlée", "creme brulee"},
		{"keeps digits", "Run 5K", "run 5k"},
		{"empty", "   ", ""},
		{"only punctuation", "-- / --", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
