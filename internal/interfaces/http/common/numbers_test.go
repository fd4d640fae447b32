package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "", want: 0, ok: false},
		{in: "0", want: 0, ok: true},
		{in: " 3 ", want: 3, ok: true},
		{in: "-1", want: 0, ok: false},
		{in: "two", want: 0, ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseIndex(tt.in, 0)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
