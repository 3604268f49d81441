package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"Plain", "32", 32},
		{"Padded", " 16 ", 16},
		{"Negative", "-4", -4},
		{"Float", "12.5", 12},
		{"Garbage", "abc", 0},
		{"Empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool(" true "))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool("2"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool("yes"))
}
