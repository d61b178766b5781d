package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"defaults for zero values", PageRequest{}, PageRequest{Page: DefaultPage, Size: DefaultPageSize}},
		{"negative page clamped", PageRequest{Page: -3, Size: 10}, PageRequest{Page: 1, Size: 10}},
		{"size above max clamped", PageRequest{Page: 2, Size: 500}, PageRequest{Page: 2, Size: MaxPageSize}},
		{"valid request untouched", PageRequest{Page: 4, Size: 25}, PageRequest{Page: 4, Size: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Size: 12}.Offset())
	assert.Equal(t, 24, PageRequest{Page: 3, Size: 12}.Offset())
}

func TestPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{"empty result still has one page", 0, 12, 1},
		{"exact multiple", 24, 12, 2},
		{"remainder rounds up", 25, 12, 3},
		{"single item", 1, 12, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pages(tt.total, tt.size))
		})
	}
}
