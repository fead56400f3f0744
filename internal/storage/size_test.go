package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero", bytes: 0, expected: "0 B"},
		{name: "bytes", bytes: 512, expected: "512.0 B"},
		{name: "exact kilobyte", bytes: 1024, expected: "1.0 KB"},
		{name: "one and a half kilobytes", bytes: 1536, expected: "1.5 KB"},
		{name: "exact megabyte", bytes: 1048576, expected: "1.0 MB"},
		{name: "rounded megabytes", bytes: 2_621_440, expected: "2.5 MB"},
		{name: "gigabytes", bytes: 3 * 1024 * 1024 * 1024, expected: "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HumanSize(tt.bytes))
		})
	}
}
