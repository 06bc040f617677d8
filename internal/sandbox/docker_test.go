package sandbox

import (
	"testing"

	"github.com/docker/go-units"
)

func TestParseNanoCPUs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"whole cpus", "2", 2e9},
		{"fractional cpus", "0.5", 5e8},
		{"quarter cpu", "0.25", 25e7},
		{"surrounding whitespace", " 4 ", 4e9},
		{"empty uses default", "", 2e9},
		{"garbage uses default", "lots", 2e9},
		{"negative uses default", "-1", 2e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseNanoCPUs(tt.in); got != tt.want {
				t.Errorf("parseNanoCPUs(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMemory(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"gigabytes", "1g", 1 * units.GiB},
		{"megabytes", "512m", 512 * units.MiB},
		{"empty uses default", "", 1 * units.GiB},
		{"garbage uses default", "plenty", 1 * units.GiB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseMemory(tt.in); got != tt.want {
				t.Errorf("parseMemory(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
