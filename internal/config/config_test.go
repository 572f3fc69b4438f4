package config

import (
	"reflect"
	"testing"
)

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty value", "", []string{}},
		{"single origin", "https://shop.example.com", []string{"https://shop.example.com"}},
		{"multiple origins", "https://shop.example.com,https://admin.example.com", []string{"https://shop.example.com", "https://admin.example.com"}},
		{"spaces around entries", " https://shop.example.com , https://admin.example.com ", []string{"https://shop.example.com", "https://admin.example.com"}},
		{"trailing comma", "https://shop.example.com,", []string{"https://shop.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOrigins(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
