package playback

import (
	"errors"
	"testing"
)

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{"valid", []string{"Square", "Hexagon"}, false},
		{"single", []string{"Square"}, false},
		{"empty", nil, true},
		{"blank name", []string{"Square", ""}, true},
		{"duplicate", []string{"Square", "Hexagon", "Square"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.names)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCatalog() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("error %v does not wrap ErrInvalidCatalog", err)
			}
		})
	}
}

func TestCatalog_Order(t *testing.T) {
	c, err := NewCatalog([]string{"Square", "Hexagon", "Triangular"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Default() != "Square" {
		t.Errorf("Default() = %q", c.Default())
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d", c.Len())
	}

	names := c.Names()
	names[0] = "mutated"
	if c.Names()[0] != "Square" {
		t.Error("Names() exposes internal slice")
	}

	next := map[string]string{
		"Square":     "Hexagon",
		"Hexagon":    "Triangular",
		"Triangular": "Square",
		"Unknown":    "Square",
	}
	for from, want := range next {
		if got := c.After(from); got != want {
			t.Errorf("After(%q) = %q, want %q", from, got, want)
		}
	}
	if c.Contains("Penrose") {
		t.Error("Contains(Penrose) = true")
	}
}
