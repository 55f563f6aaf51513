package geo

import "testing"

func TestNew(t *testing.T) {
	p, err := New(48.8606, 2.3376)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if p.Lat() != 48.8606 || p.Lng() != 2.3376 {
		t.Errorf("unexpected point: %f/%f", p.Lat(), p.Lng())
	}
}

func TestNew_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
	}{
		{"lat too low", -90.1, 0},
		{"lat too high", 90.1, 0},
		{"lng too low", 0, -180.1},
		{"lng too high", 0, 180.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.lat, tt.lng); err == nil {
				t.Errorf("expected error for %f/%f", tt.lat, tt.lng)
			}
		})
	}

	// Boundary values are valid.
	if _, err := New(90, 180); err != nil {
		t.Errorf("New(90, 180) failed: %v", err)
	}
	if _, err := New(-90, -180); err != nil {
		t.Errorf("New(-90, -180) failed: %v", err)
	}
}
