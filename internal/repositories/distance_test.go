package repositories

import (
	"math"
	"testing"
)

func TestHaversineDistanceKm(t *testing.T) {
	// Almaty center to Almaty airport, roughly 13.5 km.
	d := HaversineDistanceKm(43.2380, 76.8829, 43.3521, 77.0405)
	if d < 12 || d > 18 {
		t.Fatalf("unexpected distance: %.2f km", d)
	}

	if d := HaversineDistanceKm(43.25, 76.90, 43.25, 76.90); d != 0 {
		t.Fatalf("distance to self should be zero, got %f", d)
	}

	// Symmetry.
	a := HaversineDistanceKm(51.5074, -0.1278, 48.8566, 2.3522)
	b := HaversineDistanceKm(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", a, b)
	}
	// London to Paris is about 343 km great-circle.
	if a < 330 || a > 360 {
		t.Fatalf("unexpected London-Paris distance: %.1f km", a)
	}
}
