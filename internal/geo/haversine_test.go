package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	obelisco := Point{Lat: -34.6037, Lng: -58.3816}
	if d := DistanceMeters(obelisco, obelisco); d != 0 {
		t.Errorf("distance to self = %f, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lat: -34.6037, Lng: -58.3816} // Obelisco
	b := Point{Lat: -34.6083, Lng: -58.3712} // Casa Rosada
	d1 := DistanceMeters(a, b)
	d2 := DistanceMeters(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance not symmetric: %f vs %f", d1, d2)
	}
	if d1 <= 0 {
		t.Errorf("distance between distinct points must be positive, got %f", d1)
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Obelisco to Casa Rosada is roughly one kilometer.
	a := Point{Lat: -34.6037, Lng: -58.3816}
	b := Point{Lat: -34.6083, Lng: -58.3712}
	d := DistanceMeters(a, b)
	if d < 800 || d > 1400 {
		t.Errorf("distance = %fm, expected around 1km", d)
	}
}
