package geometry

import (
	"math"
	"testing"
)

func TestDistMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tol                    float64
	}{
		{name: "same point", lat1: 51.5, lon1: -0.1, lat2: 51.5, lon2: -0.1, want: 0, tol: 0.001},
		// one degree of latitude is ~111.2 km everywhere
		{name: "one degree latitude", lat1: 0, lon1: 0, lat2: 1, lon2: 0, want: 111195, tol: 100},
		// ~1.1m north at the equator
		{name: "one meter apart", lat1: 0, lon1: 0, lat2: 0.00001, lon2: 0, want: 1.11, tol: 0.05},
		{name: "dateline crossing", lat1: 0, lon1: 179.9995, lat2: 0, lon2: -179.9995, want: 111.2, tol: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := DistMeters(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > tc.tol {
				t.Fatalf("%s: got %f, want %f +/- %f", tc.name, got, tc.want, tc.tol)
			}
		})
	}
}
