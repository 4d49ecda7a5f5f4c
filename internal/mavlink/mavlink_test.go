package mavlink

import "testing"

func TestIsArmed(t *testing.T) {
	tests := []struct {
		baseMode int
		want     bool
	}{
		{baseMode: 128, want: true},
		{baseMode: 0, want: false},
		{baseMode: 129, want: true},
		{baseMode: 127, want: false},
	}

	for _, tc := range tests {
		if got := IsArmed(tc.baseMode); got != tc.want {
			t.Errorf("IsArmed(%d) = %v, want %v", tc.baseMode, got, tc.want)
		}
	}
}

func TestCentiDegToDeg(t *testing.T) {
	tests := []struct {
		val  int
		want float64
	}{
		{val: 65535, want: 0}, // unknown-heading sentinel
		{val: 9000, want: 90.0},
		{val: 0, want: 0},
		{val: 35999, want: 359.99},
	}

	for _, tc := range tests {
		if got := CentiDegToDeg(tc.val); got != tc.want {
			t.Errorf("CentiDegToDeg(%d) = %f, want %f", tc.val, got, tc.want)
		}
	}
}

func TestIntToCoord(t *testing.T) {
	if got := IntToCoord(515074000); got != 51.5074 {
		t.Errorf("IntToCoord(515074000) = %f, want 51.5074", got)
	}
	if got := IntToCoord(-1278000); got != -0.1278 {
		t.Errorf("IntToCoord(-1278000) = %f, want -0.1278", got)
	}
}

func TestFlightModeName(t *testing.T) {
	tests := []struct {
		vt   VehicleType
		mode int
		want string
	}{
		{VehicleCopter, 4, "GUIDED"},
		{VehiclePlane, 4, "ACRO"},
		{VehicleRover, 15, "GUIDED"},
		{VehicleBoat, 15, "GUIDED"}, // boat uses the rover table
		{VehicleSub, 9, "SURFACE"},
		{VehicleTracker, 2, "SCAN"},
		{VehicleUnknown, 6, "RTL"}, // copter fallback
		{VehicleCopter, 999, "MODE(999)"},
	}

	for _, tc := range tests {
		if got := FlightModeName(tc.vt, tc.mode); got != tc.want {
			t.Errorf("FlightModeName(%s, %d) = %q, want %q", tc.vt, tc.mode, got, tc.want)
		}
	}
}

func TestIsGuidedMode(t *testing.T) {
	if !IsGuidedMode(VehicleCopter, 4) {
		t.Error("copter mode 4 should be guided")
	}
	if IsGuidedMode(VehicleCopter, 5) {
		t.Error("copter mode 5 should not be guided")
	}
	if !IsGuidedMode(VehicleBoat, 15) {
		t.Error("boat mode 15 should be guided")
	}
}

func TestGpsFixTypeString(t *testing.T) {
	if GpsFixNoFix.String() != "NO_FIX" {
		t.Errorf("got %q", GpsFixNoFix.String())
	}
	if GpsFix2D.String() != "2D_FIX" {
		t.Errorf("got %q", GpsFix2D.String())
	}
	if GpsFixType(42).String() != "UNKNOWN" {
		t.Errorf("got %q", GpsFixType(42).String())
	}
}
