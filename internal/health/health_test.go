package health

import (
	"strings"
	"testing"

	"github.com/curbz/groundstation/internal/mavlink"
	"github.com/curbz/groundstation/internal/telemetry"
)

func containsDetail(details []string, substr string) bool {
	for _, d := range details {
		if strings.Contains(d, substr) {
			return true
		}
	}
	return false
}

func countDetail(details []string, substr string) int {
	n := 0
	for _, d := range details {
		if strings.Contains(d, substr) {
			n++
		}
	}
	return n
}

func TestGpsHealthy(t *testing.T) {
	st := Gps(telemetry.GpsRawInt{FixType: 3, SatellitesVisible: 14, Eph: 80})
	if st.Severity != Green {
		t.Errorf("severity = %s, want green", st.Severity)
	}
	if len(st.Details) != 0 {
		t.Errorf("unexpected details: %v", st.Details)
	}
}

func TestGpsDegraded(t *testing.T) {
	// NO_FIX, 4 satellites, hdop 1.5m
	st := Gps(telemetry.GpsRawInt{FixType: 1, SatellitesVisible: 4, Eph: 150})
	if st.Severity != Red {
		t.Fatalf("severity = %s, want red", st.Severity)
	}
	if !containsDetail(st.Details, "Fix type: NO_FIX") {
		t.Errorf("missing fix type detail: %v", st.Details)
	}
	// both satellite thresholds trigger, so the line appears twice
	if got := countDetail(st.Details, "Sats visible: 4"); got != 2 {
		t.Errorf("satellite detail count = %d, want 2: %v", got, st.Details)
	}
	if !containsDetail(st.Details, "HDOP: 1.50m") {
		t.Errorf("missing hdop detail: %v", st.Details)
	}
}

func TestGps2DFix(t *testing.T) {
	st := Gps(telemetry.GpsRawInt{FixType: 2, SatellitesVisible: 12, Eph: 90})
	if st.Severity != Orange {
		t.Errorf("severity = %s, want orange", st.Severity)
	}
	if !containsDetail(st.Details, "Fix type: 2D_FIX") {
		t.Errorf("missing fix type detail: %v", st.Details)
	}
}

func TestGpsRatchetNotLoweredByGoodHdop(t *testing.T) {
	// satellite count forces red; a clean hdop must not lower it
	st := Gps(telemetry.GpsRawInt{FixType: 3, SatellitesVisible: 5, Eph: 50})
	if st.Severity != Red {
		t.Errorf("severity = %s, want red despite good hdop", st.Severity)
	}
}

func TestGpsHdopThresholds(t *testing.T) {
	tests := []struct {
		eph  int
		want Severity
	}{
		{eph: 100, want: Green},  // 1.00m, not > 1
		{eph: 101, want: Orange}, // 1.01m
		{eph: 200, want: Orange}, // 2.00m, not > 2
		{eph: 201, want: Red},    // 2.01m
	}
	for _, tc := range tests {
		st := Gps(telemetry.GpsRawInt{FixType: 3, SatellitesVisible: 15, Eph: tc.eph})
		if st.Severity != tc.want {
			t.Errorf("eph=%d: severity = %s, want %s", tc.eph, st.Severity, tc.want)
		}
	}
}

func TestEkfNoAttitudeSolution(t *testing.T) {
	// attitude flag clear forces status to 1 regardless of variances
	st := Ekf(telemetry.EkfStatusReport{Flags: 0, VelocityVariance: 0.01}, telemetry.GpsRawInt{})
	if st.Severity != Red {
		t.Fatalf("severity = %s, want red", st.Severity)
	}
	if !containsDetail(st.Details, "No attitude solution") {
		t.Errorf("missing attitude detail: %v", st.Details)
	}
}

func TestEkfNoHorizontalVelocity(t *testing.T) {
	flags := mavlink.EkfAttitude // velocity_horiz clear

	// without any GPS fix the check does not trigger
	st := Ekf(telemetry.EkfStatusReport{Flags: flags}, telemetry.GpsRawInt{FixType: 0})
	if containsDetail(st.Details, "No horizontal velocity solution") {
		t.Errorf("velocity detail without gps fix: %v", st.Details)
	}
	if st.Severity != Green {
		t.Errorf("severity = %s, want green", st.Severity)
	}

	// with a fix it forces status to 1
	st = Ekf(telemetry.EkfStatusReport{Flags: flags}, telemetry.GpsRawInt{FixType: 3})
	if st.Severity != Red {
		t.Errorf("severity = %s, want red", st.Severity)
	}
	if !containsDetail(st.Details, "No horizontal velocity solution") {
		t.Errorf("missing velocity detail: %v", st.Details)
	}
}

func TestEkfConstantPositionMode(t *testing.T) {
	flags := mavlink.EkfAttitude | mavlink.EkfVelocityHoriz | mavlink.EkfConstPosMode
	st := Ekf(telemetry.EkfStatusReport{Flags: flags, VelocityVariance: 0.1}, telemetry.GpsRawInt{FixType: 3})
	if !containsDetail(st.Details, "Constant position mode") {
		t.Errorf("missing const pos detail: %v", st.Details)
	}
	// status unmodified by the flag, low variances keep it green
	if st.Severity != Green {
		t.Errorf("severity = %s, want green", st.Severity)
	}
}

func TestEkfVarianceDetails(t *testing.T) {
	flags := mavlink.EkfAttitude | mavlink.EkfVelocityHoriz
	r := telemetry.EkfStatusReport{
		Flags:            flags,
		VelocityVariance: 0.6,
		CompassVariance:  0.2, // below 0.6*0.5, no detail
		PosHorizVariance: 0.35,
	}
	st := Ekf(r, telemetry.GpsRawInt{FixType: 3})
	if st.Severity != Orange {
		t.Errorf("severity = %s, want orange", st.Severity)
	}
	if !containsDetail(st.Details, "Velocity var: 0.60") {
		t.Errorf("missing velocity variance detail: %v", st.Details)
	}
	if !containsDetail(st.Details, "Horiz pos var: 0.35") {
		t.Errorf("missing horiz pos variance detail: %v", st.Details)
	}
	if containsDetail(st.Details, "Compass var") {
		t.Errorf("compass variance below contribution threshold listed: %v", st.Details)
	}
}

func TestEkfSeverityThresholds(t *testing.T) {
	flags := mavlink.EkfAttitude | mavlink.EkfVelocityHoriz
	tests := []struct {
		variance float64
		want     Severity
	}{
		{variance: 0.2, want: Green},
		{variance: 0.5, want: Orange},
		{variance: 0.79, want: Orange},
		{variance: 0.8, want: Red},
		{variance: 1.3, want: Red}, // not clamped to [0,1]
	}
	for _, tc := range tests {
		st := Ekf(telemetry.EkfStatusReport{Flags: flags, CompassVariance: tc.variance}, telemetry.GpsRawInt{FixType: 3})
		if st.Severity != tc.want {
			t.Errorf("variance=%f: severity = %s, want %s", tc.variance, st.Severity, tc.want)
		}
	}
}

func TestSensors(t *testing.T) {
	// gyro and GPS enabled, GPS unhealthy
	enabled := uint32(1<<0 | 1<<5)
	healthy := uint32(1 << 0)
	st := Sensors(telemetry.SysStatus{SensorsEnabled: enabled, SensorsHealth: healthy})
	if st.Severity != Red {
		t.Fatalf("severity = %s, want red", st.Severity)
	}
	if len(st.Details) != 1 || st.Details[0] != "GPS" {
		t.Errorf("details = %v, want [GPS]", st.Details)
	}

	// unhealthy but disabled sensors are ignored
	st = Sensors(telemetry.SysStatus{SensorsEnabled: 1 << 0, SensorsHealth: 1 << 0})
	if st.Severity != Green || len(st.Details) != 0 {
		t.Errorf("all-healthy case got %s %v", st.Severity, st.Details)
	}
}

func TestVibrationAxes(t *testing.T) {
	st := Vibration(telemetry.Vibration{VibrationX: 31, VibrationY: 61, VibrationZ: 10})
	if st.Severity != Red {
		t.Fatalf("severity = %s, want red", st.Severity)
	}
	if !containsDetail(st.Details, "Vibe X: 31.00") {
		t.Errorf("missing X detail: %v", st.Details)
	}
	if !containsDetail(st.Details, "Vibe Y: 61.00") {
		t.Errorf("missing Y detail: %v", st.Details)
	}
	if containsDetail(st.Details, "Vibe Z") {
		t.Errorf("quiet axis listed: %v", st.Details)
	}
}

func TestVibrationClipping(t *testing.T) {
	st := Vibration(telemetry.Vibration{Clipping1: 3})
	if st.Severity != Red {
		t.Fatalf("severity = %s, want red", st.Severity)
	}
	if !containsDetail(st.Details, "Clipping: [0, 3, 0]") {
		t.Errorf("missing clipping detail: %v", st.Details)
	}

	st = Vibration(telemetry.Vibration{VibrationX: 5})
	if st.Severity != Green || len(st.Details) != 0 {
		t.Errorf("quiet vehicle got %s %v", st.Severity, st.Details)
	}
}

func TestSeverityRatchet(t *testing.T) {
	var st Status
	st.raise(Red)
	st.raise(Green)
	st.raise(Orange)
	if st.Severity != Red {
		t.Errorf("severity = %s, ratchet must never lower", st.Severity)
	}
}
