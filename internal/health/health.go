// Package health derives severity classifications from raw telemetry
// records. Every evaluator is a pure function: same records in, same status
// out, recomputed from scratch on each call.
package health

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/curbz/groundstation/internal/mavlink"
	"github.com/curbz/groundstation/internal/telemetry"
)

// Severity is the traffic-light classification of a health check.
type Severity int

const (
	Green Severity = iota
	Orange
	Red
)

func (s Severity) String() string {
	switch s {
	case Green:
		return "green"
	case Orange:
		return "orange"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Status is the result of one evaluator: an overall severity plus the detail
// lines of every sub-check that contributed to it.
type Status struct {
	Severity Severity
	Details  []string
}

// raise ratchets the overall severity: a sub-check may only raise it, never
// lower it.
func (st *Status) raise(s Severity) {
	if s > st.Severity {
		st.Severity = s
	}
}

var printer = message.NewPrinter(language.English)

// formatNumber renders a value to two decimals, clamping NaN to zero the way
// partial telemetry is displayed elsewhere.
func formatNumber(v float64) string {
	if math.IsNaN(v) {
		v = 0
	}
	return printer.Sprintf("%.2f", v)
}

// thresholds shared by the evaluators
const (
	minSatellitesOrange = 10
	minSatellitesRed    = 6
	hdopOrangeMeters    = 1.0
	hdopRedMeters       = 2.0

	ekfOrangeStatus = 0.5
	ekfRedStatus    = 0.8

	vibrationWarn  = 30.0 // m/s/s
	vibrationError = 60.0 // m/s/s
)

// Gps classifies GNSS receiver quality from a GPS_RAW_INT record.
func Gps(r telemetry.GpsRawInt) Status {
	var st Status

	fixType := mavlink.GpsFixType(r.FixType)
	switch {
	case fixType == mavlink.GpsFixNone || fixType == mavlink.GpsFixNoFix:
		st.raise(Red)
		st.Details = append(st.Details, fmt.Sprintf("Fix type: %s", fixType))
	case fixType == mavlink.GpsFix2D:
		st.raise(Orange)
		st.Details = append(st.Details, fmt.Sprintf("Fix type: %s", fixType))
	case fixType >= mavlink.GpsFix3D:
		st.raise(Green)
	}

	// both satellite thresholds are evaluated; a very low count produces
	// both detail lines
	if r.SatellitesVisible < minSatellitesOrange {
		st.raise(Orange)
		st.Details = append(st.Details, fmt.Sprintf("Sats visible: %d", r.SatellitesVisible))
	}
	if r.SatellitesVisible < minSatellitesRed {
		st.raise(Red)
		st.Details = append(st.Details, fmt.Sprintf("Sats visible: %d", r.SatellitesVisible))
	}

	// HDOP
	ephMeters := float64(r.Eph) / 100
	if ephMeters > hdopRedMeters {
		st.raise(Red)
		st.Details = append(st.Details, fmt.Sprintf("HDOP: %sm", formatNumber(ephMeters)))
	} else if ephMeters > hdopOrangeMeters {
		st.raise(Orange)
		st.Details = append(st.Details, fmt.Sprintf("HDOP: %sm", formatNumber(ephMeters)))
	} else {
		// the good path re-affirms Green but cannot downgrade an already
		// raised severity
		st.raise(Green)
	}

	return st
}

// Ekf classifies estimator confidence from an EKF_STATUS_REPORT, with the
// GPS record as secondary input. An absent GPS record is passed as the zero
// value (fix type NO_GPS).
func Ekf(r telemetry.EkfStatusReport, gps telemetry.GpsRawInt) Status {
	var st Status

	// EKF status value 0-1, the worst of the variance components.
	// Matches the ArduPilot MissionPlanner CurrentState calculation.
	vel := r.VelocityVariance
	comp := r.CompassVariance
	posHor := r.PosHorizVariance
	posVer := r.PosVertVariance
	terAlt := r.TerrainAltVariance
	status := math.Max(vel, math.Max(comp, math.Max(posHor, math.Max(posVer, terAlt))))

	if r.Flags&mavlink.EkfAttitude == 0 {
		// no attitude solution
		status = 1
		st.Details = append(st.Details, "No attitude solution")
	} else if r.Flags&mavlink.EkfVelocityHoriz == 0 && gps.FixType > 0 {
		// GPS present with some fix but no horizontal velocity solution
		status = 1
		st.Details = append(st.Details, "No horizontal velocity solution")
	} else if r.Flags&mavlink.EkfConstPosMode != 0 {
		st.Details = append(st.Details, "Constant position mode")
	}

	if status >= ekfOrangeStatus {
		// name the variance components that contribute to the high status
		if vel >= status*0.5 {
			st.Details = append(st.Details, fmt.Sprintf("Velocity var: %s", formatNumber(vel)))
		}
		if comp >= status*0.5 {
			st.Details = append(st.Details, fmt.Sprintf("Compass var: %s", formatNumber(comp)))
		}
		if posHor >= status*0.5 {
			st.Details = append(st.Details, fmt.Sprintf("Horiz pos var: %s", formatNumber(posHor)))
		}
		if posVer >= status*0.5 {
			st.Details = append(st.Details, fmt.Sprintf("Vert pos var: %s", formatNumber(posVer)))
		}
		if terAlt >= status*0.5 {
			st.Details = append(st.Details, fmt.Sprintf("Terrain alt var: %s", formatNumber(terAlt)))
		}
	}

	switch {
	case status >= ekfRedStatus:
		st.raise(Red)
	case status >= ekfOrangeStatus:
		st.raise(Orange)
	default:
		st.raise(Green)
	}

	return st
}

// Sensors classifies onboard sensor health from SYS_STATUS. A sensor is
// unhealthy when its enabled bit is set and its health bit is clear.
func Sensors(r telemetry.SysStatus) Status {
	var st Status

	for _, sensor := range mavlink.SensorBits {
		enabled := r.SensorsEnabled&sensor.Bit != 0
		healthy := r.SensorsHealth&sensor.Bit != 0
		if enabled && !healthy {
			st.Details = append(st.Details, sensor.Name)
		}
	}

	if len(st.Details) > 0 {
		st.raise(Red)
	}

	return st
}

// Vibration classifies IMU vibration levels and accelerometer clipping.
func Vibration(r telemetry.Vibration) Status {
	var st Status

	axes := []struct {
		name  string
		value float64
	}{
		{"X", r.VibrationX},
		{"Y", r.VibrationY},
		{"Z", r.VibrationZ},
	}
	for _, axis := range axes {
		if axis.value > vibrationError {
			st.raise(Red)
			st.Details = append(st.Details, fmt.Sprintf("Vibe %s: %s m/s/s", axis.name, formatNumber(axis.value)))
		} else if axis.value > vibrationWarn {
			st.raise(Orange)
			st.Details = append(st.Details, fmt.Sprintf("Vibe %s: %s m/s/s", axis.name, formatNumber(axis.value)))
		}
	}

	// any clipping means the accelerometers saturated at some point
	if r.Clipping0+r.Clipping1+r.Clipping2 > 0 {
		st.raise(Red)
		st.Details = append(st.Details,
			fmt.Sprintf("Clipping: [%d, %d, %d]", r.Clipping0, r.Clipping1, r.Clipping2))
	}

	return st
}
