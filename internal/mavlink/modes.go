package mavlink

import "fmt"

// VehicleType mirrors the roster classification sent by the link server. The
// same custom_mode ordinal names a different flight mode per vehicle type, so
// every mode lookup has to go through the vehicle's type.
type VehicleType string

const (
	VehicleUnknown VehicleType = "unknown"
	VehicleCopter  VehicleType = "copter"
	VehiclePlane   VehicleType = "plane"
	VehicleRover   VehicleType = "rover"
	VehicleBoat    VehicleType = "boat"
	VehicleTracker VehicleType = "tracker"
	VehicleSub     VehicleType = "sub"
)

var copterModes = map[int]string{
	0:  "STABILIZE",
	1:  "ACRO",
	2:  "ALT_HOLD",
	3:  "AUTO",
	4:  "GUIDED",
	5:  "LOITER",
	6:  "RTL",
	7:  "CIRCLE",
	9:  "LAND",
	11: "DRIFT",
	13: "SPORT",
	14: "FLIP",
	15: "AUTOTUNE",
	16: "POSHOLD",
	17: "BRAKE",
	18: "THROW",
	19: "AVOID_ADSB",
	20: "GUIDED_NOGPS",
	21: "SMART_RTL",
	22: "FLOWHOLD",
	23: "FOLLOW",
	24: "ZIGZAG",
	25: "SYSTEMID",
	26: "AUTOROTATE",
	27: "AUTO_RTL",
}

var planeModes = map[int]string{
	0:  "MANUAL",
	1:  "CIRCLE",
	2:  "STABILIZE",
	3:  "TRAINING",
	4:  "ACRO",
	5:  "FBWA",
	6:  "FBWB",
	7:  "CRUISE",
	8:  "AUTOTUNE",
	10: "AUTO",
	11: "RTL",
	12: "LOITER",
	13: "TAKEOFF",
	14: "AVOID_ADSB",
	15: "GUIDED",
	17: "QSTABILIZE",
	18: "QHOVER",
	19: "QLOITER",
	20: "QLAND",
	21: "QRTL",
	22: "QAUTOTUNE",
	23: "QACRO",
	24: "THERMAL",
}

var roverModes = map[int]string{
	0:  "MANUAL",
	1:  "ACRO",
	3:  "STEERING",
	4:  "HOLD",
	5:  "LOITER",
	6:  "FOLLOW",
	7:  "SIMPLE",
	8:  "DOCK",
	9:  "CIRCLE",
	10: "AUTO",
	11: "RTL",
	12: "SMART_RTL",
	15: "GUIDED",
	16: "INITIALISING",
}

var trackerModes = map[int]string{
	0:  "MANUAL",
	1:  "STOP",
	2:  "SCAN",
	3:  "SERVO_TEST",
	4:  "GUIDED",
	10: "AUTO",
	16: "INITIALISING",
}

var subModes = map[int]string{
	0:  "STABILIZE",
	1:  "ACRO",
	2:  "ALT_HOLD",
	3:  "AUTO",
	4:  "GUIDED",
	7:  "CIRCLE",
	9:  "SURFACE",
	16: "POSHOLD",
	19: "MANUAL",
	20: "MOTORDETECTION",
	21: "SURFTRAK",
}

// guidedModes gives the custom_mode ordinal of the guided-equivalent mode per
// vehicle type, used for target-position lifecycle checks.
var guidedModes = map[VehicleType]int{
	VehicleCopter:  4,
	VehiclePlane:   15,
	VehicleRover:   15,
	VehicleBoat:    15,
	VehicleTracker: 4,
	VehicleSub:     4,
}

// FlightModes returns the ordinal-to-name mode table for a vehicle type.
// Boats reuse the rover table (as pymavlink does). Unrecognized types fall
// back to the copter table.
func FlightModes(vt VehicleType) map[int]string {
	switch vt {
	case VehicleCopter:
		return copterModes
	case VehiclePlane:
		return planeModes
	case VehicleRover, VehicleBoat:
		return roverModes
	case VehicleTracker:
		return trackerModes
	case VehicleSub:
		return subModes
	default:
		return copterModes
	}
}

// FlightModeName resolves a custom_mode ordinal for a vehicle type.
func FlightModeName(vt VehicleType, customMode int) string {
	if name, ok := FlightModes(vt)[customMode]; ok {
		return name
	}
	return fmt.Sprintf("MODE(%d)", customMode)
}

// IsGuidedMode reports whether the ordinal is the guided-equivalent mode for
// the vehicle type.
func IsGuidedMode(vt VehicleType, customMode int) bool {
	guided, ok := guidedModes[vt]
	if !ok {
		guided = guidedModes[VehicleCopter]
	}
	return customMode == guided
}
