package mavlink

// Constants and decode helpers for the subset of the MAVLink enumerations the
// station consumes. The link server forwards packets as JSON dictionaries, so
// only the values are needed here, not the wire encoding.

// MavModeFlagSafetyArmed is bit 7 of HEARTBEAT.base_mode.
const MavModeFlagSafetyArmed = 128

// headingUnknown is the GLOBAL_POSITION_INT.hdg sentinel for "no heading".
const headingUnknown = 65535

type GpsFixType int

const (
	GpsFixNone GpsFixType = iota
	GpsFixNoFix
	GpsFix2D
	GpsFix3D
	GpsFixDgps
	GpsFixRtkFloat
	GpsFixRtkFixed
	GpsFixStatic
	GpsFixPpp
)

func (ft GpsFixType) String() string {
	names := [...]string{
		"NO_GPS",
		"NO_FIX",
		"2D_FIX",
		"3D_FIX",
		"DGPS",
		"RTK_FLOAT",
		"RTK_FIXED",
		"STATIC",
		"PPP",
	}
	if ft < 0 || int(ft) >= len(names) {
		return "UNKNOWN"
	}
	return names[ft]
}

// EKF_STATUS_REPORT.flags bits (EKF_STATUS_FLAGS).
const (
	EkfAttitude          = 1 << 0
	EkfVelocityHoriz     = 1 << 1
	EkfVelocityVert      = 1 << 2
	EkfPosHorizRel       = 1 << 3
	EkfPosHorizAbs       = 1 << 4
	EkfPosVertAbs        = 1 << 5
	EkfPosVertAgl        = 1 << 6
	EkfConstPosMode      = 1 << 7
	EkfPredPosHorizRel   = 1 << 8
	EkfPredPosHorizAbs   = 1 << 9
	EkfUninitialized     = 1 << 10
	EkfGpsGlitching      = 1 << 15
)

// SensorBit names one position of the MAV_SYS_STATUS_SENSOR bitmask. The
// enabled and health masks of SYS_STATUS are both indexed by these bits.
type SensorBit struct {
	Name string
	Bit  uint32
}

// SensorBits is iterated generically by the sensor health evaluator; keep it
// in ascending bit order so detail output is stable.
var SensorBits = []SensorBit{
	{"3D gyro", 1 << 0},
	{"3D accelerometer", 1 << 1},
	{"3D magnetometer", 1 << 2},
	{"absolute pressure", 1 << 3},
	{"differential pressure", 1 << 4},
	{"GPS", 1 << 5},
	{"optical flow", 1 << 6},
	{"vision position", 1 << 7},
	{"laser position", 1 << 8},
	{"external ground truth", 1 << 9},
	{"angular rate control", 1 << 10},
	{"attitude stabilization", 1 << 11},
	{"yaw position", 1 << 12},
	{"z/altitude control", 1 << 13},
	{"x/y position control", 1 << 14},
	{"motor outputs", 1 << 15},
	{"RC receiver", 1 << 16},
	{"2nd 3D gyro", 1 << 17},
	{"2nd 3D accelerometer", 1 << 18},
	{"2nd 3D magnetometer", 1 << 19},
	{"geofence", 1 << 20},
	{"AHRS", 1 << 21},
	{"terrain", 1 << 22},
	{"reverse motor", 1 << 23},
	{"logging", 1 << 24},
	{"battery", 1 << 25},
	{"proximity", 1 << 26},
	{"satellite communication", 1 << 27},
	{"pre-arm check", 1 << 28},
	{"obstacle avoidance", 1 << 29},
	{"propulsion", 1 << 30},
	{"extended bitmask", 1 << 31},
}

// IsArmed decodes the armed state from HEARTBEAT.base_mode.
func IsArmed(baseMode int) bool {
	return baseMode&MavModeFlagSafetyArmed != 0
}

// IntToCoord converts a 1e7-scaled integer coordinate to decimal degrees.
func IntToCoord(val int32) float64 {
	return float64(val) / 1e7
}

// CentiDegToDeg converts centidegrees to degrees, mapping the 65535 sentinel
// to 0 rather than 655.35.
func CentiDegToDeg(val int) float64 {
	if val == headingUnknown {
		return 0
	}
	return float64(val) / 100.0
}

// MmToM converts millimeters to meters.
func MmToM(val int32) float64 {
	return float64(val) / 1000.0
}

// MvToV converts millivolts to volts.
func MvToV(val int) float64 {
	return float64(val) / 1000.0
}

// CaToA converts centiamps to amps.
func CaToA(val int) float64 {
	return float64(val) / 100.0
}
