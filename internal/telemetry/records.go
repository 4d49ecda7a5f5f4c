package telemetry

// Record types for the telemetry packets forwarded by the link server. Field
// names carry the wire names the server produces (pymavlink to_dict output
// plus an injected system_id), so each record unmarshals straight from the
// telemetry_message payload. Values are stored raw; scaling to display units
// happens at read time via the mavlink helpers.

// Packet type discriminators carried in the "mavpackettype" field.
const (
	PacketHeartbeat         = "HEARTBEAT"
	PacketStatusText        = "STATUSTEXT"
	PacketVfrHud            = "VFR_HUD"
	PacketGlobalPositionInt = "GLOBAL_POSITION_INT"
	PacketAttitude          = "ATTITUDE"
	PacketBatteryStatus     = "BATTERY_STATUS"
	PacketSysStatus         = "SYS_STATUS"
	PacketGpsRawInt         = "GPS_RAW_INT"
	PacketVibration         = "VIBRATION"
	PacketEkfStatusReport   = "EKF_STATUS_REPORT"
)

type Heartbeat struct {
	SystemID     int `json:"system_id"`
	Type         int `json:"type"`
	Autopilot    int `json:"autopilot"`
	BaseMode     int `json:"base_mode"`
	CustomMode   int `json:"custom_mode"`
	SystemStatus int `json:"system_status"`
}

type VfrHud struct {
	SystemID    int     `json:"system_id"`
	Heading     int     `json:"heading"`
	Alt         float64 `json:"alt"`
	GroundSpeed float64 `json:"groundspeed"`
	Climb       float64 `json:"climb"`
}

type GlobalPositionInt struct {
	SystemID    int   `json:"system_id"`
	Lat         int32 `json:"lat"`
	Lon         int32 `json:"lon"`
	Alt         int32 `json:"alt"`
	RelativeAlt int32 `json:"relative_alt"`
	Hdg         int   `json:"hdg"`
}

type Attitude struct {
	SystemID int     `json:"system_id"`
	Pitch    float64 `json:"pitch"`
	Roll     float64 `json:"roll"`
	Yaw      float64 `json:"yaw"`
}

type BatteryStatus struct {
	SystemID         int `json:"system_id"`
	Voltage          int `json:"voltage"`
	Current          int `json:"current"`
	CurrentConsumed  int `json:"current_consumed"`
	BatteryRemaining int `json:"battery_remaining"`
}

type SysStatus struct {
	SystemID       int    `json:"system_id"`
	SensorsEnabled uint32 `json:"onboard_control_sensors_enabled"`
	SensorsHealth  uint32 `json:"onboard_control_sensors_health"`
}

type GpsRawInt struct {
	SystemID          int `json:"system_id"`
	FixType           int `json:"fix_type"`
	Eph               int `json:"eph"`
	Epv               int `json:"epv"`
	SatellitesVisible int `json:"satellites_visible"`
}

type Vibration struct {
	SystemID   int     `json:"system_id"`
	VibrationX float64 `json:"vibration_x"`
	VibrationY float64 `json:"vibration_y"`
	VibrationZ float64 `json:"vibration_z"`
	Clipping0  int     `json:"clipping_0"`
	Clipping1  int     `json:"clipping_1"`
	Clipping2  int     `json:"clipping_2"`
}

type EkfStatusReport struct {
	SystemID           int     `json:"system_id"`
	Flags              int     `json:"flags"`
	VelocityVariance   float64 `json:"velocity_variance"`
	PosHorizVariance   float64 `json:"pos_horiz_variance"`
	PosVertVariance    float64 `json:"pos_vert_variance"`
	CompassVariance    float64 `json:"compass_variance"`
	TerrainAltVariance float64 `json:"terrain_alt_variance"`
}

// StatusText is a vehicle-issued log line. Timestamp is assigned on receipt,
// unix milliseconds.
type StatusText struct {
	SystemID  int    `json:"system_id"`
	Severity  int    `json:"severity"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// TrackPoint is one breadcrumb of a vehicle's flown path, decimal degrees.
type TrackPoint struct {
	Lat float64
	Lon float64
}

// TargetPosition is a pending send-to-position target for a vehicle.
type TargetPosition struct {
	Lat      float64
	Lon      float64
	Altitude float64
}
