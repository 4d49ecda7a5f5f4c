package link

import "encoding/json"

// Wire model for the JSON event envelope exchanged with the link server.
// Every frame is {"event": name, "data": payload}.

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// --- events consumed from the server ---

const (
	EventConnectResult          = "connect_to_radio_link_result"
	EventDisconnectResult       = "disconnect_from_radio_link_result"
	EventIsConnectedResult      = "is_connected_to_radio_link_result"
	EventComPortsResult         = "get_com_ports_result"
	EventConnectionError        = "connection_error"
	EventInitialHeartbeatUpdate = "initial_heartbeat_update"
	EventTelemetryMessage       = "telemetry_message"
)

// --- events produced toward the server ---

const (
	EventConnect          = "connect_to_radio_link"
	EventDisconnect       = "disconnect_from_radio_link"
	EventIsConnected      = "is_connected_to_radio_link"
	EventGetComPorts      = "get_com_ports"
	EventArmVehicle       = "arm_vehicle"
	EventArmAll           = "arm_all_vehicles"
	EventDisarmVehicle    = "disarm_vehicle"
	EventDisarmAll        = "disarm_all_vehicles"
	EventSetFlightMode    = "set_vehicle_flight_mode"
	EventSetAllFlightMode = "set_all_vehicles_flight_mode"
	EventCopterTakeoff    = "copter_takeoff"
	EventGotoPosition     = "goto_position"
	EventSetAltitudeTarget = "set_altitude_target"
)

// Result is the common shape of every *_result acknowledgement.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RosterVehicle is one entry of the vehicle roster reported on connect.
type RosterVehicle struct {
	SystemID    int    `json:"system_id"`
	VehicleType string `json:"vehicle_type"`
}

type ConnectResultData struct {
	Vehicles []RosterVehicle `json:"vehicles"`
}

type ConnectResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    ConnectResultData `json:"data"`
}

type BoolResult struct {
	Success bool `json:"success"`
	Data    bool `json:"data"`
}

type ComPortsResult struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
}

type ConnectionError struct {
	Message string `json:"message"`
}

// InitialHeartbeatUpdate either carries the seconds-waited counter or a
// progress message, never both.
type InitialHeartbeatUpdate struct {
	Data    *int   `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// TelemetryMessage wraps one forwarded packet; the packet kind is the
// "mavpackettype" field inside Data.
type TelemetryMessage struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// PacketType extracts the mavpackettype discriminator from a telemetry
// payload.
func PacketType(data json.RawMessage) (string, error) {
	var probe struct {
		Type string `json:"mavpackettype"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", err
	}
	return probe.Type, nil
}

// --- outbound command payloads ---

type ConnectRequest struct {
	Port           string `json:"port"`
	Baud           int    `json:"baud"`
	ConnectionType string `json:"connectionType"`
}

type ArmPayload struct {
	SystemID int  `json:"system_id"`
	Force    bool `json:"force"`
}

type FleetArmPayload struct {
	Force bool `json:"force"`
}

type FlightModePayload struct {
	SystemID   int `json:"system_id"`
	FlightMode int `json:"flight_mode"`
}

type FleetFlightModePayload struct {
	FlightMode int `json:"flight_mode"`
}

type TakeoffPayload struct {
	SystemID int     `json:"system_id"`
	Altitude float64 `json:"altitude"`
}

type GotoPositionPayload struct {
	SystemID  int     `json:"system_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

type AltitudeTargetPayload struct {
	Altitude float64 `json:"altitude"`
}
