// Package station is the session controller. It owns the telemetry store
// and the vehicle roster, runs the link-connection state machine, and turns
// incoming link events into state updates and user-facing notifications.
package station

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mohae/deepcopy"

	"github.com/curbz/groundstation/internal/health"
	"github.com/curbz/groundstation/internal/link"
	"github.com/curbz/groundstation/internal/mavlink"
	"github.com/curbz/groundstation/internal/telemetry"
	"github.com/curbz/groundstation/pkg/geometry"
)

// LinkState is the radio-link connection state, not the socket state.
type LinkState int

const (
	Disconnected LinkState = iota
	Connecting
	Connected
)

func (s LinkState) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}

// targetReachedMeters is the arrival radius that clears a pending
// send-to-position target, inclusive.
const targetReachedMeters = 1.0

// vehicleColors assigns a stable display color per system id,
// palette[id % len(palette)].
var vehicleColors = []string{
	"#dc2626",
	"#f59e0b",
	"#d946ef",
	"#4ade80",
	"#9333ea",
	"#2dd4bf",
	"#6366f1",
	"#0ea5e9",
	"#22d3ee",
	"#60a5fa",
	"#059669",
	"#a78bfa",
	"#84cc16",
	"#f472b6",
	"#f97316",
}

type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

func (l NotifyLevel) String() string {
	switch l {
	case NotifySuccess:
		return "SUCCESS"
	case NotifyWarning:
		return "WARNING"
	case NotifyError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Notification is a transient user-facing message, typically the outcome of
// a command acknowledgement.
type Notification struct {
	Level   NotifyLevel
	Message string
}

// Vehicle is one roster entry.
type Vehicle struct {
	SystemID int
	Type     mavlink.VehicleType
	Color    string
}

// VehicleSnapshot is the derived view of one vehicle handed to change
// subscribers.
type VehicleSnapshot struct {
	Vehicle
	Armed          bool
	FlightMode     int
	FlightModeName string
}

// Emitter sends named events toward the link server. *link.Client satisfies
// it; tests substitute a recorder.
type Emitter interface {
	Emit(event string, payload interface{}) error
}

type Station struct {
	store *telemetry.Store
	link  Emitter

	// mu guards everything below; the store carries its own lock
	mu    sync.Mutex
	state            LinkState
	pending          map[string]bool
	fetchingComPorts bool
	comPorts         []string
	secondsWaited    int
	heartbeatLog     []string

	vehicles map[int]Vehicle

	notifications chan Notification

	// OnVehicleChange, when set, is invoked with a snapshot copy whenever a
	// heartbeat changes a vehicle's armed state or flight mode.
	OnVehicleChange func(*VehicleSnapshot)
}

func New(emitter Emitter) *Station {
	return &Station{
		store:         telemetry.NewStore(),
		link:          emitter,
		pending:       make(map[string]bool),
		vehicles:      make(map[int]Vehicle),
		notifications: make(chan Notification, 64),
	}
}

// SetEmitter wires the outbound link. Used when the link client is dialed
// after the station exists, since the client's handler needs the station.
func (st *Station) SetEmitter(e Emitter) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.link = e
}

// Store exposes the telemetry record store for read access.
func (st *Station) Store() *telemetry.Store {
	return st.store
}

// State returns the current link-connection state.
func (st *Station) State() LinkState {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Notifications delivers transient user-facing messages. The channel is
// buffered; messages are dropped rather than blocking the event loop.
func (st *Station) Notifications() <-chan Notification {
	return st.notifications
}

func (st *Station) notify(level NotifyLevel, message string) {
	if message == "" {
		return
	}
	select {
	case st.notifications <- Notification{Level: level, Message: message}:
	default:
		log.Printf("Notification buffer full, dropping: %s", message)
	}
}

// Vehicles returns the roster sorted by system id.
func (st *Station) Vehicles() []Vehicle {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]Vehicle, 0, len(st.vehicles))
	for _, v := range st.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SystemID < out[j].SystemID })
	return out
}

// ComPorts returns the last fetched com-port list and whether a fetch is in
// flight.
func (st *Station) ComPorts() ([]string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.comPorts, st.fetchingComPorts
}

// SecondsWaited reports the initial-heartbeat wait counter and the progress
// messages collected while the link server listens for vehicles.
func (st *Station) SecondsWaited() (int, []string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.secondsWaited, append([]string(nil), st.heartbeatLog...)
}

// Pending reports whether a tracked command family awaits its result.
func (st *Station) Pending(event string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.pending[event]
}

// HandleEvent is the single entry point for link-server events. The link
// client calls it from its read goroutine, so one event is applied at a
// time: state is never observable mid-update.
func (st *Station) HandleEvent(event string, data json.RawMessage) {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch event {
	case link.EventConnectResult:
		st.handleConnectResult(data)
	case link.EventDisconnectResult:
		st.handleDisconnectResult(data)
	case link.EventIsConnectedResult:
		st.handleIsConnectedResult(data)
	case link.EventComPortsResult:
		st.handleComPortsResult(data)
	case link.EventConnectionError:
		st.handleConnectionError(data)
	case link.EventInitialHeartbeatUpdate:
		st.handleInitialHeartbeatUpdate(data)
	case link.EventTelemetryMessage:
		st.handleTelemetry(data)
	default:
		if name, ok := strings.CutSuffix(event, "_result"); ok {
			st.handleCommandResult(name, data)
			return
		}
		log.Printf("Unhandled link event %q", event)
	}
}

func (st *Station) handleConnectResult(data json.RawMessage) {
	if st.state != Connecting {
		// stale result; a failed attempt needs a fresh user request
		log.Printf("Ignoring connect result in state %s", st.state)
		return
	}

	var res link.ConnectResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("Bad connect result payload: %v", err)
		return
	}

	if !res.Success {
		st.state = Disconnected
		st.clearPending()
		st.notify(NotifyError, res.Message)
		return
	}

	// full reset before repopulating from the new roster
	st.store.Reset()
	st.vehicles = make(map[int]Vehicle)
	st.secondsWaited = 0
	st.heartbeatLog = nil
	for _, rv := range res.Data.Vehicles {
		st.addVehicle(rv)
	}

	st.state = Connected
	st.clearPending()
	st.notify(NotifySuccess, res.Message)
	log.Printf("Radio link connected, %d vehicles on roster", len(res.Data.Vehicles))
}

func (st *Station) handleDisconnectResult(data json.RawMessage) {
	var res link.Result
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("Bad disconnect result payload: %v", err)
		return
	}
	if !res.Success {
		// the server currently never reports a failed disconnect
		return
	}
	st.toDisconnected()
}

func (st *Station) handleIsConnectedResult(data json.RawMessage) {
	var res link.BoolResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("Bad is-connected result payload: %v", err)
		return
	}
	if res.Data {
		st.state = Connected
	} else if st.state == Connected {
		st.toDisconnected()
	}
}

func (st *Station) handleComPortsResult(data json.RawMessage) {
	var res link.ComPortsResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("Bad com ports payload: %v", err)
		return
	}
	st.fetchingComPorts = false
	st.comPorts = res.Data
}

func (st *Station) handleConnectionError(data json.RawMessage) {
	var ce link.ConnectionError
	if err := json.Unmarshal(data, &ce); err != nil {
		log.Printf("Bad connection error payload: %v", err)
	}
	log.Printf("Connection error: %s", ce.Message)
	st.toDisconnected()
	st.notify(NotifyError, ce.Message)
}

func (st *Station) handleInitialHeartbeatUpdate(data json.RawMessage) {
	var upd link.InitialHeartbeatUpdate
	if err := json.Unmarshal(data, &upd); err != nil {
		log.Printf("Bad initial heartbeat payload: %v", err)
		return
	}
	if upd.Data != nil {
		st.secondsWaited = *upd.Data
	} else if upd.Message != "" {
		st.heartbeatLog = append(st.heartbeatLog, upd.Message)
	}
}

func (st *Station) handleCommandResult(command string, data json.RawMessage) {
	if st.state != Connected {
		// results arriving after the local disconnect are dropped
		return
	}

	delete(st.pending, command)

	var res link.Result
	if err := json.Unmarshal(data, &res); err != nil {
		log.Printf("Bad %s result payload: %v", command, err)
		return
	}
	if res.Success {
		st.notify(NotifySuccess, res.Message)
	} else {
		st.notify(NotifyError, res.Message)
	}
}

// toDisconnected resets the whole session: link state, pending flags, the
// roster and every per-vehicle record.
func (st *Station) toDisconnected() {
	st.state = Disconnected
	st.clearPending()
	st.store.Reset()
	st.vehicles = make(map[int]Vehicle)
	st.secondsWaited = 0
	st.heartbeatLog = nil
}

func (st *Station) clearPending() {
	st.pending = make(map[string]bool)
	st.fetchingComPorts = false
}

func (st *Station) addVehicle(rv link.RosterVehicle) {
	st.vehicles[rv.SystemID] = Vehicle{
		SystemID: rv.SystemID,
		Type:     mavlink.VehicleType(rv.VehicleType),
		Color:    vehicleColors[rv.SystemID%len(vehicleColors)],
	}
}

// RemoveVehicle drops one vehicle and all its stored telemetry.
func (st *Station) RemoveVehicle(systemID int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.vehicles, systemID)
	st.store.RemoveVehicle(systemID)
}

// --- telemetry intake ---

func (st *Station) handleTelemetry(data json.RawMessage) {
	if st.state != Connected {
		// events already in flight when the link dropped are ignored,
		// never queued
		return
	}

	var msg link.TelemetryMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Bad telemetry envelope: %v", err)
		return
	}
	if !msg.Success {
		return
	}

	packetType, err := link.PacketType(msg.Data)
	if err != nil {
		log.Printf("Telemetry packet without type: %v", err)
		return
	}

	switch packetType {
	case telemetry.PacketHeartbeat:
		var r telemetry.Heartbeat
		if json.Unmarshal(msg.Data, &r) == nil {
			st.applyHeartbeat(r)
		}
	case telemetry.PacketVfrHud:
		var r telemetry.VfrHud
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetVfrHud(r)
		}
	case telemetry.PacketGlobalPositionInt:
		var r telemetry.GlobalPositionInt
		if json.Unmarshal(msg.Data, &r) == nil {
			st.applyGlobalPosition(r)
		}
	case telemetry.PacketAttitude:
		var r telemetry.Attitude
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetAttitude(r)
		}
	case telemetry.PacketBatteryStatus:
		var r telemetry.BatteryStatus
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetBatteryStatus(r)
		}
	case telemetry.PacketSysStatus:
		var r telemetry.SysStatus
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetSysStatus(r)
		}
	case telemetry.PacketGpsRawInt:
		var r telemetry.GpsRawInt
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetGpsRawInt(r)
		}
	case telemetry.PacketVibration:
		var r telemetry.Vibration
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetVibration(r)
		}
	case telemetry.PacketEkfStatusReport:
		var r telemetry.EkfStatusReport
		if json.Unmarshal(msg.Data, &r) == nil {
			st.store.SetEkfStatusReport(r)
		}
	case telemetry.PacketStatusText:
		var r telemetry.StatusText
		if json.Unmarshal(msg.Data, &r) == nil {
			r.Timestamp = time.Now().UnixMilli()
			st.store.PushStatusText(r)
		}
	default:
		log.Printf("Unhandled telemetry packet type %q", packetType)
	}
}

func (st *Station) applyHeartbeat(r telemetry.Heartbeat) {
	prev, hadPrev := st.store.Heartbeat(r.SystemID)
	st.store.SetHeartbeat(r)

	v, onRoster := st.vehicles[r.SystemID]
	if !onRoster {
		return
	}

	// a vehicle observed leaving guided-equivalent mode abandons its target
	if _, hasTarget := st.store.Target(r.SystemID); hasTarget {
		if !mavlink.IsGuidedMode(v.Type, r.CustomMode) {
			st.store.ClearTarget(r.SystemID)
			log.Printf("Vehicle %d left guided mode, target cleared", r.SystemID)
		}
	}

	changed := !hadPrev ||
		mavlink.IsArmed(prev.BaseMode) != mavlink.IsArmed(r.BaseMode) ||
		prev.CustomMode != r.CustomMode
	if changed && st.OnVehicleChange != nil {
		snap := &VehicleSnapshot{
			Vehicle:        v,
			Armed:          mavlink.IsArmed(r.BaseMode),
			FlightMode:     r.CustomMode,
			FlightModeName: mavlink.FlightModeName(v.Type, r.CustomMode),
		}
		// hand subscribers their own copy so later updates can't race it
		snapCopy := deepcopy.Copy(snap).(*VehicleSnapshot)
		go st.OnVehicleChange(snapCopy)
	}
}

func (st *Station) applyGlobalPosition(r telemetry.GlobalPositionInt) {
	st.store.SetGlobalPositionInt(r)

	lat := mavlink.IntToCoord(r.Lat)
	lon := mavlink.IntToCoord(r.Lon)
	st.store.AppendTrackPoint(r.SystemID, telemetry.TrackPoint{Lat: lat, Lon: lon})

	// arrival check for the pending send-to-position target
	if target, ok := st.store.Target(r.SystemID); ok {
		if geometry.DistMeters(lat, lon, target.Lat, target.Lon) <= targetReachedMeters {
			st.store.ClearTarget(r.SystemID)
			log.Printf("Vehicle %d reached target position", r.SystemID)
		}
	}
}

// --- derived health ---

// VehicleHealth bundles the four evaluator results for one vehicle; a nil
// field means the required record has not been received.
type VehicleHealth struct {
	Gps       *health.Status
	Ekf       *health.Status
	Sensors   *health.Status
	Vibration *health.Status
}

// Health recomputes the derived health for one vehicle from the latest
// records.
func (st *Station) Health(systemID int) VehicleHealth {
	var vh VehicleHealth

	gps, hasGps := st.store.GpsRawInt(systemID)
	if hasGps {
		s := health.Gps(gps)
		vh.Gps = &s
	}

	if ekf, ok := st.store.EkfStatusReport(systemID); ok {
		// an absent GPS record enters the EKF evaluation as the zero value
		s := health.Ekf(ekf, gps)
		vh.Ekf = &s
	}

	if sys, ok := st.store.SysStatus(systemID); ok {
		s := health.Sensors(sys)
		vh.Sensors = &s
	}

	if vib, ok := st.store.Vibration(systemID); ok {
		s := health.Vibration(vib)
		vh.Vibration = &s
	}

	return vh
}
