package station

import (
	"fmt"

	"github.com/curbz/groundstation/internal/link"
	"github.com/curbz/groundstation/internal/telemetry"
)

// binding describes one dispatchable command: the outbound event name and
// whether the command family is tracked as pending until its result
// arrives.
type binding struct {
	event   string
	tracked bool
}

// commandTable maps every UI intent to its outbound link event. Connection
// management and arm/disarm/mode commands are tracked; positional commands
// fire and forget, their effect shows up in telemetry.
var commandTable = map[string]binding{
	"connect":             {event: link.EventConnect, tracked: true},
	"disconnect":          {event: link.EventDisconnect, tracked: true},
	"is_connected":        {event: link.EventIsConnected},
	"get_com_ports":       {event: link.EventGetComPorts},
	"arm":                 {event: link.EventArmVehicle, tracked: true},
	"arm_all":             {event: link.EventArmAll, tracked: true},
	"disarm":              {event: link.EventDisarmVehicle, tracked: true},
	"disarm_all":          {event: link.EventDisarmAll, tracked: true},
	"set_flight_mode":     {event: link.EventSetFlightMode, tracked: true},
	"set_all_flight_mode": {event: link.EventSetAllFlightMode, tracked: true},
	"takeoff":             {event: link.EventCopterTakeoff},
	"goto_position":       {event: link.EventGotoPosition},
	"set_altitude_target": {event: link.EventSetAltitudeTarget},
}

// dispatch sends one command from the table. Callers hold st.mu.
func (st *Station) dispatch(name string, payload interface{}) error {
	b, ok := commandTable[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	if b.tracked {
		st.pending[b.event] = true
	}
	if err := st.link.Emit(b.event, payload); err != nil {
		if b.tracked {
			delete(st.pending, b.event)
		}
		return fmt.Errorf("sending %s: %w", b.event, err)
	}
	return nil
}

// Connect asks the link server to open the radio link. Only valid while
// disconnected; a failed attempt requires a fresh call.
func (st *Station) Connect(req link.ConnectRequest) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state != Disconnected {
		return fmt.Errorf("cannot connect while %s", st.state)
	}
	st.state = Connecting
	if err := st.dispatch("connect", req); err != nil {
		st.state = Disconnected
		return err
	}
	return nil
}

// Disconnect asks the link server to close the radio link.
func (st *Station) Disconnect() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.state == Disconnected {
		return nil
	}
	return st.dispatch("disconnect", nil)
}

// ProbeConnection queries the server's authoritative link state, used after
// a socket reconnect.
func (st *Station) ProbeConnection() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("is_connected", nil)
}

// RefreshComPorts requests the server's serial port list.
func (st *Station) RefreshComPorts() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.fetchingComPorts = true
	if err := st.dispatch("get_com_ports", nil); err != nil {
		st.fetchingComPorts = false
		return err
	}
	return nil
}

func (st *Station) Arm(systemID int, force bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("arm", link.ArmPayload{SystemID: systemID, Force: force})
}

func (st *Station) ArmAll(force bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("arm_all", link.FleetArmPayload{Force: force})
}

func (st *Station) Disarm(systemID int, force bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("disarm", link.ArmPayload{SystemID: systemID, Force: force})
}

func (st *Station) DisarmAll(force bool) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("disarm_all", link.FleetArmPayload{Force: force})
}

func (st *Station) SetFlightMode(systemID, mode int) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("set_flight_mode", link.FlightModePayload{SystemID: systemID, FlightMode: mode})
}

func (st *Station) SetAllFlightMode(mode int) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("set_all_flight_mode", link.FleetFlightModePayload{FlightMode: mode})
}

func (st *Station) Takeoff(systemID int, altitude float64) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("takeoff", link.TakeoffPayload{SystemID: systemID, Altitude: altitude})
}

// GotoPosition commands one vehicle to a position and records the target
// optimistically; telemetry arrival or a mode change clears it.
func (st *Station) GotoPosition(systemID int, lat, lon, altitude float64) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	err := st.dispatch("goto_position", link.GotoPositionPayload{
		SystemID:  systemID,
		Latitude:  lat,
		Longitude: lon,
		Altitude:  altitude,
	})
	if err != nil {
		return err
	}
	st.store.SetTarget(systemID, telemetry.TargetPosition{Lat: lat, Lon: lon, Altitude: altitude})
	return nil
}

// SetAltitudeTarget changes the commanded altitude for all guided vehicles.
func (st *Station) SetAltitudeTarget(altitude float64) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.dispatch("set_altitude_target", link.AltitudeTargetPayload{Altitude: altitude})
}
