// Package mockserver is a stand-in radio-link server for tests and offline
// development. It speaks the same event envelope as the real server,
// acknowledges every command, and lets callers push scripted telemetry to
// the connected client.
package mockserver

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.bug.st/serial"

	"github.com/curbz/groundstation/internal/link"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type Server struct {
	httpSrv *httptest.Server

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool // radio link state, not socket state

	// FailConnect makes connect_to_radio_link acknowledge with success=false.
	FailConnect bool
	// Roster reported on a successful connect.
	Roster []link.RosterVehicle
	// ComPorts overrides host serial-port enumeration when non-nil.
	ComPorts []string
}

// Start brings up the mock server; the websocket endpoint is at URL().
func Start() *Server {
	s := &Server{
		Roster: []link.RosterVehicle{
			{SystemID: 1, VehicleType: "copter"},
			{SystemID: 2, VehicleType: "rover"},
		},
	}

	r := mux.NewRouter()
	r.HandleFunc("/socket", s.wsHandler)
	s.httpSrv = httptest.NewServer(r)
	return s
}

// URL returns the ws:// address of the socket endpoint.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.httpSrv.URL, "http") + "/socket"
}

func (s *Server) Close() {
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()
	s.httpSrv.Close()
}

// Send pushes one event to the connected client.
func (s *Server) Send(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	return s.conn.WriteJSON(link.Envelope{Event: event, Data: data})
}

// SendTelemetry wraps a packet dictionary in a telemetry_message event.
func (s *Server) SendTelemetry(packet interface{}) error {
	data, err := json.Marshal(packet)
	if err != nil {
		return err
	}
	return s.Send(link.EventTelemetryMessage, link.TelemetryMessage{Success: true, Data: data})
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("mockserver: websocket upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.conn == conn {
			s.conn = nil
		}
		s.mu.Unlock()
		conn.Close()
	}()

	for {
		mt, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var env link.Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			log.Printf("mockserver: invalid JSON: %v", err)
			continue
		}

		s.handleEvent(env)
	}
}

func (s *Server) handleEvent(env link.Envelope) {
	switch env.Event {
	case link.EventConnect:
		if s.FailConnect {
			s.Send(link.EventConnectResult, link.ConnectResult{
				Success: false,
				Message: "Failed to connect to radio link",
			})
			return
		}
		s.mu.Lock()
		s.connected = true
		s.mu.Unlock()
		s.Send(link.EventConnectResult, link.ConnectResult{
			Success: true,
			Message: "Connected via radio link",
			Data:    link.ConnectResultData{Vehicles: s.Roster},
		})

	case link.EventDisconnect:
		s.mu.Lock()
		s.connected = false
		s.mu.Unlock()
		s.Send(link.EventDisconnectResult, link.Result{Success: true, Message: "Disconnected from radio link"})

	case link.EventIsConnected:
		s.mu.Lock()
		connected := s.connected
		s.mu.Unlock()
		s.Send(link.EventIsConnectedResult, link.BoolResult{Success: true, Data: connected})

	case link.EventGetComPorts:
		ports := s.ComPorts
		if ports == nil {
			// enumerate whatever the host actually has
			found, err := serial.GetPortsList()
			if err != nil {
				log.Printf("mockserver: serial enumeration failed: %v", err)
				found = []string{}
			}
			ports = found
		}
		s.Send(link.EventComPortsResult, link.ComPortsResult{Success: true, Data: ports})

	case link.EventArmVehicle, link.EventArmAll,
		link.EventDisarmVehicle, link.EventDisarmAll,
		link.EventSetFlightMode, link.EventSetAllFlightMode,
		link.EventCopterTakeoff, link.EventGotoPosition,
		link.EventSetAltitudeTarget:
		s.Send(env.Event+"_result", link.Result{Success: true, Message: env.Event + " accepted"})

	default:
		log.Printf("mockserver: unknown event %q", env.Event)
	}
}
