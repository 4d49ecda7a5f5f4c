package telemetry

import "sync"

// MaxTrackPoints bounds each vehicle's GPS track; the oldest point is
// evicted when the bound is exceeded.
const MaxTrackPoints = 300

// MaxStatusTexts bounds the status-text list the same way.
const MaxStatusTexts = 300

// Store holds the latest known value of each telemetry message type, keyed
// by system id. Latest value wins; there is no field-level merge. All
// operations are total: garbage in, garbage retained.
type Store struct {
	mu sync.RWMutex

	heartbeats        map[int]Heartbeat
	vfrHuds           map[int]VfrHud
	globalPositions   map[int]GlobalPositionInt
	attitudes         map[int]Attitude
	batteryStatuses   map[int]BatteryStatus
	sysStatuses       map[int]SysStatus
	gpsRawInts        map[int]GpsRawInt
	vibrations        map[int]Vibration
	ekfStatusReports  map[int]EkfStatusReport
	tracks            map[int][]TrackPoint
	targets           map[int]TargetPosition
	statusTexts       []StatusText
}

func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.heartbeats = make(map[int]Heartbeat)
	s.vfrHuds = make(map[int]VfrHud)
	s.globalPositions = make(map[int]GlobalPositionInt)
	s.attitudes = make(map[int]Attitude)
	s.batteryStatuses = make(map[int]BatteryStatus)
	s.sysStatuses = make(map[int]SysStatus)
	s.gpsRawInts = make(map[int]GpsRawInt)
	s.vibrations = make(map[int]Vibration)
	s.ekfStatusReports = make(map[int]EkfStatusReport)
	s.tracks = make(map[int][]TrackPoint)
	s.targets = make(map[int]TargetPosition)
	s.statusTexts = nil
}

// Reset evicts all per-vehicle state and status texts. Called on disconnect
// and before repopulating from a new connection's roster.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

// RemoveVehicle evicts every record held for one system id.
func (s *Store) RemoveVehicle(systemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.heartbeats, systemID)
	delete(s.vfrHuds, systemID)
	delete(s.globalPositions, systemID)
	delete(s.attitudes, systemID)
	delete(s.batteryStatuses, systemID)
	delete(s.sysStatuses, systemID)
	delete(s.gpsRawInts, systemID)
	delete(s.vibrations, systemID)
	delete(s.ekfStatusReports, systemID)
	delete(s.tracks, systemID)
	delete(s.targets, systemID)
}

// --- latest-value upserts; each replaces the stored record wholesale ---

func (s *Store) SetHeartbeat(r Heartbeat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heartbeats[r.SystemID] = r
}

func (s *Store) SetVfrHud(r VfrHud) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vfrHuds[r.SystemID] = r
}

func (s *Store) SetGlobalPositionInt(r GlobalPositionInt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalPositions[r.SystemID] = r
}

func (s *Store) SetAttitude(r Attitude) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attitudes[r.SystemID] = r
}

func (s *Store) SetBatteryStatus(r BatteryStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batteryStatuses[r.SystemID] = r
}

func (s *Store) SetSysStatus(r SysStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sysStatuses[r.SystemID] = r
}

func (s *Store) SetGpsRawInt(r GpsRawInt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gpsRawInts[r.SystemID] = r
}

func (s *Store) SetVibration(r Vibration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vibrations[r.SystemID] = r
}

func (s *Store) SetEkfStatusReport(r EkfStatusReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ekfStatusReports[r.SystemID] = r
}

// --- latest-value reads; the bool reports presence, absence means the
// record was never received and must be treated as unknown ---

func (s *Store) Heartbeat(systemID int) (Heartbeat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.heartbeats[systemID]
	return r, ok
}

func (s *Store) VfrHud(systemID int) (VfrHud, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.vfrHuds[systemID]
	return r, ok
}

func (s *Store) GlobalPositionInt(systemID int) (GlobalPositionInt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.globalPositions[systemID]
	return r, ok
}

func (s *Store) Attitude(systemID int) (Attitude, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.attitudes[systemID]
	return r, ok
}

func (s *Store) BatteryStatus(systemID int) (BatteryStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.batteryStatuses[systemID]
	return r, ok
}

func (s *Store) SysStatus(systemID int) (SysStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.sysStatuses[systemID]
	return r, ok
}

func (s *Store) GpsRawInt(systemID int) (GpsRawInt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.gpsRawInts[systemID]
	return r, ok
}

func (s *Store) Vibration(systemID int) (Vibration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.vibrations[systemID]
	return r, ok
}

func (s *Store) EkfStatusReport(systemID int) (EkfStatusReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ekfStatusReports[systemID]
	return r, ok
}

// AppendTrackPoint pushes a track point for a vehicle. A point equal to the
// last stored point is dropped; exceeding MaxTrackPoints evicts the oldest.
func (s *Store) AppendTrackPoint(systemID int, p TrackPoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	track := s.tracks[systemID]
	if n := len(track); n > 0 && track[n-1] == p {
		return
	}
	track = append(track, p)
	if len(track) > MaxTrackPoints {
		track = track[len(track)-MaxTrackPoints:]
	}
	s.tracks[systemID] = track
}

// Track returns a copy of the vehicle's track, oldest first.
func (s *Store) Track(systemID int) []TrackPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	track := s.tracks[systemID]
	out := make([]TrackPoint, len(track))
	copy(out, track)
	return out
}

// SetTarget records the pending send-to-position target for a vehicle,
// replacing any previous one.
func (s *Store) SetTarget(systemID int, t TargetPosition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[systemID] = t
}

func (s *Store) Target(systemID int) (TargetPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.targets[systemID]
	return t, ok
}

func (s *Store) ClearTarget(systemID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.targets, systemID)
}

// PushStatusText prepends a status text so the newest message reads first,
// trimming the list to MaxStatusTexts.
func (s *Store) PushStatusText(msg StatusText) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusTexts = append([]StatusText{msg}, s.statusTexts...)
	if len(s.statusTexts) > MaxStatusTexts {
		s.statusTexts = s.statusTexts[:MaxStatusTexts]
	}
}

// StatusTexts returns a copy of the status-text list, newest first.
func (s *Store) StatusTexts() []StatusText {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StatusText, len(s.statusTexts))
	copy(out, s.statusTexts)
	return out
}

// ClearStatusTexts empties the status-text list.
func (s *Store) ClearStatusTexts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statusTexts = nil
}
