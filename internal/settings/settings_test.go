package settings

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if s.Baudrate != 57600 {
		t.Errorf("default baudrate = %d, want 57600", s.Baudrate)
	}
	if s.ConnectionType != ConnectionSerial {
		t.Errorf("default connection type = %q, want serial", s.ConnectionType)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s := Settings{
		SelectedComPort: "/dev/ttyUSB0",
		Baudrate:        115200,
		ConnectionType:  ConnectionNetwork,
		NetworkType:     "udp",
		IP:              "10.0.0.2",
		Port:            "14550",
	}
	if err := s.Save(path); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded := Load(path)
	if loaded != s {
		t.Errorf("round trip mismatch\nwant: %#v\ngot:  %#v", s, loaded)
	}
}
