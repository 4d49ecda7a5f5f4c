// Package settings persists the user's last-used connection parameters
// between sessions. Plain key/value YAML, no schema versioning.
package settings

import (
	"log"
	"os"

	"github.com/curbz/groundstation/pkg/util"
)

const (
	ConnectionSerial  = "serial"
	ConnectionNetwork = "network"
)

type Settings struct {
	SelectedComPort string `yaml:"selected_com_port"`
	Baudrate        int    `yaml:"baudrate"`
	ConnectionType  string `yaml:"connection_type"`
	NetworkType     string `yaml:"network_type"`
	IP              string `yaml:"ip"`
	Port            string `yaml:"port"`
}

func Defaults() Settings {
	return Settings{
		Baudrate:       57600,
		ConnectionType: ConnectionSerial,
		NetworkType:    "tcp",
		IP:             "127.0.0.1",
		Port:           "5760",
	}
}

// Load reads settings from path, falling back to defaults when the file does
// not exist yet or cannot be parsed.
func Load(path string) Settings {
	if _, err := os.Stat(path); err != nil {
		return Defaults()
	}

	loaded, err := util.LoadConfig[Settings](path)
	if err != nil {
		log.Printf("Could not read settings file %s, using defaults: %v", path, err)
		return Defaults()
	}

	s := *loaded
	if s.Baudrate == 0 {
		s.Baudrate = Defaults().Baudrate
	}
	if s.ConnectionType == "" {
		s.ConnectionType = Defaults().ConnectionType
	}
	return s
}

// Save writes the settings back to path.
func (s Settings) Save(path string) error {
	return util.SaveConfig(path, &s)
}
