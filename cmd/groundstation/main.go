package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/curbz/groundstation/internal/link"
	"github.com/curbz/groundstation/internal/settings"
	"github.com/curbz/groundstation/internal/station"
	"github.com/curbz/groundstation/pkg/util"
)

// Config is the application configuration loaded from config.yaml.
type Config struct {
	Server struct {
		URL string `yaml:"url"`
	} `yaml:"server"`
	SettingsPath string `yaml:"settings_path"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := util.LoadConfig[Config](*configPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration from %s: %v", *configPath, err)
	}

	prefs := settings.Load(cfg.SettingsPath)

	log.Println("--- Stage 1: Connect to link server ---")
	st := station.New(nil)
	client, err := link.Dial(cfg.Server.URL, st.HandleEvent)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to link server at %s. Ensure the server is running.\nError: %v", cfg.Server.URL, err)
	}
	st.SetEmitter(client)
	log.Println("SUCCESS: Link server connection established.")

	// surface command outcomes and link errors as they arrive
	go func() {
		for n := range st.Notifications() {
			log.Printf("[%s] %s", n.Level, n.Message)
		}
	}()

	// the server holds the authoritative radio-link state across restarts
	if err := st.ProbeConnection(); err != nil {
		log.Printf("Connection probe failed: %v", err)
	}
	if err := st.RefreshComPorts(); err != nil {
		log.Printf("Com port listing failed: %v", err)
	}

	log.Println("--- Stage 2: Open radio link ---")
	if err := st.Connect(connectRequest(prefs)); err != nil {
		log.Printf("Radio link request failed: %v", err)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	select {
	case <-interrupt:
		log.Println("Interrupt received. Disconnecting...")
		if err := st.Disconnect(); err != nil {
			log.Printf("Disconnect request failed: %v", err)
		}
		// let the disconnect ack come back before tearing the socket down
		time.Sleep(500 * time.Millisecond)
	case <-client.Done():
		log.Println("Link server connection lost.")
	}

	if err := prefs.Save(cfg.SettingsPath); err != nil {
		log.Printf("Could not save settings: %v", err)
	}
	client.Close()
}

// connectRequest translates the persisted preferences into a radio-link
// request. Network links are addressed as type:ip:port, the form the link
// server hands to pymavlink.
func connectRequest(prefs settings.Settings) link.ConnectRequest {
	req := link.ConnectRequest{
		Baud:           prefs.Baudrate,
		ConnectionType: prefs.ConnectionType,
	}
	if prefs.ConnectionType == settings.ConnectionNetwork {
		req.Port = fmt.Sprintf("%s:%s:%s", prefs.NetworkType, prefs.IP, prefs.Port)
	} else {
		req.Port = prefs.SelectedComPort
	}
	return req
}
