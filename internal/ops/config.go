package ops

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Broker   BrokerConfig  `json:"broker"`
	Session  SessionConfig `json:"session"`
	Universe []string      `json:"universe"`
	Blotter  BlotterConfig `json:"blotter"`
}

// BrokerConfig holds the remote trade service endpoint and credentials.
// Required for live sessions only.
type BrokerConfig struct {
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionConfig holds trading-session parameters shared by both
// gateway variants.
type SessionConfig struct {
	TradeDate      int64 `json:"tradeDate"`
	CarryOvernight *bool `json:"carryOvernight"`
	QueueCapacity  int   `json:"queueCapacity"`
}

// BlotterConfig holds the optional postgres archive settings.
type BlotterConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Broker         BrokerConfig
	TradeDate      int64
	CarryOvernight bool
	QueueCapacity  int
	Universe       *Universe
	Blotter        BlotterConfig
}

// Load reads a JSON config file and resolves defaults.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}
	return resolve(cfg)
}

func resolve(cfg FileConfig) (Loaded, error) {
	if cfg.Session.TradeDate <= 0 {
		return Loaded{}, fmt.Errorf("session tradeDate must be a YYYYMMDD date")
	}

	universe := NewUniverse()
	for _, symbol := range cfg.Universe {
		if err := universe.Add(symbol); err != nil {
			return Loaded{}, fmt.Errorf("invalid universe: %w", err)
		}
	}

	carry := true
	if cfg.Session.CarryOvernight != nil {
		carry = *cfg.Session.CarryOvernight
	}

	return Loaded{
		Broker:         cfg.Broker,
		TradeDate:      cfg.Session.TradeDate,
		CarryOvernight: carry,
		QueueCapacity:  cfg.Session.QueueCapacity,
		Universe:       universe,
		Blotter:        cfg.Blotter,
	}, nil
}
