package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/greenfelt/holdem/internal/game"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Table  TableSettings  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableSettings fixes the parameters every room is created with, plus the
// timing of the turn and street timers.
type TableSettings struct {
	SmallBlind         int `hcl:"small_blind,optional"`
	BigBlind           int `hcl:"big_blind,optional"`
	StartingStack      int `hcl:"starting_stack,optional"`
	MaxSeats           int `hcl:"max_seats,optional"`
	TurnTimeoutSeconds int `hcl:"turn_timeout_seconds,optional"`
	StreetPauseSeconds int `hcl:"street_pause_seconds,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Table: TableSettings{
			SmallBlind:         5,
			BigBlind:           10,
			StartingStack:      1000,
			MaxSeats:           8,
			TurnTimeoutSeconds: 30,
			StreetPauseSeconds: 2,
		},
	}
}

// LoadConfig loads server configuration from an HCL file. A missing file
// yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Table.SmallBlind == 0 {
		config.Table.SmallBlind = defaults.Table.SmallBlind
	}
	if config.Table.BigBlind == 0 {
		config.Table.BigBlind = defaults.Table.BigBlind
	}
	if config.Table.StartingStack == 0 {
		config.Table.StartingStack = defaults.Table.StartingStack
	}
	if config.Table.MaxSeats == 0 {
		config.Table.MaxSeats = defaults.Table.MaxSeats
	}
	if config.Table.TurnTimeoutSeconds == 0 {
		config.Table.TurnTimeoutSeconds = defaults.Table.TurnTimeoutSeconds
	}
	if config.Table.StreetPauseSeconds == 0 {
		config.Table.StreetPauseSeconds = defaults.Table.StreetPauseSeconds
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Table.StartingStack < c.Table.BigBlind {
		return fmt.Errorf("starting stack must cover at least the big blind")
	}
	if c.Table.MaxSeats < 2 {
		return fmt.Errorf("max seats must be at least 2")
	}
	return nil
}

// Address returns the full listen address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Stakes returns the table parameters rooms are created with.
func (c *TableSettings) Stakes() game.Stakes {
	return game.Stakes{
		SmallBlind:    c.SmallBlind,
		BigBlind:      c.BigBlind,
		StartingStack: c.StartingStack,
		MaxSeats:      c.MaxSeats,
	}
}

// TurnTimeout returns how long a seat may sit on its turn before the
// server folds it.
func (c *TableSettings) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimeoutSeconds) * time.Second
}

// StreetPause returns the delay between a resolved betting round and the
// next street.
func (c *TableSettings) StreetPause() time.Duration {
	return time.Duration(c.StreetPauseSeconds) * time.Second
}
