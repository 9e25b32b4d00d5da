package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JorgeBC420/caminosdelafe/internal/game/economy"
)

// EconomyConfig groups the tunable economy knobs. Defaults mirror the
// live balance values.
type EconomyConfig struct {
	Limits   economy.LimitsTuning   `yaml:"limits"`
	Exchange economy.ExchangeTuning `yaml:"exchange"`
	Pass     economy.PassTuning     `yaml:"faith_pass"`
	Ads      economy.AdTuning       `yaml:"ads"`
}

// DefaultEconomy returns EconomyConfig with the live balance values.
func DefaultEconomy() EconomyConfig {
	return EconomyConfig{
		Limits:   economy.DefaultLimitsTuning(),
		Exchange: economy.DefaultExchangeTuning(),
		Pass:     economy.DefaultPassTuning(),
		Ads:      economy.DefaultAdTuning(),
	}
}

// GameServer holds all configuration for the game server.
type GameServer struct {
	// Database
	Database DatabaseConfig `yaml:"database"`

	// Economy tuning
	Economy EconomyConfig `yaml:"economy"`

	// Simulation
	TickInterval time.Duration `yaml:"tick_interval"` // scheduler granularity (default: 1s)
	SaveInterval time.Duration `yaml:"save_interval"` // autosave period (default: 60s)
	CombatSeed   uint64        `yaml:"combat_seed"`   // 0 = random per process

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// DefaultGameServer returns GameServer config with sensible defaults.
func DefaultGameServer() GameServer {
	return GameServer{
		TickInterval: time.Second,
		SaveInterval: 60 * time.Second,
		LogLevel:     "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "caminos",
			Password: "caminos",
			DBName:   "caminos",
			SSLMode:  "disable",
		},
		Economy: DefaultEconomy(),
	}
}

// LoadGameServer loads game server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGameServer(path string) (GameServer, error) {
	cfg := DefaultGameServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
