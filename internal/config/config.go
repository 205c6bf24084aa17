package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
}

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Endpoint string `mapstructure:"endpoint"`
}

type GameConfig struct {
	JobCapacity      int           `mapstructure:"job_capacity"`
	InitialFunds     float64       `mapstructure:"initial_funds"`
	JobMaxAge        time.Duration `mapstructure:"job_max_age"`
	DeletePenalty    time.Duration `mapstructure:"delete_penalty"`
	MaxHardwareLevel int           `mapstructure:"max_hardware_level"` // 0 = uncapped
}

type SnapshotConfig struct {
	Path     string `mapstructure:"path"`
	Disabled bool   `mapstructure:"disabled"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8080",
			Endpoint: "/api",
		},
		Game: GameConfig{
			JobCapacity:   25,
			InitialFunds:  40.0,
			JobMaxAge:     6 * time.Hour,
			DeletePenalty: 5 * time.Second,
		},
		Snapshot: SnapshotConfig{
			Path: "data/tycoon_state.json",
		},
	}
}

// LoadConfig reads the YAML config at path, falling back to defaults for any
// unset field.
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	config := Default()
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	def := Default()
	if config.Server.Host == "" {
		config.Server.Host = def.Server.Host
	}
	if config.Server.Port == "" {
		config.Server.Port = def.Server.Port
	}
	if config.Server.Endpoint == "" {
		config.Server.Endpoint = def.Server.Endpoint
	}
	if config.Game.JobCapacity <= 0 {
		config.Game.JobCapacity = def.Game.JobCapacity
	}
	if config.Game.InitialFunds <= 0 {
		config.Game.InitialFunds = def.Game.InitialFunds
	}
	if config.Game.JobMaxAge <= 0 {
		config.Game.JobMaxAge = def.Game.JobMaxAge
	}
	if config.Game.DeletePenalty <= 0 {
		config.Game.DeletePenalty = def.Game.DeletePenalty
	}
	if config.Snapshot.Path == "" {
		config.Snapshot.Path = def.Snapshot.Path
	}
}
