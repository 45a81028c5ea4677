// Package config loads engine settings and league configuration files,
// viper-backed with environment overrides.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"

	"github.com/mistakia/league-sub002/internal/league"
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Simulation
	SimulationTrials  int   `mapstructure:"SIMULATION_TRIALS"`
	SimulationWorkers int   `mapstructure:"SIMULATION_WORKERS"`
	SimulationSeed    int64 `mapstructure:"SIMULATION_SEED"`

	// League settings document
	LeagueFile string `mapstructure:"LEAGUE_FILE"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// LoadConfig reads engine settings from an optional .env file and the
// environment.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("SIMULATION_TRIALS", 10000)
	viper.SetDefault("SIMULATION_WORKERS", 4)
	viper.SetDefault("SIMULATION_SEED", 0)
	viper.SetDefault("LEAGUE_FILE", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

var (
	slotType     = reflect.TypeOf(league.Slot(""))
	positionType = reflect.TypeOf(league.Position(""))
)

// leagueKeyHook restores canonical casing for slot and position map keys.
// Settings keys come back from the loader lowercased ("rb/wr"), while the
// league types use uppercase codes.
func leagueKeyHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	if to == slotType || to == positionType {
		return strings.ToUpper(data.(string)), nil
	}
	return data, nil
}

// LoadLeague hydrates and validates a league configuration from a settings
// file (YAML or JSON).
func LoadLeague(path string) (*league.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading league file: %w", err)
	}

	var cfg league.Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(leagueKeyHook)); err != nil {
		return nil, fmt.Errorf("unmarshaling league config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
