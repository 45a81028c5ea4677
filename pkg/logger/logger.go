package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger. Development mode gets a
// colored text formatter; everything else logs JSON.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid LOG_LEVEL, using INFO")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     true,
		})
	}

	log.SetOutput(os.Stdout)

	Logger = log
	return log
}

// GetLogger returns the global logger instance.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithLeagueContext creates a logger with league context.
func WithLeagueContext(leagueID string) *logrus.Entry {
	if leagueID == "" {
		return logrus.NewEntry(GetLogger())
	}
	return GetLogger().WithField("league_id", leagueID)
}

// WithOptimizationContext creates a logger with optimization run context.
func WithOptimizationContext(runID string) *logrus.Entry {
	return GetLogger().WithField("optimization_id", runID)
}

// WithSimulationContext creates a logger with simulation run context.
func WithSimulationContext(simID string, trials int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"simulation_id": simID,
		"trials":        trials,
	})
}
