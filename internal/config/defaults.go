package config

import (
	"time"

	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
)

// Defaults returns the configuration used when no file and no environment
// overrides are present.  Every field a deployment is likely to touch has an
// explicit default so that a bare binary is immediately usable.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			MaxBodySize:     1 << 20,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: logging.LogConfig{
			Level:            "info",
			Format:           "json",
			OutputPaths:      []string{"stdout"},
			ErrorOutputPaths: []string{"stderr"},
		},
		Chem: ChemConfig{
			MaxRingSize: 7,
			MaxAtoms:    0,
		},
		Cache: CacheConfig{
			Enabled:      false,
			Addr:         "localhost:6379",
			DB:           0,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			DefaultTTL:   24 * time.Hour,
			KeyPrefix:    "smileskit",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}
