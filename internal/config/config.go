// Package config defines all configuration structures for the SmilesKit
// toolkit.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/SmilesKit/internal/infrastructure/monitoring/logging"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ChemConfig holds the pipeline knobs of the SMILES core.
type ChemConfig struct {
	// MaxRingSize caps simple-cycle enumeration and with it the size of any
	// ring that can be perceived aromatic.  The default of 7 covers Hückel
	// perception for 3–7-membered rings; larger rings are never aromatic,
	// matching the enumeration cap by design of the pipeline.
	MaxRingSize int `mapstructure:"max_ring_size"`

	// MaxAtoms rejects inputs whose total atom count exceeds the limit.
	// Zero disables the guard.  The core itself has no timeouts; this is the
	// deployment's way to bound worst-case work.
	MaxAtoms int `mapstructure:"max_atoms"`
}

// CacheConfig holds the optional Redis canonical-result cache parameters.
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Config is the root configuration object for both the CLI and the API server.
type Config struct {
	Server  ServerConfig      `mapstructure:"server"`
	Log     logging.LogConfig `mapstructure:"log"`
	Chem    ChemConfig        `mapstructure:"chem"`
	Cache   CacheConfig       `mapstructure:"cache"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
}

// Validate checks cross-field constraints and value ranges.  It is called by
// Load after defaults and environment overrides have been applied.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Chem.MaxRingSize < 3 {
		return fmt.Errorf("config: chem.max_ring_size %d must be at least 3", c.Chem.MaxRingSize)
	}
	if c.Chem.MaxAtoms < 0 {
		return fmt.Errorf("config: chem.max_atoms must not be negative")
	}
	if c.Cache.Enabled && c.Cache.Addr == "" {
		return fmt.Errorf("config: cache.addr is required when the cache is enabled")
	}
	return nil
}
