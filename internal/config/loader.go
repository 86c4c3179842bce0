// Package config provides configuration loading, defaults, and validation for
// the SmilesKit toolkit.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all toolkit settings.
const envPrefix = "SMILESKIT"

// newViper builds a pre-configured Viper instance with the toolkit's standard
// settings: YAML file type, SMILESKIT_ env prefix, automatic env binding, and
// a key replacer that maps "." → "_" so that nested keys like "chem.max_atoms"
// resolve to "SMILESKIT_CHEM_MAX_ATOMS".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind environment variables to all fields in the Config struct.  Viper's
	// AutomaticEnv does not pick up nested keys that appear in neither the
	// configuration file nor an explicit binding.
	bindEnvs(v, Config{})

	return v
}

// bindEnvs recursively binds each field of the given struct to an environment
// variable using its "mapstructure" tag.
func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ift := reflect.TypeOf(iface)
	if ift.Kind() == reflect.Ptr {
		ift = ift.Elem()
	}
	for i := 0; i < ift.NumField(); i++ {
		field := ift.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "," {
			continue
		}
		newParts := append(parts, tag)
		if field.Type.Kind() == reflect.Struct {
			bindEnvs(v, reflect.New(field.Type).Elem().Interface(), newParts...)
		} else {
			key := strings.Join(newParts, ".")
			_ = v.BindEnv(key)
		}
	}
}

// applyDefaults seeds a Viper instance with the values from Defaults so that
// partial configuration files merge over a complete baseline.
func applyDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_body_size", d.Server.MaxBodySize)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_paths", d.Log.OutputPaths)
	v.SetDefault("log.error_output_paths", d.Log.ErrorOutputPaths)
	v.SetDefault("chem.max_ring_size", d.Chem.MaxRingSize)
	v.SetDefault("chem.max_atoms", d.Chem.MaxAtoms)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.addr", d.Cache.Addr)
	v.SetDefault("cache.password", d.Cache.Password)
	v.SetDefault("cache.db", d.Cache.DB)
	v.SetDefault("cache.dial_timeout", d.Cache.DialTimeout)
	v.SetDefault("cache.read_timeout", d.Cache.ReadTimeout)
	v.SetDefault("cache.write_timeout", d.Cache.WriteTimeout)
	v.SetDefault("cache.default_ttl", d.Cache.DefaultTTL)
	v.SetDefault("cache.key_prefix", d.Cache.KeyPrefix)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
}

// Load reads the YAML file at configPath (optional; empty means defaults and
// environment only), merges SMILESKIT_* environment overrides, validates the
// result, and returns the effective configuration.
func Load(configPath string) (*Config, error) {
	v := newViper()
	applyDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch reloads the configuration whenever the file at configPath changes and
// invokes onChange with the freshly validated result.  Invalid intermediate
// states are skipped so a half-written file cannot take the process down.
func Watch(configPath string, onChange func(*Config)) (*viper.Viper, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config: watch requires a config file path")
	}
	v := newViper()
	applyDefaults(v)
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return v, nil
}
