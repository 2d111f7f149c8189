package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime settings resolved from defaults, an optional
// config file, TOFCAL_* environment variables and command line flags.
type Config struct {
	Endpoint       string        `mapstructure:"endpoint"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // zero keeps the transport default
	Demo           bool          `mapstructure:"demo"`
	Verbose        bool          `mapstructure:"verbose"`
	LogFile        string        `mapstructure:"log_file"`

	Scan   ScanConfig   `mapstructure:"scan"`
	MQTT   MQTTConfig   `mapstructure:"mqtt"`
	Bridge BridgeConfig `mapstructure:"bridge"`
}

type ScanConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Adapter string `mapstructure:"adapter"`
}

type MQTTConfig struct {
	URL          string `mapstructure:"url"`
	ClientPrefix string `mapstructure:"client_prefix"`
}

type BridgeConfig struct {
	Port    uint `mapstructure:"port"`
	HttpLog bool `mapstructure:"http_log"`
}

// SetDefaults registers every key with its default so that AutomaticEnv can
// resolve nested keys during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", DefaultEndpoint)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("demo", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_file", "")
	v.SetDefault("scan.enabled", false)
	v.SetDefault("scan.adapter", "hci0")
	v.SetDefault("mqtt.url", "mqtt://localhost:1883")
	v.SetDefault("mqtt.client_prefix", "tofcal")
	v.SetDefault("bridge.port", DefaultBridgePort)
	v.SetDefault("bridge.http_log", false)
}

// Load resolves the configuration. cfgFile wins over the CONFIG_FILE
// environment variable; a missing file is an error only when named explicitly.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("tofcal")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile == "" {
		if env := os.Getenv("CONFIG_FILE"); env != "" {
			if _, err := os.Stat(env); err == nil {
				cfgFile = env
			}
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if !c.Demo {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.New("endpoint must use http:// or https://")
		}
		if u.Host == "" {
			return errors.New("endpoint must include a host")
		}
	}
	if c.RequestTimeout < 0 {
		return errors.New("request_timeout must not be negative")
	}
	if c.MQTT.URL != "" {
		if !strings.HasPrefix(c.MQTT.URL, "ws://") &&
			!strings.HasPrefix(c.MQTT.URL, "wss://") &&
			!strings.HasPrefix(c.MQTT.URL, "mqtt://") &&
			!strings.HasPrefix(c.MQTT.URL, "mqtts://") {
			return errors.New("mqtt.url must use a supported protocol (ws://, wss://, mqtt://, or mqtts://)")
		}
	}
	if c.Bridge.Port == 0 || c.Bridge.Port > 65535 {
		return fmt.Errorf("bridge.port %d out of range", c.Bridge.Port)
	}
	return nil
}
