// Package config loads server settings from flags, PYDEPDOCS_* environment
// variables, an optional YAML file and built-in defaults, in that order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jonwraymond/pydepdocs/internal/validation"
)

// EnvPrefix prefixes every environment variable, e.g. PYDEPDOCS_INDEX_DIR.
const EnvPrefix = "PYDEPDOCS"

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Keys.
const (
	keyEnv                 = "env"
	keyIndexDir            = "index.dir"
	keyTransport           = "transport"
	keyHTTPAddr            = "http.addr"
	keyHTTPShutdownTimeout = "http.shutdown_timeout"
	keyHTTPAllowedOrigins  = "http.allowed_origins"
	keyLogLevel            = "log.level"
	keySearchTimeout       = "search.timeout"
	keySearchDefaultTopN   = "search.default_top_n"
)

// Defaults.
const (
	DefaultEnv             = "local"
	DefaultIndexDir        = "src/index"
	DefaultHTTPAddr        = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultTopN            = 5
)

// Config is the complete server configuration.
type Config struct {
	Env       string       `mapstructure:"env" validate:"oneof=local dev prod"`
	Index     IndexConfig  `mapstructure:"index"`
	Transport string       `mapstructure:"transport" validate:"oneof=stdio http"`
	HTTP      HTTPConfig   `mapstructure:"http"`
	Log       LogConfig    `mapstructure:"log"`
	Search    SearchConfig `mapstructure:"search"`
}

// IndexConfig locates the prebuilt search index.
type IndexConfig struct {
	Dir string `mapstructure:"dir" validate:"not_blank"`
}

// HTTPConfig configures the streamable HTTP transport.
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr" validate:"not_blank"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// LogConfig overrides the environment's default log level.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// SearchConfig tunes the search tool.
type SearchConfig struct {
	Timeout     time.Duration `mapstructure:"timeout" validate:"min=0"`
	DefaultTopN int           `mapstructure:"default_top_n" validate:"min=1,max=10"`
}

// BindFlags registers the command-line flags Load understands.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a YAML config file (default: config/<env>.yaml when present)")
	flags.String("env", DefaultEnv, "environment: local, dev or prod")
	flags.String("index-dir", DefaultIndexDir, "directory of the prebuilt search index")
	flags.String("transport", TransportStdio, "MCP transport: stdio or http")
	flags.String("http-addr", DefaultHTTPAddr, "listen address for the http transport")
	flags.String("log-level", "", "log level override: debug, info, warn, error")
}

var flagKeys = map[string]string{
	"env":       keyEnv,
	"index-dir": keyIndexDir,
	"transport": keyTransport,
	"http-addr": keyHTTPAddr,
	"log-level": keyLogLevel,
}

// Load reads the configuration. flags must have been set up with BindFlags
// and parsed; it may be nil to skip flags. A .env file in the working
// directory is loaded into the environment first when present.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := ""
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile == "" {
		configFile = defaultConfigFile(v.GetString(keyEnv))
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	v, err := validation.New(nil)
	if err != nil {
		return err
	}
	if err := v.Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyEnv, DefaultEnv)
	v.SetDefault(keyIndexDir, DefaultIndexDir)
	v.SetDefault(keyTransport, TransportStdio)
	v.SetDefault(keyHTTPAddr, DefaultHTTPAddr)
	v.SetDefault(keyHTTPShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(keyHTTPAllowedOrigins, []string{})
	v.SetDefault(keyLogLevel, "")
	v.SetDefault(keySearchTimeout, time.Duration(0))
	v.SetDefault(keySearchDefaultTopN, DefaultTopN)
}

// defaultConfigFile returns config/<env>.yaml when it exists.
func defaultConfigFile(env string) string {
	path := filepath.Join("config", env+".yaml")
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
