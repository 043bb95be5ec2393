// =============================================================================
// 📦 nlpvocab configuration loader
// =============================================================================
// Unified configuration loading: YAML or TOML file + environment overrides
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("nlpvocab.yaml").
//	    WithEnvPrefix("NLPVOCAB").
//	    Load()
//
// Priority: defaults → config file → environment variables
// =============================================================================
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/BaSui01/nlpvocab/corpus"
	"github.com/BaSui01/nlpvocab/types"
	"github.com/BaSui01/nlpvocab/vocab"
)

// =============================================================================
// 🎯 Configuration structures
// =============================================================================

// Config is the complete nlpvocab configuration.
type Config struct {
	Count     CountConfig     `yaml:"count" toml:"count" env:"COUNT"`
	Log       LogConfig       `yaml:"log" toml:"log" env:"LOG"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics" env:"METRICS"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry" env:"TELEMETRY"`
	Redis     RedisConfig     `yaml:"redis" toml:"redis" env:"REDIS"`
	Database  DatabaseConfig  `yaml:"database" toml:"database" env:"DATABASE"`
}

// CountConfig controls a counting run.
type CountConfig struct {
	// Documents per batch
	BatchSize int `yaml:"batch_size" toml:"batch_size" env:"BATCH_SIZE"`
	// Tokens below this count are removed
	MinFreq int64 `yaml:"min_freq" toml:"min_freq" env:"MIN_FREQ"`
	// Keep at most this many tokens, 0 for no limit
	MaxSize int `yaml:"max_size" toml:"max_size" env:"MAX_SIZE"`
	// BINARY, TSV_WITH_HEADERS or TSV_WITHOUT_HEADERS
	FileFormat string `yaml:"file_format" toml:"file_format" env:"FILE_FORMAT"`
	// NONE, NFC, NFKC, NFD or NFKD
	UnicodeNorm string `yaml:"unicode_norm" toml:"unicode_norm" env:"UNICODE_NORM"`
	LowerCase   bool   `yaml:"lower_case" toml:"lower_case" env:"LOWER_CASE"`
	// Concurrent batches
	Workers int `yaml:"workers" toml:"workers" env:"WORKERS"`
	// tiktoken encoding for the bpe tokenizer
	BPEEncoding string `yaml:"bpe_encoding" toml:"bpe_encoding" env:"BPE_ENCODING"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// debug, info, warn, error
	Level string `yaml:"level" toml:"level" env:"LEVEL"`
	// json, console
	Format           string   `yaml:"format" toml:"format" env:"FORMAT"`
	OutputPaths      []string `yaml:"output_paths" toml:"output_paths" env:"OUTPUT_PATHS"`
	EnableCaller     bool     `yaml:"enable_caller" toml:"enable_caller" env:"ENABLE_CALLER"`
	EnableStacktrace bool     `yaml:"enable_stacktrace" toml:"enable_stacktrace" env:"ENABLE_STACKTRACE"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Namespace string `yaml:"namespace" toml:"namespace" env:"NAMESPACE"`
	// node_exporter textfile written when a run finishes, empty to skip
	Textfile string `yaml:"textfile" toml:"textfile" env:"TEXTFILE"`
}

// TelemetryConfig configures OpenTelemetry export.
type TelemetryConfig struct {
	Enabled      bool    `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	OTLPEndpoint string  `yaml:"otlp_endpoint" toml:"otlp_endpoint" env:"OTLP_ENDPOINT"`
	ServiceName  string  `yaml:"service_name" toml:"service_name" env:"SERVICE_NAME"`
	SampleRate   float64 `yaml:"sample_rate" toml:"sample_rate" env:"SAMPLE_RATE"`
}

// RedisConfig configures the Redis export sink.
type RedisConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	Addr      string `yaml:"addr" toml:"addr" env:"ADDR"`
	Password  string `yaml:"password" toml:"password" env:"PASSWORD"`
	DB        int    `yaml:"db" toml:"db" env:"DB"`
	KeyPrefix string `yaml:"key_prefix" toml:"key_prefix" env:"KEY_PREFIX"`
	PoolSize  int    `yaml:"pool_size" toml:"pool_size" env:"POOL_SIZE"`
	TLS       bool   `yaml:"tls" toml:"tls" env:"TLS"`
}

// DatabaseConfig configures the SQL export sink.
type DatabaseConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled" env:"ENABLED"`
	// postgres, mysql, sqlite
	Driver   string `yaml:"driver" toml:"driver" env:"DRIVER"`
	Host     string `yaml:"host" toml:"host" env:"HOST"`
	Port     int    `yaml:"port" toml:"port" env:"PORT"`
	User     string `yaml:"user" toml:"user" env:"USER"`
	Password string `yaml:"password" toml:"password" env:"PASSWORD"`
	// Database name, or file path for sqlite
	Name            string        `yaml:"name" toml:"name" env:"NAME"`
	SSLMode         string        `yaml:"ssl_mode" toml:"ssl_mode" env:"SSL_MODE"`
	MaxOpenConns    int           `yaml:"max_open_conns" toml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" toml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" toml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"`
	// Create tables with gorm AutoMigrate; turn off when the schema is
	// managed with "nlpvocab migrate"
	AutoMigrate bool `yaml:"auto_migrate" toml:"auto_migrate" env:"AUTO_MIGRATE"`
}

// =============================================================================
// 🔧 Loader
// =============================================================================

// Loader builds a Config (builder style).
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader creates a loader with the NLPVOCAB env prefix.
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "NLPVOCAB",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath sets the config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator adds a validator run after loading.
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load loads the configuration.
// Priority: defaults → file → environment variables
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

// loadFromFile decodes the config file; TOML for .toml, YAML otherwise.
// A missing file leaves the defaults in place.
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(l.configPath), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

// setFieldsFromEnv walks struct fields recursively using their env tags.
func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		// comma-separated string slices
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// =============================================================================
// 🔍 Helpers
// =============================================================================

// LoadFromEnv loads defaults plus environment overrides.
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}

// Validate checks the configuration before any file is touched.
func (c *Config) Validate() error {
	var errs []string

	if c.Count.BatchSize <= 0 {
		errs = append(errs, "batch_size must be positive")
	}
	if c.Count.MinFreq <= 0 {
		errs = append(errs, "min_freq must be positive")
	}
	if c.Count.MaxSize < 0 {
		errs = append(errs, "max_size must not be negative")
	}
	if c.Count.Workers <= 0 {
		errs = append(errs, "workers must be positive")
	}
	if _, err := vocab.ParseFormat(c.Count.FileFormat); err != nil {
		errs = append(errs, fmt.Sprintf("invalid file_format %q", c.Count.FileFormat))
	}
	if _, err := corpus.ParseNormalization(c.Count.UnicodeNorm); err != nil {
		errs = append(errs, fmt.Sprintf("invalid unicode_norm %q", c.Count.UnicodeNorm))
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry sample_rate must be between 0 and 1")
	}
	if c.Database.Enabled && c.Database.DSN() == "" {
		errs = append(errs, fmt.Sprintf("unknown database driver %q", c.Database.Driver))
	}

	if len(errs) > 0 {
		return types.Errorf(types.ErrValidation, "config validation errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DSN returns the database connection string, or "" for an unknown driver.
func (d *DatabaseConfig) DSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
		)
	case "mysql":
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
			d.User, d.Password, d.Host, d.Port, d.Name,
		)
	case "sqlite":
		return d.Name
	default:
		return ""
	}
}
