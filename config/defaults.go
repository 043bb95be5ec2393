// =============================================================================
// 📦 nlpvocab default configuration
// =============================================================================
package config

import (
	"runtime"
	"time"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Count:     DefaultCountConfig(),
		Log:       DefaultLogConfig(),
		Metrics:   DefaultMetricsConfig(),
		Telemetry: DefaultTelemetryConfig(),
		Redis:     DefaultRedisConfig(),
		Database:  DefaultDatabaseConfig(),
	}
}

// DefaultCountConfig returns the default counting settings.
func DefaultCountConfig() CountConfig {
	return CountConfig{
		BatchSize:   100,
		MinFreq:     1,
		MaxSize:     0,
		FileFormat:  "TSV_WITH_HEADERS",
		UnicodeNorm: "NONE",
		LowerCase:   false,
		Workers:     runtime.NumCPU(),
		BPEEncoding: "cl100k_base",
	}
}

// DefaultLogConfig logs to stderr so stdout stays free for command output.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		EnableCaller:     false,
		EnableStacktrace: false,
	}
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "nlpvocab",
	}
}

func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4317",
		ServiceName:  "nlpvocab",
		SampleRate:   1.0,
	}
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:   false,
		Addr:      "localhost:6379",
		DB:        0,
		KeyPrefix: "nlpvocab",
		PoolSize:  10,
	}
}

func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Enabled:         false,
		Driver:          "sqlite",
		Host:            "localhost",
		Port:            5432,
		User:            "nlpvocab",
		Name:            "nlpvocab.db",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		AutoMigrate:     true,
	}
}
