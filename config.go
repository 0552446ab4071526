package relay

import (
	"net/url"
	"time"

	"github.com/xy-planning-network/relay/logger"
)

const (
	BaseURLEnvVar         = "BASE_URL"
	ChunkSizeEnvVar       = "STREAM_CHUNK_SIZE"
	DownloadRateEnvVar    = "DOWNLOAD_RATE_LIMIT"
	ETagStrategyEnvVar    = "ETAG_STRATEGY"
	EnvironmentEnvVar     = "ENVIRONMENT"
	FileRootEnvVar        = "FILE_ROOT"
	LogLevelEnvVar        = "LOG_LEVEL"
	MetadataTTLEnvVar     = "METADATA_CACHE_TTL"
	PortEnvVar            = "PORT"
	RedisURLEnvVar        = "REDIS_URL"
	SentryDsnEnvVar       = "SENTRY_DSN"
	ShutdownTimeoutEnvVar = "SHUTDOWN_TIMEOUT"

	DefaultBaseURL         = "http://localhost:3000"
	DefaultChunkSize       = 8 << 10
	DefaultETagStrategy    = "content"
	DefaultFileRoot        = "."
	DefaultLogLevel        = logger.LogLevelInfo
	DefaultMetadataTTL     = 10 * time.Minute
	DefaultPort            = ":3000"
	DefaultShutdownTimeout = 5 * time.Second
)

// A Config gathers the settings a relay app reads from its environment.
type Config struct {
	BaseURL         *url.URL
	ChunkSize       int
	DownloadRate    int
	ETagStrategy    string
	Env             Environment
	FileRoot        string
	LogLevel        logger.LogLevel
	MetadataTTL     time.Duration
	Port            string
	RedisURL        string
	SentryDsn       string
	ShutdownTimeout time.Duration
}

// NewConfig reads a Config from environment variables,
// falling back to defaults for anything unset or unparsable.
//
// DOWNLOAD_RATE_LIMIT is in bytes per second; zero disables throttling.
func NewConfig() Config {
	cfg := Config{
		BaseURL:         EnvVarOrURL(BaseURLEnvVar, DefaultBaseURL),
		ChunkSize:       EnvVarOrInt(ChunkSizeEnvVar, DefaultChunkSize),
		DownloadRate:    EnvVarOrInt(DownloadRateEnvVar, 0),
		ETagStrategy:    EnvVarOrString(ETagStrategyEnvVar, DefaultETagStrategy),
		Env:             EnvVarOrEnv(EnvironmentEnvVar, Development),
		FileRoot:        EnvVarOrString(FileRootEnvVar, DefaultFileRoot),
		LogLevel:        EnvVarOrLogLevel(LogLevelEnvVar, DefaultLogLevel),
		MetadataTTL:     EnvVarOrDuration(MetadataTTLEnvVar, DefaultMetadataTTL),
		Port:            EnvVarOrString(PortEnvVar, DefaultPort),
		RedisURL:        EnvVarOrString(RedisURLEnvVar, ""),
		SentryDsn:       EnvVarOrString(SentryDsnEnvVar, ""),
		ShutdownTimeout: EnvVarOrDuration(ShutdownTimeoutEnvVar, DefaultShutdownTimeout),
	}

	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}

	if cfg.DownloadRate < 0 {
		cfg.DownloadRate = 0
	}

	return cfg
}
