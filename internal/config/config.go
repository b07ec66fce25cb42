package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inorbyt/chain-sync/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug       bool   `mapstructure:"debug"`
	SentryDSN   string `mapstructure:"sentry_dsn"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
	// EnsureStream creates or updates the stream on startup
	EnsureStream bool `mapstructure:"ensure_stream"`
}

// EthereumConfig holds Ethereum-specific configuration
type EthereumConfig struct {
	WebSocketURL string       `mapstructure:"websocket_url"`
	RPCURL       string       `mapstructure:"rpc_url"`
	ChainID      domain.Chain `mapstructure:"chain_id"`
	StartBlock   uint64       `mapstructure:"start_block"`
	// CursorFlushBlocks persists the block cursor after this many blocks
	CursorFlushBlocks uint64 `mapstructure:"cursor_flush_blocks"`
	// CursorFlushInterval persists the block cursor at least this often
	CursorFlushInterval time.Duration `mapstructure:"cursor_flush_interval"`
	// ContractRefreshInterval reloads the deployed contract set
	ContractRefreshInterval time.Duration `mapstructure:"contract_refresh_interval"`
	// BackfillBatchBlocks bounds the block range of one FilterLogs call when catching up
	BackfillBatchBlocks uint64 `mapstructure:"backfill_batch_blocks"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// CORSAllowedOrigins restricts cross-origin callers. Empty allows every origin.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// IngestorConfig holds event ingestion configuration
type IngestorConfig struct {
	WorkerPoolSize    int `mapstructure:"worker_pool_size"`
	RecoveryBatchSize int `mapstructure:"recovery_batch_size"`
	// MaxAttempts stops recovery of an event after this many failures. 0 retries forever.
	MaxAttempts int `mapstructure:"max_attempts"`
}

// NotificationsConfig holds notification delivery configuration
type NotificationsConfig struct {
	// Publish enables publishing stored notifications to NATS
	Publish        bool          `mapstructure:"publish"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	PublishWorkers int           `mapstructure:"publish_workers"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the API rate limiter configuration
type RateLimitConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	RequestsPerSecond int    `mapstructure:"requests_per_second"`
	Burst             int    `mapstructure:"burst"`
	RedisKeyPrefix    string `mapstructure:"redis_key_prefix"`
	// EnableLocalFallback limits in-process while Redis is unreachable
	EnableLocalFallback bool `mapstructure:"enable_local_fallback"`
	// LocalFallbackMultiplier scales the local rate, since every replica limits on its own
	LocalFallbackMultiplier float64 `mapstructure:"local_fallback_multiplier"`
}

// RecoverySweeperConfig holds configuration for the failed event recovery sweeper
type RecoverySweeperConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

// StatsReconcileSweeperConfig holds configuration for the token stats reconcile sweeper
type StatsReconcileSweeperConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Worker   WorkerConfig  `mapstructure:"worker"`
}

// EthereumEmitterConfig holds configuration for ethereum-event-emitter
type EthereumEmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
}

// EventBridgeConfig holds configuration for event-bridge
type EventBridgeConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Database      DatabaseConfig      `mapstructure:"database"`
	NATS          NATSConfig          `mapstructure:"nats"`
	Worker        WorkerConfig        `mapstructure:"worker"`
	Ingestor      IngestorConfig      `mapstructure:"ingestor"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig            `mapstructure:",squash"`
	Server                ServerConfig        `mapstructure:"server"`
	Database              DatabaseConfig      `mapstructure:"database"`
	NATS                  NATSConfig          `mapstructure:"nats"`
	Auth                  AuthConfig          `mapstructure:"auth"`
	Ingestor              IngestorConfig      `mapstructure:"ingestor"`
	Notifications         NotificationsConfig `mapstructure:"notifications"`
	Redis                 RedisConfig         `mapstructure:"redis"`
	RateLimit             RateLimitConfig     `mapstructure:"rate_limit"`
	Ethereum              EthereumConfig      `mapstructure:"ethereum"`
	PlatformWalletAddress string              `mapstructure:"platform_wallet_address"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig            `mapstructure:",squash"`
	Database              DatabaseConfig              `mapstructure:"database"`
	NATS                  NATSConfig                  `mapstructure:"nats"`
	Ingestor              IngestorConfig              `mapstructure:"ingestor"`
	Notifications         NotificationsConfig         `mapstructure:"notifications"`
	RecoverySweeper       RecoverySweeperConfig       `mapstructure:"recovery_sweeper"`
	StatsReconcileSweeper StatsReconcileSweeperConfig `mapstructure:"stats_reconcile_sweeper"`
}

// CLIConfig holds configuration for the syncctl admin tool
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ingestor   IngestorConfig `mapstructure:"ingestor"`
}

// LoadEthereumEmitterConfig loads configuration for ethereum-event-emitter
func LoadEthereumEmitterConfig(configFile string, envPath string) (*EthereumEmitterConfig, error) {
	v := configureViper("ethereum-event-emitter", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.ensure_stream", true)
	v.SetDefault("ethereum.chain_id", string(domain.ChainBaseMainnet))
	v.SetDefault("ethereum.cursor_flush_blocks", 50)
	v.SetDefault("ethereum.cursor_flush_interval", "30s")
	v.SetDefault("ethereum.contract_refresh_interval", "1m")
	v.SetDefault("ethereum.backfill_batch_blocks", 2000)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EthereumEmitterConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Ethereum.WebSocketURL == "" {
		return nil, errors.New("ethereum.websocket_url is required")
	}
	if !domain.IsValidChain(config.Ethereum.ChainID) {
		return nil, fmt.Errorf("unsupported ethereum.chain_id %q", config.Ethereum.ChainID)
	}

	return &config, nil
}

// LoadEventBridgeConfig loads configuration for event-bridge
func LoadEventBridgeConfig(configFile string, envPath string) (*EventBridgeConfig, error) {
	v := configureViper("event-bridge", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setIngestorDefaults(v)
	setNotificationDefaults(v)
	v.SetDefault("nats.consumer_name", "event-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 5)
	v.SetDefault("worker.pool_size", 20)
	v.SetDefault("worker.queue_size", 2048)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config EventBridgeConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setIngestorDefaults(v)
	setNotificationDefaults(v)
	v.SetDefault("ethereum.chain_id", string(domain.ChainBaseMainnet))
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.redis_key_prefix", "chain-sync:api:limiter:")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.PlatformWalletAddress != "" && !domain.IsValidAddress(config.PlatformWalletAddress) {
		return nil, fmt.Errorf("invalid platform_wallet_address %q", config.PlatformWalletAddress)
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setIngestorDefaults(v)
	setNotificationDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("recovery_sweeper.enabled", true)
	v.SetDefault("recovery_sweeper.interval", "1m")
	v.SetDefault("stats_reconcile_sweeper.enabled", true)
	v.SetDefault("stats_reconcile_sweeper.interval", "15m")
	v.SetDefault("stats_reconcile_sweeper.worker.pool_size", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// LoadCLIConfig loads configuration for syncctl
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("syncctl", configFile, envPath)

	setDatabaseDefaults(v)
	setIngestorDefaults(v)
	v.SetDefault("database.max_open_conns", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "CHAIN_EVENTS")
}

func setIngestorDefaults(v *viper.Viper) {
	v.SetDefault("ingestor.worker_pool_size", 8)
	v.SetDefault("ingestor.recovery_batch_size", domain.RECOVERY_BATCH_SIZE)
	v.SetDefault("ingestor.max_attempts", 0)
}

func setNotificationDefaults(v *viper.Viper) {
	v.SetDefault("notifications.publish", false)
	v.SetDefault("notifications.subject_prefix", "notifications")
	v.SetDefault("notifications.publish_workers", 4)
	v.SetDefault("notifications.publish_timeout", "10s")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("CHAIN_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		"environment",
		"platform_wallet_address",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.ensure_stream",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.start_block",
		"ethereum.cursor_flush_blocks",
		"ethereum.cursor_flush_interval",
		"ethereum.contract_refresh_interval",
		"ethereum.backfill_batch_blocks",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Ingestor
		"ingestor.worker_pool_size",
		"ingestor.recovery_batch_size",
		"ingestor.max_attempts",
		// Notifications
		"notifications.publish",
		"notifications.subject_prefix",
		"notifications.publish_workers",
		"notifications.publish_timeout",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.redis_key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		// Sweepers
		"recovery_sweeper.enabled",
		"recovery_sweeper.interval",
		"stats_reconcile_sweeper.enabled",
		"stats_reconcile_sweeper.interval",
		"stats_reconcile_sweeper.worker.pool_size",
		"stats_reconcile_sweeper.worker.queue_size",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
