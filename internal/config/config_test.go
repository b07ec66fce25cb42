package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	if content == "" {
		return filepath.Join(tmpDir, "nonexistent.yaml")
	}
	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	return configFile
}

func TestLoadEthereumEmitterConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *EthereumEmitterConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
  connection_name: "test-connection"
ethereum:
  websocket_url: "ws://localhost:8545"
  rpc_url: "http://localhost:8545"
  chain_id: "eip155:84532"
  start_block: 1000
  cursor_flush_blocks: 10
  cursor_flush_interval: "5s"
`,
			validate: func(t *testing.T, cfg *EthereumEmitterConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "ws://localhost:8545", cfg.Ethereum.WebSocketURL)
				assert.Equal(t, "eip155:84532", string(cfg.Ethereum.ChainID))
				assert.Equal(t, uint64(1000), cfg.Ethereum.StartBlock)
				assert.Equal(t, uint64(10), cfg.Ethereum.CursorFlushBlocks)
				assert.Equal(t, 5*time.Second, cfg.Ethereum.CursorFlushInterval)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
ethereum:
  websocket_url: "ws://localhost:8545"
`,
			validate: func(t *testing.T, cfg *EthereumEmitterConfig) {
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "CHAIN_EVENTS", cfg.NATS.StreamName)
				assert.True(t, cfg.NATS.EnsureStream)
				assert.Equal(t, "eip155:8453", string(cfg.Ethereum.ChainID))
				assert.Equal(t, uint64(50), cfg.Ethereum.CursorFlushBlocks)
				assert.Equal(t, 30*time.Second, cfg.Ethereum.CursorFlushInterval)
				assert.Equal(t, time.Minute, cfg.Ethereum.ContractRefreshInterval)
				assert.Equal(t, uint64(2000), cfg.Ethereum.BackfillBatchBlocks)
			},
		},
		{
			name: "missing websocket url",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
		},
		{
			name: "unsupported chain",
			configFile: `
ethereum:
  websocket_url: "ws://localhost:8545"
  chain_id: "eip155:137"
`,
			expectError: true,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadEthereumEmitterConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadEventBridgeConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *EventBridgeConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: db
  dbname: chain_sync
nats:
  url: "nats://nats:4222"
  consumer_name: "bridge-1"
  ack_wait: "1m"
  max_deliver: 10
ingestor:
  worker_pool_size: 16
  max_attempts: 7
notifications:
  publish: true
  subject_prefix: "inbox"
  publish_timeout: "3s"
worker:
  pool_size: 8
`,
			validate: func(t *testing.T, cfg *EventBridgeConfig) {
				assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
				assert.Equal(t, "bridge-1", cfg.NATS.ConsumerName)
				assert.Equal(t, time.Minute, cfg.NATS.AckWait)
				assert.Equal(t, 10, cfg.NATS.MaxDeliver)
				assert.Equal(t, 16, cfg.Ingestor.WorkerPoolSize)
				assert.Equal(t, 7, cfg.Ingestor.MaxAttempts)
				assert.True(t, cfg.Notifications.Publish)
				assert.Equal(t, "inbox", cfg.Notifications.SubjectPrefix)
				assert.Equal(t, 3*time.Second, cfg.Notifications.PublishTimeout)
				assert.Equal(t, 8, cfg.Worker.WorkerPoolSize)
			},
		},
		{
			name:       "defaults without config file",
			configFile: "",
			validate: func(t *testing.T, cfg *EventBridgeConfig) {
				assert.Equal(t, "event-bridge", cfg.NATS.ConsumerName)
				assert.Equal(t, 30*time.Second, cfg.NATS.AckWait)
				assert.Equal(t, 5, cfg.NATS.MaxDeliver)
				assert.Equal(t, 8, cfg.Ingestor.WorkerPoolSize)
				assert.Equal(t, 100, cfg.Ingestor.RecoveryBatchSize)
				assert.Equal(t, 0, cfg.Ingestor.MaxAttempts)
				assert.False(t, cfg.Notifications.Publish)
				assert.Equal(t, "notifications", cfg.Notifications.SubjectPrefix)
				assert.Equal(t, 4, cfg.Notifications.PublishWorkers)
				assert.Equal(t, 20, cfg.Worker.WorkerPoolSize)
				assert.Equal(t, 2048, cfg.Worker.WorkerQueueSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadEventBridgeConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
server:
  host: 127.0.0.1
  port: 9000
auth:
  jwt_public_key: "-----BEGIN PUBLIC KEY-----"
  api_keys:
    - key-1
    - key-2
redis:
  addr: "redis:6379"
  db: 2
rate_limit:
  enabled: true
  requests_per_second: 5
  burst: 10
platform_wallet_address: "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
				assert.Equal(t, "redis:6379", cfg.Redis.Addr)
				assert.Equal(t, 2, cfg.Redis.DB)
				assert.True(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 5, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 10, cfg.RateLimit.Burst)
				assert.Equal(t, "0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb0", cfg.PlatformWalletAddress)
			},
		},
		{
			name:       "defaults",
			configFile: "",
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, "eip155:8453", string(cfg.Ethereum.ChainID))
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.False(t, cfg.RateLimit.Enabled)
				assert.Equal(t, 20, cfg.RateLimit.RequestsPerSecond)
				assert.Equal(t, 40, cfg.RateLimit.Burst)
				assert.Equal(t, "chain-sync:api:limiter:", cfg.RateLimit.RedisKeyPrefix)
				assert.True(t, cfg.RateLimit.EnableLocalFallback)
				assert.InDelta(t, 0.5, cfg.RateLimit.LocalFallbackMultiplier, 0.0001)
			},
		},
		{
			name: "invalid platform wallet",
			configFile: `
platform_wallet_address: "0x1234"
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), "")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSweeperConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadSweeperConfig(writeConfig(t, `
database:
  host: localhost
  dbname: chain_sync
`), "")
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.Database.MaxOpenConns)
		assert.Equal(t, 2, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxIdleTime)
		assert.True(t, cfg.RecoverySweeper.Enabled)
		assert.Equal(t, time.Minute, cfg.RecoverySweeper.Interval)
		assert.True(t, cfg.StatsReconcileSweeper.Enabled)
		assert.Equal(t, 15*time.Minute, cfg.StatsReconcileSweeper.Interval)
		assert.Equal(t, 4, cfg.StatsReconcileSweeper.Worker.WorkerPoolSize)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := LoadSweeperConfig(writeConfig(t, `
database:
  host: localhost
  dbname: chain_sync
recovery_sweeper:
  interval: "10s"
stats_reconcile_sweeper:
  enabled: false
ingestor:
  max_attempts: 3
`), "")
		require.NoError(t, err)

		assert.Equal(t, 10*time.Second, cfg.RecoverySweeper.Interval)
		assert.False(t, cfg.StatsReconcileSweeper.Enabled)
		assert.Equal(t, 3, cfg.Ingestor.MaxAttempts)
	})

	t.Run("missing database host", func(t *testing.T) {
		_, err := LoadSweeperConfig(writeConfig(t, `
database:
  dbname: chain_sync
`), "")
		assert.ErrorContains(t, err, "database.host is required")
	})

	t.Run("missing database name", func(t *testing.T) {
		_, err := LoadSweeperConfig(writeConfig(t, `
database:
  host: localhost
`), "")
		assert.ErrorContains(t, err, "database.dbname is required")
	})
}

func TestLoadCLIConfig(t *testing.T) {
	cfg, err := LoadCLIConfig(writeConfig(t, `
database:
  host: localhost
  dbname: chain_sync
ingestor:
  recovery_batch_size: 500
`), "")
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 500, cfg.Ingestor.RecoveryBatchSize)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "complete config",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "testpass",
				DBName:   "testdb",
				SSLMode:  "require",
			},
			expected: "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=require",
		},
		{
			name: "with special characters in password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "testuser",
				Password: "p@ssw0rd!",
				DBName:   "testdb",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	// godotenv.Overload sets process variables, restore them afterwards
	keys := []string{
		"CHAIN_SYNC_DEBUG",
		"CHAIN_SYNC_DATABASE_HOST",
		"CHAIN_SYNC_DATABASE_PORT",
		"CHAIN_SYNC_DATABASE_DBNAME",
		"CHAIN_SYNC_RATE_LIMIT_ENABLED",
		"CHAIN_SYNC_AUTH_API_KEYS",
	}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	envContent := `CHAIN_SYNC_DEBUG=true
CHAIN_SYNC_DATABASE_HOST=env-host
CHAIN_SYNC_DATABASE_PORT=6543
CHAIN_SYNC_DATABASE_DBNAME=env-db
CHAIN_SYNC_RATE_LIMIT_ENABLED=true
CHAIN_SYNC_AUTH_API_KEYS=alpha,beta
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))

	configPath := writeConfig(t, `
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
rate_limit:
  enabled: false
`)

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "env-db", cfg.Database.DBName)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Auth.APIKeys)
}
