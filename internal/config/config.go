package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	IPFS     IPFSConfig     `yaml:"ipfs"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Vault    VaultConfig    `yaml:"vault"`
	Mirror   MirrorConfig   `yaml:"mirror"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// AuthRateLimit caps register/login attempts per IP per minute.
	AuthRateLimit int `yaml:"auth_rate_limit" env:"SERVER_AUTH_RATE_LIMIT" env-default:"30"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token settings for the identity boundary.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"docuchain"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// IPFSConfig holds content network client settings.
type IPFSConfig struct {
	Endpoint      string        `yaml:"endpoint"       env:"IPFS_ENDPOINT"       env-default:"http://127.0.0.1:5001"`
	ProjectID     string        `yaml:"project_id"     env:"IPFS_PROJECT_ID"`
	ProjectSecret string        `yaml:"project_secret" env:"IPFS_PROJECT_SECRET"`
	Timeout       time.Duration `yaml:"timeout"        env:"IPFS_TIMEOUT"        env-default:"30s"`
}

// LedgerConfig holds relay gateway settings for the document registry
// contract. The relay confirms transactions asynchronously; Timeout bounds
// how long a single mirror call may wait for a receipt.
type LedgerConfig struct {
	RelayURL        string        `yaml:"relay_url"        env:"LEDGER_RELAY_URL"        env-default:"http://127.0.0.1:8090"`
	ContractAddress string        `yaml:"contract_address" env:"LEDGER_CONTRACT_ADDRESS"`
	Timeout         time.Duration `yaml:"timeout"          env:"LEDGER_TIMEOUT"          env-default:"15s"`
}

// VaultConfig holds document service tunables.
type VaultConfig struct {
	MaxUploadBytes  int64 `yaml:"max_upload_bytes"  env:"VAULT_MAX_UPLOAD_BYTES"  env-default:"26214400"`
	PublicPageSize  int   `yaml:"public_page_size"  env:"VAULT_PUBLIC_PAGE_SIZE"  env-default:"10"`
	ActivityPageMax int   `yaml:"activity_page_max" env:"VAULT_ACTIVITY_PAGE_MAX" env-default:"200"`
}

// MirrorConfig holds reconciliation worker settings for failed ledger writes.
type MirrorConfig struct {
	Enabled      bool          `yaml:"enabled"       env:"MIRROR_ENABLED"       env-default:"true"`
	PollInterval time.Duration `yaml:"poll_interval" env:"MIRROR_POLL_INTERVAL" env-default:"30s"`
	MaxAttempts  int           `yaml:"max_attempts"  env:"MIRROR_MAX_ATTEMPTS"  env-default:"8"`
	BatchSize    int           `yaml:"batch_size"    env:"MIRROR_BATCH_SIZE"    env-default:"20"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
