package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[app]
environment = "production"

[server]
http_port = 8084

[database]
host = "localhost"
port = 5436
user = "postgres"
password = "postgres"
dbname = "smc_availabilityservice"
max_open_conns = 10
max_idle_conns = 2

[logs]
level = "debug"

[metrics]
enabled = true

[tenant_service]
url = "http://localhost:8081"
timeout = 3

[rate_limit]
enabled = true
backend = "memory"
requests = 20
window = 10
trust_forwarded_for = true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"TENANT_SERVICE_URL", "REDIS_ADDR", "REDIS_PASSWORD",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "SMC-AvailabilityService", cfg.App.Name)
	assert.Equal(t, 8084, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 5436, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 300, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "availability_service", cfg.Metrics.ServiceName)
	assert.Equal(t, 3, cfg.TenantService.Timeout)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.True(t, cfg.RateLimit.TrustForwardedFor)
	assert.Equal(t, float64(1), cfg.Tracing.SampleRatio)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("TENANT_SERVICE_URL", "http://tenant-service:80")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "http://tenant-service:80", cfg.TenantService.URL)
	assert.Equal(t, "warn", cfg.Logs.Level)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "abc")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown log level", func(c *Config) { c.Logs.Level = "trace" }},
		{"redis backend without addr", func(c *Config) { c.RateLimit.Backend = "redis" }},
		{"unknown backend", func(c *Config) { c.RateLimit.Backend = "memcached" }},
		{"tracing without endpoint", func(c *Config) { c.Tracing.Enabled = true }},
		{"idle above open", func(c *Config) { c.Database.MaxIdleConns = 100 }},
		{"missing tenant service", func(c *Config) { c.TenantService.URL = "" }},
		{"bad environment", func(c *Config) { c.App.Environment = "staging" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, sampleConfig))
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 1, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", d.DSN())
}
