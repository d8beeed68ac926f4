package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir mirrors testing.T.Chdir (Go 1.24+): it changes the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, ":8080", cfg.App.Addr())
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 12, cfg.Password.BcryptCost)
	assert.Equal(t, "hiretrack:mail", cfg.Redis.QueueName)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, time.UTC, cfg.Export.Location())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("EXPORT_TIMEZONE", "Asia/Kolkata")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "Asia/Kolkata", cfg.Export.Location().String())
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown storage driver", map[string]string{"STORAGE_DRIVER": "ftp"}},
		{"s3 without bucket", map[string]string{"STORAGE_DRIVER": "s3"}},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", Name: "ht", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/ht?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.DSN())
}
