package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, ":3001", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "animal_tracker.db", cfg.DBPath)
	assert.Equal(t, "fs", cfg.Media.Driver)
	assert.Equal(t, "uploads", cfg.Media.FSRoot)
	assert.EqualValues(t, 50, cfg.Media.MaxUploadMB)
	assert.Equal(t, 5*time.Second, cfg.StatsCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromViper_PostgresRequiresDSN(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "Postgres")

	_, err := fromViper(v)
	require.Error(t, err)

	v.Set("DB_DSN", "postgres://localhost/husbandry")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
}

func TestFromViper_UnknownDriver(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STATS_CACHE_TTL", "250ms")
	t.Setenv("MEDIA_S3_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.StatsCacheTTL)
	assert.True(t, cfg.Media.S3PathStyle)
}

func TestFromViper_MediaS3RequiresBucket(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("MEDIA_DRIVER", "S3")

	_, err := fromViper(v)
	require.Error(t, err)

	v.Set("MEDIA_S3_BUCKET", "husbandry-images")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, MediaS3, cfg.Media.Driver)
	assert.Equal(t, "husbandry-images", cfg.Media.S3Bucket)
}
