package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, StoreSQLite, conf.Store)
	assert.Equal(t, "eventx.db", conf.SQLitePath)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Empty(t, conf.LogFormat)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("EVENTX_STORE", "memory")
	t.Setenv("EVENTX_KEY_PREFIX", "app1:")
	t.Setenv("EVENTX_LOG_LEVEL", "debug")
	t.Setenv("EVENTX_LOG_FORMAT", "json")
	conf, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, StoreMemory, conf.Store)
	assert.Equal(t, "app1:", conf.KeyPrefix)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "json", conf.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("EVENTX_STORE", "redis")
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Store: StoreSQLite, SQLitePath: "a.db", LogLevel: "info"}
	assert.NoError(t, valid.Validate())

	noPath := valid
	noPath.SQLitePath = " "
	assert.ErrorIs(t, noPath.Validate(), ErrInvalidConfig)

	badLevel := valid
	badLevel.LogLevel = "chatty"
	assert.ErrorIs(t, badLevel.Validate(), ErrInvalidConfig)

	badFormat := valid
	badFormat.LogFormat = "xml"
	assert.ErrorIs(t, badFormat.Validate(), ErrInvalidConfig)

	globPrefix := valid
	globPrefix.KeyPrefix = "a?:"
	assert.ErrorIs(t, globPrefix.Validate(), ErrInvalidConfig)
}
