package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpy/eventpy/internal/translate"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, "eventpy.json", `{
		"variant": "mz",
		"logLevel": "debug",
		"emit": { "indent": "    " },
		"report": { "enabled": true, "driver": "postgres", "dsn": "host=db" }
	}`)

	err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mz", viper.GetString("variant"))
	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "    ", viper.GetString("emit.indent"))

	rc, err := Report()
	require.NoError(t, err)
	assert.Equal(t, ReportConfig{Enabled: true, Driver: "postgres", Path: "./eventpy_report.db", DSN: "host=db"}, rc)
}

func TestLoad_YAML(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, "eventpy.yaml", "unknownPolicy: fail\ninflux:\n  enabled: true\n  bucket: runs\n")
	require.NoError(t, Load(path))

	assert.Equal(t, "fail", GetString("unknownPolicy"))
	ic, err := Influx()
	require.NoError(t, err)
	assert.True(t, ic.Enabled)
	assert.Equal(t, "runs", ic.Bucket)
	assert.Equal(t, "http://localhost:8086", ic.URL)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mv", viper.GetString("variant"))
	assert.Equal(t, "placeholder", viper.GetString("unknownPolicy"))
	assert.Equal(t, "abort", viper.GetString("failurePolicy"))
	assert.Equal(t, "\t", viper.GetString("emit.indent"))
	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./eventpylogs", viper.GetString("logsDir"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("report.enabled"))
	assert.Equal(t, "sqlite", viper.GetString("report.driver"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "eventpy", viper.GetString("influx.org"))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("EVENTPY_VARIANT", "mz")
	t.Setenv("EVENTPY_GRAYLOG_ENABLED", "true")

	require.NoError(t, Load(""))
	assert.Equal(t, "mz", GetString("variant"))
	assert.True(t, GetBool("graylog.enabled"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path/eventpy.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}

func TestNames(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, "eventpy.json", `{
		"names": {
			"switches": { "1": "door_open" },
			"commonEvents": { "4": "heal_party" }
		}
	}`)
	require.NoError(t, Load(path))

	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, "door_open", names.Name(translate.Switches, 1))
	assert.Equal(t, "game_switch_2", names.Name(translate.Switches, 2))
	assert.Equal(t, "heal_party", names.Name(translate.CommonEvents, 4))
	assert.Equal(t, "game_actor_1", names.Name(translate.Actors, 1))
}

func TestNames_Invalid(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := writeConfig(t, "eventpy.json", `{"names": {"variables": {"x": "gold"}}}`)
	require.NoError(t, Load(path))

	_, err := Names()
	require.Error(t, err)
}
