package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/eventpy/eventpy/internal/translate"
)

// ReportConfig holds the run report store settings
type ReportConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Driver  string `json:"driver" mapstructure:"driver"`
	Path    string `json:"path" mapstructure:"path"`
	DSN     string `json:"dsn" mapstructure:"dsn"`
}

// InfluxConfig holds the run statistics push settings
type InfluxConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	URL     string `json:"url" mapstructure:"url"`
	Token   string `json:"token" mapstructure:"token"`
	Org     string `json:"org" mapstructure:"org"`
	Bucket  string `json:"bucket" mapstructure:"bucket"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("variant", "mv")
	viper.SetDefault("unknownPolicy", "placeholder")
	viper.SetDefault("failurePolicy", "abort")
	viper.SetDefault("emit.indent", "\t")

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./eventpylogs")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("report.enabled", false)
	viper.SetDefault("report.driver", "sqlite")
	viper.SetDefault("report.path", "./eventpy_report.db")
	viper.SetDefault("report.dsn", "")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.url", "http://localhost:8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "eventpy")
	viper.SetDefault("influx.bucket", "eventpy")
}

// Load sets default values, then reads the config file at path if one is
// given. The file type follows the extension (json, yaml, toml).
// Environment variables prefixed with EVENTPY_ override both.
func Load(path string) error {
	SetDefaults()

	viper.SetEnvPrefix("eventpy")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path == "" {
		return nil
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Report returns the report store settings.
func Report() (ReportConfig, error) {
	var c ReportConfig
	if err := viper.UnmarshalKey("report", &c); err != nil {
		return c, fmt.Errorf("error decoding report config: %w", err)
	}
	return c, nil
}

// Influx returns the statistics push settings.
func Influx() (InfluxConfig, error) {
	var c InfluxConfig
	if err := viper.UnmarshalKey("influx", &c); err != nil {
		return c, fmt.Errorf("error decoding influx config: %w", err)
	}
	return c, nil
}

// Names builds the identifier tables from the names.<category> keys.
// Categories without a table use generated names.
func Names() (*translate.Names, error) {
	tables := make(map[translate.Category]map[string]string)
	for _, cat := range translate.Categories() {
		key := "names." + string(cat)
		if !viper.IsSet(key) {
			continue
		}
		tables[cat] = viper.GetStringMapString(key)
	}
	return translate.NewNames(tables)
}
