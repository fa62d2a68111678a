package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/sitereg/internal/flagx"
	"github.com/dmitrijs2005/sitereg/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	AdminEmail     string         `json:"admin_email"`
	WeekStart      string         `json:"week_start"`

	HealthCheckInterval timex.Duration `json:"health_check_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys absent from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AdminEmail != "" {
		cfg.AdminEmail = jc.AdminEmail
	}
	if jc.WeekStart != "" {
		cfg.WeekStart = jc.WeekStart
	}
	if jc.HealthCheckInterval.Duration != 0 {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
}
