package config

import "time"

// Config holds runtime settings for the field agent CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the campaign backend HTTP API.
//   - QueueDBPath: path of the local offline queue database file.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - VerifyTimeout: per-call deadline for root PIN verification.
type Config struct {
	ServerBaseURL       string
	QueueDBPath         string
	OnlineCheckInterval time.Duration
	VerifyTimeout       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.QueueDBPath = "agent_outbox.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.VerifyTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
