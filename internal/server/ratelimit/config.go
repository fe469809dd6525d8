package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultLimit           = 600
	defaultWindow          = time.Minute
	defaultCleanupInterval = 5 * time.Minute
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches by prefix
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig reads rate limiting settings from ATS_RATE_LIMIT_* environment
// variables:
//
//	ATS_RATE_LIMIT_ENABLED           (default true)
//	ATS_RATE_LIMIT_DEFAULT_LIMIT     (default 600)
//	ATS_RATE_LIMIT_DEFAULT_WINDOW    (default 1m)
//	ATS_RATE_LIMIT_CLEANUP_INTERVAL  (default 5m)
//	ATS_RATE_LIMIT_WHITELIST         comma-separated IPs
//	ATS_RATE_LIMIT_BLACKLIST         comma-separated IPs
func LoadConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("ATS")
	v.AutomaticEnv()
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_default_limit", defaultLimit)
	v.SetDefault("rate_limit_default_window", defaultWindow)
	v.SetDefault("rate_limit_cleanup_interval", defaultCleanupInterval)

	if !v.GetBool("rate_limit_enabled") {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    v.GetInt("rate_limit_default_limit"),
		DefaultWindow:   v.GetDuration("rate_limit_default_window"),
		CleanupInterval: v.GetDuration("rate_limit_cleanup_interval"),
		Whitelist:       parseIPList(v.GetString("rate_limit_whitelist")),
		Blacklist:       parseIPList(v.GetString("rate_limit_blacklist")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Uploads decode PDF and DOCX files
		{Path: "/scan/upload", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		// Scans may fetch a job posting URL
		{Path: "/scan", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/extract", Method: "POST", Limit: 300, Window: time.Minute, Burst: 50},
		// Reads fall back to the default limit; GET /health is unlimited
	}
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
