// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// WarehouseDSN is the warehouse connection string.
	WarehouseDSN string `koanf:"warehouse_dsn"`

	// SkillsTable locates the skills summary projection.
	SkillsTable string `koanf:"skills_table"`

	// OpportunityTable locates the opportunity table.
	OpportunityTable string `koanf:"opportunity_table"`

	// AccountTable locates the account table joined for industries.
	AccountTable string `koanf:"account_table"`

	// SearchCacheTTLSeconds bounds how long search results are memoized.
	SearchCacheTTLSeconds int `koanf:"search_cache_ttl_seconds"`

	// RosterCacheTTLSeconds bounds how long the directory roster and the
	// industry list are memoized.
	RosterCacheTTLSeconds int `koanf:"roster_cache_ttl_seconds"`

	// CacheMaxEntries caps each memoization cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`

	// FallbackLimit caps the simplified search result count.
	FallbackLimit int `koanf:"fallback_limit"`

	// WindowYears sets the opportunity recency window in years.
	WindowYears int `koanf:"window_years"`

	// IndustriesLimit caps the top-industries list length.
	IndustriesLimit int `koanf:"industries_limit"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:              "info",
		Addr:                  ":9080",
		WarehouseDSN:          "",
		SkillsTable:           "sales.se_reporting.freestyle_summary",
		OpportunityTable:      "fivetran.salesforce.opportunity",
		AccountTable:          "fivetran.salesforce.account",
		SearchCacheTTLSeconds: 300,
		RosterCacheTTLSeconds: 600,
		CacheMaxEntries:       256,
		FallbackLimit:         1000,
		WindowYears:           3,
		IndustriesLimit:       50,
	}
	return c
}
