package warehouse

// BuilderOption applies a configuration option to the QueryBuilder.
type BuilderOption func(*QueryBuilder)

// WithSkillsTable overrides the skills summary table location.
func WithSkillsTable(table string) BuilderOption {
	return func(b *QueryBuilder) {
		if table != "" {
			b.skillsTable = table
		}
	}
}

// WithOpportunityTable overrides the opportunity table location.
func WithOpportunityTable(table string) BuilderOption {
	return func(b *QueryBuilder) {
		if table != "" {
			b.opportunityTable = table
		}
	}
}

// WithAccountTable overrides the account table location.
func WithAccountTable(table string) BuilderOption {
	return func(b *QueryBuilder) {
		if table != "" {
			b.accountTable = table
		}
	}
}

// WithFallbackLimit caps the simplified search result count.
func WithFallbackLimit(n int) BuilderOption {
	return func(b *QueryBuilder) {
		if n > 0 {
			b.fallbackLimit = n
		}
	}
}

// WithWindowYears sets the opportunity recency window in years.
func WithWindowYears(n int) BuilderOption {
	return func(b *QueryBuilder) {
		if n > 0 {
			b.windowYears = n
		}
	}
}

// WithIndustriesLimit caps the top-industries list length.
func WithIndustriesLimit(n int) BuilderOption {
	return func(b *QueryBuilder) {
		if n > 0 {
			b.industriesLimit = n
		}
	}
}
