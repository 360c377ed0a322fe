// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BriFlake/expert-finder/internal/adapters/warehouse"
	"github.com/BriFlake/expert-finder/internal/domain/aggregate"
	"github.com/BriFlake/expert-finder/internal/domain/arrayfield"
	"github.com/BriFlake/expert-finder/internal/domain/extract"
	"github.com/BriFlake/expert-finder/internal/domain/memo"
	"github.com/BriFlake/expert-finder/internal/domain/model"
	"github.com/BriFlake/expert-finder/pkg/logger"
	"github.com/BriFlake/expert-finder/pkg/metrics"
)

// User-visible degradation notices. The dashboard shows these verbatim, so
// they stay free of internals.
const (
	noticeFallback      = "Showing broader matches; the detailed search was unavailable."
	noticeNoOpportunity = "Opportunity history is temporarily unavailable; scores reflect skills only."
	noticeSearchFailed  = "Search is temporarily unavailable. Please try again shortly."
)

// Default service configuration constants.
const (
	defaultSearchTTL       = 5 * time.Minute
	defaultRosterTTL       = 10 * time.Minute
	defaultCacheMaxEntries = 256
)

// SkillsReader is the skills-side warehouse capability the service consumes.
type SkillsReader interface {
	Search(ctx context.Context, terms []string) ([]model.SkillRecord, warehouse.SearchMode, error)
	Roster(ctx context.Context) ([]model.SkillRecord, error)
}

// OpportunityReader is the opportunity-side warehouse capability.
type OpportunityReader interface {
	Search(ctx context.Context, terms []string) ([]model.OpportunityRecord, error)
	TopIndustries(ctx context.Context) []string
}

// skillsData is the memoized unit for one normalized term set. The mode rides
// along so a cached fallback result keeps surfacing its notice.
type skillsData struct {
	records []model.SkillRecord
	mode    warehouse.SearchMode
}

// Service implements the API dependencies for the expert finder.
type Service struct {
	mu sync.RWMutex

	// Core components
	skills        SkillsReader
	opportunities OpportunityReader
	db            *warehouse.DB

	// Configuration
	dsn              string
	skillsTable      string
	opportunityTable string
	accountTable     string
	fallbackLimit    int
	windowYears      int
	industriesLimit  int
	searchTTL        time.Duration
	rosterTTL        time.Duration
	cacheMaxEntries  int

	// Memoization; the only state shared across requests.
	skillsCache     *memo.Cache[skillsData]
	oppCache        *memo.Cache[[]model.OpportunityRecord]
	rosterCache     *memo.Cache[[]model.SkillRecord]
	industriesCache *memo.Cache[[]string]

	// State
	started bool
	now     func() time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithWarehouseDSN sets the warehouse connection string.
func WithWarehouseDSN(dsn string) Option {
	return func(s *Service) {
		s.dsn = dsn
	}
}

// WithTables overrides the warehouse table locations.
func WithTables(skills, opportunity, account string) Option {
	return func(s *Service) {
		if skills != "" {
			s.skillsTable = skills
		}
		if opportunity != "" {
			s.opportunityTable = opportunity
		}
		if account != "" {
			s.accountTable = account
		}
	}
}

// WithSearchTTL sets how long search query results are memoized.
func WithSearchTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.searchTTL = ttl
		}
	}
}

// WithRosterTTL sets how long the roster and industry list are memoized.
func WithRosterTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.rosterTTL = ttl
		}
	}
}

// WithCacheMaxEntries caps each memoization cache.
func WithCacheMaxEntries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.cacheMaxEntries = n
		}
	}
}

// WithFallbackLimit caps the simplified search result count.
func WithFallbackLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.fallbackLimit = n
		}
	}
}

// WithWindowYears sets the opportunity recency window in years.
func WithWindowYears(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.windowYears = n
		}
	}
}

// WithIndustriesLimit caps the top-industries list length.
func WithIndustriesLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.industriesLimit = n
		}
	}
}

// WithSkillsReader injects a skills reader, bypassing the warehouse connection.
func WithSkillsReader(r SkillsReader) Option {
	return func(s *Service) {
		if r != nil {
			s.skills = r
		}
	}
}

// WithOpportunityReader injects an opportunity reader, bypassing the
// warehouse connection.
func WithOpportunityReader(r OpportunityReader) Option {
	return func(s *Service) {
		if r != nil {
			s.opportunities = r
		}
	}
}

// WithClock overrides the time source used for recency filtering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		searchTTL:       defaultSearchTTL,
		rosterTTL:       defaultRosterTTL,
		cacheMaxEntries: defaultCacheMaxEntries,
		now:             time.Now,
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the warehouse connection and caches.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting expert finder service...")

	// Injected readers (tests) skip the warehouse connection.
	if s.skills == nil || s.opportunities == nil {
		db, err := warehouse.Open(s.dsn)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		if err := db.Ping(ctx); err != nil {
			_ = db.Close()
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		s.db = db

		builder := warehouse.NewQueryBuilder(
			warehouse.WithSkillsTable(s.skillsTable),
			warehouse.WithOpportunityTable(s.opportunityTable),
			warehouse.WithAccountTable(s.accountTable),
			warehouse.WithFallbackLimit(s.fallbackLimit),
			warehouse.WithWindowYears(s.windowYears),
			warehouse.WithIndustriesLimit(s.industriesLimit),
		)
		if s.skills == nil {
			s.skills = warehouse.NewSkillsStore(db, builder, s.logger.Named("skills"))
		}
		if s.opportunities == nil {
			s.opportunities = warehouse.NewOpportunityStore(db, builder, s.logger.Named("opportunities"))
		}
	}

	s.skillsCache = memo.New[skillsData](
		memo.WithTTL(s.searchTTL),
		memo.WithMaxEntries(s.cacheMaxEntries),
		memo.WithClock(s.now),
	)
	s.oppCache = memo.New[[]model.OpportunityRecord](
		memo.WithTTL(s.searchTTL),
		memo.WithMaxEntries(s.cacheMaxEntries),
		memo.WithClock(s.now),
	)
	s.rosterCache = memo.New[[]model.SkillRecord](
		memo.WithTTL(s.rosterTTL),
		memo.WithMaxEntries(1),
		memo.WithClock(s.now),
	)
	s.industriesCache = memo.New[[]string](
		memo.WithTTL(s.rosterTTL),
		memo.WithMaxEntries(1),
		memo.WithClock(s.now),
	)

	s.started = true
	s.logger.Info(ctx, "expert finder service started",
		logger.String("skillsTable", s.skillsTable),
		logger.Int("searchTTLSeconds", int(s.searchTTL.Seconds())),
		logger.Int("cacheMaxEntries", s.cacheMaxEntries),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping expert finder service...")

	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "expert finder service stopped")
}

// Search answers one expert search: query the warehouse (memoized), link
// opportunities, filter, rank and summarize. Warehouse failures degrade
// instead of erroring: fallback mode and missing opportunity data surface as
// notices, and a total search failure yields an empty, noticed result.
func (s *Service) Search(ctx context.Context, query string, f model.Filters) (model.SearchResult, error) {
	terms := SplitTerms(query)
	if len(terms) == 0 {
		return model.SearchResult{}, ErrEmptyQuery
	}

	metrics.RecordSearch()
	result := model.SearchResult{Query: query, Terms: terms}

	skills, mode, err := s.searchSkills(ctx, terms)
	if err != nil {
		s.logger.Error(ctx, "both skills queries failed", logger.Error(err))
		metrics.RecordSearchFailure()
		result.Experts = []model.ExpertResult{}
		result.Notice = noticeSearchFailed
		return result, nil
	}

	var notices []string
	if mode == warehouse.SearchFallback {
		notices = append(notices, noticeFallback)
	}

	opps, oppErr := s.searchOpportunities(ctx, terms)
	if oppErr != nil {
		s.logger.Warn(ctx, "opportunity search failed, continuing without",
			logger.Error(oppErr))
		metrics.RecordOpportunityFailure()
		opps = nil
		notices = append(notices, noticeNoOpportunity)
	}

	experts := aggregate.Build(skills, opps, terms)
	experts = aggregate.Filter(experts, f, s.now())
	experts = aggregate.Rank(experts)

	result.Experts = experts
	result.Summary = aggregate.Summarize(experts)
	result.Notice = strings.Join(notices, " ")

	metrics.ObserveExpertsReturned(len(experts))
	return result, nil
}

// searchSkills memoizes the two-step skills search by normalized term key.
// Only successes are cached so a transient failure is retried next request.
func (s *Service) searchSkills(ctx context.Context, terms []string) ([]model.SkillRecord, warehouse.SearchMode, error) {
	key := termKey(terms)
	if data, ok := s.skillsCache.Get(key); ok {
		metrics.RecordCacheHit("skills")
		return data.records, data.mode, nil
	}
	metrics.RecordCacheMiss("skills")

	records, mode, err := s.skills.Search(ctx, terms)
	if err != nil {
		return nil, mode, err
	}
	s.skillsCache.Set(key, skillsData{records: records, mode: mode})
	metrics.UpdateCacheSize("skills", s.skillsCache.Len())
	return records, mode, nil
}

func (s *Service) searchOpportunities(ctx context.Context, terms []string) ([]model.OpportunityRecord, error) {
	key := termKey(terms)
	if records, ok := s.oppCache.Get(key); ok {
		metrics.RecordCacheHit("opportunities")
		return records, nil
	}
	metrics.RecordCacheMiss("opportunities")

	records, err := s.opportunities.Search(ctx, terms)
	if err != nil {
		return nil, err
	}
	s.oppCache.Set(key, records)
	metrics.UpdateCacheSize("opportunities", s.oppCache.Len())
	return records, nil
}

// Directory returns the engineer roster, optionally narrowed by college
// (exact, after array cleanup) and by name substring.
func (s *Service) Directory(ctx context.Context, college, name string) (model.DirectoryResult, error) {
	roster, err := s.roster(ctx)
	if err != nil {
		return model.DirectoryResult{}, err
	}

	colleges := make(map[string]struct{})
	nameNeedle := strings.ToUpper(strings.TrimSpace(name))
	collegeWant := strings.TrimSpace(college)

	entries := make([]model.DirectoryEntry, 0, len(roster))
	for _, rec := range roster {
		if rec.Name == "" {
			continue
		}
		clean := arrayfield.First(rec.College)
		if clean != "" {
			colleges[clean] = struct{}{}
		}
		if collegeWant != "" && clean != collegeWant {
			continue
		}
		if nameNeedle != "" && !strings.Contains(strings.ToUpper(rec.Name), nameNeedle) {
			continue
		}

		profile := extract.Profile(rec)
		entries = append(entries, model.DirectoryEntry{
			EmployeeID:     rec.EmployeeID,
			Name:           rec.Name,
			Email:          rec.Email,
			College:        clean,
			Employers:      arrayfield.Parse(rec.Employers),
			HighSkills:     profile.High,
			Specialties:    profile.Specialties,
			Certifications: profile.Certifications,
			SkillCount:     len(profile.High) + len(profile.Specialties) + len(profile.Certifications),
		})
	}

	return model.DirectoryResult{
		Entries:  entries,
		Total:    len(entries),
		Colleges: sortedKeys(colleges),
	}, nil
}

func (s *Service) roster(ctx context.Context) ([]model.SkillRecord, error) {
	if roster, ok := s.rosterCache.Get("roster"); ok {
		metrics.RecordCacheHit("roster")
		return roster, nil
	}
	metrics.RecordCacheMiss("roster")

	roster, err := s.skills.Roster(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	s.rosterCache.Set("roster", roster)
	return roster, nil
}

// Industries returns the busiest account industries, memoized. The store
// already degrades to defaults on failure, so this never errors.
func (s *Service) Industries(ctx context.Context) []string {
	if industries, ok := s.industriesCache.Get("industries"); ok {
		metrics.RecordCacheHit("industries")
		return industries
	}
	metrics.RecordCacheMiss("industries")

	industries := s.opportunities.TopIndustries(ctx)
	s.industriesCache.Set("industries", industries)
	return industries
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"searchTTLSeconds": int(s.searchTTL.Seconds()),
		"rosterTTLSeconds": int(s.rosterTTL.Seconds()),
		"cacheMaxEntries":  s.cacheMaxEntries,
	}

	if s.started {
		stats["skillsCacheEntries"] = s.skillsCache.Len()
		stats["opportunityCacheEntries"] = s.oppCache.Len()
		stats["rosterCached"] = s.rosterCache.Len() > 0

		// Update metrics
		metrics.UpdateCacheSize("skills", s.skillsCache.Len())
		metrics.UpdateCacheSize("opportunities", s.oppCache.Len())
	}

	return stats
}

// SplitTerms breaks a comma-separated query into trimmed, non-empty terms.
func SplitTerms(query string) []string {
	parts := strings.Split(query, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// termKey normalizes terms into a stable cache key. Order matters to the
// user-visible term list but not to matching, so the key sorts a copy.
func termKey(terms []string) string {
	norm := make([]string, len(terms))
	for i, t := range terms {
		norm[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	sort.Strings(norm)
	return strings.Join(norm, ",")
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
