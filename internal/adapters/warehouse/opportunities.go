package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/BriFlake/expert-finder/internal/domain/model"
	"github.com/BriFlake/expert-finder/pkg/logger"
	"github.com/BriFlake/expert-finder/pkg/metrics"
)

// defaultIndustries is served when the industry ranking query fails, so the
// filter UI never comes up empty.
var defaultIndustries = []string{
	"Financial Services",
	"Healthcare",
	"Manufacturing",
	"Retail",
	"Technology",
}

// OpportunityStore reads the opportunity table joined to accounts.
type OpportunityStore struct {
	exec    Executor
	builder *QueryBuilder
	log     logger.Logger
}

// NewOpportunityStore creates an opportunity store over the given executor.
func NewOpportunityStore(exec Executor, builder *QueryBuilder, log logger.Logger) *OpportunityStore {
	return &OpportunityStore{exec: exec, builder: builder, log: log}
}

// Search returns competitive opportunities matching any term within the
// recency window. A failure here degrades to zero opportunities upstream; it
// must never block skill-only results.
func (s *OpportunityStore) Search(ctx context.Context, terms []string) ([]model.OpportunityRecord, error) {
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	start := time.Now()
	query, args := s.builder.Opportunities(terms)
	rows, err := s.exec.Query(ctx, query, args...)
	if err != nil {
		metrics.RecordWarehouseError("opportunities")
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	defer func() {
		metrics.ObserveWarehouseQuery("opportunities", float64(time.Since(start).Milliseconds()))
	}()

	var records []model.OpportunityRecord
	for rows.Next() {
		rec, err := scanOpportunityRecord(rows)
		if err != nil {
			metrics.RecordWarehouseError("opportunities")
			return nil, fmt.Errorf("scan opportunity row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordWarehouseError("opportunities")
		return nil, fmt.Errorf("opportunity rows: %w", err)
	}
	return records, nil
}

// TopIndustries returns the busiest industries over the trailing window,
// sorted alphabetically. On query failure it logs and falls back to a fixed
// default list rather than erroring.
func (s *OpportunityStore) TopIndustries(ctx context.Context) []string {
	query, args := s.builder.TopIndustries()
	rows, err := s.exec.Query(ctx, query, args...)
	if err != nil {
		metrics.RecordWarehouseError("industries")
		s.log.Warn(ctx, "industry ranking query failed, using defaults", logger.Error(err))
		return defaultIndustries
	}
	defer func() { _ = rows.Close() }()

	var industries []string
	for rows.Next() {
		var industry sql.NullString
		var count sql.NullInt64
		if err := rows.Scan(&industry, &count); err != nil {
			metrics.RecordWarehouseError("industries")
			s.log.Warn(ctx, "industry row scan failed, using defaults", logger.Error(err))
			return defaultIndustries
		}
		if industry.String != "" {
			industries = append(industries, industry.String)
		}
	}
	if err := rows.Err(); err != nil {
		metrics.RecordWarehouseError("industries")
		s.log.Warn(ctx, "industry rows failed, using defaults", logger.Error(err))
		return defaultIndustries
	}

	sort.Strings(industries)
	return industries
}

func scanOpportunityRecord(rows Rows) (model.OpportunityRecord, error) {
	var (
		id, name, competitor, stage sql.NullString
		leadEngineer, owner         sql.NullString
		accountID, industry         sql.NullString
		closeDate                   sql.NullTime
		amount                      sql.NullFloat64
		seCount, ownerCount         sql.NullInt64
	)

	if err := rows.Scan(
		&id, &name, &competitor, &closeDate, &stage, &amount,
		&leadEngineer, &owner, &accountID, &industry,
		&seCount, &ownerCount,
	); err != nil {
		return model.OpportunityRecord{}, err
	}

	rec := model.OpportunityRecord{
		ID:                           id.String,
		Name:                         name.String,
		Competitor:                   competitor.String,
		Stage:                        stage.String,
		Amount:                       amount.Float64,
		LeadEngineerID:               leadEngineer.String,
		OwnerID:                      owner.String,
		AccountID:                    accountID.String,
		AccountIndustry:              industry.String,
		LeadEngineerOpportunityCount: int(seCount.Int64),
		OwnerOpportunityCount:        int(ownerCount.Int64),
	}
	if closeDate.Valid {
		rec.CloseDate = closeDate.Time
	}
	return rec, nil
}
