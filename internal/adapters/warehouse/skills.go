package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BriFlake/expert-finder/internal/domain/model"
	"github.com/BriFlake/expert-finder/pkg/logger"
	"github.com/BriFlake/expert-finder/pkg/metrics"
)

// SearchMode tags which query produced a skills result set.
type SearchMode int

// Search outcomes for the two-step strategy.
const (
	SearchPrimary SearchMode = iota
	SearchFallback
	SearchFailed
)

// SkillsStore reads the skills summary table.
type SkillsStore struct {
	exec    Executor
	builder *QueryBuilder
	log     logger.Logger
}

// NewSkillsStore creates a skills store over the given executor.
func NewSkillsStore(exec Executor, builder *QueryBuilder, log logger.Logger) *SkillsStore {
	return &SkillsStore{exec: exec, builder: builder, log: log}
}

// Search runs the precise query and, if it fails, retries with the
// simplified fallback. The returned mode tags which step succeeded; callers
// surface a notice on SearchFallback and a user-visible message plus an
// empty set on SearchFailed.
func (s *SkillsStore) Search(ctx context.Context, terms []string) ([]model.SkillRecord, SearchMode, error) {
	if len(terms) == 0 {
		return nil, SearchFailed, ErrNoTerms
	}

	query, args := s.builder.SkillsSearch(terms)
	records, err := s.query(ctx, "skills_search", query, args)
	if err == nil {
		return records, SearchPrimary, nil
	}

	s.log.Warn(ctx, "precise skills search failed, retrying simplified",
		logger.Error(err),
		logger.Int("terms", len(terms)),
	)
	metrics.RecordSearchFallback()

	query, args = s.builder.SkillsFallback(terms)
	records, fbErr := s.query(ctx, "skills_fallback", query, args)
	if fbErr != nil {
		return nil, SearchFailed, fmt.Errorf("%w: %w", ErrSearchFailed, fbErr)
	}
	return records, SearchFallback, nil
}

// Roster returns every record with a name, for the engineer directory.
func (s *SkillsStore) Roster(ctx context.Context) ([]model.SkillRecord, error) {
	query, args := s.builder.Roster()
	return s.query(ctx, "roster", query, args)
}

func (s *SkillsStore) query(ctx context.Context, name, query string, args []any) ([]model.SkillRecord, error) {
	start := time.Now()
	rows, err := s.exec.Query(ctx, query, args...)
	if err != nil {
		metrics.RecordWarehouseError(name)
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	defer func() {
		metrics.ObserveWarehouseQuery(name, float64(time.Since(start).Milliseconds()))
	}()

	var records []model.SkillRecord
	for rows.Next() {
		rec, err := scanSkillRecord(rows)
		if err != nil {
			metrics.RecordWarehouseError(name)
			return nil, fmt.Errorf("scan %s row: %w", name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordWarehouseError(name)
		return nil, fmt.Errorf("%s rows: %w", name, err)
	}
	return records, nil
}

// scanSkillRecord maps one row of the skills projection. Null columns become
// empty strings; the array fields stay raw until the parser runs.
func scanSkillRecord(rows Rows) (model.SkillRecord, error) {
	var (
		employeeID, userID, name, email sql.NullString
		selfNull, self0, self100        sql.NullString
		self200, self300, self400       sql.NullString
		mgrNull, mgr0, mgr100           sql.NullString
		mgr200, mgr300, mgr400          sql.NullString
		certInternal, certExternal      sql.NullString
		specialties, employers, college sql.NullString
	)

	if err := rows.Scan(
		&employeeID, &userID, &name, &email,
		&selfNull, &self0, &self100, &self200, &self300, &self400,
		&mgrNull, &mgr0, &mgr100, &mgr200, &mgr300, &mgr400,
		&certInternal, &certExternal, &specialties, &employers, &college,
	); err != nil {
		return model.SkillRecord{}, err
	}

	return model.SkillRecord{
		EmployeeID:    employeeID.String,
		UserID:        userID.String,
		Name:          name.String,
		Email:         email.String,
		SelfSkillNone: selfNull.String,
		SelfSkill0:    self0.String,
		SelfSkill100:  self100.String,
		SelfSkill200:  self200.String,
		SelfSkill300:  self300.String,
		SelfSkill400:  self400.String,
		MgrSkillNone:  mgrNull.String,
		MgrSkill0:     mgr0.String,
		MgrSkill100:   mgr100.String,
		MgrSkill200:   mgr200.String,
		MgrSkill300:   mgr300.String,
		MgrSkill400:   mgr400.String,
		CertInternal:  certInternal.String,
		CertExternal:  certExternal.String,
		Specialties:   specialties.String,
		Employers:     employers.String,
		College:       college.String,
	}, nil
}
