package warehouse_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BriFlake/expert-finder/internal/adapters/warehouse"
	"github.com/BriFlake/expert-finder/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeRows serves canned rows. Values are fed through each destination's
// sql.Scanner, matching how *sql.Rows populates Null types.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	row := f.rows[f.idx-1]
	for i, d := range dest {
		scanner, ok := d.(sql.Scanner)
		if !ok {
			return errors.New("destination is not a sql.Scanner")
		}
		if err := scanner.Scan(row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRows) Err() error   { return f.err }
func (f *fakeRows) Close() error { return nil }

// fakeExecutor routes queries to canned responses by substring.
type fakeExecutor struct {
	respond func(query string) (warehouse.Rows, error)
}

func (f *fakeExecutor) Query(_ context.Context, query string, _ ...any) (warehouse.Rows, error) {
	return f.respond(query)
}

func testLogger() logger.Logger {
	_ = logger.Init()
	return logger.Get()
}

// skillRowValues builds the 21-column projection with the given identity and
// a single high self-assessed skill.
func skillRowValues(employeeID, userID, name, skill400 string) []any {
	return []any{
		employeeID, userID, name, name + "@example.com",
		nil, nil, nil, nil, nil, skill400,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
	}
}

func TestSkillsStoreSearch(t *testing.T) {
	ctx := context.Background()
	builder := warehouse.NewQueryBuilder()

	Convey("Given a skills store", t, func() {
		Convey("When the precise query succeeds", func() {
			exec := &fakeExecutor{respond: func(query string) (warehouse.Rows, error) {
				return &fakeRows{rows: [][]any{
					skillRowValues("e1", "u1", "Ada", `["Databricks"]`),
				}}, nil
			}}
			store := warehouse.NewSkillsStore(exec, builder, testLogger())

			records, mode, err := store.Search(ctx, []string{"databricks"})

			Convey("Then records come back tagged as the primary outcome", func() {
				So(err, ShouldBeNil)
				So(mode, ShouldEqual, warehouse.SearchPrimary)
				So(records, ShouldHaveLength, 1)
				So(records[0].EmployeeID, ShouldEqual, "e1")
				So(records[0].SelfSkill400, ShouldEqual, `["Databricks"]`)
			})
		})

		Convey("When the precise query fails but the fallback succeeds", func() {
			exec := &fakeExecutor{respond: func(query string) (warehouse.Rows, error) {
				if strings.Contains(query, "CONCAT_WS") {
					return &fakeRows{rows: [][]any{
						skillRowValues("e2", "u2", "Bo", `["Databricks"]`),
					}}, nil
				}
				return nil, errors.New("compilation error")
			}}
			store := warehouse.NewSkillsStore(exec, builder, testLogger())

			records, mode, err := store.Search(ctx, []string{"databricks"})

			Convey("Then the result is tagged as the fallback outcome", func() {
				So(err, ShouldBeNil)
				So(mode, ShouldEqual, warehouse.SearchFallback)
				So(records, ShouldHaveLength, 1)
			})
		})

		Convey("When both queries fail", func() {
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return nil, errors.New("warehouse down")
			}}
			store := warehouse.NewSkillsStore(exec, builder, testLogger())

			_, mode, err := store.Search(ctx, []string{"databricks"})

			Convey("Then the failure is tagged and wrapped", func() {
				So(mode, ShouldEqual, warehouse.SearchFailed)
				So(errors.Is(err, warehouse.ErrSearchFailed), ShouldBeTrue)
			})
		})

		Convey("When no terms are given", func() {
			store := warehouse.NewSkillsStore(&fakeExecutor{}, builder, testLogger())

			_, _, err := store.Search(ctx, nil)

			Convey("Then the store refuses to query", func() {
				So(errors.Is(err, warehouse.ErrNoTerms), ShouldBeTrue)
			})
		})
	})
}

func TestOpportunityStoreSearch(t *testing.T) {
	ctx := context.Background()
	builder := warehouse.NewQueryBuilder()

	Convey("Given an opportunity store", t, func() {
		Convey("When rows come back", func() {
			closeDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return &fakeRows{rows: [][]any{{
					"o1", "Big Deal", "Databricks", closeDate, "Closed Won",
					1_200_000.0, "u1", "u9", "a1", "Retail",
					int64(3), int64(7),
				}}}, nil
			}}
			store := warehouse.NewOpportunityStore(exec, builder, testLogger())

			records, err := store.Search(ctx, []string{"databricks"})

			Convey("Then every column lands on the record", func() {
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 1)
				So(records[0].Competitor, ShouldEqual, "Databricks")
				So(records[0].Amount, ShouldEqual, 1_200_000.0)
				So(records[0].CloseDate, ShouldEqual, closeDate)
				So(records[0].LeadEngineerOpportunityCount, ShouldEqual, 3)
				So(records[0].OwnerOpportunityCount, ShouldEqual, 7)
			})
		})

		Convey("When null columns come back", func() {
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return &fakeRows{rows: [][]any{{
					"o1", "Quiet Deal", nil, nil, nil,
					nil, "u1", nil, nil, nil,
					int64(1), int64(1),
				}}}, nil
			}}
			store := warehouse.NewOpportunityStore(exec, builder, testLogger())

			records, err := store.Search(ctx, []string{"databricks"})

			Convey("Then nulls degrade to zero values", func() {
				So(err, ShouldBeNil)
				So(records[0].Competitor, ShouldEqual, "")
				So(records[0].Amount, ShouldEqual, 0)
				So(records[0].CloseDate.IsZero(), ShouldBeTrue)
			})
		})

		Convey("When the query fails", func() {
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return nil, errors.New("timeout")
			}}
			store := warehouse.NewOpportunityStore(exec, builder, testLogger())

			_, err := store.Search(ctx, []string{"databricks"})

			Convey("Then the error propagates for the caller to degrade", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestTopIndustriesFallback(t *testing.T) {
	ctx := context.Background()
	builder := warehouse.NewQueryBuilder()

	Convey("Given an opportunity store", t, func() {
		Convey("When the ranking query succeeds", func() {
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return &fakeRows{rows: [][]any{
					{"Technology", int64(40)},
					{"Healthcare", int64(25)},
				}}, nil
			}}
			store := warehouse.NewOpportunityStore(exec, builder, testLogger())

			Convey("Then industries come back alphabetized", func() {
				So(store.TopIndustries(ctx), ShouldResemble, []string{"Healthcare", "Technology"})
			})
		})

		Convey("When the ranking query fails", func() {
			exec := &fakeExecutor{respond: func(string) (warehouse.Rows, error) {
				return nil, errors.New("timeout")
			}}
			store := warehouse.NewOpportunityStore(exec, builder, testLogger())

			got := store.TopIndustries(ctx)

			Convey("Then a non-empty default list is served", func() {
				So(got, ShouldNotBeEmpty)
				So(got, ShouldContain, "Technology")
			})
		})
	})
}
