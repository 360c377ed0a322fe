package warehouse_test

import (
	"strings"
	"testing"

	"github.com/BriFlake/expert-finder/internal/adapters/warehouse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSkillsSearch(t *testing.T) {
	Convey("Given a default query builder", t, func() {
		b := warehouse.NewQueryBuilder()

		Convey("When rendering a two-term precise search", func() {
			query, args := b.SkillsSearch([]string{"databricks", "Spark"})

			Convey("Then terms are bound as upper-cased parameters", func() {
				So(args, ShouldResemble, []any{"DATABRICKS", "SPARK"})
				So(query, ShouldContainSubstring, "$1")
				So(query, ShouldContainSubstring, "$2")
			})

			Convey("Then no term text leaks into the SQL", func() {
				So(query, ShouldNotContainSubstring, "databricks")
				So(query, ShouldNotContainSubstring, "DATABRICKS")
			})

			Convey("Then every search column is probed null-safely", func() {
				So(query, ShouldContainSubstring, "STRPOS(UPPER(COALESCE(SELF_ASSESMENT_SKILL_400, '')), $1) > 0")
				So(query, ShouldContainSubstring, "STRPOS(UPPER(COALESCE(CERT_EXTERNAL, '')), $2) > 0")
			})

			Convey("Then results come back ordered by name", func() {
				So(query, ShouldContainSubstring, "ORDER BY NAME")
			})
		})

		Convey("When a term carries surrounding whitespace", func() {
			_, args := b.SkillsSearch([]string{"  kafka  "})

			Convey("Then the bound value is trimmed", func() {
				So(args, ShouldResemble, []any{"KAFKA"})
			})
		})
	})
}

func TestSkillsFallback(t *testing.T) {
	Convey("Given a default query builder", t, func() {
		b := warehouse.NewQueryBuilder()

		Convey("When rendering the simplified search", func() {
			query, args := b.SkillsFallback([]string{"snowflake"})

			Convey("Then it probes one concatenated blob per term", func() {
				So(query, ShouldContainSubstring, "CONCAT_WS(','")
				So(query, ShouldContainSubstring, "$1")
				So(args, ShouldResemble, []any{"SNOWFLAKE"})
			})

			Convey("Then the result set is capped", func() {
				So(query, ShouldContainSubstring, "LIMIT 1000")
			})
		})

		Convey("When the limit is overridden", func() {
			small := warehouse.NewQueryBuilder(warehouse.WithFallbackLimit(50))
			query, _ := small.SkillsFallback([]string{"x"})
			So(query, ShouldContainSubstring, "LIMIT 50")
		})
	})
}

func TestOpportunities(t *testing.T) {
	Convey("Given a default query builder", t, func() {
		b := warehouse.NewQueryBuilder()

		Convey("When rendering the competitor search", func() {
			query, args := b.Opportunities([]string{"databricks"})

			Convey("Then the competitor column is probed per bound term", func() {
				So(query, ShouldContainSubstring, "o.PRIMARY_COMPETITOR_C")
				So(args, ShouldResemble, []any{"DATABRICKS"})
			})

			Convey("Then the recency window and assignment guard are present", func() {
				So(query, ShouldContainSubstring, "INTERVAL '3 years'")
				So(query, ShouldContainSubstring, "o.LEAD_SALES_ENGINEER_C IS NOT NULL OR o.OWNER_ID IS NOT NULL")
			})

			Convey("Then the per-partition counts ride along", func() {
				So(query, ShouldContainSubstring, "COUNT(*) OVER (PARTITION BY o.LEAD_SALES_ENGINEER_C)")
				So(query, ShouldContainSubstring, "COUNT(*) OVER (PARTITION BY o.OWNER_ID)")
			})
		})

		Convey("When the window is overridden", func() {
			wide := warehouse.NewQueryBuilder(warehouse.WithWindowYears(5))
			query, _ := wide.Opportunities([]string{"x"})
			So(query, ShouldContainSubstring, "INTERVAL '5 years'")
		})
	})
}

func TestTopIndustries(t *testing.T) {
	Convey("Given a default query builder", t, func() {
		query, args := warehouse.NewQueryBuilder().TopIndustries()

		Convey("Then the ranking groups by industry with a cap", func() {
			So(args, ShouldBeEmpty)
			So(query, ShouldContainSubstring, "GROUP BY a.INDUSTRY")
			So(query, ShouldContainSubstring, "ORDER BY OPPORTUNITY_COUNT DESC")
			So(query, ShouldContainSubstring, "LIMIT 50")
		})
	})
}

func TestRoster(t *testing.T) {
	Convey("Given a custom skills table", t, func() {
		b := warehouse.NewQueryBuilder(warehouse.WithSkillsTable("reporting.skills"))
		query, args := b.Roster()

		Convey("Then the roster selects named records from that table", func() {
			So(args, ShouldBeEmpty)
			So(query, ShouldContainSubstring, "FROM reporting.skills")
			So(query, ShouldContainSubstring, "WHERE NAME IS NOT NULL")
			So(strings.Count(query, "EMPLOYEE_ID"), ShouldEqual, 1)
		})
	})
}
