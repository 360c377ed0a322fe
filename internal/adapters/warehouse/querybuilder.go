package warehouse

import (
	"fmt"
	"strings"
)

// Default table locations in the reporting warehouse.
const (
	defaultSkillsTable      = "sales.se_reporting.freestyle_summary"
	defaultOpportunityTable = "fivetran.salesforce.opportunity"
	defaultAccountTable     = "fivetran.salesforce.account"

	defaultFallbackLimit   = 1000
	defaultWindowYears     = 3
	defaultIndustriesLimit = 50
)

// skillColumns is the full projection of the skills summary table.
// The ASSESMENT spelling matches the warehouse schema.
var skillColumns = []string{
	"EMPLOYEE_ID",
	"USER_ID",
	"NAME",
	"EMAIL",
	"SELF_ASSESMENT_SKILL_NULL",
	"SELF_ASSESMENT_SKILL_0",
	"SELF_ASSESMENT_SKILL_100",
	"SELF_ASSESMENT_SKILL_200",
	"SELF_ASSESMENT_SKILL_300",
	"SELF_ASSESMENT_SKILL_400",
	"MGR_SCORE_SKILL_NULL",
	"MGR_SCORE_SKILL_0",
	"MGR_SCORE_SKILL_100",
	"MGR_SCORE_SKILL_200",
	"MGR_SCORE_SKILL_300",
	"MGR_SCORE_SKILL_400",
	"CERT_INTERNAL",
	"CERT_EXTERNAL",
	"SPECIALTIES",
	"EMPLOYERS",
	"COLLEGE",
}

// searchColumns are the array fields a precise search probes per term.
var searchColumns = []string{
	"SELF_ASSESMENT_SKILL_NULL",
	"SELF_ASSESMENT_SKILL_0",
	"SELF_ASSESMENT_SKILL_100",
	"SELF_ASSESMENT_SKILL_200",
	"SELF_ASSESMENT_SKILL_300",
	"SELF_ASSESMENT_SKILL_400",
	"MGR_SCORE_SKILL_NULL",
	"MGR_SCORE_SKILL_0",
	"MGR_SCORE_SKILL_100",
	"MGR_SCORE_SKILL_200",
	"MGR_SCORE_SKILL_300",
	"MGR_SCORE_SKILL_400",
	"SPECIALTIES",
	"CERT_INTERNAL",
	"CERT_EXTERNAL",
}

// fallbackColumns are concatenated into one blob by the simplified search.
var fallbackColumns = []string{
	"SELF_ASSESMENT_SKILL_300",
	"SELF_ASSESMENT_SKILL_400",
	"MGR_SCORE_SKILL_300",
	"MGR_SCORE_SKILL_400",
	"SPECIALTIES",
	"CERT_EXTERNAL",
}

// QueryBuilder renders the parameterized warehouse queries. Search terms are
// bound as query parameters, never interpolated into the SQL text, and are
// upper-cased once so matching is case-insensitive on both sides.
type QueryBuilder struct {
	skillsTable      string
	opportunityTable string
	accountTable     string
	fallbackLimit    int
	windowYears      int
	industriesLimit  int
}

// NewQueryBuilder creates a query builder with configuration options.
func NewQueryBuilder(opts ...BuilderOption) *QueryBuilder {
	b := &QueryBuilder{
		skillsTable:      defaultSkillsTable,
		opportunityTable: defaultOpportunityTable,
		accountTable:     defaultAccountTable,
		fallbackLimit:    defaultFallbackLimit,
		windowYears:      defaultWindowYears,
		industriesLimit:  defaultIndustriesLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SkillsSearch renders the precise search: per term, a disjunction of
// containment checks over every skill, certification and specialty field.
func (b *QueryBuilder) SkillsSearch(terms []string) (string, []any) {
	args := upperArgs(terms)

	termClauses := make([]string, 0, len(terms))
	for i := range terms {
		fieldChecks := make([]string, 0, len(searchColumns))
		for _, col := range searchColumns {
			fieldChecks = append(fieldChecks, containsCheck(col, i+1))
		}
		termClauses = append(termClauses, "("+strings.Join(fieldChecks, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s
FROM %s
WHERE %s
ORDER BY NAME`,
		strings.Join(skillColumns, ", "),
		b.skillsTable,
		strings.Join(termClauses, " OR "),
	)
	return query, args
}

// SkillsFallback renders the simplified search used when the precise query
// fails: each term is matched against one blob concatenating the
// high-proficiency arrays, specialties and external certifications.
func (b *QueryBuilder) SkillsFallback(terms []string) (string, []any) {
	args := upperArgs(terms)

	blob := fmt.Sprintf("UPPER(CONCAT_WS(',', %s))", strings.Join(fallbackColumns, ", "))
	termClauses := make([]string, 0, len(terms))
	for i := range terms {
		termClauses = append(termClauses, fmt.Sprintf("STRPOS(%s, $%d) > 0", blob, i+1))
	}

	query := fmt.Sprintf(`SELECT %s
FROM %s
WHERE %s
ORDER BY NAME
LIMIT %d`,
		strings.Join(skillColumns, ", "),
		b.skillsTable,
		strings.Join(termClauses, " OR "),
		b.fallbackLimit,
	)
	return query, args
}

// Roster renders the full-directory query: every record with a name.
func (b *QueryBuilder) Roster() (string, []any) {
	query := fmt.Sprintf(`SELECT %s
FROM %s
WHERE NAME IS NOT NULL
ORDER BY NAME`,
		strings.Join(skillColumns, ", "),
		b.skillsTable,
	)
	return query, nil
}

// Opportunities renders the competitor search over the trailing recency
// window, restricted to rows with an assigned lead engineer or owner, with
// per-partition opportunity counts for scoring context.
func (b *QueryBuilder) Opportunities(terms []string) (string, []any) {
	args := upperArgs(terms)

	termClauses := make([]string, 0, len(terms))
	for i := range terms {
		termClauses = append(termClauses, containsCheck("o.PRIMARY_COMPETITOR_C", i+1))
	}

	query := fmt.Sprintf(`SELECT
    o.ID,
    o.NAME AS OPPORTUNITY_NAME,
    o.PRIMARY_COMPETITOR_C,
    o.CLOSE_DATE,
    o.STAGE_NAME,
    o.AMOUNT,
    o.LEAD_SALES_ENGINEER_C,
    o.OWNER_ID,
    o.ACCOUNT_ID,
    a.INDUSTRY AS ACCOUNT_INDUSTRY,
    COUNT(*) OVER (PARTITION BY o.LEAD_SALES_ENGINEER_C) AS SE_OPPORTUNITY_COUNT,
    COUNT(*) OVER (PARTITION BY o.OWNER_ID) AS OWNER_OPPORTUNITY_COUNT
FROM %s o
LEFT JOIN %s a ON o.ACCOUNT_ID = a.ID
WHERE (%s)
    AND o.CLOSE_DATE >= CURRENT_DATE - INTERVAL '%d years'
    AND (o.LEAD_SALES_ENGINEER_C IS NOT NULL OR o.OWNER_ID IS NOT NULL)
ORDER BY o.CLOSE_DATE DESC`,
		b.opportunityTable,
		b.accountTable,
		strings.Join(termClauses, " OR "),
		b.windowYears,
	)
	return query, args
}

// TopIndustries renders the industry ranking over the trailing window.
func (b *QueryBuilder) TopIndustries() (string, []any) {
	query := fmt.Sprintf(`SELECT
    a.INDUSTRY,
    COUNT(*) AS OPPORTUNITY_COUNT
FROM %s o
LEFT JOIN %s a ON o.ACCOUNT_ID = a.ID
WHERE o.CLOSE_DATE >= CURRENT_DATE - INTERVAL '%d years'
    AND a.INDUSTRY IS NOT NULL
    AND a.INDUSTRY != ''
    AND (o.LEAD_SALES_ENGINEER_C IS NOT NULL OR o.OWNER_ID IS NOT NULL)
GROUP BY a.INDUSTRY
ORDER BY OPPORTUNITY_COUNT DESC
LIMIT %d`,
		b.opportunityTable,
		b.accountTable,
		b.windowYears,
		b.industriesLimit,
	)
	return query, nil
}

// containsCheck renders a null-safe, case-insensitive substring test of the
// bound parameter against col.
func containsCheck(col string, param int) string {
	return fmt.Sprintf("STRPOS(UPPER(COALESCE(%s, '')), $%d) > 0", col, param)
}

func upperArgs(terms []string) []any {
	args := make([]any, len(terms))
	for i, t := range terms {
		args[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	return args
}
