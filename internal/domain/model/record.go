// Package model contains domain models passed between layers.
package model

import "time"

// SkillRecord is one row of the skills summary table. Array-valued fields
// arrive as raw warehouse text (bracket-and-quote delimited) and are parsed
// on demand by the arrayfield package.
type SkillRecord struct {
	EmployeeID string // join key to opportunities; empty means the row is dropped
	UserID     string
	Name       string
	Email      string

	// Self-assessed skill buckets by level.
	SelfSkillNone string
	SelfSkill0    string
	SelfSkill100  string
	SelfSkill200  string
	SelfSkill300  string
	SelfSkill400  string

	// Manager-scored skill buckets by level.
	MgrSkillNone string
	MgrSkill0    string
	MgrSkill100  string
	MgrSkill200  string
	MgrSkill300  string
	MgrSkill400  string

	CertInternal string
	CertExternal string
	Specialties  string
	Employers    string
	College      string
}

// OpportunityRecord is one row of the opportunity table joined to accounts.
// The 3-year recency window is enforced at the query boundary, not here.
type OpportunityRecord struct {
	ID              string
	Name            string
	Competitor      string
	CloseDate       time.Time // zero when the warehouse has no close date
	Stage           string
	Amount          float64
	LeadEngineerID  string // empty when unassigned
	OwnerID         string // empty when unassigned
	AccountID       string
	AccountIndustry string

	// Window-function counts from the query: opportunities per lead engineer
	// and per owner across the whole result window.
	LeadEngineerOpportunityCount int
	OwnerOpportunityCount        int
}

// Opportunity roles used when a row is attributed to an expert.
const (
	RoleLeadEngineer = "Lead Sales Engineer"
	RoleOwner        = "Opportunity Owner"
)

// LinkedOpportunity is an opportunity attributed to one expert with the role
// that expert played on the deal. The same source row can be linked to two
// experts (lead engineer and owner) with different roles.
type LinkedOpportunity struct {
	Name       string    `json:"name"`
	Competitor string    `json:"competitor"`
	CloseDate  time.Time `json:"close_date"`
	Stage      string    `json:"stage"`
	Amount     float64   `json:"amount"`
	Industry   string    `json:"industry"`
	Role       string    `json:"role"`
}

// SkillMatches groups matched skill values by proficiency tier plus
// certifications and specialties. Each slice is deduplicated.
type SkillMatches struct {
	High           []string `json:"high_proficiency"`
	Medium         []string `json:"medium_proficiency"`
	Basic          []string `json:"basic_proficiency"`
	Certifications []string `json:"certifications"`
	Specialties    []string `json:"specialties"`
}

// Empty reports whether no skills, certifications or specialties matched.
func (m SkillMatches) Empty() bool {
	return len(m.High) == 0 && len(m.Medium) == 0 && len(m.Basic) == 0 &&
		len(m.Certifications) == 0 && len(m.Specialties) == 0
}

// ExpertResult is the per-request aggregate keyed by employee id. It is built
// fresh for every search and discarded afterwards.
type ExpertResult struct {
	EmployeeID       string              `json:"employee_id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	UserID           string              `json:"user_id"`
	Skills           SkillMatches        `json:"skills"`
	Employers        []string            `json:"employers,omitempty"`
	Industries       []string            `json:"industries,omitempty"`
	Opportunities    []LinkedOpportunity `json:"opportunities,omitempty"`
	OpportunityCount int                 `json:"opportunity_count"`
	LastActivity     time.Time           `json:"last_activity,omitzero"`
	RelevanceScore   float64             `json:"relevance_score"`

	// ManagerEndorsed is checked on the raw record, not the matched subset.
	ManagerEndorsed bool `json:"manager_endorsed"`
}

// Summary holds the aggregates displayed next to a result list.
type Summary struct {
	ExpertCount        int     `json:"expert_count"`
	TotalOpportunities int     `json:"total_opportunities"`
	AverageScore       float64 `json:"average_score"`
	CertifiedExperts   int     `json:"certified_experts"`
}

// SearchResult is the complete answer to one expert search.
type SearchResult struct {
	Query   string         `json:"query"`
	Terms   []string       `json:"terms"`
	Experts []ExpertResult `json:"experts"`
	Summary Summary        `json:"summary"`

	// Notice carries user-visible degradation messages (simplified search
	// used, opportunity data unavailable). Empty on the happy path.
	Notice string `json:"notice,omitempty"`
}

// DirectoryEntry is one row of the engineer directory.
type DirectoryEntry struct {
	EmployeeID     string   `json:"employee_id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	College        string   `json:"college,omitempty"`
	Employers      []string `json:"employers,omitempty"`
	HighSkills     []string `json:"high_skills,omitempty"`
	Specialties    []string `json:"specialties,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	SkillCount     int      `json:"skill_count"`
}

// DirectoryResult is the answer to a directory browse.
type DirectoryResult struct {
	Entries  []DirectoryEntry `json:"entries"`
	Total    int              `json:"total"`
	Colleges []string         `json:"colleges"`
}
