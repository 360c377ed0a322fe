package model

import (
	"strings"
	"time"
)

// SkillLevel is the minimum-proficiency filter value.
type SkillLevel string

// Minimum skill levels. Basic behaves like Any: every expert self-assesses at
// least at the basic tier, so the option exists for symmetry only.
const (
	SkillLevelAny    SkillLevel = "any"
	SkillLevelBasic  SkillLevel = "basic"
	SkillLevelMedium SkillLevel = "medium"
	SkillLevelHigh   SkillLevel = "high"
)

// ParseSkillLevel normalizes a filter input; unknown values mean Any.
func ParseSkillLevel(s string) SkillLevel {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(s))) {
	case SkillLevelBasic:
		return SkillLevelBasic
	case SkillLevelMedium:
		return SkillLevelMedium
	case SkillLevelHigh:
		return SkillLevelHigh
	default:
		return SkillLevelAny
	}
}

// Recency is the opportunity recency window filter value.
type Recency string

// Recency windows.
const (
	RecencyAll      Recency = "all"
	Recency6Months  Recency = "6m"
	RecencyLastYear Recency = "1y"
	Recency2Years   Recency = "2y"
)

// ParseRecency normalizes a filter input; unknown values mean all time.
func ParseRecency(s string) Recency {
	switch Recency(strings.ToLower(strings.TrimSpace(s))) {
	case Recency6Months:
		return Recency6Months
	case RecencyLastYear:
		return RecencyLastYear
	case Recency2Years:
		return Recency2Years
	default:
		return RecencyAll
	}
}

// Window day spans matching the dashboard's recency choices.
const (
	days6Months = 180
	daysOneYear = 365
	daysTwoYear = 730
)

// Cutoff returns the earliest admissible close date for the window, or the
// zero time when the window is unbounded.
func (r Recency) Cutoff(now time.Time) time.Time {
	switch r {
	case Recency6Months:
		return now.AddDate(0, 0, -days6Months)
	case RecencyLastYear:
		return now.AddDate(0, 0, -daysOneYear)
	case Recency2Years:
		return now.AddDate(0, 0, -daysTwoYear)
	default:
		return time.Time{}
	}
}

// Filters are the user-selected constraints applied after the search queries.
type Filters struct {
	MinSkillLevel             SkillLevel
	RequireCertification      bool
	RequireManagerEndorsement bool
	Recency                   Recency
	Industries                []string
}
