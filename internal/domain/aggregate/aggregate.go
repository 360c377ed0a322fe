// Package aggregate merges skills rows with opportunity rows into ranked
// expert results.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/BriFlake/expert-finder/internal/domain/arrayfield"
	"github.com/BriFlake/expert-finder/internal/domain/extract"
	"github.com/BriFlake/expert-finder/internal/domain/model"
	"github.com/BriFlake/expert-finder/internal/domain/scoring"
)

// linked collects the opportunity context attributed to one user id.
type linked struct {
	opportunities []model.LinkedOpportunity
	count         int
	industries    map[string]struct{}
	lastActivity  time.Time
}

// Build constructs one ExpertResult per distinct non-null employee id in the
// skills rows, attaches matching opportunities by user id, and scores each
// expert. Rows without an employee id are dropped silently.
func Build(skillRows []model.SkillRecord, oppRows []model.OpportunityRecord, terms []string) []model.ExpertResult {
	byUser := linkOpportunities(oppRows)

	seen := make(map[string]struct{}, len(skillRows))
	experts := make([]model.ExpertResult, 0, len(skillRows))

	for _, rec := range skillRows {
		if rec.EmployeeID == "" {
			continue
		}
		if _, dup := seen[rec.EmployeeID]; dup {
			continue
		}
		seen[rec.EmployeeID] = struct{}{}

		expert := model.ExpertResult{
			EmployeeID:      rec.EmployeeID,
			Name:            rec.Name,
			Email:           rec.Email,
			UserID:          rec.UserID,
			Skills:          extract.Matches(rec, terms),
			Employers:       arrayfield.Parse(rec.Employers),
			ManagerEndorsed: extract.ManagerEndorsed(rec),
		}

		if link, ok := byUser[rec.UserID]; ok && rec.UserID != "" {
			expert.Opportunities = link.opportunities
			expert.OpportunityCount = link.count
			expert.Industries = sortedKeys(link.industries)
			expert.LastActivity = link.lastActivity
		}

		expert.RelevanceScore = scoring.Score(expert.Skills, expert.Opportunities)
		experts = append(experts, expert)
	}

	return experts
}

// linkOpportunities indexes opportunity rows by lead engineer and owner.
// Both attributions are independent: a single row can land on two users,
// each with its own role label.
func linkOpportunities(rows []model.OpportunityRecord) map[string]*linked {
	byUser := make(map[string]*linked)

	attach := func(userID, role string, count int, row model.OpportunityRecord) {
		if userID == "" {
			return
		}
		link, ok := byUser[userID]
		if !ok {
			link = &linked{industries: make(map[string]struct{})}
			byUser[userID] = link
		}
		link.opportunities = append(link.opportunities, model.LinkedOpportunity{
			Name:       row.Name,
			Competitor: row.Competitor,
			CloseDate:  row.CloseDate,
			Stage:      row.Stage,
			Amount:     row.Amount,
			Industry:   row.AccountIndustry,
			Role:       role,
		})
		link.count = count
		if row.AccountIndustry != "" {
			link.industries[row.AccountIndustry] = struct{}{}
		}
		if row.CloseDate.After(link.lastActivity) {
			link.lastActivity = row.CloseDate
		}
	}

	for _, row := range rows {
		attach(row.LeadEngineerID, model.RoleLeadEngineer, row.LeadEngineerOpportunityCount, row)
		attach(row.OwnerID, model.RoleOwner, row.OwnerOpportunityCount, row)
	}

	return byUser
}

// Filter returns the subset of experts passing every user-selected filter.
// It is a pure function of (experts, filters, now).
func Filter(experts []model.ExpertResult, f model.Filters, now time.Time) []model.ExpertResult {
	cutoff := f.Recency.Cutoff(now)

	out := make([]model.ExpertResult, 0, len(experts))
	for _, e := range experts {
		if !passesSkillLevel(e, f.MinSkillLevel) {
			continue
		}
		if f.RequireCertification && len(e.Skills.Certifications) == 0 {
			continue
		}
		if f.RequireManagerEndorsement && !e.ManagerEndorsed {
			continue
		}
		// Absence of opportunity data never disqualifies on recency.
		if !cutoff.IsZero() && !e.LastActivity.IsZero() && e.LastActivity.Before(cutoff) {
			continue
		}
		if len(f.Industries) > 0 && !intersects(e.Industries, f.Industries) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func passesSkillLevel(e model.ExpertResult, level model.SkillLevel) bool {
	switch level {
	case model.SkillLevelHigh:
		return len(e.Skills.High) > 0
	case model.SkillLevelMedium:
		return len(e.Skills.Medium) > 0 || len(e.Skills.High) > 0
	default:
		return true
	}
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Rank orders experts by relevance score descending. Ties break by name
// ascending, then employee id, so equal scores have a stable, documented
// order.
func Rank(experts []model.ExpertResult) []model.ExpertResult {
	sort.SliceStable(experts, func(i, j int) bool {
		if experts[i].RelevanceScore != experts[j].RelevanceScore {
			return experts[i].RelevanceScore > experts[j].RelevanceScore
		}
		if experts[i].Name != experts[j].Name {
			return experts[i].Name < experts[j].Name
		}
		return experts[i].EmployeeID < experts[j].EmployeeID
	})
	return experts
}

// Summarize computes the aggregates displayed next to a result list.
func Summarize(experts []model.ExpertResult) model.Summary {
	s := model.Summary{ExpertCount: len(experts)}
	if len(experts) == 0 {
		return s
	}

	var totalScore float64
	for _, e := range experts {
		s.TotalOpportunities += e.OpportunityCount
		totalScore += e.RelevanceScore
		if len(e.Skills.Certifications) > 0 {
			s.CertifiedExperts++
		}
	}
	s.AverageScore = roundOne(totalScore / float64(len(experts)))
	return s
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
