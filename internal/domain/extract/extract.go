// Package extract partitions a skill record's array fields into proficiency
// buckets, keeping only values relevant to the search terms.
package extract

import (
	"strings"

	"github.com/BriFlake/expert-finder/internal/domain/arrayfield"
	"github.com/BriFlake/expert-finder/internal/domain/model"
)

// Proficiency tier composition:
// high   = self-assessed 300/400 or manager-scored 200/300/400
// medium = self-assessed 100/200 or manager-scored 100
// basic  = self-assessed 0/unset or manager-scored 0/unset

// Matches extracts the skill, certification and specialty values of rec that
// contain at least one search term (case-insensitive substring, binary match).
// Output buckets are deduplicated; order is not significant.
func Matches(rec model.SkillRecord, terms []string) model.SkillMatches {
	upper := upperTerms(terms)

	return model.SkillMatches{
		High: matchFields(upper,
			rec.SelfSkill300, rec.SelfSkill400,
			rec.MgrSkill200, rec.MgrSkill300, rec.MgrSkill400),
		Medium: matchFields(upper,
			rec.SelfSkill100, rec.SelfSkill200, rec.MgrSkill100),
		Basic: matchFields(upper,
			rec.SelfSkill0, rec.SelfSkillNone, rec.MgrSkill0, rec.MgrSkillNone),
		Certifications: matchFields(upper, rec.CertInternal, rec.CertExternal),
		Specialties:    matchFields(upper, rec.Specialties),
	}
}

// Profile extracts a record's headline skills without term filtering, for the
// engineer directory: high-tier skills, specialties and certifications.
func Profile(rec model.SkillRecord) model.SkillMatches {
	return model.SkillMatches{
		High: allFields(
			rec.SelfSkill400, rec.SelfSkill300,
			rec.MgrSkill400, rec.MgrSkill300),
		Certifications: allFields(rec.CertExternal, rec.CertInternal),
		Specialties:    allFields(rec.Specialties),
	}
}

// ManagerEndorsed reports whether any manager-scored bucket for levels
// 100-400 is non-empty on the raw record. The check deliberately ignores
// whether those skills matched the search terms.
func ManagerEndorsed(rec model.SkillRecord) bool {
	for _, field := range []string{rec.MgrSkill100, rec.MgrSkill200, rec.MgrSkill300, rec.MgrSkill400} {
		if len(arrayfield.Parse(field)) > 0 {
			return true
		}
	}
	return false
}

func upperTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// matchFields parses each raw field and keeps elements containing any term.
func matchFields(upperTerms []string, fields ...string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, field := range fields {
		for _, value := range arrayfield.Parse(field) {
			if !containsAny(value, upperTerms) {
				continue
			}
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}

// allFields parses each raw field and keeps every element, deduplicated.
func allFields(fields ...string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, field := range fields {
		for _, value := range arrayfield.Parse(field) {
			if _, dup := seen[value]; dup {
				continue
			}
			seen[value] = struct{}{}
			out = append(out, value)
		}
	}
	return out
}

func containsAny(value string, upperTerms []string) bool {
	upper := strings.ToUpper(value)
	for _, term := range upperTerms {
		if strings.Contains(upper, term) {
			return true
		}
	}
	return false
}
