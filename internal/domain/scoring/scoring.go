// Package scoring computes the relevance score used to rank experts.
package scoring

import (
	"math"
	"strings"

	"github.com/BriFlake/expert-finder/internal/domain/model"
)

// Fixed scoring weights. The four components are individually capped, so the
// theoretical maximum is skillCap+certCap+specialtyCap+opportunityCap = 100.
const (
	highSkillPoints   = 25
	mediumSkillPoints = 12
	basicSkillPoints  = 3
	skillCap          = 40

	pointsPerCert = 3
	certCap       = 15

	pointsPerSpecialty = 2
	specialtyCap       = 10

	opportunityBase = 2
	closedWonBonus  = 5
	opportunityCap  = 35

	dealLarge  = 1_000_000
	dealMedium = 500_000
	dealSmall  = 100_000

	dealLargeBonus  = 8
	dealMediumBonus = 5
	dealSmallBonus  = 2

	multiWinHighBonus = 10 // 3+ closed-won deals
	multiWinLowBonus  = 5  // 2 closed-won deals

	portfolioLarge       = 5_000_000
	portfolioMedium      = 2_000_000
	portfolioLargeBonus  = 10
	portfolioMediumBonus = 5
)

const closedWonMarker = "CLOSED WON"

// Score computes the relevance score in [0,100], rounded to one decimal.
// It is a pure function of the matched skill buckets and the linked
// opportunity list.
func Score(skills model.SkillMatches, opportunities []model.LinkedOpportunity) float64 {
	score := skillComponent(skills) +
		capped(float64(len(skills.Certifications)*pointsPerCert), certCap) +
		capped(float64(len(skills.Specialties)*pointsPerSpecialty), specialtyCap) +
		opportunityComponent(opportunities)

	return math.Round(score*10) / 10
}

// skillComponent adds a flat bonus per non-empty tier. The flags are
// independent and additive; only the sum is capped.
func skillComponent(skills model.SkillMatches) float64 {
	var pts float64
	if len(skills.High) > 0 {
		pts += highSkillPoints
	}
	if len(skills.Medium) > 0 {
		pts += mediumSkillPoints
	}
	if len(skills.Basic) > 0 {
		pts += basicSkillPoints
	}
	return capped(pts, skillCap)
}

func opportunityComponent(opportunities []model.LinkedOpportunity) float64 {
	if len(opportunities) == 0 {
		return 0
	}

	var pts, totalAmount float64
	var closedWon int

	for _, opp := range opportunities {
		pts += opportunityBase

		if strings.Contains(strings.ToUpper(opp.Stage), closedWonMarker) {
			closedWon++
			pts += closedWonBonus
		}

		if opp.Amount > 0 {
			totalAmount += opp.Amount
			switch {
			case opp.Amount >= dealLarge:
				pts += dealLargeBonus
			case opp.Amount >= dealMedium:
				pts += dealMediumBonus
			case opp.Amount >= dealSmall:
				pts += dealSmallBonus
			}
		}
	}

	switch {
	case closedWon >= 3:
		pts += multiWinHighBonus
	case closedWon >= 2:
		pts += multiWinLowBonus
	}

	switch {
	case totalAmount >= portfolioLarge:
		pts += portfolioLargeBonus
	case totalAmount >= portfolioMedium:
		pts += portfolioMediumBonus
	}

	return capped(pts, opportunityCap)
}

func capped(v, limit float64) float64 {
	return math.Min(v, limit)
}
