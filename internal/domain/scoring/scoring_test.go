package scoring_test

import (
	"testing"

	"github.com/BriFlake/expert-finder/internal/domain/model"
	"github.com/BriFlake/expert-finder/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScoreSkillComponent(t *testing.T) {
	Convey("Given matched skill buckets", t, func() {
		Convey("When nothing matched", func() {
			So(scoring.Score(model.SkillMatches{}, nil), ShouldEqual, 0)
		})

		Convey("When only the high tier matched", func() {
			skills := model.SkillMatches{High: []string{"Databricks"}}

			Convey("Then the score is the high-tier bonus", func() {
				So(scoring.Score(skills, nil), ShouldEqual, 25)
			})
		})

		Convey("When all three tiers matched", func() {
			skills := model.SkillMatches{
				High:   []string{"Databricks"},
				Medium: []string{"Spark"},
				Basic:  []string{"Hadoop"},
			}

			Convey("Then the sum 25+12+3 stays under the skill cap", func() {
				So(scoring.Score(skills, nil), ShouldEqual, 40)
			})
		})

		Convey("When a tier holds many values", func() {
			skills := model.SkillMatches{High: []string{"A", "B", "C", "D"}}

			Convey("Then the bonus is per tier, not per value", func() {
				So(scoring.Score(skills, nil), ShouldEqual, 25)
			})
		})
	})
}

func TestScoreCertsAndSpecialties(t *testing.T) {
	Convey("Given matched certifications and specialties", t, func() {
		Convey("When two certifications matched", func() {
			skills := model.SkillMatches{Certifications: []string{"AWS SA", "GCP PE"}}
			So(scoring.Score(skills, nil), ShouldEqual, 6)
		})

		Convey("When many certifications matched", func() {
			skills := model.SkillMatches{
				Certifications: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
			}

			Convey("Then the component caps at 15", func() {
				So(scoring.Score(skills, nil), ShouldEqual, 15)
			})
		})

		Convey("When many specialties matched", func() {
			skills := model.SkillMatches{
				Specialties: []string{"a", "b", "c", "d", "e", "f", "g"},
			}

			Convey("Then the component caps at 10", func() {
				So(scoring.Score(skills, nil), ShouldEqual, 10)
			})
		})
	})
}

func TestScoreOpportunityComponent(t *testing.T) {
	Convey("Given linked opportunities", t, func() {
		Convey("When one closed-won million-dollar deal is linked", func() {
			opps := []model.LinkedOpportunity{
				{Stage: "Closed Won", Amount: 1_200_000},
			}

			Convey("Then base, win and large-deal bonuses add to 15", func() {
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 15)
			})
		})

		Convey("When the stage casing differs", func() {
			opps := []model.LinkedOpportunity{{Stage: "closed won", Amount: 0}}

			Convey("Then the win still counts", func() {
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 7)
			})
		})

		Convey("When three deals are closed-won", func() {
			opps := []model.LinkedOpportunity{
				{Stage: "Closed Won"},
				{Stage: "Closed Won"},
				{Stage: "Closed Won"},
			}

			Convey("Then the multi-win bonus is applied once at the high rate", func() {
				// 3*(2+5) + 10 = 31
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 31)
			})
		})

		Convey("When two deals are closed-won", func() {
			opps := []model.LinkedOpportunity{
				{Stage: "Closed Won"},
				{Stage: "Closed Won"},
			}

			Convey("Then the low multi-win bonus applies", func() {
				// 2*(2+5) + 5 = 19
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 19)
			})
		})

		Convey("When the portfolio totals over five million", func() {
			opps := []model.LinkedOpportunity{
				{Stage: "Open", Amount: 3_000_000},
				{Stage: "Open", Amount: 2_500_000},
			}

			Convey("Then the component caps at 35", func() {
				// 2*2 + 2*8 + 10 = 30
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 30)
			})
		})

		Convey("When a large volume of deals is linked", func() {
			opps := make([]model.LinkedOpportunity, 20)
			for i := range opps {
				opps[i] = model.LinkedOpportunity{Stage: "Closed Won", Amount: 2_000_000}
			}

			Convey("Then the opportunity component never exceeds its cap", func() {
				So(scoring.Score(model.SkillMatches{}, opps), ShouldEqual, 35)
			})
		})
	})
}

func TestScoreBounds(t *testing.T) {
	Convey("Given maximal matches on every component", t, func() {
		skills := model.SkillMatches{
			High:           []string{"a"},
			Medium:         []string{"b"},
			Basic:          []string{"c"},
			Certifications: []string{"a", "b", "c", "d", "e", "f"},
			Specialties:    []string{"a", "b", "c", "d", "e", "f"},
		}
		opps := make([]model.LinkedOpportunity, 10)
		for i := range opps {
			opps[i] = model.LinkedOpportunity{Stage: "Closed Won", Amount: 2_000_000}
		}

		Convey("Then the total score is exactly 100", func() {
			So(scoring.Score(skills, opps), ShouldEqual, 100)
		})
	})
}
