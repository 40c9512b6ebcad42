package character

import (
	"sort"

	"github.com/cory-johannsen/investigator/internal/game/ruleset"
)

// DefaultRecommendations is the list length used when Recommend is asked for n <= 0.
const DefaultRecommendations = 5

// Recommendation pairs a profession with the occupation points it would grant.
type Recommendation struct {
	Profession       *ruleset.Profession
	OccupationPoints int
}

// Recommend ranks professions by the occupation points they would yield for
// attrs, highest first. Ties keep the given order.
//
// Postcondition: len(result) <= n (or DefaultRecommendations when n <= 0).
func Recommend(attrs Attributes, professions []*ruleset.Profession, n int) []Recommendation {
	if n <= 0 {
		n = DefaultRecommendations
	}
	recs := make([]Recommendation, 0, len(professions))
	for _, p := range professions {
		if p == nil {
			continue
		}
		recs = append(recs, Recommendation{
			Profession:       p,
			OccupationPoints: CalculateBudget(attrs, p).Occupation,
		})
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].OccupationPoints > recs[j].OccupationPoints
	})
	if len(recs) > n {
		recs = recs[:n]
	}
	return recs
}
