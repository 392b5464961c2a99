// Package stats computes chart series and calorie statistics over the full
// recipe collection.
package stats

import (
	"math"

	"github.com/pageza/recipebox/backend/internal/model"
)

// NearAverageTolerance is the absolute calorie distance from the average
// within which a recipe counts as near-average.
const NearAverageTolerance = 20

// Tier is the calorie highlight class of a recipe card.
type Tier string

const (
	TierMax         Tier = "max"
	TierMin         Tier = "min"
	TierNearAverage Tier = "near-average"
	TierNeutral     Tier = "neutral"
)

// CalorieDatum is one bar of the calories chart.
type CalorieDatum struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// ProteinDatum is one slice of the protein chart.
type ProteinDatum struct {
	Name    string  `json:"name"`
	Protein float64 `json:"protein"`
}

// CookingDatum is one point of the cooking time chart.
type CookingDatum struct {
	Name        string `json:"name"`
	CookingTime int    `json:"cooking_time"`
}

// CalorieStats summarizes calories across a collection. All values are zero
// for an empty collection.
type CalorieStats struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
}

// Snapshot is the full set of derived statistics.
type Snapshot struct {
	Calories     []CalorieDatum `json:"calories"`
	Protein      []ProteinDatum `json:"protein"`
	CookingTime  []CookingDatum `json:"cooking_time"`
	CalorieStats CalorieStats   `json:"calorie_stats"`
	Count        int            `json:"count"`
}

// Compute derives every series and the calorie summary from recipes.
func Compute(recipes []model.Recipe) Snapshot {
	s := Snapshot{
		Calories:     make([]CalorieDatum, 0, len(recipes)),
		Protein:      make([]ProteinDatum, 0, len(recipes)),
		CookingTime:  make([]CookingDatum, 0, len(recipes)),
		CalorieStats: CalorieStatsOf(recipes),
		Count:        len(recipes),
	}
	for _, r := range recipes {
		s.Calories = append(s.Calories, CalorieDatum{Name: r.Title, Calories: r.NutritionalInfo.Calories})
		s.Protein = append(s.Protein, ProteinDatum{Name: r.Title, Protein: r.NutritionalInfo.Proteins})
		s.CookingTime = append(s.CookingTime, CookingDatum{Name: r.Title, CookingTime: r.CookingTime})
	}
	return s
}

// CalorieStatsOf returns the max, min and mean calories of recipes.
func CalorieStatsOf(recipes []model.Recipe) CalorieStats {
	if len(recipes) == 0 {
		return CalorieStats{}
	}

	cs := CalorieStats{Max: math.Inf(-1), Min: math.Inf(1)}
	var sum float64
	for _, r := range recipes {
		c := r.NutritionalInfo.Calories
		cs.Max = math.Max(cs.Max, c)
		cs.Min = math.Min(cs.Min, c)
		sum += c
	}
	cs.Avg = sum / float64(len(recipes))
	return cs
}

// Classify returns the tier of a recipe with the given calories. Max is
// checked before min, and min before near-average.
func Classify(calories float64, cs CalorieStats) Tier {
	switch {
	case calories == cs.Max:
		return TierMax
	case calories == cs.Min:
		return TierMin
	case math.Abs(calories-cs.Avg) <= NearAverageTolerance:
		return TierNearAverage
	default:
		return TierNeutral
	}
}
