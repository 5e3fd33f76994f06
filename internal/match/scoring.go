// internal/match/scoring.go
// Demographic compatibility between two profiles: eight independently
// capped sub-factors plus a community bonus, summed and clamped to 100.
//
// Every function here is pure and never errors: a missing attribute on
// either side simply skips that sub-factor's contribution.

package match

import (
	"fmt"
	"math"
	"time"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

const (
	maxMatchScore = 100

	maxAgeScore        = 15
	maxEducationScore  = 15
	maxProfessionScore = 10
	maxLocationScore   = 10
	maxIncomeScore     = 10
	maxLifestyleScore  = 10
	maxFamilyScore     = 10
	maxPreferenceScore = 20

	communityBonus    = 5
	communityBonusTag = "Yadhavar"
)

// educationRank orders education levels so adjacent levels score
// partial credit. Unknown levels rank lowest.
var educationRank = map[string]int{
	"PhD":           5,
	"Post Graduate": 4,
	"Graduate":      3,
	"Diploma":       2,
	"12th":          1,
	"10th":          0,
}

// relatedProfessions groups professions whose members pair well
var relatedProfessions = [][]string{
	{"Doctor", "Nurse", "Pharmacist"},
	{"Engineer", "Architect", "Technician"},
	{"Teacher", "Professor", "Lecturer"},
	{"Business", "Entrepreneur", "Trader"},
	{"Government", "Politician", "Officer"},
}

// FactorScore is one named sub-factor contribution of a match score
type FactorScore struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	Percent     int    `json:"percent"`
	Description string `json:"description"`
}

// Breakdown is the per-factor view of a demographic match score
type Breakdown struct {
	Total   int           `json:"total"` // 0-100
	Max     int           `json:"max"`
	Factors []FactorScore `json:"factors"`
}

// CalculateMatchScore computes the demographic compatibility of two
// profiles on the 0-100 scale
func CalculateMatchScore(a, b *profile.Profile) int {
	return ScoreBreakdown(a, b).Total
}

// ScoreBreakdown computes the full per-factor breakdown. The factor
// order is fixed for display.
func ScoreBreakdown(a, b *profile.Profile) *Breakdown {
	factors := []FactorScore{
		ageFactor(a, b),
		educationFactor(a, b),
		professionFactor(a, b),
		locationFactor(a, b),
		incomeFactor(a, b),
		lifestyleFactor(a, b),
		familyFactor(a, b),
		preferenceFactor(a, b),
	}

	total := 0
	for _, f := range factors {
		total += f.Score
	}
	total += sharedCommunityBonus(a, b)

	if total > maxMatchScore {
		total = maxMatchScore
	}

	return &Breakdown{Total: total, Max: maxMatchScore, Factors: factors}
}

// ageFactor: the closer in age, the higher the score
func ageFactor(a, b *profile.Profile) FactorScore {
	if a.DateOfBirth.IsZero() || b.DateOfBirth.IsZero() {
		return newFactorScore("Age Compatibility", 0, maxAgeScore, "Age unavailable on one side")
	}

	// Recompute from date of birth; the stored Age field is only a
	// serialization convenience and may not be populated.
	now := time.Now()
	ageA, ageB := a.AgeAt(now), b.AgeAt(now)
	diff := ageA - ageB
	if diff < 0 {
		diff = -diff
	}

	score := 0
	switch {
	case diff <= 3:
		score = 15
	case diff <= 5:
		score = 10
	case diff <= 8:
		score = 5
	}

	return newFactorScore("Age Compatibility", score, maxAgeScore,
		fmt.Sprintf("Age difference of %d years", diff))
}

// educationFactor scores by distance between education ranks
func educationFactor(a, b *profile.Profile) FactorScore {
	if a.Education == nil || b.Education == nil {
		return newFactorScore("Education Compatibility", 0, maxEducationScore, "Education unavailable on one side")
	}

	diff := educationRank[*a.Education] - educationRank[*b.Education]
	if diff < 0 {
		diff = -diff
	}

	score := 0
	desc := "Different education levels"
	switch diff {
	case 0:
		score = 15
		desc = "Same education level"
	case 1:
		score = 10
	case 2:
		score = 5
	}

	return newFactorScore("Education Compatibility", score, maxEducationScore, desc)
}

// professionFactor: same or related professions score full; a mismatch
// still earns partial credit, never zero
func professionFactor(a, b *profile.Profile) FactorScore {
	if a.Profession == nil || b.Profession == nil {
		return newFactorScore("Profession Compatibility", 0, maxProfessionScore, "Profession unavailable on one side")
	}

	if *a.Profession == *b.Profession || inSameProfessionGroup(*a.Profession, *b.Profession) {
		return newFactorScore("Profession Compatibility", 10, maxProfessionScore,
			fmt.Sprintf("%s and %s complement each other", *a.Profession, *b.Profession))
	}

	return newFactorScore("Profession Compatibility", 5, maxProfessionScore, "Different professional fields")
}

func inSameProfessionGroup(p1, p2 string) bool {
	for _, group := range relatedProfessions {
		in1, in2 := false, false
		for _, p := range group {
			if p == p1 {
				in1 = true
			}
			if p == p2 {
				in2 = true
			}
		}
		if in1 && in2 {
			return true
		}
	}
	return false
}

// locationFactor walks down city, state, country, then relocation
// willingness
func locationFactor(a, b *profile.Profile) FactorScore {
	if a.CurrentCity == nil || b.CurrentCity == nil {
		return newFactorScore("Location Compatibility", 0, maxLocationScore, "Location unavailable on one side")
	}

	switch {
	case *a.CurrentCity == *b.CurrentCity:
		return newFactorScore("Location Compatibility", 10, maxLocationScore, "Same city")
	case a.CurrentState != nil && b.CurrentState != nil && *a.CurrentState == *b.CurrentState:
		return newFactorScore("Location Compatibility", 7, maxLocationScore, "Same state")
	case a.CurrentCountry != nil && b.CurrentCountry != nil && *a.CurrentCountry == *b.CurrentCountry:
		return newFactorScore("Location Compatibility", 5, maxLocationScore, "Same country")
	case a.WillingToRelocate || b.WillingToRelocate:
		return newFactorScore("Location Compatibility", 3, maxLocationScore, "Willing to relocate")
	}

	return newFactorScore("Location Compatibility", 0, maxLocationScore, "Different locations")
}

// incomeFactor scores by the ratio of the lower to the higher income
func incomeFactor(a, b *profile.Profile) FactorScore {
	if a.AnnualIncome == nil || b.AnnualIncome == nil || *a.AnnualIncome <= 0 || *b.AnnualIncome <= 0 {
		return newFactorScore("Income Compatibility", 0, maxIncomeScore, "Income unavailable on one side")
	}

	lo, hi := *a.AnnualIncome, *b.AnnualIncome
	if lo > hi {
		lo, hi = hi, lo
	}
	ratio := float64(lo) / float64(hi)

	score := 2
	switch {
	case ratio >= 0.8:
		score = 10
	case ratio >= 0.6:
		score = 7
	case ratio >= 0.4:
		score = 5
	}

	return newFactorScore("Income Compatibility", score, maxIncomeScore,
		fmt.Sprintf("Income ratio %.1f", ratio))
}

// lifestyleFactor sums diet, smoking and drinking matches. The cap is
// a no-op with the current weights but guards future changes.
func lifestyleFactor(a, b *profile.Profile) FactorScore {
	score := 0
	if a.Diet != nil && b.Diet != nil && *a.Diet == *b.Diet {
		score += 3
	}
	if a.Smoking != nil && b.Smoking != nil && *a.Smoking == *b.Smoking {
		score += 3
	}
	if a.Drinking != nil && b.Drinking != nil && *a.Drinking == *b.Drinking {
		score += 4
	}
	if score > maxLifestyleScore {
		score = maxLifestyleScore
	}

	desc := "Different lifestyle choices"
	if score == maxLifestyleScore {
		desc = "Matching lifestyle choices"
	} else if score > 0 {
		desc = "Partially matching lifestyle choices"
	}

	return newFactorScore("Lifestyle Compatibility", score, maxLifestyleScore, desc)
}

// familyFactor rewards a shared sub-community and, following tradition,
// a *different* gotra: same-gotra pairings are discouraged, so the
// difference earns the points, not the match.
func familyFactor(a, b *profile.Profile) FactorScore {
	score := 0
	if a.SubCommunity != nil && b.SubCommunity != nil && *a.SubCommunity == *b.SubCommunity {
		score += 5
	}
	if a.Gotra != nil && b.Gotra != nil && *a.Gotra != *b.Gotra {
		score += 5
	}

	return newFactorScore("Family Background", score, maxFamilyScore,
		"Community and gotra considerations")
}

// preferenceFactor evaluates each side's stated preferences against the
// other's attributes: +3 per satisfied criterion, both directions
// summed, capped at 20. Deliberately asymmetric per direction.
func preferenceFactor(a, b *profile.Profile) FactorScore {
	score := satisfiedPreferences(a, b) + satisfiedPreferences(b, a)
	if score > maxPreferenceScore {
		score = maxPreferenceScore
	}

	return newFactorScore("Preference Match", score, maxPreferenceScore,
		"Mutual preference satisfaction")
}

// satisfiedPreferences counts how well candidate fits seeker's stated
// preferences: 3 points each for age, education and profession.
func satisfiedPreferences(seeker, candidate *profile.Profile) int {
	if seeker.Preferences == nil {
		return 0
	}

	score := 0
	prefs := seeker.Preferences
	if prefs.AgeRange != nil && !candidate.DateOfBirth.IsZero() && prefs.AgeRange.Contains(candidate.AgeAt(time.Now())) {
		score += 3
	}
	if len(prefs.Education) > 0 && candidate.Education != nil && containsString(prefs.Education, *candidate.Education) {
		score += 3
	}
	if len(prefs.Profession) > 0 && candidate.Profession != nil && containsString(prefs.Profession, *candidate.Profession) {
		score += 3
	}

	return score
}

// sharedCommunityBonus is a flat platform-specific bonus when both
// members carry the platform's community tag
func sharedCommunityBonus(a, b *profile.Profile) int {
	if a.SubCommunity != nil && b.SubCommunity != nil &&
		*a.SubCommunity == *b.SubCommunity && *a.SubCommunity == communityBonusTag {
		return communityBonus
	}
	return 0
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func newFactorScore(name string, score, max int, desc string) FactorScore {
	percent := 0
	if max > 0 {
		percent = int(math.Round(float64(score) / float64(max) * 100))
	}
	return FactorScore{Name: name, Score: score, MaxScore: max, Percent: percent, Description: desc}
}
