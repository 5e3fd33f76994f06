// internal/horoscope/compat.go
// Guna-milan compatibility between two charts: five additive
// sub-factors, each independently bounded, summed and clamped to 36.

package horoscope

import (
	"fmt"
	"math"
)

const (
	maxRashiScore     = 12
	maxNakshatraScore = 8
	maxManglikScore   = 8
	maxPadaScore      = 4
	maxPlanetScore    = 4
)

// MatchScore computes the composite compatibility of two charts.
// Pure and symmetric in its bounds: the result is always in [0, 36].
func MatchScore(a, b *Horoscope) *MatchResult {
	factors := []Factor{
		rashiFactor(a, b),
		nakshatraFactor(a, b),
		manglikFactor(a, b),
		padaFactor(a, b),
		planetFactor(a, b),
	}

	total := 0
	for _, f := range factors {
		total += f.Score
	}
	if total > maxGunaPoints {
		total = maxGunaPoints
	}

	return &MatchResult{Total: total, Max: maxGunaPoints, Factors: factors}
}

// rashiFactor scores sign compatibility against the affinity table:
// good 12, average 8, poor 4, unlisted pair 6.
func rashiFactor(a, b *Horoscope) Factor {
	score := 6
	if affinity, ok := rashiCompatibility[a.Rashi]; ok {
		switch {
		case containsSign(affinity.good, b.Rashi):
			score = 12
		case containsSign(affinity.average, b.Rashi):
			score = 8
		case containsSign(affinity.poor, b.Rashi):
			score = 4
		}
	}

	desc := fmt.Sprintf("%s and %s need consideration", a.Rashi, b.Rashi)
	if score >= 8 {
		desc = fmt.Sprintf("%s and %s are compatible", a.Rashi, b.Rashi)
	}
	return newFactor("Rashi (Moon Sign) Compatibility", score, maxRashiScore, desc)
}

// nakshatraFactor: a same-asterism union scores lower than a mixed one.
// Same-nakshatra pairings are traditionally treated as less favorable.
func nakshatraFactor(a, b *Horoscope) Factor {
	score := 6
	desc := fmt.Sprintf("%s and %s create harmonious energy", a.Nakshatra, b.Nakshatra)
	if a.Nakshatra == b.Nakshatra {
		score = 4
		desc = fmt.Sprintf("Both born under %s, a less favorable pairing", a.Nakshatra)
	}
	return newFactor("Nakshatra Compatibility", score, maxNakshatraScore, desc)
}

// manglikFactor: matching affliction status on both sides scores full,
// an asymmetric affliction is penalized heavily.
func manglikFactor(a, b *Horoscope) Factor {
	if a.Manglik == b.Manglik {
		return newFactor("Manglik Compatibility", 8, maxManglikScore,
			"Manglik status matches perfectly")
	}
	return newFactor("Manglik Compatibility", 2, maxManglikScore,
		"Manglik mismatch - remedies may be required")
}

// padaFactor: different quarters score higher than identical ones
func padaFactor(a, b *Horoscope) Factor {
	score := 4
	if a.NakshatraPada == b.NakshatraPada {
		score = 2
	}
	desc := fmt.Sprintf("Pada %d and Pada %d combination", a.NakshatraPada, b.NakshatraPada)
	return newFactor("Nakshatra Pada", score, maxPadaScore, desc)
}

// planetFactor compares the reference planet (sun) placement. Skipped
// entirely when either chart lacks the placement.
func planetFactor(a, b *Horoscope) Factor {
	sunA, okA := a.Planets["sun"]
	sunB, okB := b.Planets["sun"]
	if !okA || !okB {
		return newFactor("Planetary Alignment", 0, maxPlanetScore,
			"Planetary placements unavailable")
	}

	score := 3
	desc := fmt.Sprintf("Sun in %s and %s complement each other", sunA, sunB)
	if sunA == sunB {
		score = 2
		desc = fmt.Sprintf("Sun in %s on both sides", sunA)
	}
	return newFactor("Planetary Alignment", score, maxPlanetScore, desc)
}

func newFactor(name string, score, max int, desc string) Factor {
	percent := 0
	if max > 0 {
		percent = int(math.Round(float64(score) / float64(max) * 100))
	}
	return Factor{Name: name, Score: score, MaxScore: max, Percent: percent, Description: desc}
}
