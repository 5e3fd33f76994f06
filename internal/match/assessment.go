// internal/match/assessment.go
// Maps raw scores onto qualitative tiers. Pure lookup, two independent
// threshold tables: one for the 0-100 percentage scale, one for the
// 0-36 guna-milan scale.

package match

// Scale identifies which threshold table applies to a score
type Scale string

const (
	ScalePercent Scale = "percent" // demographic scores, 0-100
	ScaleGuna    Scale = "guna"    // horoscope scores, 0-36
)

// Assessment is a qualitative compatibility tier
type Assessment struct {
	Tier           string `json:"tier"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// Classify maps a raw score on the given scale to its tier
func Classify(score int, scale Scale) Assessment {
	if scale == ScaleGuna {
		return classifyGuna(score)
	}
	return classifyPercent(score)
}

func classifyPercent(score int) Assessment {
	switch {
	case score >= 75:
		return Assessment{
			Tier:           "Excellent",
			Description:    "Highly compatible across age, background and lifestyle",
			Recommendation: "Strongly recommended; reach out with confidence",
		}
	case score >= 60:
		return Assessment{
			Tier:           "Good",
			Description:    "Good compatibility with minor differences",
			Recommendation: "Recommended; discuss the differing areas early",
		}
	case score >= 45:
		return Assessment{
			Tier:           "Average",
			Description:    "Average compatibility, some important differences",
			Recommendation: "Proceed with careful consideration",
		}
	default:
		return Assessment{
			Tier:           "Poor",
			Description:    "Low compatibility, significant differences exist",
			Recommendation: "Not recommended without serious discussion",
		}
	}
}

func classifyGuna(score int) Assessment {
	switch {
	case score >= 30:
		return Assessment{
			Tier:           "Excellent",
			Description:    "Highly compatible match with strong horoscope alignment",
			Recommendation: "Highly recommended for marriage",
		}
	case score >= 24:
		return Assessment{
			Tier:           "Good",
			Description:    "Good compatibility with minor considerations",
			Recommendation: "Recommended with some remedies if needed",
		}
	case score >= 18:
		return Assessment{
			Tier:           "Average",
			Description:    "Average compatibility, needs careful consideration",
			Recommendation: "Consult an astrologer for detailed analysis",
		}
	default:
		return Assessment{
			Tier:           "Poor",
			Description:    "Low compatibility, significant differences",
			Recommendation: "Not recommended without proper remedies",
		}
	}
}
