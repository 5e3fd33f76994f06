// internal/match/ranker.go

package match

import (
	"sort"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

// DefaultSuggestionLimit caps the match-suggestion list
const DefaultSuggestionLimit = 20

// ScoredCandidate pairs a candidate profile with its match score
type ScoredCandidate struct {
	Profile *profile.Profile `json:"profile"`
	Score   int              `json:"match_score"`
}

// RankCandidates scores every candidate in the pool against the
// requesting user, sorts descending and truncates to topN. The sort is
// stable: candidates with equal scores keep their pool order. topN <= 0
// returns the full ranked list.
//
// Pure transform over the supplied pool; the pool's construction
// (hard filters, exclusions) is the repository's responsibility.
func RankCandidates(user *profile.Profile, pool []*profile.Profile, topN int) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(pool))
	for _, candidate := range pool {
		ranked = append(ranked, ScoredCandidate{
			Profile: candidate,
			Score:   CalculateMatchScore(user, candidate),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
