package match

import (
	"testing"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

func TestRankCandidatesOrdersByScoreDescending(t *testing.T) {
	user := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")

	strong := testProfile(31, "Graduate", "Architect", "Bangalore", 1200000, "Gowda", "Vasishtha")
	weak := testProfile(45, "10th", "Trader", "Delhi", 100000, "Lingayat", "Kashyapa")
	middling := testProfile(36, "Graduate", "Doctor", "Mysore", 900000, "Gowda", "Vasishtha")

	ranked := RankCandidates(user, []*profile.Profile{weak, strong, middling}, 0)

	if len(ranked) != 3 {
		t.Fatalf("got %d candidates, want 3", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatalf("candidates not sorted descending at index %d: %d > %d",
				i, ranked[i].Score, ranked[i-1].Score)
		}
	}
	if ranked[0].Profile != strong {
		t.Errorf("strongest candidate not ranked first")
	}
}

func TestRankCandidatesTruncatesToTopN(t *testing.T) {
	user := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")

	pool := make([]*profile.Profile, 0, 30)
	for i := 0; i < 30; i++ {
		pool = append(pool, testProfile(28+i%10, "Graduate", "Doctor", "Bangalore", 1000000, "Gowda", "Vasishtha"))
	}

	ranked := RankCandidates(user, pool, DefaultSuggestionLimit)
	if len(ranked) != DefaultSuggestionLimit {
		t.Errorf("got %d candidates, want %d", len(ranked), DefaultSuggestionLimit)
	}

	full := RankCandidates(user, pool, 0)
	if len(full) != len(pool) {
		t.Errorf("topN 0 returned %d candidates, want the full %d", len(full), len(pool))
	}
}

func TestRankCandidatesStableOnTies(t *testing.T) {
	user := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")

	// Identical candidates score identically; pool order must survive
	first := testProfile(31, "Graduate", "Doctor", "Bangalore", 1200000, "Gowda", "Vasishtha")
	second := testProfile(31, "Graduate", "Doctor", "Bangalore", 1200000, "Gowda", "Vasishtha")
	third := testProfile(31, "Graduate", "Doctor", "Bangalore", 1200000, "Gowda", "Vasishtha")

	ranked := RankCandidates(user, []*profile.Profile{first, second, third}, 0)

	if ranked[0].Profile != first || ranked[1].Profile != second || ranked[2].Profile != third {
		t.Error("equal-score candidates did not keep their pool order")
	}
}

func TestRankCandidatesEmptyPool(t *testing.T) {
	user := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")

	ranked := RankCandidates(user, nil, DefaultSuggestionLimit)
	if len(ranked) != 0 {
		t.Errorf("empty pool produced %d candidates", len(ranked))
	}
}
