package horoscope

import "testing"

func chart(rashi, nakshatra string, pada int, manglik bool, sunSign string) *Horoscope {
	h := &Horoscope{
		Rashi:         rashi,
		Nakshatra:     nakshatra,
		NakshatraPada: pada,
		Manglik:       manglik,
	}
	if sunSign != "" {
		h.Planets = PlanetPlacements{"sun": sunSign}
	}
	return h
}

func TestMatchScoreBounds(t *testing.T) {
	// Best case: good rashi pairing, different nakshatra/pada, matching
	// manglik, differing sun signs
	a := chart("Aries", "Rohini", 1, false, "Leo")
	b := chart("Leo", "Chitra", 3, false, "Virgo")

	result := MatchScore(a, b)
	if result.Total < 0 || result.Total > 36 {
		t.Fatalf("Total = %d, want within [0,36]", result.Total)
	}
	if result.Max != 36 {
		t.Errorf("Max = %d, want 36", result.Max)
	}

	// Empty charts must still score without panicking, bounded
	empty := MatchScore(&Horoscope{}, &Horoscope{})
	if empty.Total < 0 || empty.Total > 36 {
		t.Fatalf("empty charts Total = %d, want within [0,36]", empty.Total)
	}
}

func TestRashiFactorTiers(t *testing.T) {
	tests := []struct {
		rashiA, rashiB string
		want           int
	}{
		{"Aries", "Leo", 12},   // good
		{"Aries", "Aries", 8},  // average
		{"Aries", "Cancer", 4}, // poor
		{"Aries", "Virgo", 6},  // unlisted pair, neutral default
	}

	for _, tt := range tests {
		f := rashiFactor(chart(tt.rashiA, "Rohini", 1, false, ""), chart(tt.rashiB, "Chitra", 2, false, ""))
		if f.Score != tt.want {
			t.Errorf("rashiFactor(%s, %s) = %d, want %d", tt.rashiA, tt.rashiB, f.Score, tt.want)
		}
	}
}

func TestNakshatraFactorSameIsLessFavorable(t *testing.T) {
	same := nakshatraFactor(chart("Aries", "Rohini", 1, false, ""), chart("Leo", "Rohini", 2, false, ""))
	different := nakshatraFactor(chart("Aries", "Rohini", 1, false, ""), chart("Leo", "Chitra", 2, false, ""))

	if same.Score != 4 {
		t.Errorf("same nakshatra score = %d, want 4", same.Score)
	}
	if different.Score != 6 {
		t.Errorf("different nakshatra score = %d, want 6", different.Score)
	}
	if same.Score >= different.Score {
		t.Error("same-nakshatra union must score below a mixed one")
	}
}

func TestManglikFactorPenalizesAsymmetry(t *testing.T) {
	both := manglikFactor(chart("Aries", "Rohini", 1, true, ""), chart("Scorpio", "Chitra", 2, true, ""))
	neither := manglikFactor(chart("Gemini", "Rohini", 1, false, ""), chart("Leo", "Chitra", 2, false, ""))
	mixed := manglikFactor(chart("Aries", "Rohini", 1, true, ""), chart("Leo", "Chitra", 2, false, ""))

	if both.Score != 8 || neither.Score != 8 {
		t.Errorf("matching manglik status: both=%d neither=%d, want 8 for each", both.Score, neither.Score)
	}
	if mixed.Score != 2 {
		t.Errorf("asymmetric manglik score = %d, want 2", mixed.Score)
	}
}

func TestPlanetFactorSkippedWhenMissing(t *testing.T) {
	f := planetFactor(chart("Aries", "Rohini", 1, false, ""), chart("Leo", "Chitra", 2, false, "Leo"))
	if f.Score != 0 {
		t.Errorf("missing sun placement: score = %d, want 0", f.Score)
	}

	same := planetFactor(chart("Aries", "Rohini", 1, false, "Leo"), chart("Leo", "Chitra", 2, false, "Leo"))
	if same.Score != 2 {
		t.Errorf("same sun sign: score = %d, want 2", same.Score)
	}

	diff := planetFactor(chart("Aries", "Rohini", 1, false, "Leo"), chart("Leo", "Chitra", 2, false, "Virgo"))
	if diff.Score != 3 {
		t.Errorf("different sun sign: score = %d, want 3", diff.Score)
	}
}

func TestMatchScoreReportsAllFactors(t *testing.T) {
	result := MatchScore(
		chart("Aries", "Rohini", 1, false, "Leo"),
		chart("Leo", "Chitra", 3, false, "Virgo"),
	)

	if len(result.Factors) != 5 {
		t.Fatalf("got %d factors, want 5", len(result.Factors))
	}
	for _, f := range result.Factors {
		if f.Name == "" || f.Description == "" {
			t.Errorf("factor %+v missing name or description", f)
		}
		if f.MaxScore <= 0 {
			t.Errorf("factor %s has MaxScore %d", f.Name, f.MaxScore)
		}
		if f.Percent < 0 || f.Percent > 100 {
			t.Errorf("factor %s percent = %d, want within [0,100]", f.Name, f.Percent)
		}
	}
}

func TestMatchScoreIdempotent(t *testing.T) {
	a := chart("Cancer", "Pushya", 2, false, "Cancer")
	b := chart("Scorpio", "Anuradha", 4, true, "Scorpio")

	first := MatchScore(a, b)
	second := MatchScore(a, b)
	if first.Total != second.Total {
		t.Errorf("scores differ between identical calls: %d vs %d", first.Total, second.Total)
	}
}
