package match

import "testing"

func TestClassifyPercentThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{75, "Excellent"},
		{74, "Good"},
		{60, "Good"},
		{59, "Average"},
		{45, "Average"},
		{44, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		got := Classify(tt.score, ScalePercent)
		if got.Tier != tt.want {
			t.Errorf("Classify(%d, percent).Tier = %q, want %q", tt.score, got.Tier, tt.want)
		}
		if got.Description == "" || got.Recommendation == "" {
			t.Errorf("Classify(%d, percent) missing description or recommendation", tt.score)
		}
	}
}

func TestClassifyGunaThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{36, "Excellent"},
		{30, "Excellent"},
		{29, "Good"},
		{24, "Good"},
		{23, "Average"},
		{18, "Average"},
		{17, "Poor"},
		{0, "Poor"},
	}

	for _, tt := range tests {
		got := Classify(tt.score, ScaleGuna)
		if got.Tier != tt.want {
			t.Errorf("Classify(%d, guna).Tier = %q, want %q", tt.score, got.Tier, tt.want)
		}
	}
}

func TestScalesUseDistinctThresholds(t *testing.T) {
	// 30 is Poor on the percent scale but Excellent on guna
	if tier := Classify(30, ScalePercent).Tier; tier != "Poor" {
		t.Errorf("Classify(30, percent).Tier = %q, want Poor", tier)
	}
	if tier := Classify(30, ScaleGuna).Tier; tier != "Excellent" {
		t.Errorf("Classify(30, guna).Tier = %q, want Excellent", tier)
	}
}
