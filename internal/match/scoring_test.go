package match

import (
	"testing"
	"time"

	"github.com/nkrishnan/sambandh-backend/internal/profile"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

// dob returns a birth date giving exactly the wanted age today
func dob(age int) time.Time {
	return time.Now().AddDate(-age, 0, -1)
}

func testProfile(age int, education, profession, city string, income int64, subCommunity, gotra string) *profile.Profile {
	return &profile.Profile{
		DateOfBirth:  dob(age),
		Education:    strPtr(education),
		Profession:   strPtr(profession),
		CurrentCity:  strPtr(city),
		AnnualIncome: intPtr(income),
		Diet:         strPtr("Vegetarian"),
		Smoking:      strPtr("No"),
		Drinking:     strPtr("No"),
		SubCommunity: strPtr(subCommunity),
		Gotra:        strPtr(gotra),
	}
}

func TestCalculateMatchScoreWorkedExample(t *testing.T) {
	// 30-year-old engineer and 32-year-old doctor, both graduates in
	// Bangalore, matching lifestyle, same sub-community, different gotra,
	// income ratio exactly 0.8, no stated preferences.
	a := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")
	b := testProfile(32, "Graduate", "Doctor", "Bangalore", 1500000, "Gowda", "Vasishtha")

	breakdown := ScoreBreakdown(a, b)

	wantFactors := map[string]int{
		"Age Compatibility":        15, // 2 year gap
		"Education Compatibility":  15, // same level
		"Profession Compatibility": 5,  // unrelated fields
		"Location Compatibility":   10, // same city
		"Income Compatibility":     10, // ratio 0.8
		"Lifestyle Compatibility":  10, // full match
		"Family Background":        10, // same sub-community, different gotra
		"Preference Match":         0,  // neither side stated preferences
	}

	for _, f := range breakdown.Factors {
		want, ok := wantFactors[f.Name]
		if !ok {
			t.Errorf("unexpected factor %q", f.Name)
			continue
		}
		if f.Score != want {
			t.Errorf("%s = %d, want %d", f.Name, f.Score, want)
		}
	}

	if breakdown.Total != 75 {
		t.Fatalf("Total = %d, want 75", breakdown.Total)
	}

	if tier := Classify(breakdown.Total, ScalePercent).Tier; tier != "Excellent" {
		t.Errorf("tier = %q, want Excellent", tier)
	}
}

func TestSharedCommunityBonus(t *testing.T) {
	a := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Yadhavar", "Kashyapa")
	b := testProfile(32, "Graduate", "Doctor", "Bangalore", 1500000, "Yadhavar", "Vasishtha")

	// Same worked example but with the platform community tag shared on
	// both sides: the flat bonus lifts 75 to 80.
	if got := CalculateMatchScore(a, b); got != 80 {
		t.Errorf("score with shared community tag = %d, want 80", got)
	}

	// A shared sub-community that is not the platform tag gets no bonus
	c := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")
	d := testProfile(32, "Graduate", "Doctor", "Bangalore", 1500000, "Gowda", "Vasishtha")
	if got := CalculateMatchScore(c, d); got != 75 {
		t.Errorf("score without platform tag = %d, want 75", got)
	}
}

func TestCalculateMatchScoreSymmetricWithoutPreferences(t *testing.T) {
	a := testProfile(28, "Post Graduate", "Teacher", "Mysore", 800000, "Gowda", "Kashyapa")
	b := testProfile(34, "Graduate", "Engineer", "Bangalore", 1500000, "Lingayat", "Vasishtha")

	if ab, ba := CalculateMatchScore(a, b), CalculateMatchScore(b, a); ab != ba {
		t.Errorf("score not symmetric: a->b = %d, b->a = %d", ab, ba)
	}
}

func TestPreferenceFactorIsDirectional(t *testing.T) {
	a := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")
	a.Preferences = &profile.PartnerPreferences{
		AgeRange:   &profile.Range{Min: 28, Max: 35},
		Education:  []string{"Graduate", "Post Graduate"},
		Profession: []string{"Doctor"},
	}
	b := testProfile(32, "Graduate", "Doctor", "Bangalore", 1500000, "Gowda", "Vasishtha")

	// All three of a's criteria are satisfied by b; b has none stated.
	f := preferenceFactor(a, b)
	if f.Score != 9 {
		t.Errorf("preference score = %d, want 9", f.Score)
	}

	// Both directions sum and cap at 20
	b.Preferences = &profile.PartnerPreferences{
		AgeRange:   &profile.Range{Min: 25, Max: 32},
		Education:  []string{"Graduate"},
		Profession: []string{"Engineer"},
	}
	f = preferenceFactor(a, b)
	if f.Score != 18 {
		t.Errorf("bidirectional preference score = %d, want 18", f.Score)
	}
}

func TestPreferenceAgeRangeUsesFullWindow(t *testing.T) {
	seeker := testProfile(30, "Graduate", "Engineer", "Bangalore", 1200000, "Gowda", "Kashyapa")
	seeker.Preferences = &profile.PartnerPreferences{
		AgeRange: &profile.Range{Min: 25, Max: 35},
	}

	// A candidate at the top of the range must still satisfy it
	older := testProfile(35, "Graduate", "Doctor", "Bangalore", 1500000, "Gowda", "Vasishtha")
	if got := satisfiedPreferences(seeker, older); got != 3 {
		t.Errorf("candidate at range max scored %d, want 3", got)
	}

	outside := testProfile(36, "Graduate", "Doctor", "Bangalore", 1500000, "Gowda", "Vasishtha")
	if got := satisfiedPreferences(seeker, outside); got != 0 {
		t.Errorf("candidate past range max scored %d, want 0", got)
	}
}

func TestMissingAttributesSkipFactors(t *testing.T) {
	a := &profile.Profile{DateOfBirth: dob(30)}
	b := &profile.Profile{DateOfBirth: dob(31)}

	breakdown := ScoreBreakdown(a, b)
	if breakdown.Total != 15 {
		t.Errorf("sparse profiles Total = %d, want 15 from age alone", breakdown.Total)
	}

	// Fully empty profiles score zero without panicking
	empty := ScoreBreakdown(&profile.Profile{}, &profile.Profile{})
	if empty.Total != 0 {
		t.Errorf("empty profiles Total = %d, want 0", empty.Total)
	}
}

func TestScoreStaysWithinBounds(t *testing.T) {
	a := testProfile(30, "Graduate", "Engineer", "Bangalore", 1000000, "Yadhavar", "Kashyapa")
	a.Preferences = &profile.PartnerPreferences{
		AgeRange:   &profile.Range{Min: 25, Max: 35},
		Education:  []string{"Graduate"},
		Profession: []string{"Engineer"},
	}
	b := testProfile(30, "Graduate", "Engineer", "Bangalore", 1000000, "Yadhavar", "Vasishtha")
	b.Preferences = a.Preferences

	score := CalculateMatchScore(a, b)
	if score < 0 || score > 100 {
		t.Fatalf("score = %d, want within [0,100]", score)
	}
}

func TestProfessionFactorNeverZeroWhenKnown(t *testing.T) {
	related := professionFactor(
		testProfile(30, "Graduate", "Doctor", "Bangalore", 1, "", ""),
		testProfile(30, "Graduate", "Nurse", "Bangalore", 1, "", ""),
	)
	if related.Score != 10 {
		t.Errorf("related professions scored %d, want 10", related.Score)
	}

	unrelated := professionFactor(
		testProfile(30, "Graduate", "Doctor", "Bangalore", 1, "", ""),
		testProfile(30, "Graduate", "Engineer", "Bangalore", 1, "", ""),
	)
	if unrelated.Score != 5 {
		t.Errorf("unrelated professions scored %d, want 5", unrelated.Score)
	}
}

func TestFamilyFactorDiscouragesSameGotra(t *testing.T) {
	same := familyFactor(
		testProfile(30, "Graduate", "Engineer", "Bangalore", 1, "Gowda", "Kashyapa"),
		testProfile(30, "Graduate", "Doctor", "Bangalore", 1, "Gowda", "Kashyapa"),
	)
	different := familyFactor(
		testProfile(30, "Graduate", "Engineer", "Bangalore", 1, "Gowda", "Kashyapa"),
		testProfile(30, "Graduate", "Doctor", "Bangalore", 1, "Gowda", "Vasishtha"),
	)

	if same.Score != 5 {
		t.Errorf("same gotra scored %d, want 5", same.Score)
	}
	if different.Score != 10 {
		t.Errorf("different gotra scored %d, want 10", different.Score)
	}
}

func TestLocationFactorFallbackChain(t *testing.T) {
	base := func() *profile.Profile {
		return &profile.Profile{
			DateOfBirth:    dob(30),
			CurrentCity:    strPtr("Bangalore"),
			CurrentState:   strPtr("Karnataka"),
			CurrentCountry: strPtr("India"),
		}
	}

	tests := []struct {
		name string
		b    *profile.Profile
		want int
	}{
		{"same city", base(), 10},
		{"same state", &profile.Profile{CurrentCity: strPtr("Mysore"), CurrentState: strPtr("Karnataka"), CurrentCountry: strPtr("India")}, 7},
		{"same country", &profile.Profile{CurrentCity: strPtr("Chennai"), CurrentState: strPtr("Tamil Nadu"), CurrentCountry: strPtr("India")}, 5},
		{"relocation", &profile.Profile{CurrentCity: strPtr("Dubai"), CurrentState: strPtr("Dubai"), CurrentCountry: strPtr("UAE"), WillingToRelocate: true}, 3},
		{"no overlap", &profile.Profile{CurrentCity: strPtr("Dubai"), CurrentState: strPtr("Dubai"), CurrentCountry: strPtr("UAE")}, 0},
	}

	for _, tt := range tests {
		if got := locationFactor(base(), tt.b).Score; got != tt.want {
			t.Errorf("%s: score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestIncomeFactorTiers(t *testing.T) {
	tests := []struct {
		a, b int64
		want int
	}{
		{1000000, 1000000, 10},
		{800000, 1000000, 10},
		{600000, 1000000, 7},
		{400000, 1000000, 5},
		{100000, 1000000, 2},
	}

	for _, tt := range tests {
		f := incomeFactor(
			testProfile(30, "Graduate", "Engineer", "Bangalore", tt.a, "", ""),
			testProfile(30, "Graduate", "Doctor", "Bangalore", tt.b, "", ""),
		)
		if f.Score != tt.want {
			t.Errorf("incomeFactor(%d, %d) = %d, want %d", tt.a, tt.b, f.Score, tt.want)
		}
	}
}
