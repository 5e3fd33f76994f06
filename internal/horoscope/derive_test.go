package horoscope

import (
	"testing"
	"time"
)

func validSigns() map[string]bool {
	m := make(map[string]bool, len(zodiacSigns))
	for _, s := range zodiacSigns {
		m[s] = true
	}
	return m
}

func TestDeriveRashiTotality(t *testing.T) {
	known := validSigns()

	// Walk every day of a leap year so Feb 29 is covered too
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 366; d++ {
		date := start.AddDate(0, 0, d)
		sign := DeriveRashi(int(date.Month()), date.Day())
		if !known[sign] {
			t.Fatalf("DeriveRashi(%d, %d) = %q, not a valid sign", date.Month(), date.Day(), sign)
		}
	}
}

func TestDeriveRashiRangesDoNotOverlap(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 366; d++ {
		date := start.AddDate(0, 0, d)
		month, day := int(date.Month()), date.Day()

		matches := 0
		for _, r := range zodiacRanges {
			if (month == r.startMonth && day >= r.startDay) ||
				(month == r.endMonth && day <= r.endDay) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("month=%d day=%d matched %d ranges, want exactly 1", month, day, matches)
		}
	}
}

func TestDeriveRashiYearEndWrap(t *testing.T) {
	if got := DeriveRashi(12, 25); got != "Capricorn" {
		t.Errorf("DeriveRashi(12, 25) = %q, want Capricorn", got)
	}
	if got := DeriveRashi(1, 10); got != "Capricorn" {
		t.Errorf("DeriveRashi(1, 10) = %q, want Capricorn", got)
	}
	if got := DeriveRashi(12, 21); got != "Sagittarius" {
		t.Errorf("DeriveRashi(12, 21) = %q, want Sagittarius", got)
	}
	if got := DeriveRashi(1, 20); got != "Aquarius" {
		t.Errorf("DeriveRashi(1, 20) = %q, want Aquarius", got)
	}
}

func TestDeriveRashiBoundaries(t *testing.T) {
	tests := []struct {
		month, day int
		want       string
	}{
		{3, 21, "Aries"},
		{4, 19, "Aries"},
		{4, 20, "Taurus"},
		{8, 22, "Leo"},
		{8, 23, "Virgo"},
		{2, 29, "Pisces"},
	}

	for _, tt := range tests {
		if got := DeriveRashi(tt.month, tt.day); got != tt.want {
			t.Errorf("DeriveRashi(%d, %d) = %q, want %q", tt.month, tt.day, got, tt.want)
		}
	}
}

func TestIsManglik(t *testing.T) {
	// Sign membership triggers regardless of hour
	if !IsManglik("Scorpio", 14) {
		t.Error("Scorpio born at 14:00 should be manglik via sign rule")
	}
	if !IsManglik("Aries", 12) {
		t.Error("Aries should be manglik via sign rule")
	}

	// Early-hour rule triggers regardless of sign
	if !IsManglik("Gemini", 2) {
		t.Error("birth at 02:00 should be manglik via hour rule")
	}

	// Neither rule
	if IsManglik("Gemini", 10) {
		t.Error("Gemini at 10:00 should not be manglik")
	}
	if IsManglik("Leo", 4) {
		t.Error("hour 4 is outside the [0,4) affliction window")
	}
}

func TestDerive(t *testing.T) {
	details := BirthDetails{
		DateOfBirth:  time.Date(1994, 12, 25, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "14:30",
		PlaceOfBirth: "Bangalore",
	}

	chart, err := Derive(details)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}

	if chart.Rashi != "Capricorn" {
		t.Errorf("Rashi = %q, want Capricorn", chart.Rashi)
	}
	if chart.NakshatraPada != (14%4)+1 {
		t.Errorf("NakshatraPada = %d, want %d", chart.NakshatraPada, (14%4)+1)
	}
	if !chart.Manglik {
		t.Error("Capricorn should be manglik via sign rule")
	}
	if len(chart.Planets) != 9 {
		t.Errorf("got %d planetary placements, want 9", len(chart.Planets))
	}
	for planet, sign := range chart.Planets {
		found := false
		for _, s := range zodiacSigns {
			if s == sign {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("planet %s placed in invalid sign %q", planet, sign)
		}
	}
	if chart.MatchPoints < 0 || chart.MatchPoints > 36 {
		t.Errorf("MatchPoints = %d, want within [0,36]", chart.MatchPoints)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	details := BirthDetails{
		DateOfBirth:  time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "08:45",
		PlaceOfBirth: "Chennai",
	}

	first, err := Derive(details)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}
	second, err := Derive(details)
	if err != nil {
		t.Fatalf("Derive returned error: %v", err)
	}

	if first.Rashi != second.Rashi || first.Nakshatra != second.Nakshatra ||
		first.NakshatraPada != second.NakshatraPada || first.Manglik != second.Manglik ||
		first.MatchPoints != second.MatchPoints {
		t.Error("Derive is not deterministic for identical inputs")
	}
}

func TestDeriveRejectsMissingInputs(t *testing.T) {
	_, err := Derive(BirthDetails{TimeOfBirth: "10:00", PlaceOfBirth: "Mysore"})
	if err != ErrMissingBirthDetails {
		t.Errorf("missing date: got %v, want ErrMissingBirthDetails", err)
	}

	_, err = Derive(BirthDetails{
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "25:00",
		PlaceOfBirth: "Mysore",
	})
	if err != ErrInvalidBirthTime {
		t.Errorf("bad hour: got %v, want ErrInvalidBirthTime", err)
	}

	_, err = Derive(BirthDetails{
		DateOfBirth:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeOfBirth:  "0930",
		PlaceOfBirth: "Mysore",
	})
	if err != ErrInvalidBirthTime {
		t.Errorf("missing colon: got %v, want ErrInvalidBirthTime", err)
	}
}
