package profile

import (
	"testing"
	"time"
)

func TestAgeAt(t *testing.T) {
	dob := time.Date(1994, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), 29},
		{"on birthday", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 30},
		{"day after birthday", time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC), 30},
		{"end of year", time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), 30},
	}

	p := &Profile{DateOfBirth: dob}
	for _, tt := range tests {
		if got := p.AgeAt(tt.now); got != tt.want {
			t.Errorf("%s: AgeAt = %d, want %d", tt.name, got, tt.want)
		}
	}

	// Zero date of birth never yields a negative age
	empty := &Profile{}
	if got := empty.AgeAt(time.Now()); got != 0 {
		t.Errorf("zero DOB: AgeAt = %d, want 0", got)
	}
}

func TestRangeContains(t *testing.T) {
	r := &Range{Min: 25, Max: 35}

	for _, v := range []int{25, 30, 35} {
		if !r.Contains(v) {
			t.Errorf("Contains(%d) = false, want true", v)
		}
	}
	for _, v := range []int{24, 36} {
		if r.Contains(v) {
			t.Errorf("Contains(%d) = true, want false", v)
		}
	}

	var nilRange *Range
	if nilRange.Contains(30) {
		t.Error("nil range must not contain anything")
	}
}

func TestComputeCompletion(t *testing.T) {
	sparse := &Profile{
		FullName:    "Asha Rao",
		Gender:      "Female",
		DateOfBirth: time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC),
	}

	completion := computeCompletion(sparse)
	if completion.Percentage >= 100 {
		t.Errorf("sparse profile completion = %d%%, want below 100", completion.Percentage)
	}
	if len(completion.Missing) == 0 {
		t.Error("sparse profile reported nothing missing")
	}

	about := "Looking for a life partner"
	pic := "https://cdn.example.com/p.jpg"
	height := 160
	status := "Never Married"
	edu := "Graduate"
	prof := "Engineer"
	income := int64(1000000)
	city := "Bangalore"
	diet := "Vegetarian"
	community := "Gowda"
	tongue := "Kannada"

	full := &Profile{
		FullName:       "Asha Rao",
		Gender:         "Female",
		DateOfBirth:    time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC),
		About:          &about,
		ProfilePicture: &pic,
		Height:         &height,
		MaritalStatus:  &status,
		Education:      &edu,
		Profession:     &prof,
		AnnualIncome:   &income,
		CurrentCity:    &city,
		Diet:           &diet,
		Community:      &community,
		MotherTongue:   &tongue,
		Preferences:    &PartnerPreferences{AgeRange: &Range{Min: 28, Max: 36}},
	}

	completion = computeCompletion(full)
	if completion.Percentage != 100 {
		t.Errorf("full profile completion = %d%%, want 100", completion.Percentage)
	}
	if len(completion.Missing) != 0 {
		t.Errorf("full profile still missing %v", completion.Missing)
	}
}

func TestParseBirthDateRejectsUnderage(t *testing.T) {
	tooYoung := time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	if _, err := parseBirthDate(tooYoung); err != ErrUnderage {
		t.Errorf("underage birth date: err = %v, want ErrUnderage", err)
	}

	if _, err := parseBirthDate("not-a-date"); err != ErrInvalidBirthDate {
		t.Errorf("malformed birth date: err = %v, want ErrInvalidBirthDate", err)
	}

	adult := time.Now().AddDate(-25, 0, 0).Format("2006-01-02")
	if _, err := parseBirthDate(adult); err != nil {
		t.Errorf("adult birth date: unexpected err %v", err)
	}
}
