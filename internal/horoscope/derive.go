// internal/horoscope/derive.go
// Derives a chart from birth details using fixed rule tables.
//
// The nakshatra and pada rules approximate from the calendar date and
// clock hour rather than true lunar longitude. That is deliberate: the
// platform ships a rule-table engine, not an ephemeris. Swapping in
// real astronomical data only requires replacing this file.

package horoscope

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingBirthDetails = errors.New("date, time and place of birth are required")
	ErrInvalidBirthTime    = errors.New("time of birth must be in HH:MM format")
)

const maxGunaPoints = 36

// Derive computes the full astrological chart for the given birth
// details. Pure function over the inputs and the fixed tables.
func Derive(details BirthDetails) (*Horoscope, error) {
	if details.DateOfBirth.IsZero() || details.TimeOfBirth == "" || details.PlaceOfBirth == "" {
		return nil, ErrMissingBirthDetails
	}

	hour, err := parseBirthHour(details.TimeOfBirth)
	if err != nil {
		return nil, err
	}

	month := int(details.DateOfBirth.Month())
	day := details.DateOfBirth.Day()

	rashi := DeriveRashi(month, day)
	nakshatra := deriveNakshatra(details.DateOfBirth)

	return &Horoscope{
		DateOfBirth:   details.DateOfBirth,
		TimeOfBirth:   details.TimeOfBirth,
		PlaceOfBirth:  details.PlaceOfBirth,
		Latitude:      details.Latitude,
		Longitude:     details.Longitude,
		Rashi:         rashi,
		Nakshatra:     nakshatra,
		NakshatraPada: derivePada(hour),
		Manglik:       IsManglik(rashi, hour),
		Planets:       derivePlanets(month, day),
		MatchPoints:   baseGunaPoints(rashi, nakshatra),
	}, nil
}

// DeriveRashi resolves (month, day) against the twelve fixed date
// ranges. The ranges are exhaustive, so the fallback at the bottom is
// unreachable for any valid calendar date; hitting it is a bug in the
// table, not in the input.
func DeriveRashi(month, day int) string {
	for _, r := range zodiacRanges {
		if (month == r.startMonth && day >= r.startDay) ||
			(month == r.endMonth && day <= r.endDay) {
			return r.name
		}
	}
	log.Printf("invariant violation: no rashi range matched month=%d day=%d", month, day)
	return zodiacRanges[0].name
}

// deriveNakshatra picks from the 27 asterisms by day-of-year modulo 27.
// Known approximation: the true nakshatra depends on the moon's
// position, not the calendar date.
func deriveNakshatra(dob time.Time) string {
	return nakshatras[dob.YearDay()%len(nakshatras)]
}

// derivePada maps the birth hour onto one of the 4 quarters
func derivePada(hour int) int {
	return (hour % 4) + 1
}

// IsManglik reports mars affliction. Two disjunctive triggers: the
// rashi belongs to the affliction set, or the birth hour falls in
// the [00:00, 04:00) window.
func IsManglik(rashi string, hour int) bool {
	return manglikRashis[rashi] || (hour >= 0 && hour < 4)
}

// derivePlanets assigns each planet a rashi via its fixed month offset
func derivePlanets(month, day int) PlanetPlacements {
	placements := make(PlanetPlacements, len(planetMonthOffset))
	for _, p := range planetMonthOffset {
		shifted := (month-1+p.offset)%12 + 1
		placements[p.planet] = DeriveRashi(shifted, day)
	}
	return placements
}

// baseGunaPoints seeds a chart's standalone guna score: a fixed
// baseline plus a per-rashi bonus, plus a flat bonus for the
// favorable nakshatras, clamped to the 36-point scale.
func baseGunaPoints(rashi, nakshatra string) int {
	points := 18
	if bonus, ok := rashiGunaBonus[rashi]; ok {
		points += bonus
	} else {
		points += 6
	}
	if favorableNakshatras[nakshatra] {
		points += 4
	}
	if points > maxGunaPoints {
		points = maxGunaPoints
	}
	return points
}

// parseBirthHour extracts the hour from an HH:MM string
func parseBirthHour(timeOfBirth string) (int, error) {
	parts := strings.Split(timeOfBirth, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidBirthTime
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidBirthTime
	}
	if m, err := strconv.Atoi(parts[1]); err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidBirthTime
	}
	return hour, nil
}
