// internal/horoscope/tables.go
// Fixed lookup tables for the rule-based astrology engine.
// These are initialized once and never mutated at runtime, so the
// scoring functions can be called concurrently without coordination.

package horoscope

// zodiacSigns is the cyclic order of the 12 rashis
var zodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// zodiacRange maps a rashi to its calendar date range. The ranges are
// contiguous and exhaustive; Capricorn wraps the year-end boundary.
type zodiacRange struct {
	name                 string
	startMonth, startDay int
	endMonth, endDay     int
}

var zodiacRanges = []zodiacRange{
	{"Aries", 3, 21, 4, 19},
	{"Taurus", 4, 20, 5, 20},
	{"Gemini", 5, 21, 6, 20},
	{"Cancer", 6, 21, 7, 22},
	{"Leo", 7, 23, 8, 22},
	{"Virgo", 8, 23, 9, 22},
	{"Libra", 9, 23, 10, 22},
	{"Scorpio", 10, 23, 11, 21},
	{"Sagittarius", 11, 22, 12, 21},
	{"Capricorn", 12, 22, 1, 19},
	{"Aquarius", 1, 20, 2, 18},
	{"Pisces", 2, 19, 3, 20},
}

// nakshatras is the ordered list of the 27 lunar asterisms
var nakshatras = []string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta",
	"Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// manglikRashis are the signs that carry mars affliction on their own
var manglikRashis = map[string]bool{
	"Aries":     true,
	"Scorpio":   true,
	"Capricorn": true,
}

// planetMonthOffset assigns each of the 9 planets a fixed month offset
// from the birth month. This is a deterministic stand-in for a real
// ephemeris, kept intentionally simple.
var planetMonthOffset = []struct {
	planet string
	offset int
}{
	{"sun", 0},
	{"moon", 3},
	{"mars", 1},
	{"mercury", 2},
	{"jupiter", 9},
	{"venus", 7},
	{"saturn", 10},
	{"rahu", 5},
	{"ketu", 11},
}

// rashiGunaBonus feeds the base guna points of a single chart
var rashiGunaBonus = map[string]int{
	"Aries": 6, "Taurus": 7, "Gemini": 6, "Cancer": 8,
	"Leo": 7, "Virgo": 6, "Libra": 7, "Scorpio": 8,
	"Sagittarius": 6, "Capricorn": 7, "Aquarius": 6, "Pisces": 8,
}

// favorableNakshatras add a flat bonus to the base guna points
var favorableNakshatras = map[string]bool{
	"Rohini":     true,
	"Mrigashira": true,
	"Chitra":     true,
	"Swati":      true,
	"Shravana":   true,
}

// rashiAffinity partitions, per rashi, the other rashis into good,
// average and poor unions. Pairs not listed fall back to a neutral score.
type rashiAffinity struct {
	good    []string
	average []string
	poor    []string
}

var rashiCompatibility = map[string]rashiAffinity{
	"Aries":       {good: []string{"Leo", "Sagittarius", "Gemini"}, average: []string{"Aries", "Aquarius"}, poor: []string{"Cancer", "Capricorn"}},
	"Taurus":      {good: []string{"Virgo", "Capricorn", "Cancer"}, average: []string{"Taurus", "Pisces"}, poor: []string{"Leo", "Aquarius"}},
	"Gemini":      {good: []string{"Libra", "Aquarius", "Aries"}, average: []string{"Gemini", "Leo"}, poor: []string{"Virgo", "Pisces"}},
	"Cancer":      {good: []string{"Scorpio", "Pisces", "Taurus"}, average: []string{"Cancer", "Virgo"}, poor: []string{"Aries", "Libra"}},
	"Leo":         {good: []string{"Sagittarius", "Aries", "Gemini"}, average: []string{"Leo", "Libra"}, poor: []string{"Taurus", "Scorpio"}},
	"Virgo":       {good: []string{"Capricorn", "Taurus", "Cancer"}, average: []string{"Virgo", "Scorpio"}, poor: []string{"Gemini", "Sagittarius"}},
	"Libra":       {good: []string{"Aquarius", "Gemini", "Leo"}, average: []string{"Libra", "Sagittarius"}, poor: []string{"Cancer", "Capricorn"}},
	"Scorpio":     {good: []string{"Pisces", "Cancer", "Virgo"}, average: []string{"Scorpio", "Capricorn"}, poor: []string{"Leo", "Aquarius"}},
	"Sagittarius": {good: []string{"Aries", "Leo", "Libra"}, average: []string{"Sagittarius", "Aquarius"}, poor: []string{"Virgo", "Pisces"}},
	"Capricorn":   {good: []string{"Taurus", "Virgo", "Scorpio"}, average: []string{"Capricorn", "Pisces"}, poor: []string{"Aries", "Libra"}},
	"Aquarius":    {good: []string{"Gemini", "Libra", "Aries"}, average: []string{"Aquarius", "Sagittarius"}, poor: []string{"Taurus", "Scorpio"}},
	"Pisces":      {good: []string{"Cancer", "Scorpio", "Taurus"}, average: []string{"Pisces", "Capricorn"}, poor: []string{"Gemini", "Sagittarius"}},
}

func containsSign(signs []string, sign string) bool {
	for _, s := range signs {
		if s == sign {
			return true
		}
	}
	return false
}
