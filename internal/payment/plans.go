// internal/payment/plans.go

package payment

// Plan catalog. Amounts are in paise.
var plans = map[string]*Plan{
	"basic": {
		Code:           "basic",
		Name:           "Basic",
		DurationMonths: 1,
		Amount:         99900,
		Currency:       "INR",
		Features: []string{
			"View unlimited profiles",
			"Send 10 interests per month",
			"Basic search filters",
			"Profile highlighting",
		},
	},
	"gold": {
		Code:           "gold",
		Name:           "Gold",
		DurationMonths: 3,
		Amount:         249900,
		Currency:       "INR",
		Features: []string{
			"All Basic features",
			"Send unlimited interests",
			"Advanced search filters",
			"Priority customer support",
			"Horoscope matching",
		},
	},
	"platinum": {
		Code:           "platinum",
		Name:           "Platinum",
		DurationMonths: 12,
		Amount:         899900,
		Currency:       "INR",
		Features: []string{
			"All Gold features",
			"Profile verification badge",
			"Featured listing",
			"Video call access",
			"Personal matchmaking assistance",
		},
	},
}

// GetPlan looks up a plan by code
func GetPlan(code string) (*Plan, bool) {
	plan, ok := plans[code]
	return plan, ok
}

// ListPlans returns the catalog in ascending price order
func ListPlans() []*Plan {
	return []*Plan{plans["basic"], plans["gold"], plans["platinum"]}
}
