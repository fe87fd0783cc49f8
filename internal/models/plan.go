package models

// Billing plan tiers as reported by the account API.
const (
	PlanFree   = "free"
	PlanGrowth = "growth"
	PlanPro    = "pro"
)

// Team is an account's team as returned by the account API. The faucet only
// cares about the billing plan.
type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BillingPlan string `json:"billingPlan"`
}

// IsPaidPlan reports whether the plan grants faucet access. Anything other
// than the free tier qualifies.
func IsPaidPlan(plan string) bool {
	return plan != "" && plan != PlanFree
}
