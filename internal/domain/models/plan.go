package models

import "time"

type PlanType string

const (
	PlanFree     PlanType = "free"
	PlanStandard PlanType = "standard"
	PlanPremium  PlanType = "premium"
)

type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Credit grants are flat per tier regardless of billing cycle; the yearly
// checkout only changes price and expiry, not the credit pool.
var planCreditGrants = map[PlanType]int64{
	PlanFree:     500,
	PlanStandard: 5000,
	PlanPremium:  20000,
}

var planMonthlyPriceCents = map[PlanType]int64{
	PlanFree:     0,
	PlanStandard: 1900,
	PlanPremium:  4900,
}

var planYearlyPriceCents = map[PlanType]int64{
	PlanFree:     0,
	PlanStandard: 19000,
	PlanPremium:  49000,
}

// ParsePlanType rejects anything outside the three known tiers. Plan names
// arrive as free-form strings from the API and must be validated here.
func ParsePlanType(s string) (PlanType, error) {
	switch PlanType(s) {
	case PlanFree, PlanStandard, PlanPremium:
		return PlanType(s), nil
	}
	return "", ErrUnknownPlan
}

func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case CycleMonthly, CycleYearly:
		return BillingCycle(s), nil
	}
	return "", ErrUnknownCycle
}

// CreditGrant returns the credit pool granted on (re)subscription to a tier.
func CreditGrant(plan PlanType) int64 {
	return planCreditGrants[plan]
}

func PriceCents(plan PlanType, cycle BillingCycle) int64 {
	if cycle == CycleYearly {
		return planYearlyPriceCents[plan]
	}
	return planMonthlyPriceCents[plan]
}

func CycleDuration(cycle BillingCycle) time.Duration {
	if cycle == CycleYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

type PlanView struct {
	Plan        PlanType     `json:"plan"`
	Name        string       `json:"name"`
	PriceCents  int64        `json:"price_cents"`
	Cycle       BillingCycle `json:"billing_cycle"`
	Credits     int64        `json:"credits_per_month"`
	Description string       `json:"description"`
	Features    []string     `json:"features"`
	Popular     bool         `json:"popular,omitempty"`
}

// PlanCatalog is the static pricing-page listing for one billing cycle.
func PlanCatalog(cycle BillingCycle) []PlanView {
	return []PlanView{
		{
			Plan:        PlanFree,
			Name:        "Free",
			PriceCents:  PriceCents(PlanFree, cycle),
			Cycle:       cycle,
			Credits:     CreditGrant(PlanFree),
			Description: "For occasional use and trying out the service.",
			Features: []string{
				"Basic text humanizing",
				"Limited AI detection checks",
				"Standard processing speed",
				"Web access only",
			},
		},
		{
			Plan:        PlanStandard,
			Name:        "Standard",
			PriceCents:  PriceCents(PlanStandard, cycle),
			Cycle:       cycle,
			Credits:     CreditGrant(PlanStandard),
			Description: "Perfect for regular content creators.",
			Features: []string{
				"Advanced text humanizing",
				"Priority AI detection checks",
				"Faster processing speed",
				"Web access & basic API",
				"Email support",
			},
			Popular: true,
		},
		{
			Plan:        PlanPremium,
			Name:        "Premium",
			PriceCents:  PriceCents(PlanPremium, cycle),
			Cycle:       cycle,
			Credits:     CreditGrant(PlanPremium),
			Description: "For professional content teams and agencies.",
			Features: []string{
				"Professional text humanizing",
				"Advanced AI detection checks",
				"Fastest processing speed",
				"Full API access",
				"Multiple writing styles",
				"Priority support",
				"Team collaboration",
			},
		},
	}
}
