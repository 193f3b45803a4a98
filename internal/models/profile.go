package models

import (
	"gorm.io/gorm"
)

// UserProfile tracks cumulative CO2 and budget usage for one session.
// Limits may be set below current usage; that is a supported over-limit
// state, not an error.
type UserProfile struct {
	gorm.Model        `json:"-"`
	SessionID         string  `gorm:"uniqueIndex" json:"-"`
	Name              string  `json:"name"`
	TotalCO2Used      float64 `json:"totalCo2Used"`
	CO2Limit          float64 `json:"co2Limit"`
	YearlyBudgetLimit float64 `json:"yearlyBudgetLimit"`
	CurrentSpend      float64 `json:"currentSpend"`
}

// UsageStats is derived from the profile on read, never stored. The
// display percentages clamp at 100 while the raw ratios keep going, so
// an over-limit profile stays distinguishable from an at-limit one.
type UsageStats struct {
	CO2Percent      float64 `json:"co2Percent" doc:"Display value, clamped at 100"`
	CO2Ratio        float64 `json:"co2Ratio" doc:"Raw used/limit ratio in percent"`
	CO2OverLimit    bool    `json:"co2OverLimit"`
	BudgetPercent   float64 `json:"budgetPercent" doc:"Display value, clamped at 100"`
	BudgetRatio     float64 `json:"budgetRatio" doc:"Raw spend/limit ratio in percent"`
	BudgetOverLimit bool    `json:"budgetOverLimit"`
}

func (p UserProfile) Usage() UsageStats {
	co2 := usageRatio(p.TotalCO2Used, p.CO2Limit)
	budget := usageRatio(p.CurrentSpend, p.YearlyBudgetLimit)
	return UsageStats{
		CO2Percent:      clamp100(co2),
		CO2Ratio:        co2,
		CO2OverLimit:    co2 > 100,
		BudgetPercent:   clamp100(budget),
		BudgetRatio:     budget,
		BudgetOverLimit: budget > 100,
	}
}

// usageRatio returns used/limit as a percentage. A non-positive limit
// with any usage counts as fully over limit.
func usageRatio(used, limit float64) float64 {
	if limit <= 0 {
		if used > 0 {
			return 101
		}
		return 0
	}
	return used / limit * 100
}

func clamp100(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
