package master

import (
	"fmt"
	"math"
)

// rateVarianceThreshold is the allowed deviation, in percent, between a row's
// rate and the item's standard rate before the check warns.
const rateVarianceThreshold = 20.0

// RateCheck is the advisory verdict for a row rate against the item master's
// standard rate.
type RateCheck struct {
	Valid        bool    `json:"valid"`
	Warning      bool    `json:"warning,omitempty"`
	Message      string  `json:"message"`
	StandardRate float64 `json:"standard_rate,omitempty"`
	CurrentRate  float64 `json:"current_rate,omitempty"`
}

// CheckRate compares rate against the cached standard rate for itemCode.
// Missing items and items without a standard rate pass; the verdict is
// advisory either way and never blocks validation or submission. The caller
// must have loaded the cache.
func (c *Cache) CheckRate(itemCode string, rate float64) RateCheck {
	if itemCode == "" {
		return RateCheck{Valid: true, Message: "No rate validation needed"}
	}

	rec, ok := c.Lookup(itemCode)
	if !ok {
		return RateCheck{Valid: true, Message: "Item not found for rate validation"}
	}
	if rec.StandardRate == 0 {
		return RateCheck{Valid: true, Message: "No standard rate set"}
	}

	variance := math.Abs(rate-rec.StandardRate) / rec.StandardRate * 100
	if variance > rateVarianceThreshold {
		return RateCheck{
			Warning:      true,
			Message:      fmt.Sprintf("Rate variance %.1f%% from standard rate ₹%g", variance, rec.StandardRate),
			StandardRate: rec.StandardRate,
			CurrentRate:  rate,
		}
	}

	return RateCheck{Valid: true, Message: "Rate within acceptable range"}
}
