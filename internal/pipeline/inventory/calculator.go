// Package inventory derives days of supply, stock status and reorder
// quantities per SKU.
package inventory

import (
	"math"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

// WatchDays is the sellable cover below which a healthy-looking SKU is watched.
const WatchDays = 15

// Calculator computes InventoryStatus from SKU stock and velocity.
type Calculator struct {
	leadTime      float64
	safetyDays    float64
	targetCover   float64
	lowThreshold  float64
	overThreshold float64
}

// NewCalculator creates a calculator for the given replenishment parameters
func NewCalculator(p domain.Params) *Calculator {
	return &Calculator{
		leadTime:      p.LeadTimeDays,
		safetyDays:    p.SafetyDays,
		targetCover:   p.TargetCoverDays,
		lowThreshold:  p.LowStockThreshold,
		overThreshold: p.OverstockThreshold,
	}
}

// CalculateAll returns one status per SKU, in SKU order.
func (c *Calculator) CalculateAll(skus []domain.SkuRecord) []domain.InventoryStatus {
	out := make([]domain.InventoryStatus, 0, len(skus))
	for _, x := range skus {
		out = append(out, c.Calculate(x))
	}
	return out
}

// Calculate computes the inventory status of one SKU
func (c *Calculator) Calculate(x domain.SkuRecord) domain.InventoryStatus {
	status := domain.InventoryStatus{SKU: x.SKU}

	// No velocity: nothing to derive
	if x.DailyUnits <= 0 {
		status.Status = domain.StockNoSales
		return status
	}

	// 1. Days of supply
	sellable := x.Fulfillable / x.DailyUnits
	available := x.Fulfillable + x.Inbound - x.Reserved
	total := available / x.DailyUnits
	gap := math.Max(0, c.leadTime-sellable)

	status.SellableDOS = dos(sellable)
	status.TotalDOS = dos(total)
	status.StockoutGap = dos(gap)

	// 2. Status, most severe first
	switch {
	case sellable < c.lowThreshold:
		status.Status = domain.StockCritical
	case sellable < c.leadTime:
		status.Status = domain.StockReorderNow
	case sellable < WatchDays:
		status.Status = domain.StockWatch
	default:
		status.Status = domain.StockHealthy
	}

	// 3. Overstock flag
	status.OverstockRisk = total > c.overThreshold

	// 4. Reorder point and target
	status.ROPUnits = numeric.Round((c.leadTime+c.safetyDays)*x.DailyUnits, 0)
	target := c.targetCover * x.DailyUnits
	status.TargetUnits = numeric.Round(target, 0)
	status.AvailableUnits = numeric.Round(available, 0)

	// 5. Order quantity
	status.OrderQty = numeric.Round(math.Max(0, target-available), 0)

	return status
}

func dos(v float64) *float64 {
	r := numeric.Round(v, 1)
	return &r
}
