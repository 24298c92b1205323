package adplan

import (
	"fmt"
	"math"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
)

// wasteRule flags one kind of wasteful spend. Rules are evaluated in table
// order and a SKU is claimed by the first rule that matches it.
type wasteRule struct {
	action domain.WasteAction
	desc   string
	match  func(x domain.SkuRecord) bool
	wasted func(x domain.SkuRecord) float64
	reason func(x domain.SkuRecord) string
}

var wasteRules = []wasteRule{
	{
		// High spend, nothing attributed
		action: domain.WastePause,
		desc:   "Pause all ads for this SKU",
		match: func(x domain.SkuRecord) bool {
			return x.AdSpend > 30 && x.AdSales == 0
		},
		wasted: func(x domain.SkuRecord) float64 { return x.AdSpend },
		reason: func(x domain.SkuRecord) string {
			return fmt.Sprintf("Ad spend $%.0f with zero attributed sales", x.AdSpend)
		},
	},
	{
		// ACOS above 300%
		action: domain.WasteRestructure,
		desc:   "Cut 80% of budget, keep only core keywords",
		match: func(x domain.SkuRecord) bool {
			return x.ACOS > 3 && x.AdSpend > 20
		},
		wasted: func(x domain.SkuRecord) float64 { return x.AdSpend * 0.8 },
		reason: func(x domain.SkuRecord) string {
			return fmt.Sprintf("ACOS=%.0f%% is extremely high, spend and return are badly out of balance", x.ACOS*100)
		},
	},
	{
		// Ad ratio above twice the pricing margin
		action: domain.WasteNegate,
		desc:   "Negate inefficient terms, cap budget at 80% of gross profit",
		match: func(x domain.SkuRecord) bool {
			return x.AdRatio > x.PricingMargin*2 && x.AdSpend > 30 && x.PricingMargin > 0
		},
		wasted: func(x domain.SkuRecord) float64 {
			return math.Max(0, x.AdSpend-x.Revenue*x.PricingMargin*0.8)
		},
		reason: func(x domain.SkuRecord) string {
			return fmt.Sprintf("Ad ratio %.1f%% exceeds twice the pricing margin %.1f%%", x.AdRatio*100, x.PricingMargin*100)
		},
	},
}

// wasteBuckets summarizes the waste list per action, in output order.
var wasteBuckets = []struct {
	action domain.WasteAction
	label  string
	impact string
}{
	{domain.WastePause, "Pause zero-attribution campaigns", "Sales impact ~0 (nothing attributed to lose)"},
	{domain.WasteRestructure, "Cut 80% of ACOS>300% spend", "Sales impact <3% (these placements have very poor ROI)"},
	{domain.WasteNegate, "Reduce overspending SKUs to the 80% gross-profit line", "Sales impact 5-8%"},
}

const salesImpactAssumption = "Phase 1 targets spend with little or no sales contribution, so cutting it should cost less than 5% of sales"

// DetectWaste applies the waste rules to every SKU with ad spend. The result
// is ordered by rule, then by SKU order.
func DetectWaste(skus []domain.SkuRecord) []domain.WasteEntry {
	flagged := make(map[string]bool)
	waste := make([]domain.WasteEntry, 0)

	for _, rule := range wasteRules {
		for _, x := range skus {
			if x.AdSpend <= 0 || flagged[x.SKU] || !rule.match(x) {
				continue
			}
			flagged[x.SKU] = true
			waste = append(waste, domain.WasteEntry{
				SKU:             x.SKU,
				ASIN:            x.ASIN,
				WastedSpend:     rule.wasted(x),
				Reason:          rule.reason(x),
				SuggestedAction: rule.action,
				ActionDesc:      rule.desc,
			})
		}
	}
	return waste
}

// summarizeWaste groups waste entries into the non-empty action buckets.
func summarizeWaste(waste []domain.WasteEntry) []domain.WasteBucket {
	buckets := make([]domain.WasteBucket, 0, len(wasteBuckets))
	for _, b := range wasteBuckets {
		var count int
		var spend float64
		for _, w := range waste {
			if w.SuggestedAction != b.action {
				continue
			}
			count++
			spend += w.WastedSpend
		}
		if count == 0 {
			continue
		}
		buckets = append(buckets, domain.WasteBucket{
			Action:   b.label,
			SkuCount: count,
			Spend:    spend,
			Impact:   b.impact,
		})
	}
	return buckets
}
