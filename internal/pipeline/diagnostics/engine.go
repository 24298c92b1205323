// Package diagnostics grades each SKU into a strategic quadrant and lists
// its issues, recommended actions and stop-loss directives.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

// facts are the per-SKU values the checks read.
type facts struct {
	sku          domain.SkuRecord
	sellableDOS  float64
	hasVelocity  bool
	adContrib    float64
	lowThreshold float64
}

// check is one independent issue condition. Every matching check contributes
// its issue and action.
type check struct {
	kind      domain.IssueKind
	priority  int
	action    string
	condition string
	match     func(f facts) (string, bool)
}

var checks = []check{
	{
		kind:      domain.IssueCritical,
		priority:  0,
		action:    "[URGENT] Resupply or transfer stock immediately",
		condition: "No other optimization until stock recovers",
		match: func(f facts) (string, bool) {
			if !f.hasVelocity || f.sellableDOS >= f.lowThreshold {
				return "", false
			}
			return fmt.Sprintf("Sellable stock covers only %.1f days, below the %.0f-day threshold", f.sellableDOS, f.lowThreshold), true
		},
	},
	{
		kind:      domain.IssueCritical,
		priority:  1,
		action:    "[DIAGNOSE] Audit the cost structure",
		condition: "Locate the dominant cost problem",
		match: func(f facts) (string, bool) {
			if f.sku.PricingMargin >= 0 {
				return "", false
			}
			return fmt.Sprintf("Negative pricing margin (%.1f%%)", f.sku.PricingMargin*100), true
		},
	},
	{
		kind:      domain.IssueCritical,
		priority:  1,
		action:    "[NOW] Execute the Phase 1 waste cuts",
		condition: "Cut terms with ACOS>200% first",
		match: func(f facts) (string, bool) {
			if f.sku.AdRatio <= f.sku.PricingMargin || f.sku.AdSpend <= 0 {
				return "", false
			}
			return fmt.Sprintf("Ad ratio (%.1f%%) exceeds pricing margin (%.1f%%)", f.sku.AdRatio*100, f.sku.PricingMargin*100), true
		},
	},
	{
		kind:      domain.IssueWarning,
		priority:  2,
		action:    "[OPTIMIZE] Negate terms with ACOS>50%, lower long-tail bids 20%",
		condition: "Review results after two weeks",
		match: func(f facts) (string, bool) {
			if f.adContrib >= 0 || f.sku.AdSpend <= 50 {
				return "", false
			}
			return fmt.Sprintf("Ad contribution to profit is negative ($%.0f)", f.adContrib), true
		},
	},
}

var (
	exitAction = domain.Action{
		Priority:  1,
		Text:      "[EXIT] Losing on both pricing and ads",
		Condition: "Unless the SKU has strategic value",
	}
	exitStopLoss = "Halt replenishment immediately"
)

// Engine diagnoses SKUs against a low-stock threshold.
type Engine struct {
	lowThreshold float64
}

// NewEngine creates a diagnostics engine
func NewEngine(p domain.Params) *Engine {
	return &Engine{lowThreshold: p.LowStockThreshold}
}

// DiagnoseAll returns one record per SKU, in SKU order.
func (e *Engine) DiagnoseAll(skus []domain.SkuRecord) []domain.DiagnosticRecord {
	out := make([]domain.DiagnosticRecord, 0, len(skus))
	for _, x := range skus {
		out = append(out, e.Diagnose(x))
	}
	return out
}

// Diagnose evaluates every check and the quadrant for one SKU.
func (e *Engine) Diagnose(x domain.SkuRecord) domain.DiagnosticRecord {
	f := facts{
		sku:          x,
		hasVelocity:  x.DailyUnits > 0,
		adContrib:    x.AdSales*x.PricingMargin - x.AdSpend,
		lowThreshold: e.lowThreshold,
	}
	if f.hasVelocity {
		f.sellableDOS = x.Fulfillable / x.DailyUnits
	}

	rec := domain.DiagnosticRecord{
		SKU:       x.SKU,
		AdContrib: numeric.Round(f.adContrib, 2),
		Issues:    make([]domain.Issue, 0),
		Actions:   make([]domain.Action, 0),
		StopLoss:  make([]string, 0),
		IsHealthy: true,
	}

	for _, c := range checks {
		text, ok := c.match(f)
		if !ok {
			continue
		}
		rec.Issues = append(rec.Issues, domain.Issue{Type: c.kind, Text: text})
		rec.Actions = append(rec.Actions, domain.Action{Priority: c.priority, Text: c.action, Condition: c.condition})
		if c.kind == domain.IssueCritical {
			rec.IsHealthy = false
		}
	}

	rec.Quadrant = Classify(x.PricingMargin, f.adContrib)
	if rec.Quadrant == domain.QuadrantEliminate {
		rec.Actions = append(rec.Actions, exitAction)
		rec.StopLoss = append(rec.StopLoss, exitStopLoss)
		rec.IsHealthy = false
	}

	sort.SliceStable(rec.Actions, func(i, j int) bool {
		return rec.Actions[i].Priority < rec.Actions[j].Priority
	})
	return rec
}

// Classify maps the signs of pricing margin and ad contribution to a quadrant.
func Classify(pricingMargin, adContrib float64) domain.Quadrant {
	switch {
	case pricingMargin > 0 && adContrib >= 0:
		return domain.QuadrantStar
	case pricingMargin > 0:
		return domain.QuadrantDog
	case adContrib >= 0:
		return domain.QuadrantQuestion
	default:
		return domain.QuadrantEliminate
	}
}
