// Package adplan builds the two-phase ad-spend reduction plan: an immediate
// cut of wasteful spend followed by a weekly de-escalation toward a
// break-even ad ratio, with a sales-impact sensitivity estimate.
package adplan

import (
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

// SafetyBuffer keeps the target ad ratio 10% below break-even.
const SafetyBuffer = 0.9

// Planner produces AdPlans tagged with an algorithm version.
type Planner struct {
	algoVersion string
}

// NewPlanner creates a planner.
func NewPlanner(algoVersion string) *Planner {
	return &Planner{algoVersion: algoVersion}
}

// Plan computes the ad plan for a portfolio.
func (p *Planner) Plan(s domain.PortfolioSummary, skus []domain.SkuRecord) domain.AdPlan {
	current := s.AdRatio

	// 1. Break-even ad ratio and target
	breakEven := s.PricingMargin - numeric.Ratio(s.FixedDaily, s.DailyRevenue)
	target := numeric.Floor0(breakEven * SafetyBuffer)
	gap := numeric.Floor0(current - target)
	adDependency := numeric.Ratio(s.AdSales, s.Revenue)

	// 2. Phase 1: cut waste
	waste := DetectWaste(skus)
	var savings float64
	for _, w := range waste {
		savings += numeric.Floor0(w.WastedSpend)
	}
	ratioReduction := numeric.Ratio(savings, s.Revenue)
	afterPhase1 := numeric.Floor0(current - ratioReduction)

	// 3. Phase 2: weekly steps for whatever Phase 1 leaves
	phase2 := Schedule(afterPhase1, target, s.DailyRevenue)

	// 4. Sensitivity
	hasRisk, warning := riskWarning(gap)

	return domain.AdPlan{
		AlgoVersion:      p.algoVersion,
		CurrentAdRatio:   current,
		TargetAdRatio:    numeric.Round(target, 4),
		BreakEvenAdRatio: numeric.Round(breakEven, 4),
		NeedReduce:       gap > 0,
		Gap:              numeric.Round(gap, 4),
		AdDependency:     numeric.Round(adDependency, 4),
		Phase1: domain.Phase1{
			WasteList:             waste,
			TotalSavings:          numeric.Round(savings, 2),
			RatioReduction:        numeric.Round(ratioReduction, 4),
			AfterRatio:            numeric.Round(afterPhase1, 4),
			Actions:               summarizeWaste(waste),
			SalesImpactAssumption: salesImpactAssumption,
		},
		Phase2:           phase2,
		Impact:           Sensitivity(adDependency, gap),
		RiskThreshold:    RiskThresholdPct,
		HasNonlinearRisk: hasRisk,
		RiskWarning:      warning,
	}
}
