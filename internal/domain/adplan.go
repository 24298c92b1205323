package domain

// WasteAction is the Phase 1 remedy for a wasteful SKU.
type WasteAction string

const (
	WastePause       WasteAction = "pause"
	WasteRestructure WasteAction = "restructure"
	WasteNegate      WasteAction = "negate"
)

// WasteEntry is one SKU flagged by Phase 1.
type WasteEntry struct {
	SKU             string      `json:"sku"`
	ASIN            string      `json:"asin"`
	WastedSpend     float64     `json:"wasted_spend"`
	Reason          string      `json:"reason"`
	SuggestedAction WasteAction `json:"suggested_action"`
	ActionDesc      string      `json:"action_desc"`
}

// WasteBucket summarizes the waste entries of one action type.
type WasteBucket struct {
	Action   string  `json:"action"`
	SkuCount int     `json:"skuCount"`
	Spend    float64 `json:"spend"`
	Impact   string  `json:"impact"`
}

// Phase1 is the immediate waste cut.
type Phase1 struct {
	WasteList             []WasteEntry  `json:"wasteList"`
	TotalSavings          float64       `json:"totalSavings"`
	RatioReduction        float64       `json:"ratioReduction"`
	AfterRatio            float64       `json:"afterRatio"`
	Actions               []WasteBucket `json:"actions"`
	SalesImpactAssumption string        `json:"salesImpactAssumption"`
}

// WeeklyStep is one week of the Phase 2 de-escalation schedule.
type WeeklyStep struct {
	Week          int      `json:"week"`
	TargetAdRatio float64  `json:"target_ad_ratio"`
	Delta         float64  `json:"delta"`
	DailyBudget   float64  `json:"daily_budget"`
	Actions       []string `json:"actions"`
	Checkpoint    *string  `json:"checkpoint"`
}

// Phase2 is the weekly incremental reduction.
type Phase2 struct {
	Gap         float64      `json:"gap"`
	Plan        []WeeklyStep `json:"plan"`
	WeeksNeeded int          `json:"weeksNeeded"`
}

// ImpactScenario is the sales lost per ad-ratio point under one scenario.
type ImpactScenario struct {
	Rate float64 `json:"rate"`
	Desc string  `json:"desc"`
}

// ImpactScenarios keys the three sensitivity scenarios.
type ImpactScenarios struct {
	Conservative ImpactScenario `json:"conservative"`
	Moderate     ImpactScenario `json:"moderate"`
	Aggressive   ImpactScenario `json:"aggressive"`
}

// ImpactTotals is the projected total sales impact (percent) per scenario.
type ImpactTotals struct {
	Conservative float64 `json:"conservative"`
	Moderate     float64 `json:"moderate"`
	Aggressive   float64 `json:"aggressive"`
}

// SalesImpact is the sensitivity model output.
type SalesImpact struct {
	PerPointPct ImpactScenarios `json:"perPointPct"`
	TotalPct    ImpactTotals    `json:"totalPct"`
	Formula     string          `json:"formula"`
}

// AdPlan is the full ad-spend optimization plan.
type AdPlan struct {
	AlgoVersion      string      `json:"algoVersion"`
	CurrentAdRatio   float64     `json:"currentAdRatio"`
	TargetAdRatio    float64     `json:"targetAdRatio"`
	BreakEvenAdRatio float64     `json:"breakEvenAdRatio"`
	NeedReduce       bool        `json:"needReduce"`
	Gap              float64     `json:"gap"`
	AdDependency     float64     `json:"adDependency"`
	Phase1           Phase1      `json:"phase1"`
	Phase2           Phase2      `json:"phase2"`
	Impact           SalesImpact `json:"impact"`
	RiskThreshold    float64     `json:"riskThreshold"`
	HasNonlinearRisk bool        `json:"hasNonlinearRisk"`
	RiskWarning      *string     `json:"riskWarning"`
}
