package adplan

import (
	"fmt"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

// RiskThresholdPct is the cumulative ad-ratio cut, in points, beyond which
// organic rank may fall non-linearly.
const RiskThresholdPct = 5

const impactFormula = "Each 1pt of ad-ratio reduction -> sales drop of (ad dependency x coefficient)%"

var scenarioMultipliers = struct {
	conservative, moderate, aggressive float64
}{0.25, 0.5, 0.8}

// Sensitivity estimates the sales impact of cutting the ad ratio by gap
// for a portfolio whose attributed share of revenue is adDependency.
func Sensitivity(adDependency, gap float64) domain.SalesImpact {
	per := domain.ImpactScenarios{
		Conservative: domain.ImpactScenario{
			Rate: numeric.Round(adDependency*scenarioMultipliers.conservative, 4),
			Desc: "Optimistic: strong organic traffic, ads are mostly incremental",
		},
		Moderate: domain.ImpactScenario{
			Rate: numeric.Round(adDependency*scenarioMultipliers.moderate, 4),
			Desc: "Neutral: ads and organic traffic influence each other",
		},
		Aggressive: domain.ImpactScenario{
			Rate: numeric.Round(adDependency*scenarioMultipliers.aggressive, 4),
			Desc: "Pessimistic: rank depends heavily on ad-driven sales",
		},
	}

	points := gap * 100
	return domain.SalesImpact{
		PerPointPct: per,
		TotalPct: domain.ImpactTotals{
			Conservative: numeric.Round(points*per.Conservative.Rate, 1),
			Moderate:     numeric.Round(points*per.Moderate.Rate, 1),
			Aggressive:   numeric.Round(points*per.Aggressive.Rate, 1),
		},
		Formula: impactFormula,
	}
}

// riskWarning returns the non-linear risk flag and its warning for a cut of gap.
func riskWarning(gap float64) (bool, *string) {
	if gap*100 <= RiskThresholdPct {
		return false, nil
	}
	msg := fmt.Sprintf("Cumulative reduction above %d%% may trigger a ranking drop. "+
		"Execute in stages and watch organic placement for 3-5 days after each stage.", RiskThresholdPct)
	return true, &msg
}
