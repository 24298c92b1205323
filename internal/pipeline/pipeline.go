// Package pipeline runs the per-SKU analysis: normalize the workbook, compute
// profitability, then derive the ad plan, inventory status and diagnostics.
package pipeline

import (
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/adplan"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/diagnostics"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/inventory"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/metrics"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/normalize"
	"github.com/andresuchdata/lgurt/backend-go/pkg/logger"
)

// Run analyzes one workbook. Missing sheets and columns default to zero
// values; the only error is a nil source.
func Run(cfg AnalysisConfig, src SheetSource, params domain.Params) (*domain.Bundle, error) {
	if src == nil {
		return nil, ErrUnreadableWorkbook
	}
	cfg = cfg.withDefaults()
	params = params.WithValidDays()

	// 1. Normalize
	ds := normalize.Load(src)
	logger.Log.Debug().
		Int("sales_lines", len(ds.Sales)).
		Int("master", len(ds.Master)).
		Int("ad_skus", len(ds.AdsBySKU)).
		Int("inventory", len(ds.Inventory)).
		Msg("normalized workbook")

	// 2. Profitability
	skus, summary := metrics.NewEngine(params.Days).Compute(ds)
	logger.Log.Debug().Int("skus", len(skus)).Float64("rev", summary.Revenue).Msg("computed sku metrics")

	// 3. Ad plan, inventory and diagnostics all read the same SKU records
	plan := adplan.NewPlanner(cfg.AlgoVersion).Plan(summary, skus)
	logger.Log.Debug().
		Int("waste_entries", len(plan.Phase1.WasteList)).
		Int("weeks", plan.Phase2.WeeksNeeded).
		Msg("built ad plan")

	stock := inventory.NewCalculator(params).CalculateAll(skus)
	diag := diagnostics.NewEngine(params).DiagnoseAll(skus)

	return &domain.Bundle{
		Summary:     summary,
		SKUs:        skus,
		AdPlan:      plan,
		Inventory:   stock,
		Diagnostics: diag,
		Checksum:    Checksum(skus),
		Roles:       copyRoles(cfg.Roles),
	}, nil
}

// Checksum totals revenue and operating profit across skus.
func Checksum(skus []domain.SkuRecord) domain.Checksum {
	var c domain.Checksum
	for _, x := range skus {
		c.Revenue += x.Revenue
		c.OperatingProfit += x.OperatingProfit
	}
	c.Revenue = numeric.Round(c.Revenue, 2)
	c.OperatingProfit = numeric.Round(c.OperatingProfit, 2)
	return c
}
