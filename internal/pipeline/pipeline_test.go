package pipeline

import (
	"testing"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(cells map[int]domain.Cell) domain.Row {
	width := 0
	for i := range cells {
		if i+1 > width {
			width = i + 1
		}
	}
	r := make(domain.Row, width)
	for i, v := range cells {
		r[i] = v
	}
	return r
}

func withHeader(skip int, rows ...domain.Row) []domain.Row {
	out := make([]domain.Row, 0, skip+len(rows))
	for i := 0; i < skip; i++ {
		out = append(out, domain.Row{"header"})
	}
	return append(out, rows...)
}

func exampleWorkbook() normalize.Tables {
	return normalize.Tables{
		normalize.SheetSales: withHeader(normalize.SkipSales,
			row(map[int]domain.Cell{1: "B00A-US", 2: "SKU-A", 5: 10.0, 6: 1000.0, 8: -10.0, 9: 0.0, 10: 50.0}),
			row(map[int]domain.Cell{1: "B00Z-US", 2: "SKU-SLOW", 5: 1.0, 6: "10", 10: 1.0}),
		),
		normalize.SheetMaster: withHeader(normalize.SkipMaster,
			row(map[int]domain.Cell{0: "SKU-A", 2: "Alpha", 3: "Kitchen", 4: 30.0, 5: 2.0}),
		),
		normalize.SheetAds: withHeader(normalize.SkipAds,
			row(map[int]domain.Cell{1: "B00A", 2: "SKU-A", 4: 0.0, 7: 1000.0, 8: 12.0, 10: 40.0}),
		),
		normalize.SheetInventory: withHeader(normalize.SkipInventory,
			row(map[int]domain.Cell{1: "SKU-A", 5: 100.0, 6: 20.0, 7: 5.0}),
		),
		normalize.SheetFixed: withHeader(normalize.SkipFixed,
			row(map[int]domain.Cell{0: "Total", 1: 1000.0, 2: 500.0, 3: 0.0, 4: 0.0, 5: 50.0}),
		),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	bundle, err := Run(DefaultAnalysisConfig(), exampleWorkbook(), domain.DefaultParams())
	require.NoError(t, err)
	require.Len(t, bundle.SKUs, 2)

	a := bundle.SKUs[0]
	assert.Equal(t, "SKU-A", a.SKU)
	assert.Equal(t, 620.0, a.PricingProfit)
	assert.Equal(t, 0.62, a.PricingMargin)
	assert.Equal(t, 580.0, a.OperatingProfit)
	assert.Equal(t, 0.04, a.AdRatio)
	assert.Equal(t, 300.0, a.COGS)
	assert.Equal(t, 20.0, a.Freight)

	plan := bundle.AdPlan
	assert.Equal(t, DefaultAlgoVersion, plan.AlgoVersion)
	require.Len(t, plan.Phase1.WasteList, 1)
	assert.Equal(t, "SKU-A", plan.Phase1.WasteList[0].SKU)
	assert.Equal(t, domain.WastePause, plan.Phase1.WasteList[0].SuggestedAction)
	assert.Equal(t, 40.0, plan.Phase1.WasteList[0].WastedSpend)

	require.Len(t, bundle.Inventory, 2)
	require.Len(t, bundle.Diagnostics, 2)
	for i, x := range bundle.SKUs {
		assert.Equal(t, x.SKU, bundle.Inventory[i].SKU)
		assert.Equal(t, x.SKU, bundle.Diagnostics[i].SKU)
	}
	assert.Equal(t, domain.StockHealthy, bundle.Inventory[0].Status)
	assert.Equal(t, domain.QuadrantDog, bundle.Diagnostics[0].Quadrant)

	assert.Equal(t, domain.Checksum{Revenue: 1010, OperatingProfit: bundle.SKUs[0].OperatingProfit + bundle.SKUs[1].OperatingProfit}, bundle.Checksum)
	assert.Equal(t, bundle.Summary.Revenue, bundle.Checksum.Revenue)
	assert.Len(t, bundle.Roles, 4)
	assert.Equal(t, 1550.0, bundle.Summary.FixedMonthly)
}

// Velocity below the rounding floor counts as no sales downstream.
func TestRun_RoundedVelocityDrivesNoSales(t *testing.T) {
	bundle, err := Run(DefaultAnalysisConfig(), exampleWorkbook(), domain.DefaultParams())
	require.NoError(t, err)

	slow := bundle.SKUs[1]
	require.Equal(t, "SKU-SLOW", slow.SKU)
	assert.Equal(t, 0.0, slow.DailyUnits)

	inv := bundle.Inventory[1]
	assert.Equal(t, domain.StockNoSales, inv.Status)
	assert.Nil(t, inv.SellableDOS)
	assert.Equal(t, 0.0, inv.OrderQty)
}

func TestRun_EmptyWorkbook(t *testing.T) {
	bundle, err := Run(DefaultAnalysisConfig(), normalize.Tables{}, domain.Params{})
	require.NoError(t, err)

	assert.Empty(t, bundle.SKUs)
	assert.Empty(t, bundle.Inventory)
	assert.Empty(t, bundle.Diagnostics)
	assert.Equal(t, 0.0, bundle.Summary.Revenue)
	assert.Equal(t, 0.0, bundle.Summary.DailyBreakEven)
	assert.Equal(t, domain.Checksum{}, bundle.Checksum)
	assert.False(t, bundle.AdPlan.NeedReduce)
}

func TestRun_NilSource(t *testing.T) {
	bundle, err := Run(DefaultAnalysisConfig(), nil, domain.DefaultParams())
	assert.ErrorIs(t, err, ErrUnreadableWorkbook)
	assert.Nil(t, bundle)
}

func TestRun_DaysRescalesFixedPeriodOnly(t *testing.T) {
	short := domain.DefaultParams()
	long := domain.DefaultParams()
	long.Days = short.Days * 2

	a, err := Run(DefaultAnalysisConfig(), exampleWorkbook(), short)
	require.NoError(t, err)
	b, err := Run(DefaultAnalysisConfig(), exampleWorkbook(), long)
	require.NoError(t, err)

	assert.InDelta(t, a.Summary.FixedPeriod*2, b.Summary.FixedPeriod, 0.02)
	assert.Equal(t, a.SKUs[0].PricingProfit, b.SKUs[0].PricingProfit)
	assert.Equal(t, a.SKUs[0].PricingMargin, b.SKUs[0].PricingMargin)
	assert.Equal(t, a.SKUs[0].OperatingProfit, b.SKUs[0].OperatingProfit)
}

func TestRun_DefaultsConfig(t *testing.T) {
	bundle, err := Run(AnalysisConfig{}, exampleWorkbook(), domain.DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, DefaultAlgoVersion, bundle.AdPlan.AlgoVersion)
	assert.Len(t, bundle.Roles, 4)
}

func TestRun_RolesAreCopied(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	bundle, err := Run(cfg, exampleWorkbook(), domain.DefaultParams())
	require.NoError(t, err)

	delete(bundle.Roles, "profit")
	assert.Contains(t, cfg.Roles, "profit")
}

func TestChecksum(t *testing.T) {
	skus := []domain.SkuRecord{
		{Revenue: 100.1, OperatingProfit: 10.2},
		{Revenue: 200.2, OperatingProfit: -5.1},
	}
	got := Checksum(skus)
	assert.Equal(t, 300.3, got.Revenue)
	assert.Equal(t, 5.1, got.OperatingProfit)

	assert.True(t, got.ConsistentWith(domain.Checksum{Revenue: 300.9, OperatingProfit: 5.5}))
	assert.False(t, got.ConsistentWith(domain.Checksum{Revenue: 301.3, OperatingProfit: 5.1}))
	assert.Equal(t, domain.Checksum{}, Checksum(nil))
}
