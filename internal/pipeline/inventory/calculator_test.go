package inventory

import (
	"testing"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockSKU(du, ful, inb, rsv float64) domain.SkuRecord {
	return domain.SkuRecord{SKU: "SKU-1", DailyUnits: du, Fulfillable: ful, Inbound: inb, Reserved: rsv}
}

func TestCalculate_Status(t *testing.T) {
	watchParams := domain.DefaultParams()
	watchParams.LeadTimeDays = 10
	watchParams.LowStockThreshold = 5

	tests := []struct {
		name   string
		params domain.Params
		sku    domain.SkuRecord
		want   domain.StockStatus
	}{
		{"below low threshold", domain.DefaultParams(), stockSKU(2, 10, 0, 0), domain.StockCritical},
		{"below lead time", domain.DefaultParams(), stockSKU(2, 40, 0, 0), domain.StockReorderNow},
		{"below watch days", watchParams, stockSKU(1, 12, 0, 0), domain.StockWatch},
		{"enough cover", domain.DefaultParams(), stockSKU(1, 200, 0, 0), domain.StockHealthy},
		{"no velocity", domain.DefaultParams(), stockSKU(0, 200, 0, 0), domain.StockNoSales},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewCalculator(tt.params).Calculate(tt.sku)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestCalculate_Quantities(t *testing.T) {
	got := NewCalculator(domain.DefaultParams()).Calculate(stockSKU(2, 10, 4, 2))

	require.NotNil(t, got.SellableDOS)
	require.NotNil(t, got.TotalDOS)
	require.NotNil(t, got.StockoutGap)
	assert.Equal(t, 5.0, *got.SellableDOS)
	assert.Equal(t, 6.0, *got.TotalDOS)
	assert.Equal(t, 30.0, *got.StockoutGap)

	// (35+30)*2, 90*2, 10+4-2
	assert.Equal(t, 130.0, got.ROPUnits)
	assert.Equal(t, 180.0, got.TargetUnits)
	assert.Equal(t, 12.0, got.AvailableUnits)
	assert.Equal(t, 168.0, got.OrderQty)
	assert.False(t, got.OverstockRisk)
}

func TestCalculate_ZeroSafetyDays(t *testing.T) {
	p := domain.DefaultParams()
	p.SafetyDays = 0

	got := NewCalculator(p).Calculate(stockSKU(1, 100, 0, 0))

	// (35+0)*1
	assert.Equal(t, 35.0, got.ROPUnits)
	assert.Equal(t, 90.0, got.TargetUnits)
}

func TestCalculate_ZeroLowStockThresholdDisablesCritical(t *testing.T) {
	p := domain.DefaultParams()
	p.LowStockThreshold = 0

	got := NewCalculator(p).Calculate(stockSKU(1, 2, 0, 0))
	assert.Equal(t, domain.StockReorderNow, got.Status)
}

func TestCalculate_Overstock(t *testing.T) {
	got := NewCalculator(domain.DefaultParams()).Calculate(stockSKU(1, 200, 0, 0))

	assert.True(t, got.OverstockRisk)
	assert.Equal(t, 0.0, *got.StockoutGap)
	assert.Equal(t, 0.0, got.OrderQty)
}

func TestCalculate_DaysRoundToOneDecimal(t *testing.T) {
	got := NewCalculator(domain.DefaultParams()).Calculate(stockSKU(3, 100, 0, 0))

	assert.Equal(t, 33.3, *got.SellableDOS)
	assert.Equal(t, 1.7, *got.StockoutGap)
}

func TestCalculate_NoSales(t *testing.T) {
	got := NewCalculator(domain.DefaultParams()).Calculate(stockSKU(0, 50, 10, 0))

	assert.Equal(t, domain.StockNoSales, got.Status)
	assert.Nil(t, got.SellableDOS)
	assert.Nil(t, got.TotalDOS)
	assert.Nil(t, got.StockoutGap)
	assert.False(t, got.OverstockRisk)
	assert.Equal(t, 0.0, got.OrderQty)
	assert.Equal(t, 0.0, got.ROPUnits)
}

func TestCalculate_ReservedExceedsStock(t *testing.T) {
	got := NewCalculator(domain.DefaultParams()).Calculate(stockSKU(1, 0, 0, 10))

	assert.Equal(t, domain.StockCritical, got.Status)
	assert.Equal(t, -10.0, *got.TotalDOS)
	assert.Equal(t, -10.0, got.AvailableUnits)
	assert.Equal(t, 100.0, got.OrderQty)
}

func TestCalculateAll_KeepsOrder(t *testing.T) {
	skus := []domain.SkuRecord{
		{SKU: "B", DailyUnits: 1, Fulfillable: 100},
		{SKU: "A"},
		{SKU: "C", DailyUnits: 2, Fulfillable: 1},
	}

	got := NewCalculator(domain.DefaultParams()).CalculateAll(skus)
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].SKU)
	assert.Equal(t, "A", got[1].SKU)
	assert.Equal(t, domain.StockNoSales, got[1].Status)
	assert.Equal(t, "C", got[2].SKU)
	assert.Equal(t, domain.StockCritical, got[2].Status)
}
