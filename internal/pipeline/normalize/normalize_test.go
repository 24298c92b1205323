package normalize

import (
	"math"
	"testing"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func padRows(n int) []domain.Row {
	rows := make([]domain.Row, n)
	for i := range rows {
		rows[i] = domain.Row{"header"}
	}
	return rows
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   domain.Cell
		want float64
	}{
		{"nil", nil, 0},
		{"blank", "  ", 0},
		{"numeric string", "12.5", 12.5},
		{"thousands separator", "1,234.5", 1234.5},
		{"garbage", "n/a", 0},
		{"float", 3.25, 3.25},
		{"int", 7, 7},
		{"nan", math.NaN(), 0},
		{"nan string", "NaN", 0},
		{"inf", math.Inf(-1), 0},
		{"unsupported type", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFloat(tt.in))
		})
	}
}

func TestFloatAndTextOutOfRange(t *testing.T) {
	row := domain.Row{"a", 2.0}

	assert.Equal(t, 0.0, Float(row, 5))
	assert.Equal(t, "", Text(row, 5))
	assert.Equal(t, 2.0, Float(row, 1))
	assert.Equal(t, "2", Text(row, 1))
	assert.Equal(t, "", Text(domain.Row{nil}, 0))
}

func TestSheet(t *testing.T) {
	t.Run("absent sheet", func(t *testing.T) {
		rows, ok := Sheet(Tables{}, SheetSales, SkipSales)
		assert.False(t, ok)
		assert.Nil(t, rows)
	})

	t.Run("skips header rows in order", func(t *testing.T) {
		src := Tables{SheetFixed: append(padRows(SkipFixed), domain.Row{"a"}, domain.Row{"b"})}
		rows, ok := Sheet(src, SheetFixed, SkipFixed)
		require.True(t, ok)
		require.Len(t, rows, 2)
		assert.Equal(t, "a", rows[0][0])
		assert.Equal(t, "b", rows[1][0])
	})

	t.Run("short sheet is returned whole", func(t *testing.T) {
		src := Tables{SheetFixed: padRows(3)}
		rows, ok := Sheet(src, SheetFixed, SkipFixed)
		require.True(t, ok)
		assert.Len(t, rows, 3)
	})
}

func TestMasterIndexDefaults(t *testing.T) {
	rows := domain.RawRecordSet{
		{"SKU-1", nil, "Widget", "Tools", "4.5", "0.5"},
		{"SKU-2"},
		{nil, nil, "orphan"},
	}

	idx := MasterIndex(rows)

	require.Len(t, idx, 2)
	assert.Equal(t, domain.SkuMasterEntry{Name: "Widget", Category: "Tools", Cost: 4.5, Freight: 0.5}, idx["SKU-1"])
	assert.Equal(t, DefaultMaster("SKU-2"), idx["SKU-2"])
}

func TestAdIndex(t *testing.T) {
	adRow := func(asin, sku string, sales, imp, clk, spend float64) domain.Row {
		return domain.Row{nil, asin, sku, nil, sales, nil, nil, imp, clk, nil, spend}
	}
	rows := domain.RawRecordSet{
		adRow("B001-US", " SKU-1 ", 100, 1000, 10, 20),
		adRow("B001-US", "SKU-1", 50, 500, 5, 10),
		adRow("B002-DE", "", 30, 300, 3, 6),
		adRow("B002-FR", "", 10, 100, 1, 2),
		adRow("B003", "", 1, 1, 1, 1),
		adRow("", "", 9, 9, 9, 9),
	}

	bySKU, byASIN := AdIndex(rows)

	assert.Equal(t, domain.AdAggregate{Spend: 30, Impressions: 1500, Clicks: 15, Sales: 150}, bySKU["SKU-1"])
	assert.Equal(t, domain.AdAggregate{Spend: 8, Impressions: 400, Clicks: 4, Sales: 40}, byASIN["B002"])
	assert.Contains(t, byASIN, "B003")
	assert.Len(t, bySKU, 1)
	assert.Len(t, byASIN, 2)
}

func TestASINKey(t *testing.T) {
	assert.Equal(t, "B0AB", ASINKey("B0AB-CD-EF"))
	assert.Equal(t, "B0AB", ASINKey("B0AB"))
	assert.Equal(t, "", ASINKey("-x"))
}

func TestInventoryIndex(t *testing.T) {
	rows := domain.RawRecordSet{
		{nil, "SKU-1", nil, nil, nil, 40.0, 10.0, 5.0},
		{nil, ""},
	}

	idx := InventoryIndex(rows)

	require.Len(t, idx, 1)
	assert.Equal(t, domain.InventorySnapshot{Fulfillable: 40, Inbound: 10, Reserved: 5}, idx["SKU-1"])
}

func TestFixedCostsMonthlyUsesLastRow(t *testing.T) {
	rows := domain.RawRecordSet{
		{"Jan", 999.0, 999.0},
		{"Feb", 1000.0, 500.0, "100", nil, 50.0},
	}

	assert.Equal(t, 1650.0, FixedCostsMonthly(rows))
	assert.Equal(t, 0.0, FixedCostsMonthly(nil))
}

func TestSalesLinesReferralIsAbsolute(t *testing.T) {
	rows := domain.RawRecordSet{
		{nil, "B001-US", "SKU-1", nil, nil, 10.0, 1000.0, nil, -10.0, 5.0, 50.0},
	}

	lines := SalesLines(rows)

	require.Len(t, lines, 1)
	assert.Equal(t, domain.SalesLine{
		SKU: "SKU-1", ASIN: "B001-US", Units: 10, Revenue: 1000,
		ReferralFee: 10, Refunds: 5, Fulfillment: 50,
	}, lines[0])
}

func TestLoadWithMissingSheets(t *testing.T) {
	ds := Load(Tables{})

	assert.Empty(t, ds.Master)
	assert.Empty(t, ds.AdsBySKU)
	assert.Empty(t, ds.Sales)
	assert.Equal(t, 0.0, ds.FixedCosts)
}
