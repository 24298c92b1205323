package normalize

import (
	"math"
	"strings"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
)

// Uncategorized is the category of SKUs missing from the master sheet.
const Uncategorized = "uncategorized"

// Column positions per sheet.
const (
	masterColSKU     = 0
	masterColName    = 2
	masterColCat     = 3
	masterColCost    = 4
	masterColFreight = 5

	adColASIN  = 1
	adColSKU   = 2
	adColSales = 4
	adColImp   = 7
	adColClk   = 8
	adColSpend = 10

	invColSKU      = 1
	invColFul      = 5
	invColInbound  = 6
	invColReserved = 7

	salesColASIN        = 1
	salesColSKU         = 2
	salesColUnits       = 5
	salesColRevenue     = 6
	salesColReferral    = 8
	salesColRefunds     = 9
	salesColFulfillment = 10
)

// Load reads all five sheets from src into a Dataset. Absent sheets yield
// empty record sets.
func Load(src SheetSource) domain.Dataset {
	master, _ := Sheet(src, SheetMaster, SkipMaster)
	ads, _ := Sheet(src, SheetAds, SkipAds)
	inv, _ := Sheet(src, SheetInventory, SkipInventory)
	fixed, _ := Sheet(src, SheetFixed, SkipFixed)
	sales, _ := Sheet(src, SheetSales, SkipSales)

	bySKU, byASIN := AdIndex(ads)
	return domain.Dataset{
		Master:     MasterIndex(master),
		AdsBySKU:   bySKU,
		AdsByASIN:  byASIN,
		Inventory:  InventoryIndex(inv),
		FixedCosts: FixedCostsMonthly(fixed),
		Sales:      SalesLines(sales),
	}
}

// MasterIndex keys the SKU master rows by SKU. A later row for the same SKU
// replaces an earlier one.
func MasterIndex(rows domain.RawRecordSet) map[string]domain.SkuMasterEntry {
	out := make(map[string]domain.SkuMasterEntry, len(rows))
	for _, row := range rows {
		sku := Text(row, masterColSKU)
		if sku == "" {
			continue
		}
		name := Text(row, masterColName)
		if name == "" {
			name = sku
		}
		cat := Text(row, masterColCat)
		if cat == "" {
			cat = Uncategorized
		}
		out[sku] = domain.SkuMasterEntry{
			Name:     name,
			Category: cat,
			Cost:     Float(row, masterColCost),
			Freight:  Float(row, masterColFreight),
		}
	}
	return out
}

// DefaultMaster is the entry used for a SKU absent from the master sheet.
func DefaultMaster(sku string) domain.SkuMasterEntry {
	return domain.SkuMasterEntry{Name: sku, Category: Uncategorized}
}

// ASINKey truncates an ASIN at its first hyphen; an ASIN without one is used whole.
func ASINKey(asin string) string {
	if i := strings.Index(asin, "-"); i >= 0 {
		return asin[:i]
	}
	return asin
}

// AdIndex sums ad rows per SKU. Rows without a SKU are summed under the
// truncated ASIN key instead; rows with neither are dropped.
func AdIndex(rows domain.RawRecordSet) (bySKU, byASIN map[string]domain.AdAggregate) {
	bySKU = make(map[string]domain.AdAggregate)
	byASIN = make(map[string]domain.AdAggregate)
	for _, row := range rows {
		asin := Text(row, adColASIN)
		sku := strings.TrimSpace(Text(row, adColSKU))
		ad := domain.AdAggregate{
			Spend:       Float(row, adColSpend),
			Impressions: Float(row, adColImp),
			Clicks:      Float(row, adColClk),
			Sales:       Float(row, adColSales),
		}

		switch {
		case sku != "":
			bySKU[sku] = bySKU[sku].Add(ad)
		case asin != "":
			key := ASINKey(asin)
			byASIN[key] = byASIN[key].Add(ad)
		}
	}
	return bySKU, byASIN
}

// InventoryIndex keys inventory rows by SKU.
func InventoryIndex(rows domain.RawRecordSet) map[string]domain.InventorySnapshot {
	out := make(map[string]domain.InventorySnapshot, len(rows))
	for _, row := range rows {
		sku := Text(row, invColSKU)
		if sku == "" {
			continue
		}
		out[sku] = domain.InventorySnapshot{
			Fulfillable: Float(row, invColFul),
			Inbound:     Float(row, invColInbound),
			Reserved:    Float(row, invColReserved),
		}
	}
	return out
}

// FixedCostsMonthly sums labor, rent, software and the two other cost
// columns of the last fixed-cost row.
func FixedCostsMonthly(rows domain.RawRecordSet) float64 {
	if len(rows) == 0 {
		return 0
	}
	last := rows[len(rows)-1]
	var total float64
	for col := 1; col <= 5; col++ {
		total += Float(last, col)
	}
	return total
}

// SalesLines types every sales row. Filtering by SKU and revenue is left to
// the metrics engine.
func SalesLines(rows domain.RawRecordSet) []domain.SalesLine {
	out := make([]domain.SalesLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SalesLine{
			SKU:         Text(row, salesColSKU),
			ASIN:        Text(row, salesColASIN),
			Units:       Float(row, salesColUnits),
			Revenue:     Float(row, salesColRevenue),
			ReferralFee: math.Abs(Float(row, salesColReferral)),
			Refunds:     Float(row, salesColRefunds),
			Fulfillment: Float(row, salesColFulfillment),
		})
	}
	return out
}
