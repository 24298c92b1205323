// Package metrics joins sales lines with master, ad and inventory data into
// per-SKU profitability records and a portfolio summary.
package metrics

import (
	"sort"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/normalize"
)

// Engine computes SkuRecords for a reporting window of a given length.
type Engine struct {
	days int
}

// NewEngine creates an engine for a window of days. Non-positive windows
// produce zero daily rates.
func NewEngine(days int) *Engine {
	return &Engine{days: days}
}

// Compute returns the profit-ordered SKU records and their summary.
func (e *Engine) Compute(ds domain.Dataset) ([]domain.SkuRecord, domain.PortfolioSummary) {
	skus := e.Records(ds)
	return skus, e.Summarize(skus, FixedCosts(ds.FixedCosts, e.days))
}

// Records builds one SkuRecord per sales line with a SKU and positive revenue,
// sorted by operating profit descending (stable on input order).
func (e *Engine) Records(ds domain.Dataset) []domain.SkuRecord {
	skus := make([]domain.SkuRecord, 0, len(ds.Sales))
	for _, line := range ds.Sales {
		if line.SKU == "" || line.Revenue <= 0 {
			continue
		}
		skus = append(skus, e.record(ds, line))
	}

	sort.SliceStable(skus, func(i, j int) bool {
		return skus[i].OperatingProfit > skus[j].OperatingProfit
	})
	return skus
}

func (e *Engine) record(ds domain.Dataset, line domain.SalesLine) domain.SkuRecord {
	info, ok := ds.Master[line.SKU]
	if !ok {
		info = normalize.DefaultMaster(line.SKU)
	}
	ad := lookupAd(ds, line)
	inv := ds.Inventory[line.SKU]

	rev := line.Revenue
	cogs := info.Cost * line.Units
	frt := info.Freight * line.Units

	// Pricing profit before ads
	pp := rev - line.Refunds - line.Fulfillment - cogs - frt - line.ReferralFee
	pm := numeric.Ratio(pp, rev)

	// Operating profit after ads
	op := pp - ad.Spend
	om := numeric.Ratio(op, rev)
	ar := numeric.Ratio(ad.Spend, rev)

	du := numeric.Ratio(line.Units, float64(e.days))

	return domain.SkuRecord{
		SKU:      line.SKU,
		ASIN:     line.ASIN,
		Name:     info.Name,
		Category: info.Category,

		Units:      numeric.Round(line.Units, 0),
		DailyUnits: numeric.Round(du, 1),

		Revenue:     numeric.Round(rev, 2),
		Refunds:     numeric.Round(line.Refunds, 2),
		Fulfillment: numeric.Round(line.Fulfillment, 2),
		COGS:        numeric.Round(cogs, 2),
		Freight:     numeric.Round(frt, 2),
		ReferralFee: numeric.Round(line.ReferralFee, 2),

		PricingProfit: numeric.Round(pp, 2),
		PricingMargin: numeric.Round(pm, 4),

		AdSpend:       numeric.Round(ad.Spend, 2),
		AdImpressions: ad.Impressions,
		AdClicks:      ad.Clicks,
		AdSales:       numeric.Round(ad.Sales, 2),

		OperatingProfit: numeric.Round(op, 2),
		OperatingMargin: numeric.Round(om, 4),
		AdRatio:         numeric.Round(ar, 4),
		ACOS:            numeric.Round(numeric.Ratio(ad.Spend, ad.Sales), 4),
		ROAS:            numeric.Round(numeric.Ratio(ad.Sales, ad.Spend), 2),

		Fulfillable: inv.Fulfillable,
		Inbound:     inv.Inbound,
		Reserved:    inv.Reserved,
	}
}

// lookupAd prefers the SKU-keyed aggregate and falls back to the truncated
// ASIN. An empty ASIN looks up the "" key, which ad rows whose ASIN starts
// with a hyphen are summed under.
func lookupAd(ds domain.Dataset, line domain.SalesLine) domain.AdAggregate {
	if ad, ok := ds.AdsBySKU[line.SKU]; ok {
		return ad
	}
	return ds.AdsByASIN[normalize.ASINKey(line.ASIN)]
}
