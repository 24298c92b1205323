package metrics

import (
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/numeric"
)

// FixedCosts converts a monthly overhead into daily (monthly/30) and period rates.
func FixedCosts(monthly float64, days int) domain.FixedCostProfile {
	daily := monthly / 30
	return domain.FixedCostProfile{
		Monthly: monthly,
		Daily:   daily,
		Period:  daily * float64(days),
	}
}

// Summarize totals the SKU records and derives the portfolio ratios. Every
// ratio with a zero denominator is 0.
func (e *Engine) Summarize(skus []domain.SkuRecord, fc domain.FixedCostProfile) domain.PortfolioSummary {
	var s domain.PortfolioSummary
	for _, x := range skus {
		s.Revenue += x.Revenue
		s.Units += x.Units
		s.Refunds += x.Refunds
		s.Fulfillment += x.Fulfillment
		s.COGS += x.COGS
		s.Freight += x.Freight
		s.ReferralFee += x.ReferralFee
		s.PricingProfit += x.PricingProfit
		s.AdSpend += x.AdSpend
		s.OperatingProfit += x.OperatingProfit
		s.Impressions += x.AdImpressions
		s.Clicks += x.AdClicks
		s.AdSales += x.AdSales
	}

	// Sums of 2dp values drift in binary floating point.
	for _, v := range []*float64{
		&s.Revenue, &s.Refunds, &s.Fulfillment, &s.COGS, &s.Freight, &s.ReferralFee,
		&s.PricingProfit, &s.AdSpend, &s.OperatingProfit, &s.AdSales,
	} {
		*v = numeric.Round(*v, 2)
	}

	om := numeric.Ratio(s.OperatingProfit, s.Revenue)
	np := s.OperatingProfit - fc.Period

	var breakEven float64
	if om > 0 {
		breakEven = fc.Daily / om
	}

	s.Days = e.days
	s.DailyRevenue = numeric.Round(numeric.Ratio(s.Revenue, float64(e.days)), 2)
	s.PricingMargin = numeric.Round(numeric.Ratio(s.PricingProfit, s.Revenue), 4)
	s.AdRatio = numeric.Round(numeric.Ratio(s.AdSpend, s.Revenue), 4)
	s.OperatingMargin = numeric.Round(om, 4)

	s.FixedMonthly = fc.Monthly
	s.FixedDaily = numeric.Round(fc.Daily, 2)
	s.FixedPeriod = numeric.Round(fc.Period, 2)

	s.NetProfit = numeric.Round(np, 2)
	s.NetMargin = numeric.Round(numeric.Ratio(np, s.Revenue), 4)
	s.CTR = numeric.Round(numeric.Ratio(s.Clicks, s.Impressions), 4)
	s.CPC = numeric.Round(numeric.Ratio(s.AdSpend, s.Clicks), 2)
	s.ACOS = numeric.Round(numeric.Ratio(s.AdSpend, s.AdSales), 4)
	s.ROAS = numeric.Round(numeric.Ratio(s.AdSales, s.AdSpend), 2)
	s.DailyBreakEven = numeric.Round(breakEven, 2)

	return s
}
