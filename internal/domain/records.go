package domain

// Cell is a single spreadsheet value of unknown type (string, number, nil...).
type Cell = any

// Row is a positional sequence of cells.
type Row []Cell

// RawRecordSet is the ordered rows of one sheet after the header rows are skipped.
type RawRecordSet []Row

// SkuMasterEntry holds the catalogue attributes of a SKU.
type SkuMasterEntry struct {
	Name     string  `json:"name"`
	Category string  `json:"cat"`
	Cost     float64 `json:"cost"`    // Unit cost
	Freight  float64 `json:"freight"` // Unit freight cost
}

// AdAggregate accumulates ad performance for one key. Aggregates are additive.
type AdAggregate struct {
	Spend       float64 `json:"spend"`
	Impressions float64 `json:"imp"`
	Clicks      float64 `json:"clk"`
	Sales       float64 `json:"sales"` // Attributed sales
}

// Add returns the component-wise sum of a and b.
func (a AdAggregate) Add(b AdAggregate) AdAggregate {
	return AdAggregate{
		Spend:       a.Spend + b.Spend,
		Impressions: a.Impressions + b.Impressions,
		Clicks:      a.Clicks + b.Clicks,
		Sales:       a.Sales + b.Sales,
	}
}

// InventorySnapshot is the stock position of a SKU.
type InventorySnapshot struct {
	Fulfillable float64 `json:"ful"`
	Inbound     float64 `json:"inb"`
	Reserved    float64 `json:"rsv"`
}

// FixedCostProfile is the monthly fixed overhead and its daily/period rates.
type FixedCostProfile struct {
	Monthly float64 `json:"mfMonthly"`
	Daily   float64 `json:"mfDaily"`
	Period  float64 `json:"mfPeriod"`
}

// SkuRecord is the per-SKU profitability record. It is never mutated after
// the metrics engine creates it.
type SkuRecord struct {
	SKU      string `json:"sku"`
	ASIN     string `json:"asin"`
	Name     string `json:"name"`
	Category string `json:"cat"`

	Units      float64 `json:"units"`
	DailyUnits float64 `json:"du"`

	Revenue     float64 `json:"rev"`
	Refunds     float64 `json:"ref"`
	Fulfillment float64 `json:"fba"`
	COGS        float64 `json:"cogs"`
	Freight     float64 `json:"frt"`
	ReferralFee float64 `json:"rfmFee"`

	PricingProfit float64 `json:"pp"`
	PricingMargin float64 `json:"pm"`

	AdSpend       float64 `json:"adSpend"`
	AdImpressions float64 `json:"adImp"`
	AdClicks      float64 `json:"adClk"`
	AdSales       float64 `json:"adSales"`

	OperatingProfit float64 `json:"op"`
	OperatingMargin float64 `json:"om"`
	AdRatio         float64 `json:"ar"`
	ACOS            float64 `json:"acos"`
	ROAS            float64 `json:"roas"`

	Fulfillable float64 `json:"ful"`
	Inbound     float64 `json:"inb"`
	Reserved    float64 `json:"rsv"`
}

// PortfolioSummary aggregates every SkuRecord of a run.
type PortfolioSummary struct {
	Revenue         float64 `json:"rev"`
	Units           float64 `json:"units"`
	Refunds         float64 `json:"ref"`
	Fulfillment     float64 `json:"fba"`
	COGS            float64 `json:"cogs"`
	Freight         float64 `json:"frt"`
	ReferralFee     float64 `json:"rfmFee"`
	PricingProfit   float64 `json:"pp"`
	AdSpend         float64 `json:"adSpend"`
	OperatingProfit float64 `json:"op"`
	Impressions     float64 `json:"imp"`
	Clicks          float64 `json:"clk"`
	AdSales         float64 `json:"adSales"`

	Days            int     `json:"days"`
	DailyRevenue    float64 `json:"dRev"`
	PricingMargin   float64 `json:"pm"`
	AdRatio         float64 `json:"ar"`
	OperatingMargin float64 `json:"om"`

	FixedMonthly float64 `json:"mfMonthly"`
	FixedDaily   float64 `json:"mfDaily"`
	FixedPeriod  float64 `json:"mfPeriod"`

	NetProfit      float64 `json:"np"`
	NetMargin      float64 `json:"npm"`
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	ACOS           float64 `json:"acos"`
	ROAS           float64 `json:"roas"`
	DailyBreakEven float64 `json:"dailyBreakEven"`
}

// SalesLine is one typed row of the sales sheet.
type SalesLine struct {
	SKU         string
	ASIN        string
	Units       float64
	Revenue     float64
	ReferralFee float64 // Absolute value of the sheet cell
	Refunds     float64
	Fulfillment float64
}

// Dataset is the typed, keyed form of the five input sheets.
type Dataset struct {
	Master     map[string]SkuMasterEntry
	AdsBySKU   map[string]AdAggregate
	AdsByASIN  map[string]AdAggregate // Keyed by the ASIN prefix before its first hyphen
	Inventory  map[string]InventorySnapshot
	FixedCosts float64 // Monthly total from the last fixed-cost row
	Sales      []SalesLine
}
