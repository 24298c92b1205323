package domain

import "strings"

// StockStatus classifies the sellable days of supply of a SKU.
type StockStatus string

const (
	StockNoSales    StockStatus = "no-sales"
	StockCritical   StockStatus = "critical"
	StockReorderNow StockStatus = "reorder-now"
	StockWatch      StockStatus = "watch"
	StockHealthy    StockStatus = "healthy"
)

// Quadrant is the strategic class of a SKU by pricing margin and ad contribution.
type Quadrant string

const (
	QuadrantStar      Quadrant = "star"
	QuadrantDog       Quadrant = "dog"
	QuadrantQuestion  Quadrant = "question"
	QuadrantEliminate Quadrant = "eliminate"
)

var stockStatusLabels = map[StockStatus]string{
	StockNoSales:    "No sales",
	StockCritical:   "Critical",
	StockReorderNow: "Reorder now",
	StockWatch:      "Watch",
	StockHealthy:    "Healthy",
}

var quadrantLabels = map[Quadrant]string{
	QuadrantStar:      "Star",
	QuadrantDog:       "Dog",
	QuadrantQuestion:  "Question mark",
	QuadrantEliminate: "Eliminate",
}

// Label returns a human-readable label for a stock status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return "Unknown"
}

// Label returns a human-readable label for a quadrant.
func (q Quadrant) Label() string {
	if label, ok := quadrantLabels[q]; ok {
		return label
	}

	return "Unknown"
}

// ParseStockStatus returns the status for a given label or code (case-insensitive).
func ParseStockStatus(s string) (StockStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for status, label := range stockStatusLabels {
		if s == string(status) || s == strings.ToLower(label) {
			return status, true
		}
	}

	return "", false
}
