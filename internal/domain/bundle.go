package domain

import (
	"math"
	"time"
)

// ChecksumTolerance is the absolute difference below which two checksums agree.
const ChecksumTolerance = 1.0

// Checksum fingerprints a result by its revenue and operating-profit totals.
type Checksum struct {
	Revenue         float64 `json:"rev"`
	OperatingProfit float64 `json:"op"`
}

// ConsistentWith reports whether c and other differ by less than ChecksumTolerance
// on both totals.
func (c Checksum) ConsistentWith(other Checksum) bool {
	return math.Abs(c.Revenue-other.Revenue) < ChecksumTolerance &&
		math.Abs(c.OperatingProfit-other.OperatingProfit) < ChecksumTolerance
}

// Bundle is the complete output of one pipeline run.
type Bundle struct {
	Summary     PortfolioSummary   `json:"summary"`
	SKUs        []SkuRecord        `json:"skus"`
	AdPlan      AdPlan             `json:"ad_plan"`
	Inventory   []InventoryStatus  `json:"inventory"`
	Diagnostics []DiagnosticRecord `json:"diagnostics"`
	Checksum    Checksum           `json:"checksum"`
	Roles       map[string]SkuRole `json:"roles,omitempty"`
}

// Run is the metadata a caller keeps with a stored bundle.
type Run struct {
	ID          string    `json:"run_id"`
	FileName    string    `json:"file_name"`
	CreatedAt   time.Time `json:"created_at"`
	AlgoVersion string    `json:"algo_version"`
	Params      Params    `json:"params"`
	Checksum    Checksum  `json:"checksum"`
}

// RunResult pairs a run with its bundle.
type RunResult struct {
	Run    Run     `json:"run"`
	Bundle *Bundle `json:"result"`
}
