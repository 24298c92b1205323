package normalize

import "github.com/andresuchdata/lgurt/backend-go/internal/domain"

// Sheet names and the number of header rows each export carries.
const (
	SheetSales     = "sales_data"
	SheetMaster    = "sku_master"
	SheetAds       = "ad_data"
	SheetInventory = "inventory_data"
	SheetFixed     = "fixed_costs"

	SkipSales     = 19
	SkipMaster    = 18
	SkipAds       = 18
	SkipInventory = 15
	SkipFixed     = 12
)

// SheetSource exposes the raw rows of a workbook by sheet name.
type SheetSource interface {
	// Rows returns every row of the named sheet, or ok=false if it is absent.
	Rows(name string) (rows []domain.Row, ok bool)
}

// Sheet returns the rows of name after skipping its header rows. A sheet with
// no more rows than skip is returned whole. ok is false when the sheet is absent.
func Sheet(src SheetSource, name string, skip int) (domain.RawRecordSet, bool) {
	if src == nil {
		return nil, false
	}
	rows, ok := src.Rows(name)
	if !ok {
		return nil, false
	}
	if len(rows) > skip {
		rows = rows[skip:]
	}

	out := make(domain.RawRecordSet, len(rows))
	copy(out, rows)
	return out, true
}

// Tables maps sheet names to rows; handy for callers that already parsed a file.
type Tables map[string][]domain.Row

// Rows implements SheetSource.
func (t Tables) Rows(name string) ([]domain.Row, bool) {
	rows, ok := t[name]
	return rows, ok
}
