package domain

// InventoryStatus is the replenishment view of one SKU. Day-of-supply fields
// are nil when the SKU has no sales velocity.
type InventoryStatus struct {
	SKU            string      `json:"sku"`
	SellableDOS    *float64    `json:"sellableDOS"`
	TotalDOS       *float64    `json:"totalDOS"`
	StockoutGap    *float64    `json:"stockoutGap"`
	Status         StockStatus `json:"status"`
	OverstockRisk  bool        `json:"overstockRisk"`
	ROPUnits       float64     `json:"ropUnits"`
	TargetUnits    float64     `json:"targetUnits"`
	AvailableUnits float64     `json:"availableUnits"`
	OrderQty       float64     `json:"orderQty"`
}
