package domain

// Params is the caller-tunable parameter bundle of a run.
type Params struct {
	Days               int     `json:"days" mapstructure:"days"`
	LeadTimeDays       float64 `json:"lead_time_days" mapstructure:"lead_time_days"`
	SafetyDays         float64 `json:"safety_days" mapstructure:"safety_days"`
	TargetCoverDays    float64 `json:"target_cover_days" mapstructure:"target_cover_days"`
	LowStockThreshold  float64 `json:"low_stock_threshold" mapstructure:"low_stock_threshold"`
	OverstockThreshold float64 `json:"overstock_threshold" mapstructure:"overstock_threshold"`
}

// DefaultParams returns the parameter defaults used when the caller sets nothing.
func DefaultParams() Params {
	return Params{
		Days:               31,
		LeadTimeDays:       35,
		SafetyDays:         30,
		TargetCoverDays:    90,
		LowStockThreshold:  7,
		OverstockThreshold: 120,
	}
}

// WithValidDays replaces a non-positive window with the default. Days is a
// divisor; every other field may legitimately be 0.
func (p Params) WithValidDays() Params {
	if p.Days <= 0 {
		p.Days = DefaultParams().Days
	}
	return p
}

// ParamOverrides carries the parameters a caller set explicitly. A nil field
// keeps the base value; a set field wins even when it is 0.
type ParamOverrides struct {
	Days               *int
	LeadTimeDays       *float64
	SafetyDays         *float64
	TargetCoverDays    *float64
	LowStockThreshold  *float64
	OverstockThreshold *float64
}

// Apply returns base with every set override applied. A non-positive Days
// override is ignored.
func (o ParamOverrides) Apply(base Params) Params {
	p := base
	if o.Days != nil && *o.Days > 0 {
		p.Days = *o.Days
	}
	if o.LeadTimeDays != nil {
		p.LeadTimeDays = *o.LeadTimeDays
	}
	if o.SafetyDays != nil {
		p.SafetyDays = *o.SafetyDays
	}
	if o.TargetCoverDays != nil {
		p.TargetCoverDays = *o.TargetCoverDays
	}
	if o.LowStockThreshold != nil {
		p.LowStockThreshold = *o.LowStockThreshold
	}
	if o.OverstockThreshold != nil {
		p.OverstockThreshold = *o.OverstockThreshold
	}
	return p.WithValidDays()
}

// SkuRole describes how much loss a SKU of a given role may run before a stop-loss.
type SkuRole struct {
	Name        string  `json:"name" mapstructure:"name"`
	AllowedLoss float64 `json:"allowedLoss" mapstructure:"allowed_loss"`
	StopLoss    float64 `json:"stopLoss" mapstructure:"stop_loss"`
	WindowWeeks *int    `json:"windowWeeks" mapstructure:"window_weeks"`
}

// DefaultRoles is the built-in SKU role table.
func DefaultRoles() map[string]SkuRole {
	weeks := func(n int) *int { return &n }
	return map[string]SkuRole{
		"profit":  {Name: "Profit driver", AllowedLoss: 0, StopLoss: 0},
		"traffic": {Name: "Traffic driver", AllowedLoss: -0.10, StopLoss: -0.15, WindowWeeks: weeks(8)},
		"defense": {Name: "Defensive", AllowedLoss: -0.15, StopLoss: -0.25, WindowWeeks: weeks(4)},
		"test":    {Name: "Test launch", AllowedLoss: -0.30, StopLoss: -0.50, WindowWeeks: weeks(8)},
	}
}
