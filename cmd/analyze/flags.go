package main

import (
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/urfave/cli/v2"
)

// paramFlags overrides the configured parameter defaults for one invocation.
// Unset flags keep the configured value.
func paramFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "days", Usage: "Reporting window length in days"},
		&cli.Float64Flag{Name: "lead-time", Usage: "Replenishment lead time in days"},
		&cli.Float64Flag{Name: "safety-days", Usage: "Safety stock in days"},
		&cli.Float64Flag{Name: "target-cover", Usage: "Target days of cover after reorder"},
		&cli.Float64Flag{Name: "low-stock", Usage: "Sellable days below which stock is critical"},
		&cli.Float64Flag{Name: "overstock", Usage: "Total days above which stock is overstocked"},
	}
}

// paramsFrom returns only the parameters given on the command line, so an
// explicit 0 overrides the configured default.
func paramsFrom(c *cli.Context) domain.ParamOverrides {
	var o domain.ParamOverrides
	if c.IsSet("days") {
		days := c.Int("days")
		o.Days = &days
	}
	o.LeadTimeDays = floatFlag(c, "lead-time")
	o.SafetyDays = floatFlag(c, "safety-days")
	o.TargetCoverDays = floatFlag(c, "target-cover")
	o.LowStockThreshold = floatFlag(c, "low-stock")
	o.OverstockThreshold = floatFlag(c, "overstock")
	return o
}

func floatFlag(c *cli.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}
