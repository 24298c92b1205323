package pipeline

import (
	"errors"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline/normalize"
)

// DefaultAlgoVersion tags plans produced by this pipeline.
const DefaultAlgoVersion = "v5.1"

// ErrUnreadableWorkbook is returned when the input could not be parsed at all.
// No partial bundle accompanies it.
var ErrUnreadableWorkbook = errors.New("could not parse spreadsheet")

// SheetSource exposes raw workbook rows by sheet name.
type SheetSource = normalize.SheetSource

// AnalysisConfig is the process-wide configuration of the pipeline. It is
// built once at startup and passed by value into every run.
type AnalysisConfig struct {
	AlgoVersion string                    // Tag stamped on every ad plan
	Roles       map[string]domain.SkuRole // SKU role table returned with bundles
}

// DefaultAnalysisConfig returns the built-in algorithm version and role table.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		AlgoVersion: DefaultAlgoVersion,
		Roles:       domain.DefaultRoles(),
	}
}

func (c AnalysisConfig) withDefaults() AnalysisConfig {
	if c.AlgoVersion == "" {
		c.AlgoVersion = DefaultAlgoVersion
	}
	if c.Roles == nil {
		c.Roles = domain.DefaultRoles()
	}
	return c
}

func copyRoles(in map[string]domain.SkuRole) map[string]domain.SkuRole {
	out := make(map[string]domain.SkuRole, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
