package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func sampleRun() *domain.RunResult {
	return &domain.RunResult{
		Run: domain.Run{
			ID:          "run_0123456789ab",
			FileName:    "report.xlsx",
			CreatedAt:   time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
			AlgoVersion: "v5.1",
		},
		Bundle: &domain.Bundle{
			Summary: domain.PortfolioSummary{Revenue: 1200, OperatingProfit: 750},
			SKUs: []domain.SkuRecord{
				{SKU: "SKU-A", Revenue: 1000, OperatingProfit: 580, PricingMargin: 0.62, AdRatio: 0.04},
				{SKU: "SKU-B", Revenue: 200, OperatingProfit: 170},
			},
			Inventory: []domain.InventoryStatus{
				{SKU: "SKU-A", Status: domain.StockHealthy},
				{SKU: "SKU-B", Status: domain.StockCritical, OrderQty: 42},
			},
			Diagnostics: []domain.DiagnosticRecord{
				{SKU: "SKU-A", Quadrant: domain.QuadrantDog, IsHealthy: true},
				{SKU: "SKU-B", Quadrant: domain.QuadrantStar},
			},
		},
	}
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printRun(&buf, sampleRun(), nil))

	out := buf.String()
	assert.Contains(t, out, "run run_0123456789ab  report.xlsx  2026-10-14 09:30:00  algo v5.1")
	assert.Contains(t, out, "revenue 1200.00")
	assert.Contains(t, out, "SKU-A")
	assert.Contains(t, out, "SKU-B")
	assert.Contains(t, out, "Critical")
	assert.Contains(t, out, "62.0%")
}

func TestPrintRun_StatusFilter(t *testing.T) {
	var buf bytes.Buffer
	critical := domain.StockCritical
	require.NoError(t, printRun(&buf, sampleRun(), &critical))

	out := buf.String()
	assert.NotContains(t, out, "SKU-A")
	assert.Contains(t, out, "SKU-B")
	assert.Contains(t, out, "42")
}

func TestWriteResultFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := writeResultFile(dir, sampleRun())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_0123456789ab.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got domain.RunResult
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "report.xlsx", got.Run.FileName)
	require.NotNil(t, got.Bundle)
	assert.Len(t, got.Bundle.SKUs, 2)
}

func parseParams(t *testing.T, args ...string) domain.ParamOverrides {
	t.Helper()
	set := flag.NewFlagSet("run", flag.ContinueOnError)
	for _, f := range paramFlags() {
		require.NoError(t, f.Apply(set))
	}
	require.NoError(t, set.Parse(args))
	return paramsFrom(cli.NewContext(cli.NewApp(), set, nil))
}

func TestParamsFrom(t *testing.T) {
	got := parseParams(t, "--days", "62", "--lead-time", "20")

	require.NotNil(t, got.Days)
	assert.Equal(t, 62, *got.Days)
	require.NotNil(t, got.LeadTimeDays)
	assert.Equal(t, 20.0, *got.LeadTimeDays)
	assert.Nil(t, got.SafetyDays)
	assert.Nil(t, got.OverstockThreshold)

	p := got.Apply(domain.DefaultParams())
	assert.Equal(t, 30.0, p.SafetyDays)
}

func TestParamsFrom_ExplicitZero(t *testing.T) {
	got := parseParams(t, "--safety-days", "0", "--low-stock", "0")

	require.NotNil(t, got.SafetyDays)
	require.NotNil(t, got.LowStockThreshold)
	p := got.Apply(domain.DefaultParams())
	assert.Equal(t, 0.0, p.SafetyDays)
	assert.Equal(t, 0.0, p.LowStockThreshold)
	assert.Equal(t, 35.0, p.LeadTimeDays)
}

func TestWriteResultFile_MissingDirParent(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := writeResultFile(filepath.Join(blocker, "out"), sampleRun())
	assert.Error(t, err)
}

func TestPrintRuns(t *testing.T) {
	run := sampleRun().Run
	run.Params = domain.DefaultParams()
	run.Checksum = domain.Checksum{Revenue: 1200, OperatingProfit: 750}

	var buf bytes.Buffer
	require.NoError(t, printRuns(&buf, []domain.Run{run}))

	out := buf.String()
	assert.Contains(t, out, "RUN ID")
	assert.Contains(t, out, "run_0123456789ab")
	assert.Contains(t, out, "2026-10-14 09:30:00")
	assert.Contains(t, out, "report.xlsx")
	assert.Contains(t, out, "1200.00")
}
