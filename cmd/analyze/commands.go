package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/service"
	"github.com/andresuchdata/lgurt/backend-go/internal/storage"
	"github.com/andresuchdata/lgurt/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

func runAnalyze(c *cli.Context) error {
	locations := c.Args().Slice()
	if c.IsSet("prefix") {
		found, err := prefixLocations(c, c.String("prefix"))
		if err != nil {
			return err
		}
		locations = append(locations, found...)
	}
	if len(locations) == 0 {
		return fmt.Errorf("at least one workbook location is required")
	}

	params := paramsFrom(c)
	reqs := make([]service.Request, 0, len(locations))
	for _, loc := range locations {
		reqs = append(reqs, service.Request{Location: loc, Params: params})
	}

	limit := c.Int("concurrency")
	if limit <= 0 {
		limit = configFrom(c).Analysis.BatchLimit
	}

	results, err := serviceFrom(c).AnalyzeBatch(c.Context, reqs, limit)
	if err != nil {
		return err
	}

	outDir := c.String("output-dir")
	for _, result := range results {
		if outDir == "" {
			if err := writeJSON(os.Stdout, result); err != nil {
				return err
			}
			continue
		}
		path, err := writeResultFile(outDir, result)
		if err != nil {
			return err
		}
		logger.Log.Info().Str("run_id", result.Run.ID).Str("path", path).Msg("result written")
	}
	return nil
}

// prefixLocations lists the workbooks under prefix in the configured bucket.
func prefixLocations(c *cli.Context, prefix string) ([]string, error) {
	src := storageFrom(c)
	if src == nil {
		return nil, service.ErrStorageNotConfigured
	}

	keys, err := storage.WorkbookKeys(c.Context, src, prefix)
	if err != nil {
		return nil, err
	}
	logger.Log.Info().Str("prefix", prefix).Int("workbooks", len(keys)).Msg("listed workbooks")

	locations := make([]string, 0, len(keys))
	for _, key := range keys {
		locations = append(locations, storage.S3Scheme+src.Bucket()+"/"+key)
	}
	return locations, nil
}

func runVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one workbook location is required")
	}

	v, err := serviceFrom(c).Verify(c.Context, c.String("run-id"), service.Request{
		Location: c.Args().First(),
		Params:   paramsFrom(c),
	})
	if v != nil {
		if werr := writeJSON(os.Stdout, v); werr != nil {
			return werr
		}
	}
	if errors.Is(err, service.ErrChecksumMismatch) {
		return cli.Exit(err.Error(), 2)
	}
	return err
}

func runShow(c *cli.Context) error {
	result, err := serviceFrom(c).Get(c.Context, c.String("run-id"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(os.Stdout, result)
	}

	var filter *domain.StockStatus
	if raw := c.String("status"); raw != "" {
		status, ok := domain.ParseStockStatus(raw)
		if !ok {
			return fmt.Errorf("unknown stock status %q", raw)
		}
		filter = &status
	}

	return printRun(os.Stdout, result, filter)
}

func runList(c *cli.Context) error {
	runs, err := serviceFrom(c).List(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return writeJSON(os.Stdout, runs)
	}
	return printRuns(os.Stdout, runs)
}

func runForget(c *cli.Context) error {
	return serviceFrom(c).Forget(c.Context, c.String("run-id"))
}

func runPurge(c *cli.Context) error {
	return serviceFrom(c).Purge(c.Context)
}

func runShowConfig(c *cli.Context) error {
	cfg := configFrom(c)
	return writeJSON(os.Stdout, map[string]any{
		"algoVersion": cfg.Analysis.AlgoVersion,
		"params":      cfg.Analysis.Params,
		"roles":       cfg.Analysis.Roles,
		"batchLimit":  cfg.Analysis.BatchLimit,
		"cache":       cfg.Cache.Enabled,
		"storage":     cfg.Storage.Endpoint != "",
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func writeResultFile(dir string, result *domain.RunResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, result.Run.ID+".json")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writeJSON(f, result); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}

// printRun prints the run header, portfolio totals and one line per SKU.
func printRun(w io.Writer, result *domain.RunResult, filter *domain.StockStatus) error {
	run := result.Run
	fmt.Fprintf(w, "run %s  %s  %s  algo %s\n", run.ID, run.FileName, run.CreatedAt.Format("2006-01-02 15:04:05"), run.AlgoVersion)
	if result.Bundle == nil {
		return nil
	}

	s := result.Bundle.Summary
	fmt.Fprintf(w, "revenue %.2f  operating profit %.2f  net profit %.2f  ad ratio %.2f%%  break-even/day %.2f\n\n",
		s.Revenue, s.OperatingProfit, s.NetProfit, s.AdRatio*100, s.DailyBreakEven)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tREV\tOP\tPM\tAR\tSTOCK\tORDER\tQUADRANT\tHEALTHY")
	for i, x := range result.Bundle.SKUs {
		var inv domain.InventoryStatus
		if i < len(result.Bundle.Inventory) {
			inv = result.Bundle.Inventory[i]
		}
		if filter != nil && inv.Status != *filter {
			continue
		}
		var diag domain.DiagnosticRecord
		if i < len(result.Bundle.Diagnostics) {
			diag = result.Bundle.Diagnostics[i]
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.1f%%\t%.1f%%\t%s\t%.0f\t%s\t%t\n",
			x.SKU, x.Revenue, x.OperatingProfit, x.PricingMargin*100, x.AdRatio*100,
			inv.Status.Label(), inv.OrderQty, diag.Quadrant.Label(), diag.IsHealthy)
	}
	return tw.Flush()
}

// printRuns lists stored runs one per line.
func printRuns(w io.Writer, runs []domain.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tFILE\tDAYS\tREV\tOP")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.FileName, r.Params.Days,
			r.Checksum.Revenue, r.Checksum.OperatingProfit)
	}
	return tw.Flush()
}
