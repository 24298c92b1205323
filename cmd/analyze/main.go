package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andresuchdata/lgurt/backend-go/internal/cache"
	"github.com/andresuchdata/lgurt/backend-go/internal/config"
	"github.com/andresuchdata/lgurt/backend-go/internal/service"
	"github.com/andresuchdata/lgurt/backend-go/internal/storage"
	"github.com/andresuchdata/lgurt/backend-go/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type contextKey string

const (
	configKey  contextKey = "config"
	serviceKey contextKey = "service"
	storageKey contextKey = "storage"
)

func newRunIDFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "run-id",
		Usage:    "Run id returned by a previous analyze run",
		Required: true,
	}
}

// initService loads configuration, sets up logging and stores the analysis
// service in the command context.
func initService(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Results go to stdout, so logs go to stderr
	logger.SetOutput(os.Stderr)
	logger.SetFormat(cfg.App.LogFormat)
	logger.SetLevel(cfg.App.LogLevel)

	runs, err := cache.NewRunCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("run cache unavailable, runs will not be stored")
		runs = cache.NewNoopRunCache()
	}

	var objects service.BucketSource
	if cfg.Storage.Endpoint != "" {
		src, err := storage.NewS3Source(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to init object storage: %w", err)
		}
		objects = src
		c.Context = context.WithValue(c.Context, storageKey, src)
	}

	svc := service.NewAnalysisService(cfg.Analysis, objects, runs)

	c.Context = context.WithValue(c.Context, configKey, cfg)
	c.Context = context.WithValue(c.Context, serviceKey, svc)
	return nil
}

func serviceFrom(c *cli.Context) *service.AnalysisService {
	svc, _ := c.Context.Value(serviceKey).(*service.AnalysisService)
	return svc
}

func storageFrom(c *cli.Context) *storage.S3Source {
	src, _ := c.Context.Value(storageKey).(*storage.S3Source)
	return src
}

func configFrom(c *cli.Context) *config.Config {
	cfg, _ := c.Context.Value(configKey).(*config.Config)
	return cfg
}

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	app := &cli.App{
		Name:   "analyze",
		Usage:  "Per-SKU profitability, ad-spend and replenishment analysis of marketplace exports",
		Before: initService,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Analyze one or more workbooks (local paths or s3://bucket/key)",
				ArgsUsage: "FILE|s3://BUCKET/KEY...",
				Flags: append(paramFlags(),
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Workbooks analyzed at once (default from ANALYSIS_BATCH_LIMIT)",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Also analyze every .xlsx under this key prefix of STORAGE_BUCKET",
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Write each result to OUTPUT_DIR/<run_id>.json instead of stdout",
					},
				),
				Action: runAnalyze,
			},
			{
				Name:      "verify",
				Usage:     "Recompute a workbook and compare it with a stored run",
				ArgsUsage: "FILE|s3://BUCKET/KEY",
				Flags:     append(paramFlags(), newRunIDFlag()),
				Action:    runVerify,
			},
			{
				Name:  "show",
				Usage: "Print a stored run",
				Flags: []cli.Flag{
					newRunIDFlag(),
					&cli.StringFlag{
						Name:  "status",
						Usage: "Only list SKUs with this stock status (e.g. critical, reorder-now)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the full stored result as JSON",
					},
				},
				Action: runShow,
			},
			{
				Name:  "list",
				Usage: "List stored runs, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum runs to list",
						Value: cache.DefaultListLimit,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print the runs as JSON",
					},
				},
				Action: runList,
			},
			{
				Name:   "forget",
				Usage:  "Delete a stored run",
				Flags:  []cli.Flag{newRunIDFlag()},
				Action: runForget,
			},
			{
				Name:   "purge",
				Usage:  "Delete every stored run",
				Action: runPurge,
			},
			{
				Name:   "show-config",
				Usage:  "Print the effective analysis configuration",
				Action: runShowConfig,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("analyze failed")
	}
}
