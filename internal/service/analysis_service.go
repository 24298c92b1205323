package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/andresuchdata/lgurt/backend-go/internal/cache"
	"github.com/andresuchdata/lgurt/backend-go/internal/config"
	"github.com/andresuchdata/lgurt/backend-go/internal/domain"
	"github.com/andresuchdata/lgurt/backend-go/internal/pipeline"
	"github.com/andresuchdata/lgurt/backend-go/internal/storage"
	"github.com/andresuchdata/lgurt/backend-go/internal/workbook"
	"github.com/andresuchdata/lgurt/backend-go/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrRunNotFound          = errors.New("run not found")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
)

// BucketSource fetches objects from a named bucket.
type BucketSource interface {
	FetchFrom(ctx context.Context, bucket, key string) ([]byte, error)
}

// Request names one workbook to analyze. Location is a local path or
// s3://bucket/key. Unset params take the configured defaults.
type Request struct {
	Location string
	Params   domain.ParamOverrides
}

// Verification compares a stored run with a fresh computation.
type Verification struct {
	RunID      string          `json:"run_id"`
	Stored     domain.Checksum `json:"stored"`
	Fresh      domain.Checksum `json:"fresh"`
	Consistent bool            `json:"consistent"`
}

type AnalysisService struct {
	cfg      pipeline.AnalysisConfig
	defaults domain.Params
	files    storage.Source
	objects  BucketSource
	cache    cache.RunCache

	open  func(data []byte) (pipeline.SheetSource, error)
	now   func() time.Time
	newID func() string
}

// NewAnalysisService wires the service. objects may be nil when no object
// storage is configured; cacheImpl may be nil to disable run storage.
func NewAnalysisService(cfg config.AnalysisConfig, objects BucketSource, cacheImpl cache.RunCache) *AnalysisService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunCache()
	}
	return &AnalysisService{
		cfg:      cfg.Pipeline(),
		defaults: cfg.Params.WithValidDays(),
		files:    storage.FileSource{},
		objects:  objects,
		cache:    cacheImpl,
		open:     openWorkbook,
		now:      time.Now,
		newID:    NewRunID,
	}
}

func openWorkbook(data []byte) (pipeline.SheetSource, error) {
	return workbook.OpenBytes(data)
}

// NewRunID returns "run_" followed by 12 hex characters.
func NewRunID() string {
	return "run_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Analyze runs the pipeline over one workbook and stores the result.
func (s *AnalysisService) Analyze(ctx context.Context, req Request) (*domain.RunResult, error) {
	params := req.Params.Apply(s.defaults)

	bundle, err := s.compute(ctx, req.Location, params)
	if err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		Run: domain.Run{
			ID:          s.newID(),
			FileName:    path.Base(req.Location),
			CreatedAt:   s.now().UTC(),
			AlgoVersion: s.cfg.AlgoVersion,
			Params:      params,
			Checksum:    bundle.Checksum,
		},
		Bundle: bundle,
	}

	if err := s.cache.Set(ctx, result); err != nil {
		logger.Log.Warn().Err(err).Str("run_id", result.Run.ID).Msg("analysis: cache set run failed")
	}

	logger.Log.Info().
		Str("run_id", result.Run.ID).
		Str("file", result.Run.FileName).
		Int("skus", len(bundle.SKUs)).
		Float64("rev", bundle.Checksum.Revenue).
		Float64("op", bundle.Checksum.OperatingProfit).
		Msg("analysis completed")

	return result, nil
}

// AnalyzeBatch analyzes independent workbooks with at most limit running at
// once. Results keep the order of reqs. The first failure cancels the rest.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, reqs []Request, limit int) ([]*domain.RunResult, error) {
	if limit <= 0 {
		limit = 1
	}

	results := make([]*domain.RunResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := s.Analyze(gctx, req)
			if err != nil {
				return fmt.Errorf("failed to analyze %s: %w", req.Location, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Get returns a stored run.
func (s *AnalysisService) Get(ctx context.Context, runID string) (*domain.RunResult, error) {
	result, ok, err := s.cache.Get(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return result, nil
}

// Verify recomputes the workbook in req and compares its checksum with the
// stored run. Params not set in req replay the stored run's params. A
// mismatch returns the verification together with ErrChecksumMismatch.
func (s *AnalysisService) Verify(ctx context.Context, runID string, req Request) (*Verification, error) {
	stored, err := s.Get(ctx, runID)
	if err != nil {
		return nil, err
	}

	params := req.Params.Apply(stored.Run.Params)
	bundle, err := s.compute(ctx, req.Location, params)
	if err != nil {
		return nil, err
	}

	v := &Verification{
		RunID:      runID,
		Stored:     stored.Run.Checksum,
		Fresh:      bundle.Checksum,
		Consistent: stored.Run.Checksum.ConsistentWith(bundle.Checksum),
	}

	logger.Log.Info().
		Str("run_id", runID).
		Bool("consistent", v.Consistent).
		Msg("analysis verified")

	if !v.Consistent {
		return v, fmt.Errorf("%w: run %s", ErrChecksumMismatch, runID)
	}
	return v, nil
}

// List returns stored runs, newest first. limit <= 0 uses cache.DefaultListLimit.
func (s *AnalysisService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := s.cache.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Forget removes a stored run.
func (s *AnalysisService) Forget(ctx context.Context, runID string) error {
	if err := s.cache.Delete(ctx, runID); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	return nil
}

// Purge removes every stored run.
func (s *AnalysisService) Purge(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to purge runs: %w", err)
	}
	return nil
}

func (s *AnalysisService) compute(ctx context.Context, location string, params domain.Params) (*domain.Bundle, error) {
	data, err := s.fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	src, err := s.open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", location, err)
	}

	bundle, err := pipeline.Run(s.cfg, src, params)
	if err != nil {
		return nil, fmt.Errorf("failed to run pipeline on %s: %w", location, err)
	}
	return bundle, nil
}

func (s *AnalysisService) fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, storage.S3Scheme) {
		bucket, key, ok := storage.SplitS3URI(location)
		if !ok {
			return nil, fmt.Errorf("invalid object location %q", location)
		}
		if s.objects == nil {
			return nil, ErrStorageNotConfigured
		}
		return s.objects.FetchFrom(ctx, bucket, key)
	}
	return s.files.Fetch(ctx, location)
}
