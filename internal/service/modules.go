package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/consultdesk/erp-ui/internal/domain/erp"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/observability/metrics"
	"github.com/consultdesk/erp-ui/internal/ports"
)

const defaultCountConcurrency = 4

// ModuleServiceOptions groups dependencies for ModuleService.
type ModuleServiceOptions struct {
	Reader  ports.ModuleReader
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Concurrency bounds the parallel fetches made by Counts (default 4).
	Concurrency int
}

// ModuleService reads ERP module data on behalf of a session.
type ModuleService struct {
	reader      ports.ModuleReader
	metrics     *metrics.Metrics
	logger      *slog.Logger
	concurrency int
}

// NewModuleService constructs a ModuleService.
func NewModuleService(opts ModuleServiceOptions) *ModuleService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	n := opts.Concurrency
	if n <= 0 {
		n = defaultCountConcurrency
	}
	return &ModuleService{
		reader:      opts.Reader,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "module_service"),
		concurrency: n,
	}
}

// List returns the records of module.
func (s *ModuleService) List(ctx context.Context, token string, m erp.Module) ([]ports.Record, error) {
	start := time.Now()
	recs, err := s.reader.List(ctx, token, m.Key)
	s.metrics.ObserveBackend("list", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", m.Key, err)
	}
	return recs, nil
}

// Get returns one record of module.
func (s *ModuleService) Get(ctx context.Context, token string, m erp.Module, id string) (ports.Record, error) {
	if id == "" {
		return nil, apperrors.ValidationField("id", "record id is required")
	}
	start := time.Now()
	rec, err := s.reader.Get(ctx, token, m.Key, id)
	s.metrics.ObserveBackend("get", err, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", m.Key, id, err)
	}
	return rec, nil
}

// ModuleCount is one dashboard tile.
type ModuleCount struct {
	Module erp.Module
	Count  int
	Err    error
}

// Counts fetches the record count of every module in parallel. A failing module
// does not fail the others; its error is reported on its tile. Results keep the
// order of modules.
func (s *ModuleService) Counts(ctx context.Context, token string, modules []erp.Module) []ModuleCount {
	out := make([]ModuleCount, len(modules))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, m := range modules {
		out[i].Module = m
		g.Go(func() error {
			recs, err := s.List(gctx, token, m)
			if err != nil {
				s.logger.WarnContext(ctx, "dashboard count failed", "module", m.Key, "error", err)
				out[i].Err = err
				return nil
			}
			out[i].Count = len(recs)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors
	return out
}
