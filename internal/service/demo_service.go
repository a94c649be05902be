package service

import (
	"context"
	"credable/internal/config"
	"credable/internal/decision"
	"credable/internal/model"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// EmitFunc receives each console line of a staged run as it comes due
type EmitFunc func(line model.TraceLine) error

// DemoService runs the mock credit analysis shown on the demo page
type DemoService struct {
	pacing float64
	logger *zap.Logger
}

// NewDemoService creates a demo service with the configured pacing
func NewDemoService(cfg config.DemoConfig, logger *zap.Logger) *DemoService {
	return &DemoService{
		pacing: cfg.Pacing,
		logger: logger.Named("demo"),
	}
}

// Evaluate produces the full decision for a company name
func (s *DemoService) Evaluate(company string) model.Decision {
	d := decision.Evaluate(company)
	s.logger.Debug("evaluated company",
		zap.String("company", d.Company),
		zap.Int64("seed", d.Seed),
		zap.Stringer("mode", d.Mode))
	return d
}

// Preview returns the live signal preview for partially typed input
func (s *DemoService) Preview(text string) model.SignalPreview {
	return decision.Preview(text)
}

// Run replays the staged analysis for company, calling emit for every trace
// line at its scaled offset, and returns the decision once the last line is
// out. A canceled ctx or an emit error stops the run.
func (s *DemoService) Run(ctx context.Context, company string, emit EmitFunc) (model.Decision, error) {
	runID := uuid.NewString()
	d := s.Evaluate(company)
	lines := decision.Trace(d)

	log := s.logger.With(zap.String("runId", runID), zap.String("company", d.Company))
	log.Info("demo run started", zap.Int("lines", len(lines)))

	start := time.Now()
	for _, line := range lines {
		due := start.Add(s.scale(line.OffsetMS))
		if err := waitUntil(ctx, due); err != nil {
			log.Info("demo run canceled", zap.Error(err))
			return model.Decision{}, eris.Wrap(err, "demo run canceled")
		}
		if err := emit(line); err != nil {
			return model.Decision{}, eris.Wrap(err, "emit trace line")
		}
	}

	log.Info("demo run finished",
		zap.Stringer("mode", d.Mode),
		zap.Duration("took", time.Since(start)))
	return d, nil
}

func (s *DemoService) scale(offsetMS int) time.Duration {
	if s.pacing <= 0 {
		return 0
	}
	return time.Duration(float64(offsetMS) * s.pacing * float64(time.Millisecond))
}

func waitUntil(ctx context.Context, due time.Time) error {
	d := time.Until(due)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
