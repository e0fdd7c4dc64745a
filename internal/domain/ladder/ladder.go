// Package ladder implements the bootstrap-averaged, Bayes-factor-gated
// scoring policy. For each submission it decides whether to report a
// freshly computed score or to repeat the previous best, so that small,
// overfitting-driven fluctuations never move the public score.
//
// The controller is stateless across calls: the caller passes the
// previous reference submission in and receives the reference to use
// next round back in the report.
package ladder

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/vpchung/challengescoring/internal/domain/bayes"
	"github.com/vpchung/challengescoring/internal/domain/bootstrap"
	"github.com/vpchung/challengescoring/internal/domain/frame"
	"github.com/vpchung/challengescoring/internal/domain/pair"
	"github.com/vpchung/challengescoring/internal/domain/score"
	"github.com/vpchung/challengescoring/pkg/logger"
	"github.com/vpchung/challengescoring/pkg/metrics"
)

// Default ladder configuration constants.
const (
	DefaultBootstrapN       = 10_000
	DefaultReportBootstrapN = 10
	DefaultBayesThreshold   = 3.0
	DefaultPredictionColumn = "prediction"

	// seedStride separates the derived seed streams of the current,
	// previous, and reporting distributions. Draw seeds advance by one
	// per draw, so streams stay disjoint for any realistic draw count.
	seedStride = int64(1) << 32
)

// Decision is the advance-or-hold outcome of one ladder evaluation.
type Decision string

const (
	// Advance means the submission's fresh score becomes the reported one.
	Advance Decision = "advance"
	// Hold means the previous reference keeps the reported score.
	Hold Decision = "hold"
)

// Config carries one submission event through the ladder.
type Config struct {
	// Predictions is the submission under evaluation.
	Predictions *frame.Frame
	// PredictionColumn names the predicted-value column. Defaults to "prediction".
	PredictionColumn string

	// GoldStandard holds the true values.
	GoldStandard *frame.Frame
	// GoldStandardColumn names the true-value column (scalar metrics).
	GoldStandardColumn string
	// TimeColumn and EventColumn name the survival outcome columns.
	// Setting both switches the ladder to the survival sample variant.
	TimeColumn  string
	EventColumn string

	// IDColumns lists the identifier column(s). Defaults to ["id"].
	IDColumns []string

	// PrevPredictions is the caller-held reference submission, nil on
	// the first-ever call.
	PrevPredictions *frame.Frame

	// Metric is the score function with its default orientation.
	Metric score.Metric
	// LargerIsBetter overrides the metric's orientation when non-nil.
	LargerIsBetter *bool

	// BootstrapN is the draw count for the advance-or-hold comparison.
	BootstrapN int
	// ReportBootstrapN is the draw count averaged into the reported score.
	ReportBootstrapN int
	// BayesThreshold is the posterior-odds cutoff for advancing.
	BayesThreshold float64

	// Parallelism bounds concurrent draw evaluation. Defaults to NumCPU.
	Parallelism int

	// Seed fixes the random base seed for reproducible runs.
	Seed *int64

	// Verbose enables debug diagnostics. No effect on the decision.
	Verbose bool
}

// Report is the outcome of one ladder evaluation.
type Report struct {
	// Score is the publicly reported score.
	Score float64
	// BayesFactor is the estimated posterior odds that the submission
	// beats the reference. Nil on the first-ever call.
	BayesFactor *float64
	// MetBayesCutoff reports whether the evidence cleared the threshold.
	// Vacuously true on the first-ever call.
	MetBayesCutoff bool
	// Decision is Advance or Hold.
	Decision Decision
	// ReferencePredictions is the submission to pass as PrevPredictions
	// on the next call.
	ReferencePredictions *frame.Frame
}

// BootLadderBoot evaluates one submission event and returns the scoring
// report. Parameter problems fail with ErrInvalidParameters before any
// sampling work; an empty paired sample on either side fails with
// pair.ErrInvalidSubmission; a score function failure on any draw aborts
// the whole call.
func BootLadderBoot(ctx context.Context, cfg Config) (*Report, error) {
	cfg = withDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := checkStructure(cfg); err != nil {
		metrics.RecordValidationError()
		return nil, err
	}

	cols := pair.Columns{
		ID:         cfg.IDColumns,
		Prediction: cfg.PredictionColumn,
		Gold:       cfg.GoldStandardColumn,
		Time:       cfg.TimeColumn,
		Event:      cfg.EventColumn,
	}

	current, err := buildSample(cfg.Predictions, cfg.GoldStandard, cols)
	if err != nil {
		metrics.RecordInvalidSubmission()
		return nil, fmt.Errorf("submission: %w", err)
	}

	baseSeed := rand.Int63() //nolint:gosec // statistical sampling, not crypto
	if cfg.Seed != nil {
		baseSeed = *cfg.Seed
	}

	larger := cfg.Metric.LargerIsBetter
	if cfg.LargerIsBetter != nil {
		larger = *cfg.LargerIsBetter
	}

	report := &Report{
		Decision:             Advance,
		MetBayesCutoff:       true, // vacuous when no reference exists
		ReferencePredictions: cfg.Predictions,
	}
	reportSample := current

	if cfg.PrevPredictions != nil {
		prev, err := buildSample(cfg.PrevPredictions, cfg.GoldStandard, cols)
		if err != nil {
			metrics.RecordInvalidSubmission()
			return nil, fmt.Errorf("reference submission: %w", err)
		}

		est, err := compareDistributions(ctx, cfg, current, prev, baseSeed, larger)
		if err != nil {
			return nil, err
		}

		bf := est.Factor
		report.BayesFactor = &bf
		report.MetBayesCutoff = est.MeetsCutoff(cfg.BayesThreshold)
		metrics.RecordBayesFactor(bf)

		if !report.MetBayesCutoff {
			report.Decision = Hold
			report.ReferencePredictions = cfg.PrevPredictions
			reportSample = prev
		}

		if cfg.Verbose {
			logger.Named("ladder").Debug(ctx, "bayes comparison complete",
				logger.Float64("bayes_factor", bf),
				logger.Float64("win_rate", est.WinRate),
				logger.Bool("met_cutoff", report.MetBayesCutoff),
			)
		}
	}

	reporter := bootstrap.New(
		bootstrap.WithSeed(baseSeed+2*seedStride),
		bootstrap.WithParallelism(cfg.Parallelism),
	)
	dist, err := reporter.Distribution(ctx, reportSample, cfg.Metric.Score, cfg.ReportBootstrapN)
	if err != nil {
		metrics.RecordScoringError()
		return nil, fmt.Errorf("reporting distribution: %w", err)
	}
	report.Score = bootstrap.Mean(dist)

	metrics.RecordEvaluation()
	metrics.RecordDecision(string(report.Decision))
	metrics.RecordReportedScore(report.Score)

	if cfg.Verbose {
		logger.Named("ladder").Debug(ctx, "evaluation complete",
			logger.String("decision", string(report.Decision)),
			logger.Float64("score", report.Score),
		)
	}

	return report, nil
}

// compareDistributions draws the current and reference distributions and
// estimates the posterior odds that current is better.
func compareDistributions(ctx context.Context, cfg Config, current, prev *pair.Sample, baseSeed int64, larger bool) (bayes.Estimate, error) {
	currentSampler := bootstrap.New(
		bootstrap.WithSeed(baseSeed),
		bootstrap.WithParallelism(cfg.Parallelism),
	)
	currentDist, err := currentSampler.Distribution(ctx, current, cfg.Metric.Score, cfg.BootstrapN)
	if err != nil {
		metrics.RecordScoringError()
		return bayes.Estimate{}, fmt.Errorf("submission distribution: %w", err)
	}

	prevSampler := bootstrap.New(
		bootstrap.WithSeed(baseSeed+seedStride),
		bootstrap.WithParallelism(cfg.Parallelism),
	)
	prevDist, err := prevSampler.Distribution(ctx, prev, cfg.Metric.Score, cfg.BootstrapN)
	if err != nil {
		metrics.RecordScoringError()
		return bayes.Estimate{}, fmt.Errorf("reference distribution: %w", err)
	}

	return bayes.Compare(currentDist, prevDist, larger)
}

// buildSample picks the sample variant from the configured columns.
func buildSample(sub, gold *frame.Frame, cols pair.Columns) (*pair.Sample, error) {
	if cols.Time != "" && cols.Event != "" {
		return pair.BuildSurvival(sub, gold, cols)
	}
	return pair.Build(sub, gold, cols)
}

// checkStructure rejects submissions with structural defects the pair
// builder depends on. Missing or non-finite prediction values are not an
// error here; the builder drops those rows.
func checkStructure(cfg Config) error {
	for _, f := range []*frame.Frame{cfg.Predictions, cfg.PrevPredictions} {
		if f == nil {
			continue
		}
		for _, p := range frame.Check(f, cfg.IDColumns, cfg.PredictionColumn) {
			if p.Kind == frame.ProblemBadPredictions {
				continue
			}
			return fmt.Errorf("%w: %s", frame.ErrValidation, p.String())
		}
	}
	return nil
}

// withDefaults fills unset config fields.
func withDefaults(cfg Config) Config {
	if cfg.BootstrapN == 0 {
		cfg.BootstrapN = DefaultBootstrapN
	}
	if cfg.ReportBootstrapN == 0 {
		cfg.ReportBootstrapN = DefaultReportBootstrapN
	}
	if cfg.BayesThreshold == 0 {
		cfg.BayesThreshold = DefaultBayesThreshold
	}
	if cfg.PredictionColumn == "" {
		cfg.PredictionColumn = DefaultPredictionColumn
	}
	if len(cfg.IDColumns) == 0 {
		cfg.IDColumns = []string{"id"}
	}
	return cfg
}

// validate rejects malformed configuration before any sampling work.
func validate(cfg Config) error {
	if cfg.Predictions == nil || cfg.GoldStandard == nil {
		return fmt.Errorf("%w: predictions and gold standard are required", ErrInvalidParameters)
	}
	if cfg.Metric.Score == nil {
		return fmt.Errorf("%w: a score function is required", ErrInvalidParameters)
	}
	if cfg.BootstrapN < 1 {
		return fmt.Errorf("%w: bootstrapN %d", ErrInvalidParameters, cfg.BootstrapN)
	}
	if cfg.ReportBootstrapN < 1 {
		return fmt.Errorf("%w: reportBootstrapN %d", ErrInvalidParameters, cfg.ReportBootstrapN)
	}
	if cfg.BayesThreshold <= 0 {
		return fmt.Errorf("%w: bayesThreshold %v", ErrInvalidParameters, cfg.BayesThreshold)
	}
	survival := cfg.TimeColumn != "" && cfg.EventColumn != ""
	if !survival && cfg.GoldStandardColumn == "" {
		return fmt.Errorf("%w: a gold standard column is required", ErrInvalidParameters)
	}
	return nil
}
