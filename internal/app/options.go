package app

import (
	"github.com/vpchung/challengescoring/internal/domain/frame"
	"github.com/vpchung/challengescoring/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithGoldStandard sets the challenge gold standard frame.
func WithGoldStandard(gold *frame.Frame) Option {
	return func(s *Service) {
		s.goldStandard = gold
	}
}

// WithGoldStandardColumn names the true-value column for scalar metrics.
func WithGoldStandardColumn(name string) Option {
	return func(s *Service) {
		s.goldStandardColumn = name
	}
}

// WithSurvivalColumns names the time and event columns. Setting both
// switches evaluation to the survival sample variant.
func WithSurvivalColumns(timeColumn, eventColumn string) Option {
	return func(s *Service) {
		s.timeColumn = timeColumn
		s.eventColumn = eventColumn
	}
}

// WithIDColumns sets the identifier column(s) used to match submission
// rows against the gold standard.
func WithIDColumns(cols ...string) Option {
	return func(s *Service) {
		s.idColumns = cols
	}
}

// WithPredictionColumn names the predicted-value column.
func WithPredictionColumn(name string) Option {
	return func(s *Service) {
		s.predictionColumn = name
	}
}

// WithMetric selects the registered score metric by name.
func WithMetric(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.metricName = name
		}
	}
}

// WithBootstrapN sets the draw count for the advance-or-hold comparison.
func WithBootstrapN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bootstrapN = n
		}
	}
}

// WithReportBootstrapN sets the draw count averaged into reported scores.
func WithReportBootstrapN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.reportBootstrapN = n
		}
	}
}

// WithBayesThreshold sets the posterior-odds cutoff for advancing.
func WithBayesThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.bayesThreshold = threshold
		}
	}
}

// WithParallelism bounds concurrent bootstrap draw evaluation.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
