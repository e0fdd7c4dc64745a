package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vpchung/challengescoring/internal/app"
	"github.com/vpchung/challengescoring/internal/config"
	"github.com/vpchung/challengescoring/internal/domain/frame"
	"github.com/vpchung/challengescoring/internal/domain/model"
	"github.com/vpchung/challengescoring/pkg/logger"
	"github.com/vpchung/challengescoring/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second

	demoParticipants = 5
	demoRounds       = 4
	demoGoldSize     = 200
	demoRoundPause   = 2 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	gold := syntheticGoldStandard(demoGoldSize)

	svc := app.New(
		app.WithLogger(log),
		app.WithGoldStandard(gold),
		app.WithGoldStandardColumn("truth"),
		app.WithMetric(cfg.Metric),
		app.WithBootstrapN(cfg.BootstrapN),
		app.WithReportBootstrapN(cfg.ReportBootstrapN),
		app.WithBayesThreshold(cfg.BayesThreshold),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.SubmissionQueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Metrics and health endpoints.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Drive a few synthetic submission rounds so the pipeline has work.
	go runDemoRounds(ctx, svc, gold)

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// syntheticGoldStandard builds a gold standard with n rows of uniform
// truth values.
func syntheticGoldStandard(n int) *frame.Frame {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ids := make([]string, n)
	truth := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = fmt.Sprintf("case-%03d", i)
		truth[i] = rng.Float64() * 100
	}
	return frame.MustNew(
		frame.StringColumn("id", ids...),
		frame.FloatColumn("truth", truth...),
	)
}

// runDemoRounds submits noisy predictions for a handful of participants
// over several rounds. Noise shrinks each round so later submissions
// genuinely improve and the ladder has advances to gate.
func runDemoRounds(ctx context.Context, svc *app.Service, gold *frame.Frame) {
	log := logger.Named("demo")

	ids, ok := gold.Strings("id")
	if !ok {
		log.Error(ctx, "gold standard is missing the id column")
		return
	}
	truth, ok := gold.Floats("truth")
	if !ok {
		log.Error(ctx, "gold standard is missing the truth column")
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for round := 1; round <= demoRounds; round++ {
		for p := 0; p < demoParticipants; p++ {
			participant := fmt.Sprintf("team-%02d", p)

			// Participants differ in skill; every round tightens noise.
			noise := float64(p+1) * 20 / float64(round)
			preds := make([]float64, len(truth))
			for i, v := range truth {
				preds[i] = v + rng.NormFloat64()*noise
			}

			sub := model.NewSubmission(participant, frame.MustNew(
				frame.StringColumn("id", ids...),
				frame.FloatColumn("prediction", preds...),
			))
			if !svc.Submit(ctx, sub) {
				log.Warn(ctx, "submission rejected",
					logger.String("participantID", participant),
					logger.Int("round", round),
				)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(demoRoundPause):
		}

		logStandings(ctx, svc, log, round)
	}
}

func logStandings(ctx context.Context, svc *app.Service, log logger.Logger, round int) {
	top, err := svc.TopN(ctx, demoParticipants)
	if err != nil {
		log.Error(ctx, "reading standings", logger.Error(err))
		return
	}
	for _, e := range top {
		fields := []logger.Field{
			logger.Int("round", round),
			logger.Int("rank", e.Rank),
			logger.String("participantID", e.ParticipantID),
			logger.Float64("score", e.Score),
			logger.Bool("advanced", e.Advanced),
		}
		if e.BayesFactor != nil {
			fields = append(fields, logger.Float64("bayesFactor", *e.BayesFactor))
		}
		log.Info(ctx, "standings", fields...)
	}
}
