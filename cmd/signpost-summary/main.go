// signpost-summary reconstructs timed intervals from an os-signpost trace
// export and reports latency statistics per interval name.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/mrzor/signpost-summary/internal/config"
	"github.com/mrzor/signpost-summary/internal/correlator"
	"github.com/mrzor/signpost-summary/internal/eventstream"
	"github.com/mrzor/signpost-summary/internal/filter"
	"github.com/mrzor/signpost-summary/internal/otel"
	"github.com/mrzor/signpost-summary/internal/report"
	"github.com/mrzor/signpost-summary/internal/spanexport"
	"github.com/mrzor/signpost-summary/internal/stats"
	"github.com/mrzor/signpost-summary/internal/symtab"
	"github.com/mrzor/signpost-summary/internal/timesync"
	"github.com/mrzor/signpost-summary/internal/xctrace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, xctrace.ErrInputNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// setupOTEL initializes span export when an OTLP endpoint is configured.
// Returns a nil tracer when export is disabled.
func setupOTEL(ctx context.Context) (trace.Tracer, func(), error) {
	otelCfg, err := config.ParseOTELConfig()
	if err != nil {
		return nil, func() {}, err
	}
	if !otelCfg.Enabled() {
		return nil, func() {}, nil
	}

	tp, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to initialize OTEL provider: %w", err)
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownProvider(shutdownCtx, tp); err != nil {
			log.Printf("Error shutting down OTEL provider: %v", err)
		}
	}
	return tp.Tracer("signpost-summary"), cleanup, nil
}

// buildSink combines the aggregator with optional span export.
func buildSink(agg *stats.Aggregator, emitter *spanexport.Emitter) correlator.Sink {
	return correlator.SinkFunc(func(name string, key correlator.Key, startNS, endNS int64) {
		agg.Add(name, endNS-startNS)
		if emitter != nil {
			emitter.IntervalClosed(name, key, startNS, endNS)
		}
	})
}

func run() error {
	cfg, err := config.ParseArgs(os.Args)
	if err != nil {
		return err
	}

	ctx := context.Background()

	tracer, cleanupOTEL, err := setupOTEL(ctx)
	if err != nil {
		return err
	}
	defer cleanupOTEL()

	source, err := xctrace.Open(cfg.InputPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := source.Close(); err != nil {
			log.Printf("Error closing trace export: %v", err)
		}
	}()

	f, err := filter.New(cfg.Subsystem, cfg.Category, cfg.Where)
	if err != nil {
		return err
	}

	var emitter *spanexport.Emitter
	if tracer != nil {
		emitter = spanexport.New(tracer, timesync.NewConverter(time.Now()), cfg.Subsystem, cfg.Category)
	}

	agg := stats.NewAggregator()

	dupPolicy := correlator.ReplaceSilently
	if cfg.CountDuplicateBegins {
		dupPolicy = correlator.ReplaceAndCount
	}
	negPolicy := correlator.DropSilently
	if cfg.CountNegativeDurations {
		negPolicy = correlator.DropAndCount
	}
	corr := correlator.New(buildSink(agg, emitter), dupPolicy, negPolicy)

	stream := eventstream.New(source, symtab.New(), f, corr)
	if err := stream.Run(ctx); err != nil {
		return err
	}

	report.Render(os.Stdout, report.Summary{
		Subsystem:         cfg.Subsystem,
		Category:          cfg.Category,
		Matched:           corr.Matched(),
		OpenRemaining:     corr.OpenCount(),
		UnmatchedEnds:     corr.UnmatchedEnds(),
		DuplicateBegins:   corr.DuplicateBegins(),
		NegativeDurations: corr.NegativeDurations(),
		Rows:              agg.Rows(),
	}, cfg.Top)

	return nil
}
