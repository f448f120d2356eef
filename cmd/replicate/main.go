package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farxc/fastfood_minwage/internal/app"
	"github.com/farxc/fastfood_minwage/internal/logger"
)

func main() {
	const component = "Main"
	appLogger := app.Bootstrap()
	cfg := app.ConfigFromEnv()

	tablesPtr := flag.String("tables", "all", "Comma-separated table numbers (2,3,4,5,6,7,9,10) or all")
	dataPtr := flag.String("data", "", "Path to the survey extract; searched for when empty")
	formatPtr := flag.String("format", cfg.Format, "Extract format: whitespace, fixed, csv")
	outPtr := flag.String("out", cfg.OutputDir, "Directory for the markdown tables")
	derivedPtr := flag.String("derived", "", "Optional CSV file for the derived dataset")
	checkPtr := flag.String("check", "", "Optional markdown file for the data-check report")
	logLevelPtr := flag.String("loglevel", cfg.LogLevel, "Log level: debug, info, warn, error")
	workersPtr := flag.Int("workers", cfg.Workers, "Tables built concurrently")
	flag.Parse()

	appLogger.SetLogLevel(logger.ParseLevel(*logLevelPtr))

	monitor := NewMonitor()
	monitor.Start(200*time.Millisecond, appLogger)

	startTime := time.Now()
	appLogger.Info(component, "Replication starting: tables=%s out=%s workers=%d logLevel=%s", *tablesPtr, *outPtr, *workersPtr, *logLevelPtr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.DataPath = *dataPtr
	cfg.Format = *formatPtr
	cfg.OutputDir = *outPtr
	cfg.LogLevel = *logLevelPtr
	cfg.Workers = *workersPtr

	results, err := app.RunBatch(ctx, app.Batch{Config: cfg, Tables: *tablesPtr, Derived: *derivedPtr, Check: *checkPtr}, appLogger)
	peaks := monitor.Stop()
	appLogger.Info(component, "Resource usage: peakGoroutines=%d peakMemoryMB=%d samples=%d", peaks.PeakGoroutines, peaks.PeakMemoryMB, peaks.Samples)

	if err != nil {
		stop()
		appLogger.Fatal(component, "Replication failed: error=%v", err)
		return
	}

	for _, res := range results {
		appLogger.Debug(component, "Table done: table=%d path=%s duration=%s", res.Job.Entry.Number, res.Job.Path, res.Duration)
	}
	appLogger.Info(component, "Replication completed successfully: tables=%d duration=%.2f seconds", len(results), time.Since(startTime).Seconds())
}
