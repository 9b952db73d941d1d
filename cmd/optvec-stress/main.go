package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"
)

func main() {
	duration := flag.Duration("duration", 5*time.Second, "The total duration the test should run for.")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random workload.")
	prefill := flag.Int("prefill", 10000, "The number of values pushed before the run starts.")
	configPath := flag.String("config", "", "Optional YAML workload file.")
	format := flag.String("format", "text", "Report format: text, json or yaml.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	logJSON := flag.Bool("log-json", false, "Emit logs as JSON.")
	flag.Parse()

	logger, err := newLogger(os.Stderr, *logLevel, *logJSON)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	workload := DefaultWorkload()
	if *configPath != "" {
		workload, err = LoadWorkload(*configPath)
		if err != nil {
			logger.Error("invalid workload", "path", *configPath, "error", err)
			os.Exit(2)
		}
	}
	if *prefill < 0 {
		logger.Error("prefill must not be negative", "prefill", *prefill)
		os.Exit(2)
	}

	logger.Info("starting optvec stress test",
		"duration", *duration,
		"seed", *seed,
		"prefill", *prefill,
	)

	report := &Report{
		Duration: *duration,
		Seed:     *seed,
		Prefill:  *prefill,
		Workload: workload,
	}

	rn := newRunner(workload, *seed, *prefill, logger)

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	runErr := rn.run(ctx)
	report.TotalTime = time.Since(startTime)

	runtime.ReadMemStats(&report.MemStatsEnd)
	report.Finalize(rn)

	if runErr != nil {
		logger.Error("stress test failed", "error", runErr, "ops", report.TotalOps)
		os.Exit(1)
	}
	logger.Info("simulation finished", "ops", report.TotalOps, "verifies", report.Verifies)

	if err := report.Generate(os.Stdout, *format); err != nil {
		logger.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
}
