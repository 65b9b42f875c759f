package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tapeworks/npuref/internal/config"
	"github.com/tapeworks/npuref/internal/logger"
	"github.com/tapeworks/npuref/internal/monitoring"
	"github.com/tapeworks/npuref/internal/suite"
)

var (
	outDir      = flag.String("out", ".", "Directory to write hex artifacts into")
	emitArrow   = flag.Bool("arrow", false, "Also write an Arrow IPC sidecar per case")
	metricsAddr = flag.String("metrics", "", "Address to serve monitoring endpoints (empty disables)")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console or json)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	cfg.OutDir = *outDir
	cfg.EmitArrow = *emitArrow
	cfg.MetricsAddr = *metricsAddr
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	if err := cfg.Validate(); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	mon := monitoring.NewServer()
	if cfg.MetricsEnabled() {
		go func() {
			if err := mon.Start(cfg.MetricsAddr); err != nil {
				logger.Log.Error("monitoring server error", "error", err)
			}
		}()
	}

	runner := suite.New(cfg.OutDir, cfg.EmitArrow)
	report, err := runner.Run()
	if err != nil {
		logger.Log.Fatal("suite failed", "error", err)
	}
	mon.SetSuiteResult(len(runner.Cases()), report.Total, report.Failed())

	if !report.AllPassed() {
		logger.Log.Error("golden checks failed",
			"failed", report.Failed(), "total", report.Total)
		os.Exit(1)
	}
	logger.Log.Info("all golden checks passed", "total", report.Total, "out", cfg.OutDir)
}
