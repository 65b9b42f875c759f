package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/config"
	"github.com/tapeworks/npuref/internal/flightvec"
	"github.com/tapeworks/npuref/internal/logger"
	"github.com/tapeworks/npuref/internal/monitoring"
	"github.com/tapeworks/npuref/internal/suite"
)

var (
	listenAddr  = flag.String("listen", "127.0.0.1:8815", "Address to serve Arrow Flight on")
	caseDir     = flag.String("dir", "", "Directory of .arrow case files to serve (empty generates the suite)")
	metricsAddr = flag.String("metrics", "", "Address to serve monitoring endpoints (empty disables)")
	logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat   = flag.String("log-format", "console", "Log format (console or json)")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	cfg.ListenAddr = *listenAddr
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

	srv := flightvec.NewServer()
	if *caseDir != "" {
		if err := loadDir(srv, *caseDir); err != nil {
			logger.Log.Fatal("failed to load cases", "dir", *caseDir, "error", err)
		}
		mon.SetSuiteResult(srv.Len(), 0, 0)
	} else {
		if err := generate(srv, mon); err != nil {
			logger.Log.Fatal("failed to generate cases", "error", err)
		}
	}

	if err := srv.Init(cfg.ListenAddr); err != nil {
		logger.Log.Fatal("failed to listen", "addr", cfg.ListenAddr, "error", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Log.Info("interrupt received, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mon.Stop(ctx)
		srv.Shutdown()
	}()

	if err := srv.Serve(); err != nil {
		logger.Log.Error("server error", "error", err)
	}
}

// loadDir serves cases from Arrow sidecar files written by npugold.
func loadDir(srv *flightvec.Server, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.arrow"))
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .arrow files in %s", dir)
	}
	for _, path := range paths {
		cases, err := arrowio.ReadFile(path)
		if err != nil {
			return err
		}
		for _, c := range cases {
			if err := srv.Add(c); err != nil {
				return err
			}
		}
	}
	logger.Log.Info("cases loaded", "dir", dir, "files", len(paths), "cases", srv.Len())
	return nil
}

// generate runs the golden suite into a scratch directory and serves the
// collected cases.
func generate(srv *flightvec.Server, mon *monitoring.Server) error {
	tmp, err := os.MkdirTemp("", "npuref-suite-")
	if err != nil {
		return err
	}
	logger.Log.Info("generating suite", "dir", tmp)

	runner := suite.New(tmp, false)
	report, err := runner.Run()
	if err != nil {
		return err
	}
	mon.SetSuiteResult(len(runner.Cases()), report.Total, report.Failed())
	if !report.AllPassed() {
		return fmt.Errorf("refusing to serve: %d golden checks failed", report.Failed())
	}
	for _, c := range runner.Cases() {
		if err := srv.Add(c); err != nil {
			return err
		}
	}
	return nil
}
