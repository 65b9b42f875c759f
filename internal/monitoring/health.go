// Package monitoring serves the operational endpoints of the golden-model
// tools: liveness, Prometheus metrics and a JSON status snapshot.
package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tapeworks/npuref/internal/logger"
	"github.com/tapeworks/npuref/internal/npu"
)

// Status is the document served by /status.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`

	System SystemInfo `json:"system"`
	Golden GoldenInfo `json:"golden"`
}

// SystemInfo contains process-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	NumCPU       int    `json:"num_cpu"`
	MemoryUsedMB int    `json:"memory_used_mb"`
}

// GoldenInfo contains the modeled geometry and the state of the last
// suite run behind this process.
type GoldenInfo struct {
	SubarrayRows int `json:"subarray_rows"`
	SubarrayCols int `json:"subarray_cols"`
	TotalMACs    int `json:"total_macs"`

	Cases        int `json:"cases"`
	ChecksTotal  int `json:"checks_total"`
	ChecksFailed int `json:"checks_failed"`
}

// Server exposes the monitoring endpoints for one process.
type Server struct {
	startTime time.Time

	mu     sync.RWMutex
	cases  int
	checks int
	failed int

	srv *http.Server
	log *logger.Logger
}

// NewServer returns a monitoring server with no suite result recorded.
func NewServer() *Server {
	return &Server{
		startTime: time.Now(),
		log:       logger.Log.WithComponent("monitoring"),
	}
}

// SetSuiteResult records the outcome of a suite run. A non-zero failure
// count turns the health verdict unhealthy.
func (s *Server) SetSuiteResult(cases, checksTotal, checksFailed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases = cases
	s.checks = checksTotal
	s.failed = checksFailed
}

// Handler returns the endpoint mux: /health and /healthz for liveness,
// /metrics for Prometheus, /status for the JSON snapshot.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/status", s.handleStatus)
	return mux
}

// Start serves the endpoints on addr and blocks until Stop is called.
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.log.Info("monitoring endpoints up", "addr", addr)
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the endpoints down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

func (s *Server) verdict() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failed > 0 {
		return "unhealthy"
	}
	return "healthy"
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.verdict()
	w.Header().Set("Content-Type", "application/json")
	if status == "healthy" {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]string{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	s.mu.RLock()
	golden := GoldenInfo{
		SubarrayRows: npu.SubarrayRows,
		SubarrayCols: npu.SubarrayCols,
		TotalMACs:    npu.TotalMACs,
		Cases:        s.cases,
		ChecksTotal:  s.checks,
		ChecksFailed: s.failed,
	}
	s.mu.RUnlock()

	status := Status{
		Status:    s.verdict(),
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		System: SystemInfo{
			GoVersion:    runtime.Version(),
			OS:           runtime.GOOS,
			Arch:         runtime.GOARCH,
			NumCPU:       runtime.NumCPU(),
			MemoryUsedMB: int(m.Alloc / 1024 / 1024),
		},
		Golden: golden,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
