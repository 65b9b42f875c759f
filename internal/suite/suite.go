// Package suite generates the golden verification suite: every case
// computes expected outputs with the npu golden model, checks them
// against closed-form expectations where one exists, and writes the
// hex artifacts consumed by the RTL testbenches via $readmemh.
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/hexio"
	"github.com/tapeworks/npuref/internal/logger"
	"github.com/tapeworks/npuref/internal/metrics"
	"github.com/tapeworks/npuref/internal/npu"
	"github.com/tapeworks/npuref/internal/testvec"
)

// Report tallies golden checks across a run.
type Report struct {
	Total  int
	Passed int
}

// Failed returns the number of failed checks.
func (r *Report) Failed() int {
	return r.Total - r.Passed
}

// AllPassed reports whether every check passed.
func (r *Report) AllPassed() bool {
	return r.Passed == r.Total
}

// Runner generates the full suite into an output directory and collects
// every file-backed case for Arrow sidecars and Flight serving.
type Runner struct {
	outDir    string
	emitArrow bool

	log    *logger.Logger
	report Report
	cases  []*arrowio.Case
}

// New returns a runner that writes artifacts into outDir. With emitArrow
// set, each case additionally gets an Arrow IPC sidecar next to its hex
// files.
func New(outDir string, emitArrow bool) *Runner {
	return &Runner{
		outDir:    outDir,
		emitArrow: emitArrow,
		log:       logger.Log.WithComponent("suite"),
	}
}

// Cases returns the collected cases in generation order. Valid after Run.
func (r *Runner) Cases() []*arrowio.Case {
	return r.cases
}

// Run generates every case group in catalog order and returns the check
// report. Artifact write failures abort the run.
func (r *Runner) Run() (*Report, error) {
	r.log.Info("npu golden suite starting",
		"subarray_rows", npu.SubarrayRows,
		"subarray_cols", npu.SubarrayCols,
		"pe_array_rows", npu.PEArrayRows,
		"pe_array_cols", npu.PEArrayCols,
		"large_arrays", npu.NumLargeArrays,
		"total_macs", npu.TotalMACs,
	)

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", r.outDir, err)
	}

	r.runMacChecks()
	if err := r.runMacStream(); err != nil {
		return nil, err
	}
	if err := r.runGemvPatterns(); err != nil {
		return nil, err
	}
	if err := r.runRandom(); err != nil {
		return nil, err
	}
	if err := r.runLLM(); err != nil {
		return nil, err
	}
	if err := r.runTiling(); err != nil {
		return nil, err
	}
	if err := r.runBoundary(); err != nil {
		return nil, err
	}

	r.log.Info("suite complete",
		"checks", r.report.Total,
		"passed", r.report.Passed,
		"failed", r.report.Failed(),
		"cases", len(r.cases),
	)
	return &r.report, nil
}

// check records one golden check result.
func (r *Runner) check(passed bool, name string) {
	r.report.Total++
	metrics.RecordCheck(passed)
	if passed {
		r.report.Passed++
		r.log.Debug("check passed", "check", name)
	} else {
		r.log.Error("check failed", "check", name)
	}
}

func (r *Runner) dumpInt8(name string, data []int8) error {
	if err := hexio.WriteInt8File(filepath.Join(r.outDir, name), data); err != nil {
		return err
	}
	metrics.RecordHexDump(8, len(data))
	r.log.Debug("hex file written", "file", name, "values", len(data))
	return nil
}

func (r *Runner) dumpInt32(name string, data []int32) error {
	if err := hexio.WriteInt32File(filepath.Join(r.outDir, name), data); err != nil {
		return err
	}
	metrics.RecordHexDump(32, len(data))
	r.log.Debug("hex file written", "file", name, "values", len(data))
	return nil
}

// addCase collects a finished case and writes its Arrow sidecar when
// enabled.
func (r *Runner) addCase(c *arrowio.Case) error {
	r.cases = append(r.cases, c)
	if !r.emitArrow {
		return nil
	}
	return arrowio.WriteFile(filepath.Join(r.outDir, c.Name+".arrow"), []*arrowio.Case{c})
}

// emitGemvCase writes the input/weight/output hex triple for a finished
// layer and collects the case.
func (r *Runner) emitGemvCase(group, base string, layer *npu.GemvLayer) error {
	if err := r.dumpInt8(base+"_input.hex", layer.Input); err != nil {
		return err
	}
	if err := r.dumpInt8(base+"_weight.hex", layer.Weights); err != nil {
		return err
	}
	if err := r.dumpInt32(base+"_output.hex", layer.Output); err != nil {
		return err
	}

	min, max, mean := testvec.Stats(layer.Output)
	metrics.RecordOutputRange(min, max)
	r.log.Debug("case generated", "case", base, "min", min, "max", max, "mean", mean)

	return r.addCase(&arrowio.Case{
		Name:      base,
		Group:     group,
		InputDim:  layer.InputDim,
		OutputDim: layer.OutputDim,
		Input:     layer.Input,
		Weights:   layer.Weights,
		Bias:      layer.Bias,
		Output:    layer.Output,
	})
}

// timedGemv runs the direct GEMV on the layer and records the kernel
// duration.
func timedGemv(l *npu.GemvLayer) {
	start := time.Now()
	l.Forward()
	metrics.RecordKernel("gemv_direct", time.Since(start))
}

// timedGemvTiled runs the tiled GEMV and records the kernel duration.
func timedGemvTiled(input, weights []int8, output []int32) {
	start := time.Now()
	npu.GemvTiled(input, weights, output)
	metrics.RecordKernel("gemv_tiled", time.Since(start))
}
