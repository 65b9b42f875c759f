package suite

import (
	"time"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/metrics"
	"github.com/tapeworks/npuref/internal/npu"
	"github.com/tapeworks/npuref/internal/testvec"
)

// Large tiled case shape and seeds: 8 output tiles by 16 input tiles.
const (
	largeInputDim   = 128
	largeOutputDim  = 256
	largeInputSeed  = 700
	largeWeightSeed = 800
)

// runTiling checks tiled accumulation against the direct path and
// generates the large multi-tile case.
func (r *Runner) runTiling() error {
	if err := r.runTiledAccumulation(); err != nil {
		return err
	}
	return r.runLargeMatrix()
}

// runTiledAccumulation walks a 32x32 all-ones problem, which needs four
// input tiles, and compares every partial-sum path against the direct
// computation. No artifacts; this case only guards the accumulation
// order.
func (r *Runner) runTiledAccumulation() error {
	start := time.Now()

	const (
		inputDim  = 32
		outputDim = 32
	)

	input := make([]int8, inputDim)
	weights := make([]int8, outputDim*inputDim)
	tiled := make([]int32, outputDim)
	direct := make([]int32, outputDim)
	testvec.Fill(input, 1)
	testvec.Fill(weights, 1)

	timedGemvTiled(input, weights, tiled)
	npu.GemvDirect(input, weights, nil, direct)

	match := true
	for o := range tiled {
		if tiled[o] != direct[o] {
			r.log.Error("tiled mismatch", "row", o, "tiled", tiled[o], "direct", direct[o])
			match = false
		}
	}
	r.check(match, "tiled matches direct computation")
	r.check(tiled[0] == inputDim, "output = sum of 32 ones = 32")

	metrics.RecordCase("tiling", time.Since(start))
	return nil
}

func (r *Runner) runLargeMatrix() error {
	start := time.Now()

	input := make([]int8, largeInputDim)
	weights := make([]int8, largeOutputDim*largeInputDim)
	output := make([]int32, largeOutputDim)
	testvec.RandomInt8(input, largeInputSeed)
	testvec.RandomInt8(weights, largeWeightSeed)

	timedGemvTiled(input, weights, output)

	direct := make([]int32, largeOutputDim)
	npu.GemvDirect(input, weights, nil, direct)
	match := true
	for o := range output {
		if output[o] != direct[o] {
			match = false
		}
	}
	r.check(match, "large tiled gemv matches direct")

	r.log.Debug("large tiling",
		"tile_ops", ((largeOutputDim+npu.SubarrayRows-1)/npu.SubarrayRows)*
			((largeInputDim+npu.SubarrayCols-1)/npu.SubarrayCols),
	)

	if err := r.dumpInt8("test_large_input.hex", input); err != nil {
		return err
	}
	if err := r.dumpInt8("test_large_weight.hex", weights); err != nil {
		return err
	}
	if err := r.dumpInt32("test_large_output.hex", output); err != nil {
		return err
	}

	min, max, mean := testvec.Stats(output)
	metrics.RecordOutputRange(min, max)
	r.log.Debug("case generated", "case", "test_large", "min", min, "max", max, "mean", mean)

	if err := r.addCase(&arrowio.Case{
		Name:      "test_large",
		Group:     "tiling",
		InputDim:  largeInputDim,
		OutputDim: largeOutputDim,
		Input:     input,
		Weights:   weights,
		Output:    output,
	}); err != nil {
		return err
	}

	metrics.RecordCase("tiling", time.Since(start))
	return nil
}

// runBoundary generates the cases that poke single rows and columns of
// the sub-array.
func (r *Runner) runBoundary() error {
	const (
		rows = npu.SubarrayRows
		cols = npu.SubarrayCols
	)

	patterns := []gemvPattern{
		{
			base: "test_single",
			desc: "single element: output[r] = 5 * (r+1)",
			fill: func(l *npu.GemvLayer) {
				l.Input[0] = 5
				testvec.FillColumnRamp(l.Weights, rows, cols, 0)
			},
			expect: func(o int) int32 { return 5 * int32(o+1) },
		},
		{
			base: "test_last",
			desc: "last element: output[r] = 7 * (r+1)",
			fill: func(l *npu.GemvLayer) {
				l.Input[cols-1] = 7
				testvec.FillColumnRamp(l.Weights, rows, cols, cols-1)
			},
			expect: func(o int) int32 { return 7 * int32(o+1) },
		},
		{
			base: "test_firstlast",
			desc: "first/last row: output[0]=80, output[31]=160, others=0",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 1)
				testvec.FillRow(l.Weights, rows, cols, 0, 10)
				testvec.FillRow(l.Weights, rows, cols, rows-1, 20)
			},
			expect: func(o int) int32 {
				switch o {
				case 0:
					return 10 * cols
				case rows - 1:
					return 20 * cols
				default:
					return 0
				}
			},
		},
	}

	for _, p := range patterns {
		if err := r.runPattern("boundary", p); err != nil {
			return err
		}
	}
	return nil
}
