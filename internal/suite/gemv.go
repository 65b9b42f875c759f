package suite

import (
	"fmt"
	"slices"
	"time"

	"github.com/tapeworks/npuref/internal/metrics"
	"github.com/tapeworks/npuref/internal/npu"
	"github.com/tapeworks/npuref/internal/testvec"
)

// gemvPattern is one formula-checked sub-array case: fill prepares the
// layer, expect gives the golden value for each output row.
type gemvPattern struct {
	base   string
	desc   string
	fill   func(l *npu.GemvLayer)
	expect func(o int) int32
}

func gemvPatterns() []gemvPattern {
	const (
		rows = npu.SubarrayRows
		cols = npu.SubarrayCols
	)
	return []gemvPattern{
		{
			base: "test_identity",
			desc: "identity pattern: output[r] = input[r % 8]",
			fill: func(l *npu.GemvLayer) {
				testvec.Ramp(l.Input)
				testvec.FillIdentity(l.Weights, rows, cols)
			},
			expect: func(o int) int32 { return int32(o%cols) + 1 },
		},
		{
			base: "test_allones",
			desc: "all ones: output[r] = 8",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 1)
				testvec.Fill(l.Weights, 1)
			},
			expect: func(o int) int32 { return cols },
		},
		{
			base: "test_scaled",
			desc: "scaled rows: output[r] = (r+1) * 8",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 1)
				testvec.FillRowScaled(l.Weights, rows, cols)
			},
			expect: func(o int) int32 { return int32(o+1) * cols },
		},
		{
			base: "test_alternating",
			desc: "alternating input: output[r] = 0",
			fill: func(l *npu.GemvLayer) {
				testvec.FillAlternating(l.Input, 1, -1)
				testvec.Fill(l.Weights, 1)
			},
			expect: func(o int) int32 { return 0 },
		},
		{
			base: "test_maxval",
			desc: "max values: output[r] = 127 * 127 * 8",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 127)
				testvec.Fill(l.Weights, 127)
			},
			expect: func(o int) int32 { return 127 * 127 * cols },
		},
		{
			base: "test_minval",
			desc: "min values: output[r] = (-128) * (-128) * 8",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, -128)
				testvec.Fill(l.Weights, -128)
			},
			expect: func(o int) int32 { return 128 * 128 * cols },
		},
		{
			base: "test_mixed",
			desc: "mixed signs: output[r] = 127 * (-128) * 8",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 127)
				testvec.Fill(l.Weights, -128)
			},
			expect: func(o int) int32 { return 127 * -128 * cols },
		},
		{
			base: "test_sparse",
			desc: "sparse: output[r] = (r+1) * ((r%8)+1)",
			fill: func(l *npu.GemvLayer) {
				testvec.Ramp(l.Input)
				testvec.FillSparseDiagonal(l.Weights, rows, cols)
			},
			expect: func(o int) int32 { return int32(o+1) * (int32(o%cols) + 1) },
		},
		{
			base: "test_bias",
			desc: "with bias: output[r] = 8 + r*10",
			fill: func(l *npu.GemvLayer) {
				testvec.Fill(l.Input, 1)
				testvec.Fill(l.Weights, 1)
				testvec.BiasRamp(l.Bias, 10)
			},
			expect: func(o int) int32 { return cols + int32(o)*10 },
		},
	}
}

// runPattern executes one formula-checked case end to end.
func (r *Runner) runPattern(group string, p gemvPattern) error {
	start := time.Now()

	layer := npu.NewGemvLayer(npu.SubarrayCols, npu.SubarrayRows)
	p.fill(layer)
	timedGemv(layer)

	pass := true
	for o := range layer.Output {
		if layer.Output[o] != p.expect(o) {
			pass = false
		}
	}
	r.check(pass, p.desc)

	if err := r.emitGemvCase(group, p.base, layer); err != nil {
		return err
	}
	metrics.RecordCase(group, time.Since(start))
	return nil
}

func (r *Runner) runGemvPatterns() error {
	for _, p := range gemvPatterns() {
		if err := r.runPattern("gemv", p); err != nil {
			return err
		}
	}
	return nil
}

// randomSeeds are the fixed seeds of the randomized sub-array cases.
var randomSeeds = []int64{1, 42, 123, 9999}

// runRandom generates the randomized cases. Weights use seed+1000 so
// input and weight streams never coincide, and the tiled path is checked
// against the direct one.
func (r *Runner) runRandom() error {
	for _, seed := range randomSeeds {
		start := time.Now()

		layer := npu.NewGemvLayer(npu.SubarrayCols, npu.SubarrayRows)
		testvec.RandomInt8(layer.Input, seed)
		testvec.RandomInt8(layer.Weights, seed+1000)
		timedGemv(layer)

		tiled := make([]int32, layer.OutputDim)
		timedGemvTiled(layer.Input, layer.Weights, tiled)
		r.check(slices.Equal(tiled, layer.Output),
			fmt.Sprintf("random seed %d: tiled matches direct", seed))

		base := fmt.Sprintf("test_random%d", seed)
		if err := r.emitGemvCase("random", base, layer); err != nil {
			return err
		}
		metrics.RecordCase("random", time.Since(start))
	}
	return nil
}
