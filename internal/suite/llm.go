package suite

import (
	"slices"
	"time"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/metrics"
	"github.com/tapeworks/npuref/internal/npu"
	"github.com/tapeworks/npuref/internal/testvec"
)

// Seeds of the attention-projection case. One token embedding is shared
// by the Q, K and V projections; each projection has its own weights.
const (
	llmTokenSeed = 100
	llmWqSeed    = 200
	llmWkSeed    = 300
	llmWvSeed    = 400
)

// FFN up-projection shape and seeds. The 64 -> 256 projection spans
// multiple tiles in both directions.
const (
	ffnHiddenDim       = 64
	ffnIntermediateDim = 256
	ffnInputSeed       = 500
	ffnWeightSeed      = 600
)

// runLLM generates the attention and FFN shaped cases.
func (r *Runner) runLLM() error {
	if err := r.runQKV(); err != nil {
		return err
	}
	return r.runFFN()
}

func (r *Runner) runQKV() error {
	start := time.Now()

	token := make([]int8, npu.SubarrayCols)
	testvec.RandomInt8(token, llmTokenSeed)
	if err := r.dumpInt8("test_llm_token.hex", token); err != nil {
		return err
	}

	projections := []struct {
		name string
		seed int64
	}{
		{"q", llmWqSeed},
		{"k", llmWkSeed},
		{"v", llmWvSeed},
	}

	for _, p := range projections {
		layer := npu.NewGemvLayer(npu.SubarrayCols, npu.SubarrayRows)
		copy(layer.Input, token)
		testvec.RandomInt8(layer.Weights, p.seed)
		timedGemv(layer)

		tiled := make([]int32, layer.OutputDim)
		timedGemvTiled(layer.Input, layer.Weights, tiled)
		r.check(slices.Equal(tiled, layer.Output), p.name+" projection: tiled matches direct")

		if err := r.dumpInt8("test_llm_w"+p.name+".hex", layer.Weights); err != nil {
			return err
		}
		if err := r.dumpInt32("test_llm_"+p.name+".hex", layer.Output); err != nil {
			return err
		}

		if err := r.addCase(&arrowio.Case{
			Name:      "test_llm_" + p.name,
			Group:     "llm",
			InputDim:  layer.InputDim,
			OutputDim: layer.OutputDim,
			Input:     layer.Input,
			Weights:   layer.Weights,
			Bias:      layer.Bias,
			Output:    layer.Output,
		}); err != nil {
			return err
		}
	}

	metrics.RecordCase("llm", time.Since(start))
	return nil
}

func (r *Runner) runFFN() error {
	start := time.Now()

	input := make([]int8, ffnHiddenDim)
	weights := make([]int8, ffnIntermediateDim*ffnHiddenDim)
	output := make([]int32, ffnIntermediateDim)
	testvec.RandomInt8(input, ffnInputSeed)
	testvec.RandomInt8(weights, ffnWeightSeed)

	timedGemvTiled(input, weights, output)

	direct := make([]int32, ffnIntermediateDim)
	npu.GemvDirect(input, weights, nil, direct)
	r.check(slices.Equal(output, direct), "ffn up projection: tiled matches direct")

	r.log.Debug("ffn tiling",
		"input_dim", ffnHiddenDim,
		"output_dim", ffnIntermediateDim,
		"output_tiles", (ffnIntermediateDim+npu.SubarrayRows-1)/npu.SubarrayRows,
		"input_tiles", (ffnHiddenDim+npu.SubarrayCols-1)/npu.SubarrayCols,
	)

	if err := r.dumpInt8("test_ffn_input.hex", input); err != nil {
		return err
	}
	if err := r.dumpInt8("test_ffn_weight.hex", weights); err != nil {
		return err
	}
	if err := r.dumpInt32("test_ffn_output.hex", output); err != nil {
		return err
	}

	if err := r.addCase(&arrowio.Case{
		Name:      "test_ffn",
		Group:     "llm",
		InputDim:  ffnHiddenDim,
		OutputDim: ffnIntermediateDim,
		Input:     input,
		Weights:   weights,
		Output:    output,
	}); err != nil {
		return err
	}

	metrics.RecordCase("llm", time.Since(start))
	return nil
}
