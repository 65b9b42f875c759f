package npu

import (
	"math/rand"
	"testing"
)

func randInt8(rng *rand.Rand, data []int8) {
	for i := range data {
		data[i] = int8(rng.Intn(256) - 128)
	}
}

func TestGemvDirectIdentityPattern(t *testing.T) {
	// 32 rows of 8 columns, one 1 per row at column o%8. With input 1..8
	// each output picks out a single input element.
	input := make([]int8, 8)
	for i := range input {
		input[i] = int8(i + 1)
	}
	weights := make([]int8, 32*8)
	for o := 0; o < 32; o++ {
		weights[o*8+o%8] = 1
	}
	output := make([]int32, 32)

	GemvDirect(input, weights, nil, output)

	for o, got := range output {
		want := int32(o%8) + 1
		if got != want {
			t.Errorf("output[%d] = %d, want %d", o, got, want)
		}
	}
}

func TestGemvDirectAllOnes(t *testing.T) {
	input := make([]int8, 8)
	weights := make([]int8, 32*8)
	for i := range input {
		input[i] = 1
	}
	for i := range weights {
		weights[i] = 1
	}
	output := make([]int32, 32)

	GemvDirect(input, weights, nil, output)

	for o, got := range output {
		if got != 8 {
			t.Errorf("output[%d] = %d, want 8", o, got)
		}
	}
}

func TestGemvDirectBias(t *testing.T) {
	input := make([]int8, 8)
	weights := make([]int8, 32*8)
	for i := range input {
		input[i] = 1
	}
	for i := range weights {
		weights[i] = 1
	}
	bias := make([]int32, 32)
	for o := range bias {
		bias[o] = int32(o) * 10
	}
	output := make([]int32, 32)

	GemvDirect(input, weights, bias, output)

	for o, got := range output {
		want := 8 + int32(o)*10
		if got != want {
			t.Errorf("output[%d] = %d, want %d", o, got, want)
		}
	}
}

func TestGemvDirectNilBias(t *testing.T) {
	// nil bias and an all-zero bias must agree.
	rng := rand.New(rand.NewSource(7))
	input := make([]int8, 16)
	weights := make([]int8, 24*16)
	randInt8(rng, input)
	randInt8(rng, weights)

	noBias := make([]int32, 24)
	zeroBias := make([]int32, 24)
	GemvDirect(input, weights, nil, noBias)
	GemvDirect(input, weights, make([]int32, 24), zeroBias)

	for o := range noBias {
		if noBias[o] != zeroBias[o] {
			t.Errorf("output[%d]: nil bias %d, zero bias %d", o, noBias[o], zeroBias[o])
		}
	}
}

func TestGemvDirectSaturatedProducts(t *testing.T) {
	tests := []struct {
		name   string
		in     int8
		w      int8
		expect int32
	}{
		{"max times max", 127, 127, 127 * 127 * 8},
		{"min times min", -128, -128, 128 * 128 * 8},
		{"max times min", 127, -128, 127 * -128 * 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]int8, 8)
			weights := make([]int8, 32*8)
			for i := range input {
				input[i] = tt.in
			}
			for i := range weights {
				weights[i] = tt.w
			}
			output := make([]int32, 32)

			GemvDirect(input, weights, nil, output)

			for o, got := range output {
				if got != tt.expect {
					t.Errorf("output[%d] = %d, want %d", o, got, tt.expect)
				}
			}
		})
	}
}

func TestGemvTiledMatchesDirect(t *testing.T) {
	tests := []struct {
		name      string
		inputDim  int
		outputDim int
	}{
		{"single tile", 8, 32},
		{"multiple input tiles", 32, 32},
		{"multiple output tiles", 8, 64},
		{"ragged input dim", 10, 32},
		{"ragged output dim", 8, 33},
		{"ragged both", 13, 50},
		{"smaller than one tile", 3, 5},
		{"single element", 1, 1},
		{"large", 128, 256},
	}

	rng := rand.New(rand.NewSource(42))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := make([]int8, tt.inputDim)
			weights := make([]int8, tt.outputDim*tt.inputDim)
			randInt8(rng, input)
			randInt8(rng, weights)

			direct := make([]int32, tt.outputDim)
			tiled := make([]int32, tt.outputDim)
			GemvDirect(input, weights, nil, direct)
			GemvTiled(input, weights, tiled)

			for o := range direct {
				if tiled[o] != direct[o] {
					t.Errorf("output[%d]: tiled %d, direct %d", o, tiled[o], direct[o])
				}
			}
		})
	}
}

func TestGemvTiledClearsStaleOutput(t *testing.T) {
	input := make([]int8, 8)
	weights := make([]int8, 32*8)
	for i := range input {
		input[i] = 1
	}
	for i := range weights {
		weights[i] = 1
	}
	output := make([]int32, 32)
	for o := range output {
		output[o] = 999
	}

	GemvTiled(input, weights, output)

	for o, got := range output {
		if got != 8 {
			t.Errorf("output[%d] = %d, want 8 (stale value must not leak)", o, got)
		}
	}
}

func TestGemvShapePanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"direct short weights", func() {
			GemvDirect(make([]int8, 8), make([]int8, 7), nil, make([]int32, 4))
		}},
		{"direct short bias", func() {
			GemvDirect(make([]int8, 8), make([]int8, 32), make([]int32, 3), make([]int32, 4))
		}},
		{"tiled short weights", func() {
			GemvTiled(make([]int8, 8), make([]int8, 7), make([]int32, 4))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic on bad shape")
				}
			}()
			tt.fn()
		})
	}
}

func TestGemvLayerForward(t *testing.T) {
	l := NewGemvLayer(8, 32)
	if len(l.Weights) != 256 || len(l.Input) != 8 || len(l.Output) != 32 || len(l.Bias) != 32 {
		t.Fatalf("unexpected buffer sizes: w=%d in=%d out=%d bias=%d",
			len(l.Weights), len(l.Input), len(l.Output), len(l.Bias))
	}

	for i := range l.Input {
		l.Input[i] = 1
	}
	for i := range l.Weights {
		l.Weights[i] = 2
	}
	for o := range l.Bias {
		l.Bias[o] = 100
	}

	l.Forward()
	for o, got := range l.Output {
		if got != 116 {
			t.Errorf("Forward output[%d] = %d, want 116", o, got)
		}
	}

	// The tiled pass accumulates products only, so bias must not appear.
	l.ForwardTiled()
	for o, got := range l.Output {
		if got != 16 {
			t.Errorf("ForwardTiled output[%d] = %d, want 16", o, got)
		}
	}
}
