// Package testvec generates deterministic test vectors and weight
// patterns for golden-model runs. Random data is reproducible: the same
// seed always yields the same values, independent of call order.
package testvec

import (
	"math/rand"
)

// RandomInt8 fills data with values in [-128, 127] drawn from a fresh
// generator seeded with seed. Two calls with the same seed and length
// produce identical data.
func RandomInt8(data []int8, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range data {
		data[i] = int8(rng.Intn(256) - 128)
	}
}

// SequentialInt8 fills data with start, start+1, start+2, ... wrapping in
// int8 arithmetic.
func SequentialInt8(data []int8, start int8) {
	v := start
	for i := range data {
		data[i] = v
		v++
	}
}

// Fill sets every element of data to v.
func Fill(data []int8, v int8) {
	for i := range data {
		data[i] = v
	}
}

// FillAlternating sets even indices to a and odd indices to b.
func FillAlternating(data []int8, a, b int8) {
	for i := range data {
		if i%2 == 0 {
			data[i] = a
		} else {
			data[i] = b
		}
	}
}

// Ramp fills data with 1, 2, 3, ... wrapping in int8 arithmetic.
func Ramp(data []int8) {
	SequentialInt8(data, 1)
}

// BiasRamp sets bias[r] = int32(r) * step.
func BiasRamp(bias []int32, step int32) {
	for r := range bias {
		bias[r] = int32(r) * step
	}
}
