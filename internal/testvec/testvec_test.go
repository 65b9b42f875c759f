package testvec

import (
	"slices"
	"testing"
)

func TestRandomInt8Deterministic(t *testing.T) {
	a := make([]int8, 64)
	b := make([]int8, 64)
	RandomInt8(a, 42)
	RandomInt8(b, 42)

	if !slices.Equal(a, b) {
		t.Error("same seed must produce identical data")
	}
}

func TestRandomInt8SeedsDiffer(t *testing.T) {
	a := make([]int8, 64)
	b := make([]int8, 64)
	RandomInt8(a, 1)
	RandomInt8(b, 2)

	if slices.Equal(a, b) {
		t.Error("different seeds produced identical data")
	}
}

func TestRandomInt8IndependentOfCallOrder(t *testing.T) {
	// A fill with another seed in between must not disturb the stream.
	a := make([]int8, 32)
	b := make([]int8, 32)
	scratch := make([]int8, 32)

	RandomInt8(a, 9999)
	RandomInt8(scratch, 123)
	RandomInt8(b, 9999)

	if !slices.Equal(a, b) {
		t.Error("interleaved fills must not change seeded output")
	}
}

func TestSequentialInt8Wraps(t *testing.T) {
	data := make([]int8, 4)
	SequentialInt8(data, 126)

	want := []int8{126, 127, -128, -127}
	if !slices.Equal(data, want) {
		t.Errorf("SequentialInt8 = %v, want %v", data, want)
	}
}

func TestRamp(t *testing.T) {
	data := make([]int8, 5)
	Ramp(data)

	want := []int8{1, 2, 3, 4, 5}
	if !slices.Equal(data, want) {
		t.Errorf("Ramp = %v, want %v", data, want)
	}
}

func TestFill(t *testing.T) {
	data := make([]int8, 4)
	Fill(data, -7)

	for i, v := range data {
		if v != -7 {
			t.Errorf("data[%d] = %d, want -7", i, v)
		}
	}
}

func TestFillAlternating(t *testing.T) {
	data := make([]int8, 5)
	FillAlternating(data, 127, -128)

	want := []int8{127, -128, 127, -128, 127}
	if !slices.Equal(data, want) {
		t.Errorf("FillAlternating = %v, want %v", data, want)
	}
}

func TestBiasRamp(t *testing.T) {
	bias := make([]int32, 4)
	BiasRamp(bias, 10)

	want := []int32{0, 10, 20, 30}
	if !slices.Equal(bias, want) {
		t.Errorf("BiasRamp = %v, want %v", bias, want)
	}
}

func TestFillIdentity(t *testing.T) {
	w := make([]int8, 4*3)
	FillIdentity(w, 4, 3)

	want := []int8{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 0, 0,
	}
	if !slices.Equal(w, want) {
		t.Errorf("FillIdentity = %v, want %v", w, want)
	}
}

func TestFillSparseDiagonal(t *testing.T) {
	w := make([]int8, 4*3)
	FillSparseDiagonal(w, 4, 3)

	want := []int8{
		1, 0, 0,
		0, 2, 0,
		0, 0, 3,
		4, 0, 0,
	}
	if !slices.Equal(w, want) {
		t.Errorf("FillSparseDiagonal = %v, want %v", w, want)
	}
}

func TestFillRowScaled(t *testing.T) {
	w := make([]int8, 3*2)
	FillRowScaled(w, 3, 2)

	want := []int8{
		1, 1,
		2, 2,
		3, 3,
	}
	if !slices.Equal(w, want) {
		t.Errorf("FillRowScaled = %v, want %v", w, want)
	}
}

func TestFillColumnRamp(t *testing.T) {
	w := make([]int8, 3*4)
	FillColumnRamp(w, 3, 4, 2)

	want := []int8{
		0, 0, 1, 0,
		0, 0, 2, 0,
		0, 0, 3, 0,
	}
	if !slices.Equal(w, want) {
		t.Errorf("FillColumnRamp = %v, want %v", w, want)
	}
}

func TestFillRow(t *testing.T) {
	w := make([]int8, 3*2)
	Fill(w, 1)
	FillRow(w, 3, 2, 1, 9)

	want := []int8{
		1, 1,
		9, 9,
		1, 1,
	}
	if !slices.Equal(w, want) {
		t.Errorf("FillRow = %v, want %v", w, want)
	}
}

func TestPatternPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"shape mismatch", func() { FillIdentity(make([]int8, 5), 2, 3) }},
		{"column out of range", func() { FillColumnRamp(make([]int8, 6), 2, 3, 3) }},
		{"negative column", func() { FillColumnRamp(make([]int8, 6), 2, 3, -1) }},
		{"row out of range", func() { FillRow(make([]int8, 6), 2, 3, 2, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestStats(t *testing.T) {
	tests := []struct {
		name     string
		v        []int32
		min, max int32
		mean     int64
	}{
		{"single value", []int32{5}, 5, 5, 5},
		{"mixed signs", []int32{-3, 7, 1}, -3, 7, 1},
		{"all negative", []int32{-10, -20}, -20, -10, -15},
		{"wide spread", []int32{-130048, 0, 129032}, -130048, 129032, -338},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, mean := Stats(tt.v)
			if min != tt.min || max != tt.max || mean != tt.mean {
				t.Errorf("Stats = (%d, %d, %d), want (%d, %d, %d)",
					min, max, mean, tt.min, tt.max, tt.mean)
			}
		})
	}
}

func TestStatsPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty slice")
		}
	}()
	Stats(nil)
}

func TestFormatVectorInt8(t *testing.T) {
	got := FormatVectorInt8("v", []int8{1, -2})
	want := "v[2] = {    1,   -2 }\n"
	if got != want {
		t.Errorf("FormatVectorInt8 = %q, want %q", got, want)
	}
}

func TestFormatVectorInt32(t *testing.T) {
	got := FormatVectorInt32("out", []int32{8, -16256})
	want := "out[2] = {      8, -16256 }\n"
	if got != want {
		t.Errorf("FormatVectorInt32 = %q, want %q", got, want)
	}
}

func TestFormatMatrixInt8(t *testing.T) {
	got := FormatMatrixInt8("w", []int8{1, 2, 3, 4}, 2, 2)
	want := "w[2][2] = {\n" +
		"  {    1,    2 },\n" +
		"  {    3,    4 }\n" +
		"}\n"
	if got != want {
		t.Errorf("FormatMatrixInt8 = %q, want %q", got, want)
	}
}

func TestFormatMatrixInt32(t *testing.T) {
	got := FormatMatrixInt32("c", []int32{10, -20, 30, 400}, 2, 2)
	want := "c[2][2] = {\n" +
		"  {       10,      -20 },\n" +
		"  {       30,      400 }\n" +
		"}\n"
	if got != want {
		t.Errorf("FormatMatrixInt32 = %q, want %q", got, want)
	}
}
