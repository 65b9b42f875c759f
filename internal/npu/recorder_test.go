package npu

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/tapeworks/npuref/internal/hexio"
)

func TestMacRecorderClearGroups(t *testing.T) {
	rec := NewMacRecorder(16)

	steps := []struct {
		clear  bool
		input  int8
		weight int8
		want   int32
	}{
		{true, 2, 3, 6},
		{false, 4, 5, 26},
		{true, -5, 7, -35},
		{true, -3, -4, 12},
		{false, -5, 7, -23},
	}

	for i, s := range steps {
		acc, err := rec.Record(s.clear, s.input, s.weight)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if acc != s.want {
			t.Errorf("step %d: acc = %d, want %d", i, acc, s.want)
		}
	}

	if rec.Len() != len(steps) {
		t.Errorf("Len() = %d, want %d", rec.Len(), len(steps))
	}
	if rec.Acc() != -23 {
		t.Errorf("Acc() = %d, want -23", rec.Acc())
	}
}

func TestMacRecorderFull(t *testing.T) {
	rec := NewMacRecorder(2)

	if _, err := rec.Record(true, 1, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := rec.Record(false, 2, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acc, err := rec.Record(false, 3, 3)
	if !errors.Is(err, ErrRecorderFull) {
		t.Errorf("expected ErrRecorderFull, got %v", err)
	}
	if acc != 5 {
		t.Errorf("rejected step must leave acc at 5, got %d", acc)
	}
	if rec.Len() != 2 {
		t.Errorf("rejected step must not be stored, Len() = %d", rec.Len())
	}
}

func TestMacRecorderWriteHexFiles(t *testing.T) {
	rec := NewMacRecorder(8)
	rec.Record(true, 127, 127)
	rec.Record(false, 1, 1)
	rec.Record(true, -1, 1)

	dir := t.TempDir()
	if err := rec.WriteHexFiles(dir); err != nil {
		t.Fatalf("WriteHexFiles failed: %v", err)
	}

	inputs, err := hexio.ReadInt8File(filepath.Join(dir, "mac_test_input.hex"), 0)
	if err != nil {
		t.Fatalf("reading inputs: %v", err)
	}
	weights, err := hexio.ReadInt8File(filepath.Join(dir, "mac_test_weight.hex"), 0)
	if err != nil {
		t.Fatalf("reading weights: %v", err)
	}
	clears, err := hexio.ReadInt8File(filepath.Join(dir, "mac_test_clear.hex"), 0)
	if err != nil {
		t.Fatalf("reading clears: %v", err)
	}
	expected, err := hexio.ReadInt32File(filepath.Join(dir, "mac_test_expected.hex"), 0)
	if err != nil {
		t.Fatalf("reading expected: %v", err)
	}

	wantInputs := []int8{127, 1, -1}
	wantWeights := []int8{127, 1, 1}
	wantClears := []int8{1, 0, 1}
	wantExpected := []int32{16129, 16130, -1}

	for i := range wantInputs {
		if inputs[i] != wantInputs[i] {
			t.Errorf("inputs[%d] = %d, want %d", i, inputs[i], wantInputs[i])
		}
		if weights[i] != wantWeights[i] {
			t.Errorf("weights[%d] = %d, want %d", i, weights[i], wantWeights[i])
		}
		if clears[i] != wantClears[i] {
			t.Errorf("clears[%d] = %d, want %d", i, clears[i], wantClears[i])
		}
		if expected[i] != wantExpected[i] {
			t.Errorf("expected[%d] = %d, want %d", i, expected[i], wantExpected[i])
		}
	}
	if len(inputs) != 3 || len(weights) != 3 || len(clears) != 3 || len(expected) != 3 {
		t.Errorf("stream lengths %d/%d/%d/%d, want 3 each",
			len(inputs), len(weights), len(clears), len(expected))
	}
}
