package npu

import (
	"errors"
	"path/filepath"

	"github.com/tapeworks/npuref/internal/hexio"
)

// ErrRecorderFull is returned by Record once the recorder holds its full
// capacity of operations. The accumulator is left untouched.
var ErrRecorderFull = errors.New("mac recorder full")

// MacRecorder drives a single accumulator through a stream of MAC
// operations and records every step for replay against the hardware. A
// step with clear set zeroes the accumulator before the multiply, so
// cleared steps start fresh accumulation groups within one stream.
type MacRecorder struct {
	inputs   []int8
	weights  []int8
	clears   []int8
	expected []int32
	acc      int32
	capacity int
}

// NewMacRecorder returns a recorder that accepts up to capacity operations.
func NewMacRecorder(capacity int) *MacRecorder {
	return &MacRecorder{capacity: capacity}
}

// Record applies one MAC step and stores the operands together with the
// accumulator value after the step. It returns the accumulator, and
// ErrRecorderFull once the capacity has been reached.
func (r *MacRecorder) Record(clear bool, input, weight int8) (int32, error) {
	if len(r.inputs) >= r.capacity {
		return r.acc, ErrRecorderFull
	}

	if clear {
		r.acc = 0
	}
	Mac(input, weight, &r.acc)

	r.inputs = append(r.inputs, input)
	r.weights = append(r.weights, weight)
	if clear {
		r.clears = append(r.clears, 1)
	} else {
		r.clears = append(r.clears, 0)
	}
	r.expected = append(r.expected, r.acc)

	return r.acc, nil
}

// Len reports the number of recorded operations.
func (r *MacRecorder) Len() int {
	return len(r.inputs)
}

// Acc returns the current accumulator value.
func (r *MacRecorder) Acc() int32 {
	return r.acc
}

// WriteHexFiles dumps the recorded streams into dir as testbench hex
// files: mac_test_input.hex, mac_test_weight.hex and mac_test_clear.hex
// as 8-bit values, mac_test_expected.hex as 32-bit accumulator values.
func (r *MacRecorder) WriteHexFiles(dir string) error {
	if err := hexio.WriteInt8File(filepath.Join(dir, "mac_test_input.hex"), r.inputs); err != nil {
		return err
	}
	if err := hexio.WriteInt8File(filepath.Join(dir, "mac_test_weight.hex"), r.weights); err != nil {
		return err
	}
	if err := hexio.WriteInt8File(filepath.Join(dir, "mac_test_clear.hex"), r.clears); err != nil {
		return err
	}
	return hexio.WriteInt32File(filepath.Join(dir, "mac_test_expected.hex"), r.expected)
}
