package suite

import (
	"time"

	"github.com/tapeworks/npuref/internal/metrics"
	"github.com/tapeworks/npuref/internal/npu"
)

// macStreamCapacity matches the testbench stream buffer.
const macStreamCapacity = 512

// runMacChecks verifies the accumulator arithmetic against hand-computed
// values: basic products, int8 extremes and accumulation patterns.
func (r *Runner) runMacChecks() {
	start := time.Now()
	var acc int32

	// Basic operations.
	npu.Mac(2, 3, &acc)
	r.check(acc == 6, "2 * 3 = 6")
	npu.Mac(4, 5, &acc)
	r.check(acc == 26, "6 + (4 * 5) = 26")
	acc = 0
	npu.Mac(-5, 7, &acc)
	r.check(acc == -35, "(-5) * 7 = -35")
	acc = 0
	npu.Mac(-3, -4, &acc)
	r.check(acc == 12, "(-3) * (-4) = 12")
	npu.Mac(-5, 7, &acc)
	r.check(acc == -23, "12 + ((-5) * 7) = -23")

	// Edge cases.
	acc = 100
	npu.Mac(0, 50, &acc)
	r.check(acc == 100, "100 + (0 * 50) = 100")
	acc = 100
	npu.Mac(50, 0, &acc)
	r.check(acc == 100, "100 + (50 * 0) = 100")
	acc = 0
	npu.Mac(127, 1, &acc)
	r.check(acc == 127, "127 * 1 = 127")
	acc = 0
	npu.Mac(1, -128, &acc)
	r.check(acc == -128, "1 * (-128) = -128")
	acc = 0
	npu.Mac(100, -1, &acc)
	r.check(acc == -100, "100 * (-1) = -100")
	acc = 0
	npu.Mac(127, 127, &acc)
	r.check(acc == 16129, "127 * 127 = 16129")
	acc = 0
	npu.Mac(-128, -128, &acc)
	r.check(acc == 16384, "(-128) * (-128) = 16384")
	acc = 0
	npu.Mac(127, -128, &acc)
	r.check(acc == -16256, "127 * (-128) = -16256")
	acc = 0
	for i := 0; i < 256; i++ {
		npu.Mac(127, 127, &acc)
	}
	r.check(acc == 16129*256, "256 * (127 * 127) = 4129024")

	// Accumulation patterns.
	acc = 0
	npu.Mac(10, 10, &acc)
	npu.Mac(-10, 10, &acc)
	r.check(acc == 0, "alternating: (10*10) + (-10*10) = 0")
	acc = 0
	for i := int8(1); i <= 10; i++ {
		npu.Mac(i, i, &acc)
	}
	r.check(acc == 385, "sum of squares 1^2 to 10^2 = 385")
	acc = 0
	for i := int8(1); i <= 8; i++ {
		npu.Mac(i, 1, &acc)
	}
	r.check(acc == 36, "sum 1 to 8 = 36")

	metrics.RecordCase("mac", time.Since(start))
}

type macOp struct {
	clear  bool
	input  int8
	weight int8
}

// macStreamOps is the streaming MAC sequence replayed by the testbench:
// the checked scenarios above, back to back, with clear marking the start
// of each accumulation group.
func macStreamOps() []macOp {
	ops := []macOp{
		{true, 2, 3},
		{false, 4, 5},
		{true, -5, 7},
		{true, -3, -4},
		{false, -5, 7},

		{true, 0, 50},
		{true, 50, 0},
		{true, 127, 1},
		{true, 1, -128},
		{true, 100, -1},
		{true, 127, 127},
		{true, -128, -128},
		{true, 127, -128},
	}

	// Large accumulation: 256 * (127*127).
	ops = append(ops, macOp{true, 127, 127})
	for i := 1; i < 256; i++ {
		ops = append(ops, macOp{false, 127, 127})
	}

	// Alternating signs cancel.
	ops = append(ops, macOp{true, 10, 10}, macOp{false, -10, 10})

	// Sum of squares 1..10.
	ops = append(ops, macOp{true, 1, 1})
	for i := int8(2); i <= 10; i++ {
		ops = append(ops, macOp{false, i, i})
	}

	// Sum 1..8.
	ops = append(ops, macOp{true, 1, 1})
	for i := int8(2); i <= 8; i++ {
		ops = append(ops, macOp{false, i, 1})
	}

	return ops
}

// runMacStream records the streaming sequence and writes the four MAC
// testbench hex files.
func (r *Runner) runMacStream() error {
	start := time.Now()

	rec := npu.NewMacRecorder(macStreamCapacity)
	for _, op := range macStreamOps() {
		if _, err := rec.Record(op.clear, op.input, op.weight); err != nil {
			return err
		}
	}
	r.check(rec.Acc() == 36, "stream ends on sum 1 to 8 = 36")

	if err := rec.WriteHexFiles(r.outDir); err != nil {
		return err
	}
	metrics.RecordMacOps(rec.Len())
	metrics.RecordHexDump(8, rec.Len())
	metrics.RecordHexDump(8, rec.Len())
	metrics.RecordHexDump(8, rec.Len())
	metrics.RecordHexDump(32, rec.Len())
	metrics.RecordCase("mac", time.Since(start))

	r.log.Info("mac stream generated", "ops", rec.Len())
	return nil
}
