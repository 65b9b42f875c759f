// Package npu is the software golden model for the NPU datapath. It
// implements the int8 multiply-accumulate, direct and tiled GEMV/GEMM, and
// the sub-array geometry the tiled paths mirror. Outputs are bit-exact
// against the RTL: int8 operands widen to int32 before the multiply and
// accumulation wraps in two's complement, so results from the direct and
// tiled paths are interchangeable.
package npu

// Datapath element widths in bits.
const (
	InputWidth  = 8
	OutputWidth = 32
)

// Sub-array geometry. One sub-array pass produces 32 partial dot products
// over 8 inputs; the tiled operations walk larger problems in these steps.
const (
	SubarrayRows = 32
	SubarrayCols = 8
)

// PE array composition.
const (
	PEArrayRows    = 2
	PEArrayCols    = 2
	NumLargeArrays = 4

	TotalPEUnits = NumLargeArrays * PEArrayRows * PEArrayCols
	MACsPerPE    = SubarrayRows * SubarrayCols
	TotalMACs    = TotalPEUnits * MACsPerPE
)
