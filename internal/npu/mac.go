package npu

// Mac performs one multiply-accumulate step: *acc += input * weight, with
// both operands widened to int32 before the multiply. Overflow wraps in
// two's complement, matching the hardware accumulator.
func Mac(input, weight int8, acc *int32) {
	*acc += int32(input) * int32(weight)
}
