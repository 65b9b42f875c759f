package npu

// GemvDirect computes output[o] = sum_i(weights[o][i] * input[i]) + bias[o]
// with weights in row-major order, one row per output element. The input
// dimension is len(input) and the output dimension is len(output); weights
// must hold len(output)*len(input) elements. bias may be nil, in which case
// no bias is added.
func GemvDirect(input, weights []int8, bias, output []int32) {
	k := len(input)
	m := len(output)
	if len(weights) != m*k {
		panic("weights length must be len(output)*len(input)")
	}
	if bias != nil && len(bias) != m {
		panic("bias length must match output length")
	}

	for o := 0; o < m; o++ {
		sum := int32(0)
		for i := 0; i < k; i++ {
			sum += int32(weights[o*k+i]) * int32(input[i])
		}
		if bias != nil {
			sum += bias[o]
		}
		output[o] = sum
	}
}

// GemvTiled computes the same product as GemvDirect, without bias, in the
// accumulation order of the hardware: output rows are walked in tiles of
// SubarrayRows, input columns in tiles of SubarrayCols, and each tile adds
// its partial sums into the output before the next tile starts. Trailing
// tiles are clipped when the dimensions are not multiples of the tile
// shape. The final values match GemvDirect exactly; only the order of the
// additions differs.
func GemvTiled(input, weights []int8, output []int32) {
	k := len(input)
	m := len(output)
	if len(weights) != m*k {
		panic("weights length must be len(output)*len(input)")
	}

	for o := range output {
		output[o] = 0
	}

	for oTile := 0; oTile < m; oTile += SubarrayRows {
		oEnd := min(oTile+SubarrayRows, m)

		for iTile := 0; iTile < k; iTile += SubarrayCols {
			iEnd := min(iTile+SubarrayCols, k)

			for o := oTile; o < oEnd; o++ {
				for i := iTile; i < iEnd; i++ {
					output[o] += int32(weights[o*k+i]) * int32(input[i])
				}
			}
		}
	}
}
