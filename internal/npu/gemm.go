package npu

// GemmDirect computes C = A * B for row-major A (m x k), B (k x n) and
// C (m x n).
func GemmDirect(a, b []int8, c []int32, m, k, n int) {
	if len(a) != m*k {
		panic("a length must be m*k")
	}
	if len(b) != k*n {
		panic("b length must be k*n")
	}
	if len(c) != m*n {
		panic("c length must be m*n")
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := int32(0)
			for l := 0; l < k; l++ {
				sum += int32(a[i*k+l]) * int32(b[l*n+j])
			}
			c[i*n+j] = sum
		}
	}
}

// GemmTiled computes the same product as GemmDirect in the accumulation
// order of the hardware: rows of A in tiles of SubarrayRows, the shared K
// dimension in tiles of SubarrayCols, and for each tile pair every column
// of B in full. N is never tiled. Trailing tiles are clipped when M or K
// is not a multiple of the tile shape. The final values match GemmDirect
// exactly; only the order of the additions differs.
func GemmTiled(a, b []int8, c []int32, m, k, n int) {
	if len(a) != m*k {
		panic("a length must be m*k")
	}
	if len(b) != k*n {
		panic("b length must be k*n")
	}
	if len(c) != m*n {
		panic("c length must be m*n")
	}

	for i := range c {
		c[i] = 0
	}

	for mTile := 0; mTile < m; mTile += SubarrayRows {
		mEnd := min(mTile+SubarrayRows, m)

		for kTile := 0; kTile < k; kTile += SubarrayCols {
			kEnd := min(kTile+SubarrayCols, k)

			for j := 0; j < n; j++ {
				for i := mTile; i < mEnd; i++ {
					for l := kTile; l < kEnd; l++ {
						c[i*n+j] += int32(a[i*k+l]) * int32(b[l*n+j])
					}
				}
			}
		}
	}
}
