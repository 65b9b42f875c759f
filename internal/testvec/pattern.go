package testvec

// Weight pattern fills for a rows x cols row-major matrix. Row values
// derived from the row index wrap in int8 arithmetic past row 127.

func checkShape(weights []int8, rows, cols int) {
	if len(weights) != rows*cols {
		panic("weights length must be rows*cols")
	}
}

// FillIdentity zeroes weights and sets column r%cols of each row r to 1,
// so the output selects input elements cyclically.
func FillIdentity(weights []int8, rows, cols int) {
	checkShape(weights, rows, cols)
	Fill(weights, 0)
	for r := 0; r < rows; r++ {
		weights[r*cols+r%cols] = 1
	}
}

// FillSparseDiagonal zeroes weights and sets column r%cols of each row r
// to r+1, leaving a single non-zero per row.
func FillSparseDiagonal(weights []int8, rows, cols int) {
	checkShape(weights, rows, cols)
	Fill(weights, 0)
	for r := 0; r < rows; r++ {
		weights[r*cols+r%cols] = int8(r + 1)
	}
}

// FillRowScaled sets every element of row r to r+1.
func FillRowScaled(weights []int8, rows, cols int) {
	checkShape(weights, rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			weights[r*cols+c] = int8(r + 1)
		}
	}
}

// FillColumnRamp zeroes weights and sets column col of each row r to r+1.
func FillColumnRamp(weights []int8, rows, cols, col int) {
	checkShape(weights, rows, cols)
	if col < 0 || col >= cols {
		panic("column index out of range")
	}
	Fill(weights, 0)
	for r := 0; r < rows; r++ {
		weights[r*cols+col] = int8(r + 1)
	}
}

// FillRow sets every element of row r to v, leaving other rows untouched.
func FillRow(weights []int8, rows, cols, row int, v int8) {
	checkShape(weights, rows, cols)
	if row < 0 || row >= rows {
		panic("row index out of range")
	}
	for c := 0; c < cols; c++ {
		weights[row*cols+c] = v
	}
}
