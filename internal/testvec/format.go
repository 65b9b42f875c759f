package testvec

import (
	"fmt"
	"strings"
)

// Stats returns the minimum, maximum and integer mean of v. It panics on
// an empty slice.
func Stats(v []int32) (min, max int32, mean int64) {
	if len(v) == 0 {
		panic("Stats: empty slice")
	}
	min, max = v[0], v[0]
	var sum int64
	for _, x := range v {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
		sum += int64(x)
	}
	return min, max, sum / int64(len(v))
}

// FormatVectorInt8 renders vec as name[len] = { v0, v1, ... }.
func FormatVectorInt8(name string, vec []int8) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d] = { ", name, len(vec))
	for i, v := range vec {
		fmt.Fprintf(&b, "%4d", v)
		if i < len(vec)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteString(" }\n")
	return b.String()
}

// FormatVectorInt32 renders vec as name[len] = { v0, v1, ... }.
func FormatVectorInt32(name string, vec []int32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d] = { ", name, len(vec))
	for i, v := range vec {
		fmt.Fprintf(&b, "%6d", v)
		if i < len(vec)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteString(" }\n")
	return b.String()
}

// FormatMatrixInt8 renders a rows x cols row-major matrix with one brace
// group per row.
func FormatMatrixInt8(name string, mat []int8, rows, cols int) string {
	if len(mat) != rows*cols {
		panic("matrix length must be rows*cols")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d][%d] = {\n", name, rows, cols)
	for r := 0; r < rows; r++ {
		b.WriteString("  { ")
		for c := 0; c < cols; c++ {
			fmt.Fprintf(&b, "%4d", mat[r*cols+c])
			if c < cols-1 {
				b.WriteString(", ")
			}
		}
		b.WriteString(" }")
		if r < rows-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// FormatMatrixInt32 renders a rows x cols row-major matrix with one brace
// group per row.
func FormatMatrixInt32(name string, mat []int32, rows, cols int) string {
	if len(mat) != rows*cols {
		panic("matrix length must be rows*cols")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s[%d][%d] = {\n", name, rows, cols)
	for r := 0; r < rows; r++ {
		b.WriteString("  { ")
		for c := 0; c < cols; c++ {
			fmt.Fprintf(&b, "%8d", mat[r*cols+c])
			if c < cols-1 {
				b.WriteString(", ")
			}
		}
		b.WriteString(" }")
		if r < rows-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}
