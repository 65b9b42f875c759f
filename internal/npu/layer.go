package npu

// GemvLayer bundles the buffers for one GEMV problem: a weight matrix in
// row-major order (OutputDim rows of InputDim columns), an input vector,
// a bias vector and the output.
type GemvLayer struct {
	InputDim  int
	OutputDim int

	Weights []int8
	Input   []int8
	Output  []int32
	Bias    []int32
}

// NewGemvLayer allocates zeroed buffers for the given shape.
func NewGemvLayer(inputDim, outputDim int) *GemvLayer {
	return &GemvLayer{
		InputDim:  inputDim,
		OutputDim: outputDim,
		Weights:   make([]int8, outputDim*inputDim),
		Input:     make([]int8, inputDim),
		Output:    make([]int32, outputDim),
		Bias:      make([]int32, outputDim),
	}
}

// Forward runs the direct GEMV over the layer buffers, including bias.
func (l *GemvLayer) Forward() {
	GemvDirect(l.Input, l.Weights, l.Bias, l.Output)
}

// ForwardTiled runs the tiled GEMV over the layer buffers. Bias is not
// applied; the sub-array pass accumulates products only.
func (l *GemvLayer) ForwardTiled() {
	GemvTiled(l.Input, l.Weights, l.Output)
}

// GemmLayer bundles the buffers for one GEMM problem, all row-major:
// A is M x K, B is K x N, C is M x N.
type GemmLayer struct {
	M, K, N int

	A []int8
	B []int8
	C []int32
}

// NewGemmLayer allocates zeroed buffers for the given shape.
func NewGemmLayer(m, k, n int) *GemmLayer {
	return &GemmLayer{
		M: m,
		K: k,
		N: n,
		A: make([]int8, m*k),
		B: make([]int8, k*n),
		C: make([]int32, m*n),
	}
}

// Forward runs the direct GEMM over the layer buffers.
func (l *GemmLayer) Forward() {
	GemmDirect(l.A, l.B, l.C, l.M, l.K, l.N)
}

// ForwardTiled runs the tiled GEMM over the layer buffers.
func (l *GemmLayer) ForwardTiled() {
	GemmTiled(l.A, l.B, l.C, l.M, l.K, l.N)
}
