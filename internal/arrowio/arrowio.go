// Package arrowio maps golden cases onto Arrow record batches and IPC
// files. Each case is one single-row record: scalar columns for the name,
// group and dimensions, list columns for the int8 operands and int32
// results, since the buffer lengths differ per column.
package arrowio

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tapeworks/npuref/internal/metrics"
)

// Case is one golden GEMV problem with its expected output. Bias may be
// empty for cases without one.
type Case struct {
	Name  string
	Group string

	InputDim  int
	OutputDim int

	Input   []int8
	Weights []int8
	Bias    []int32
	Output  []int32
}

// Validate checks the buffer lengths against the declared dimensions.
func (c *Case) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("case has no name")
	}
	if len(c.Input) != c.InputDim {
		return fmt.Errorf("case %s: input length %d != input_dim %d", c.Name, len(c.Input), c.InputDim)
	}
	if len(c.Weights) != c.OutputDim*c.InputDim {
		return fmt.Errorf("case %s: weights length %d != %d*%d", c.Name, len(c.Weights), c.OutputDim, c.InputDim)
	}
	if len(c.Bias) != 0 && len(c.Bias) != c.OutputDim {
		return fmt.Errorf("case %s: bias length %d != output_dim %d", c.Name, len(c.Bias), c.OutputDim)
	}
	if len(c.Output) != c.OutputDim {
		return fmt.Errorf("case %s: output length %d != output_dim %d", c.Name, len(c.Output), c.OutputDim)
	}
	return nil
}

var caseSchema = arrow.NewSchema([]arrow.Field{
	{Name: "name", Type: arrow.BinaryTypes.String},
	{Name: "group", Type: arrow.BinaryTypes.String},
	{Name: "input_dim", Type: arrow.PrimitiveTypes.Int32},
	{Name: "output_dim", Type: arrow.PrimitiveTypes.Int32},
	{Name: "input", Type: arrow.ListOf(arrow.PrimitiveTypes.Int8)},
	{Name: "weights", Type: arrow.ListOf(arrow.PrimitiveTypes.Int8)},
	{Name: "bias", Type: arrow.ListOf(arrow.PrimitiveTypes.Int32)},
	{Name: "output", Type: arrow.ListOf(arrow.PrimitiveTypes.Int32)},
}, nil)

// Schema returns the case record schema.
func Schema() *arrow.Schema {
	return caseSchema
}

// NewRecord builds a single-row record for c. The caller owns the record
// and must Release it.
func NewRecord(c *Case) arrow.Record {
	b := array.NewRecordBuilder(memory.DefaultAllocator, caseSchema)
	defer b.Release()

	b.Field(0).(*array.StringBuilder).Append(c.Name)
	b.Field(1).(*array.StringBuilder).Append(c.Group)
	b.Field(2).(*array.Int32Builder).Append(int32(c.InputDim))
	b.Field(3).(*array.Int32Builder).Append(int32(c.OutputDim))

	appendInt8List(b.Field(4).(*array.ListBuilder), c.Input)
	appendInt8List(b.Field(5).(*array.ListBuilder), c.Weights)
	appendInt32List(b.Field(6).(*array.ListBuilder), c.Bias)
	appendInt32List(b.Field(7).(*array.ListBuilder), c.Output)

	return b.NewRecord()
}

func appendInt8List(lb *array.ListBuilder, vals []int8) {
	lb.Append(true)
	lb.ValueBuilder().(*array.Int8Builder).AppendValues(vals, nil)
}

func appendInt32List(lb *array.ListBuilder, vals []int32) {
	lb.Append(true)
	lb.ValueBuilder().(*array.Int32Builder).AppendValues(vals, nil)
}

// CaseFromRecord decodes a single-row case record. The returned case owns
// copies of the column data and stays valid after the record is released.
func CaseFromRecord(rec arrow.Record) (*Case, error) {
	if !rec.Schema().Equal(caseSchema) {
		return nil, fmt.Errorf("unexpected record schema: %s", rec.Schema())
	}
	if rec.NumRows() != 1 {
		return nil, fmt.Errorf("expected single-row case record, got %d rows", rec.NumRows())
	}

	c := &Case{
		Name:      rec.Column(0).(*array.String).Value(0),
		Group:     rec.Column(1).(*array.String).Value(0),
		InputDim:  int(rec.Column(2).(*array.Int32).Value(0)),
		OutputDim: int(rec.Column(3).(*array.Int32).Value(0)),
		Input:     int8ListValues(rec.Column(4).(*array.List)),
		Weights:   int8ListValues(rec.Column(5).(*array.List)),
		Bias:      int32ListValues(rec.Column(6).(*array.List)),
		Output:    int32ListValues(rec.Column(7).(*array.List)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func int8ListValues(l *array.List) []int8 {
	start, end := l.ValueOffsets(0)
	if start == end {
		return nil
	}
	vals := l.ListValues().(*array.Int8).Int8Values()[start:end]
	out := make([]int8, len(vals))
	copy(out, vals)
	return out
}

func int32ListValues(l *array.List) []int32 {
	start, end := l.ValueOffsets(0)
	if start == end {
		return nil
	}
	vals := l.ListValues().(*array.Int32).Int32Values()[start:end]
	out := make([]int32, len(vals))
	copy(out, vals)
	return out
}

// WriteFile writes cases to path as an Arrow IPC file, one record per
// case.
func WriteFile(path string, cases []*Case) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(caseSchema))
	if err != nil {
		return fmt.Errorf("failed to create ipc writer: %w", err)
	}
	for _, c := range cases {
		rec := NewRecord(c)
		err := w.Write(rec)
		rec.Release()
		if err != nil {
			w.Close()
			return fmt.Errorf("failed to write case %s: %w", c.Name, err)
		}
		metrics.RecordArrowBatch()
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close ipc writer: %w", err)
	}
	return nil
}

// ReadFile reads every case record from an Arrow IPC file.
func ReadFile(path string) ([]*Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read arrow file %s: %w", path, err)
	}
	defer r.Close()

	cases := make([]*Case, 0, r.NumRecords())
	for i := 0; i < r.NumRecords(); i++ {
		rec, err := r.Record(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read record %d from %s: %w", i, path, err)
		}
		c, err := CaseFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}
