// Package hexio reads and writes the hex text files consumed by the RTL
// testbench via $readmemh. Each value is one line: 8-bit values as two
// uppercase hex digits, 32-bit values as eight, always the two's
// complement bit pattern of the signed value.
package hexio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteInt8 writes data as one two-digit uppercase hex line per value.
func WriteInt8(w io.Writer, data []int8) error {
	bw := bufio.NewWriter(w)
	for _, v := range data {
		fmt.Fprintf(bw, "%02X\n", uint8(v))
	}
	return bw.Flush()
}

// WriteInt32 writes data as one eight-digit uppercase hex line per value.
func WriteInt32(w io.Writer, data []int32) error {
	bw := bufio.NewWriter(w)
	for _, v := range data {
		fmt.Fprintf(bw, "%08X\n", uint32(v))
	}
	return bw.Flush()
}

// ReadInt8 reads whitespace-separated hex tokens as 8-bit values. Reading
// stops at EOF, after max values when max > 0, or at the first token that
// does not parse as 8-bit hex. A short read is not an error; the returned
// error reports I/O failures only.
func ReadInt8(r io.Reader, max int) ([]int8, error) {
	var out []int8
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for (max <= 0 || len(out) < max) && sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 16, 8)
		if err != nil {
			break
		}
		out = append(out, int8(uint8(v)))
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("failed to read hex values: %w", err)
	}
	return out, nil
}

// ReadInt32 reads whitespace-separated hex tokens as 32-bit values, with
// the same stop conditions as ReadInt8.
func ReadInt32(r io.Reader, max int) ([]int32, error) {
	var out []int32
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for (max <= 0 || len(out) < max) && sc.Scan() {
		v, err := strconv.ParseUint(sc.Text(), 16, 32)
		if err != nil {
			break
		}
		out = append(out, int32(uint32(v)))
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("failed to read hex values: %w", err)
	}
	return out, nil
}

// WriteInt8File writes data to path as 8-bit hex lines.
func WriteInt8File(path string, data []int8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteInt8(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteInt32File writes data to path as 32-bit hex lines.
func WriteInt32File(path string, data []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteInt32(f, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadInt8File reads up to max 8-bit values from path; max <= 0 reads the
// whole file.
func ReadInt8File(path string, max int) ([]int8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInt8(f, max)
}

// ReadInt32File reads up to max 32-bit values from path; max <= 0 reads
// the whole file.
func ReadInt32File(path string, max int) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInt32(f, max)
}
