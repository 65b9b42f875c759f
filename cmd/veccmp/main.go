// veccmp compares a captured hex file against its golden counterpart,
// value by value, and exits non-zero on any difference. Typical use is
// checking a waveform dump converted to hex against the suite artifacts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tapeworks/npuref/internal/hexio"
)

var (
	width   = flag.Int("w", 32, "Hex value width in bits (8 or 32)")
	maxDiff = flag.Int("show", 10, "Maximum number of mismatches to print")
)

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Println("Error: exactly two file arguments are required: golden captured")
		flag.Usage()
		os.Exit(2)
	}
	golden, captured := flag.Arg(0), flag.Arg(1)

	diffs, total, err := compare(golden, captured)
	if err != nil {
		log.Fatalf("Failed to compare: %v", err)
	}

	if diffs == 0 {
		fmt.Printf("OK: %d values match\n", total)
		return
	}
	fmt.Printf("FAIL: %d of %d values differ\n", diffs, total)
	os.Exit(1)
}

func compare(golden, captured string) (diffs, total int, err error) {
	switch *width {
	case 8:
		g, err := hexio.ReadInt8File(golden, 0)
		if err != nil {
			return 0, 0, err
		}
		c, err := hexio.ReadInt8File(captured, 0)
		if err != nil {
			return 0, 0, err
		}
		if len(g) != len(c) {
			return 0, 0, fmt.Errorf("length mismatch: golden has %d values, captured has %d", len(g), len(c))
		}
		for i := range g {
			if g[i] != c[i] {
				if diffs < *maxDiff {
					fmt.Printf("  [%d] golden %d, captured %d\n", i, g[i], c[i])
				}
				diffs++
			}
		}
		return diffs, len(g), nil
	case 32:
		g, err := hexio.ReadInt32File(golden, 0)
		if err != nil {
			return 0, 0, err
		}
		c, err := hexio.ReadInt32File(captured, 0)
		if err != nil {
			return 0, 0, err
		}
		if len(g) != len(c) {
			return 0, 0, fmt.Errorf("length mismatch: golden has %d values, captured has %d", len(g), len(c))
		}
		for i := range g {
			if g[i] != c[i] {
				if diffs < *maxDiff {
					fmt.Printf("  [%d] golden %d, captured %d\n", i, g[i], c[i])
				}
				diffs++
			}
		}
		return diffs, len(g), nil
	default:
		return 0, 0, fmt.Errorf("unsupported width %d (must be 8 or 32)", *width)
	}
}
