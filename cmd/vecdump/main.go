package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tapeworks/npuref/internal/arrowio"
	"github.com/tapeworks/npuref/internal/hexio"
	"github.com/tapeworks/npuref/internal/testvec"
)

var (
	width = flag.Int("w", 8, "Hex value width in bits (8 or 32)")
	cols  = flag.Int("cols", 0, "Render as a matrix with this many columns (0 = vector)")
	max   = flag.Int("max", 0, "Maximum number of values to read (0 = all)")
	label = flag.String("name", "", "Label to print (defaults to the file name)")
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Error: at least one file argument is required")
		flag.Usage()
		os.Exit(1)
	}

	for _, path := range flag.Args() {
		if err := dump(path); err != nil {
			log.Fatalf("Failed to dump %s: %v", path, err)
		}
	}
}

func dump(path string) error {
	if strings.HasSuffix(path, ".arrow") {
		return dumpArrow(path)
	}

	name := *label
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".hex")
	}

	switch *width {
	case 8:
		data, err := hexio.ReadInt8File(path, *max)
		if err != nil {
			return err
		}
		if *cols > 0 {
			if len(data)%*cols != 0 {
				return fmt.Errorf("%d values do not fill rows of %d columns", len(data), *cols)
			}
			fmt.Print(testvec.FormatMatrixInt8(name, data, len(data)/(*cols), *cols))
		} else {
			fmt.Print(testvec.FormatVectorInt8(name, data))
		}
	case 32:
		data, err := hexio.ReadInt32File(path, *max)
		if err != nil {
			return err
		}
		if *cols > 0 {
			if len(data)%*cols != 0 {
				return fmt.Errorf("%d values do not fill rows of %d columns", len(data), *cols)
			}
			fmt.Print(testvec.FormatMatrixInt32(name, data, len(data)/(*cols), *cols))
		} else {
			fmt.Print(testvec.FormatVectorInt32(name, data))
		}
	default:
		return fmt.Errorf("unsupported width %d (must be 8 or 32)", *width)
	}
	return nil
}

func dumpArrow(path string) error {
	cases, err := arrowio.ReadFile(path)
	if err != nil {
		return err
	}
	for _, c := range cases {
		min, max, mean := testvec.Stats(c.Output)
		fmt.Printf("%s: group=%s dims=%dx%d bias=%t output min=%d max=%d mean=%d\n",
			c.Name, c.Group, c.OutputDim, c.InputDim, len(c.Bias) > 0, min, max, mean)
	}
	return nil
}
