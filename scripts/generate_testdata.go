// +build ignore

// generate_testdata.go creates fixture datasets for manual runs and benchmarking.
// Usage: go run scripts/generate_testdata.go
//
// Creates, for each size, the same dataset in every supported format:
//   testdata/fixtures/small.{json,yaml,db}   (25 questions, 8 quarters)
//   testdata/fixtures/medium.{json,yaml,db}  (250 questions, 16 quarters)
//   testdata/fixtures/large.{json,yaml,db}   (2500 questions, 40 quarters)
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/sentidash/internal/datasource"
	"github.com/vanderheijden86/sentidash/pkg/model"
	"github.com/vanderheijden86/sentidash/pkg/testutil"
)

type datasetSpec struct {
	name      string
	questions int
	periods   int
}

var datasets = []datasetSpec{
	{"small", 25, 8},
	{"medium", 250, 16},
	{"large", 2500, 40},
}

var analysts = []string{"John Smith", "Sarah Johnson", "Michael Chen", "Emma Davis", "David Wilson"}

func main() {
	outputDir := "testdata/fixtures"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for _, d := range datasets {
		fmt.Printf("Generating %s dataset (%d questions, %d quarters)...\n", d.name, d.questions, d.periods)

		gen := testutil.New(testutil.GeneratorConfig{
			Seed:      uint64(d.questions), // reproducible per size
			Questions: d.questions,
			Periods:   d.periods,
			FirstYear: 2024 - d.periods/4,
			Analysts:  analysts,
		})
		ds := gen.Dataset()

		writers := []struct {
			ext   string
			write func(string, model.Dataset) error
		}{
			{".json", datasource.WriteJSON},
			{".yaml", datasource.WriteYAML},
			{".db", func(path string, ds model.Dataset) error {
				os.Remove(path)
				return datasource.WriteSQLite(context.Background(), path, ds)
			}},
		}
		for _, w := range writers {
			path := filepath.Join(outputDir, d.name+w.ext)
			if err := w.write(path, ds); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
				os.Exit(1)
			}
			info, _ := os.Stat(path)
			size := int64(0)
			if info != nil {
				size = info.Size()
			}
			fmt.Printf("  Written %s (%d bytes)\n", path, size)
		}
	}

	fmt.Println("\nDone! Fixtures created in", outputDir)
}
