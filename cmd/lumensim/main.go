// Command lumensim is a headless CLI driver for the light-transport
// simulator: it builds one of the built-in demo layouts, runs a final
// tracing session to a fixed segment budget, and periodically writes the
// accumulating image to disk as PNG snapshots.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kavehsim/lumensim/pkg/catalogue"
	"github.com/kavehsim/lumensim/pkg/grid"
	"github.com/kavehsim/lumensim/pkg/simulator"
)

func main() {
	demoID := flag.String("demo", "empty-room", "Demo layout: run -list to see available names")
	width := flag.Int("width", 400, "Simulation grid width in pixels")
	height := flag.Int("height", 400, "Simulation grid height in pixels")
	exposure := flag.Float64("exposure", 0.5, "Exposure in [0,1]")
	budget := flag.Int("budget", 2_000_000, "Total light segments to trace before stopping")
	snapshotEvery := flag.Duration("snapshot-every", 2*time.Second, "How often to write an intermediate PNG snapshot")
	list := flag.Bool("list", false, "List available demo layouts and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("lumensim - headless 2D light-transport simulator")
		fmt.Println("Usage: lumensim [options]")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	if *list {
		for _, demo := range catalogue.List() {
			fmt.Printf("%-20s %s\n", demo.ID, demo.Description)
		}
		return
	}

	layout, err := catalogue.Build(*demoID, 1, *width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outputDir := outputDirFor(*demoID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
		os.Exit(1)
	}

	sim := simulator.New(image.Point{X: *width, Y: *height}, *exposure,
		simulator.WithFinalBudget(*budget),
	)
	defer sim.Close()

	done := make(chan struct{})
	var latest *image.RGBA
	var latestSegments uint64
	snapshotChan := make(chan grid.SimulationSnapshot, 1)
	sim.SnapshotHandler(func(snap grid.SimulationSnapshot) {
		select {
		case snapshotChan <- snap:
		default:
		}
		if snap.TotalSegmentsTraced >= uint64(*budget) {
			close(done)
		}
	})

	fmt.Printf("Tracing %q at %dx%d, budget %d segments...\n", *demoID, *width, *height, *budget)
	startTime := time.Now()
	sim.Restart(layout, false)

	ticker := time.NewTicker(*snapshotEvery)
	defer ticker.Stop()

loop:
	for {
		select {
		case snap := <-snapshotChan:
			latest = snap.Image
			latestSegments = snap.TotalSegmentsTraced
		case <-ticker.C:
			if latest != nil {
				writeSnapshot(outputDir, latest, latestSegments)
			}
		case <-done:
			break loop
		}
	}

	if latest != nil {
		writeSnapshot(outputDir, latest, latestSegments)
	}
	fmt.Printf("Done in %v (%d segments traced)\n", time.Since(startTime), latestSegments)
}

func outputDirFor(demoID string) string {
	return filepath.Join("output", demoID)
}

func snapshotFilename(outputDir string, segments uint64) string {
	return filepath.Join(outputDir, fmt.Sprintf("snapshot_%010d.png", segments))
}

func writeSnapshot(outputDir string, img *image.RGBA, segments uint64) {
	filename := snapshotFilename(outputDir, segments)
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating file: %v\n", err)
		return
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		fmt.Fprintf(os.Stderr, "error saving PNG: %v\n", err)
		return
	}
	fmt.Printf("wrote %s\n", filename)
}
