package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vramlabs/ringstage/internal/sim"
)

// Shared workload flags for simulate and trace. Only one command runs per
// invocation, so a single set of variables is enough.
var workload = struct {
	ringSize  string
	frames    int
	allocs    int
	minAlloc  string
	maxAlloc  string
	alignment uint64
	lag       int
	seed      uint32
}{}

func addWorkloadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&workload.ringSize, "ring-size", "4MiB", "capacity of each staging ring")
	f.IntVar(&workload.frames, "frames", 600, "number of simulated frames")
	f.IntVar(&workload.allocs, "allocs", 64, "allocations per frame")
	f.StringVar(&workload.minAlloc, "min-alloc", "256B", "minimum allocation size")
	f.StringVar(&workload.maxAlloc, "max-alloc", "16KiB", "maximum allocation size")
	f.Uint64Var(&workload.alignment, "alignment", 4, "allocation offset alignment (power of two)")
	f.IntVar(&workload.lag, "lag", 2, "frames a serial stays in flight before completing")
	f.Uint32Var(&workload.seed, "seed", 1, "workload RNG seed")
}

// workloadConfig parses the size flags and assembles the sim config.
func workloadConfig() (sim.Config, error) {
	ringSize, err := humanize.ParseBytes(workload.ringSize)
	if err != nil {
		return sim.Config{}, fmt.Errorf("invalid --ring-size: %w", err)
	}
	minAlloc, err := humanize.ParseBytes(workload.minAlloc)
	if err != nil {
		return sim.Config{}, fmt.Errorf("invalid --min-alloc: %w", err)
	}
	maxAlloc, err := humanize.ParseBytes(workload.maxAlloc)
	if err != nil {
		return sim.Config{}, fmt.Errorf("invalid --max-alloc: %w", err)
	}

	cfg := sim.Config{
		RingSize:       ringSize,
		Frames:         workload.frames,
		AllocsPerFrame: workload.allocs,
		MinAlloc:       minAlloc,
		MaxAlloc:       maxAlloc,
		Alignment:      workload.alignment,
		CompletionLag:  workload.lag,
		Seed:           workload.seed,
	}
	return cfg, cfg.Validate()
}
