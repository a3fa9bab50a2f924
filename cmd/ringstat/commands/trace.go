package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vramlabs/ringstage/internal/sim"
	"github.com/vramlabs/ringstage/pkg/serial"
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Run a synthetic workload and print per-frame state",
	Long: `Run the same workload as 'simulate' but print one line per frame
with the highest completed serial and the total staging size, for
debugging ring growth and reclaim behavior.

Example:
  ringstat trace --frames 120 --lag 3 | less`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := workloadConfig()
		if err != nil {
			return err
		}

		st, err := sim.Run(cfg, func(frame int, completed serial.Serial, staging uint64) {
			fmt.Printf("frame %5d  completed %5d  staging %s\n",
				frame, uint64(completed), humanize.IBytes(staging))
		})
		if err != nil {
			return err
		}

		fmt.Printf("done: %d allocations, peak staging %s\n",
			st.Allocations, humanize.IBytes(st.PeakStaging))
		return nil
	},
}

func init() {
	addWorkloadFlags(traceCmd)
	rootCmd.AddCommand(traceCmd)
}
