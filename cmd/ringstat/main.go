// Package main provides the ringstat CLI tool.
//
// ringstat drives synthetic allocate/complete workloads through the
// ringstage staging uploader and reports how the rings behave under load.
//
// Usage:
//
//	ringstat [flags] <command>
//
// Commands:
//
//	simulate - run a workload and print a summary
//	trace    - run a workload and print per-frame state
//	version  - print version information
package main

import (
	"fmt"
	"os"

	"github.com/vramlabs/ringstage/cmd/ringstat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
