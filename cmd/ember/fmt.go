package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fmtCmd is a reserved, no-op placeholder: source formatting is an explicit
// Non-goal of the core toolchain (spec.md §1). It exists only so that
// `ember fmt` gives a clear diagnostic instead of "unknown command".
var fmtCmd = &cobra.Command{
	Use:   "fmt <script>",
	Short: "Not supported",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("ember fmt: source formatting is not implemented")
	},
}
