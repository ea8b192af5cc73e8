// Command ember is the interpreter driver: it lexes, parses, compiles, and
// runs a script (or starts an interactive shell), per spec.md §6.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "Run ember scripts",
	Long:  `ember lexes, parses, compiles, and runs ember scripts on the bytecode VM or the tree-walking evaluator.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRoot,
}

func init() {
	rootCmd.PersistentFlags().String("backend", "vm", "execution backend (vm|eval)")
	rootCmd.PersistentFlags().Bool("trace", false, "print executed opcodes (vm backend only)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
