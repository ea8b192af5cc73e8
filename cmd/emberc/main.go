// Command emberc is the bytecode tool: it compiles scripts to .embc chunk
// files (or native executables), runs a previously compiled chunk, and
// disassembles one for inspection, per spec.md §6.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "emberc",
	Short:   "Compile, run, and disassemble ember bytecode",
	Version: version.Version,
	Args:    cobra.ArbitraryArgs,
	// emberc <file> is emberc compile <file>: an unrecognized first
	// positional argument is treated as a file to compile rather than an
	// error.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return compileCmd.RunE(compileCmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(disasmCmd)
	// Share compileCmd's flags with the root so `emberc <file> -o out` works
	// through the fallback dispatch above, exactly as `emberc compile <file>
	// -o out` does.
	rootCmd.Flags().AddFlagSet(compileCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
