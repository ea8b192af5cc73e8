package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/chunk"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <file.embc>",
	Short: "Dump a human-readable instruction listing for a compiled chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisasm,
}

func runDisasm(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		os.Exit(3)
	}

	c, err := chunk.Read(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	fmt.Print(chunk.Disassemble(c))
	return nil
}
