package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/diag"
	"github.com/simondevenish/EmberScript/internal/vm"
)

var runCmd = &cobra.Command{
	Use:   "run <file.embc>",
	Short: "Execute a compiled chunk",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		os.Exit(3)
	}

	c, err := vm.NewFromBytes(data)
	if err != nil {
		diag.RenderErr(os.Stderr, args[0], err, true)
		os.Exit(3)
	}

	m := vm.New(c)
	if err := m.Run(func(s string) { fmt.Println(s) }); err != nil {
		diag.RenderErr(os.Stderr, args[0], err, true)
		os.Exit(2)
	}
	return nil
}
