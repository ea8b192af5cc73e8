package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simondevenish/EmberScript/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version banner",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Banner("ember"))
		return nil
	},
}
