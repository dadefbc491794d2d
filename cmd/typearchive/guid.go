package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/types"
)

var guidCount int

var guidCmd = &cobra.Command{
	Use:   "guid",
	Short: "Mint GUIDs for new type defs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if guidCount < 1 {
			return fmt.Errorf("count must be at least 1, got %d", guidCount)
		}

		for i := 0; i < guidCount; i++ {
			fmt.Fprintln(cmd.OutOrStdout(), types.NewGUID())
		}

		return nil
	},
}

func init() {
	guidCmd.Flags().IntVarP(&guidCount, "count", "n", 1, "how many GUIDs to print")

	rootCmd.AddCommand(guidCmd)
}
