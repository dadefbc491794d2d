package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/types"
)

var (
	buildFormat string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a release archive and write it as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := types.ParseFormat(buildFormat)
		if err != nil {
			return err
		}

		a, err := loadArchive()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if buildOutput != "" && buildOutput != "-" {
			f, err := os.Create(buildOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := types.EncodeArchive(out, a, format); err != nil {
			return fmt.Errorf("writing archive: %w", err)
		}

		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", string(types.JSON), "json or yaml")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "-", "file to write to")

	rootCmd.AddCommand(buildCmd)
}
