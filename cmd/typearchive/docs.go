package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/docs"
)

var (
	docsFormat string
	docsOutput string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Write a reference of the archive's types in markdown or HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		render := docs.Markdown
		switch docsFormat {
		case "md", "markdown":
		case "html":
			render = docs.HTML
		default:
			return fmt.Errorf("unknown docs format '%s'", docsFormat)
		}

		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if docsOutput != "" && docsOutput != "-" {
			f, err := os.Create(docsOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		return render(out, acc)
	},
}

func init() {
	docsCmd.Flags().StringVar(&docsFormat, "format", "md", "md or html")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "-", "file to write to")

	rootCmd.AddCommand(docsCmd)
}
