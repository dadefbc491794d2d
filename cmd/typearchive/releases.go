package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/releases"
)

var releasesCmd = &cobra.Command{
	Use:   "releases",
	Short: "List the built in releases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		fmt.Fprintln(w, "VERSION\tGUID\tCREATED\tDESCRIPTION")
		for _, r := range releases.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Version, r.GUID, r.CreationDate.Format("2006-01-02"), r.Description)
		}

		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(releasesCmd)
}
