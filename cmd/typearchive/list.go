package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

var (
	listCategory   string
	listLimit      uint
	listOffset     uint
	listDescending bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the type defs of an archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		options := accessor.ListOptions{
			Offset:          listOffset,
			NumberOfResults: listLimit,
		}

		if listCategory != "" {
			if options.Category, err = types.ParseTypeDefCategory(listCategory); err != nil {
				return err
			}
		}

		if listDescending {
			options.SortOrder = accessor.SortDescending
		}
		if options.NumberOfResults == 0 {
			options.NumberOfResults = uint(acc.Count(options.Category))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

		fmt.Fprintln(w, "NAME\tCATEGORY\tGUID\tVERSION\tSTATUS\tSUPER TYPE")
		for _, def := range acc.TypeDefs(options) {
			base := def.Base()

			super := "-"
			if base.SuperType != nil {
				super = base.SuperType.Name
			}

			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", base.Name, base.Category, base.GUID, base.Version, base.Status, super)
		}

		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only list entity, relationship or classification type defs")
	listCmd.Flags().UintVar(&listLimit, "limit", 0, "how many to list, all of them if 0")
	listCmd.Flags().UintVar(&listOffset, "offset", 0, "how many to skip")
	listCmd.Flags().BoolVar(&listDescending, "descending", false, "sort by name descending")

	rootCmd.AddCommand(listCmd)
}
