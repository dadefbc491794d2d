package main

import (
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var showInherited bool

var showCmd = &cobra.Command{
	Use:   "show NAME...",
	Short: "Print type defs or attribute types with every field",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		for _, name := range args {
			if attrType, err := acc.AttributeType(name); err == nil {
				pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", attrType)
				continue
			}

			def, err := acc.TypeDef(name)
			if err != nil {
				return err
			}

			pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", def)

			if showInherited {
				attributes, err := acc.Attributes(name, true)
				if err != nil {
					return err
				}
				pretty.Fprintf(cmd.OutOrStdout(), "%# v\n", attributes)
			}
		}

		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showInherited, "inherited", false, "also print every attribute including those of super types")

	rootCmd.AddCommand(showCmd)
}
