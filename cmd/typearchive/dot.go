package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

var (
	rootName          string
	searchDepth       int
	withRelationships bool
	withDeprecated    bool
)

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Output the type hierarchy in dot format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		return writeDot(cmd.OutOrStdout(), acc)
	},
}

func writeDot(w io.Writer, acc *accessor.Accessor) error {
	included := map[string]bool{}

	if rootName == "" {
		for _, def := range acc.All() {
			included[def.Base().Name] = true
		}
	} else {
		if _, err := acc.TypeDef(rootName); err != nil {
			return err
		}

		var walk func(name string, depth int)
		walk = func(name string, depth int) {
			included[name] = true
			if searchDepth >= 0 && depth >= searchDepth {
				return
			}
			for _, sub := range acc.SubTypes(name) {
				walk(sub.Base().Name, depth+1)
			}
		}
		walk(rootName, 0)
	}

	visible := func(def types.Definition) bool {
		base := def.Base()
		return included[base.Name] && (withDeprecated || base.Status != types.DeprecatedTypeDef)
	}

	fmt.Fprintln(w, "digraph {")

	for _, def := range acc.All() {
		if !visible(def) {
			continue
		}
		base := def.Base()

		switch typed := def.(type) {
		case *types.EntityDef:
			if base.SuperType != nil && included[base.SuperType.Name] {
				fmt.Fprintf(w, "  \"%s\" -> \"%s\";\n", base.Name, base.SuperType.Name)
			}
		case *types.RelationshipDef:
			if !withRelationships {
				continue
			}
			end1, end2 := typed.EndDef1.EntityType.Name, typed.EndDef2.EntityType.Name
			if included[end1] && included[end2] {
				fmt.Fprintf(w, "  \"%s\" -> \"%s\" [label=\"%s\", style=dashed, dir=none];\n", end1, end2, base.Name)
			}
		}
	}

	fmt.Fprintln(w, "}")

	return nil
}

func init() {
	dotCmd.Flags().StringVar(&rootName, "root", "", "only draw this type and its subtypes")
	dotCmd.Flags().IntVar(&searchDepth, "search-depth", -1, "how many levels of subtypes to draw below the root, -1 for all")
	dotCmd.Flags().BoolVar(&withRelationships, "relationships", false, "draw relationship defs between their end types")
	dotCmd.Flags().BoolVar(&withDeprecated, "deprecated", true, "draw deprecated types")

	rootCmd.AddCommand(dotCmd)
}
