package accessor

import (
	"sort"
	"strings"

	"github.com/uswitch/typearchive/pkg/types"
)

type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

const DefaultNumberOfResults = 10

type ListOptions struct {
	SortOrder       SortOrder
	Offset          uint
	NumberOfResults uint

	// zero value lists every category
	Category types.TypeDefCategory
}

func sortByName[T any](items []T, name func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return strings.Compare(name(items[i]), name(items[j])) < 0
	})
}

// TypeDefs returns a page of type defs sorted by name.
func (a *Accessor) TypeDefs(options ListOptions) []types.Definition {
	defs := []types.Definition{}

	for _, name := range a.order {
		def := a.typeDefs[name]
		if options.Category != types.UnknownCategory && def.Base().Category != options.Category {
			continue
		}
		defs = append(defs, def)
	}

	switch options.SortOrder {
	case SortDescending:
		sort.Slice(defs, func(i, j int) bool {
			return strings.Compare(defs[i].Base().Name, defs[j].Base().Name) > 0
		})
	default:
		sortByName(defs, func(d types.Definition) string { return d.Base().Name })
	}

	if options.Offset >= uint(len(defs)) {
		return []types.Definition{}
	}

	if options.NumberOfResults == 0 {
		options.NumberOfResults = DefaultNumberOfResults
	}

	end := len(defs)
	if remaining := uint(len(defs)) - options.Offset; options.NumberOfResults < remaining {
		end = int(options.Offset + options.NumberOfResults)
	}

	return defs[options.Offset:end]
}

// All returns every type def in the order it was first declared.
func (a *Accessor) All() []types.Definition {
	out := make([]types.Definition, len(a.order))
	for idx, name := range a.order {
		out[idx] = a.typeDefs[name]
	}
	return out
}

// Count returns how many type defs TypeDefs would page through for category.
func (a *Accessor) Count(category types.TypeDefCategory) int {
	if category == types.UnknownCategory {
		return len(a.order)
	}

	n := 0
	for _, name := range a.order {
		if a.typeDefs[name].Base().Category == category {
			n++
		}
	}
	return n
}
