package accessor

import (
	"fmt"

	"github.com/uswitch/typearchive/pkg/types"
)

func (a *Accessor) InheritsFrom(name, super string) bool {
	seen := map[string]bool{}

	for typeName := name; typeName != "" && !seen[typeName]; typeName = a.parent[typeName] {
		if typeName == super {
			return true
		}
		seen[typeName] = true
	}

	return false
}

// SuperTypes returns the chain of super types of name, nearest first, excluding name.
func (a *Accessor) SuperTypes(name string) ([]types.Definition, error) {
	if _, err := a.TypeDef(name); err != nil {
		return nil, err
	}

	out := []types.Definition{}
	seen := map[string]bool{name: true}

	for typeName := a.parent[name]; typeName != ""; typeName = a.parent[typeName] {
		if seen[typeName] {
			return nil, fmt.Errorf("%s has a cycle in its super types at %s", name, typeName)
		}
		seen[typeName] = true

		def, err := a.TypeDef(typeName)
		if err != nil {
			return nil, err
		}

		out = append(out, def)
	}

	return out, nil
}

func (a *Accessor) SubTypes(name string) []types.Definition {
	out := []types.Definition{}

	for _, child := range a.children[name] {
		out = append(out, a.typeDefs[child])
	}

	return out
}

// Attributes returns the attributes of name and all its super types. When a subtype
// redeclares an attribute the nearest declaration wins.
func (a *Accessor) Attributes(name string, includeDeprecated bool) ([]types.TypeDefAttribute, error) {
	def, err := a.TypeDef(name)
	if err != nil {
		return nil, err
	}

	supers, err := a.SuperTypes(name)
	if err != nil {
		return nil, err
	}

	out := []types.TypeDefAttribute{}
	seen := map[string]bool{}

	for _, typ := range append([]types.Definition{def}, supers...) {
		for _, attr := range typ.Base().Properties {
			if seen[attr.Name] {
				continue
			}
			seen[attr.Name] = true

			if attr.Deprecated() && !includeDeprecated {
				continue
			}

			out = append(out, attr)
		}
	}

	return out, nil
}

// RelationshipsFor returns the relationship defs that can attach to an entity of the given
// type, including those declared against its super types.
func (a *Accessor) RelationshipsFor(entityName string) ([]*types.RelationshipDef, error) {
	if _, err := a.EntityDef(entityName); err != nil {
		return nil, err
	}

	out := []*types.RelationshipDef{}

	for _, name := range a.order {
		rel, ok := a.typeDefs[name].(*types.RelationshipDef)
		if !ok {
			continue
		}

		for _, end := range rel.Ends() {
			if a.InheritsFrom(entityName, end.EntityType.Name) {
				out = append(out, rel)
				break
			}
		}
	}

	sortByName(out, func(r *types.RelationshipDef) string { return r.Name })

	return out, nil
}

func (a *Accessor) ClassificationsFor(entityName string) ([]*types.ClassificationDef, error) {
	if _, err := a.EntityDef(entityName); err != nil {
		return nil, err
	}

	out := []*types.ClassificationDef{}

	for _, name := range a.order {
		classification, ok := a.typeDefs[name].(*types.ClassificationDef)
		if !ok {
			continue
		}

		for _, valid := range classification.ValidEntityDefs {
			if a.InheritsFrom(entityName, valid.Name) {
				out = append(out, classification)
				break
			}
		}
	}

	sortByName(out, func(c *types.ClassificationDef) string { return c.Name })

	return out, nil
}
