package accessor

import (
	"errors"
	"fmt"

	"github.com/uswitch/typearchive/pkg/types"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidArchive = errors.New("invalid archive")
)

// Accessor is a read-only view of an archive with every patch applied. Definitions are
// indexed by name and by GUID; when two definitions share a key the later one wins.
type Accessor struct {
	properties types.ArchiveProperties

	typeDefs       map[string]types.Definition
	typeDefsByGUID map[types.GUID]types.Definition

	attributeTypes       map[string]types.AttributeType
	attributeTypesByGUID map[types.GUID]types.AttributeType

	parent   map[string]string
	children map[string][]string

	// names in the order they were first seen, used for stable listings
	order []string
}

func firstNil[T any](defs []*T) int {
	for idx, def := range defs {
		if def == nil {
			return idx
		}
	}
	return -1
}

func checkNoNils(ts types.ArchiveTypeStore) error {
	checks := []struct {
		kind string
		idx  int
	}{
		{"primitive def", firstNil(ts.PrimitiveDefs)},
		{"collection def", firstNil(ts.CollectionDefs)},
		{"enum def", firstNil(ts.EnumDefs)},
		{"entity def", firstNil(ts.EntityDefs)},
		{"relationship def", firstNil(ts.RelationshipDefs)},
		{"classification def", firstNil(ts.ClassificationDefs)},
		{"type def patch", firstNil(ts.TypeDefPatches)},
	}

	for _, check := range checks {
		if check.idx >= 0 {
			return fmt.Errorf("%w: %s %d is null", ErrInvalidArchive, check.kind, check.idx)
		}
	}
	return nil
}

// New rejects archives with null definitions, patches that do not apply, super types
// that are not in the archive and cycles in the type hierarchy.
func New(archive *types.Archive) (*Accessor, error) {
	if archive == nil {
		return nil, fmt.Errorf("%w: archive is null", ErrInvalidArchive)
	}
	if err := checkNoNils(archive.TypeStore); err != nil {
		return nil, err
	}

	a := &Accessor{
		properties:           archive.Properties,
		typeDefs:             map[string]types.Definition{},
		typeDefsByGUID:       map[types.GUID]types.Definition{},
		attributeTypes:       map[string]types.AttributeType{},
		attributeTypesByGUID: map[types.GUID]types.AttributeType{},
		parent:               map[string]string{},
		children:             map[string][]string{},
	}

	ts := archive.TypeStore

	for _, def := range ts.PrimitiveDefs {
		a.putAttributeType(def)
	}
	for _, def := range ts.CollectionDefs {
		a.putAttributeType(def)
	}
	for _, def := range ts.EnumDefs {
		a.putAttributeType(def)
	}

	for _, def := range ts.EntityDefs {
		a.putTypeDef(def.Clone())
	}
	for _, def := range ts.RelationshipDefs {
		a.putTypeDef(def.Clone())
	}
	for _, def := range ts.ClassificationDefs {
		a.putTypeDef(def.Clone())
	}

	for _, patch := range ts.TypeDefPatches {
		current, ok := a.typeDefs[patch.TypeDefName]
		if !ok {
			return nil, fmt.Errorf("%w: patch %d of %s: %w", ErrInvalidArchive, patch.UpdateToVersion, patch.TypeDefName, ErrNotFound)
		}

		patched, err := patch.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}

		a.putTypeDef(patched)
	}

	if err := a.index(); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Accessor) putAttributeType(attrType types.AttributeType) {
	header := attrType.Header()

	a.attributeTypes[header.Name] = attrType
	a.attributeTypesByGUID[header.GUID] = attrType
}

func (a *Accessor) putTypeDef(def types.Definition) {
	base := def.Base()

	if _, ok := a.typeDefs[base.Name]; !ok {
		a.order = append(a.order, base.Name)
	}

	a.typeDefs[base.Name] = def
	a.typeDefsByGUID[base.GUID] = def
}

func (a *Accessor) index() error {
	a.parent = map[string]string{}
	a.children = map[string][]string{}

	for _, name := range a.order {
		def := a.typeDefs[name]
		if super := def.Base().SuperType; super != nil {
			if _, ok := a.typeDefs[super.Name]; !ok {
				return fmt.Errorf("%w: super type %s of %s: %w", ErrInvalidArchive, super.Name, name, ErrNotFound)
			}
			a.parent[name] = super.Name
			a.children[super.Name] = append(a.children[super.Name], name)
		}
	}

	for _, name := range a.order {
		seen := map[string]bool{}
		for typeName := name; typeName != ""; typeName = a.parent[typeName] {
			if seen[typeName] {
				return fmt.Errorf("%w: %s has a cycle in its super types at %s", ErrInvalidArchive, name, typeName)
			}
			seen[typeName] = true
		}
	}

	return nil
}

func (a *Accessor) Properties() types.ArchiveProperties { return a.properties }

func (a *Accessor) Len() int { return len(a.order) }

func (a *Accessor) TypeDef(name string) (types.Definition, error) {
	if def, ok := a.typeDefs[name]; !ok {
		return nil, fmt.Errorf("type def %s: %w", name, ErrNotFound)
	} else {
		return def, nil
	}
}

func (a *Accessor) TypeDefByGUID(guid types.GUID) (types.Definition, error) {
	if def, ok := a.typeDefsByGUID[guid]; !ok {
		return nil, fmt.Errorf("type def %s: %w", guid, ErrNotFound)
	} else {
		return def, nil
	}
}

func typed[T types.Definition](def types.Definition, err error, category types.TypeDefCategory) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}

	out, ok := def.(T)
	if !ok {
		return zero, fmt.Errorf("%s is a %s, not a %s: %w", def.Base().Name, def.Base().Category, category, ErrNotFound)
	}

	return out, nil
}

func (a *Accessor) EntityDef(name string) (*types.EntityDef, error) {
	def, err := a.TypeDef(name)
	return typed[*types.EntityDef](def, err, types.EntityCategory)
}

func (a *Accessor) EntityDefByGUID(guid types.GUID) (*types.EntityDef, error) {
	def, err := a.TypeDefByGUID(guid)
	return typed[*types.EntityDef](def, err, types.EntityCategory)
}

func (a *Accessor) RelationshipDef(name string) (*types.RelationshipDef, error) {
	def, err := a.TypeDef(name)
	return typed[*types.RelationshipDef](def, err, types.RelationshipCategory)
}

func (a *Accessor) RelationshipDefByGUID(guid types.GUID) (*types.RelationshipDef, error) {
	def, err := a.TypeDefByGUID(guid)
	return typed[*types.RelationshipDef](def, err, types.RelationshipCategory)
}

func (a *Accessor) ClassificationDef(name string) (*types.ClassificationDef, error) {
	def, err := a.TypeDef(name)
	return typed[*types.ClassificationDef](def, err, types.ClassificationCategory)
}

func (a *Accessor) ClassificationDefByGUID(guid types.GUID) (*types.ClassificationDef, error) {
	def, err := a.TypeDefByGUID(guid)
	return typed[*types.ClassificationDef](def, err, types.ClassificationCategory)
}

func (a *Accessor) AttributeType(name string) (types.AttributeType, error) {
	if attrType, ok := a.attributeTypes[name]; !ok {
		return nil, fmt.Errorf("attribute type %s: %w", name, ErrNotFound)
	} else {
		return attrType, nil
	}
}

func (a *Accessor) AttributeTypeByGUID(guid types.GUID) (types.AttributeType, error) {
	if attrType, ok := a.attributeTypesByGUID[guid]; !ok {
		return nil, fmt.Errorf("attribute type %s: %w", guid, ErrNotFound)
	} else {
		return attrType, nil
	}
}

func (a *Accessor) EnumDef(name string) (*types.EnumDef, error) {
	attrType, err := a.AttributeType(name)
	if err != nil {
		return nil, err
	}

	enum, ok := attrType.(*types.EnumDef)
	if !ok {
		return nil, fmt.Errorf("%s is not an enum: %w", name, ErrNotFound)
	}

	return enum, nil
}

func (a *Accessor) EnumDefs() []*types.EnumDef {
	out := []*types.EnumDef{}
	for _, attrType := range a.attributeTypes {
		if enum, ok := attrType.(*types.EnumDef); ok {
			out = append(out, enum)
		}
	}
	sortByName(out, func(e *types.EnumDef) string { return e.Name })
	return out
}
