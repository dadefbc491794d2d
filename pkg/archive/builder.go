package archive

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/types"
)

// Builder accumulates the definitions of an archive. Definitions are kept exactly as they
// were added; patches are recorded alongside them and also applied to a working view so
// that later patches and lookups see the current version of each type.
type Builder struct {
	properties types.ArchiveProperties
	store      types.ArchiveTypeStore

	guids                map[types.GUID]string
	attributeTypes       map[string]types.AttributeType
	attributeTypesByGUID map[types.GUID]types.AttributeType
	typeDefs             map[string]types.Definition

	logger *zap.Logger
}

type Option func(*Builder)

func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

func NewBuilder(properties types.ArchiveProperties, opts ...Option) *Builder {
	b := &Builder{
		properties:           properties,
		guids:                map[types.GUID]string{},
		attributeTypes:       map[string]types.AttributeType{},
		attributeTypesByGUID: map[types.GUID]types.AttributeType{},
		typeDefs:             map[string]types.Definition{},
		logger:               zap.NewNop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Builder) Properties() types.ArchiveProperties { return b.properties }

func (b *Builder) claimGUID(guid types.GUID, name string) error {
	if err := guid.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidGUID, name, err)
	}
	if other, ok := b.guids[guid]; ok {
		return fmt.Errorf("%w: %s is already used by %s", ErrDuplicateGUID, guid, other)
	}
	return nil
}

func (b *Builder) checkAttributeType(header *types.AttributeTypeDef) error {
	if header.Name == "" {
		return fmt.Errorf("%w: attribute type %s", ErrMissingName, header.GUID)
	}
	if err := b.claimGUID(header.GUID, header.Name); err != nil {
		return err
	}
	if _, ok := b.attributeTypes[header.Name]; ok {
		return fmt.Errorf("%w: attribute type %s", ErrDuplicateName, header.Name)
	}
	return nil
}

func (b *Builder) addAttributeType(attrType types.AttributeType) {
	header := attrType.Header()

	b.guids[header.GUID] = header.Name
	b.attributeTypes[header.Name] = attrType
	b.attributeTypesByGUID[header.GUID] = attrType

	b.logger.Debug("added attribute type",
		zap.String("name", header.Name),
		zap.String("guid", header.GUID.String()),
		zap.Stringer("category", header.Category),
	)
}

func (b *Builder) AddPrimitiveDef(def *types.PrimitiveDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if def.Category != types.PrimitiveCategory {
		return fmt.Errorf("%w: %s is a %s, not a primitive", ErrCategoryMismatch, def.Name, def.Category)
	}
	if err := b.checkAttributeType(&def.AttributeTypeDef); err != nil {
		return err
	}

	b.store.PrimitiveDefs = append(b.store.PrimitiveDefs, def)
	b.addAttributeType(def)

	return nil
}

func (b *Builder) AddCollectionDef(def *types.CollectionDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if def.Category != types.CollectionCategory {
		return fmt.Errorf("%w: %s is a %s, not a collection", ErrCategoryMismatch, def.Name, def.Category)
	}
	if err := b.checkAttributeType(&def.AttributeTypeDef); err != nil {
		return err
	}

	b.store.CollectionDefs = append(b.store.CollectionDefs, def)
	b.addAttributeType(def)

	return nil
}

func (b *Builder) AddEnumDef(def *types.EnumDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if def.Category != types.EnumCategory {
		return fmt.Errorf("%w: %s is a %s, not an enum", ErrCategoryMismatch, def.Name, def.Category)
	}
	if err := b.checkAttributeType(&def.AttributeTypeDef); err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, el := range def.Elements {
		if seen[el.Value] {
			return fmt.Errorf("%w: enum %s has value %s twice", ErrDuplicateName, def.Name, el.Value)
		}
		seen[el.Value] = true
	}

	b.store.EnumDefs = append(b.store.EnumDefs, def)
	b.addAttributeType(def)

	return nil
}

func (b *Builder) checkAttributes(owner string, attrs []types.TypeDefAttribute) error {
	seen := map[string]bool{}

	for _, attr := range attrs {
		if attr.Name == "" {
			return fmt.Errorf("%w: attribute of %s", ErrMissingName, owner)
		}
		if seen[attr.Name] {
			return fmt.Errorf("%w: %s declares attribute %s twice", ErrDuplicateName, owner, attr.Name)
		}
		seen[attr.Name] = true

		attrType, ok := b.attributeTypesByGUID[attr.Type.GUID]
		if !ok || attrType.Header().Name != attr.Type.Name {
			return fmt.Errorf("%w: attribute %s.%s has type %s (%s)", ErrUnknownType, owner, attr.Name, attr.Type.Name, attr.Type.GUID)
		}
	}

	return nil
}

func (b *Builder) checkEntityLink(owner string, link types.TypeDefLink) error {
	def, ok := b.typeDefs[link.Name]
	if !ok || def.Base().GUID != link.GUID {
		return fmt.Errorf("%w: %s refers to entity %s (%s)", ErrUnknownType, owner, link.Name, link.GUID)
	}
	if def.Base().Category != types.EntityCategory {
		return fmt.Errorf("%w: %s refers to %s which is a %s", ErrCategoryMismatch, owner, link.Name, def.Base().Category)
	}
	return nil
}

func (b *Builder) checkTypeDef(def *types.TypeDef, category types.TypeDefCategory) error {
	if def.Category != category {
		return fmt.Errorf("%w: %s is a %s, not a %s", ErrCategoryMismatch, def.Name, def.Category, category)
	}
	if def.Name == "" {
		return fmt.Errorf("%w: type def %s", ErrMissingName, def.GUID)
	}
	if err := b.claimGUID(def.GUID, def.Name); err != nil {
		return err
	}
	if _, ok := b.typeDefs[def.Name]; ok {
		return fmt.Errorf("%w: type def %s", ErrDuplicateName, def.Name)
	}

	if def.SuperType != nil {
		super, ok := b.typeDefs[def.SuperType.Name]
		if !ok || super.Base().GUID != def.SuperType.GUID {
			return fmt.Errorf("%w: super type %s (%s) of %s", ErrUnknownType, def.SuperType.Name, def.SuperType.GUID, def.Name)
		}
		if super.Base().Category != category {
			return fmt.Errorf("%w: %s %s cannot extend %s %s", ErrCategoryMismatch, category, def.Name, super.Base().Category, super.Base().Name)
		}
	}

	return b.checkAttributes(def.Name, def.Properties)
}

func (b *Builder) addTypeDef(def types.Definition) {
	base := def.Base()

	b.guids[base.GUID] = base.Name
	b.typeDefs[base.Name] = def.Clone()

	b.logger.Debug("added type def",
		zap.String("name", base.Name),
		zap.String("guid", base.GUID.String()),
		zap.Stringer("category", base.Category),
		zap.Int("attributes", len(base.Properties)),
	)
}

func (b *Builder) AddEntityDef(def *types.EntityDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if err := b.checkTypeDef(&def.TypeDef, types.EntityCategory); err != nil {
		return err
	}

	b.store.EntityDefs = append(b.store.EntityDefs, def)
	b.addTypeDef(def)

	return nil
}

func (b *Builder) AddRelationshipDef(def *types.RelationshipDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if err := b.checkTypeDef(&def.TypeDef, types.RelationshipCategory); err != nil {
		return err
	}
	for _, end := range def.Ends() {
		if err := b.checkEntityLink(def.Name, end.EntityType); err != nil {
			return err
		}
	}
	if def.EndDef1.AttributeName == def.EndDef2.AttributeName && def.EndDef1.EntityType.GUID == def.EndDef2.EntityType.GUID {
		return fmt.Errorf("%w: both ends of %s are called %s", ErrDuplicateName, def.Name, def.EndDef1.AttributeName)
	}

	b.store.RelationshipDefs = append(b.store.RelationshipDefs, def)
	b.addTypeDef(def)

	return nil
}

func (b *Builder) AddClassificationDef(def *types.ClassificationDef) error {
	if def == nil {
		return ErrNilDefinition
	}
	if err := b.checkTypeDef(&def.TypeDef, types.ClassificationCategory); err != nil {
		return err
	}
	for _, link := range def.ValidEntityDefs {
		if err := b.checkEntityLink(def.Name, link); err != nil {
			return err
		}
	}

	b.store.ClassificationDefs = append(b.store.ClassificationDefs, def)
	b.addTypeDef(def)

	return nil
}

// AddTypeDefPatch records a patch and moves the working view of its type forward. A patch
// must apply to the type's current version, so patches to the same type chain in order.
func (b *Builder) AddTypeDefPatch(patch *types.TypeDefPatch) error {
	if patch == nil {
		return ErrNilDefinition
	}

	current, ok := b.typeDefs[patch.TypeDefName]
	if !ok {
		return fmt.Errorf("%w: patch for %s (%s)", ErrUnknownType, patch.TypeDefName, patch.TypeDefGUID)
	}

	owner := fmt.Sprintf("patch %d of %s", patch.UpdateToVersion, patch.TypeDefName)

	if err := b.checkAttributes(owner, patch.Properties); err != nil {
		return err
	}
	for _, link := range patch.ValidEntityDefs {
		if err := b.checkEntityLink(owner, link); err != nil {
			return err
		}
	}
	for _, end := range []*types.RelationshipEndDef{patch.EndDef1, patch.EndDef2} {
		if end != nil {
			if err := b.checkEntityLink(owner, end.EntityType); err != nil {
				return err
			}
		}
	}

	patched, err := patch.Apply(current)
	if err != nil {
		return err
	}

	b.store.TypeDefPatches = append(b.store.TypeDefPatches, patch)
	b.typeDefs[patch.TypeDefName] = patched

	b.logger.Debug("added type def patch",
		zap.String("name", patch.TypeDefName),
		zap.Int64("from", patch.ApplyToVersion),
		zap.Int64("to", patch.UpdateToVersion),
		zap.Int("attributes", len(patch.Properties)),
	)

	return nil
}

func (b *Builder) getTypeDef(name string, category types.TypeDefCategory) (types.Definition, error) {
	def, ok := b.typeDefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownType, category, name)
	}
	if def.Base().Category != category {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrCategoryMismatch, name, def.Base().Category, category)
	}
	return def.Clone(), nil
}

// GetTypeDef returns a copy of the current, patched, definition.
func (b *Builder) GetTypeDef(name string) (types.Definition, error) {
	def, ok := b.typeDefs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return def.Clone(), nil
}

func (b *Builder) GetEntityDef(name string) (*types.EntityDef, error) {
	def, err := b.getTypeDef(name, types.EntityCategory)
	if err != nil {
		return nil, err
	}
	return def.(*types.EntityDef), nil
}

func (b *Builder) GetRelationshipDef(name string) (*types.RelationshipDef, error) {
	def, err := b.getTypeDef(name, types.RelationshipCategory)
	if err != nil {
		return nil, err
	}
	return def.(*types.RelationshipDef), nil
}

func (b *Builder) GetClassificationDef(name string) (*types.ClassificationDef, error) {
	def, err := b.getTypeDef(name, types.ClassificationCategory)
	if err != nil {
		return nil, err
	}
	return def.(*types.ClassificationDef), nil
}

func (b *Builder) GetAttributeTypeDef(name string) (types.AttributeType, error) {
	attrType, ok := b.attributeTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: attribute type %s", ErrUnknownType, name)
	}
	return attrType, nil
}

func (b *Builder) GetPrimitiveDef(name string) (*types.PrimitiveDef, error) {
	attrType, err := b.GetAttributeTypeDef(name)
	if err != nil {
		return nil, err
	}
	def, ok := attrType.(*types.PrimitiveDef)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a primitive", ErrCategoryMismatch, name)
	}
	return def, nil
}

func (b *Builder) GetCollectionDef(name string) (*types.CollectionDef, error) {
	attrType, err := b.GetAttributeTypeDef(name)
	if err != nil {
		return nil, err
	}
	def, ok := attrType.(*types.CollectionDef)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a collection", ErrCategoryMismatch, name)
	}
	return def, nil
}

func (b *Builder) GetEnumDef(name string) (*types.EnumDef, error) {
	attrType, err := b.GetAttributeTypeDef(name)
	if err != nil {
		return nil, err
	}
	def, ok := attrType.(*types.EnumDef)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an enum", ErrCategoryMismatch, name)
	}
	return def, nil
}

// TypeDefVersion is the version of a type after every patch added so far.
func (b *Builder) TypeDefVersion(name string) (types.TypeDefLink, int64, error) {
	def, ok := b.typeDefs[name]
	if !ok {
		return types.TypeDefLink{}, 0, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return def.Base().Link(), def.Base().Version, nil
}

func (b *Builder) Archive() *types.Archive {
	return &types.Archive{
		Properties: b.properties,
		TypeStore: types.ArchiveTypeStore{
			PrimitiveDefs:      append([]*types.PrimitiveDef(nil), b.store.PrimitiveDefs...),
			CollectionDefs:     append([]*types.CollectionDef(nil), b.store.CollectionDefs...),
			EnumDefs:           append([]*types.EnumDef(nil), b.store.EnumDefs...),
			EntityDefs:         append([]*types.EntityDef(nil), b.store.EntityDefs...),
			RelationshipDefs:   append([]*types.RelationshipDef(nil), b.store.RelationshipDefs...),
			ClassificationDefs: append([]*types.ClassificationDef(nil), b.store.ClassificationDefs...),
			TypeDefPatches:     append([]*types.TypeDefPatch(nil), b.store.TypeDefPatches...),
		},
	}
}
