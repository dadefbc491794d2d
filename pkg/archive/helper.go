package archive

import (
	"fmt"
	"time"

	"github.com/uswitch/typearchive/pkg/types"
)

// Helper builds definitions stamped with one release's originator, creation date and
// archive GUID, and adds them to a Builder.
//
// The first error is kept and every later call becomes a no-op, so a release can declare
// all of its definitions and check Err once at the end.
type Helper struct {
	builder *Builder

	origin       types.GUID
	originator   string
	creationDate time.Time

	err error
}

func NewHelper(b *Builder, origin types.GUID, originator string, creationDate time.Time) *Helper {
	return &Helper{
		builder:      b,
		origin:       origin,
		originator:   originator,
		creationDate: creationDate,
	}
}

func (h *Helper) Builder() *Builder { return h.builder }

func (h *Helper) Err() error { return h.err }

func (h *Helper) fail(err error) {
	if h.err == nil && err != nil {
		h.err = err
	}
}

func (h *Helper) typeDef(category types.TypeDefCategory, guid, name, superTypeName, description, descriptionGUID string) types.TypeDef {
	def := types.TypeDef{
		Category:        category,
		GUID:            types.GUID(guid),
		Name:            name,
		Status:          types.ActiveTypeDef,
		Version:         1,
		VersionName:     "1.0",
		CreatedBy:       h.originator,
		CreateTime:      h.creationDate,
		Description:     description,
		DescriptionGUID: types.GUID(descriptionGUID),
		Origin:          h.origin,
	}

	if superTypeName != "" && h.err == nil {
		link, _, err := h.builder.TypeDefVersion(superTypeName)
		if err != nil {
			h.fail(fmt.Errorf("super type of %s: %w", name, err))
		} else {
			def.SuperType = &link
		}
	}

	return def
}

func (h *Helper) EntityDef(guid, name, superTypeName, description, descriptionGUID string) *types.EntityDef {
	return &types.EntityDef{
		TypeDef: h.typeDef(types.EntityCategory, guid, name, superTypeName, description, descriptionGUID),
	}
}

func (h *Helper) RelationshipDef(guid, name, superTypeName, description, descriptionGUID string, rule types.PropagationRule) *types.RelationshipDef {
	return &types.RelationshipDef{
		TypeDef:         h.typeDef(types.RelationshipCategory, guid, name, superTypeName, description, descriptionGUID),
		PropagationRule: rule,
	}
}

func (h *Helper) ClassificationDef(guid, name, superTypeName string, validEntityDefNames []string, description, descriptionGUID string, propagatable bool) *types.ClassificationDef {
	def := &types.ClassificationDef{
		TypeDef:         h.typeDef(types.ClassificationCategory, guid, name, superTypeName, description, descriptionGUID),
		ValidEntityDefs: []types.TypeDefLink{},
		Propagatable:    propagatable,
	}

	for _, entityName := range validEntityDefNames {
		def.ValidEntityDefs = append(def.ValidEntityDefs, h.EntityLink(entityName))
	}

	return def
}

func (h *Helper) EntityLink(entityName string) types.TypeDefLink {
	if h.err != nil {
		return types.TypeDefLink{Name: entityName}
	}

	entity, err := h.builder.GetEntityDef(entityName)
	if err != nil {
		h.fail(err)
		return types.TypeDefLink{Name: entityName}
	}

	return entity.Link()
}

func (h *Helper) RelationshipEndDef(entityName, attributeName, attributeDescription, attributeDescriptionGUID string, cardinality types.RelationshipEndCardinality) types.RelationshipEndDef {
	return types.RelationshipEndDef{
		EntityType:               h.EntityLink(entityName),
		AttributeName:            attributeName,
		AttributeDescription:     attributeDescription,
		AttributeDescriptionGUID: types.GUID(attributeDescriptionGUID),
		Cardinality:              cardinality,
	}
}

func (h *Helper) attributeTypeDef(category types.AttributeTypeDefCategory, guid, name, description, descriptionGUID string) types.AttributeTypeDef {
	return types.AttributeTypeDef{
		Category:        category,
		GUID:            types.GUID(guid),
		Name:            name,
		Version:         1,
		VersionName:     "1.0",
		Description:     description,
		DescriptionGUID: types.GUID(descriptionGUID),
	}
}

func (h *Helper) PrimitiveDef(category types.PrimitiveDefCategory, guid string) *types.PrimitiveDef {
	return &types.PrimitiveDef{
		AttributeTypeDef:  h.attributeTypeDef(types.PrimitiveCategory, guid, category.String(), "", ""),
		PrimitiveCategory: category,
	}
}

func CollectionName(category types.CollectionDefCategory, args ...types.PrimitiveDefCategory) string {
	if category == types.CollectionMap && len(args) == 2 {
		return fmt.Sprintf("map<%s,%s>", args[0], args[1])
	} else if category == types.CollectionArray && len(args) == 1 {
		return fmt.Sprintf("array<%s>", args[0])
	}
	return fmt.Sprintf("%s%v", category, args)
}

func (h *Helper) CollectionDef(category types.CollectionDefCategory, guid, description string, args ...types.PrimitiveDefCategory) *types.CollectionDef {
	return &types.CollectionDef{
		AttributeTypeDef:   h.attributeTypeDef(types.CollectionCategory, guid, CollectionName(category, args...), description, ""),
		CollectionCategory: category,
		ArgumentTypes:      args,
	}
}

func (h *Helper) EnumDef(guid, name, description, descriptionGUID string) *types.EnumDef {
	return &types.EnumDef{
		AttributeTypeDef: h.attributeTypeDef(types.EnumCategory, guid, name, description, descriptionGUID),
		Elements:         []types.EnumElementDef{},
	}
}

func (h *Helper) EnumElementDef(ordinal int, value, description, descriptionGUID string) types.EnumElementDef {
	return types.EnumElementDef{
		Ordinal:         ordinal,
		Value:           value,
		Description:     description,
		DescriptionGUID: types.GUID(descriptionGUID),
	}
}

func (h *Helper) attribute(typeName, name, description, descriptionGUID string) types.TypeDefAttribute {
	attr := types.TypeDefAttribute{
		Name:            name,
		Status:          types.ActiveAttribute,
		Description:     description,
		DescriptionGUID: types.GUID(descriptionGUID),
		Cardinality:     types.AtMostOne,
		ValuesMinCount:  0,
		ValuesMaxCount:  1,
		Indexable:       true,
	}

	if h.err != nil {
		attr.Type = types.AttributeTypeLink{Name: typeName}
		return attr
	}

	attrType, err := h.builder.GetAttributeTypeDef(typeName)
	if err != nil {
		h.fail(fmt.Errorf("attribute %s: %w", name, err))
		attr.Type = types.AttributeTypeLink{Name: typeName}
		return attr
	}

	attr.Type = attrType.Header().Link()

	return attr
}

func (h *Helper) StringAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveString.String(), name, description, descriptionGUID)
}

func (h *Helper) IntAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveInt.String(), name, description, descriptionGUID)
}

func (h *Helper) LongAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveLong.String(), name, description, descriptionGUID)
}

func (h *Helper) BooleanAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveBoolean.String(), name, description, descriptionGUID)
}

func (h *Helper) DateAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveDate.String(), name, description, descriptionGUID)
}

func (h *Helper) FloatAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(types.PrimitiveFloat.String(), name, description, descriptionGUID)
}

func (h *Helper) MapStringStringAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	attr := h.attribute(CollectionName(types.CollectionMap, types.PrimitiveString, types.PrimitiveString), name, description, descriptionGUID)
	attr.Indexable = false
	return attr
}

func (h *Helper) MapStringIntAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	attr := h.attribute(CollectionName(types.CollectionMap, types.PrimitiveString, types.PrimitiveInt), name, description, descriptionGUID)
	attr.Indexable = false
	return attr
}

func (h *Helper) ArrayStringAttribute(name, description, descriptionGUID string) types.TypeDefAttribute {
	attr := h.attribute(CollectionName(types.CollectionArray, types.PrimitiveString), name, description, descriptionGUID)
	attr.Cardinality = types.AnyNumberUnordered
	attr.ValuesMaxCount = 0
	return attr
}

func (h *Helper) EnumAttribute(enumName, name, description, descriptionGUID string) types.TypeDefAttribute {
	return h.attribute(enumName, name, description, descriptionGUID)
}

// PatchForType returns a patch that moves typeName from its current version to the next.
func (h *Helper) PatchForType(typeName string) *types.TypeDefPatch {
	patch := &types.TypeDefPatch{
		TypeDefName: typeName,
		UpdatedBy:   h.originator,
		UpdateTime:  h.creationDate,
	}

	if h.err != nil {
		return patch
	}

	link, version, err := h.builder.TypeDefVersion(typeName)
	if err != nil {
		h.fail(fmt.Errorf("patch: %w", err))
		return patch
	}

	patch.TypeDefGUID = link.GUID
	patch.ApplyToVersion = version
	patch.UpdateToVersion = version + 1
	patch.NewVersionName = fmt.Sprintf("%d.0", version+1)

	return patch
}

func (h *Helper) AddPrimitiveDef(def *types.PrimitiveDef) {
	if h.err == nil {
		h.fail(h.builder.AddPrimitiveDef(def))
	}
}

func (h *Helper) AddCollectionDef(def *types.CollectionDef) {
	if h.err == nil {
		h.fail(h.builder.AddCollectionDef(def))
	}
}

func (h *Helper) AddEnumDef(def *types.EnumDef) {
	if h.err == nil {
		h.fail(h.builder.AddEnumDef(def))
	}
}

func (h *Helper) AddEntityDef(def *types.EntityDef) {
	if h.err == nil {
		h.fail(h.builder.AddEntityDef(def))
	}
}

func (h *Helper) AddRelationshipDef(def *types.RelationshipDef) {
	if h.err == nil {
		h.fail(h.builder.AddRelationshipDef(def))
	}
}

func (h *Helper) AddClassificationDef(def *types.ClassificationDef) {
	if h.err == nil {
		h.fail(h.builder.AddClassificationDef(def))
	}
}

func (h *Helper) AddTypeDefPatch(patch *types.TypeDefPatch) {
	if h.err == nil {
		h.fail(h.builder.AddTypeDefPatch(patch))
	}
}

// GetEntityDef returns the current definition of an entity, or nil once an error is held.
func (h *Helper) GetEntityDef(name string) *types.EntityDef {
	if h.err != nil {
		return nil
	}
	def, err := h.builder.GetEntityDef(name)
	h.fail(err)
	return def
}

func (h *Helper) GetRelationshipDef(name string) *types.RelationshipDef {
	if h.err != nil {
		return nil
	}
	def, err := h.builder.GetRelationshipDef(name)
	h.fail(err)
	return def
}
