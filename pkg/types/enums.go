package types

import (
	"fmt"
)

// enumeration values are stored in archives by their symbolic names, never their ordinals.

func enumName(v int, names []string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}
	return names[v]
}

func enumParse(text []byte, names []string, kind string) (int, error) {
	for idx, name := range names {
		if name == string(text) {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("unknown %s '%s'", kind, string(text))
}

type TypeDefCategory int

const (
	UnknownCategory TypeDefCategory = iota
	EntityCategory
	RelationshipCategory
	ClassificationCategory
)

var typeDefCategoryNames = []string{"unknown", "entity", "relationship", "classification"}

func (c TypeDefCategory) String() string { return enumName(int(c), typeDefCategoryNames) }
func (c TypeDefCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *TypeDefCategory) UnmarshalText(text []byte) error {
	v, err := enumParse(text, typeDefCategoryNames, "type def category")
	*c = TypeDefCategory(v)
	return err
}

func ParseTypeDefCategory(s string) (TypeDefCategory, error) {
	var c TypeDefCategory
	err := c.UnmarshalText([]byte(s))
	return c, err
}

type AttributeTypeDefCategory int

const (
	UnknownAttributeCategory AttributeTypeDefCategory = iota
	PrimitiveCategory
	CollectionCategory
	EnumCategory
)

var attributeTypeDefCategoryNames = []string{"unknown", "primitive", "collection", "enum"}

func (c AttributeTypeDefCategory) String() string {
	return enumName(int(c), attributeTypeDefCategoryNames)
}
func (c AttributeTypeDefCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *AttributeTypeDefCategory) UnmarshalText(text []byte) error {
	v, err := enumParse(text, attributeTypeDefCategoryNames, "attribute type category")
	*c = AttributeTypeDefCategory(v)
	return err
}

type PrimitiveDefCategory int

const (
	UnknownPrimitive PrimitiveDefCategory = iota
	PrimitiveBoolean
	PrimitiveByte
	PrimitiveChar
	PrimitiveShort
	PrimitiveInt
	PrimitiveLong
	PrimitiveFloat
	PrimitiveDouble
	PrimitiveBigInteger
	PrimitiveBigDecimal
	PrimitiveString
	PrimitiveDate
)

var primitiveDefCategoryNames = []string{
	"unknown", "boolean", "byte", "char", "short", "int", "long",
	"float", "double", "biginteger", "bigdecimal", "string", "date",
}

func (c PrimitiveDefCategory) String() string { return enumName(int(c), primitiveDefCategoryNames) }
func (c PrimitiveDefCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *PrimitiveDefCategory) UnmarshalText(text []byte) error {
	v, err := enumParse(text, primitiveDefCategoryNames, "primitive category")
	*c = PrimitiveDefCategory(v)
	return err
}

type CollectionDefCategory int

const (
	UnknownCollection CollectionDefCategory = iota
	CollectionMap
	CollectionArray
)

var collectionDefCategoryNames = []string{"unknown", "map", "array"}

func (c CollectionDefCategory) String() string { return enumName(int(c), collectionDefCategoryNames) }
func (c CollectionDefCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *CollectionDefCategory) UnmarshalText(text []byte) error {
	v, err := enumParse(text, collectionDefCategoryNames, "collection category")
	*c = CollectionDefCategory(v)
	return err
}

type TypeDefStatus int

const (
	ActiveTypeDef TypeDefStatus = iota
	DeprecatedTypeDef
)

var typeDefStatusNames = []string{"active", "deprecated"}

func (s TypeDefStatus) String() string { return enumName(int(s), typeDefStatusNames) }
func (s TypeDefStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
func (s *TypeDefStatus) UnmarshalText(text []byte) error {
	v, err := enumParse(text, typeDefStatusNames, "type def status")
	*s = TypeDefStatus(v)
	return err
}

type AttributeStatus int

const (
	ActiveAttribute AttributeStatus = iota
	RenamedAttribute
	DeprecatedAttribute
)

var attributeStatusNames = []string{"active", "renamed", "deprecated"}

func (s AttributeStatus) String() string { return enumName(int(s), attributeStatusNames) }
func (s AttributeStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
func (s *AttributeStatus) UnmarshalText(text []byte) error {
	v, err := enumParse(text, attributeStatusNames, "attribute status")
	*s = AttributeStatus(v)
	return err
}

type AttributeCardinality int

const (
	UnknownCardinality AttributeCardinality = iota
	AtMostOne
	OneOnly
	AtLeastOneOrdered
	AtLeastOneUnordered
	AnyNumberOrdered
	AnyNumberUnordered
)

var attributeCardinalityNames = []string{
	"unknown", "at_most_one", "one_only",
	"at_least_one_ordered", "at_least_one_unordered",
	"any_number_ordered", "any_number_unordered",
}

func (c AttributeCardinality) String() string { return enumName(int(c), attributeCardinalityNames) }
func (c AttributeCardinality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *AttributeCardinality) UnmarshalText(text []byte) error {
	v, err := enumParse(text, attributeCardinalityNames, "attribute cardinality")
	*c = AttributeCardinality(v)
	return err
}

type RelationshipEndCardinality int

const (
	UnknownEndCardinality RelationshipEndCardinality = iota
	EndAtMostOne
	EndAnyNumber
)

var relationshipEndCardinalityNames = []string{"unknown", "at_most_one", "any_number"}

func (c RelationshipEndCardinality) String() string {
	return enumName(int(c), relationshipEndCardinalityNames)
}
func (c RelationshipEndCardinality) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
func (c *RelationshipEndCardinality) UnmarshalText(text []byte) error {
	v, err := enumParse(text, relationshipEndCardinalityNames, "relationship end cardinality")
	*c = RelationshipEndCardinality(v)
	return err
}

type PropagationRule int

const (
	PropagateNone PropagationRule = iota
	PropagateOneToTwo
	PropagateTwoToOne
	PropagateBoth
)

var propagationRuleNames = []string{"none", "one_to_two", "two_to_one", "both"}

func (r PropagationRule) String() string { return enumName(int(r), propagationRuleNames) }
func (r PropagationRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
func (r *PropagationRule) UnmarshalText(text []byte) error {
	v, err := enumParse(text, propagationRuleNames, "propagation rule")
	*r = PropagationRule(v)
	return err
}

type ArchiveType int

const (
	ContentPack ArchiveType = iota
	MetadataExport
	RepositoryBackup
)

var archiveTypeNames = []string{"content_pack", "metadata_export", "repository_backup"}

func (t ArchiveType) String() string { return enumName(int(t), archiveTypeNames) }
func (t ArchiveType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
func (t *ArchiveType) UnmarshalText(text []byte) error {
	v, err := enumParse(text, archiveTypeNames, "archive type")
	*t = ArchiveType(v)
	return err
}
