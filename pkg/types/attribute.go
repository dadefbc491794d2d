package types

// AttributeTypeDef is the header shared by primitive, collection and enum definitions.
type AttributeTypeDef struct {
	Category        AttributeTypeDefCategory `json:"category" yaml:"category"`
	GUID            GUID                     `json:"guid" yaml:"guid"`
	Name            string                   `json:"name" yaml:"name"`
	Version         int64                    `json:"version" yaml:"version"`
	VersionName     string                   `json:"versionName" yaml:"versionName"`
	Description     string                   `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionGUID GUID                     `json:"descriptionGUID,omitempty" yaml:"descriptionGUID,omitempty"`
}

func (a *AttributeTypeDef) Header() *AttributeTypeDef { return a }

func (a *AttributeTypeDef) Link() AttributeTypeLink {
	return AttributeTypeLink{Category: a.Category, GUID: a.GUID, Name: a.Name}
}

// AttributeType is implemented by *PrimitiveDef, *CollectionDef and *EnumDef.
type AttributeType interface {
	Header() *AttributeTypeDef
}

type PrimitiveDef struct {
	AttributeTypeDef  `yaml:",inline"`
	PrimitiveCategory PrimitiveDefCategory `json:"primitiveDefCategory" yaml:"primitiveDefCategory"`
}

type CollectionDef struct {
	AttributeTypeDef   `yaml:",inline"`
	CollectionCategory CollectionDefCategory  `json:"collectionDefCategory" yaml:"collectionDefCategory"`
	ArgumentTypes      []PrimitiveDefCategory `json:"argumentTypes" yaml:"argumentTypes"`
}

type EnumElementDef struct {
	Ordinal         int    `json:"ordinal" yaml:"ordinal"`
	Value           string `json:"value" yaml:"value"`
	Description     string `json:"description" yaml:"description"`
	DescriptionGUID GUID   `json:"descriptionGUID,omitempty" yaml:"descriptionGUID,omitempty"`
}

type EnumDef struct {
	AttributeTypeDef `yaml:",inline"`
	Elements         []EnumElementDef `json:"elementDefs" yaml:"elementDefs"`
	DefaultValue     *EnumElementDef  `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

func (e *EnumDef) Element(value string) (EnumElementDef, bool) {
	for _, el := range e.Elements {
		if el.Value == value {
			return el, true
		}
	}
	return EnumElementDef{}, false
}

type AttributeTypeLink struct {
	Category AttributeTypeDefCategory `json:"category" yaml:"category"`
	GUID     GUID                     `json:"guid" yaml:"guid"`
	Name     string                   `json:"name" yaml:"name"`
}

type TypeDefAttribute struct {
	Name                string               `json:"attributeName" yaml:"attributeName"`
	Type                AttributeTypeLink    `json:"attributeType" yaml:"attributeType"`
	Status              AttributeStatus      `json:"attributeStatus" yaml:"attributeStatus"`
	ReplacedByAttribute string               `json:"replacedByAttribute,omitempty" yaml:"replacedByAttribute,omitempty"`
	Description         string               `json:"attributeDescription" yaml:"attributeDescription"`
	DescriptionGUID     GUID                 `json:"attributeDescriptionGUID,omitempty" yaml:"attributeDescriptionGUID,omitempty"`
	Cardinality         AttributeCardinality `json:"attributeCardinality" yaml:"attributeCardinality"`
	ValuesMinCount      int                  `json:"valuesMinCount" yaml:"valuesMinCount"`
	ValuesMaxCount      int                  `json:"valuesMaxCount" yaml:"valuesMaxCount"`
	Unique              bool                 `json:"unique" yaml:"unique"`
	Indexable           bool                 `json:"indexable" yaml:"indexable"`
	DefaultValue        string               `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

func (a TypeDefAttribute) Required() bool {
	switch a.Cardinality {
	case OneOnly, AtLeastOneOrdered, AtLeastOneUnordered:
		return true
	}
	return false
}

func (a TypeDefAttribute) Deprecated() bool {
	return a.Status == DeprecatedAttribute
}
