package types

import (
	"time"
)

type TypeDefLink struct {
	GUID   GUID          `json:"guid" yaml:"guid"`
	Name   string        `json:"name" yaml:"name"`
	Status TypeDefStatus `json:"status" yaml:"status"`
}

// TypeDef is the header shared by entity, relationship and classification definitions.
type TypeDef struct {
	Category        TypeDefCategory    `json:"category" yaml:"category"`
	GUID            GUID               `json:"guid" yaml:"guid"`
	Name            string             `json:"name" yaml:"name"`
	Status          TypeDefStatus      `json:"status" yaml:"status"`
	Version         int64              `json:"version" yaml:"version"`
	VersionName     string             `json:"versionName" yaml:"versionName"`
	CreatedBy       string             `json:"createdBy" yaml:"createdBy"`
	UpdatedBy       string             `json:"updatedBy,omitempty" yaml:"updatedBy,omitempty"`
	CreateTime      time.Time          `json:"createTime" yaml:"createTime"`
	UpdateTime      *time.Time         `json:"updateTime,omitempty" yaml:"updateTime,omitempty"`
	SuperType       *TypeDefLink       `json:"superType,omitempty" yaml:"superType,omitempty"`
	Description     string             `json:"description" yaml:"description"`
	DescriptionGUID GUID               `json:"descriptionGUID,omitempty" yaml:"descriptionGUID,omitempty"`
	Origin          GUID               `json:"origin" yaml:"origin"`
	Properties      []TypeDefAttribute `json:"propertiesDefinition,omitempty" yaml:"propertiesDefinition,omitempty"`
}

func (t *TypeDef) Base() *TypeDef { return t }

func (t *TypeDef) Link() TypeDefLink {
	return TypeDefLink{GUID: t.GUID, Name: t.Name, Status: t.Status}
}

func (t *TypeDef) Property(name string) (*TypeDefAttribute, bool) {
	for idx := range t.Properties {
		if t.Properties[idx].Name == name {
			return &t.Properties[idx], true
		}
	}
	return nil, false
}

func (t TypeDef) clone() TypeDef {
	out := t
	if t.UpdateTime != nil {
		ut := *t.UpdateTime
		out.UpdateTime = &ut
	}
	if t.SuperType != nil {
		st := *t.SuperType
		out.SuperType = &st
	}
	out.Properties = append([]TypeDefAttribute(nil), t.Properties...)
	return out
}

// Definition is implemented by *EntityDef, *RelationshipDef and *ClassificationDef.
type Definition interface {
	Base() *TypeDef
	Clone() Definition
}

type EntityDef struct {
	TypeDef `yaml:",inline"`
}

func (e *EntityDef) Clone() Definition {
	return &EntityDef{TypeDef: e.TypeDef.clone()}
}

type RelationshipEndDef struct {
	EntityType               TypeDefLink                `json:"entityType" yaml:"entityType"`
	AttributeName            string                     `json:"attributeName" yaml:"attributeName"`
	AttributeDescription     string                     `json:"attributeDescription" yaml:"attributeDescription"`
	AttributeDescriptionGUID GUID                       `json:"attributeDescriptionGUID,omitempty" yaml:"attributeDescriptionGUID,omitempty"`
	Cardinality              RelationshipEndCardinality `json:"attributeCardinality" yaml:"attributeCardinality"`
}

type RelationshipDef struct {
	TypeDef         `yaml:",inline"`
	PropagationRule PropagationRule    `json:"propagationRule" yaml:"propagationRule"`
	EndDef1         RelationshipEndDef `json:"endDef1" yaml:"endDef1"`
	EndDef2         RelationshipEndDef `json:"endDef2" yaml:"endDef2"`
}

func (r *RelationshipDef) Clone() Definition {
	out := *r
	out.TypeDef = r.TypeDef.clone()
	return &out
}

func (r *RelationshipDef) Ends() [2]RelationshipEndDef {
	return [2]RelationshipEndDef{r.EndDef1, r.EndDef2}
}

type ClassificationDef struct {
	TypeDef         `yaml:",inline"`
	ValidEntityDefs []TypeDefLink `json:"validEntityDefs" yaml:"validEntityDefs"`
	Propagatable    bool          `json:"propagatable" yaml:"propagatable"`
}

func (c *ClassificationDef) Clone() Definition {
	out := *c
	out.TypeDef = c.TypeDef.clone()
	out.ValidEntityDefs = append([]TypeDefLink(nil), c.ValidEntityDefs...)
	return &out
}
