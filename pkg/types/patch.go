package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrPatchTarget     = errors.New("patch does not target this type")
	ErrVersionMismatch = errors.New("version mismatch")
	ErrInvalidPatch    = errors.New("invalid patch")
)

// TypeDefPatch is an incremental change to a type that an earlier release declared.
type TypeDefPatch struct {
	TypeDefGUID     GUID      `json:"typeDefGUID" yaml:"typeDefGUID"`
	TypeDefName     string    `json:"typeDefName" yaml:"typeDefName"`
	ApplyToVersion  int64     `json:"applyToVersion" yaml:"applyToVersion"`
	UpdateToVersion int64     `json:"updateToVersion" yaml:"updateToVersion"`
	NewVersionName  string    `json:"newVersionName" yaml:"newVersionName"`
	UpdatedBy       string    `json:"updatedBy" yaml:"updatedBy"`
	UpdateTime      time.Time `json:"updateTime" yaml:"updateTime"`

	Status          *TypeDefStatus `json:"typeDefStatus,omitempty" yaml:"typeDefStatus,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionGUID GUID           `json:"descriptionGUID,omitempty" yaml:"descriptionGUID,omitempty"`

	// attributes are matched by name: a known name replaces the declaration, a new name
	// is appended
	Properties []TypeDefAttribute `json:"propertyDefinitions,omitempty" yaml:"propertyDefinitions,omitempty"`

	ValidEntityDefs []TypeDefLink       `json:"validEntityDefs,omitempty" yaml:"validEntityDefs,omitempty"`
	PropagationRule *PropagationRule    `json:"propagationRule,omitempty" yaml:"propagationRule,omitempty"`
	EndDef1         *RelationshipEndDef `json:"endDef1,omitempty" yaml:"endDef1,omitempty"`
	EndDef2         *RelationshipEndDef `json:"endDef2,omitempty" yaml:"endDef2,omitempty"`
}

func (p *TypeDefPatch) SetStatus(status TypeDefStatus) {
	p.Status = &status
}

func (p *TypeDefPatch) SetPropagationRule(rule PropagationRule) {
	p.PropagationRule = &rule
}

// Apply returns a patched copy of def. def itself is never modified.
func (p *TypeDefPatch) Apply(def Definition) (Definition, error) {
	base := def.Base()

	if base.GUID != p.TypeDefGUID || base.Name != p.TypeDefName {
		return nil, fmt.Errorf("%w: patch for %s (%s) applied to %s (%s)", ErrPatchTarget, p.TypeDefName, p.TypeDefGUID, base.Name, base.GUID)
	}
	if base.Version != p.ApplyToVersion {
		return nil, fmt.Errorf("%w: patch for %s applies to version %d, but type is at version %d", ErrVersionMismatch, p.TypeDefName, p.ApplyToVersion, base.Version)
	}
	if p.UpdateToVersion <= p.ApplyToVersion {
		return nil, fmt.Errorf("%w: patch for %s moves version from %d to %d", ErrVersionMismatch, p.TypeDefName, p.ApplyToVersion, p.UpdateToVersion)
	}

	out := def.Clone()
	patched := out.Base()

	patched.Version = p.UpdateToVersion
	patched.VersionName = p.NewVersionName
	patched.UpdatedBy = p.UpdatedBy
	updateTime := p.UpdateTime
	patched.UpdateTime = &updateTime

	if p.Status != nil {
		patched.Status = *p.Status
	}
	if p.Description != "" {
		patched.Description = p.Description
		patched.DescriptionGUID = p.DescriptionGUID
	}

	for _, attr := range p.Properties {
		if existing, ok := patched.Property(attr.Name); ok {
			*existing = attr
		} else {
			patched.Properties = append(patched.Properties, attr)
		}
	}

	switch typed := out.(type) {
	case *ClassificationDef:
		if p.PropagationRule != nil || p.EndDef1 != nil || p.EndDef2 != nil {
			return nil, fmt.Errorf("%w: classification %s cannot take relationship changes", ErrInvalidPatch, p.TypeDefName)
		}
		if p.ValidEntityDefs != nil {
			typed.ValidEntityDefs = append([]TypeDefLink(nil), p.ValidEntityDefs...)
		}
	case *RelationshipDef:
		if p.ValidEntityDefs != nil {
			return nil, fmt.Errorf("%w: relationship %s cannot take valid entity defs", ErrInvalidPatch, p.TypeDefName)
		}
		if p.PropagationRule != nil {
			typed.PropagationRule = *p.PropagationRule
		}
		if p.EndDef1 != nil {
			typed.EndDef1 = *p.EndDef1
		}
		if p.EndDef2 != nil {
			typed.EndDef2 = *p.EndDef2
		}
	case *EntityDef:
		if p.ValidEntityDefs != nil || p.PropagationRule != nil || p.EndDef1 != nil || p.EndDef2 != nil {
			return nil, fmt.Errorf("%w: entity %s only takes attribute and status changes", ErrInvalidPatch, p.TypeDefName)
		}
	}

	return out, nil
}
