package graphql

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

func formatTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

func definitionField(typ graphql.Output, description string, fn func(*accessor.Accessor, types.Definition) (interface{}, error)) *graphql.Field {
	return &graphql.Field{
		Type:        typ,
		Description: description,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			def, ok := p.Source.(types.Definition)
			if !ok {
				return nil, fmt.Errorf("not a type def: %v", p.Source)
			}

			acc, err := accessorFrom(p.Context)
			if err != nil {
				return nil, err
			}

			return fn(acc, def)
		},
	}
}

func baseField(typ graphql.Output, description string, fn func(*types.TypeDef) interface{}) *graphql.Field {
	return definitionField(typ, description, func(_ *accessor.Accessor, def types.Definition) (interface{}, error) {
		return fn(def.Base()), nil
	})
}

func linkedDefs(acc *accessor.Accessor, links []types.TypeDefLink) ([]types.Definition, error) {
	out := make([]types.Definition, 0, len(links))
	for _, link := range links {
		def, err := acc.TypeDefByGUID(link.GUID)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	return out, nil
}

var (
	attributeTypeRefType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "AttributeTypeRef",
		Description: "Reference to the primitive, collection or enum type of an attribute",
		Fields: graphql.Fields{
			"category": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.AttributeTypeLink).Category.String(), nil
				},
			},
			"guid": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.AttributeTypeLink).GUID.String(), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.AttributeTypeLink).Name, nil
				},
			},
		},
	})

	attributeType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Attribute",
		Description: "An attribute a type def declares or inherits",
		Fields: graphql.Fields{
			"name":   attributeField(graphql.NewNonNull(graphql.String), func(a types.TypeDefAttribute) interface{} { return a.Name }),
			"type":   attributeField(graphql.NewNonNull(attributeTypeRefType), func(a types.TypeDefAttribute) interface{} { return a.Type }),
			"status": attributeField(graphql.NewNonNull(graphql.String), func(a types.TypeDefAttribute) interface{} { return a.Status.String() }),
			"replacedBy": attributeField(graphql.String, func(a types.TypeDefAttribute) interface{} {
				if a.ReplacedByAttribute == "" {
					return nil
				}
				return a.ReplacedByAttribute
			}),
			"description": attributeField(graphql.String, func(a types.TypeDefAttribute) interface{} { return a.Description }),
			"cardinality": attributeField(graphql.NewNonNull(graphql.String), func(a types.TypeDefAttribute) interface{} { return a.Cardinality.String() }),
			"required":    attributeField(graphql.NewNonNull(graphql.Boolean), func(a types.TypeDefAttribute) interface{} { return a.Required() }),
			"unique":      attributeField(graphql.NewNonNull(graphql.Boolean), func(a types.TypeDefAttribute) interface{} { return a.Unique }),
			"indexable":   attributeField(graphql.NewNonNull(graphql.Boolean), func(a types.TypeDefAttribute) interface{} { return a.Indexable }),
			"defaultValue": attributeField(graphql.String, func(a types.TypeDefAttribute) interface{} {
				if a.DefaultValue == "" {
					return nil
				}
				return a.DefaultValue
			}),
		},
	})

	enumElementType = graphql.NewObject(graphql.ObjectConfig{
		Name: "EnumElement",
		Fields: graphql.Fields{
			"ordinal": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.EnumElementDef).Ordinal, nil
				},
			},
			"value": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.EnumElementDef).Value, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(types.EnumElementDef).Description, nil
				},
			},
		},
	})

	enumDefType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "EnumDef",
		Description: "An enumeration that attributes can take their values from",
		Fields: graphql.Fields{
			"guid":        enumField(graphql.NewNonNull(graphql.ID), func(e *types.EnumDef) interface{} { return e.GUID.String() }),
			"name":        enumField(graphql.NewNonNull(graphql.String), func(e *types.EnumDef) interface{} { return e.Name }),
			"version":     enumField(graphql.NewNonNull(graphql.Int), func(e *types.EnumDef) interface{} { return int(e.Version) }),
			"description": enumField(graphql.String, func(e *types.EnumDef) interface{} { return e.Description }),
			"elements":    enumField(graphql.NewList(enumElementType), func(e *types.EnumDef) interface{} { return e.Elements }),
			"defaultValue": enumField(graphql.String, func(e *types.EnumDef) interface{} {
				if e.DefaultValue == nil {
					return nil
				}
				return e.DefaultValue.Value
			}),
		},
	})

	relationshipEndType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "RelationshipEnd",
		Description: "One end of a relationship def",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"entityType": &graphql.Field{
					Type: typeDefType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						acc, err := accessorFrom(p.Context)
						if err != nil {
							return nil, err
						}
						return acc.TypeDefByGUID(p.Source.(types.RelationshipEndDef).EntityType.GUID)
					},
				},
				"attributeName": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(types.RelationshipEndDef).AttributeName, nil
					},
				},
				"description": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(types.RelationshipEndDef).AttributeDescription, nil
					},
				},
				"cardinality": &graphql.Field{
					Type: graphql.NewNonNull(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(types.RelationshipEndDef).Cardinality.String(), nil
					},
				},
			}
		}),
	})

	typeDefType *graphql.Object

	typeDefPageType graphql.Type

	archiveType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "Archive",
		Description: "The archive the type defs are served from",
		Fields: graphql.Fields{
			"guid":              archiveField(graphql.NewNonNull(graphql.ID), func(a types.ArchiveProperties) interface{} { return a.GUID.String() }),
			"name":              archiveField(graphql.NewNonNull(graphql.String), func(a types.ArchiveProperties) interface{} { return a.Name }),
			"description":       archiveField(graphql.String, func(a types.ArchiveProperties) interface{} { return a.Description }),
			"type":              archiveField(graphql.NewNonNull(graphql.String), func(a types.ArchiveProperties) interface{} { return a.Type.String() }),
			"version":           archiveField(graphql.NewNonNull(graphql.String), func(a types.ArchiveProperties) interface{} { return a.Version }),
			"originatorName":    archiveField(graphql.String, func(a types.ArchiveProperties) interface{} { return a.OriginatorName }),
			"originatorLicense": archiveField(graphql.String, func(a types.ArchiveProperties) interface{} { return a.OriginatorLicense }),
			"creationDate":      archiveField(graphql.String, func(a types.ArchiveProperties) interface{} { return formatTime(&a.CreationDate) }),
			"dependsOn": archiveField(graphql.NewList(graphql.ID), func(a types.ArchiveProperties) interface{} {
				out := make([]string, len(a.Dependencies))
				for idx, guid := range a.Dependencies {
					out[idx] = guid.String()
				}
				return out
			}),
		},
	})
)

func attributeField(typ graphql.Output, fn func(types.TypeDefAttribute) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			attr, ok := p.Source.(types.TypeDefAttribute)
			if !ok {
				return nil, fmt.Errorf("not an attribute: %v", p.Source)
			}
			return fn(attr), nil
		},
	}
}

func enumField(typ graphql.Output, fn func(*types.EnumDef) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			enum, ok := p.Source.(*types.EnumDef)
			if !ok {
				return nil, fmt.Errorf("not an enum def: %v", p.Source)
			}
			return fn(enum), nil
		},
	}
}

func archiveField(typ graphql.Output, fn func(types.ArchiveProperties) interface{}) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			props, ok := p.Source.(types.ArchiveProperties)
			if !ok {
				return nil, fmt.Errorf("not archive properties: %v", p.Source)
			}
			return fn(props), nil
		},
	}
}

func init() {
	typeDefType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "TypeDef",
		Description: "An entity, relationship or classification def with every patch applied",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"category":    baseField(graphql.NewNonNull(graphql.String), "", func(t *types.TypeDef) interface{} { return t.Category.String() }),
				"guid":        baseField(graphql.NewNonNull(graphql.ID), "", func(t *types.TypeDef) interface{} { return t.GUID.String() }),
				"name":        baseField(graphql.NewNonNull(graphql.String), "", func(t *types.TypeDef) interface{} { return t.Name }),
				"status":      baseField(graphql.NewNonNull(graphql.String), "", func(t *types.TypeDef) interface{} { return t.Status.String() }),
				"version":     baseField(graphql.NewNonNull(graphql.Int), "", func(t *types.TypeDef) interface{} { return int(t.Version) }),
				"versionName": baseField(graphql.String, "", func(t *types.TypeDef) interface{} { return t.VersionName }),
				"description": baseField(graphql.String, "", func(t *types.TypeDef) interface{} { return t.Description }),
				"createdBy":   baseField(graphql.String, "", func(t *types.TypeDef) interface{} { return t.CreatedBy }),
				"updatedBy":   baseField(graphql.String, "", func(t *types.TypeDef) interface{} { return t.UpdatedBy }),
				"createTime":  baseField(graphql.String, "RFC3339 timestamp", func(t *types.TypeDef) interface{} { return formatTime(&t.CreateTime) }),
				"updateTime":  baseField(graphql.String, "RFC3339 timestamp", func(t *types.TypeDef) interface{} { return formatTime(t.UpdateTime) }),

				"superType": definitionField(typeDefType, "", func(acc *accessor.Accessor, def types.Definition) (interface{}, error) {
					if def.Base().SuperType == nil {
						return nil, nil
					}
					return acc.TypeDefByGUID(def.Base().SuperType.GUID)
				}),
				"subTypes": definitionField(graphql.NewList(typeDefType), "", func(acc *accessor.Accessor, def types.Definition) (interface{}, error) {
					return acc.SubTypes(def.Base().Name), nil
				}),
				"attributes": &graphql.Field{
					Type:        graphql.NewList(attributeType),
					Description: "Own attributes, or with inherited set every attribute from the super types too",
					Args: graphql.FieldConfigArgument{
						"inherited": &graphql.ArgumentConfig{
							Type:         graphql.Boolean,
							DefaultValue: false,
						},
						"deprecated": &graphql.ArgumentConfig{
							Type:         graphql.Boolean,
							DefaultValue: true,
						},
					},
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						def, ok := p.Source.(types.Definition)
						if !ok {
							return nil, fmt.Errorf("not a type def: %v", p.Source)
						}

						inherited, _ := p.Args["inherited"].(bool)
						deprecated, _ := p.Args["deprecated"].(bool)

						if inherited {
							acc, err := accessorFrom(p.Context)
							if err != nil {
								return nil, err
							}
							return acc.Attributes(def.Base().Name, deprecated)
						}

						out := []types.TypeDefAttribute{}
						for _, attr := range def.Base().Properties {
							if attr.Deprecated() && !deprecated {
								continue
							}
							out = append(out, attr)
						}
						return out, nil
					},
				},

				"ends": definitionField(graphql.NewList(relationshipEndType), "Only set on relationship defs", func(_ *accessor.Accessor, def types.Definition) (interface{}, error) {
					rel, ok := def.(*types.RelationshipDef)
					if !ok {
						return nil, nil
					}
					ends := rel.Ends()
					return ends[:], nil
				}),
				"propagationRule": definitionField(graphql.String, "Only set on relationship defs", func(_ *accessor.Accessor, def types.Definition) (interface{}, error) {
					if rel, ok := def.(*types.RelationshipDef); ok {
						return rel.PropagationRule.String(), nil
					}
					return nil, nil
				}),
				"validEntityDefs": definitionField(graphql.NewList(typeDefType), "Only set on classification defs", func(acc *accessor.Accessor, def types.Definition) (interface{}, error) {
					if classification, ok := def.(*types.ClassificationDef); ok {
						return linkedDefs(acc, classification.ValidEntityDefs)
					}
					return nil, nil
				}),
				"propagatable": definitionField(graphql.Boolean, "Only set on classification defs", func(_ *accessor.Accessor, def types.Definition) (interface{}, error) {
					if classification, ok := def.(*types.ClassificationDef); ok {
						return classification.Propagatable, nil
					}
					return nil, nil
				}),

				"relationships": definitionField(graphql.NewList(typeDefType), "Relationship defs that can attach to this entity def", func(acc *accessor.Accessor, def types.Definition) (interface{}, error) {
					if _, ok := def.(*types.EntityDef); !ok {
						return nil, nil
					}
					rels, err := acc.RelationshipsFor(def.Base().Name)
					if err != nil {
						return nil, err
					}
					out := make([]types.Definition, len(rels))
					for idx, rel := range rels {
						out[idx] = rel
					}
					return out, nil
				}),
				"classifications": definitionField(graphql.NewList(typeDefType), "Classification defs that can attach to this entity def", func(acc *accessor.Accessor, def types.Definition) (interface{}, error) {
					if _, ok := def.(*types.EntityDef); !ok {
						return nil, nil
					}
					classifications, err := acc.ClassificationsFor(def.Base().Name)
					if err != nil {
						return nil, err
					}
					out := make([]types.Definition, len(classifications))
					for idx, classification := range classifications {
						out[idx] = classification
					}
					return out, nil
				}),
			}
		}),
	})

	typeDefPageType = NewPaginatedList(typeDefType)
}
