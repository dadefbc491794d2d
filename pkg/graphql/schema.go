package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

func NewSchema(p *Provider) (graphql.Schema, error) {
	fields := graphql.Fields{
		"archive": &graphql.Field{
			Type: archiveType,
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				acc, err := accessorFrom(params.Context)
				if err != nil {
					return nil, err
				}

				return acc.Properties(), nil
			},
		},

		"typeDef": &graphql.Field{
			Type:        typeDefType,
			Description: "Look up a type def by name or by GUID",
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{
					Type: graphql.String,
				},
				"guid": &graphql.ArgumentConfig{
					Type: graphql.ID,
				},
			},
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				acc, err := accessorFrom(params.Context)
				if err != nil {
					return nil, err
				}

				name, nameOk := params.Args["name"].(string)
				guid, guidOk := params.Args["guid"].(string)

				switch {
				case nameOk && guidOk:
					return nil, fmt.Errorf("only one of name or guid can be given")
				case nameOk:
					return acc.TypeDef(name)
				case guidOk:
					return acc.TypeDefByGUID(types.GUID(guid))
				default:
					return nil, fmt.Errorf("one of name or guid is needed")
				}
			},
		},

		"typeDefs": &graphql.Field{
			Type:        typeDefPageType,
			Description: "Page through type defs sorted by name",
			Args: PageArgsWith(graphql.FieldConfigArgument{
				"category": &graphql.ArgumentConfig{
					Type:        graphql.String,
					Description: "entity, relationship or classification",
				},
			}),
			Resolve: ResolvePage(func(listOptions accessor.ListOptions, params graphql.ResolveParams) (interface{}, int, error) {
				acc, err := accessorFrom(params.Context)
				if err != nil {
					return nil, 0, err
				}

				if category, ok := params.Args["category"].(string); ok && category != "" {
					parsed, err := types.ParseTypeDefCategory(category)
					if err != nil {
						return nil, 0, err
					}
					listOptions.Category = parsed
				}

				p.logger.Debug("listing type defs",
					zap.Stringer("category", listOptions.Category),
					zap.Uint("offset", listOptions.Offset),
				)

				return acc.TypeDefs(listOptions), acc.Count(listOptions.Category), nil
			}),
		},

		"enumDef": &graphql.Field{
			Type: enumDefType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{
					Type: graphql.NewNonNull(graphql.String),
				},
			},
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				acc, err := accessorFrom(params.Context)
				if err != nil {
					return nil, err
				}

				return acc.EnumDef(params.Args["name"].(string))
			},
		},

		"enumDefs": &graphql.Field{
			Type: graphql.NewList(enumDefType),
			Resolve: func(params graphql.ResolveParams) (interface{}, error) {
				acc, err := accessorFrom(params.Context)
				if err != nil {
					return nil, err
				}

				return acc.EnumDefs(), nil
			},
		},
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
