package graphql

import (
	"encoding/base64"
	"fmt"
	"math/bits"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/uswitch/typearchive/pkg/accessor"
)

type PageInfo struct {
	Cursor string
	Limit  int
	More   bool
}

type Page struct {
	PageInfo
	List interface{}
}

var (
	pageInfoType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "PageInfo",
		Description: "Information about a page",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{
				Type:        graphql.String,
				Description: "Pass as the cursor argument to get the next page, null on the last page",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pageInfo, ok := p.Source.(PageInfo)
					if !ok {
						return nil, fmt.Errorf("Not page info")
					}

					if !pageInfo.More {
						return nil, nil
					}

					return pageInfo.Cursor, nil
				},
			},
			"limit": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pageInfo, ok := p.Source.(PageInfo)
					if !ok {
						return nil, fmt.Errorf("Not page info")
					}

					return pageInfo.Limit, nil
				},
			},
		},
	})
)

func NewPaginatedList(typ graphql.Type) graphql.Type {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: fmt.Sprintf("%sPage", typ.Name()),
		Fields: graphql.Fields{
			"list": &graphql.Field{
				Type: graphql.NewList(typ),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*Page)
					if !ok {
						return nil, fmt.Errorf("Not a Page: %v", p.Source)
					}

					return page.List, nil
				},
			},
			"page": &graphql.Field{
				Type: pageInfoType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, ok := p.Source.(*Page)
					if !ok {
						return nil, fmt.Errorf("Not a Page: %v", p.Source)
					}

					return page.PageInfo, nil
				},
			},
		},
	})
}

func EncodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func DecodeCursor(cursor string) (uint, error) {
	decodedCursor, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("bad cursor: %w", err)
	}

	offset, err := strconv.ParseUint(string(decodedCursor), 10, bits.UintSize)
	if err != nil {
		return 0, fmt.Errorf("bad cursor: %w", err)
	}

	return uint(offset), nil
}

// PageResolveFn returns the items of a page and the total number there are to page through.
type PageResolveFn func(accessor.ListOptions, graphql.ResolveParams) (interface{}, int, error)

func ResolvePage(resolveFn PageResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		limit, _ := p.Args["limit"].(int)
		if limit <= 0 {
			return nil, fmt.Errorf("limit must be positive, got %d", limit)
		}

		offset := uint(0)

		if cursor, ok := p.Args["cursor"].(string); ok && cursor != "" {
			decoded, err := DecodeCursor(cursor)
			if err != nil {
				return nil, err
			}
			offset = decoded
		}

		listOptions := accessor.ListOptions{
			SortOrder:       accessor.SortAscending,
			Offset:          offset,
			NumberOfResults: uint(limit),
		}

		list, total, err := resolveFn(listOptions, p)
		if err != nil {
			return nil, err
		}

		// offset < total on the way in keeps the next offset inside int
		more := offset < uint(total) && uint(total)-offset > uint(limit)
		next := total
		if more {
			next = int(offset) + limit
		}

		return &Page{
			PageInfo: PageInfo{
				Cursor: EncodeCursor(next),
				Limit:  limit,
				More:   more,
			},
			List: list,
		}, nil
	}
}

func PageArgsWith(args graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args["limit"] = &graphql.ArgumentConfig{
		Type:         graphql.Int,
		DefaultValue: accessor.DefaultNumberOfResults,
	}
	args["cursor"] = &graphql.ArgumentConfig{
		Type: graphql.String,
	}

	return args
}
