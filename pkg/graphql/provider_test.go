package graphql

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/uswitch/typearchive/pkg/releases"
	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/store/inmem"
)

func storeWith(t *testing.T, rs ...*releases.Release) store.Store {
	t.Helper()

	s := inmem.NewInMemoryStore()

	for _, r := range rs {
		archive, err := r.Archive()
		if err != nil {
			t.Fatalf("couldn't build release %s: %v", r.Version, err)
		}

		if err := s.Put(context.Background(), archive); err != nil {
			t.Fatal(err)
		}
	}

	return s
}

func syncedProvider(t *testing.T, opts ...Option) *Provider {
	t.Helper()

	p, err := NewProvider(storeWith(t, releases.Release1_0, releases.Release1_4, releases.Release1_2), opts...)
	if err != nil {
		t.Fatalf("Couldn't create provider: %v", err)
	}

	if err := p.SyncOnce(context.Background()); err != nil {
		t.Fatalf("Couldn't sync provider: %v", err)
	}

	return p
}

func query(t *testing.T, p *Provider, q string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()

	result := p.Do(context.Background(), Request{Query: q, Variables: variables})
	if result.HasErrors() {
		t.Fatalf("query failed: %v", result.Errors)
	}

	data, ok := result.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected a map, but got %T", result.Data)
	}

	return data
}

func TestProviderSchemaTypes(t *testing.T) {
	p, err := NewProvider(inmem.NewInMemoryStore())
	if err != nil {
		t.Fatalf("Couldn't create provider: %v", err)
	}

	schema := p.Schema()
	types := schema.TypeMap()

	expectedTypes := []string{
		"TypeDef",
		"TypeDefPage",
		"Attribute",
		"RelationshipEnd",
		"EnumDef",
		"Archive",
		"PageInfo",
	}

	for _, expectedType := range expectedTypes {
		if _, ok := types[expectedType]; !ok {
			t.Errorf("Couldn't find expected type '%s' in types", expectedType)
		}
	}
}

func TestProviderFollowsLatest(t *testing.T) {
	p := syncedProvider(t)

	acc, err := p.Accessor()
	if err != nil {
		t.Fatal(err)
	}

	if expected := releases.Release1_4.Version; acc.Properties().Version != expected {
		t.Errorf("expected version %s, but got %s", expected, acc.Properties().Version)
	}
}

func TestProviderFollowsGUID(t *testing.T) {
	p := syncedProvider(t, Following(releases.Release1_0.GUID))

	acc, err := p.Accessor()
	if err != nil {
		t.Fatal(err)
	}

	if acc.Properties().GUID != releases.Release1_0.GUID {
		t.Errorf("expected %s, but got %s", releases.Release1_0.GUID, acc.Properties().GUID)
	}
}

func TestProviderEmptyStore(t *testing.T) {
	p, err := NewProvider(inmem.NewInMemoryStore())
	if err != nil {
		t.Fatal(err)
	}

	if err := p.SyncOnce(context.Background()); !errors.Is(err, ErrNoArchive) {
		t.Errorf("expected ErrNoArchive, but got %v", err)
	}

	if result := p.Do(context.Background(), Request{Query: "{ archive { name } }"}); !result.HasErrors() {
		t.Error("expected an error querying without an archive")
	}
}

func TestProviderSync(t *testing.T) {
	s := storeWith(t, releases.Release1_0)

	p, err := NewProvider(s)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- p.Sync(ctx) }()

	archive, err := releases.Release1_3.Archive()
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if acc, err := p.Accessor(); err == nil && acc.Properties().Version == "1.0" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("provider never loaded the first archive")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.Put(context.Background(), archive); err != nil {
		t.Fatal(err)
	}

	for {
		if acc, _ := p.Accessor(); acc.Properties().Version == "1.3" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("provider never loaded the new archive")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, but got %v", err)
	}
}

func TestQueryTypeDef(t *testing.T) {
	p := syncedProvider(t)

	data := query(t, p, `
query ($name: String) {
  typeDef(name: $name) {
    name
    version
    status
    superType { name }
    attributes { name status }
  }
}`, map[string]interface{}{"name": "Asset"})

	typeDef := data["typeDef"].(map[string]interface{})

	if typeDef["version"] != 3 {
		t.Errorf("expected version 3, but got %v", typeDef["version"])
	}
	if super := typeDef["superType"].(map[string]interface{}); super["name"] != "Referenceable" {
		t.Errorf("expected Referenceable, but got %v", super["name"])
	}

	attributes := typeDef["attributes"].([]interface{})
	if len(attributes) != 6 {
		t.Errorf("expected 6 attributes, but got %d", len(attributes))
	}

	deprecated := 0
	for _, attr := range attributes {
		if attr.(map[string]interface{})["status"] == "deprecated" {
			deprecated++
		}
	}
	if deprecated != 2 {
		t.Errorf("expected 2 deprecated attributes, but got %d", deprecated)
	}
}

func TestQueryInheritedAttributes(t *testing.T) {
	p := syncedProvider(t)

	data := query(t, p, `{
  typeDef(name: "Asset") {
    attributes(inherited: true, deprecated: false) { name }
  }
}`, nil)

	attributes := data["typeDef"].(map[string]interface{})["attributes"].([]interface{})

	names := map[string]bool{}
	for _, attr := range attributes {
		names[attr.(map[string]interface{})["name"].(string)] = true
	}

	for _, name := range []string{"qualifiedName", "additionalProperties", "name", "zoneMembership"} {
		if !names[name] {
			t.Errorf("expected %s in %v", name, names)
		}
	}
	if names["owner"] {
		t.Error("didn't expect the deprecated owner attribute")
	}
}

func TestQueryRelationshipEnds(t *testing.T) {
	p := syncedProvider(t)

	data := query(t, p, `{
  typeDef(name: "TeamLeadership") {
    version
    ends { attributeName cardinality entityType { name } }
  }
}`, nil)

	typeDef := data["typeDef"].(map[string]interface{})
	ends := typeDef["ends"].([]interface{})

	if len(ends) != 2 {
		t.Fatalf("expected 2 ends, but got %d", len(ends))
	}

	end2 := ends[1].(map[string]interface{})
	if end2["cardinality"] != "any_number" {
		t.Errorf("expected the patched cardinality any_number, but got %v", end2["cardinality"])
	}
	if entity := end2["entityType"].(map[string]interface{}); entity["name"] != "Team" {
		t.Errorf("expected Team, but got %v", entity["name"])
	}
}

func TestQueryTypeDefsPaging(t *testing.T) {
	p := syncedProvider(t)

	q := `
query ($cursor: String) {
  typeDefs(category: "relationship", limit: 2, cursor: $cursor) {
    list { name }
    page { cursor }
  }
}`

	names := []string{}
	var cursor interface{}
	pages := 0

	for {
		data := query(t, p, q, map[string]interface{}{"cursor": cursor})
		page := data["typeDefs"].(map[string]interface{})

		for _, item := range page["list"].([]interface{}) {
			names = append(names, item.(map[string]interface{})["name"].(string))
		}

		pages++
		cursor = page["page"].(map[string]interface{})["cursor"]
		if cursor == nil || pages > 10 {
			break
		}
	}

	expected := []string{"CollectionMembership", "DataContentForDataSet", "ProcessInput", "TeamLeadership", "TeamMembership"}

	if pages != 3 {
		t.Errorf("expected 3 pages, but got %d", pages)
	}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, but got %v", expected, names)
	}
	for idx := range expected {
		if names[idx] != expected[idx] {
			t.Errorf("expected %s at %d, but got %s", expected[idx], idx, names[idx])
		}
	}
}

func TestQueryEnumDef(t *testing.T) {
	p := syncedProvider(t)

	data := query(t, p, `{ enumDef(name: "GovernanceClassificationStatus") { defaultValue elements { value } } }`, nil)

	enum := data["enumDef"].(map[string]interface{})
	if enum["defaultValue"] != "Validated" {
		t.Errorf("expected Validated, but got %v", enum["defaultValue"])
	}
	if elements := enum["elements"].([]interface{}); len(elements) != 6 {
		t.Errorf("expected 6 elements, but got %d", len(elements))
	}
}

func TestQueryBadCursor(t *testing.T) {
	p := syncedProvider(t)

	result := p.Do(context.Background(), Request{Query: `{ typeDefs(cursor: "!!!") { list { name } } }`})
	if !result.HasErrors() {
		t.Error("expected an error for a bad cursor")
	}
}

func TestQueryCursorPastTheEnd(t *testing.T) {
	p := syncedProvider(t)

	q := `query ($cursor: String) { typeDefs(cursor: $cursor) { list { name } page { cursor } } }`

	for _, offset := range []string{"21", "9223372036854775807", "18446744073709551615"} {
		cursor := base64.StdEncoding.EncodeToString([]byte(offset))

		data := query(t, p, q, map[string]interface{}{"cursor": cursor})
		page := data["typeDefs"].(map[string]interface{})

		if list := page["list"].([]interface{}); len(list) != 0 {
			t.Errorf("offset %s: expected an empty list, but got %d items", offset, len(list))
		}
		if next := page["page"].(map[string]interface{})["cursor"]; next != nil {
			t.Errorf("offset %s: expected no next cursor, but got %v", offset, next)
		}
	}
}
