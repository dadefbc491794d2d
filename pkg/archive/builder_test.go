package archive

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/uswitch/typearchive/pkg/types"
)

var (
	testOrigin   = "a5d8fe0e-4e1a-4b4b-a4ae-6bd38e6b5c36"
	testCreation = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// newTestHelper returns a helper whose builder already holds the string primitive and
// two entities, Referenceable and Asset.
func newTestHelper(t *testing.T) *Helper {
	t.Helper()

	b := NewBuilder(types.ArchiveProperties{GUID: types.GUID(testOrigin), Name: "Test", Version: "1.0"})
	h := NewHelper(b, types.GUID(testOrigin), "tester", testCreation)

	h.AddPrimitiveDef(h.PrimitiveDef(types.PrimitiveString, "b34a64b9-554a-42b1-8f8a-7d5c2339f9c4"))
	h.AddPrimitiveDef(h.PrimitiveDef(types.PrimitiveInt, "7fc49104-fd3a-46c8-b6bf-f16b6074cd35"))

	referenceable := h.EntityDef("a32316b8-dc8c-48c5-b12b-71c1b2a080bf", "Referenceable", "", "", "")
	referenceable.Properties = append(referenceable.Properties, h.StringAttribute("qualifiedName", "", ""))
	h.AddEntityDef(referenceable)

	asset := h.EntityDef("896d14c2-7522-4f6c-8519-757711943fe6", "Asset", "Referenceable", "", "")
	asset.Properties = append(asset.Properties, h.StringAttribute("name", "", ""), h.StringAttribute("owner", "", ""))
	h.AddEntityDef(asset)

	if err := h.Err(); err != nil {
		t.Fatalf("setting up builder: %v", err)
	}

	return h
}

func TestBuilderNilDefinitions(t *testing.T) {
	b := NewBuilder(types.ArchiveProperties{})

	errs := []error{
		b.AddPrimitiveDef(nil),
		b.AddCollectionDef(nil),
		b.AddEnumDef(nil),
		b.AddEntityDef(nil),
		b.AddRelationshipDef(nil),
		b.AddClassificationDef(nil),
		b.AddTypeDefPatch(nil),
	}

	for idx, err := range errs {
		if !errors.Is(err, ErrNilDefinition) {
			t.Errorf("%d: expected ErrNilDefinition, but got %v", idx, err)
		}
	}
}

func TestBuilderRejects(t *testing.T) {
	tests := []struct {
		name     string
		add      func(h *Helper) error
		expected error
	}{
		{"bad guid", func(h *Helper) error {
			return h.Builder().AddEntityDef(h.EntityDef("wibble", "Process", "Asset", "", ""))
		}, ErrInvalidGUID},
		{"duplicate guid", func(h *Helper) error {
			return h.Builder().AddEntityDef(h.EntityDef("896d14c2-7522-4f6c-8519-757711943fe6", "Process", "Asset", "", ""))
		}, ErrDuplicateGUID},
		{"duplicate name", func(h *Helper) error {
			return h.Builder().AddEntityDef(h.EntityDef(types.NewGUID().String(), "Asset", "Referenceable", "", ""))
		}, ErrDuplicateName},
		{"missing name", func(h *Helper) error {
			return h.Builder().AddEntityDef(h.EntityDef(types.NewGUID().String(), "", "", "", ""))
		}, ErrMissingName},
		{"unknown super type", func(h *Helper) error {
			def := h.EntityDef(types.NewGUID().String(), "Process", "", "", "")
			def.SuperType = &types.TypeDefLink{GUID: types.NewGUID(), Name: "Wibble"}
			return h.Builder().AddEntityDef(def)
		}, ErrUnknownType},
		{"wrong category", func(h *Helper) error {
			def := h.EntityDef(types.NewGUID().String(), "Process", "Asset", "", "")
			def.Category = types.RelationshipCategory
			return h.Builder().AddEntityDef(def)
		}, ErrCategoryMismatch},
		{"classification extends entity", func(h *Helper) error {
			def := h.ClassificationDef(types.NewGUID().String(), "Confidentiality", "", []string{"Asset"}, "", "", true)
			def.SuperType = &types.TypeDefLink{GUID: "896d14c2-7522-4f6c-8519-757711943fe6", Name: "Asset"}
			return h.Builder().AddClassificationDef(def)
		}, ErrCategoryMismatch},
		{"unknown attribute type", func(h *Helper) error {
			def := h.EntityDef(types.NewGUID().String(), "Process", "Asset", "", "")
			def.Properties = []types.TypeDefAttribute{{Name: "formula", Type: types.AttributeTypeLink{GUID: types.NewGUID(), Name: "string"}}}
			return h.Builder().AddEntityDef(def)
		}, ErrUnknownType},
		{"duplicate attribute", func(h *Helper) error {
			def := h.EntityDef(types.NewGUID().String(), "Process", "Asset", "", "")
			def.Properties = []types.TypeDefAttribute{h.StringAttribute("formula", "", ""), h.StringAttribute("formula", "", "")}
			return h.Builder().AddEntityDef(def)
		}, ErrDuplicateName},
		{"duplicate enum value", func(h *Helper) error {
			def := h.EnumDef(types.NewGUID().String(), "Colour", "", "")
			def.Elements = []types.EnumElementDef{h.EnumElementDef(0, "red", "", ""), h.EnumElementDef(1, "red", "", "")}
			return h.Builder().AddEnumDef(def)
		}, ErrDuplicateName},
		{"primitive with wrong category", func(h *Helper) error {
			def := h.PrimitiveDef(types.PrimitiveLong, types.NewGUID().String())
			def.Category = types.EnumCategory
			return h.Builder().AddPrimitiveDef(def)
		}, ErrCategoryMismatch},
		{"relationship to unknown entity", func(h *Helper) error {
			def := h.RelationshipDef(types.NewGUID().String(), "ProcessInput", "", "", "", types.PropagateNone)
			def.EndDef1 = h.RelationshipEndDef("Asset", "inputs", "", "", types.EndAnyNumber)
			def.EndDef2 = types.RelationshipEndDef{EntityType: types.TypeDefLink{GUID: types.NewGUID(), Name: "Process"}, AttributeName: "process"}
			return h.Builder().AddRelationshipDef(def)
		}, ErrUnknownType},
		{"relationship ends with the same name", func(h *Helper) error {
			def := h.RelationshipDef(types.NewGUID().String(), "AssetLink", "", "", "", types.PropagateNone)
			def.EndDef1 = h.RelationshipEndDef("Asset", "linked", "", "", types.EndAnyNumber)
			def.EndDef2 = h.RelationshipEndDef("Asset", "linked", "", "", types.EndAnyNumber)
			return h.Builder().AddRelationshipDef(def)
		}, ErrDuplicateName},
		{"patch for unknown type", func(h *Helper) error {
			return h.Builder().AddTypeDefPatch(&types.TypeDefPatch{TypeDefName: "Wibble", ApplyToVersion: 1, UpdateToVersion: 2})
		}, ErrUnknownType},
		{"patch for old version", func(h *Helper) error {
			patch := h.PatchForType("Asset")
			patch.ApplyToVersion = 0
			return h.Builder().AddTypeDefPatch(patch)
		}, ErrVersionMismatch},
	}

	for _, test := range tests {
		h := newTestHelper(t)
		before := h.Builder().Archive()

		if err := test.add(h); !errors.Is(err, test.expected) {
			t.Errorf("%s: expected %v, but got %v", test.name, test.expected, err)
		}

		if diff := cmp.Diff(before, h.Builder().Archive()); diff != "" {
			t.Errorf("%s: rejected definition changed the archive (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestBuilderPatchesChain(t *testing.T) {
	h := newTestHelper(t)

	first := h.PatchForType("Asset")
	first.Properties = []types.TypeDefAttribute{h.IntAttribute("zoneCount", "", "")}
	h.AddTypeDefPatch(first)

	second := h.PatchForType("Asset")
	owner := h.StringAttribute("owner", "", "")
	owner.Status = types.DeprecatedAttribute
	second.Properties = []types.TypeDefAttribute{owner}
	h.AddTypeDefPatch(second)

	if err := h.Err(); err != nil {
		t.Fatal(err)
	}

	if second.ApplyToVersion != 2 || second.UpdateToVersion != 3 || second.NewVersionName != "3.0" {
		t.Errorf("expected the second patch to move 2 -> 3.0, but got %d -> %s", second.ApplyToVersion, second.NewVersionName)
	}

	_, version, err := h.Builder().TypeDefVersion("Asset")
	if err != nil {
		t.Fatal(err)
	}
	if version != 3 {
		t.Errorf("expected Asset at version 3, but got %d", version)
	}

	asset, err := h.Builder().GetEntityDef("Asset")
	if err != nil {
		t.Fatal(err)
	}

	names := []string{}
	for _, attr := range asset.Properties {
		names = append(names, attr.Name)
	}
	if diff := cmp.Diff([]string{"name", "owner", "zoneCount"}, names); diff != "" {
		t.Errorf("attribute names mismatch (-want +got):\n%s", diff)
	}
	if prop, _ := asset.Property("owner"); !prop.Deprecated() {
		t.Error("expected owner to be deprecated")
	}

	archive := h.Builder().Archive()
	if len(archive.TypeStore.TypeDefPatches) != 2 {
		t.Errorf("expected 2 patches, but got %d", len(archive.TypeStore.TypeDefPatches))
	}
	for _, def := range archive.TypeStore.EntityDefs {
		if def.Version != 1 {
			t.Errorf("expected stored %s to stay at version 1, but got %d", def.Name, def.Version)
		}
	}
}

func TestBuilderGetCopies(t *testing.T) {
	h := newTestHelper(t)

	asset, err := h.Builder().GetEntityDef("Asset")
	if err != nil {
		t.Fatal(err)
	}
	asset.Name = "Wibble"
	asset.Properties[0].Name = "wibble"

	again, _ := h.Builder().GetEntityDef("Asset")
	if again.Name != "Asset" || again.Properties[0].Name != "name" {
		t.Error("expected GetEntityDef to return a copy")
	}

	if _, err := h.Builder().GetRelationshipDef("Asset"); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch, but got %v", err)
	}
	if _, err := h.Builder().GetEnumDef("string"); !errors.Is(err, ErrCategoryMismatch) {
		t.Errorf("expected ErrCategoryMismatch, but got %v", err)
	}
	if _, err := h.Builder().GetPrimitiveDef("wibble"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, but got %v", err)
	}
}

func TestHelperStickyError(t *testing.T) {
	h := newTestHelper(t)

	h.AddEntityDef(h.EntityDef(types.NewGUID().String(), "Process", "Wibble", "", ""))
	first := h.Err()
	if !errors.Is(first, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, but got %v", first)
	}

	h.AddEntityDef(h.EntityDef("not a guid", "Process", "Asset", "", ""))
	h.AddTypeDefPatch(h.PatchForType("Nope"))

	if h.Err() != first {
		t.Errorf("expected the first error to stick, but got %v", h.Err())
	}
	if h.GetEntityDef("Asset") != nil {
		t.Error("expected GetEntityDef to return nil once an error is held")
	}
	if n := len(h.Builder().Archive().TypeStore.EntityDefs); n != 2 {
		t.Errorf("expected nothing to be added after the error, but have %d entities", n)
	}
}

func TestHelperStamps(t *testing.T) {
	h := newTestHelper(t)

	def := h.EntityDef(types.NewGUID().String(), "Process", "Asset", "a process", "")
	if def.CreatedBy != "tester" || !def.CreateTime.Equal(testCreation) || def.Origin != types.GUID(testOrigin) {
		t.Errorf("expected definition stamped with the helper's release, but got %s %s %s", def.CreatedBy, def.CreateTime, def.Origin)
	}
	if def.SuperType == nil || def.SuperType.Name != "Asset" {
		t.Errorf("expected super type Asset, but got %v", def.SuperType)
	}

	attr := h.ArrayStringAttribute("tags", "", "")
	if attr.Cardinality != types.AnyNumberUnordered || attr.Type.Name != "array<string>" {
		t.Errorf("expected an unordered array<string>, but got %s %s", attr.Cardinality, attr.Type.Name)
	}
	if h.Err() == nil {
		t.Error("expected an error for the missing array<string> collection")
	}
}

func TestCollectionName(t *testing.T) {
	tests := []struct {
		category types.CollectionDefCategory
		args     []types.PrimitiveDefCategory
		expected string
	}{
		{types.CollectionMap, []types.PrimitiveDefCategory{types.PrimitiveString, types.PrimitiveInt}, "map<string,int>"},
		{types.CollectionArray, []types.PrimitiveDefCategory{types.PrimitiveString}, "array<string>"},
	}

	for _, test := range tests {
		if name := CollectionName(test.category, test.args...); name != test.expected {
			t.Errorf("expected %s, but got %s", test.expected, name)
		}
	}
}
