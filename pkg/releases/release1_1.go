package releases

import (
	"time"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

var Release1_1 = &Release{
	Version:      "1.1",
	GUID:         "0f6fa292-7713-4576-9781-13e5bb1abdd5",
	Name:         "Open Metadata Types",
	Description:  "Adds collections and governance zones for assets.",
	CreationDate: time.Date(2024, time.April, 2, 9, 0, 0, 0, time.UTC),
	Previous:     Release1_0,
	update:       update1_1,
}

func update1_1(h *archive.Helper) {
	h.AddEntityDef(collectionEntity(h))
	h.AddRelationshipDef(collectionMembershipRelationship(h))

	h.AddTypeDefPatch(updateAssetZones(h))
}

func collectionEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"8dbff0e8-5e4d-4048-8f08-c2698b9a016b",
		"Collection",
		"Referenceable",
		"A group of related items.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("name", "Name of the collection.", ""),
		h.StringAttribute("description", "Description of the collection.", ""),
	}

	return entity
}

func collectionMembershipRelationship(h *archive.Helper) *types.RelationshipDef {
	rel := h.RelationshipDef(
		"739c62bd-05c2-452c-af2a-cdcb0379ecb6",
		"CollectionMembership",
		"",
		"Identifies a member of a collection.",
		"",
		types.PropagateNone,
	)

	rel.EndDef1 = h.RelationshipEndDef("Collection", "foundInCollections", "Collections that link to this element.", "", types.EndAnyNumber)
	rel.EndDef2 = h.RelationshipEndDef("Referenceable", "members", "Members of this collection.", "", types.EndAnyNumber)

	rel.Properties = []types.TypeDefAttribute{
		h.StringAttribute("membershipRationale", "Why the element is a part of this collection.", ""),
	}

	return rel
}

func updateAssetZones(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Asset")

	patch.Properties = []types.TypeDefAttribute{
		h.ArrayStringAttribute("zoneMembership", "The list of zones that this asset belongs to.", ""),
		h.StringAttribute("latestChange", "Description of the last change to the asset's metadata.", ""),
	}

	return patch
}
