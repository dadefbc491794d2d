package releases

import (
	"time"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

var Release1_2 = &Release{
	Version:      "1.2",
	GUID:         "c04127ee-9d27-423d-85ae-3325550c56ac",
	Name:         "Open Metadata Types",
	Description:  "Moves ownership from assets to a classification and adds team leadership.",
	CreationDate: time.Date(2024, time.July, 8, 9, 0, 0, 0, time.UTC),
	Previous:     Release1_1,
	update:       update1_2,
}

func update1_2(h *archive.Helper) {
	h.AddClassificationDef(ownershipClassification(h))
	h.AddRelationshipDef(teamLeadershipRelationship(h))

	h.AddTypeDefPatch(deprecateAssetOwner(h))
}

func ownershipClassification(h *archive.Helper) *types.ClassificationDef {
	classification := h.ClassificationDef(
		"5ff840b3-a934-4945-b5de-b0c7b3244c57",
		"Ownership",
		"",
		[]string{"Referenceable"},
		"The owner of the element. The owner is responsible for its protection and use.",
		"",
		false,
	)

	owner := h.StringAttribute("owner", "Identifier of the owner.", "")
	owner.Cardinality = types.OneOnly
	owner.ValuesMinCount = 1

	classification.Properties = []types.TypeDefAttribute{
		owner,
		h.EnumAttribute("AssetOwnerType", "ownerType", "Type of identifier used in the owner property.", ""),
	}

	return classification
}

func teamLeadershipRelationship(h *archive.Helper) *types.RelationshipDef {
	rel := h.RelationshipDef(
		"3fedd59d-fd06-4357-9e04-ad784ae9f791",
		"TeamLeadership",
		"",
		"The people who lead a team.",
		"",
		types.PropagateNone,
	)

	rel.EndDef1 = h.RelationshipEndDef("Person", "teamLeaders", "The people leading this team.", "", types.EndAnyNumber)
	rel.EndDef2 = h.RelationshipEndDef("Team", "leadsTeam", "The team that this person leads.", "", types.EndAtMostOne)

	rel.Properties = []types.TypeDefAttribute{
		h.StringAttribute("position", "Title of the leadership position.", ""),
	}

	return rel
}

func deprecateAssetOwner(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Asset")

	owner := h.StringAttribute("owner", "Deprecated: use the Ownership classification.", "")
	owner.Status = types.DeprecatedAttribute
	owner.ReplacedByAttribute = "Ownership.owner"

	ownerType := h.EnumAttribute("AssetOwnerType", "ownerType", "Deprecated: use the Ownership classification.", "")
	ownerType.Status = types.DeprecatedAttribute
	ownerType.ReplacedByAttribute = "Ownership.ownerType"

	patch.Properties = []types.TypeDefAttribute{owner, ownerType}

	return patch
}
