package releases

import (
	"time"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

var Release1_4 = &Release{
	Version:      "1.4",
	GUID:         "b9cdfdbe-7233-4420-8ebf-e78aae33e834",
	Name:         "Open Metadata Types",
	Description:  "Adds confidentiality levels and retires the Infrastructure type.",
	CreationDate: time.Date(2025, time.February, 3, 9, 0, 0, 0, time.UTC),
	Previous:     Release1_3,
	update:       update1_4,
}

func update1_4(h *archive.Helper) {
	addGovernanceClassificationStatusEnum(h)
	h.AddClassificationDef(confidentialityClassification(h))

	h.AddTypeDefPatch(deprecateInfrastructure(h))
	h.AddTypeDefPatch(updateCollectionType(h))
	h.AddTypeDefPatch(updateOwnershipPropertyName(h))
}

func addGovernanceClassificationStatusEnum(h *archive.Helper) {
	enum := h.EnumDef(
		"06e40e09-d1ca-443b-b43e-7904212b7829",
		"GovernanceClassificationStatus",
		"Defines the status values of a governance action classification.",
		"",
	)

	enum.Elements = []types.EnumElementDef{
		h.EnumElementDef(0, "Discovered", "The classification assignment was discovered by an automated process.", ""),
		h.EnumElementDef(1, "Proposed", "The classification assignment was proposed by a subject matter expert.", ""),
		h.EnumElementDef(2, "Imported", "The classification assignment was imported from another metadata system.", ""),
		h.EnumElementDef(3, "Validated", "The classification assignment has been validated and approved.", ""),
		h.EnumElementDef(4, "Deprecated", "The classification assignment should no longer be used.", ""),
		h.EnumElementDef(99, "Other", "Another classification assignment status.", ""),
	}
	enum.DefaultValue = &enum.Elements[3]

	h.AddEnumDef(enum)
}

func confidentialityClassification(h *archive.Helper) *types.ClassificationDef {
	classification := h.ClassificationDef(
		"400a3468-d370-491f-beb8-ee9bf51f75f4",
		"Confidentiality",
		"",
		[]string{"Referenceable"},
		"Defines the level of confidentiality of related data items.",
		"",
		true,
	)

	level := h.IntAttribute("levelIdentifier", "Level of confidentiality.", "")
	level.Cardinality = types.OneOnly
	level.ValuesMinCount = 1

	classification.Properties = []types.TypeDefAttribute{
		level,
		h.EnumAttribute("GovernanceClassificationStatus", "status", "Status of this classification.", ""),
		h.IntAttribute("confidence", "Level of confidence in the classification (0=none -> 100=excellent).", ""),
		h.StringAttribute("steward", "Person responsible for maintaining this classification.", ""),
		h.StringAttribute("source", "Source of the classification.", ""),
		h.StringAttribute("notes", "Information relating to the classification.", ""),
	}

	return classification
}

func deprecateInfrastructure(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Infrastructure")

	patch.SetStatus(types.DeprecatedTypeDef)
	patch.Description = "Deprecated: catalog platforms and hosts as assets with a deployed implementation type."

	return patch
}

func updateCollectionType(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Collection")

	patch.Properties = []types.TypeDefAttribute{
		h.StringAttribute("collectionType", "Descriptive name of the concept that this collection represents.", ""),
	}

	return patch
}

func updateOwnershipPropertyName(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Ownership")

	patch.Properties = []types.TypeDefAttribute{
		h.StringAttribute("ownerPropertyName", "Name of the property that identifies the owner in the owner's profile.", ""),
	}

	return patch
}
