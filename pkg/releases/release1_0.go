package releases

import (
	"time"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

var Release1_0 = &Release{
	Version:      "1.0",
	GUID:         "b26c6dc4-b1bb-46b1-8060-160506a9e416",
	Name:         "Open Metadata Types",
	Description:  "Base types for the open metadata type system.",
	CreationDate: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC),
	update:       update1_0,
}

func update1_0(h *archive.Helper) {
	addPrimitives1_0(h)
	addCollections1_0(h)
	addAssetOwnerTypeEnum(h)

	h.AddEntityDef(openMetadataRootEntity(h))
	h.AddEntityDef(referenceableEntity(h))
	h.AddEntityDef(assetEntity(h))
	h.AddEntityDef(infrastructureEntity(h))
	h.AddEntityDef(processEntity(h))
	h.AddEntityDef(dataSetEntity(h))
	h.AddEntityDef(actorProfileEntity(h))
	h.AddEntityDef(teamEntity(h))
	h.AddEntityDef(personEntity(h))

	h.AddRelationshipDef(teamMembershipRelationship(h))
	h.AddRelationshipDef(processInputRelationship(h))

	h.AddClassificationDef(mementoClassification(h))
}

func addPrimitives1_0(h *archive.Helper) {
	primitives := []struct {
		category types.PrimitiveDefCategory
		guid     string
	}{
		{types.PrimitiveBoolean, "83ea8682-e142-46dd-b578-d7b443b2b523"},
		{types.PrimitiveByte, "cd3a2266-4de9-4c70-be11-51af3164eaf4"},
		{types.PrimitiveChar, "ee85a081-ffd1-4a19-90d5-b1e663c14941"},
		{types.PrimitiveShort, "a986223e-88bd-48f7-998c-c1fd0e061938"},
		{types.PrimitiveInt, "fc89c2be-544a-4926-b162-601e7b856179"},
		{types.PrimitiveLong, "d3940e45-342c-4bb5-8a91-1de1c4db60c0"},
		{types.PrimitiveFloat, "263dd89c-bcea-46de-b1ae-ce77f79cf121"},
		{types.PrimitiveDouble, "3bc924ed-633f-4507-97b3-c19e23be9a2e"},
		{types.PrimitiveBigInteger, "8ced8288-8a7b-4492-b4d9-bc0acea3e806"},
		{types.PrimitiveBigDecimal, "0d5c2985-6397-4147-9c09-67ad1cea5665"},
		{types.PrimitiveString, "0ba579cd-a4e8-4488-8529-a8becbc5fd80"},
		{types.PrimitiveDate, "7f24dd45-df2a-4bee-a17c-5ac1536eb82f"},
	}

	for _, p := range primitives {
		h.AddPrimitiveDef(h.PrimitiveDef(p.category, p.guid))
	}
}

func addCollections1_0(h *archive.Helper) {
	h.AddCollectionDef(h.CollectionDef(
		types.CollectionMap, "0037c381-6444-4ffa-a221-56ebffc3a4e9",
		"A map from String to String.",
		types.PrimitiveString, types.PrimitiveString,
	))
	h.AddCollectionDef(h.CollectionDef(
		types.CollectionArray, "597ecbea-05b3-4ec8-85a3-40c4c1a1a260",
		"An array of Strings.",
		types.PrimitiveString,
	))
	h.AddCollectionDef(h.CollectionDef(
		types.CollectionMap, "a63586d4-7a45-459c-800b-de40e04f8901",
		"A map from String to int.",
		types.PrimitiveString, types.PrimitiveInt,
	))
}

func addAssetOwnerTypeEnum(h *archive.Helper) {
	enum := h.EnumDef(
		"dbb9d8e6-d1f0-4687-b7a0-95e1b96205ea",
		"AssetOwnerType",
		"Type of identifier that identifies the owner of an asset.",
		"",
	)

	enum.Elements = []types.EnumElementDef{
		h.EnumElementDef(0, "UserId", "The owner's userId is specified.", ""),
		h.EnumElementDef(1, "ProfileId", "The unique identifier of the owner's profile is specified.", ""),
		h.EnumElementDef(99, "Other", "Another type of owner identifier, see property description.", ""),
	}
	enum.DefaultValue = &enum.Elements[0]

	h.AddEnumDef(enum)
}

func openMetadataRootEntity(h *archive.Helper) *types.EntityDef {
	return h.EntityDef(
		"8c3fa51e-5ae1-4bf2-88a5-fbd12f21bced",
		"OpenMetadataRoot",
		"",
		"Common root for all open metadata entity types.",
		"",
	)
}

func referenceableEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"e49fb26b-728d-4d17-a2e6-fb975ba0cbdd",
		"Referenceable",
		"OpenMetadataRoot",
		"An open metadata entity that has a unique identifier.",
		"",
	)

	qualifiedName := h.StringAttribute("qualifiedName", "Unique identifier for the entity.", "")
	qualifiedName.Cardinality = types.OneOnly
	qualifiedName.ValuesMinCount = 1
	qualifiedName.Unique = true

	entity.Properties = []types.TypeDefAttribute{
		qualifiedName,
		h.MapStringStringAttribute("additionalProperties", "Additional properties for the element.", ""),
	}

	return entity
}

func assetEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"4247c105-3470-4231-9503-4fd62c18ce91",
		"Asset",
		"Referenceable",
		"The description of an asset that needs to be catalogued and governed.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("name", "Display name for the asset.", ""),
		h.StringAttribute("description", "Description of the asset.", ""),
		h.StringAttribute("owner", "User identifier for the person responsible for the asset.", ""),
		h.EnumAttribute("AssetOwnerType", "ownerType", "Type of identifier used for owner property.", ""),
	}

	return entity
}

func infrastructureEntity(h *archive.Helper) *types.EntityDef {
	return h.EntityDef(
		"aee8462e-ba61-4b52-928f-0f6daa5954a4",
		"Infrastructure",
		"Asset",
		"Physical infrastructure or software platform.",
		"",
	)
}

func processEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"6a9b9c65-e7c5-46de-8687-097414a22860",
		"Process",
		"Asset",
		"Well-defined sequence of activities performed by people or software components.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("formula", "Function that determines the subset of the data that flows.", ""),
	}

	return entity
}

func dataSetEntity(h *archive.Helper) *types.EntityDef {
	return h.EntityDef(
		"9bef4d5e-bbf5-4d62-94db-4fbcd9bf2b31",
		"DataSet",
		"Asset",
		"Collection of related data.",
		"",
	)
}

func actorProfileEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"90390aa4-4b11-4ca0-8928-f1093125bb49",
		"ActorProfile",
		"Referenceable",
		"Description of a person, team or automated process that is working with data.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("name", "Name of the person or team.", ""),
		h.StringAttribute("description", "Description of the person or team.", ""),
	}

	return entity
}

func teamEntity(h *archive.Helper) *types.EntityDef {
	return h.EntityDef(
		"3acb6490-4715-46b1-b65b-c84831238e08",
		"Team",
		"ActorProfile",
		"Group of people working together.",
		"",
	)
}

func personEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"5d164563-c30f-451c-9e40-bb4e48266a20",
		"Person",
		"ActorProfile",
		"An individual.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("fullName", "Full or official name of the individual.", ""),
		h.StringAttribute("jobTitle", "Description of the individual's role in the organization.", ""),
	}

	return entity
}

func teamMembershipRelationship(h *archive.Helper) *types.RelationshipDef {
	rel := h.RelationshipDef(
		"45906aee-7c13-4221-9f7a-ad1a2b53fd01",
		"TeamMembership",
		"",
		"The people who belong to a team.",
		"",
		types.PropagateNone,
	)

	rel.EndDef1 = h.RelationshipEndDef("Team", "teams", "The teams that this person is a member of.", "", types.EndAnyNumber)
	rel.EndDef2 = h.RelationshipEndDef("Person", "members", "The people in this team.", "", types.EndAnyNumber)

	rel.Properties = []types.TypeDefAttribute{
		h.StringAttribute("role", "The role the person plays in the team.", ""),
	}

	return rel
}

func processInputRelationship(h *archive.Helper) *types.RelationshipDef {
	rel := h.RelationshipDef(
		"e43b0dc1-fbb4-4f50-9bbe-f4d8c0b3a619",
		"ProcessInput",
		"",
		"The data sets a process reads.",
		"",
		types.PropagateNone,
	)

	rel.EndDef1 = h.RelationshipEndDef("Process", "consumedByProcesses", "The processes that read this data set.", "", types.EndAnyNumber)
	rel.EndDef2 = h.RelationshipEndDef("DataSet", "inputs", "The data sets this process reads.", "", types.EndAnyNumber)

	return rel
}

func mementoClassification(h *archive.Helper) *types.ClassificationDef {
	classification := h.ClassificationDef(
		"db17a26e-c9fc-41fe-b9bf-c17c96920163",
		"Memento",
		"",
		[]string{"Referenceable"},
		"An element whose real-world counterpart has been deleted or archived.",
		"",
		false,
	)

	classification.Properties = []types.TypeDefAttribute{
		h.DateAttribute("archiveDate", "Timestamp when the real-world counterpart was archived.", ""),
		h.StringAttribute("archiveUser", "Name of user that performed the archive.", ""),
	}

	return classification
}
