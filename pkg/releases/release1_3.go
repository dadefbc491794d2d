package releases

import (
	"time"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

var Release1_3 = &Release{
	Version:      "1.3",
	GUID:         "dd8b3a8c-76c0-455c-99f0-8e76ee44d8a3",
	Name:         "Open Metadata Types",
	Description:  "Adds data stores and lets a person lead several teams.",
	CreationDate: time.Date(2024, time.October, 21, 9, 0, 0, 0, time.UTC),
	Previous:     Release1_2,
	update:       update1_3,
}

func update1_3(h *archive.Helper) {
	h.AddEntityDef(dataStoreEntity(h))
	h.AddEntityDef(databaseEntity(h))
	h.AddEntityDef(dataFileEntity(h))
	h.AddRelationshipDef(dataContentForDataSetRelationship(h))

	h.AddTypeDefPatch(updateTeamLeadershipCardinality(h))
	h.AddTypeDefPatch(updateProcessLanguage(h))
}

func dataStoreEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"4f9b6c81-eee6-4405-9ee3-4d90171ed7d6",
		"DataStore",
		"Asset",
		"A physical store of data.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.DateAttribute("storeCreateTime", "Creation time of the data store.", ""),
		h.DateAttribute("storeUpdateTime", "Last known modification time.", ""),
	}

	return entity
}

func databaseEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"3061835c-c2a3-45f6-b382-7afc15906f9a",
		"Database",
		"DataStore",
		"A data store containing relational data.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("deployedImplementationType", "Type of database.", ""),
		h.StringAttribute("databaseVersion", "The version number for this database.", ""),
		h.StringAttribute("instance", "The name of this database instance.", ""),
	}

	return entity
}

func dataFileEntity(h *archive.Helper) *types.EntityDef {
	entity := h.EntityDef(
		"ab2d3c4c-1251-4997-9693-ce74e155088b",
		"DataFile",
		"DataStore",
		"A data store containing a single file.",
		"",
	)

	entity.Properties = []types.TypeDefAttribute{
		h.StringAttribute("fileType", "File type descriptor, typically the extension.", ""),
	}

	return entity
}

func dataContentForDataSetRelationship(h *archive.Helper) *types.RelationshipDef {
	rel := h.RelationshipDef(
		"c9dfaa5f-c3b5-4d5f-b6eb-12910113cd53",
		"DataContentForDataSet",
		"",
		"The assets that provide data for a data set.",
		"",
		types.PropagateNone,
	)

	rel.EndDef1 = h.RelationshipEndDef("DataStore", "dataContent", "Stores that hold the content of this data set.", "", types.EndAnyNumber)
	rel.EndDef2 = h.RelationshipEndDef("DataSet", "supportedDataSets", "Data sets that use this store.", "", types.EndAnyNumber)

	return rel
}

func updateTeamLeadershipCardinality(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("TeamLeadership")

	end := h.RelationshipEndDef("Team", "leadsTeam", "The teams that this person leads.", "", types.EndAnyNumber)
	patch.EndDef2 = &end

	return patch
}

func updateProcessLanguage(h *archive.Helper) *types.TypeDefPatch {
	patch := h.PatchForType("Process")

	patch.Properties = []types.TypeDefAttribute{
		h.StringAttribute("implementationLanguage", "The language used to implement this process.", ""),
	}

	return patch
}
