package validate

import (
	"encoding/json"
	"time"

	"github.com/uswitch/typearchive/pkg/types"
)

type Properties map[string]interface{}

type Metadata struct {
	GUID      types.GUID `json:"guid"`
	Type      string     `json:"type"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Instance is a metadata element described by one of the archive's types.
type Instance struct {
	Metadata   Metadata   `json:"metadata"`
	Properties Properties `json:"properties"`
}

func Parse(raw []byte) (*Instance, error) {
	var inst Instance

	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, err
	}

	if inst.Properties == nil {
		inst.Properties = Properties{}
	}

	return &inst, nil
}
