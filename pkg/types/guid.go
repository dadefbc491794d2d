package types

import (
	"fmt"

	"github.com/google/uuid"
)

type GUID string

func (g GUID) String() string { return string(g) }

// Validate reports whether the GUID is a well formed UUID. GUIDs are assigned once and
// never regenerated, so anything else is a typo in a hardcoded constant.
func (g GUID) Validate() error {
	if g == "" {
		return fmt.Errorf("guid is empty")
	}

	if _, err := uuid.Parse(string(g)); err != nil {
		return fmt.Errorf("guid '%s' is not a uuid: %v", g, err)
	}

	return nil
}

func NewGUID() GUID {
	return GUID(uuid.New().String())
}
