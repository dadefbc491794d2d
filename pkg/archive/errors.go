package archive

import (
	"errors"

	"github.com/uswitch/typearchive/pkg/types"
)

var (
	ErrNilDefinition    = errors.New("definition is nil")
	ErrInvalidGUID      = errors.New("invalid guid")
	ErrMissingName      = errors.New("definition has no name")
	ErrDuplicateGUID    = errors.New("duplicate guid")
	ErrDuplicateName    = errors.New("duplicate name")
	ErrUnknownType      = errors.New("unknown type")
	ErrCategoryMismatch = errors.New("category mismatch")
	ErrVersionMismatch  = types.ErrVersionMismatch
)
