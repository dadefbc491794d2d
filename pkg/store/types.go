package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/uswitch/typearchive/pkg/types"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidArchive = errors.New("invalid archive")
)

// AnyArchive can be passed to Watch to be told about every archive that is put.
const AnyArchive types.GUID = "*"

type Store interface {
	Len(context.Context) (int, error)

	Put(context.Context, *types.Archive) error
	Get(context.Context, types.GUID) (*types.Archive, error)
	List(context.Context) ([]types.ArchiveProperties, error)

	Watch(context.Context, types.GUID) (chan *types.Archive, error)
}

func CheckArchive(archive *types.Archive) error {
	if archive == nil {
		return ErrInvalidArchive
	}

	if archive.Properties.GUID == "" || archive.Properties.GUID == AnyArchive {
		return ErrInvalidArchive
	}

	if err := archive.Properties.GUID.Validate(); err != nil {
		return errors.Join(ErrInvalidArchive, err)
	}

	ts := archive.TypeStore
	if hasNil(ts.PrimitiveDefs) || hasNil(ts.CollectionDefs) || hasNil(ts.EnumDefs) ||
		hasNil(ts.EntityDefs) || hasNil(ts.RelationshipDefs) || hasNil(ts.ClassificationDefs) ||
		hasNil(ts.TypeDefPatches) {
		return fmt.Errorf("%w: null definition in %s", ErrInvalidArchive, archive.Properties.GUID)
	}

	return nil
}

func hasNil[T any](defs []*T) bool {
	for _, def := range defs {
		if def == nil {
			return true
		}
	}
	return false
}

func canonical(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return version
}

// SortProperties orders archives by semantic version and then by name. Versions that are
// not valid semver sort before the ones that are.
func SortProperties(props []types.ArchiveProperties) {
	sort.SliceStable(props, func(i, j int) bool {
		if c := semver.Compare(canonical(props[i].Version), canonical(props[j].Version)); c != 0 {
			return c < 0
		}
		return strings.Compare(props[i].Name, props[j].Name) < 0
	})
}
