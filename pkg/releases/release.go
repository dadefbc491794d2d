package releases

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/types"
)

const (
	Originator        = "uswitch"
	OriginatorLicense = "Apache-2.0"
)

var (
	ErrNoBuilder      = errors.New("type defs must be added to an archive builder")
	ErrUnknownRelease = errors.New("unknown release")
)

// Release is one version of the open metadata type system. It knows only what changed
// since its Previous release; Populate replays the whole chain into a builder.
type Release struct {
	Version      string
	GUID         types.GUID
	Name         string
	Description  string
	CreationDate time.Time
	Previous     *Release

	update func(*archive.Helper)
}

func (r *Release) Properties() types.ArchiveProperties {
	return types.ArchiveProperties{
		GUID:              r.GUID,
		Name:              r.Name,
		Description:       r.Description,
		Type:              types.ContentPack,
		Version:           r.Version,
		OriginatorName:    Originator,
		OriginatorLicense: OriginatorLicense,
		CreationDate:      r.CreationDate,
	}
}

// Populate adds every definition and patch from this release and all the releases
// before it to b.
func (r *Release) Populate(b *archive.Builder) error {
	if b == nil {
		return ErrNoBuilder
	}

	if r.Previous != nil {
		if err := r.Previous.Populate(b); err != nil {
			return err
		}
	}

	h := archive.NewHelper(b, r.GUID, Originator, r.CreationDate)
	r.update(h)

	if err := h.Err(); err != nil {
		return fmt.Errorf("release %s: %w", r.Version, err)
	}

	return nil
}

func (r *Release) Archive(opts ...archive.Option) (*types.Archive, error) {
	b := archive.NewBuilder(r.Properties(), opts...)

	if err := r.Populate(b); err != nil {
		return nil, err
	}

	return b.Archive(), nil
}

var all = []*Release{
	Release1_0,
	Release1_1,
	Release1_2,
	Release1_3,
	Release1_4,
}

func canonical(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.Canonical(version)
}

// All returns every release, oldest first.
func All() []*Release {
	out := append([]*Release(nil), all...)

	sort.Slice(out, func(i, j int) bool {
		return semver.Compare(canonical(out[i].Version), canonical(out[j].Version)) < 0
	})

	return out
}

func Latest() *Release {
	releases := All()
	return releases[len(releases)-1]
}

// Lookup accepts "1.2", "v1.2" or "1.2.0". An empty version means the latest release.
func Lookup(version string) (*Release, error) {
	if version == "" {
		return Latest(), nil
	}

	want := canonical(version)
	if want == "" {
		return nil, fmt.Errorf("%w: '%s' is not a version", ErrUnknownRelease, version)
	}

	for _, r := range all {
		if canonical(r.Version) == want {
			return r, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownRelease, version)
}
