package docs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/releases"
)

func latest(t *testing.T) *accessor.Accessor {
	t.Helper()

	archive, err := releases.Latest().Archive()
	require.NoError(t, err)

	acc, err := accessor.New(archive)
	require.NoError(t, err)

	return acc
}

func TestMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, latest(t)))

	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Open Metadata Types 1.4\n"))
	assert.Contains(t, out, "## Entities")
	assert.Contains(t, out, "## Relationships")
	assert.Contains(t, out, "## Classifications")
	assert.Contains(t, out, "## Enumerations")

	assert.Contains(t, out, "### ~~Infrastructure~~ (deprecated)")
	assert.Contains(t, out, "| ~~owner~~ (deprecated) |")
	assert.Contains(t, out, "Replaced by `Ownership.owner`.")
	assert.Contains(t, out, "- End 2: Team as `leadsTeam` (any_number)")
	assert.Contains(t, out, "| 3 | Validated (default) |")
}

func TestMarkdownSectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown(&buf, latest(t)))

	out := buf.String()

	entities := strings.Index(out, "## Entities")
	relationships := strings.Index(out, "## Relationships")
	classifications := strings.Index(out, "## Classifications")

	assert.Less(t, entities, relationships)
	assert.Less(t, relationships, classifications)

	assert.Less(t, strings.Index(out, "### Asset\n"), strings.Index(out, "### Collection\n"))
}

func TestMarkdownIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	require.NoError(t, Markdown(&a, latest(t)))
	require.NoError(t, Markdown(&b, latest(t)))

	assert.Equal(t, a.String(), b.String())
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, latest(t)))

	out := buf.String()

	assert.Contains(t, out, "<h1>Open Metadata Types 1.4</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<del>Infrastructure</del>")
}
