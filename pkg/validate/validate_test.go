package validate

import (
	"errors"
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

func instance(typeName string, props Properties) *Instance {
	return &Instance{
		Metadata:   Metadata{GUID: "0d7e4bd2-6a4b-4d3c-9f36-2d1c8b7a6e51", Type: typeName},
		Properties: props,
	}
}

func TestValidInstance(t *testing.T) {
	report, err := Validate(latest(t), instance("Asset", Properties{
		"qualifiedName": "asset::orders",
		"name":          "orders",
		"additionalProperties": map[string]interface{}{
			"team": "payments",
		},
	}))
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestRequiredAttribute(t *testing.T) {
	report, err := Validate(latest(t), instance("Asset", Properties{"name": "orders"}))
	require.NoError(t, err)

	assert.False(t, report.Valid())
}

func TestUnknownAttribute(t *testing.T) {
	report, err := Validate(latest(t), instance("Asset", Properties{
		"qualifiedName": "asset::orders",
		"wibble":        "bibble",
	}))
	require.NoError(t, err)

	assert.False(t, report.Valid())
}

func TestDeprecatedAttributeWarns(t *testing.T) {
	report, err := Validate(latest(t), instance("Asset", Properties{
		"qualifiedName": "asset::orders",
		"owner":         "jane",
	}))
	require.NoError(t, err)

	assert.True(t, report.Valid())
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].PropertyPath, "owner")
	assert.Contains(t, report.Warnings[0].Message, "replaced by Ownership.owner")
}

func TestDeprecatedTypeWarns(t *testing.T) {
	report, err := Validate(latest(t), instance("Infrastructure", Properties{
		"qualifiedName": "infra::k8s",
	}))
	require.NoError(t, err)

	assert.True(t, report.Valid())
	assert.NotEmpty(t, report.Warnings)
}

func TestAttributeTypes(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		props    Properties
		valid    bool
	}{
		{"enum value", "Ownership", Properties{"owner": "jane", "ownerType": "ProfileId"}, true},
		{"bad enum value", "Ownership", Properties{"owner": "jane", "ownerType": "Wibble"}, false},
		{"date as millis", "Memento", Properties{"archiveDate": 1700000000000}, true},
		{"date as string", "Memento", Properties{"archiveDate": "yesterday"}, false},
		{"map of strings", "Asset", Properties{"qualifiedName": "q", "additionalProperties": map[string]interface{}{"a": 1}}, false},
		{"array of strings", "Asset", Properties{"qualifiedName": "q", "zoneMembership": []interface{}{"a", "b"}}, true},
		{"bad array", "Asset", Properties{"qualifiedName": "q", "zoneMembership": "a"}, false},
		{"int in range", "Confidentiality", Properties{"levelIdentifier": 3}, true},
		{"int out of range", "Confidentiality", Properties{"levelIdentifier": 1 << 40}, false},
		{"missing one only int", "Confidentiality", Properties{"steward": "jane"}, false},
	}

	acc := latest(t)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			report, err := Validate(acc, instance(test.typeName, test.props))
			require.NoError(t, err)

			assert.Equal(t, test.valid, report.Valid(), "errors: %v", report.Errors)
		})
	}
}

func TestUnknownType(t *testing.T) {
	_, err := Validate(latest(t), instance("Wibble", nil))

	assert.True(t, errors.Is(err, accessor.ErrNotFound))
}

func TestBadGUID(t *testing.T) {
	inst := instance("Asset", Properties{"qualifiedName": "q"})
	inst.Metadata.GUID = "not-a-guid"

	report, err := Validate(latest(t), inst)
	require.NoError(t, err)

	assert.False(t, report.Valid())
}

func TestParse(t *testing.T) {
	inst, err := Parse([]byte(`{"metadata": {"guid": "0d7e4bd2-6a4b-4d3c-9f36-2d1c8b7a6e51", "type": "Asset"}}`))
	require.NoError(t, err)

	assert.Equal(t, "Asset", inst.Metadata.Type)
	assert.NotNil(t, inst.Properties)

	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}
