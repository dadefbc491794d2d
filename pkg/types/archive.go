package types

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type ArchiveProperties struct {
	GUID              GUID        `json:"archiveGUID" yaml:"archiveGUID"`
	Name              string      `json:"archiveName" yaml:"archiveName"`
	Description       string      `json:"archiveDescription" yaml:"archiveDescription"`
	Type              ArchiveType `json:"archiveType" yaml:"archiveType"`
	Version           string      `json:"archiveVersion" yaml:"archiveVersion"`
	OriginatorName    string      `json:"originatorName" yaml:"originatorName"`
	OriginatorLicense string      `json:"originatorLicense" yaml:"originatorLicense"`
	CreationDate      time.Time   `json:"creationDate" yaml:"creationDate"`
	Dependencies      []GUID      `json:"dependsOnArchives,omitempty" yaml:"dependsOnArchives,omitempty"`
}

// ArchiveTypeStore keeps every kind of definition in the order it was added.
type ArchiveTypeStore struct {
	PrimitiveDefs      []*PrimitiveDef      `json:"primitiveDefs,omitempty" yaml:"primitiveDefs,omitempty"`
	CollectionDefs     []*CollectionDef     `json:"collectionDefs,omitempty" yaml:"collectionDefs,omitempty"`
	EnumDefs           []*EnumDef           `json:"enumDefs,omitempty" yaml:"enumDefs,omitempty"`
	EntityDefs         []*EntityDef         `json:"entityDefs,omitempty" yaml:"entityDefs,omitempty"`
	RelationshipDefs   []*RelationshipDef   `json:"relationshipDefs,omitempty" yaml:"relationshipDefs,omitempty"`
	ClassificationDefs []*ClassificationDef `json:"classificationDefs,omitempty" yaml:"classificationDefs,omitempty"`
	TypeDefPatches     []*TypeDefPatch      `json:"typeDefPatches,omitempty" yaml:"typeDefPatches,omitempty"`
}

type Archive struct {
	Properties ArchiveProperties `json:"archiveProperties" yaml:"archiveProperties"`
	TypeStore  ArchiveTypeStore  `json:"archiveTypeStore" yaml:"archiveTypeStore"`
}

func (a *Archive) Len() int {
	ts := a.TypeStore
	return len(ts.PrimitiveDefs) + len(ts.CollectionDefs) + len(ts.EnumDefs) +
		len(ts.EntityDefs) + len(ts.RelationshipDefs) + len(ts.ClassificationDefs)
}

// Fingerprint is the hex SHA-256 of the archive's JSON encoding. Two builds of the same
// release must always produce the same fingerprint.
func (a *Archive) Fingerprint() (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, YAML:
		return Format(s), nil
	case "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown archive format '%s'", s)
}

func (f Format) Ext() string { return "." + string(f) }

func EncodeArchive(w io.Writer, a *Archive, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(a); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown archive format '%s'", format)
}

func DecodeArchive(r io.Reader, format Format) (*Archive, error) {
	var a Archive

	switch format {
	case JSON:
		if err := json.NewDecoder(r).Decode(&a); err != nil {
			return nil, err
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&a); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown archive format '%s'", format)
	}

	return &a, nil
}

func MarshalArchive(a *Archive, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeArchive(&buf, a, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
