package docs

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

var sections = []struct {
	title    string
	category types.TypeDefCategory
}{
	{"Entities", types.EntityCategory},
	{"Relationships", types.RelationshipCategory},
	{"Classifications", types.ClassificationCategory},
}

// Markdown writes a reference for every type def and enum in acc. Deprecated types and
// attributes are struck through.
func Markdown(w io.Writer, acc *accessor.Accessor) error {
	var buf bytes.Buffer

	props := acc.Properties()
	fmt.Fprintf(&buf, "# %s %s\n\n", props.Name, props.Version)
	if props.Description != "" {
		fmt.Fprintf(&buf, "%s\n\n", props.Description)
	}
	fmt.Fprintf(&buf, "Archive `%s`, created %s.\n\n", props.GUID, props.CreationDate.Format("2006-01-02"))

	for _, section := range sections {
		defs := acc.TypeDefs(accessor.ListOptions{
			Category:        section.category,
			NumberOfResults: uint(acc.Count(section.category)),
		})
		if len(defs) == 0 {
			continue
		}

		fmt.Fprintf(&buf, "## %s\n\n", section.title)

		for _, def := range defs {
			if err := writeTypeDef(&buf, acc, def); err != nil {
				return err
			}
		}
	}

	if enums := acc.EnumDefs(); len(enums) > 0 {
		fmt.Fprintf(&buf, "## Enumerations\n\n")

		for _, enum := range enums {
			writeEnumDef(&buf, enum)
		}
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func heading(name string, deprecated bool) string {
	if deprecated {
		return fmt.Sprintf("~~%s~~ (deprecated)", name)
	}
	return name
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

func writeTypeDef(buf *bytes.Buffer, acc *accessor.Accessor, def types.Definition) error {
	base := def.Base()

	fmt.Fprintf(buf, "### %s\n\n", heading(base.Name, base.Status == types.DeprecatedTypeDef))
	if base.Description != "" {
		fmt.Fprintf(buf, "%s\n\n", base.Description)
	}

	fmt.Fprintf(buf, "- GUID: `%s`\n", base.GUID)
	fmt.Fprintf(buf, "- Version: %d\n", base.Version)
	if base.SuperType != nil {
		fmt.Fprintf(buf, "- Super type: %s\n", base.SuperType.Name)
	}

	switch typed := def.(type) {
	case *types.RelationshipDef:
		fmt.Fprintf(buf, "- Propagation: %s\n", typed.PropagationRule)
		for idx, end := range typed.Ends() {
			fmt.Fprintf(buf, "- End %d: %s as `%s` (%s)\n", idx+1, end.EntityType.Name, end.AttributeName, end.Cardinality)
		}
	case *types.ClassificationDef:
		names := make([]string, len(typed.ValidEntityDefs))
		for idx, link := range typed.ValidEntityDefs {
			names[idx] = link.Name
		}
		fmt.Fprintf(buf, "- Classifies: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(buf, "- Propagatable: %t\n", typed.Propagatable)
	}
	buf.WriteString("\n")

	attributes, err := acc.Attributes(base.Name, true)
	if err != nil {
		return err
	}

	if len(attributes) > 0 {
		buf.WriteString("| Attribute | Type | Cardinality | Description |\n")
		buf.WriteString("|---|---|---|---|\n")

		for _, attr := range attributes {
			description := attr.Description
			if attr.ReplacedByAttribute != "" {
				description = fmt.Sprintf("%s Replaced by `%s`.", description, attr.ReplacedByAttribute)
			}

			fmt.Fprintf(buf, "| %s | %s | %s | %s |\n",
				heading(attr.Name, attr.Deprecated()),
				cell(attr.Type.Name),
				attr.Cardinality,
				cell(description),
			)
		}
		buf.WriteString("\n")
	}

	return nil
}

func writeEnumDef(buf *bytes.Buffer, enum *types.EnumDef) {
	fmt.Fprintf(buf, "### %s\n\n", enum.Name)
	if enum.Description != "" {
		fmt.Fprintf(buf, "%s\n\n", enum.Description)
	}

	buf.WriteString("| Ordinal | Value | Description |\n")
	buf.WriteString("|---|---|---|\n")
	for _, element := range enum.Elements {
		value := element.Value
		if enum.DefaultValue != nil && enum.DefaultValue.Value == element.Value {
			value += " (default)"
		}
		fmt.Fprintf(buf, "| %d | %s | %s |\n", element.Ordinal, value, cell(element.Description))
	}
	buf.WriteString("\n")
}

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// HTML renders the Markdown reference as an HTML fragment.
func HTML(w io.Writer, acc *accessor.Accessor) error {
	var md bytes.Buffer
	if err := Markdown(&md, acc); err != nil {
		return err
	}

	if err := renderer.Convert(md.Bytes(), w); err != nil {
		return fmt.Errorf("failed to process markdown: %w", err)
	}

	return nil
}
