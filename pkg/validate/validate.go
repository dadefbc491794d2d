package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/qri-io/jsonschema"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

const deprecatedPath = "/deprecated_attribute"

// DeprecatedAttribute never fails validation. It reports every use of a deprecated
// attribute so that Validate can turn those into warnings.
type DeprecatedAttribute string

func (d DeprecatedAttribute) String() string { return string(d) }
func (d DeprecatedAttribute) Validate(propPath string, data interface{}, errs *[]jsonschema.ValError) {
	*errs = append(*errs, jsonschema.ValError{
		PropertyPath: propPath,
		RulePath:     deprecatedPath,
		InvalidValue: data,
		Message:      string(d),
	})
}

func NewDeprecatedAttribute() jsonschema.Validator {
	return new(DeprecatedAttribute)
}

func init() {
	jsonschema.RegisterValidator("deprecated_attribute", NewDeprecatedAttribute)
}

type ValidationError struct {
	PropertyPath string `json:"property_path"`
	Message      string `json:"message"`
}

func (v ValidationError) String() string {
	if v.PropertyPath == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.PropertyPath, v.Message)
}

type Report struct {
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

func (r *Report) Valid() bool { return len(r.Errors) == 0 }

func primitiveSchema(category types.PrimitiveDefCategory) map[string]interface{} {
	switch category {
	case types.PrimitiveBoolean:
		return map[string]interface{}{"type": "boolean"}
	case types.PrimitiveByte:
		return map[string]interface{}{"type": "integer", "minimum": math.MinInt8, "maximum": math.MaxInt8}
	case types.PrimitiveShort:
		return map[string]interface{}{"type": "integer", "minimum": math.MinInt16, "maximum": math.MaxInt16}
	case types.PrimitiveInt:
		return map[string]interface{}{"type": "integer", "minimum": math.MinInt32, "maximum": math.MaxInt32}
	case types.PrimitiveLong, types.PrimitiveBigInteger, types.PrimitiveDate:
		// dates are milliseconds since the epoch
		return map[string]interface{}{"type": "integer"}
	case types.PrimitiveFloat, types.PrimitiveDouble, types.PrimitiveBigDecimal:
		return map[string]interface{}{"type": "number"}
	case types.PrimitiveChar:
		return map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 1}
	default:
		return map[string]interface{}{"type": "string"}
	}
}

func attributeSchema(acc *accessor.Accessor, attr types.TypeDefAttribute) (map[string]interface{}, error) {
	attrType, err := acc.AttributeTypeByGUID(attr.Type.GUID)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", attr.Name, err)
	}

	var schema map[string]interface{}

	switch typ := attrType.(type) {
	case *types.PrimitiveDef:
		schema = primitiveSchema(typ.PrimitiveCategory)
	case *types.CollectionDef:
		switch {
		case typ.CollectionCategory == types.CollectionMap && len(typ.ArgumentTypes) == 2:
			schema = map[string]interface{}{
				"type":                 "object",
				"additionalProperties": primitiveSchema(typ.ArgumentTypes[1]),
			}
		case typ.CollectionCategory == types.CollectionArray && len(typ.ArgumentTypes) == 1:
			schema = map[string]interface{}{
				"type":  "array",
				"items": primitiveSchema(typ.ArgumentTypes[0]),
			}
		default:
			return nil, fmt.Errorf("attribute %s has an unsupported collection %s", attr.Name, typ.Name)
		}
	case *types.EnumDef:
		values := make([]interface{}, len(typ.Elements))
		for idx, el := range typ.Elements {
			values[idx] = el.Value
		}
		schema = map[string]interface{}{
			"type": "string",
			"enum": values,
		}
	default:
		return nil, fmt.Errorf("attribute %s has an unknown attribute type %T", attr.Name, attrType)
	}

	if attr.Deprecated() {
		message := attr.Description
		if attr.ReplacedByAttribute != "" {
			message = fmt.Sprintf("replaced by %s", attr.ReplacedByAttribute)
		}
		if message == "" {
			message = "deprecated"
		}
		schema["deprecated_attribute"] = message
	}

	return schema, nil
}

// Schema derives a JSON schema for the properties of an instance of typeName.
func Schema(acc *accessor.Accessor, typeName string) (*jsonschema.RootSchema, error) {
	attrs, err := acc.Attributes(typeName, true)
	if err != nil {
		return nil, err
	}

	props := map[string]interface{}{}
	required := []string{}

	for _, attr := range attrs {
		schema, err := attributeSchema(acc, attr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typeName, err)
		}

		props[attr.Name] = schema

		if attr.Required() && !attr.Deprecated() {
			required = append(required, attr.Name)
		}
	}

	sort.Strings(required)

	schema := map[string]interface{}{
		"$id":                  fmt.Sprintf("https://github.com/uswitch/typearchive/%s", typeName),
		"title":                typeName,
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		schema["required"] = required
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}

	rs := &jsonschema.RootSchema{}
	if err := json.Unmarshal(raw, rs); err != nil {
		return nil, err
	}

	return rs, nil
}

func Validate(acc *accessor.Accessor, inst *Instance) (*Report, error) {
	def, err := acc.TypeDef(inst.Metadata.Type)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	if err := inst.Metadata.GUID.Validate(); inst.Metadata.GUID != "" && err != nil {
		report.Errors = append(report.Errors, ValidationError{PropertyPath: "/metadata/guid", Message: err.Error()})
	}

	if def.Base().Status == types.DeprecatedTypeDef {
		report.Warnings = append(report.Warnings, ValidationError{
			Message: fmt.Sprintf("type %s is deprecated", def.Base().Name),
		})
	}

	rs, err := Schema(acc, inst.Metadata.Type)
	if err != nil {
		return nil, err
	}

	props := inst.Properties
	if props == nil {
		props = Properties{}
	}

	raw, err := json.Marshal(props)
	if err != nil {
		return nil, err
	}

	valErrs, err := rs.ValidateBytes(raw)
	if err != nil {
		return nil, err
	}

	for _, valErr := range valErrs {
		vErr := ValidationError{PropertyPath: valErr.PropertyPath, Message: valErr.Message}

		if valErr.RulePath == deprecatedPath {
			report.Warnings = append(report.Warnings, vErr)
		} else {
			report.Errors = append(report.Errors, vErr)
		}
	}

	return report, nil
}
