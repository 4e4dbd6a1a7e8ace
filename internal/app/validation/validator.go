package validation

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/patrickmn/go-cache"
	"github.com/xeipuuv/gojsonschema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// rootField is what gojsonschema reports as the field of whole-document errors.
const rootField = "(root)"

func init() {
	gojsonschema.FormatCheckers.Add(AddressFormat, addressFormatChecker{})
}

// Issue is one failed constraint.
type Issue struct {
	Path    string
	Message string
}

// ValidationError lists every constraint the arguments failed.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Path, issue.Message))
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}

// Validator checks tool arguments against their JSON schemas.
// Compiled schemas are kept per name for the life of the process.
type Validator struct {
	compiled *cache.Cache
}

// NewValidator creates a new instance of Validator.
func NewValidator() *Validator {
	return &Validator{compiled: cache.New(cache.NoExpiration, 0)}
}

// Validate fills schema defaults for absent properties, drops keys the schema
// does not declare and checks the result. The input map is never modified.
// name keys the compiled-schema memo; an empty name compiles every time.
func (v *Validator) Validate(name string, schema map[string]any, raw map[string]any) (map[string]any, error) {
	compiled, err := v.compile(name, schema)
	if err != nil {
		return nil, err
	}

	args := normalize(schema, raw)
	result, err := compiled.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return nil, fmt.Errorf("failed to validate arguments: %w", err)
	}
	if !result.Valid() {
		return nil, toValidationError(result.Errors())
	}
	return args, nil
}

// Decode validates raw and decodes the cleaned arguments into out.
func (v *Validator) Decode(name string, schema map[string]any, raw map[string]any, out any) error {
	args, err := v.Validate(name, schema, raw)
	if err != nil {
		return err
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode validated arguments: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode validated arguments: %w", err)
	}
	return nil
}

func (v *Validator) compile(name string, schema map[string]any) (*gojsonschema.Schema, error) {
	if name != "" {
		if cached, ok := v.compiled.Get(name); ok {
			return cached.(*gojsonschema.Schema), nil
		}
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %q: %w", name, err)
	}
	if name != "" {
		v.compiled.Set(name, compiled, cache.NoExpiration)
	}
	return compiled, nil
}

// normalize returns a copy of raw restricted to declared properties, with
// defaults filled in.
func normalize(schema map[string]any, raw map[string]any) map[string]any {
	properties, _ := schema["properties"].(map[string]any)
	args := make(map[string]any, len(properties))
	for key, value := range raw {
		if _, declared := properties[key]; declared {
			args[key] = value
		}
	}
	for key, prop := range properties {
		if _, present := args[key]; present {
			continue
		}
		if propSchema, ok := prop.(map[string]any); ok {
			if def, ok := propSchema["default"]; ok {
				args[key] = def
			}
		}
	}
	return args
}

func toValidationError(errs []gojsonschema.ResultError) *ValidationError {
	issues := make([]Issue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, Issue{Path: issuePath(e), Message: issueMessage(e)})
	}
	return &ValidationError{Issues: issues}
}

func issuePath(e gojsonschema.ResultError) string {
	field := e.Field()
	if e.Type() == "required" {
		if property, ok := e.Details()["property"].(string); ok {
			switch {
			case field == rootField:
				return property
			case lastSegment(field) == property:
				return field
			}
			return field + "." + property
		}
	}
	if field == rootField {
		return "arguments"
	}
	return field
}

func issueMessage(e gojsonschema.ResultError) string {
	switch e.Type() {
	case "required":
		return "Required"
	case "format":
		if fmt.Sprint(e.Details()["format"]) == AddressFormat {
			return InvalidAddressMessage
		}
	case "pattern":
		if fmt.Sprint(e.Details()["pattern"]) == DatePattern {
			return DateMessage
		}
	case "array_min_items":
		if lastSegment(e.Field()) == "addresses" {
			return MinAddressesMessage
		}
	case "array_max_items":
		if lastSegment(e.Field()) == "addresses" {
			return MaxAddressesMessage
		}
	}
	return e.Description()
}

func lastSegment(field string) string {
	if i := strings.LastIndex(field, "."); i >= 0 {
		return field[i+1:]
	}
	return field
}
