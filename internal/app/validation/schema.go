package validation

// DatePattern matches YYYY-MM-DD. Calendar validity is left to the API.
const DatePattern = `^\d{4}-\d{2}-\d{2}$`

// DateMessage is reported for any value that fails DatePattern.
const DateMessage = "Date must be in YYYY-MM-DD format"

// Object builds a JSON schema object with the given properties.
func Object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// AddressList is the schema of the "addresses" argument shared by most tools.
func AddressList(description string) map[string]any {
	return map[string]any{
		"type":        "array",
		"description": description,
		"minItems":    1,
		"maxItems":    MaxAddresses,
		"items":       Address(""),
	}
}

// Address is the schema of a single wallet address.
func Address(description string) map[string]any {
	schema := map[string]any{
		"type":   "string",
		"format": AddressFormat,
	}
	if description != "" {
		schema["description"] = description
	}
	return schema
}

// Date is the schema of a YYYY-MM-DD string.
func Date(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
		"pattern":     DatePattern,
	}
}

// String is a free-form string property.
func String(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

// Enum is a string restricted to values, defaulting to def when def is not empty.
func Enum(description, def string, values ...string) map[string]any {
	schema := map[string]any{
		"type":        "string",
		"description": description,
		"enum":        values,
	}
	if def != "" {
		schema["default"] = def
	}
	return schema
}

// Integer is an integer property bounded below by minimum and, when maximum
// is not nil, above by *maximum.
func Integer(description string, minimum int, maximum *int, def int) map[string]any {
	schema := map[string]any{
		"type":        "integer",
		"description": description,
		"minimum":     minimum,
		"default":     def,
	}
	if maximum != nil {
		schema["maximum"] = *maximum
	}
	return schema
}
