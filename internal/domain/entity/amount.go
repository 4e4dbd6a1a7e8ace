package entity

import "bytes"

// Amount is a decimal quantity kept in its wire text form. The API sends
// balances and values as strings, sometimes as bare numbers; both decode to
// the same digits so no precision is lost before display.
type Amount string

// UnmarshalJSON accepts a JSON string, number or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*a = ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(trimmed)
	}
	return nil
}

// String returns the wire text.
func (a Amount) String() string {
	return string(a)
}

// IsZero reports whether the field was absent or empty.
func (a Amount) IsZero() bool {
	return a == ""
}
