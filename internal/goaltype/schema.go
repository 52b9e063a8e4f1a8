package goaltype

import (
	"fmt"
	"sort"
	"strings"
)

// FieldType is the primitive type a schema field expects.
type FieldType string

const (
	FieldBoolean FieldType = "boolean"
	FieldNumber  FieldType = "number"
	FieldText    FieldType = "text"
)

// FieldSpec describes one field of a data blob. Fields are required unless
// Optional is set.
type FieldSpec struct {
	Type     FieldType `json:"type"`
	Label    string    `json:"label,omitempty"`
	Optional bool      `json:"optional,omitempty"`
	Help     string    `json:"help,omitempty"`
}

// Schema maps field names to their descriptors.
type Schema map[string]FieldSpec

// ValidationError reports every required field missing from a data blob,
// never just the first one, so callers can show the full list at once.
type ValidationError struct {
	Label         string
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Label, strings.Join(e.MissingFields, ", "))
}

// Validate checks provided against schema. A nil provided map counts as
// empty, so every required field is reported missing.
func Validate(provided map[string]any, schema Schema, label string) error {
	var missing []string
	for name, field := range schema {
		if field.Optional {
			continue
		}
		if _, ok := provided[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &ValidationError{Label: label, MissingFields: missing}
	}
	return nil
}
