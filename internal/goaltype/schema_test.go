package goaltype

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate_AllFieldsPresent(t *testing.T) {
	schema := Schema{
		"hours": {Type: FieldNumber},
		"topic": {Type: FieldText, Optional: true},
	}
	provided := map[string]any{"hours": 2.5}
	if err := Validate(provided, schema, "goal data"); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestValidate_EmptyBlobReportsOnlyRequired(t *testing.T) {
	schema := Schema{
		"hours": {Type: FieldNumber},
		"topic": {Type: FieldText, Optional: true},
	}
	err := Validate(map[string]any{}, schema, "goal data")
	if err == nil {
		t.Fatalf("expected validation error for empty blob")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !reflect.DeepEqual(verr.MissingFields, []string{"hours"}) {
		t.Errorf("expected missing fields [hours], got %v", verr.MissingFields)
	}
	if verr.Label != "goal data" {
		t.Errorf("expected label 'goal data', got %q", verr.Label)
	}
}

func TestValidate_NilBlobCollectsAllMissing(t *testing.T) {
	schema := Schema{
		"limit":    {Type: FieldNumber},
		"spent":    {Type: FieldNumber},
		"category": {Type: FieldText, Optional: true},
	}
	err := Validate(nil, schema, "log data")
	if err == nil {
		t.Fatalf("expected validation error for nil blob")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	// Every required field must be reported together, sorted.
	if !reflect.DeepEqual(verr.MissingFields, []string{"limit", "spent"}) {
		t.Errorf("expected missing fields [limit spent], got %v", verr.MissingFields)
	}
}

func TestValidate_EmptySchemaAcceptsAnything(t *testing.T) {
	if err := Validate(nil, Schema{}, "plan data"); err != nil {
		t.Errorf("empty schema should accept nil blob, got %v", err)
	}
	if err := Validate(map[string]any{"extra": 1}, Schema{}, "plan data"); err != nil {
		t.Errorf("empty schema should accept extra fields, got %v", err)
	}
}
