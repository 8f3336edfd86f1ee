package schema

import (
	"testing"
)

func TestValidator_Validate_TypeChecks(t *testing.T) {
	tests := []struct {
		name      string
		schema    *Schema
		data      map[string]any
		wantError bool
	}{
		{
			name:      "valid string",
			schema:    &Schema{Type: SchemaType{Types: []string{"object"}}, Properties: map[string]*Schema{"name": {Type: SchemaType{Types: []string{"string"}}}}},
			data:      map[string]any{"name": "test"},
			wantError: false,
		},
		{
			name:      "invalid string (got int)",
			schema:    &Schema{Type: SchemaType{Types: []string{"object"}}, Properties: map[string]*Schema{"name": {Type: SchemaType{Types: []string{"string"}}}}},
			data:      map[string]any{"name": 123},
			wantError: true,
		},
		{
			name:      "valid integer",
			schema:    &Schema{Type: SchemaType{Types: []string{"object"}}, Properties: map[string]*Schema{"count": {Type: SchemaType{Types: []string{"integer"}}}}},
			data:      map[string]any{"count": 42},
			wantError: false,
		},
		{
			name:      "invalid integer (got float)",
			schema:    &Schema{Type: SchemaType{Types: []string{"object"}}, Properties: map[string]*Schema{"count": {Type: SchemaType{Types: []string{"integer"}}}}},
			data:      map[string]any{"count": 3.14},
			wantError: true,
		},
		{
			name:      "valid array",
			schema:    &Schema{Type: SchemaType{Types: []string{"object"}}, Properties: map[string]*Schema{"items": {Type: SchemaType{Types: []string{"array"}}}}},
			data:      map[string]any{"items": []any{"a", "b"}},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValidator(tt.schema)
			err := v.Validate(tt.data)
			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidator_Validate_Range(t *testing.T) {
	min := float64(1)
	max := float64(16)
	schema := &Schema{
		Type: SchemaType{Types: []string{"object"}},
		Properties: map[string]*Schema{
			"tabSize": {
				Type:    SchemaType{Types: []string{"integer"}},
				Minimum: &min,
				Maximum: &max,
			},
		},
	}

	v := NewValidator(schema)

	// Valid in range
	if err := v.Validate(map[string]any{"tabSize": 4}); err != nil {
		t.Errorf("expected value in range to pass: %v", err)
	}

	// Below minimum
	if err := v.Validate(map[string]any{"tabSize": 0}); err == nil {
		t.Error("expected value below minimum to fail")
	}

	// Above maximum
	if err := v.Validate(map[string]any{"tabSize": 100}); err == nil {
		t.Error("expected value above maximum to fail")
	}
}

func TestValidator_Validate_Required(t *testing.T) {
	schema := &Schema{
		Type:     SchemaType{Types: []string{"object"}},
		Required: []string{"name", "id"},
		Properties: map[string]*Schema{
			"name": {Type: SchemaType{Types: []string{"string"}}},
			"id":   {Type: SchemaType{Types: []string{"integer"}}},
		},
	}

	v := NewValidator(schema)

	// All required present
	if err := v.Validate(map[string]any{"name": "test", "id": 1}); err != nil {
		t.Errorf("expected valid data to pass: %v", err)
	}

	// Missing required field
	if err := v.Validate(map[string]any{"name": "test"}); err == nil {
		t.Error("expected missing required field to fail")
	}
}

func TestValidator_Validate_Array(t *testing.T) {
	schema := &Schema{
		Type: SchemaType{Types: []string{"object"}},
		Properties: map[string]*Schema{
			"tags": {
				Type: SchemaType{Types: []string{"array"}},
				Items: &Schema{
					Type: SchemaType{Types: []string{"string"}},
				},
			},
		},
	}

	v := NewValidator(schema)

	// Valid array
	if err := v.Validate(map[string]any{"tags": []any{"a", "b", "c"}}); err != nil {
		t.Errorf("expected valid array to pass: %v", err)
	}

	// Invalid item type
	if err := v.Validate(map[string]any{"tags": []any{"a", 123}}); err == nil {
		t.Error("expected invalid item type to fail")
	}
}

func TestValidator_Validate_NestedObject(t *testing.T) {
	min := float64(1)
	max := float64(16)
	schema := &Schema{
		Type: SchemaType{Types: []string{"object"}},
		Properties: map[string]*Schema{
			"editor": {
				Type: SchemaType{Types: []string{"object"}},
				Properties: map[string]*Schema{
					"tabSize": {
						Type:    SchemaType{Types: []string{"integer"}},
						Minimum: &min,
						Maximum: &max,
					},
				},
			},
		},
	}

	v := NewValidator(schema)

	// Valid nested
	data := map[string]any{
		"editor": map[string]any{
			"tabSize": 4,
		},
	}
	if err := v.Validate(data); err != nil {
		t.Errorf("expected valid nested object to pass: %v", err)
	}

	// Invalid nested value
	data = map[string]any{
		"editor": map[string]any{
			"tabSize": 100, // Out of range
		},
	}
	if err := v.Validate(data); err == nil {
		t.Error("expected invalid nested value to fail")
	}
}

func TestValidator_Validate_StrictMode(t *testing.T) {
	falseVal := false
	schema := &Schema{
		Type:                 SchemaType{Types: []string{"object"}},
		Properties:           map[string]*Schema{"name": {Type: SchemaType{Types: []string{"string"}}}},
		AdditionalProperties: &falseVal,
	}

	v := NewValidator(schema).WithStrictMode(true)

	if err := v.Validate(map[string]any{"name": "ok"}); err != nil {
		t.Errorf("expected known property to pass: %v", err)
	}
	if err := v.Validate(map[string]any{"name": "ok", "extra": 1}); err == nil {
		t.Error("expected unknown property to fail in strict mode")
	}

	v2 := NewValidator(schema)
	if err := v2.Validate(map[string]any{"name": "ok", "extra": 1}); err != nil {
		t.Errorf("expected unknown property to pass in non-strict mode: %v", err)
	}
}

func TestValidator_WithOptions(t *testing.T) {
	schema := &Schema{}
	v := NewValidator(schema)

	v.WithStrictMode(true).WithMaxErrors(10)

	if !v.strictMode {
		t.Error("expected strictMode to be true")
	}
	if v.maxErrors != 10 {
		t.Errorf("expected maxErrors to be 10, got %d", v.maxErrors)
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		value    any
		expected bool
	}{
		{42, true},
		{int64(42), true},
		{3.0, true},   // Whole float
		{3.14, false}, // Non-whole float
		{"42", false},
		{true, false},
	}

	for _, tt := range tests {
		result := isInteger(tt.value)
		if result != tt.expected {
			t.Errorf("isInteger(%v) = %v, want %v", tt.value, result, tt.expected)
		}
	}
}

func TestIsArray(t *testing.T) {
	tests := []struct {
		value    any
		expected bool
	}{
		{[]any{1, 2}, true},
		{[]string{"a"}, true},
		{"not an array", false},
		{42, false},
	}

	for _, tt := range tests {
		result := isArray(tt.value)
		if result != tt.expected {
			t.Errorf("isArray(%v) = %v, want %v", tt.value, result, tt.expected)
		}
	}
}
