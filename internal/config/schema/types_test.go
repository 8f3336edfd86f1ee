package schema

import (
	"testing"
)

func TestBuilder_Build(t *testing.T) {
	schema := NewBuilder().
		Type("string").
		Default("default").
		Build()

	if !schema.Type.Is("string") {
		t.Error("expected type to be string")
	}
	if schema.Default != "default" {
		t.Errorf("default = %v, want 'default'", schema.Default)
	}
}

func TestBuilder_NumericConstraints(t *testing.T) {
	schema := NewBuilder().
		Type("integer").
		Minimum(1).
		Maximum(100).
		Build()

	if schema.Minimum == nil || *schema.Minimum != 1 {
		t.Error("expected minimum to be 1")
	}
	if schema.Maximum == nil || *schema.Maximum != 100 {
		t.Error("expected maximum to be 100")
	}
}

func TestBuilder_ArrayConstraints(t *testing.T) {
	itemSchema := String().Build()
	schema := NewBuilder().
		Type("array").
		Items(itemSchema).
		Build()

	if schema.Items == nil {
		t.Error("expected items schema to be set")
	}
}

func TestBuilder_ObjectConstraints(t *testing.T) {
	nameSchema := String().Build()
	ageSchema := Integer().Minimum(0).Build()

	schema := NewBuilder().
		Type("object").
		Property("name", nameSchema).
		Property("age", ageSchema).
		Required("name").
		AdditionalProperties(false).
		Build()

	if len(schema.Properties) != 2 {
		t.Errorf("expected 2 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["name"] == nil {
		t.Error("expected 'name' property")
	}
	if schema.Properties["age"] == nil {
		t.Error("expected 'age' property")
	}
	if len(schema.Required) != 1 || schema.Required[0] != "name" {
		t.Error("expected 'name' to be required")
	}
	if schema.AdditionalProperties == nil || *schema.AdditionalProperties != false {
		t.Error("expected additionalProperties to be false")
	}
}

func TestConvenienceFunctions(t *testing.T) {
	s := String().Build()
	if !s.Type.Is("string") {
		t.Error("String() should create string type")
	}

	i := Integer().Build()
	if !i.Type.Is("integer") {
		t.Error("Integer() should create integer type")
	}

	a := Array().Build()
	if !a.Type.Is("array") {
		t.Error("Array() should create array type")
	}

	o := Object().Build()
	if !o.Type.Is("object") {
		t.Error("Object() should create object type")
	}
}

func TestIntRange(t *testing.T) {
	schema := IntRange(1, 100).Build()

	if !schema.Type.Is("integer") {
		t.Error("IntRange should create integer type")
	}
	if schema.Minimum == nil || *schema.Minimum != 1 {
		t.Error("expected minimum to be 1")
	}
	if schema.Maximum == nil || *schema.Maximum != 100 {
		t.Error("expected maximum to be 100")
	}
}

func TestBuilder_Title(t *testing.T) {
	schema := NewBuilder().Title("Test Schema").Build()
	if schema.Title != "Test Schema" {
		t.Errorf("Title = %q, want 'Test Schema'", schema.Title)
	}
}
