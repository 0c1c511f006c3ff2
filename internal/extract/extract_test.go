package extract

import (
	"reflect"
	"testing"
)

func TestStringArray_EmbeddedObject(t *testing.T) {
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"fallback"},
	}

	got, ok := StringArray(`prefix {"prompts":["a","b"]} suffix`, schema)
	if !ok {
		t.Fatal("expected successful extraction")
	}
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStringArray_BareObject(t *testing.T) {
	schema := Schema{
		Field:    "questions",
		MinItems: 1,
		MaxItems: 2,
		Fallback: []string{"fallback"},
	}

	got, ok := StringArray(`{"questions":["why?"]}`, schema)
	if !ok {
		t.Fatal("expected successful extraction")
	}
	want := []string{"why?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStringArray_NotJSON(t *testing.T) {
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"x", "y", "z"},
	}

	got, ok := StringArray("not json at all", schema)
	if ok {
		t.Fatal("expected fallback")
	}
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected fallback %v, got %v", want, got)
	}
}

func TestStringArray_EmptyArray(t *testing.T) {
	schema := Schema{
		Field:    "questions",
		MinItems: 1,
		MaxItems: 2,
		Fallback: []string{"What are you actually trying to do?"},
	}

	got, ok := StringArray(`{"questions":[]}`, schema)
	if ok {
		t.Fatal("expected fallback for empty array")
	}
	if !reflect.DeepEqual(got, schema.Fallback) {
		t.Errorf("expected fallback for empty array, got %v", got)
	}
}

func TestStringArray_FieldMissing(t *testing.T) {
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"fallback"},
	}

	got, ok := StringArray(`{"answers":["a"]}`, schema)
	if ok {
		t.Fatal("expected fallback for missing field")
	}
	if !reflect.DeepEqual(got, schema.Fallback) {
		t.Errorf("expected fallback for missing field, got %v", got)
	}
}

func TestStringArray_WrongElementType(t *testing.T) {
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"fallback"},
	}

	if got, ok := StringArray(`{"prompts":[1,2,3]}`, schema); ok {
		t.Errorf("expected fallback for non-string elements, got %v", got)
	}
}

func TestStringArray_TooManyItems(t *testing.T) {
	schema := Schema{
		Field:    "questions",
		MinItems: 1,
		MaxItems: 2,
		Fallback: []string{"fallback"},
	}

	if got, ok := StringArray(`{"questions":["a","b","c"]}`, schema); ok {
		t.Errorf("expected fallback for over-long array, got %v", got)
	}
}

func TestStringArray_MarkdownFenced(t *testing.T) {
	schema := Schema{
		Field:    "questions",
		MinItems: 1,
		MaxItems: 2,
		Fallback: []string{"fallback"},
	}

	raw := "```json\n{\"questions\":[\"What changed?\",\"What did you expect?\"]}\n```"
	got, ok := StringArray(raw, schema)
	if !ok {
		t.Fatal("expected successful extraction from fenced output")
	}
	want := []string{"What changed?", "What did you expect?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStringArray_BracesWithoutJSON(t *testing.T) {
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"fallback"},
	}

	// The brace span is not valid JSON and neither is the whole text.
	if got, ok := StringArray("some {weird} text", schema); ok {
		t.Errorf("expected fallback, got %v", got)
	}
}

func TestStringArray_NoReclamp(t *testing.T) {
	// Bounds are what the model was asked for; a valid in-bounds array is
	// returned as-is, never trimmed.
	schema := Schema{
		Field:    "prompts",
		MinItems: 1,
		MaxItems: 6,
		Fallback: []string{"fallback"},
	}

	got, ok := StringArray(`{"prompts":["a","b","c","d","e","f"]}`, schema)
	if !ok {
		t.Fatal("expected successful extraction")
	}
	if len(got) != 6 {
		t.Errorf("expected all 6 items, got %d", len(got))
	}
}
