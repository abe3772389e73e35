package fragment

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
		wantErr  bool
	}{
		{"null", "null", nil, false},
		{"true", "true", true, false},
		{"false", "false", false, false},
		{"number", "42", json.Number("42"), false},
		{"fractional number", "1.5", json.Number("1.5"), false},
		{"string", `"hello"`, "hello", false},
		{"empty array", "[]", []any{}, false},
		{"array", `[1, "a", null]`, []any{json.Number("1"), "a", nil}, false},
		{"nested array", `[[1], [2]]`, []any{[]any{json.Number("1")}, []any{json.Number("2")}}, false},
		{"empty object", "{}", Object{}, false},
		{"object", `{"a": 1}`, Object{{Key: "a", Value: json.Number("1")}}, false},
		{"nested object", `{"a": {"b": true}}`, Object{{Key: "a", Value: Object{{Key: "b", Value: true}}}}, false},
		{"object in array", `[{"x": 1}]`, []any{Object{{Key: "x", Value: json.Number("1")}}}, false},
		{"empty input", "", nil, true},
		{"invalid JSON", "{", nil, true},
		{"trailing content", `[] extra`, nil, true},
		{"two values", "1 2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Errorf("Parse() error = %v, want ErrParse", err)
				}
				return
			}
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Parse() = %#v, want %#v", result, tt.expected)
			}
		})
	}
}

func TestParsePreservesMemberOrder(t *testing.T) {
	result, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj, ok := result.(Object)
	if !ok {
		t.Fatalf("Parse() = %T, want Object", result)
	}

	keys := make([]string, len(obj))
	for i, m := range obj {
		keys[i] = m.Key
	}
	if !reflect.DeepEqual(keys, []string{"z", "a", "m"}) {
		t.Errorf("member order = %v, want [z a m]", keys)
	}
}

func TestParseKeepsDuplicateRawKeys(t *testing.T) {
	result, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj := result.(Object)
	if len(obj) != 2 {
		t.Fatalf("len(obj) = %d, want 2", len(obj))
	}
}

func TestObjectSet(t *testing.T) {
	var obj Object
	obj = obj.Set("a", 1)
	obj = obj.Set("b", 2)
	obj = obj.Set("a", 3)

	if len(obj) != 2 {
		t.Fatalf("len(obj) = %d, want 2", len(obj))
	}
	if obj[0].Key != "a" || obj[0].Value != 3 {
		t.Errorf("obj[0] = %+v, want a=3", obj[0])
	}
	if obj[1].Key != "b" || obj[1].Value != 2 {
		t.Errorf("obj[1] = %+v, want b=2", obj[1])
	}

	value, ok := obj.Get("a")
	if !ok || value != 3 {
		t.Errorf("Get(a) = %v, %v, want 3, true", value, ok)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
}

func TestObjectMarshalJSON(t *testing.T) {
	obj := Object{
		{Key: "z", Value: json.Number("1")},
		{Key: "a", Value: []any{true, nil}},
		{Key: "m", Value: Object{{Key: "inner", Value: "x"}}},
	}

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	expected := `{"z":1,"a":[true,null],"m":{"inner":"x"}}`
	if string(data) != expected {
		t.Errorf("Marshal() = %s, want %s", data, expected)
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{"nil", nil, nil},
		{"bool", true, true},
		{"string", "x", "x"},
		{"integer number", json.Number("42"), int64(42)},
		{"fractional number", json.Number("1.5"), 1.5},
		{"array", []any{json.Number("1"), "a"}, []any{int64(1), "a"}},
		{
			"object",
			Object{{Key: "a", Value: json.Number("2")}},
			map[string]any{"a": int64(2)},
		},
		{
			"nested",
			[]any{Object{{Key: "a", Value: []any{json.Number("0.5")}}}},
			[]any{map[string]any{"a": []any{0.5}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Plain(tt.input); !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Plain() = %#v, want %#v", result, tt.expected)
			}
		})
	}
}
