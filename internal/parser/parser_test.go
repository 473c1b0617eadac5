package parser

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/jsonmodel/internal/errors"
	"github.com/mcncl/jsonmodel/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	reader := strings.NewReader(jsonStr)
	root, err := Parse(reader)

	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if root.Kind() != models.Object {
		t.Fatalf("Parse() root kind = %s, want object", root.Kind())
	}

	expected := map[string]interface{}{
		"name":      "John Doe",
		"age":       json.Number("30"),
		"isStudent": false,
		"city":      nil,
	}
	if !reflect.DeepEqual(root.Interface(), expected) {
		t.Errorf("Parse() root = %v, want %v", root.Interface(), expected)
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	root, err := ParseString(`{"zebra": 1, "apple": {"y": 1, "x": 2}, "mango": 3}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	keys := root.Object().Keys()
	if want := []string{"zebra", "apple", "mango"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("root keys = %v, want %v", keys, want)
	}

	apple, _ := root.Object().Get("apple")
	if want := []string{"y", "x"}; !reflect.DeepEqual(apple.Object().Keys(), want) {
		t.Errorf("nested keys = %v, want %v", apple.Object().Keys(), want)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	root, err := Parse(strings.NewReader(jsonStr))

	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if !root.IsArray() {
		t.Fatalf("Parse() root kind = %s, want array", root.Kind())
	}

	expected := []interface{}{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	if !reflect.DeepEqual(root.Interface(), expected) {
		t.Errorf("Parse() root = %v, want %v", root.Interface(), expected)
	}
}

func TestParse_NumbersKeepLiteralText(t *testing.T) {
	root, err := ParseString(`{"big": 12345678901234567890, "exp": 1e-7, "dec": 1.50}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	data, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"big":12345678901234567890,"exp":1e-7,"dec":1.50}`; string(data) != want {
		t.Errorf("round trip = %s, want %s", data, want)
	}
}

func TestParse_UnescapesStrings(t *testing.T) {
	root, err := ParseString(`{"s": "line\nbreak é \"q\""}`)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	member, _ := root.Object().Get("s")
	s, _ := member.Str()
	if want := "line\nbreak é \"q\""; s != want {
		t.Errorf("string = %q, want %q", s, want)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	reader := strings.NewReader("")
	_, err := Parse(reader)
	if err == nil {
		t.Errorf("Parse() with empty reader, err = nil, want error")
	} else if !stderrors.Is(err, errors.ErrEmptyInput) {
		t.Errorf("Parse() with empty reader, err = %v, want ErrEmptyInput", err)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		if err == nil {
			t.Errorf("ParseString(%q) err = nil, want error", input)
		} else if !strings.Contains(err.Error(), "input is empty") {
			t.Errorf("ParseString(%q) err = %v, want error containing 'input is empty'", input, err)
		}
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30` // Missing closing brace
	_, err := Parse(strings.NewReader(jsonStr))
	if err == nil {
		t.Fatalf("Parse() with malformed JSON, err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrInvalidJSON) {
		t.Errorf("Parse() with malformed JSON, err = %v, want ErrInvalidJSON", err)
	}
	if !strings.Contains(err.Error(), "JSON syntax error") {
		t.Errorf("Parse() with malformed JSON, err = %v, want error containing 'JSON syntax error'", err)
	}
}

func TestParse_RejectsNonJSONNumbers(t *testing.T) {
	for _, input := range []string{`NaN`, `{"x": Inf}`, `[01]`} {
		_, err := ParseString(input)
		if err == nil {
			t.Errorf("ParseString(%q) err = nil, want error", input)
		}
	}
}

func TestParse_MultipleValues(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	if err == nil {
		t.Fatalf("ParseString() with two documents, err = nil, want error")
	}
	if !stderrors.Is(err, errors.ErrMultipleJSON) {
		t.Errorf("ParseString() err = %v, want ErrMultipleJSON", err)
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	if _, err := ParseString("{\"a\": 1}\n\n  "); err != nil {
		t.Errorf("ParseString() with trailing whitespace, err = %v, want nil", err)
	}
}

func TestParse_NormalizedKeys(t *testing.T) {
	root, err := ParseString(`{"first-name": "Ada", "lastName": "Lovelace", "nested": {"HomeAddress": {"zip-code": "N1"}}}`, WithNormalizedKeys())
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if want := []string{"first_name", "last_name", "nested"}; !reflect.DeepEqual(root.Object().Keys(), want) {
		t.Errorf("root keys = %v, want %v", root.Object().Keys(), want)
	}

	nested, _ := root.Object().Get("nested")
	home, ok := nested.Object().Get("home_address")
	if !ok {
		t.Fatalf("nested key was not normalized: %v", nested.Object().Keys())
	}
	if !home.Object().Has("zip_code") {
		t.Errorf("deep key was not normalized: %v", home.Object().Keys())
	}
}

func TestParse_NormalizedKeysCollision(t *testing.T) {
	root, err := ParseString(`{"user-id": 1, "other": 2, "userId": 3}`, WithNormalizedKeys())
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if want := []string{"user_id", "other"}; !reflect.DeepEqual(root.Object().Keys(), want) {
		t.Errorf("keys = %v, want %v", root.Object().Keys(), want)
	}
	v, _ := root.Object().Get("user_id")
	if n, _ := v.Number(); n != "3" {
		t.Errorf("user_id = %s, want 3", n)
	}
}

func TestParseFile_SimpleObject(t *testing.T) {
	content := `{"product": "Laptop", "price": 1200.50}`
	tmpfile, err := os.CreateTemp("", "test_simple_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name()) // clean up

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	root, err := ParseFile(tmpfile.Name())
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}

	expected := map[string]interface{}{
		"product": "Laptop",
		"price":   json.Number("1200.50"),
	}
	if !reflect.DeepEqual(root.Interface(), expected) {
		t.Errorf("ParseFile() root = %v, want %v", root.Interface(), expected)
	}
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile("nonexistentfile.json")
	if err == nil {
		t.Errorf("ParseFile() with non-existent file, err = nil, want error")
	} else if !stderrors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("ParseFile() with non-existent file, err = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("")
	if err == nil {
		t.Errorf("ParseFile() with empty path, err = nil, want error")
	} else if !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("ParseFile() with empty path, err = %v, want error containing 'file path is empty'", err)
	}
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_empty_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name()) // clean up

	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	_, err = ParseFile(tmpfile.Name())
	if err == nil {
		t.Errorf("ParseFile() with empty file content, err = nil, want error")
	} else if !stderrors.Is(err, errors.ErrFileEmpty) {
		t.Errorf("ParseFile() with empty file content, err = %v, want ErrFileEmpty", err)
	}
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name         string
		jsonStr      string
		expectedVal  interface{}
		expectedKind models.Kind
	}{
		{"RootString", `"hello world"`, "hello world", models.String},
		{"RootNumber", `123.45`, json.Number("123.45"), models.Number},
		{"RootBooleanTrue", `true`, true, models.Bool},
		{"RootBooleanFalse", `false`, false, models.Bool},
		{"RootNull", `null`, nil, models.Null},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := Parse(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("Parse() error = %v, wantErr nil for %s", err, tc.name)
			}

			if root.Kind() != tc.expectedKind {
				t.Errorf("Parse() kind = %s, want %s for %s", root.Kind(), tc.expectedKind, tc.name)
			}

			if !reflect.DeepEqual(root.Interface(), tc.expectedVal) {
				t.Errorf("Parse() root = %#v (type %T), want %#v (type %T) for %s", root.Interface(), root.Interface(), tc.expectedVal, tc.expectedVal, tc.name)
			}
		})
	}
}
