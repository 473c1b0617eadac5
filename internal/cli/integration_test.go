package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const personJSON = `{
	"name": "John Doe",
	"age": 30,
	"email": "john.doe@example.com",
	"address": {
		"street": "123 Main St",
		"city": "Anytown",
		"zip": "12345"
	},
	"phones": [
		{
			"type": "home",
			"number": "555-1234"
		},
		{
			"type": "work",
			"number": "555-5678"
		}
	],
	"active": true
}`

// runCLI runs the CLI with args and stdin, returning stdout, stderr and the
// exit error.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "../../main.go"}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()

	jsonFile := filepath.Join(tempDir, "test.json")
	err := os.WriteFile(jsonFile, []byte(personJSON), 0644)
	require.NoError(t, err)

	outputFile := filepath.Join(tempDir, "output.json")

	cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile, "set", "phones[1].number", "555-0000")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))
	assert.Contains(t, string(output), "Output written to")

	written, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	doc := string(written)
	assert.True(t, gjson.Valid(doc))
	assert.Equal(t, "555-0000", gjson.Get(doc, "phones.1.number").String())
	assert.Equal(t, "555-1234", gjson.Get(doc, "phones.0.number").String())
	assert.Equal(t, "Anytown", gjson.Get(doc, "address.city").String())
	assert.True(t, strings.HasPrefix(doc, `{"name":"John Doe","age":30,`), "member order must be kept: %s", doc)
}

// TestCLI_Get tests reading values from stdin
func TestCLI_Get(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"string", []string{"get", "address.city"}, "\"Anytown\"\n"},
		{"raw string", []string{"get", "--raw", "address.city"}, "Anytown\n"},
		{"number", []string{"get", "age"}, "30\n"},
		{"nested element", []string{"get", "phones[0].type"}, "\"home\"\n"},
		{"object", []string{"get", "address"}, `{"street":"123 Main St","city":"Anytown","zip":"12345"}` + "\n"},
		{"yaml", []string{"--format", "yaml", "get", "phones[1]"}, "type: work\nnumber: 555-5678\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, personJSON, tt.args...)
			require.NoError(t, err, "CLI command failed: %s", stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

// TestCLI_GetMissing tests that absent paths exit with an error
func TestCLI_GetMissing(t *testing.T) {
	stdout, stderr, err := runCLI(t, personJSON, "get", "phones[5]")
	assert.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Path error: nothing at 'phones[5]'")
	assert.NotContains(t, stderr, "For help")
}

// TestCLI_MalformedPath tests the strict path grammar
func TestCLI_MalformedPath(t *testing.T) {
	for _, args := range [][]string{
		{"get", "phones[abc]"},
		{"set", "phones[@#$]", "999"},
	} {
		_, stderr, err := runCLI(t, personJSON, args...)
		assert.Error(t, err)
		assert.Contains(t, stderr, "Path error: segment")
	}
}

// TestCLI_Isset tests the existence check
func TestCLI_Isset(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"address", "true"},
		{"address.nonexistent", "false"},
		{"phones[1].number", "true"},
		{"phones[abc]", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, personJSON, "isset", tt.path)
			require.NoError(t, err, "CLI command failed: %s", stderr)
			assert.Equal(t, tt.want+"\n", stdout)
		})
	}
}

// TestCLI_SetWithoutInput tests that set starts from an empty document
func TestCLI_SetWithoutInput(t *testing.T) {
	stdout, stderr, err := runCLI(t, "", "set", "foo.bar.buzz[1]", "1001")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, `{"foo":{"bar":{"buzz":[null,1001]}}}`+"\n", stdout)

	stdout, stderr, err = runCLI(t, "", "set", "--string", "foo.bar.baz", "1001")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, `{"foo":{"bar":{"baz":"1001"}}}`+"\n", stdout)
}

// TestCLI_Export tests the export formats
func TestCLI_Export(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"b": [1, 2], "a": {"x": null}}`, "--pretty", "export")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "{\n  \"b\": [1, 2],\n  \"a\": {\n    \"x\": null\n  }\n}\n", stdout)

	stdout, stderr, err = runCLI(t, `[1, 2]`, "export")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "{}\n", stdout)

	stdout, stderr, err = runCLI(t, `[1, 2]`, "--faithful-root", "export")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "[1,2]\n", stdout)
}

// TestCLI_ConfigFile tests settings taken from a config file
func TestCLI_ConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "jsonmodel.yml")
	err := os.WriteFile(configFile, []byte("parse:\n  normalize_keys: true\nexport:\n  format: yaml\n"), 0644)
	require.NoError(t, err)

	stdout, stderr, err := runCLI(t, `{"firstName": "Ada", "tags": ["x"]}`, "-c", configFile, "export")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "first_name: Ada\ntags:\n  - x\n", stdout)

	stdout, stderr, err = runCLI(t, `{"firstName": "Ada"}`, "-c", configFile, "--format", "json", "get", "first_name")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "\"Ada\"\n", stdout)
}

// TestCLI_Paths tests the path listing
func TestCLI_Paths(t *testing.T) {
	stdout, stderr, err := runCLI(t, personJSON, "paths", "--leaves")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, "name\tstring", lines[0])
	assert.Contains(t, lines, "phones[1].number\tstring")
	assert.Contains(t, lines, "active\tboolean")
	assert.Len(t, lines, 11)
}

// TestCLI_Debug tests that debug logging goes to stderr
func TestCLI_Debug(t *testing.T) {
	stdout, stderr, err := runCLI(t, `{"a": 1}`, "--debug", "set", "a.b", "2")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, `{"a":{"b":2}}`+"\n", stdout)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "retagged node")
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	_, stderr, err := runCLI(t, `{"name": "Invalid JSON, "age": 30}`, "export")
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr, "JSON parsing error")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := runCLI(t, "", "export")
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr, "empty input")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "jsonmodel version")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", "../../main.go", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-c, --config")
	assert.Contains(t, helpOutput, "--pretty")
	for _, command := range []string{"get", "set", "isset", "export", "paths"} {
		assert.Contains(t, helpOutput, command)
	}
}
