package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bridgeworks-labs/testbridge/internal/cli/config"
	"github.com/bridgeworks-labs/testbridge/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs a fresh root command with captured streams. Config state is
// reset so runs stay independent; the working directory is moved away from the
// repository so no stray config file is picked up.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		config.ResetConfig()
	})

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	execErr := cmd.Execute()
	return out.String(), errOut.String(), execErr
}

func TestRootVersion(t *testing.T) {
	stdout, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	testutil.AssertContains(t, stdout, "testbridge v"+Version)
}

func TestRootUnknownCommand(t *testing.T) {
	_, _, err := executeRoot(t, "frobnicate")
	assert.Error(t, err)
}

func TestRootTransformEndToEnd(t *testing.T) {
	input := testutil.SetupTestExport(t)
	output := filepath.Join(t.TempDir(), "import.csv")

	stdout, _, err := executeRoot(t, "transform", input, output)
	require.NoError(t, err)

	testutil.AssertContains(t, stdout, "transformation completed")
	assert.FileExists(t, output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Summary","Issue Type","Priority"`)
	assert.Contains(t, string(content), `"Highest"`)
}

func TestRootTransformJSONFlag(t *testing.T) {
	input := testutil.SetupTestExport(t)
	output := filepath.Join(t.TempDir(), "import.csv")

	stdout, _, err := executeRoot(t, "transform", input, output, "--output", "json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, true, result["success"])
}

func TestRootMappingFlag(t *testing.T) {
	dir := t.TempDir()
	mappingPath := filepath.Join(dir, "mapping.json")
	mapping := `{
  "column_mappings": {"Summary": "Title"},
  "static_values": {"Project Key": "QA"},
  "required_fields": ["Summary"],
  "jira_fields": ["Summary", "Project Key"]
}`
	require.NoError(t, os.WriteFile(mappingPath, []byte(mapping), 0o600))

	input := testutil.SetupTestExport(t)
	output := filepath.Join(dir, "import.csv")

	_, _, err := executeRoot(t, "transform", input, output, "--mapping", mappingPath)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Summary","Project Key"`)
	assert.Contains(t, string(content), `"QA"`)
	assert.NotContains(t, string(content), "Issue Type")
}

func TestRootValidateExitError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.csv")
	require.NoError(t, os.WriteFile(path, []byte("Title,Title\na,b\n"), 0o600))

	_, stderr, err := executeRoot(t, "validate", path)
	require.Error(t, err)
	testutil.AssertContains(t, stderr, "validation failed")
}

func TestRootBatchEndToEnd(t *testing.T) {
	input := testutil.SetupTestExport(t)
	outputDir := filepath.Join(t.TempDir(), "out")

	stdout, _, err := executeRoot(t, "batch", filepath.Dir(input), outputDir)
	require.NoError(t, err)
	testutil.AssertContains(t, stdout, "1 succeeded, 0 failed")
}

func TestRootConfigFileIsRead(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bridge.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\n"), 0o600))

	input := testutil.SetupTestExport(t)

	stdout, _, err := executeRoot(t, "validate", input, "--config", cfgPath)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, true, result["is_valid"])
}
