package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "lattice.db")
}

func TestProjectSave_AndLoad(t *testing.T) {
	db := testDBPath(t)
	doc := `{"meta": {"name": "Demo"}, "layers": [{"id": "a"}]}`
	path := writeProjectFile(t, "demo.json", doc)

	stdout, _, err := execute(t, "--format", "json", "project", "--db", db, "save", path, "--id", "demo")
	require.NoError(t, err)

	var resp struct {
		Data struct {
			ProjectID string `json:"project_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "demo", resp.Data.ProjectID)

	stdout, _, err = execute(t, "project", "--db", db, "load", "demo")
	require.NoError(t, err)
	assert.JSONEq(t, doc, stdout)
}

func TestProjectSave_DerivesIDFromName(t *testing.T) {
	db := testDBPath(t)
	path := writeProjectFile(t, "demo.json", `{"meta": {"name": "My Demo"}, "layers": []}`)

	stdout, _, err := execute(t, "--format", "json", "project", "--db", db, "save", path)
	require.NoError(t, err)

	var resp struct {
		Data struct {
			ProjectID string `json:"project_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.ProjectID, "My_Demo_"),
		"id is the sanitized name plus a timestamp, got %q", resp.Data.ProjectID)
}

func TestProjectSave_RejectsInvalidDocument(t *testing.T) {
	db := testDBPath(t)
	path := writeProjectFile(t, "bad.json", `{"frameCount": 0}`)

	_, _, err := execute(t, "project", "--db", db, "save", path, "--id", "bad")

	assert.Equal(t, ExitCommandError, GetExitCode(err), "unvalidated documents never reach the store")

	_, _, err = execute(t, "project", "--db", db, "load", "bad")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestProjectList(t *testing.T) {
	db := testDBPath(t)
	path := writeProjectFile(t, "demo.json", `{"layers": []}`)

	stdout, _, err := execute(t, "project", "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no projects")

	_, _, err = execute(t, "project", "--db", db, "save", path, "--id", "alpha", "--name", "Alpha")
	require.NoError(t, err)

	stdout, _, err = execute(t, "--format", "json", "project", "--db", db, "list")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "alpha", resp.Data[0].ID)
	assert.Equal(t, "Alpha", resp.Data[0].Name)
}

func TestProjectRm(t *testing.T) {
	db := testDBPath(t)
	path := writeProjectFile(t, "demo.json", `{"layers": []}`)

	_, _, err := execute(t, "project", "--db", db, "save", path, "--id", "gone")
	require.NoError(t, err)

	_, _, err = execute(t, "project", "--db", db, "rm", "gone")
	require.NoError(t, err)

	_, _, err = execute(t, "project", "--db", db, "load", "gone")
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	// Removing an already absent id succeeds; the end state is the same.
	_, _, err = execute(t, "project", "--db", db, "rm", "gone")
	assert.NoError(t, err)
}
