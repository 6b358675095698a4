// Package alfredtest fabricates an Alfred script environment for tests.
//
// Tests using Setup must not call t.Parallel, since the environment is
// installed with t.Setenv.
package alfredtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// Env describes a fabricated workflow environment.
type Env struct {
	DataDir  string
	CacheDir string
	UID      string
	Name     string
	BundleID string
	Version  string
}

// Setup populates the alfred_* environment variables the way Alfred would
// for a running workflow, backed by per-test temporary directories, and
// returns the values it chose. The variables are restored when the test
// finishes.
func Setup(t *testing.T) Env {
	t.Helper()

	root := t.TempDir()
	env := Env{
		DataDir:  filepath.Join(root, "data"),
		CacheDir: filepath.Join(root, "cache"),
		UID:      "user.workflow." + uuid.NewString(),
		Name:     "Test Workflow",
		BundleID: "com.alfredtools.test",
		Version:  "0.1.0",
	}

	for _, dir := range []string{env.DataDir, env.CacheDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	t.Setenv("alfred_workflow_data", env.DataDir)
	t.Setenv("alfred_workflow_cache", env.CacheDir)
	t.Setenv("alfred_workflow_uid", env.UID)
	t.Setenv("alfred_workflow_name", env.Name)
	t.Setenv("alfred_workflow_bundleid", env.BundleID)
	t.Setenv("alfred_workflow_version", env.Version)

	return env
}
