package integration

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extbuild/internal/app"
	"extbuild/internal/core"
	"extbuild/internal/types"
	"extbuild/tests/testutil"
)

// TestGoldenBuildPipeline runs the full build pipeline against the
// sample fixtures and compares the generated configuration artifact
// against committed golden files. If the golden files do not exist yet
// (first run), they are written so they can be committed.
//
// To update golden files after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenBuildPipeline(t *testing.T) {
	repoRoot := testutil.RepoRoot(t)
	goldenDir := filepath.Join(repoRoot, "tests", "integration", "testdata", "golden")

	root := copyFixtureProject(t)
	service := app.NewService(app.ServiceOptions{Compiler: stubCompiler(t)})

	result, err := service.Build(t.Context(), app.BuildRequest{
		CatalogPath: filepath.Join(repoRoot, "fixtures", "catalog-sample.yaml"),
		Root:        root,
		BuildDir:    filepath.Join(root, "build"),
	})
	require.NoError(t, err)

	// Compare each artifact half against its golden file.
	goldenFiles := map[string]string{
		"gridseg_build_config.h": result.HeaderPath,
		"features.json":          result.RuntimePath,
	}

	for name, actualPath := range goldenFiles {
		t.Run(name, func(t *testing.T) {
			actual, err := os.ReadFile(actualPath)
			require.NoError(t, err)

			goldenPath := filepath.Join(goldenDir, name)
			if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
				// Golden file doesn't exist yet -- write it.
				require.NoError(t, os.MkdirAll(goldenDir, 0o755))
				require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
				t.Logf("golden file written: %s (commit it)", goldenPath)
				return
			}

			expected, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(expected), string(actual),
				"golden mismatch for %s -- delete testdata/golden/ and re-run to regenerate", name)
		})
	}
}

// TestBuildPipelineStructure verifies the structural properties of a
// full pipeline run independent of exact artifact bytes -- which
// modules built, which were skipped and why, and the consistency
// contract between the two artifact halves re-read from disk.
func TestBuildPipelineStructure(t *testing.T) {
	repoRoot := testutil.RepoRoot(t)
	root := copyFixtureProject(t)
	service := app.NewService(app.ServiceOptions{Compiler: stubCompiler(t)})

	result, err := service.Build(t.Context(), app.BuildRequest{
		CatalogPath: filepath.Join(repoRoot, "fixtures", "catalog-sample.yaml"),
		Root:        root,
		BuildDir:    filepath.Join(root, "build"),
	})
	require.NoError(t, err)

	assert.Equal(t, "gridseg", result.ProjectName)
	assert.Equal(t, "1.2.4", result.Version)
	assert.Equal(t, []string{"gridseg._core"}, result.Built)

	wantSkipped := []types.SkippedModule{
		{Module: "gridseg.hdf5._hdf5", Missing: []string{"hdf5"}},
	}
	if diff := cmp.Diff(wantSkipped, result.Skipped); diff != "" {
		t.Fatalf("unexpected skipped modules (-want +got):\n%s", diff)
	}

	buildDir := filepath.Join(root, "build")
	assert.Equal(t, filepath.Join(buildDir, "config", "gridseg_build_config.h"), result.HeaderPath)
	assert.Equal(t, filepath.Join(buildDir, "features.json"), result.RuntimePath)

	header, err := os.ReadFile(result.HeaderPath)
	require.NoError(t, err)
	raw, err := os.ReadFile(result.RuntimePath)
	require.NoError(t, err)
	var reflection types.RuntimeReflection
	require.NoError(t, json.Unmarshal(raw, &reflection))

	assert.Len(t, reflection.Features, 4)
	for macro := range reflection.Features {
		assert.True(t, strings.HasPrefix(macro, "WITH_"), "runtime key %s lacks the macro prefix", macro)
	}

	artifact := types.ConfigArtifact{Header: string(header), Runtime: reflection}
	require.NoError(t, core.VerifyArtifact(artifact))
}

// copyFixtureProject clones the committed sample project into a temp
// root so the pipeline can write build output without touching the
// repository tree.
func copyFixtureProject(t *testing.T) string {
	t.Helper()
	src := filepath.Join(testutil.RepoRoot(t), "fixtures", "project")
	root := t.TempDir()
	err := filepath.WalkDir(src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return root
}

// stubCompiler writes a shell script that accepts any compile
// invocation, so pipeline runs never need a real toolchain.
func stubCompiler(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compiler scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "cxx")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))
	return path
}
