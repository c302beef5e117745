package adapters

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extbuild/internal/types"
)

// writeStub drops an executable shell script standing in for an
// external binary.
func writeStub(t *testing.T, name string, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestTryCompileAcceptAndReject(t *testing.T) {
	accept := NewCxxToolchainAdapter(writeStub(t, "cxx-ok", "#!/bin/sh\nexit 0\n"))
	ok, err := accept.TryCompile(t.Context(), "int main() {}", []string{"-std=c++17"})
	require.NoError(t, err)
	assert.True(t, ok)

	reject := NewCxxToolchainAdapter(writeStub(t, "cxx-bad", "#!/bin/sh\nexit 1\n"))
	ok, err = reject.TryCompile(t.Context(), "int main() {}", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTryCompileMissingCompilerIsError(t *testing.T) {
	adapter := NewCxxToolchainAdapter(filepath.Join(t.TempDir(), "no-such-compiler"))
	_, err := adapter.TryCompile(t.Context(), "int main() {}", nil)
	require.Error(t, err)
}

func TestCompileAssemblesCommandLine(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	compiler := writeStub(t, "cxx-record", "#!/bin/sh\nprintf '%s\\n' \"$@\" > "+argsFile+"\nexit 0\n")

	adapter := NewCxxToolchainAdapter(compiler)
	buildDir := t.TempDir()
	desc := types.BuildDescriptor{
		Module:      "gridseg._core",
		Sources:     []string{"/src/core.cxx", "/src/labels.cxx"},
		IncludeDirs: []string{"/proj/include", "/usr/include"},
		Macros: []types.Macro{
			{Name: "WITH_BOOST", Value: "1"},
			{Name: "NDEBUG"},
		},
		CompileFlags:  []string{"-O3", "-fPIC"},
		LinkLibraries: []string{"gomp"},
	}
	require.NoError(t, adapter.Compile(t.Context(), desc, buildDir))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	args := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	expected := []string{
		"-shared",
		"-O3", "-fPIC",
		"-DWITH_BOOST=1",
		"-DNDEBUG",
		"-I/proj/include", "-I/usr/include",
		"/src/core.cxx", "/src/labels.cxx",
		"-o", filepath.Join(buildDir, "gridseg", "_core.so"),
		"-lgomp",
	}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Fatalf("unexpected compiler invocation (-want +got):\n%s", diff)
	}

	// The module output directory must exist for the compiler to
	// write into.
	info, err := os.Stat(filepath.Join(buildDir, "gridseg"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCompileFailureNamesModule(t *testing.T) {
	compiler := writeStub(t, "cxx-fail", "#!/bin/sh\necho 'undefined reference' >&2\nexit 1\n")
	adapter := NewCxxToolchainAdapter(compiler)

	desc := types.BuildDescriptor{Module: "gridseg._core", Sources: []string{"/src/core.cxx"}}
	err := adapter.Compile(t.Context(), desc, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toolchain build failed for gridseg._core")
}

func TestModuleOutputPathNestsDottedNames(t *testing.T) {
	path := moduleOutputPath("/build", "gridseg.hdf5._hdf5")
	if runtime.GOOS == "windows" {
		assert.Equal(t, filepath.Join("/build", "gridseg", "hdf5", "_hdf5.pyd"), path)
		return
	}
	assert.Equal(t, filepath.Join("/build", "gridseg", "hdf5", "_hdf5.so"), path)
}
