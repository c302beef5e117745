package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extbuild/internal/types"
)

func TestParseSubmoduleStatus(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected types.SubmoduleStatus
	}{
		{
			name:     "not initialized",
			output:   "-a1b2c3d externals/qpbo\n",
			expected: types.SubmoduleNotInitialized,
		},
		{
			name:     "modified checkout",
			output:   "+a1b2c3d externals/qpbo (heads/master)\n",
			expected: types.SubmoduleModified,
		},
		{
			name:     "up to date",
			output:   " a1b2c3d externals/qpbo (v1.0)\n",
			expected: types.SubmoduleUpToDate,
		},
		{
			name:     "empty output",
			output:   "",
			expected: types.SubmoduleUpToDate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSubmoduleStatus(tt.output))
		})
	}
}

func TestIsRepository(t *testing.T) {
	adapter := NewGitVCSAdapter()

	root := t.TempDir()
	assert.False(t, adapter.IsRepository(root))

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	assert.True(t, adapter.IsRepository(root))
}

func TestIsRepositoryGitFile(t *testing.T) {
	// Worktrees and submodule checkouts carry a .git file instead of a
	// directory; both count.
	adapter := NewGitVCSAdapter()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte("gitdir: ../.git/modules/x\n"), 0o644))
	assert.True(t, adapter.IsRepository(root))
}
