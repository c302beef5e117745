package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVersionFromFixtureHeader(t *testing.T) {
	adapter := NewVersionHeaderAdapter()
	version, err := adapter.ReadVersion("../../fixtures/project/include/gridseg/gridseg_config.hxx", "gridseg")
	require.NoError(t, err)
	assert.Equal(t, "1.2.4", version)
}

func TestReadVersionIgnoresUnrelatedDefines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hxx")
	header := `#pragma once
#define OTHER_VERSION_MAJOR 9
#define GRIDSEG_VERSION_MAJOR 3
#define GRIDSEG_VERSION_MINOR 0
#define GRIDSEG_VERSION_PATCH 12
`
	require.NoError(t, os.WriteFile(path, []byte(header), 0o644))

	adapter := NewVersionHeaderAdapter()
	version, err := adapter.ReadVersion(path, "gridseg")
	require.NoError(t, err)
	assert.Equal(t, "3.0.12", version)
}

func TestReadVersionMissingDefine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.hxx")
	header := `#define GRIDSEG_VERSION_MAJOR 1
#define GRIDSEG_VERSION_MINOR 2
`
	require.NoError(t, os.WriteFile(path, []byte(header), 0o644))

	adapter := NewVersionHeaderAdapter()
	_, err := adapter.ReadVersion(path, "gridseg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GRIDSEG_VERSION_PATCH")
}

func TestReadVersionMissingHeader(t *testing.T) {
	adapter := NewVersionHeaderAdapter()
	_, err := adapter.ReadVersion(filepath.Join(t.TempDir(), "absent.hxx"), "gridseg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version header not found")
}
