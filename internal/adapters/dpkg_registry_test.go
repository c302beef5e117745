package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDpkgExistsInstalledPackage(t *testing.T) {
	adapter := DpkgRegistryAdapter{Binary: writeStub(t, "dpkg-query", "#!/bin/sh\nprintf 'install ok installed'\n")}
	ok, err := adapter.Exists(t.Context(), "libboost-dev")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDpkgExistsRemovedPackage(t *testing.T) {
	// Removed-but-not-purged packages still have a dpkg record; the
	// status line distinguishes them from installed ones.
	adapter := DpkgRegistryAdapter{Binary: writeStub(t, "dpkg-query", "#!/bin/sh\nprintf 'deinstall ok config-files'\n")}
	ok, err := adapter.Exists(t.Context(), "libboost-dev")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDpkgExistsUnknownPackageIsCleanMiss(t *testing.T) {
	adapter := DpkgRegistryAdapter{Binary: writeStub(t, "dpkg-query", "#!/bin/sh\necho 'no packages found' >&2\nexit 1\n")}
	ok, err := adapter.Exists(t.Context(), "libweird")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDpkgInstalledVersion(t *testing.T) {
	adapter := DpkgRegistryAdapter{Binary: writeStub(t, "dpkg-query", "#!/bin/sh\nprintf '1.74.0.3ubuntu7'\n")}
	version, err := adapter.InstalledVersion(t.Context(), "libboost-dev")
	require.NoError(t, err)
	assert.Equal(t, "1.74.0.3ubuntu7", version)
}

func TestDpkgInstalledVersionFailure(t *testing.T) {
	adapter := DpkgRegistryAdapter{Binary: writeStub(t, "dpkg-query", "#!/bin/sh\nexit 1\n")}
	_, err := adapter.InstalledVersion(t.Context(), "libboost-dev")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dpkg-query version lookup failed")
}
