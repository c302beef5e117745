package ports

import "context"

// PackageRegistryPort queries one system package registry (pkg-config,
// dpkg) for installed packages.
type PackageRegistryPort interface {
	// Exists reports whether the named package is installed.
	Exists(ctx context.Context, name string) (bool, error)

	// InstalledVersion returns the installed version string.  Only
	// meaningful after Exists reported true.
	InstalledVersion(ctx context.Context, name string) (string, error)
}
