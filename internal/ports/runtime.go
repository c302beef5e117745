package ports

import "context"

// RuntimeImportPort asks the hosting language runtime whether it can
// import a module, and for module metadata when it can.
type RuntimeImportPort interface {
	Resolve(ctx context.Context, module string) (bool, error)

	// DistributionVersion returns the installed distribution version
	// for an importable module.
	DistributionVersion(ctx context.Context, module string) (string, error)

	// IncludeDir returns the include directory the module reports for
	// compiling against it (numpy, pybind11).
	IncludeDir(ctx context.Context, module string) (string, error)
}
