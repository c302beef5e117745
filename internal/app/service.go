package app

import (
	"runtime"

	"extbuild/internal/adapters"
	"extbuild/internal/ports"
	"extbuild/internal/types"
)

type Service struct {
	Catalog       ports.CatalogPort
	Registries    map[types.RegistryKind]ports.PackageRegistryPort
	Toolchain     ports.ToolchainPort
	Runtime       ports.RuntimeImportPort
	VCS           ports.VCSPort
	ConfigWriter  ports.ConfigWriterPort
	VersionSource ports.VersionSourcePort

	// Platform selects the flag policy; defaults to the host OS.
	Platform string
}

// ServiceOptions carries the host-specific executables resolved by the
// CLI layer.
type ServiceOptions struct {
	Compiler    string
	Interpreter string
}

func NewService(opts ServiceOptions) Service {
	return Service{
		Catalog: adapters.NewCatalogFileAdapter(),
		Registries: map[types.RegistryKind]ports.PackageRegistryPort{
			types.RegistryPkgConfig: adapters.NewPkgConfigAdapter(),
			types.RegistryDpkg:      adapters.NewDpkgRegistryAdapter(),
		},
		Toolchain:     adapters.NewCxxToolchainAdapter(opts.Compiler),
		Runtime:       adapters.NewPythonRuntimeAdapter(opts.Interpreter),
		VCS:           adapters.NewGitVCSAdapter(),
		ConfigWriter:  adapters.NewConfigWriterAdapter(),
		VersionSource: adapters.NewVersionHeaderAdapter(),
		Platform:      runtime.GOOS,
	}
}
