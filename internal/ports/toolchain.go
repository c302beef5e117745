package ports

import (
	"context"

	"extbuild/internal/types"
)

type ToolchainPort interface {
	// TryCompile feeds a throwaway source file to the compiler with
	// the given flags and reports whether it was accepted.  The
	// temporary file is removed on every path.
	TryCompile(ctx context.Context, program string, flags []string) (bool, error)

	// Compile builds one extension module into buildDir.  Failures
	// carry the toolchain's own diagnostic output.
	Compile(ctx context.Context, desc types.BuildDescriptor, buildDir string) error
}
