package adapters

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/shared"
)

// PkgConfigAdapter queries the pkg-config registry.  A non-zero exit
// from --exists is a clean "not installed"; only a missing or broken
// pkg-config binary surfaces as an error.
type PkgConfigAdapter struct {
	// Binary overrides the pkg-config executable, for tests.
	Binary string
}

func NewPkgConfigAdapter() PkgConfigAdapter {
	return PkgConfigAdapter{}
}

func (a PkgConfigAdapter) binary() string {
	if strings.TrimSpace(a.Binary) == "" {
		return "pkg-config"
	}
	return a.Binary
}

func (a PkgConfigAdapter) Exists(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, a.binary(), "--exists", name)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a PkgConfigAdapter) InstalledVersion(ctx context.Context, name string) (string, error) {
	cmd := exec.CommandContext(ctx, a.binary(), "--modversion", name)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("pkg-config --modversion failed").
			WithCause(shared.CommandError([]byte(stderr.String()), err))
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.PackageRegistryPort = PkgConfigAdapter{}
