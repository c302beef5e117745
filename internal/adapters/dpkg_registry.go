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

// DpkgRegistryAdapter queries the dpkg database.  Unknown packages exit
// non-zero from dpkg-query, which is a clean "not installed".
type DpkgRegistryAdapter struct {
	// Binary overrides the dpkg-query executable, for tests.
	Binary string
}

func NewDpkgRegistryAdapter() DpkgRegistryAdapter {
	return DpkgRegistryAdapter{}
}

func (a DpkgRegistryAdapter) binary() string {
	if strings.TrimSpace(a.Binary) == "" {
		return "dpkg-query"
	}
	return a.Binary
}

func (a DpkgRegistryAdapter) Exists(ctx context.Context, name string) (bool, error) {
	cmd := exec.CommandContext(ctx, a.binary(), "-W", "-f", "${Status}", name)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return strings.Contains(string(output), "install ok installed"), nil
}

func (a DpkgRegistryAdapter) InstalledVersion(ctx context.Context, name string) (string, error) {
	cmd := exec.CommandContext(ctx, a.binary(), "-W", "-f", "${Version}", name)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("dpkg-query version lookup failed").
			WithCause(shared.CommandError([]byte(stderr.String()), err))
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.PackageRegistryPort = DpkgRegistryAdapter{}
