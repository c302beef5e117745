package adapters

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/shared"
	"extbuild/internal/types"
)

// GitVCSAdapter manages vendored trees through the git CLI.
type GitVCSAdapter struct{}

func NewGitVCSAdapter() GitVCSAdapter {
	return GitVCSAdapter{}
}

func (a GitVCSAdapter) IsRepository(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}

func (a GitVCSAdapter) SubmoduleState(ctx context.Context, root string, path string) (types.SubmoduleStatus, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", root, "submodule", "status", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return types.SubmoduleError, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git submodule status failed").
			WithCause(shared.CommandError(output, err))
	}
	return parseSubmoduleStatus(string(output)), nil
}

// parseSubmoduleStatus maps the status line prefix: "-" means the
// submodule is registered but not checked out, "+" means the checkout
// diverged from the pinned commit, anything else is up to date.
func parseSubmoduleStatus(output string) types.SubmoduleStatus {
	trimmed := strings.TrimRight(output, "\n")
	switch {
	case strings.HasPrefix(trimmed, "-"):
		return types.SubmoduleNotInitialized
	case strings.HasPrefix(trimmed, "+"):
		return types.SubmoduleModified
	default:
		return types.SubmoduleUpToDate
	}
}

func (a GitVCSAdapter) SubmoduleInit(ctx context.Context, root string, path string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", root, "submodule", "update", "--init", "--recursive", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git submodule update --init failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func (a GitVCSAdapter) SubmoduleSync(ctx context.Context, root string, path string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", root, "submodule", "update", "--remote", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git submodule update --remote failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func (a GitVCSAdapter) Clone(ctx context.Context, url string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create clone parent directory").
			WithCause(err)
	}
	cmd := exec.CommandContext(ctx, "git", "clone", url, dest)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("git clone failed").
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

var _ ports.VCSPort = GitVCSAdapter{}
