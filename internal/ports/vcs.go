package ports

import (
	"context"

	"extbuild/internal/types"
)

// VCSPort wraps the version-control operations needed to manage
// vendored source trees.
type VCSPort interface {
	// IsRepository reports whether root is a version-controlled tree.
	IsRepository(root string) bool

	// SubmoduleState reports the recorded state of one vendored tree
	// relative to the commit the parent tree pins.
	SubmoduleState(ctx context.Context, root string, path string) (types.SubmoduleStatus, error)

	// SubmoduleInit fetches and checks out one vendored tree at its
	// pinned commit.
	SubmoduleInit(ctx context.Context, root string, path string) error

	// SubmoduleSync moves an initialized vendored tree to its tracked
	// remote state.
	SubmoduleSync(ctx context.Context, root string, path string) error

	// Clone fetches url into dest directly, bypassing submodule
	// bookkeeping.  Used as fallback when the managed path fails.
	Clone(ctx context.Context, url string, dest string) error
}
