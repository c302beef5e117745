package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"extbuild/internal/types"
)

// SubmoduleStatus derives the state of the selected vendored trees.
func (s Service) SubmoduleStatus(ctx context.Context, req SubmoduleRequest) (SubmoduleStatusResult, error) {
	root := projectRoot(req.Root)
	specs, err := s.selectSubmodules(ctx, req, root)
	if err != nil {
		return SubmoduleStatusResult{}, err
	}
	var result SubmoduleStatusResult
	for _, spec := range specs {
		status, detail := s.submoduleState(ctx, root, spec)
		result.Entries = append(result.Entries, SubmoduleStatusEntry{
			Path:        spec.Path,
			Description: spec.Description,
			Status:      status,
			Detail:      detail,
		})
	}
	return result, nil
}

// SubmoduleInit fetches the selected vendored trees.  With Force, any
// existing checkout is destroyed first; this is the one deliberately
// destructive operation in the resolver.  Per-tree failures are
// reported as entries, never as errors.
func (s Service) SubmoduleInit(ctx context.Context, req SubmoduleRequest) (SubmoduleActionResult, error) {
	root := projectRoot(req.Root)
	specs, err := s.selectSubmodules(ctx, req, root)
	if err != nil {
		return SubmoduleActionResult{}, err
	}
	var result SubmoduleActionResult
	for _, spec := range specs {
		ok, detail := s.initSubmodule(ctx, root, spec, req.Force)
		result.Entries = append(result.Entries, SubmoduleActionEntry{Path: spec.Path, OK: ok, Detail: detail})
	}
	return result, nil
}

// SubmoduleUpdate moves initialized trees to their tracked remote
// state.  Missing or uninitialized trees are routed through init.
func (s Service) SubmoduleUpdate(ctx context.Context, req SubmoduleRequest) (SubmoduleActionResult, error) {
	root := projectRoot(req.Root)
	specs, err := s.selectSubmodules(ctx, req, root)
	if err != nil {
		return SubmoduleActionResult{}, err
	}
	var result SubmoduleActionResult
	for _, spec := range specs {
		ok, detail := s.updateSubmodule(ctx, root, spec)
		result.Entries = append(result.Entries, SubmoduleActionEntry{Path: spec.Path, OK: ok, Detail: detail})
	}
	return result, nil
}

// SubmoduleVerify runs each tree's structural spot-check, independent
// of version-control state.
func (s Service) SubmoduleVerify(ctx context.Context, req SubmoduleRequest) (SubmoduleVerifyResult, error) {
	root := projectRoot(req.Root)
	specs, err := s.selectSubmodules(ctx, req, root)
	if err != nil {
		return SubmoduleVerifyResult{}, err
	}
	var result SubmoduleVerifyResult
	for _, spec := range specs {
		ok, detail := verifySubmodule(root, spec)
		result.Entries = append(result.Entries, SubmoduleVerifyEntry{Path: spec.Path, OK: ok, Detail: detail})
	}
	return result, nil
}

func (s Service) selectSubmodules(ctx context.Context, req SubmoduleRequest, root string) ([]types.SubmoduleSpec, error) {
	resolved, err := s.loadCatalog(ctx, req.CatalogPath, root)
	if err != nil {
		return nil, err
	}
	selector := strings.TrimSpace(req.Path)
	if selector == "" {
		return resolved.Submodules, nil
	}
	for _, spec := range resolved.Submodules {
		if spec.Path == selector {
			return []types.SubmoduleSpec{spec}, nil
		}
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("submodule %s is not declared by the catalog", selector))
}

// resolveSubmodules brings every declared tree into a usable state for
// the build pipeline: absent or uninitialized trees are fetched,
// everything else is left alone.
func (s Service) resolveSubmodules(ctx context.Context, root string, specs []types.SubmoduleSpec) []SubmoduleActionEntry {
	var entries []SubmoduleActionEntry
	for _, spec := range specs {
		status, _ := s.submoduleState(ctx, root, spec)
		if status == types.SubmoduleUpToDate || status == types.SubmoduleModified {
			entries = append(entries, SubmoduleActionEntry{Path: spec.Path, OK: true, Detail: string(status)})
			continue
		}
		ok, detail := s.initSubmodule(ctx, root, spec, false)
		entries = append(entries, SubmoduleActionEntry{Path: spec.Path, OK: ok, Detail: detail})
	}
	return entries
}

// submoduleState derives one tree's status: path absent means missing,
// a root without version control means not initialized, otherwise the
// version-control subsystem decides.  Query failures map to the error
// status with the captured diagnostic, not to a raised error.
func (s Service) submoduleState(ctx context.Context, root string, spec types.SubmoduleSpec) (types.SubmoduleStatus, string) {
	target := filepath.Join(root, spec.Path)
	if _, err := os.Stat(target); err != nil {
		return types.SubmoduleMissing, "path does not exist"
	}
	if !s.VCS.IsRepository(root) {
		return types.SubmoduleNotInitialized, "project root is not version controlled"
	}
	status, err := s.VCS.SubmoduleState(ctx, root, spec.Path)
	if err != nil {
		return types.SubmoduleError, err.Error()
	}
	return status, ""
}

// initSubmodule fetches one tree: managed submodule init first, direct
// clone as fallback.  Force removes the existing checkout before
// fetching, so the result is never a hybrid of old and new content.
func (s Service) initSubmodule(ctx context.Context, root string, spec types.SubmoduleSpec, force bool) (bool, string) {
	target := filepath.Join(root, spec.Path)
	if force {
		if err := os.RemoveAll(target); err != nil {
			return false, fmt.Sprintf("failed to remove existing checkout: %v", err)
		}
		log.Ctx(ctx).Debug().Str("submodule", spec.Path).Msg("existing checkout removed")
	}
	if s.VCS.IsRepository(root) {
		err := s.VCS.SubmoduleInit(ctx, root, spec.Path)
		if err == nil {
			return true, "initialized"
		}
		log.Ctx(ctx).Debug().
			Str("submodule", spec.Path).
			Err(err).
			Msg("managed init failed, falling back to clone")
	}
	if err := s.VCS.Clone(ctx, spec.URL, target); err != nil {
		return false, err.Error()
	}
	return true, "cloned"
}

func (s Service) updateSubmodule(ctx context.Context, root string, spec types.SubmoduleSpec) (bool, string) {
	status, _ := s.submoduleState(ctx, root, spec)
	if status == types.SubmoduleMissing || status == types.SubmoduleNotInitialized {
		return s.initSubmodule(ctx, root, spec, false)
	}
	if err := s.VCS.SubmoduleSync(ctx, root, spec.Path); err != nil {
		return false, err.Error()
	}
	return true, "updated"
}

// verifySubmodule applies the declared structural rule.  Without a rule
// the bare existence of the tree suffices.
func verifySubmodule(root string, spec types.SubmoduleSpec) (bool, string) {
	target := filepath.Join(root, spec.Path)
	rule := spec.Verify
	if rule.Dir != "" {
		info, err := os.Stat(filepath.Join(target, rule.Dir))
		if err != nil || !info.IsDir() {
			return false, fmt.Sprintf("expected directory %s is missing", rule.Dir)
		}
		return true, ""
	}
	if rule.Glob != "" {
		matches, err := filepath.Glob(filepath.Join(target, rule.Glob))
		if err != nil {
			return false, err.Error()
		}
		if len(matches) == 0 {
			return false, fmt.Sprintf("no entries match %s", rule.Glob)
		}
		return true, ""
	}
	if _, err := os.Stat(target); err != nil {
		return false, "path does not exist"
	}
	return true, ""
}
