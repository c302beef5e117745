package app

import (
	"extbuild/internal/runtimecfg"
	"extbuild/internal/solvers"
	"extbuild/internal/types"
)

type ValidateRequest struct {
	CatalogPath string
	Root        string
}

type ValidateResult struct {
	ProjectName  string
	Dependencies int
	Submodules   int
	Modules      int
}

type DetectRequest struct {
	CatalogPath string
	Root        string
}

// SolverSummary reports the factory set one capability tag resolves to
// under the current feature map.
type SolverSummary struct {
	Capability string
	Factories  []solvers.Availability
}

type DetectResult struct {
	ProjectName string
	Report      types.FeatureReport
	Solvers     []SolverSummary
}

type BuildRequest struct {
	CatalogPath string
	Root        string
	BuildDir    string
}

type BuildResult struct {
	ProjectName string
	Version     string
	HeaderPath  string
	RuntimePath string
	Built       []string
	Skipped     []types.SkippedModule
}

// SubmoduleRequest selects the submodules an operation applies to.  An
// empty Path means every submodule the catalog declares.
type SubmoduleRequest struct {
	CatalogPath string
	Root        string
	Path        string
	Force       bool
}

type SubmoduleStatusEntry struct {
	Path        string
	Description string
	Status      types.SubmoduleStatus
	Detail      string
}

type SubmoduleStatusResult struct {
	Entries []SubmoduleStatusEntry
}

// SubmoduleActionEntry is the per-submodule outcome of an init or
// update.  Failures are data here, never errors; the caller decides
// whether they are fatal.
type SubmoduleActionEntry struct {
	Path   string
	OK     bool
	Detail string
}

type SubmoduleActionResult struct {
	Entries []SubmoduleActionEntry
}

type SubmoduleVerifyEntry struct {
	Path   string
	OK     bool
	Detail string
}

type SubmoduleVerifyResult struct {
	Entries []SubmoduleVerifyEntry
}

type InfoRequest struct {
	BuildDir string
}

type InfoResult struct {
	Status   runtimecfg.Status
	Version  string
	Reason   string
	Features map[string]bool
	Solvers  []SolverSummary
}
