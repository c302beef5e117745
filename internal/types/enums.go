package types

type StrategyKind string

const (
	StrategyRegistry      StrategyKind = "registry"
	StrategyPaths         StrategyKind = "paths"
	StrategyEnv           StrategyKind = "env"
	StrategyTrialCompile  StrategyKind = "trial-compile"
	StrategyRuntimeImport StrategyKind = "runtime-import"
)

type RegistryKind string

const (
	RegistryPkgConfig RegistryKind = "pkg-config"
	RegistryDpkg      RegistryKind = "dpkg"
)

type SubmoduleStatus string

const (
	SubmoduleMissing        SubmoduleStatus = "missing"
	SubmoduleNotInitialized SubmoduleStatus = "not-initialized"
	SubmoduleUpToDate       SubmoduleStatus = "up-to-date"
	SubmoduleModified       SubmoduleStatus = "modified"
	SubmoduleError          SubmoduleStatus = "error"
)

type BuildState string

const (
	StateStart              BuildState = "start"
	StateSubmodulesResolved BuildState = "submodules-resolved"
	StateFeaturesDetected   BuildState = "features-detected"
	StateConfigGenerated    BuildState = "config-generated"
	StateGraphBuilt         BuildState = "graph-built"
	StateDelegated          BuildState = "delegated"
	StateDone               BuildState = "done"
	StateFailed             BuildState = "failed"
)
