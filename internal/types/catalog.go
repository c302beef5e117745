package types

type ProjectMeta struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	VersionHeader string `yaml:"version_header"`
}

// DetectStrategy is one way of locating a dependency on the build host.
// Strategies are evaluated in declaration order; the first success wins
// and a failing strategy never aborts the chain.
type DetectStrategy struct {
	Kind StrategyKind `yaml:"kind"`

	// Registry query.
	Registry RegistryKind `yaml:"registry,omitempty"`
	Package  string       `yaml:"package,omitempty"`

	// Well-known paths.  Candidates may contain glob patterns; Marker,
	// when set, is joined to each candidate root and must exist there.
	Paths  []string `yaml:"paths,omitempty"`
	Marker string   `yaml:"marker,omitempty"`

	// Environment variable naming a root directory.  The same Marker
	// join applies.
	EnvVar string `yaml:"env_var,omitempty"`

	// Trial compilation.
	Program string   `yaml:"program,omitempty"`
	Flags   []string `yaml:"flags,omitempty"`

	// Hosting-runtime import.
	Import string `yaml:"import,omitempty"`

	MinVersion string `yaml:"min_version,omitempty"`

	// IncludeDir is joined to the discovered root and contributed to
	// the include search path of modules using the dependency.
	IncludeDir string `yaml:"include_dir,omitempty"`

	// IncludeFromImport asks the hosting runtime for the imported
	// module's own include directory (numpy, pybind11).
	IncludeFromImport bool `yaml:"include_from_import,omitempty"`
}

type Dependency struct {
	Name       string           `yaml:"name"`
	Strategies []DetectStrategy `yaml:"strategies"`
}

// VerifyRule is a structural spot-check on a vendored tree: a directory
// that must exist, or a glob that must match at least one entry.
type VerifyRule struct {
	Dir  string `yaml:"dir,omitempty"`
	Glob string `yaml:"glob,omitempty"`
}

type SubmoduleSpec struct {
	Path        string     `yaml:"path"`
	URL         string     `yaml:"url"`
	Description string     `yaml:"description,omitempty"`
	Verify      VerifyRule `yaml:"verify,omitempty"`
}

type ModuleDescriptor struct {
	Name             string   `yaml:"name"`
	Sources          []string `yaml:"sources"`
	IncludeDirs      []string `yaml:"include_dirs,omitempty"`
	Requires         []string `yaml:"requires,omitempty"`
	OptionalRequires []string `yaml:"optional_requires,omitempty"`

	// Optional modules are skipped silently when a required dependency
	// is unavailable instead of aborting the build.
	Optional bool `yaml:"optional,omitempty"`
}

type Catalog struct {
	APIVersion   string       `yaml:"api_version"`
	Project      ProjectMeta  `yaml:"project"`
	Dependencies []Dependency `yaml:"dependencies"`

	// CompilerFeatures are toolchain capabilities (openmp, cpp17)
	// detected the same way as dependencies, usually by trial
	// compilation.
	CompilerFeatures []Dependency `yaml:"compiler_features,omitempty"`

	Submodules []SubmoduleSpec    `yaml:"submodules,omitempty"`
	Modules    []ModuleDescriptor `yaml:"modules"`
}
