package types

// FeatureMap records the availability of every dependency and compiler
// feature referenced by a catalog.  Keys are feature names, not macro
// names.
type FeatureMap map[string]bool

// ProbeDiagnostic records a strategy that errored rather than cleanly
// deciding presence.  The availability verdict is unaffected; the
// diagnostic only preserves what went wrong.
type ProbeDiagnostic struct {
	Dependency string
	Strategy   StrategyKind
	Detail     string
}

// FeatureReport is the result of probing a whole catalog: the
// availability map plus the side products of detection.
type FeatureReport struct {
	Features FeatureMap

	// IncludeDirs maps a feature name to include roots discovered
	// during its detection (non-standard install roots, runtime-
	// reported include dirs).
	IncludeDirs map[string][]string

	// Versions maps a feature name to the version string observed
	// during detection, when the winning strategy produced one.
	Versions map[string]string

	Diagnostics []ProbeDiagnostic
}
