package types

// ConfigArtifact pairs the compile-time header text with the runtime
// reflection structure generated from the same FeatureMap.  The halves
// agree by construction: a macro is defined in the header iff its
// runtime entry is true.
type ConfigArtifact struct {
	Header  string
	Runtime RuntimeReflection
}

// RuntimeReflection is the runtime half of the configuration artifact,
// serialized as JSON next to the build output.  Feature keys carry the
// macro marker prefix, mirroring the header defines.
type RuntimeReflection struct {
	Version  string          `json:"version"`
	Features map[string]bool `json:"features"`
}
