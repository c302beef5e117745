package ports

import "extbuild/internal/types"

// ConfigWriterPort persists the two halves of a configuration
// artifact.  A half must never be observable partially written at its
// final path.
type ConfigWriterPort interface {
	WriteHeader(path string, artifact types.ConfigArtifact) error
	WriteRuntime(path string, artifact types.ConfigArtifact) error
}

// VersionSourcePort extracts the project version string from its
// version source header.
type VersionSourcePort interface {
	ReadVersion(path string, project string) (string, error)
}
