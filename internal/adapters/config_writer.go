package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/types"
)

// ConfigWriterAdapter persists both halves of the configuration
// artifact.  Writes go through a temp file in the destination
// directory plus a rename, so a crash never leaves a partial artifact
// at the final path.
type ConfigWriterAdapter struct{}

func NewConfigWriterAdapter() ConfigWriterAdapter {
	return ConfigWriterAdapter{}
}

func (a ConfigWriterAdapter) WriteHeader(path string, artifact types.ConfigArtifact) error {
	return writeAtomic(path, []byte(artifact.Header))
}

func (a ConfigWriterAdapter) WriteRuntime(path string, artifact types.ConfigArtifact) error {
	data, err := json.MarshalIndent(artifact.Runtime, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode runtime configuration").
			WithCause(err)
	}
	return writeAtomic(path, append(data, '\n'))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create artifact directory").
			WithCause(err)
	}
	tmp, err := os.CreateTemp(dir, ".extbuild-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create artifact temp file").
			WithCause(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write artifact").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close artifact temp file").
			WithCause(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to move artifact into place").
			WithCause(err)
	}
	return nil
}

var _ ports.ConfigWriterPort = ConfigWriterAdapter{}
