// Package runtimecfg loads the runtime half of the configuration
// artifact for consumers that need feature availability after a build.
// Loading never silently degrades: the result is either the loaded
// configuration or an explicit degraded state carrying the reason.
package runtimecfg

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/shared"
	"extbuild/internal/types"
)

type Status string

const (
	StatusLoaded   Status = "loaded"
	StatusDegraded Status = "degraded"
)

// Result is the typed outcome of a load: the full configuration, or a
// degraded stand-in that still carries the fallback version plus the
// reason the load failed.
type Result struct {
	Status Status
	Config types.RuntimeReflection
	Reason string
}

// Load reads the runtime configuration from path.  On any failure the
// result is degraded: the version falls back to fallbackVersion, the
// feature map is empty, and Reason records what went wrong.
func Load(path string, fallbackVersion string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return degraded(fallbackVersion, err.Error())
	}
	var config types.RuntimeReflection
	if err := json.Unmarshal(data, &config); err != nil {
		return degraded(fallbackVersion, err.Error())
	}
	if config.Features == nil {
		config.Features = map[string]bool{}
	}
	return Result{Status: StatusLoaded, Config: config}
}

func degraded(fallbackVersion string, reason string) Result {
	return Result{
		Status: StatusDegraded,
		Config: types.RuntimeReflection{
			Version:  fallbackVersion,
			Features: map[string]bool{},
		},
		Reason: reason,
	}
}

// Enabled reports a feature's availability by its catalog name.
// Referencing a feature the configuration does not record is an error,
// never an implicit false; a degraded result records nothing.
func (r Result) Enabled(feature string) (bool, error) {
	enabled, ok := r.Config.Features[shared.MacroName(feature)]
	if !ok {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("feature %s is not recorded in the runtime configuration", feature))
	}
	return enabled, nil
}
