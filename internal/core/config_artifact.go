package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/shared"
	"extbuild/internal/types"
)

// GenerateConfigArtifact renders the two halves of the configuration
// artifact from one feature map and version string.  Deterministic:
// identical inputs yield a byte-identical header and an equal runtime
// structure.  The header defines only true features; the runtime half
// carries an entry for every feature, true or false.
func GenerateConfigArtifact(project string, version string, features types.FeatureMap) (types.ConfigArtifact, error) {
	parsed, err := ParseVersion(version)
	if err != nil {
		return types.ConfigArtifact{}, err
	}
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	runtime := types.RuntimeReflection{
		Version:  FormatVersion(parsed),
		Features: map[string]bool{},
	}
	var b strings.Builder
	b.WriteString("#pragma once\n")
	b.WriteString("// Auto-generated build configuration\n")
	b.WriteString("// DO NOT EDIT MANUALLY\n\n")
	for _, name := range names {
		macro := shared.MacroName(name)
		runtime.Features[macro] = features[name]
		if features[name] {
			fmt.Fprintf(&b, "#define %s\n", macro)
		}
	}
	prefix := shared.UpperToken(project)
	b.WriteString("\n")
	fmt.Fprintf(&b, "#define %s_VERSION_MAJOR %d\n", prefix, parsed.Major)
	fmt.Fprintf(&b, "#define %s_VERSION_MINOR %d\n", prefix, parsed.Minor)
	fmt.Fprintf(&b, "#define %s_VERSION_PATCH %d\n", prefix, parsed.Patch)

	return types.ConfigArtifact{Header: b.String(), Runtime: runtime}, nil
}

// VerifyArtifact checks the consistency contract between the two
// halves: a feature macro is defined in the header iff its runtime
// entry is true.
func VerifyArtifact(artifact types.ConfigArtifact) error {
	defined := map[string]struct{}{}
	for _, line := range strings.Split(artifact.Header, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "#define" && strings.HasPrefix(fields[1], shared.MacroPrefix) {
			defined[fields[1]] = struct{}{}
		}
	}
	for macro, enabled := range artifact.Runtime.Features {
		_, present := defined[macro]
		if enabled != present {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("config artifact halves disagree on %s", macro))
		}
		delete(defined, macro)
	}
	for macro := range defined {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("config artifact header defines %s without a runtime entry", macro))
	}
	return nil
}
