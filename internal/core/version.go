package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"extbuild/internal/types"
)

// ParseVersion splits a version string into its numeric triple.  Fails
// unless the string has exactly three dot-separated numeric components.
func ParseVersion(value string) (types.Version, error) {
	parts := strings.Split(strings.TrimSpace(value), ".")
	if len(parts) != 3 {
		return types.Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("version %q must have exactly three numeric components", value))
	}
	var nums [3]int
	for i, part := range parts {
		n, err := parseComponent(part)
		if err != nil {
			return types.Version{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version %q component %q is not numeric", value, part))
		}
		nums[i] = n
	}
	return types.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// parseComponent converts one version component, accepting digits only.
func parseComponent(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("empty component")
	}
	n := 0
	for _, r := range part {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit %q", r)
		}
		n = n*10 + int(r-'0')
	}
	return n, nil
}

// FormatVersion renders a triple back into its dotted string form.
func FormatVersion(v types.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MeetsMinimum reports whether an observed version satisfies a minimum
// for the given strategy.  Hosting-runtime distributions compare with
// PEP 440 semantics, everything else with Debian version semantics.
func MeetsMinimum(kind types.StrategyKind, observed string, minimum string) (bool, error) {
	if strings.TrimSpace(minimum) == "" {
		return true, nil
	}
	if kind == types.StrategyRuntimeImport {
		parsed, err := pep440.Parse(strings.TrimSpace(observed))
		if err != nil {
			return false, err
		}
		spec, err := pep440.NewSpecifiers(">=" + minimum)
		if err != nil {
			return false, err
		}
		return spec.Check(parsed), nil
	}
	parsed, err := debversion.NewVersion(strings.TrimSpace(observed))
	if err != nil {
		return false, err
	}
	floor, err := debversion.NewVersion(minimum)
	if err != nil {
		return false, err
	}
	return !parsed.LessThan(floor), nil
}
