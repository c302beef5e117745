package policies

import (
	"extbuild/internal/types"
)

// flagRule attaches compiler flags and link libraries to a detected
// feature.
type flagRule struct {
	feature string
	flags   []string
	libs    []string
}

// FlagPolicy derives the compile flags and link libraries for the
// current platform from the global feature map.  The base flags apply
// unconditionally; feature rules only fire when the feature was
// detected.
type FlagPolicy struct {
	goos  string
	base  []string
	rules []flagRule
}

func NewFlagPolicy(goos string) FlagPolicy {
	if goos == "windows" {
		return FlagPolicy{
			goos: goos,
			base: []string{"/O2", "/DNOMINMAX"},
			rules: []flagRule{
				{feature: "openmp", flags: []string{"/openmp"}, libs: []string{"openmp"}},
				{feature: "cpp17", flags: []string{"/std:c++17"}},
			},
		}
	}
	return FlagPolicy{
		goos: goos,
		base: []string{"-O3", "-fPIC"},
		rules: []flagRule{
			{feature: "openmp", flags: []string{"-fopenmp"}, libs: []string{"gomp"}},
			{feature: "cpp17", flags: []string{"-std=c++17"}},
		},
	}
}

func (p FlagPolicy) CompileFlags(features types.FeatureMap) []string {
	flags := append([]string{}, p.base...)
	for _, rule := range p.rules {
		if features[rule.feature] {
			flags = append(flags, rule.flags...)
		}
	}
	return flags
}

func (p FlagPolicy) LinkLibraries(features types.FeatureMap) []string {
	var libs []string
	for _, rule := range p.rules {
		if features[rule.feature] {
			libs = append(libs, rule.libs...)
		}
	}
	return libs
}
