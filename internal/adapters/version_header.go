package adapters

import (
	"fmt"
	"os"
	"regexp"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/shared"
)

// VersionHeaderAdapter extracts the project version triple from the
// version source header's preprocessor defines.
type VersionHeaderAdapter struct{}

func NewVersionHeaderAdapter() VersionHeaderAdapter {
	return VersionHeaderAdapter{}
}

func (a VersionHeaderAdapter) ReadVersion(path string, project string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("version header not found").
			WithCause(err)
	}
	prefix := shared.UpperToken(project)
	pattern := regexp.MustCompile(fmt.Sprintf(`#define\s+%s_VERSION_(MAJOR|MINOR|PATCH)\s+(\d+)`, regexp.QuoteMeta(prefix)))
	parts := map[string]string{}
	for _, match := range pattern.FindAllStringSubmatch(string(data), -1) {
		parts[match[1]] = match[2]
	}
	for _, key := range []string{"MAJOR", "MINOR", "PATCH"} {
		if _, ok := parts[key]; !ok {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("version header %s is missing %s_VERSION_%s", path, prefix, key))
		}
	}
	return fmt.Sprintf("%s.%s.%s", parts["MAJOR"], parts["MINOR"], parts["PATCH"]), nil
}

var _ ports.VersionSourcePort = VersionHeaderAdapter{}
