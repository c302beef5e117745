package adapters

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/shared"
)

// PythonRuntimeAdapter asks the hosting Python interpreter about
// importable modules.  A failed import exits non-zero, which is a
// clean "not importable"; a missing interpreter is an error.
type PythonRuntimeAdapter struct {
	// Interpreter overrides the python executable.
	Interpreter string
}

func NewPythonRuntimeAdapter(interpreter string) PythonRuntimeAdapter {
	return PythonRuntimeAdapter{Interpreter: interpreter}
}

func (a PythonRuntimeAdapter) interpreter() string {
	if strings.TrimSpace(a.Interpreter) == "" {
		return "python3"
	}
	return a.Interpreter
}

func (a PythonRuntimeAdapter) Resolve(ctx context.Context, module string) (bool, error) {
	cmd := exec.CommandContext(ctx, a.interpreter(), "-c", fmt.Sprintf("import %s", module))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (a PythonRuntimeAdapter) DistributionVersion(ctx context.Context, module string) (string, error) {
	script := fmt.Sprintf("import importlib.metadata as m; print(m.version(%q))", module)
	return a.query(ctx, script, "distribution version lookup failed")
}

func (a PythonRuntimeAdapter) IncludeDir(ctx context.Context, module string) (string, error) {
	script := fmt.Sprintf("import %s; print(%s.get_include())", module, module)
	return a.query(ctx, script, "include dir lookup failed")
}

func (a PythonRuntimeAdapter) query(ctx context.Context, script string, failure string) (string, error) {
	cmd := exec.CommandContext(ctx, a.interpreter(), "-c", script)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(failure).
			WithCause(shared.CommandError([]byte(stderr.String()), err))
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.RuntimeImportPort = PythonRuntimeAdapter{}
