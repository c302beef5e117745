package adapters

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"extbuild/internal/ports"
	"extbuild/internal/shared"
	"extbuild/internal/types"
)

// CxxToolchainAdapter drives the C++ compiler: trial compilations for
// feature probes and the final shared-object builds.
type CxxToolchainAdapter struct {
	// Compiler overrides the compiler executable.
	Compiler string
}

func NewCxxToolchainAdapter(compiler string) CxxToolchainAdapter {
	return CxxToolchainAdapter{Compiler: compiler}
}

func (a CxxToolchainAdapter) compiler() string {
	if strings.TrimSpace(a.Compiler) == "" {
		return "c++"
	}
	return a.Compiler
}

// TryCompile writes the program to a scoped temp file, compiles it
// without linking, and interprets a non-zero compiler exit as a clean
// "not accepted".  The temp file is removed on every path.
func (a CxxToolchainAdapter) TryCompile(ctx context.Context, program string, flags []string) (bool, error) {
	file, err := os.CreateTemp("", "extbuild-probe-*.cpp")
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create probe source file").
			WithCause(err)
	}
	defer os.Remove(file.Name())
	if _, err := file.WriteString(program); err != nil {
		file.Close()
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write probe source file").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close probe source file").
			WithCause(err)
	}

	args := append([]string{}, flags...)
	args = append(args, "-c", file.Name(), "-o", os.DevNull)
	cmd := exec.CommandContext(ctx, a.compiler(), args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Compile links one extension module into buildDir.  The module name's
// dots become path separators, so gridseg._core lands at
// <buildDir>/gridseg/_core.so.
func (a CxxToolchainAdapter) Compile(ctx context.Context, desc types.BuildDescriptor, buildDir string) error {
	outputPath := moduleOutputPath(buildDir, desc.Module)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create module output directory").
			WithCause(err)
	}

	var args []string
	args = append(args, "-shared")
	args = append(args, desc.CompileFlags...)
	for _, macro := range desc.Macros {
		if macro.Value != "" {
			args = append(args, fmt.Sprintf("-D%s=%s", macro.Name, macro.Value))
			continue
		}
		args = append(args, "-D"+macro.Name)
	}
	for _, dir := range desc.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, desc.Sources...)
	args = append(args, "-o", outputPath)
	for _, lib := range desc.LinkLibraries {
		args = append(args, "-l"+lib)
	}

	cmd := exec.CommandContext(ctx, a.compiler(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("toolchain build failed for %s", desc.Module)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

func moduleOutputPath(buildDir string, module string) string {
	ext := ".so"
	if runtime.GOOS == "windows" {
		ext = ".pyd"
	}
	relative := strings.ReplaceAll(module, ".", string(os.PathSeparator))
	return filepath.Join(buildDir, relative+ext)
}

var _ ports.ToolchainPort = CxxToolchainAdapter{}
