package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extbuild/internal/app"
)

type buildOptions struct {
	Catalog  string
	Root     string
	BuildDir string
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the full extension build pipeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog file path (builtin catalog when omitted)")
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Project root directory")
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "", "Build output directory (default <root>/build)")

	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))

	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	service := newAppService()
	result, err := service.Build(ctx, app.BuildRequest{
		CatalogPath: resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		Root:        resolveString(cmd, opts.Root, "root", "root"),
		BuildDir:    resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("built %s %s\n", result.ProjectName, result.Version)
	fmt.Printf("config header: %s\n", result.HeaderPath)
	fmt.Printf("runtime config: %s\n", result.RuntimePath)
	fmt.Printf("modules built: %s\n", strings.Join(result.Built, ", "))
	for _, skipped := range result.Skipped {
		fmt.Printf("skipped %s (missing: %s)\n", skipped.Module, strings.Join(skipped.Missing, ", "))
	}
	return nil
}
