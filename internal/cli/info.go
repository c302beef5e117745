package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extbuild/internal/app"
	"extbuild/internal/runtimecfg"
)

type infoOptions struct {
	BuildDir string
}

func newInfoCommand() *cobra.Command {
	opts := infoOptions{}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Report the runtime configuration of the last build",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInfo(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.BuildDir, "build-dir", "build", "Build output directory")
	_ = viper.BindPFlag("build_dir", cmd.Flags().Lookup("build-dir"))
	return cmd
}

func runInfo(cmd *cobra.Command, opts infoOptions) error {
	service := newAppService()
	result, err := service.Info(app.InfoRequest{
		BuildDir: resolveString(cmd, opts.BuildDir, "build_dir", "build-dir"),
	})
	if err != nil {
		return err
	}

	if result.Status == runtimecfg.StatusDegraded {
		fmt.Printf("configuration: degraded (%s)\n", result.Reason)
		fmt.Printf("fallback version: %s\n", result.Version)
		return nil
	}

	fmt.Printf("version: %s\n", result.Version)
	fmt.Println("features:")
	macros := make([]string, 0, len(result.Features))
	for macro := range result.Features {
		macros = append(macros, macro)
	}
	sort.Strings(macros)
	for _, macro := range macros {
		fmt.Printf("- %-24s %t\n", macro, result.Features[macro])
	}
	printSolverSummaries(result.Solvers)
	return nil
}
