package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extbuild/internal/app"
)

type detectOptions struct {
	Catalog string
	Root    string
}

func newDetectCommand() *cobra.Command {
	opts := detectOptions{}
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Probe the host for catalog dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog file path (builtin catalog when omitted)")
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Project root directory")
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	return cmd
}

// runDetect prints the full detection picture.  Missing features are
// ordinary output; the command succeeds whenever probing itself ran.
func runDetect(ctx context.Context, cmd *cobra.Command, opts detectOptions) error {
	service := newAppService()
	result, err := service.Detect(ctx, app.DetectRequest{
		CatalogPath: resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		Root:        resolveString(cmd, opts.Root, "root", "root"),
	})
	if err != nil {
		return err
	}

	fmt.Printf("project: %s\n", result.ProjectName)
	fmt.Println("features:")
	names := make([]string, 0, len(result.Report.Features))
	for name := range result.Report.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		marker := "missing"
		if result.Report.Features[name] {
			marker = "found"
		}
		line := fmt.Sprintf("- %-12s %s", name, marker)
		if version := result.Report.Versions[name]; version != "" {
			line += " " + version
		}
		fmt.Println(line)
		if dirs := result.Report.IncludeDirs[name]; len(dirs) > 0 {
			fmt.Printf("  includes: %s\n", strings.Join(dirs, ", "))
		}
	}
	if len(result.Report.Diagnostics) > 0 {
		fmt.Println("probe diagnostics:")
		for _, diag := range result.Report.Diagnostics {
			fmt.Printf("- %s (%s): %s\n", diag.Dependency, diag.Strategy, diag.Detail)
		}
	}
	printSolverSummaries(result.Solvers)
	return nil
}

func printSolverSummaries(summaries []app.SolverSummary) {
	if len(summaries) == 0 {
		return
	}
	fmt.Println("solver factories:")
	for _, summary := range summaries {
		var enabled []string
		for _, factory := range summary.Factories {
			if factory.Available {
				enabled = append(enabled, factory.Factory.Name)
			}
		}
		fmt.Printf("- %s: %s\n", summary.Capability, strings.Join(enabled, ", "))
	}
}
