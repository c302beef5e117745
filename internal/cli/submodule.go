package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extbuild/internal/app"
	"extbuild/internal/types"
)

type submoduleOptions struct {
	Catalog string
	Root    string
	Force   bool
}

func newSubmoduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submodule",
		Short: "Manage vendored external source trees",
	}
	cmd.AddCommand(newSubmoduleStatusCommand())
	cmd.AddCommand(newSubmoduleInitCommand())
	cmd.AddCommand(newSubmoduleUpdateCommand())
	cmd.AddCommand(newSubmoduleVerifyCommand())
	return cmd
}

func addSubmoduleFlags(cmd *cobra.Command, opts *submoduleOptions) {
	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "Catalog file path (builtin catalog when omitted)")
	cmd.Flags().StringVar(&opts.Root, "root", ".", "Project root directory")
	_ = viper.BindPFlag("catalog", cmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
}

func submoduleRequest(cmd *cobra.Command, opts submoduleOptions, args []string) app.SubmoduleRequest {
	req := app.SubmoduleRequest{
		CatalogPath: resolveString(cmd, opts.Catalog, "catalog", "catalog"),
		Root:        resolveString(cmd, opts.Root, "root", "root"),
		Force:       resolveBool(cmd, opts.Force, "force", "force"),
	}
	if len(args) > 0 {
		req.Path = args[0]
	}
	return req
}

func newSubmoduleStatusCommand() *cobra.Command {
	opts := submoduleOptions{}
	cmd := &cobra.Command{
		Use:   "status [path]",
		Short: "Report the state of vendored trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmoduleStatus(cmd.Context(), cmd, opts, args)
		},
	}
	addSubmoduleFlags(cmd, &opts)
	return cmd
}

func runSubmoduleStatus(ctx context.Context, cmd *cobra.Command, opts submoduleOptions, args []string) error {
	service := newAppService()
	result, err := service.SubmoduleStatus(ctx, submoduleRequest(cmd, opts, args))
	if err != nil {
		return err
	}
	stale := 0
	for _, entry := range result.Entries {
		line := fmt.Sprintf("%-16s %s", entry.Status, entry.Path)
		if entry.Description != "" {
			line += fmt.Sprintf(" (%s)", entry.Description)
		}
		fmt.Println(line)
		if entry.Detail != "" {
			fmt.Printf("  %s\n", entry.Detail)
		}
		if entry.Status != types.SubmoduleUpToDate {
			stale++
		}
	}
	if stale > 0 {
		return fmt.Errorf("%d submodule(s) not up to date", stale)
	}
	return nil
}

func newSubmoduleInitCommand() *cobra.Command {
	opts := submoduleOptions{}
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Fetch vendored trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmoduleInit(cmd.Context(), cmd, opts, args)
		},
	}
	addSubmoduleFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Remove any existing checkout before fetching")
	_ = viper.BindPFlag("force", cmd.Flags().Lookup("force"))
	return cmd
}

func runSubmoduleInit(ctx context.Context, cmd *cobra.Command, opts submoduleOptions, args []string) error {
	service := newAppService()
	result, err := service.SubmoduleInit(ctx, submoduleRequest(cmd, opts, args))
	if err != nil {
		return err
	}
	return reportSubmoduleActions("init", result.Entries)
}

func newSubmoduleUpdateCommand() *cobra.Command {
	opts := submoduleOptions{}
	cmd := &cobra.Command{
		Use:   "update [path]",
		Short: "Update vendored trees to their tracked remote state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmoduleUpdate(cmd.Context(), cmd, opts, args)
		},
	}
	addSubmoduleFlags(cmd, &opts)
	return cmd
}

func runSubmoduleUpdate(ctx context.Context, cmd *cobra.Command, opts submoduleOptions, args []string) error {
	service := newAppService()
	result, err := service.SubmoduleUpdate(ctx, submoduleRequest(cmd, opts, args))
	if err != nil {
		return err
	}
	return reportSubmoduleActions("update", result.Entries)
}

func newSubmoduleVerifyCommand() *cobra.Command {
	opts := submoduleOptions{}
	cmd := &cobra.Command{
		Use:   "verify [path]",
		Short: "Run structural spot-checks on vendored trees",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmoduleVerify(cmd.Context(), cmd, opts, args)
		},
	}
	addSubmoduleFlags(cmd, &opts)
	return cmd
}

func runSubmoduleVerify(ctx context.Context, cmd *cobra.Command, opts submoduleOptions, args []string) error {
	service := newAppService()
	result, err := service.SubmoduleVerify(ctx, submoduleRequest(cmd, opts, args))
	if err != nil {
		return err
	}
	failed := 0
	for _, entry := range result.Entries {
		if entry.OK {
			fmt.Printf("ok       %s\n", entry.Path)
			continue
		}
		failed++
		fmt.Printf("invalid  %s: %s\n", entry.Path, entry.Detail)
	}
	if failed > 0 {
		return fmt.Errorf("%d submodule(s) failed verification", failed)
	}
	return nil
}

func reportSubmoduleActions(action string, entries []app.SubmoduleActionEntry) error {
	failed := 0
	for _, entry := range entries {
		if entry.OK {
			fmt.Printf("%s ok      %s (%s)\n", action, entry.Path, entry.Detail)
			continue
		}
		failed++
		fmt.Printf("%s failed  %s: %s\n", action, entry.Path, entry.Detail)
	}
	if failed > 0 {
		return fmt.Errorf("%d submodule(s) failed to %s", failed, action)
	}
	return nil
}
