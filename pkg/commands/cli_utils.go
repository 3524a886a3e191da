package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ati-intranet/portal/modules"
)

// NewUtilityCommands creates all utility commands (check_tr_keys, check_tr_usage, routes, api)
func NewUtilityCommands() []*cobra.Command {
	return []*cobra.Command{
		newCheckTrKeysCmd(),
		newCheckTrUsageCmd(),
		newRoutesCmd(),
		newAPICmd(),
	}
}

func newCheckTrKeysCmd() *cobra.Command {
	var langs []string
	cmd := &cobra.Command{
		Use:   "check_tr_keys",
		Short: "Check translation key consistency across all locales",
		Long:  `Validates that every translation key of one locale is present in every other configured locale.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return CheckTrKeys(cmd.OutOrStdout(), langs, modules.BuiltInModules...)
		},
	}
	cmd.Flags().StringSliceVar(&langs, "lang", []string{"en", "zh"}, "locales to compare")
	return cmd
}

func newCheckTrUsageCmd() *cobra.Command {
	var langs []string
	cmd := &cobra.Command{
		Use:   "check_tr_usage",
		Short: "Check that every translation key used in code and templates exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := os.Getwd()
			if err != nil {
				return err
			}
			return CheckTrUsage(cmd.OutOrStdout(), root, langs, modules.BuiltInModules...)
		},
	}
	cmd.Flags().StringSliceVar(&langs, "lang", []string{"en", "zh"}, "locales every key must exist in")
	return cmd
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every route the portal serves with its route class",
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintRoutes(cmd.OutOrStdout(), modules.BuiltInModules...)
		},
	}
}

func newAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Inspect the upstream HR API",
	}
	var timeout time.Duration
	ping := &cobra.Command{
		Use:   "ping",
		Short: "Check that the HR API at API_BASE_URL answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return PingAPI(ctx, cmd.OutOrStdout())
		},
	}
	ping.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to wait for the API")
	cmd.AddCommand(ping)
	return cmd
}
