// autocommit-config is the companion CLI for editing the autocommit
// settings document. It operates on the same config.json the hook reads,
// through the same fail-closed typed store.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bwestphal/autocommit/internal/config"
	"github.com/bwestphal/autocommit/internal/constants"
	"github.com/bwestphal/autocommit/internal/format"
)

// Version information - injected at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		repoPath   string
		configPath string
	)

	root := &cobra.Command{
		Use:           "autocommit-config",
		Short:         "Inspect and edit autocommit settings",
		Long:          "autocommit-config edits the settings document the autocommit hook reads.\nUnknown setting paths and type mismatches are rejected rather than\nsilently created.",
		Version:       fmt.Sprintf("%s (%s) built on %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&repoPath, "repo", "", "repository path (default: current directory)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "settings file path (default: <repo>/.autocommit/config.json)")

	store := func() (*config.Store, error) {
		if configPath != "" {
			return config.NewStore(configPath), nil
		}
		repo := repoPath
		if repo == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			repo = cwd
		}
		return config.NewStore(filepath.Join(repo, constants.StateDirName, constants.ConfigFileName)), nil
	}

	root.AddCommand(
		newShowCmd(store),
		newToggleCmd(store),
		newSetCmd(store),
		newResetCmd(store),
	)

	return root
}

func newShowCmd(store func() (*config.Store, error)) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			cfg, fellBack := s.Load()
			if fellBack {
				fmt.Fprintf(cmd.ErrOrStderr(), "no settings file at %s, defaults written\n", s.Path())
			}
			return format.Render(cmd.OutOrStdout(), cfg, outputFormat)
		},
	}

	cmd.Flags().StringVar(&outputFormat, "format", format.Table, "output format: table, plain, json, or yaml")
	return cmd
}

func newToggleCmd(store func() (*config.Store, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <path>",
		Short: "Flip a boolean setting",
		Example: "  autocommit-config toggle auto_push.enabled\n" +
			"  autocommit-config toggle notifications.on_error",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			next, err := s.Toggle(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %t\n", args[0], next)
			return nil
		},
	}
}

func newSetCmd(store func() (*config.Store, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Assign a setting",
		Long: "Assign a setting by its dotted path. Values are coerced to the setting's\n" +
			"declared type: booleans accept true/false, integers accept digits, and\n" +
			"list settings accept comma-separated values.",
		Example: "  autocommit-config set auto_commit.threshold 10\n" +
			"  autocommit-config set auto_push.branch_whitelist main,develop",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newResetCmd(store func() (*config.Store, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store()
			if err != nil {
				return err
			}
			if _, err := s.Reset(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "settings reset to defaults at %s\n", s.Path())
			return nil
		},
	}
}
