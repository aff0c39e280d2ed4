package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/financellm/financellm/internal/rules"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage budget categorization rules",
	}

	cmd.AddCommand(
		newRulesAddCommand(opts),
		newRulesListCommand(opts),
		newRulesLoadCommand(opts),
		newRulesExportCommand(opts),
	)

	return cmd
}

func newRulesAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <pattern> <category>",
		Short: "Add a rule; descriptions containing pattern get category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, category := args[0], args[1]
			if strings.TrimSpace(pattern) == "" || strings.TrimSpace(category) == "" {
				return fmt.Errorf("pattern and category are required")
			}

			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			rule, err := a.store.AddRule(cmd.Context(), pattern, category)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %d: %q -> %s\n", rule.ID, rule.Pattern, rule.Category)
			return nil
		},
	}
}

func newRulesListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules in the order they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			list, err := a.store.ListRules(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPATTERN\tCATEGORY")
			for _, r := range list {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Pattern, r.Category)
			}
			return tw.Flush()
		},
	}
}

func newRulesLoadCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Append the rules from a YAML rule file (default: rules.file from config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			path := a.cfg.Rules.File
			if len(args) > 0 {
				path = args[0]
			}

			loaded, err := rules.LoadFile(path)
			if err != nil {
				return err
			}
			if err := a.store.AddRules(cmd.Context(), loaded); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rules from %s\n", len(loaded), path)
			return nil
		},
	}
}

func newRulesExportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the stored rules to a YAML rule file (default: rules.file from config)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			path := a.cfg.Rules.File
			if len(args) > 0 {
				path = args[0]
			}

			list, err := a.store.ListRules(cmd.Context())
			if err != nil {
				return err
			}
			if err := rules.SaveFile(path, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rules to %s\n", len(list), path)
			return nil
		},
	}
}
