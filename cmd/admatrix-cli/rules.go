package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/admatrix/admatrix"
)

func newRulesCommand(st *cliState) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect or export the rule tables",
	}
	var dimension string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the active rule tables as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, _, err := admatrix.LoadRuleFile(st.cfg.RulesFile)
			if err != nil {
				return err
			}
			if dimension != "" {
				dim, err := admatrix.ParseDimension(dimension)
				if err != nil {
					return err
				}
				set = admatrix.RuleSet{dim: set.Table(dim)}
			}
			return admatrix.EncodeRuleSet(cmd.OutOrStdout(), set)
		},
	}
	dumpCmd.Flags().StringVar(&dimension, "dimension", "", "Only print one table (concept, trigger, persona, format, hook)")
	rulesCmd.AddCommand(dumpCmd)
	rulesCmd.AddCommand(&cobra.Command{
		Use:   "init PATH",
		Short: "Write the built-in rule tables to PATH for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := admatrix.EnsureRuleFile(args[0])
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, left unchanged\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote built-in rules to %s\n", args[0])
			return nil
		},
	})
	return rulesCmd
}
