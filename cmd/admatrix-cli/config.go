package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/admatrix/admatrix"
)

func newConfigCommand(st *cliState) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage admatrix.yaml",
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the effective settings to PATH (default admatrix.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "admatrix.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if !force && fileExists(path) {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := admatrix.SaveConfig(path, st.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(initCmd)
	return configCmd
}
