package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"yashubustudio/admatrix/admatrix"
)

func newExplainCommand(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "explain TEXT",
		Short: "Show which keyword decided each label for a single ad",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := admatrix.NewService(st.cfg.RulesFile, st.logger)
			if err != nil {
				return err
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("DIMENSION", "LABEL", "KEYWORD")
			for _, m := range svc.Classifier().Explain(strings.Join(args, " ")) {
				kw := m.Keyword
				if kw == "" {
					kw = "(default)"
				}
				t.Row(string(m.Dimension), m.Label, kw)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return err
		},
	}
}
