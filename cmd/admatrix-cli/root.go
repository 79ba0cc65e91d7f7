package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"yashubustudio/admatrix/admatrix"
)

type cliState struct {
	v          *viper.Viper
	configPath string
	stdout     bool
	cfg        admatrix.Config
	logger     zerolog.Logger
}

func newRootCommand() *cobra.Command {
	st := &cliState{v: admatrix.NewViper()}
	rootCmd := &cobra.Command{
		Use:   "admatrix-cli",
		Short: "Classify ad texts into concept, trigger, persona, format and hook",
		Long: `admatrix-cli reads ad texts from a CSV/TSV/XLSX file, labels each one with
keyword rules on five dimensions and writes a structured table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return st.load(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return st.runClassify(cmd.Context(), cmd.OutOrStdout())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&st.configPath, "config", "", "Path to admatrix.yaml (default: ./admatrix.yaml or ./config/admatrix.yaml)")
	pf.String("rules", "", "YAML rule file replacing built-in tables")
	pf.Bool("debug", false, "Enable debug logging")
	mustBind(st.v, "rules_file", pf.Lookup("rules"))
	mustBind(st.v, "debug", pf.Lookup("debug"))

	f := rootCmd.Flags()
	f.String("input", "", "Path to input CSV/TSV/XLSX with an ad_text column")
	f.String("output", "", "Destination file for structured results")
	f.String("text-column", "", "Column name or #index holding ad text")
	f.String("format", "", "Output format: csv, tsv, xlsx or json (default from --output extension)")
	f.Int("workers", 0, "Number of concurrent classifications")
	f.String("model", "", "Accepted for compatibility; classification is rule based")
	f.BoolVar(&st.stdout, "stdout", false, "Print a preview of the results")
	mustBind(st.v, "input", f.Lookup("input"))
	mustBind(st.v, "output", f.Lookup("output"))
	mustBind(st.v, "text_column", f.Lookup("text-column"))
	mustBind(st.v, "format", f.Lookup("format"))
	mustBind(st.v, "workers", f.Lookup("workers"))
	mustBind(st.v, "model", f.Lookup("model"))

	rootCmd.AddCommand(newRulesCommand(st))
	rootCmd.AddCommand(newExplainCommand(st))
	rootCmd.AddCommand(newConfigCommand(st))
	return rootCmd
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (st *cliState) load(stderr io.Writer) error {
	cfg, used, err := admatrix.LoadConfig(st.v, st.configPath)
	if err != nil {
		return err
	}
	st.cfg = cfg
	st.logger = admatrix.NewConsoleLogger(stderr, cfg.Debug)
	if used != "" {
		st.logger.Debug().Str("path", used).Msg("using config file")
	}
	return nil
}

func (st *cliState) runClassify(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	svc, err := admatrix.NewService(st.cfg.RulesFile, st.logger)
	if err != nil {
		return err
	}
	summary, err := svc.Run(ctx, st.cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote structured output to %s\n", summary.Output)
	if summary.Failed > 0 {
		fmt.Fprintf(out, "%d of %d ads could not be classified; see error_message\n", summary.Failed, summary.Total)
	}
	if st.stdout {
		printPreview(out, summary.Results)
	}
	return nil
}
