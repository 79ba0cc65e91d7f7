package app

import (
	"os"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"yashubustudio/admatrix/admatrix"
)

const fyneAppID = "studio.yashubu.admatrix"

// Run loads configuration, prepares the rule tables and starts the desktop UI.
func Run() error {
	cfg, _, err := admatrix.LoadConfig(admatrix.NewViper(), "")
	if err != nil {
		return err
	}
	if cfg.RulesFile != "" {
		if _, err := admatrix.EnsureRuleFile(cfg.RulesFile); err != nil {
			return err
		}
	}

	capture := newLogCapture(200)
	logger := newLogger(capture, cfg.Debug)

	svc, err := admatrix.NewService(cfg.RulesFile, logger)
	if err != nil {
		return err
	}

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, svc, cfg, capture)
	u.w.ShowAndRun()
	return nil
}

// newLogger writes colored output to stderr and plain lines to the UI log pane.
func newLogger(capture *logCapture, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly},
		zerolog.ConsoleWriter{Out: capture, TimeFormat: time.TimeOnly, NoColor: true},
	)
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
