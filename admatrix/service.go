package admatrix

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Service ties the classifier to the input supplier and output sinks. The
// rule set can be swapped at runtime; each batch uses the classifier that
// was current when it started.
type Service struct {
	mu         sync.RWMutex
	classifier *Classifier
	rulesFile  string

	logger zerolog.Logger
}

// RunSummary describes a completed Run.
type RunSummary struct {
	Input  string
	Output string
	Format Format
	Total  int
	Failed int
	// Results holds the rows that were written.
	Results []Result
}

// NewService builds a service over the rules in rulesFile, or the built-in
// tables when rulesFile is empty.
func NewService(rulesFile string, logger zerolog.Logger) (*Service, error) {
	s := &Service{logger: logger}
	if err := s.ReloadRules(rulesFile); err != nil {
		return nil, err
	}
	return s, nil
}

// ReloadRules replaces the classifier with one built from rulesFile.
func (s *Service) ReloadRules(rulesFile string) error {
	set, fromFile, err := LoadRuleFile(rulesFile)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	cls, err := NewClassifier(set)
	if err != nil {
		return fmt.Errorf("build classifier: %w", err)
	}
	s.mu.Lock()
	s.classifier = cls
	s.rulesFile = rulesFile
	s.mu.Unlock()
	if fromFile {
		s.logger.Info().Str("path", rulesFile).Msg("loaded rule file")
	} else {
		s.logger.Debug().Msg("using built-in rules")
	}
	return nil
}

// Classifier returns the current classifier.
func (s *Service) Classifier() *Classifier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifier
}

// RulesFile returns the path the current rules came from, empty for built-ins.
func (s *Service) RulesFile() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rulesFile
}

// ClassifyAll runs the batch driver over texts.
func (s *Service) ClassifyAll(ctx context.Context, texts []string, workers int, progress func(done, total int)) ([]Result, error) {
	return ClassifyBatch(ctx, s.Classifier(), texts, BatchOptions{
		Workers:  workers,
		Logger:   &s.logger,
		Progress: progress,
	})
}

// Run loads cfg.Input, classifies every ad and writes cfg.Output. A
// missing text column aborts before any classification.
func (s *Service) Run(ctx context.Context, cfg Config) (RunSummary, error) {
	cfg.ApplyDefaults()
	summary := RunSummary{Input: cfg.Input, Output: cfg.Output}
	format, err := cfg.OutputFormat()
	if err != nil {
		return summary, err
	}
	summary.Format = format

	ads, err := LoadAds(cfg.Input, InputOptions{TextColumn: cfg.TextColumn})
	if err != nil {
		return summary, fmt.Errorf("load ads: %w", err)
	}
	s.logger.Debug().Str("input", cfg.Input).Int("ads", len(ads)).Msg("loaded input")

	results, err := s.ClassifyAll(ctx, ads, cfg.Workers, nil)
	if err != nil {
		return summary, fmt.Errorf("classify: %w", err)
	}
	summary.Results = results
	summary.Total = len(results)
	for _, r := range results {
		if r.Failed() {
			summary.Failed++
		}
	}

	if err := WriteResultFile(cfg.Output, format, results); err != nil {
		return summary, fmt.Errorf("write results: %w", err)
	}
	s.logger.Info().Str("output", cfg.Output).Str("format", string(format)).Msg("wrote structured output")
	return summary, nil
}
