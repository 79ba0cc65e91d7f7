package admatrix

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input_ads.csv")
	require.NoError(t, os.WriteFile(input, []byte("ad_text\n"+
		"\"Cut your energy bill by 30% with this 5 seconds hack, moms will love it\"\n"+
		"What if your skin glowed?\n"+
		"plain words\n"), 0o644))
	output := filepath.Join(dir, "analyzed_output.json")

	svc, err := NewService("", zerolog.Nop())
	require.NoError(t, err)
	summary, err := svc.Run(context.Background(), Config{Input: input, Output: output, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Zero(t, summary.Failed)
	assert.Equal(t, FormatJSON, summary.Format)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var rows []Result
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Busy mom juggling tasks", *rows[0].DriverPersona)
	assert.Equal(t, "Rhetorical question", *rows[1].HookType)
	assert.Equal(t, "Beauty and skin health", *rows[1].Concept)
	assert.Equal(t, 3, rows[2].AdID)
	assert.Equal(t, DefaultFormat, *rows[2].Format)
}

func TestServiceRunMissingColumnAborts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "ads.csv")
	require.NoError(t, os.WriteFile(input, []byte("text\nhello\n"), 0o644))
	output := filepath.Join(dir, "out.csv")

	svc, err := NewService("", zerolog.Nop())
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), Config{Input: input, Output: output})
	require.ErrorIs(t, err, ErrMissingColumn)
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestServiceRunAcceptsTextColumnSpellings(t *testing.T) {
	for _, header := range []string{"Ad Text", "ADTEXT", "Ad_Text"} {
		t.Run(header, func(t *testing.T) {
			dir := t.TempDir()
			input := filepath.Join(dir, "ads.csv")
			require.NoError(t, os.WriteFile(input, []byte(header+"\nsaving\n"), 0o644))
			output := filepath.Join(dir, "out.csv")

			svc, err := NewService("", zerolog.Nop())
			require.NoError(t, err)
			cfg := Config{Input: input, Output: output}
			cfg.ApplyDefaults()
			summary, err := svc.Run(context.Background(), cfg)
			require.NoError(t, err)
			require.Len(t, summary.Results, 1)
			assert.Equal(t, "Saving money on utilities", *summary.Results[0].Concept)
		})
	}
}

func TestServiceReloadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("concept:\n  rules:\n    - keyword: tea\n      label: Calm ritual\n"), 0o644))

	svc, err := NewService("", zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultConcept, svc.Classifier().Classify("green tea").Concept)
	assert.Empty(t, svc.RulesFile())

	require.NoError(t, svc.ReloadRules(path))
	assert.Equal(t, "Calm ritual", svc.Classifier().Classify("green tea").Concept)
	assert.Equal(t, path, svc.RulesFile())

	assert.Error(t, svc.ReloadRules(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Equal(t, "Calm ritual", svc.Classifier().Classify("green tea").Concept)
}
