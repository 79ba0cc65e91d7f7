package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/admatrix/admatrix"
)

func TestMakeColumnsFollowsOutputOrder(t *testing.T) {
	cols := makeColumns()
	require.Len(t, cols, len(admatrix.OutputColumns))

	results, err := admatrix.ClassifyBatch(t.Context(), admatrix.NewDefaultClassifier(), []string{"Instant coffee"}, admatrix.BatchOptions{})
	require.NoError(t, err)
	for i, col := range cols {
		assert.Equal(t, admatrix.OutputColumns[i], col.Title)
		assert.Positive(t, col.Width)
		assert.Equal(t, results[0].Record()[i], col.Render(results[0]))
	}
	assert.Equal(t, "Performance and speed", cols[2].Render(results[0]))
}

func TestSummarizeResults(t *testing.T) {
	results := []admatrix.Result{
		{AdID: 1},
		{AdID: 2, ErrorMessage: errors.New("x").Error()},
		{AdID: 3},
	}
	ok, failed := summarizeResults(results)
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
}

func TestColumnChoiceLabel(t *testing.T) {
	header := []string{"id", ""}
	assert.Equal(t, "id", columnChoiceLabel(header, 0))
	assert.Equal(t, "#2", columnChoiceLabel(header, 1))
}

func TestLogCaptureKeepsTail(t *testing.T) {
	c := newLogCapture(2)
	notified := 0
	c.setOnChange(func() { notified++ })

	_, _ = c.Write([]byte("one\ntwo\nthr"))
	assert.Equal(t, "one\ntwo", c.String())
	_, _ = c.Write([]byte("ee\n\n"))
	assert.Equal(t, "two\nthree", c.String())
	assert.Equal(t, 2, notified)
}

func TestAdsToClassifyKeepsFileRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.csv")
	require.NoError(t, os.WriteFile(path, []byte("ad_text,id\n\"line one\nline two\",1\n,2\nthird,3\n"), 0o644))
	ads, err := admatrix.LoadAds(path, admatrix.InputOptions{})
	require.NoError(t, err)
	require.Len(t, ads, 3)

	got := adsToClassify(ads, strings.Join(ads, "\n"))
	assert.Equal(t, ads, got)

	results, err := admatrix.ClassifyBatch(t.Context(), admatrix.NewDefaultClassifier(), got, admatrix.BatchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "line one\nline two", results[0].RawText)
	assert.Equal(t, 2, results[1].AdID)
	assert.Empty(t, results[1].RawText)
	assert.Equal(t, "third", results[2].RawText)
}

func TestAdsToClassifySplitsPastedText(t *testing.T) {
	assert.Equal(t, []string{"one", "two"}, adsToClassify(nil, "one\n\n  two \n"))
}
