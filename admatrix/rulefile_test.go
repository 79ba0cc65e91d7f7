package admatrix

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetRoundTripKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeRuleSet(&buf, DefaultRuleSet()))
	assert.Contains(t, buf.String(), "here's how")

	parsed, err := ParseRuleSet(buf.Bytes())
	require.NoError(t, err)
	for _, dim := range Dimensions {
		want := DefaultRuleSet().Table(dim)
		got := parsed.Table(dim)
		assert.Equal(t, want.Default(), got.Default(), dim)
		assert.Equal(t, want.Rules(), got.Rules(), dim)
	}
}

func TestParseRuleSetOverridesWholeTables(t *testing.T) {
	doc := `
format:
  default: Slideshow
  rules:
    - keyword: Carousel
      label: Carousel post
hook_type:
  rules:
    - keyword: free
      label: Giveaway
`
	set, err := ParseRuleSet([]byte(doc))
	require.NoError(t, err)
	cls, err := NewClassifier(set)
	require.NoError(t, err)

	got := cls.Classify("Swipe the CAROUSEL to unbox a free gift and save on your bill")
	assert.Equal(t, "Carousel post", got.Format)
	assert.Equal(t, "Giveaway", got.HookType)
	assert.Equal(t, "Saving money on utilities", got.Concept)

	fallback := cls.Classify("")
	assert.Equal(t, "Slideshow", fallback.Format)
	assert.Equal(t, DefaultHook, fallback.HookType)
}

func TestParseRuleSetErrors(t *testing.T) {
	_, err := ParseRuleSet([]byte("colour:\n  default: red\n"))
	assert.Error(t, err)

	_, err = ParseRuleSet([]byte("concept:\n  rules:\n    - keyword: \"\"\n      label: x\n"))
	assert.Error(t, err)

	set, err := ParseRuleSet(nil)
	require.NoError(t, err)
	assert.NoError(t, set.Validate())
}

func TestLoadAndEnsureRuleFile(t *testing.T) {
	set, fromFile, err := LoadRuleFile("")
	require.NoError(t, err)
	assert.False(t, fromFile)
	assert.NoError(t, set.Validate())

	path := filepath.Join(t.TempDir(), "config", "rules.yaml")
	created, err := EnsureRuleFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureRuleFile(path)
	require.NoError(t, err)
	assert.False(t, created)

	set, fromFile, err = LoadRuleFile(path)
	require.NoError(t, err)
	assert.True(t, fromFile)
	assert.Equal(t, DefaultRuleSet().Table(DimensionTrigger).Rules(), set.Table(DimensionTrigger).Rules())

	require.NoError(t, os.WriteFile(path, []byte("format: [oops"), 0o644))
	_, _, err = LoadRuleFile(path)
	assert.Error(t, err)

	_, _, err = LoadRuleFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
