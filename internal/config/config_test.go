package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	opts := Default()
	assert.False(t, opts.ExhaustivePatterns)
	assert.False(t, opts.PreciseIntMatching)
	assert.Equal(t, DefaultMaxWitnesses, opts.MaxWitnesses)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "exhaustive_patterns: true\nmax_witnesses: 5\n")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.True(t, opts.ExhaustivePatterns)
	assert.False(t, opts.PreciseIntMatching)
	assert.Equal(t, 5, opts.MaxWitnesses)
}

func TestLoadUnknownKey(t *testing.T) {
	path := writeConfig(t, "exhaustive_paterns: true\n")
	_, err := Load(path)
	assert.Error(t, err, "misspelled keys must not be silently ignored")
}

func TestLoadNegativeWitnesses(t *testing.T) {
	path := writeConfig(t, "max_witnesses: -1\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadZeroWitnessesMeansDefault(t *testing.T) {
	path := writeConfig(t, "precise_int_matching: true\n")
	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxWitnesses, opts.MaxWitnesses)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
