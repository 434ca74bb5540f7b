package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/psystem/psystem"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "seed: 7\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "MIN_PARALLEL", cfg.Semantics)
	require.Nil(t, cfg.MaxSteps)
	require.NotNil(t, cfg.Seed)
	require.Equal(t, int64(7), *cfg.Seed)

	sem, err := cfg.ParseSemantics()
	require.NoError(t, err)
	require.Equal(t, psystem.MinParallel, sem)
}

func TestLoadMaxParallelAndMaxSteps(t *testing.T) {
	path := writeConfig(t, "semantics: MAX_PARALLEL\nmax_steps: 10\nseed: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	sem, err := cfg.ParseSemantics()
	require.NoError(t, err)
	require.Equal(t, psystem.MaxParallel, sem)
	require.Equal(t, 10, *cfg.MaxSteps)
}

func TestLoadUnknownSemantics(t *testing.T) {
	path := writeConfig(t, "semantics: SOMETHING_ELSE\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestSeederDeterministic(t *testing.T) {
	seed := int64(42)
	cfg := RunConfig{Seed: &seed}
	a, b := cfg.Seeder(), cfg.Seeder()
	for i := 0; i < 5; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}
