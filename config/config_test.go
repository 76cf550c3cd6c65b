package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// clearEnv makes sure the process environment does not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvOutput, EnvVerbosity} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

const sampleConfig = `directives: access.ajex
classes:
  - build/classes/**/*.class
output: build/artisan
verbosity: 1
`

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	writeFile(t, path, sampleConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "access.ajex"), cfg.Directives)
	assert.Equal(t, filepath.Join(dir, "build", "artisan"), cfg.Output)
	assert.Equal(t, []string{filepath.Join(dir, "build/classes/**/*.class")}, cfg.Classes)
	assert.Equal(t, 1, cfg.Verbosity)
	assert.False(t, cfg.InheritSuperclassRules)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"missing directives", "classes: [a/*.class]\noutput: out\n"},
		{"wrong extension", "directives: rules.txt\nclasses: [a/*.class]\noutput: out\n"},
		{"no classes", "directives: a.ajex\noutput: out\n"},
		{"bad glob", "directives: a.ajex\nclasses: ['a/[*.class']\noutput: out\n"},
		{"missing output", "directives: a.ajex\nclasses: [a/*.class]\n"},
		{"verbosity out of range", "directives: a.ajex\nclasses: [a/*.class]\noutput: out\nverbosity: 9\n"},
		{"unknown key", "directives: a.ajex\nclasses: [a/*.class]\noutput: out\nextra: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFile)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDotEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	writeFile(t, path, sampleConfig)
	writeFile(t, filepath.Join(dir, ".env"), "ARTISAN_OUTPUT=dist\nARTISAN_VERBOSITY=2\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist"), cfg.Output)
	assert.Equal(t, 2, cfg.Verbosity)
}

func TestEnvironmentBeatsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	writeFile(t, path, sampleConfig)
	writeFile(t, filepath.Join(dir, ".env"), "ARTISAN_OUTPUT=dist\n")

	out := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv(EnvOutput, out)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, out, cfg.Output)
}

func TestBadVerbosityInEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), DefaultFile)
	writeFile(t, path, sampleConfig)
	t.Setenv(EnvVerbosity, "loud")

	_, err := Load(path)
	assert.ErrorContains(t, err, EnvVerbosity)
}

func TestClassFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	writeFile(t, path, "directives: access.ajex\nclasses:\n  - build/classes/**/*.class\n  - build/classes/a/*.class\noutput: out\n")

	for _, name := range []string{"a/A.class", "a/b/B.class", "a/notes.txt", "c/C.class"} {
		writeFile(t, filepath.Join(dir, "build", "classes", name), "")
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	files, err := cfg.ClassFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "build", "classes", "a", "A.class"),
		filepath.Join(dir, "build", "classes", "a", "b", "B.class"),
		filepath.Join(dir, "build", "classes", "c", "C.class"),
	}, files)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	writeFile(t, path, sampleConfig)
	nested := filepath.Join(dir, "src", "main")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
