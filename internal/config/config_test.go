package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesAllFields(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "run.yaml")
	content := `
library_paths:
  - spring-mass
  - connect-demo
target_class: SpringMass
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	spec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spring-mass", "connect-demo"}, spec.LibraryPaths)
	assert.Equal(t, "SpringMass", spec.TargetClass)
}

func TestLoadMissingRequiredFields(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target_class: M\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}
