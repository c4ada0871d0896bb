package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHome(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", "x", "y"), expandHome("~/x/y", "/home/u"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path", "/home/u"))
	assert.Equal(t, "~", expandHome("~", "/home/u"))
	assert.Equal(t, "~other/x", expandHome("~other/x", "/home/u"))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	assert.NoError(t, err)
	assert.Contains(t, cfg.ProjectsRoot, filepath.Join(".claude", "projects"))
	assert.Contains(t, cfg.DBPath, filepath.Join(".cache", "ccview", "index.db"))
}
