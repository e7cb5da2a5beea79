package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkfz-mic/adeval/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newInitCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCommand_WritesDefaults(t *testing.T) {
	dir := t.TempDir()

	out, err := runInit(t, dir)
	require.NoError(t, err)

	target := filepath.Join(dir, projectconfig.FileName)
	assert.Contains(t, out, "✓ Created "+target)
	require.FileExists(t, target)

	cfg, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultWorkers, cfg.Evaluation.Workers)
	assert.Equal(t, projectconfig.DefaultStorePath, cfg.Store.Path)
}

func TestInitCommand_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, projectconfig.FileName)
	require.NoError(t, os.WriteFile(target, []byte("evaluation:\n  workers: 8\n"), 0o644))

	_, err := runInit(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workers: 8")

	_, err = runInit(t, "--force", dir)
	require.NoError(t, err)
	cfg, err := projectconfig.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultWorkers, cfg.Evaluation.Workers)
}

func TestInitCommand_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := runInit(t)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, projectconfig.FileName))
}
