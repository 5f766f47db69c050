package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"explainer/internal/config"
	"explainer/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, false)
	require.NoError(t, err)
	return a
}

func TestRunEndToEndMermaid(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("import os\nimport b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("class Foo(Exception):\n    pass\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "__init__.py"), []byte("import json\n"), 0o644))

	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	res, err := testApp(t, cfg).Run(context.Background(), "", root)
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesScanned)
	assert.Equal(t, "ast", res.Backend)
	// Nodes: a.py, b.py, os, b.
	assert.Equal(t, 4, res.ModuleNodes)
	assert.Equal(t, 2, res.ModuleEdges)
	assert.Equal(t, 2, res.ClassNodes)
	assert.Equal(t, 1, res.ClassEdges)

	data, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "module_graph.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"a.py\" --> \"os\"")

	data, err = os.ReadFile(filepath.Join(cfg.Output.Dir, "class_hierarchy.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"Exception\" --> \"b.py:Foo\"")
}

func TestRunBadFormatFailsBeforeAnyIO(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = "pdf"
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")

	_, err := testApp(t, cfg).Run(context.Background(), "", t.TempDir())
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeValidation))

	_, statErr := os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingInputs(t *testing.T) {
	cfg := config.Default()

	_, err := testApp(t, cfg).Run(context.Background(), "", "")
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeValidation))
}

func TestRunDefaultOutputDirUsesProjectName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.py"), []byte("import os\n"), 0o644))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	workDir := t.TempDir()
	require.NoError(t, os.Chdir(workDir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg := config.Default()
	res, err := testApp(t, cfg).Run(context.Background(), "", root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("output", filepath.Base(root)), res.OutputDir)
	_, statErr := os.Stat(filepath.Join(workDir, res.OutputDir, "module_graph.md"))
	assert.NoError(t, statErr)
}

func TestSummaryMentionsArtifacts(t *testing.T) {
	res := &RunResult{
		Project:   "demo",
		OutputDir: "output/demo",
		Backend:   "ast",
		Format:    "mermaid",
	}

	out := Summary(res)
	assert.True(t, strings.Contains(out, "demo"))
	assert.True(t, strings.Contains(out, "output/demo"))
}
