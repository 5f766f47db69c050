package scan

import (
	"os"
	"path/filepath"
	"testing"

	"explainer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	s, err := NewScanner(config.Scan{}, false)
	require.NoError(t, err)
	return s
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScanEmptyDirectory(t *testing.T) {
	s := newTestScanner(t)

	res, err := s.Scan(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, res.Modules)
	assert.Empty(t, res.Classes)
}

func TestScanMissingRootIsFatal(t *testing.T) {
	s := newTestScanner(t)

	_, err := s.Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestScanScenario(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"a.py":        "import os\nimport b\n",
		"b.py":        "class Foo(Exception):\n    pass\n",
		"__init__.py": "from a import thing\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 2)
	assert.Equal(t, []string{"os", "b"}, res.Modules["a.py"])
	assert.Empty(t, res.Modules["b.py"])
	assert.NotContains(t, res.Modules, "__init__.py")

	assert.Equal(t, map[string]string{"b.py:Foo": "Exception"}, res.Classes)
}

func TestScanSkipsInitializerFiles(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"__init__.py":       "import os\n",
		"__init__extra.py":  "import sys\n",
		"pkg/__init__.py":   "import json\n",
		"pkg/real_thing.py": "import io\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Equal(t, []string{"io"}, res.Modules["pkg/real_thing.py"])
}

func TestScanToleratesParseFailures(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"good.py":   "import os\n",
		"broken.py": "def broken(:\n    pass\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Equal(t, []string{"os"}, res.Modules["good.py"])
	assert.NotContains(t, res.Modules, "broken.py")
	assert.Equal(t, 1, res.FilesSkipped)
}

func TestScanImportForms(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"m.py": "import a.b.c\n" +
			"import x, y\n" +
			"import numpy as np\n" +
			"from collections import OrderedDict\n" +
			"from pkg.sub import thing\n" +
			"from . import sibling\n" +
			"from .local import helper\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.b.c", "x", "y", "numpy", "collections", "pkg.sub", "local"}, res.Modules["m.py"])
}

func TestScanFirstBaseOnly(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"c.py": "class Multi(First, Second, Third):\n    pass\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, "First", res.Classes["c.py:Multi"])
}

func TestScanDottedBaseKeepsTrailingComponent(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"c.py": "import abc\n\nclass Impl(abc.collections.Mixin):\n    pass\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, "Mixin", res.Classes["c.py:Impl"])
}

func TestScanClassWithoutBasesIgnored(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"c.py": "class Plain:\n    pass\n\nclass Meta(metaclass=type):\n    pass\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	assert.Empty(t, res.Classes)
}

func TestScanNestedClassesFound(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"n.py": "class Outer(Base):\n    class Inner(Other):\n        pass\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	assert.Equal(t, "Base", res.Classes["n.py:Outer"])
	assert.Equal(t, "Other", res.Classes["n.py:Inner"])
}

func TestScanExcludeDirs(t *testing.T) {
	s, err := NewScanner(config.Scan{ExcludeDirs: []string{"vendor"}}, false)
	require.NoError(t, err)

	root := writeTree(t, map[string]string{
		"keep.py":        "import os\n",
		"vendor/skip.py": "import sys\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Contains(t, res.Modules, "keep.py")
}

func TestScanRespectsGitignore(t *testing.T) {
	s, err := NewScanner(config.Scan{UseGitignore: true}, false)
	require.NoError(t, err)

	root := writeTree(t, map[string]string{
		".gitignore":     "generated_*.py\n",
		"kept.py":        "import os\n",
		"generated_x.py": "import sys\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Contains(t, res.Modules, "kept.py")
}

func TestScanNonSourceFilesIgnored(t *testing.T) {
	s := newTestScanner(t)
	root := writeTree(t, map[string]string{
		"notes.txt": "import nothing",
		"real.py":   "import os\n",
	})

	res, err := s.Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Modules, 1)
	assert.Contains(t, res.Modules, "real.py")
}
