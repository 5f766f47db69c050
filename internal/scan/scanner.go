// Package scan walks a source tree and extracts per-file import lists and
// class-inheritance pairs from Python sources.
package scan

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"explainer/internal/config"
	"explainer/internal/util"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

const sourceExt = ".py"

// Result is the scanner's output: plain data handed to the graph builder.
// Modules maps a file's relative path to the module names it imports; Classes
// maps "<relative path>:<class>" to the first declared base name.
type Result struct {
	Modules map[string][]string
	Classes map[string]string

	FilesScanned int
	FilesSkipped int
}

type Scanner struct {
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
	useGitignore bool
	verbose      bool

	extractor *pythonExtractor
	progress  *util.Limiter
}

func NewScanner(cfg config.Scan, verbose bool) (*Scanner, error) {
	s := &Scanner{
		useGitignore: cfg.UseGitignore,
		verbose:      verbose,
		extractor:    newPythonExtractor(),
		progress:     util.NewLimiter(50, 100),
	}

	for _, pattern := range cfg.ExcludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", pattern, err)
		}
		s.excludeDirs = append(s.excludeDirs, g)
	}

	for _, pattern := range cfg.ExcludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", pattern, err)
		}
		s.excludeFiles = append(s.excludeFiles, g)
	}

	return s, nil
}

// Scan visits every matching source file under root. A file that fails to
// parse contributes nothing and never aborts the walk; an unreadable root is
// fatal.
func (s *Scanner) Scan(root string) (*Result, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, err
	}

	var matcher *ignore.GitIgnore
	if s.useGitignore {
		if m, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			matcher = m
		}
	}

	res := &Result{
		Modules: make(map[string][]string),
		Classes: make(map[string]string),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && s.shouldExcludeDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.shouldVisit(d.Name(), rel, matcher) {
			return nil
		}

		s.scanFile(path, rel, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *Scanner) scanFile(path, rel string, res *Result) {
	source, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read file", "path", rel, "error", err)
		res.FilesSkipped++
		return
	}

	facts, err := s.extractor.ExtractFile(source)
	if err != nil {
		if s.verbose {
			slog.Debug("skipping unparsable file", "path", rel, "error", err)
		}
		res.FilesSkipped++
		return
	}

	res.Modules[rel] = facts.Imports
	for class, base := range facts.Classes {
		res.Classes[rel+":"+class] = base
	}
	res.FilesScanned++

	if s.verbose && s.progress.Allow(1) {
		slog.Debug("parsed file", "path", rel, "imports", len(facts.Imports), "classes", len(facts.Classes))
	}
}

func (s *Scanner) shouldVisit(name, rel string, matcher *ignore.GitIgnore) bool {
	if filepath.Ext(name) != sourceExt {
		return false
	}
	// Initializer files are pure re-export noise and would dominate the
	// import graph with self-references.
	if strings.HasPrefix(name, "__init__") {
		return false
	}
	for _, g := range s.excludeFiles {
		if g.Match(name) || g.Match(rel) {
			return false
		}
	}
	if matcher != nil && matcher.MatchesPath(rel) {
		return false
	}
	return true
}

func (s *Scanner) shouldExcludeDir(name, rel string) bool {
	for _, g := range s.excludeDirs {
		if g.Match(name) || g.Match(rel) {
			return true
		}
	}
	return false
}
