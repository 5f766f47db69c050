// Package acquire resolves the analysis target: an existing local directory
// or a shallow clone of a remote repository in a temp directory.
package acquire

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"explainer/internal/errs"
)

// IsGitURL reports whether raw looks like a cloneable repository URL:
// scheme, host, and a path ending in ".git".
func IsGitURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != "" && strings.HasSuffix(u.Path, ".git")
}

// Resolve turns the CLI inputs into a scan root and a project name. A local
// path wins over a repo URL. The clone directory is not cleaned up; the
// process is short-lived and the OS owns the temp space.
func Resolve(ctx context.Context, repoURL, localPath string) (string, string, error) {
	if localPath != "" {
		abs, err := filepath.Abs(localPath)
		if err != nil {
			return "", "", err
		}
		if _, err := os.Stat(abs); err != nil {
			return "", "", errs.Wrap(err, errs.CodeNotFound, fmt.Sprintf("local path %q does not exist", localPath))
		}
		return abs, filepath.Base(abs), nil
	}

	if repoURL != "" && IsGitURL(repoURL) {
		root, err := clone(ctx, repoURL)
		if err != nil {
			return "", "", err
		}
		return root, projectName(repoURL), nil
	}

	return "", "", errs.New(errs.CodeValidation, "provide -repo <url> or -path <folder>")
}

func clone(ctx context.Context, repoURL string) (string, error) {
	tmp, err := os.MkdirTemp("", "cbx_")
	if err != nil {
		return "", err
	}

	slog.Info("cloning repository", "url", repoURL, "dest", tmp)

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", repoURL, tmp)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git clone %s: %s: %w", repoURL, strings.TrimSpace(string(out)), err)
	}
	return tmp, nil
}

func projectName(repoURL string) string {
	base := filepath.Base(repoURL)
	return strings.TrimSuffix(base, ".git")
}
