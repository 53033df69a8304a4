package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/gi/internal/contract"
	"github.com/spf13/afero"
)

// DirLocator finds the directory that holds the target .gitignore.
// An explicit Dir wins; otherwise the Git repository root of the working
// directory is used.
type DirLocator struct {
	dir   string
	git   contract.GitClient
	fs    afero.Fs
	getwd func() (string, error)
}

var _ contract.TargetLocator = &DirLocator{} // Compile-time check

// NewDirLocator creates a locator for an optional explicit directory.
func NewDirLocator(dir string, git contract.GitClient) *DirLocator {
	return &DirLocator{dir: dir, git: git, fs: afero.NewOsFs(), getwd: os.Getwd}
}

// Locate implements the TargetLocator interface.
// All failures wrap ErrNoTarget.
func (l *DirLocator) Locate(ctx context.Context) (string, error) {
	if l.dir != "" {
		abs, err := filepath.Abs(l.dir)
		if err != nil {
			return "", fmt.Errorf("%w: %v", contract.ErrNoTarget, err)
		}
		ok, err := afero.DirExists(l.fs, abs)
		if err != nil || !ok {
			return "", fmt.Errorf("%w: %s is not a directory", contract.ErrNoTarget, abs)
		}
		return abs, nil
	}

	if l.git == nil {
		return "", contract.ErrNoTarget
	}
	cwd, err := l.getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrNoTarget, err)
	}
	root, err := l.git.GetRepoRoot(ctx, cwd)
	if err != nil || root == "" {
		return "", fmt.Errorf("%w: %s is not inside a Git repository", contract.ErrNoTarget, cwd)
	}
	return root, nil
}
