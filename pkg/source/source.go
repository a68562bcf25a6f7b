package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotInRevision reports a path that does not exist in the requested commit.
var ErrNotInRevision = errors.New("source: file not present in revision")

// File is one loaded compilation unit.
type File struct {
	Path     string
	Revision string
	Source   []byte
}

// ReadFile loads path from the working tree.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &File{Path: path, Source: data}, nil
}

// ReadRevision loads path as it was at revision in the git repository
// containing repoDir. revision accepts anything go-git can resolve: a hash,
// branch, tag or expressions such as HEAD~1. Blank repoDir means the
// directory of path.
func ReadRevision(repoDir, revision, path string) (*File, error) {
	revision = strings.TrimSpace(revision)
	if revision == "" {
		return nil, fmt.Errorf("source: empty revision")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("source: resolve %s: %w", path, err)
	}
	if repoDir == "" {
		repoDir = filepath.Dir(absPath)
	}

	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("source: open repository at %s: %w", repoDir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	rel, err := repoRelative(worktree.Filesystem.Root(), absPath)
	if err != nil {
		return nil, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("source: resolve revision %s: %w", revision, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("source: load commit %s: %w", hash, err)
	}
	file, err := commit.File(rel)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s at %s", ErrNotInRevision, rel, revision)
		}
		return nil, fmt.Errorf("source: read %s at %s: %w", rel, revision, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("source: read %s at %s: %w", rel, revision, err)
	}
	return &File{Path: path, Revision: hash.String(), Source: []byte(contents)}, nil
}

func repoRelative(root, absPath string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(absPath)); err == nil {
		absPath = filepath.Join(resolved, filepath.Base(absPath))
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("source: %s is outside repository %s", absPath, root)
	}
	return filepath.ToSlash(rel), nil
}
