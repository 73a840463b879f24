package vcs

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Identity is the version-control position of a project at report time.
type Identity struct {
	Branch string
	Commit string
}

// Lookup reads the HEAD of the git working tree that contains dir. The second
// return value is false when dir is not inside a repository or the repository
// has no commits yet.
func Lookup(dir string) (Identity, bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Identity{}, false, nil
		}
		return Identity{}, false, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return Identity{}, false, nil
		}
		return Identity{}, false, fmt.Errorf("read HEAD: %w", err)
	}

	branch := "HEAD"
	if head.Name().IsBranch() {
		branch = head.Name().Short()
	}

	return Identity{Branch: branch, Commit: head.Hash().String()}, true, nil
}
