// Package publish commits generated sites to a git repository
package publish

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/google/uuid"
)

// ErrNoChanges is returned when the generated site is identical to the
// last published snapshot.
var ErrNoChanges = errors.New("no changes to publish")

// Result describes a published snapshot
type Result struct {
	BuildID string
	Hash    string
}

// IsRepository checks if a path is a git repository
func IsRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// ensureRepo opens the repository at path, initializing a new one if none
// exists yet.
func ensureRepo(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	repo, err = git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to init repository: %w", err)
	}
	return repo, nil
}

// Commit stages the entire site at outputDir and commits it as a single
// snapshot. An empty message gets a default one carrying the build ID.
func Commit(outputDir, message string) (*Result, error) {
	repo, err := ensureRepo(outputDir)
	if err != nil {
		return nil, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	if status.IsClean() {
		return nil, ErrNoChanges
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return nil, fmt.Errorf("failed to stage site: %w", err)
	}

	buildID := uuid.New().String()
	if message == "" {
		message = fmt.Sprintf("Generated site %s", buildID)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "treesite",
			Email: "treesite@localhost",
			When:  time.Now(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to commit site: %w", err)
	}

	return &Result{
		BuildID: buildID,
		Hash:    hash.String(),
	}, nil
}
