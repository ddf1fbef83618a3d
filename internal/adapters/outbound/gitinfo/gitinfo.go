package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Repo implements domain.GitInfo using go-git. Paths inside a work tree
// resolve to the enclosing repository.
type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func open(projectPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
}

func (r *Repo) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// CommitHash returns the full hash HEAD points at.
func (r *Repo) CommitHash(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}
