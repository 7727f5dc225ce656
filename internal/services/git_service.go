package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doccraft/internal/events"
	"doccraft/internal/utils"

	"github.com/go-git/go-git/v5"
	filepathx "github.com/yargevad/filepathx"
)

// maxRepoDocFiles caps how many files a repository ingest contributes.
const maxRepoDocFiles = 5

type GitService struct {
	context context.Context
}

func NewGitService() *GitService {
	return &GitService{}
}

func (g *GitService) Startup(ctx context.Context) {
	g.context = ctx
}

// Open an existing repo
func (g *GitService) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// ValidateRepository checks if the given path is a valid git repository
func (g *GitService) ValidateRepository(repoPath string) error {
	if repoPath == "" {
		return fmt.Errorf("repository path cannot be empty")
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("not a valid git repository: %w", err)
	}

	// Try to get HEAD to ensure repository is in a valid state
	_, err = repo.Head()
	if err != nil {
		return fmt.Errorf("repository is in an invalid state: %w", err)
	}

	return nil
}

// CollectFromRepo returns a repository's README and docs/ content joined as
// one source document. Local repository paths are read in place; anything
// else is shallow-cloned into a temp dir that is discarded once the files
// are read.
func (g *GitService) CollectFromRepo(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("repository URL is required")
	}

	if utils.DirectoryExists(url) && utils.HasGitRepo(url) {
		if err := g.ValidateRepository(url); err != nil {
			return "", err
		}
		return readRepoDocs(url)
	}

	tempDir, err := os.MkdirTemp("", "doccraft-repo-*")
	if err != nil {
		return "", fmt.Errorf("creating temp clone dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	events.Emit(ctx, events.WorkflowStage, events.NewInfo(
		fmt.Sprintf("cloning %s for source material", url)))

	_, err = git.PlainCloneContext(ctx, tempDir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		return "", fmt.Errorf("cloning %s: %w", url, err)
	}

	return readRepoDocs(tempDir)
}

func readRepoDocs(root string) (string, error) {
	files, err := collectRepoDocFiles(root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no documentation files found in %s", root)
	}

	var sections []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", file, err)
		}
		sections = append(sections, strings.TrimSpace(string(data)))
	}
	return strings.Join(sections, sourceSeparator), nil
}

// collectRepoDocFiles picks the README first, then docs/ content, capped at
// maxRepoDocFiles in deterministic path order.
func collectRepoDocFiles(root string) ([]string, error) {
	var files []string

	readmes, err := filepath.Glob(filepath.Join(root, "README*"))
	if err != nil {
		return nil, fmt.Errorf("scanning for README: %w", err)
	}
	sort.Strings(readmes)
	files = append(files, readmes...)

	docs, err := filepathx.Glob(filepath.Join(root, "docs", "**", "*"))
	if err != nil {
		return nil, fmt.Errorf("scanning docs directory: %w", err)
	}
	sort.Strings(docs)
	files = append(files, docs...)

	var selected []string
	for _, file := range files {
		if len(selected) >= maxRepoDocFiles {
			break
		}
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			continue
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(file))] {
			continue
		}
		selected = append(selected, file)
	}
	return selected, nil
}
