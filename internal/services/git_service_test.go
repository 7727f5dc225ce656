package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRepoFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCollectRepoDocFiles_ReadmeFirstThenDocs(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "docs/guide/setup.md", "setup")
	writeRepoFile(t, root, "docs/api.md", "api")
	writeRepoFile(t, root, "README.md", "readme")
	writeRepoFile(t, root, "docs/diagram.png", "binary")

	files, err := collectRepoDocFiles(root)

	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "README.md"), files[0])
	assert.Equal(t, filepath.Join(root, "docs", "api.md"), files[1])
	assert.Equal(t, filepath.Join(root, "docs", "guide", "setup.md"), files[2])
}

func TestCollectRepoDocFiles_CapsSelection(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "README.md", "readme")
	for _, name := range []string{"a.md", "b.md", "c.md", "d.md", "e.md", "f.md"} {
		writeRepoFile(t, root, filepath.Join("docs", name), name)
	}

	files, err := collectRepoDocFiles(root)

	require.NoError(t, err)
	assert.Len(t, files, maxRepoDocFiles)
}

func TestReadRepoDocs_JoinsSections(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "README.md", "readme\n")
	writeRepoFile(t, root, "docs/api.md", "api\n")

	content, err := readRepoDocs(root)

	require.NoError(t, err)
	assert.Equal(t, "readme\n\n---\n\napi", content)
}

func TestReadRepoDocs_NoDocFiles(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "main.go", "package main")

	_, err := readRepoDocs(root)

	assert.Error(t, err)
}

func TestGitService_ValidateRepository(t *testing.T) {
	svc := NewGitService()

	assert.Error(t, svc.ValidateRepository(""))
	assert.Error(t, svc.ValidateRepository(t.TempDir()))
}

func TestGitService_CollectFromRepo_RequiresURL(t *testing.T) {
	_, err := NewGitService().CollectFromRepo(context.Background(), "   ")

	assert.Error(t, err)
}
