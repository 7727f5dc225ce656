package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doccraft/internal/models"
	"doccraft/internal/terminology"
	"doccraft/internal/utils"

	filepathx "github.com/yargevad/filepathx"
)

// sourceSeparator joins multiple ingested files into one source document.
const sourceSeparator = "\n\n---\n\n"

const maxSourceFiles = 50

var sourceExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".rst":      true,
	".yaml":     true,
	".yml":      true,
	".json":     true,
}

// SourceBundle is the result of ingesting local files: the concatenated
// source content plus any glossary found among the inputs.
type SourceBundle struct {
	Content  string
	Glossary *models.GlossaryData
	Files    []string
}

// SourceService turns local files and directories into workflow input.
// JSON files that parse as a glossary are routed to the glossary instead of
// the source content.
type SourceService struct {
	ctx context.Context
}

func NewSourceService() *SourceService {
	return &SourceService{}
}

func (s *SourceService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Collect reads the given paths (files or directories, recursively) and
// assembles a source bundle. Unsupported extensions are skipped silently.
func (s *SourceService) Collect(paths []string) (*SourceBundle, error) {
	var files []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if utils.DirectoryExists(p) {
			matches, err := filepathx.Glob(filepath.Join(p, "**", "*"))
			if err != nil {
				return nil, fmt.Errorf("scanning directory %s: %w", p, err)
			}
			files = append(files, matches...)
			continue
		}
		files = append(files, p)
	}

	bundle := &SourceBundle{}
	var sections []string
	for _, file := range files {
		if len(bundle.Files) >= maxSourceFiles {
			break
		}
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			continue
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(file))] {
			continue
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		bundle.Files = append(bundle.Files, file)

		if strings.EqualFold(filepath.Ext(file), ".json") {
			if glossary, ok := terminology.ParseGlossary(data); ok {
				bundle.Glossary = mergeGlossaries(bundle.Glossary, glossary)
				continue
			}
		}
		sections = append(sections, strings.TrimSpace(string(data)))
	}

	bundle.Content = strings.Join(sections, sourceSeparator)
	return bundle, nil
}

// LoadForbiddenTerms reads a plain-text term list (one term per line,
// # comments allowed) into a glossary fragment.
func (s *SourceService) LoadForbiddenTerms(path string) (*models.GlossaryData, error) {
	terms, err := utils.ReadNonEmptyLines(path)
	if err != nil {
		return nil, fmt.Errorf("reading term list %s: %w", path, err)
	}
	return &models.GlossaryData{ForbiddenTerms: terms}, nil
}

// LoadApprovedTerms reads a plain-text approved-term list.
func (s *SourceService) LoadApprovedTerms(path string) (*models.GlossaryData, error) {
	terms, err := utils.ReadNonEmptyLines(path)
	if err != nil {
		return nil, fmt.Errorf("reading term list %s: %w", path, err)
	}
	return &models.GlossaryData{ApprovedTerms: terms}, nil
}

// mergeGlossaries folds b into a. Later inputs win on preferred-term
// collisions; term lists concatenate.
func mergeGlossaries(a, b *models.GlossaryData) *models.GlossaryData {
	if a == nil {
		return b.Clone()
	}
	if b == nil {
		return a
	}
	merged := a.Clone()
	merged.ApprovedTerms = append(merged.ApprovedTerms, b.ApprovedTerms...)
	merged.ForbiddenTerms = append(merged.ForbiddenTerms, b.ForbiddenTerms...)
	if len(b.PreferredTerms) > 0 {
		if merged.PreferredTerms == nil {
			merged.PreferredTerms = make(map[string]string, len(b.PreferredTerms))
		}
		for term, replacement := range b.PreferredTerms {
			merged.PreferredTerms[term] = replacement
		}
	}
	return merged
}
