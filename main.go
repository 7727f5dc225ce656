package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"doccraft/internal/assets"
	"doccraft/internal/database"
	"doccraft/internal/events"
	"doccraft/internal/llm/client"
	"doccraft/internal/models"
	"doccraft/internal/services"
	"doccraft/internal/utils"
	"doccraft/internal/workflow"

	"gorm.io/gorm/logger"
)

type providerInfo struct {
	ID           string `json:"id"`
	KeyEnv       string `json:"keyEnv"`
	DefaultModel string `json:"defaultModel"`
}

type modelCatalog struct {
	Providers []providerInfo `json:"providers"`
}

func main() {
	provider := flag.String("provider", "openai", "LLM provider: openai, anthropic, or gemini")
	modelName := flag.String("model", "", "model name (provider default when empty)")
	docType := flag.String("type", "user-guide", "doc type: user-guide, quick-start, api-reference, troubleshooting, release-notes")
	audience := flag.String("audience", "non-technical", "audience: non-technical, technical, mixed")
	tone := flag.String("tone", "conversational", "tone: formal, conversational, instructional")
	instructions := flag.String("instructions", "", "extra writing instructions")
	repoURL := flag.String("repo", "", "git repository URL or local path to ingest as source material")
	glossaryPath := flag.String("glossary", "", "glossary JSON file for terminology checks")
	forbiddenPath := flag.String("forbidden", "", "plain-text forbidden term list, one term per line")
	listHistory := flag.Bool("history", false, "list stored sessions and exit")
	restoreID := flag.String("restore", "", "restore a stored session by id instead of generating")
	setKey := flag.String("set-key", "", "store an API key for the given provider in the OS keyring and exit")
	deleteKey := flag.String("delete-key", "", "delete the given provider's API key from the OS keyring and exit")
	listKeys := flag.Bool("list-keys", false, "list providers with a stored API key and exit")
	flag.Parse()

	if *setKey != "" || *deleteKey != "" || *listKeys {
		if err := manageKeys(*setKey, *deleteKey, *listKeys); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*provider, *modelName, *docType, *audience, *tone, *instructions,
		*repoURL, *glossaryPath, *forbiddenPath, *listHistory, *restoreID, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// manageKeys handles the keyring maintenance flags. These run without the
// database or an LLM client.
func manageKeys(setKey, deleteKey string, listKeys bool) error {
	kr := services.NewKeyringService()

	switch {
	case setKey != "":
		fmt.Printf("API key for %s: ", setKey)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading API key: %w", err)
		}
		if err := kr.StoreApiKey(setKey, []byte(strings.TrimSpace(line))); err != nil {
			return err
		}
		fmt.Printf("Stored %s API key in the OS keyring.\n", setKey)
	case deleteKey != "":
		if err := kr.DeleteApiKey(deleteKey); err != nil {
			return err
		}
		fmt.Printf("Deleted %s API key from the OS keyring.\n", deleteKey)
	case listKeys:
		entries, err := kr.ListApiKeys()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No stored API keys.")
			return nil
		}
		for _, entry := range entries {
			fmt.Printf("%-12s %s\n", entry["provider"], entry["description"])
		}
	}
	return nil
}

func run(provider, modelName, docType, audience, tone, instructions, repoURL, glossaryPath, forbiddenPath string,
	listHistory bool, restoreID string, sourcePaths []string) error {
	ctx := context.Background()

	// .env is a convenience for development; absence is fine.
	_ = utils.LoadEnv()
	events.EnableLogEmitter()

	db, err := database.Init(database.Config{
		Path:     database.GetDefaultDBPath(),
		LogLevel: logger.Warn,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	svcs := services.NewServices(db)
	svcs.Startup(ctx)

	if listHistory {
		return printHistory(ctx, svcs.History)
	}

	llm, err := buildClient(ctx, svcs.Keyring, provider, modelName)
	if err != nil {
		return err
	}

	wf := workflow.New(workflow.Dependencies{
		Analyzer:    llm,
		Synthesizer: llm,
		Refiner:     llm,
		Compliance:  llm,
		Recommender: llm,
		History:     svcs.History,
	})

	if restoreID != "" {
		if err := wf.RestoreSession(ctx, restoreID); err != nil {
			return err
		}
		fmt.Println(wf.Document())
		return nil
	}

	if err := wf.SetConfig(models.DocConfig{
		DocType:            models.DocType(docType),
		Audience:           models.Audience(audience),
		Tone:               models.Tone(tone),
		CustomInstructions: instructions,
	}); err != nil {
		return err
	}

	if err := loadSources(ctx, wf, svcs, repoURL, glossaryPath, forbiddenPath, sourcePaths); err != nil {
		return err
	}

	if err := wf.StartAnalysis(ctx); err != nil {
		return err
	}

	if err := answerQuestions(wf); err != nil {
		return err
	}

	if err := wf.SubmitAnswers(ctx); err != nil {
		return err
	}

	fmt.Println(wf.Document())
	return printCompliance(ctx, wf)
}

func buildClient(ctx context.Context, keyringSvc *services.KeyringService, provider, modelName string) (*client.LLMClient, error) {
	var catalog modelCatalog
	if err := json.Unmarshal(assets.ModelsData, &catalog); err != nil {
		return nil, fmt.Errorf("parsing provider catalog: %w", err)
	}

	var info *providerInfo
	for i := range catalog.Providers {
		if catalog.Providers[i].ID == provider {
			info = &catalog.Providers[i]
			break
		}
	}
	if info == nil {
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
	if modelName == "" {
		modelName = info.DefaultModel
	}

	// Keyring first, environment as fallback.
	apiKey, err := keyringSvc.GetApiKey(provider)
	if err != nil || apiKey == "" {
		apiKey = os.Getenv(info.KeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key for %s: store one in the keyring or set %s", provider, info.KeyEnv)
	}

	switch provider {
	case "openai":
		return client.NewOpenAIClient(ctx, apiKey, modelName)
	case "anthropic":
		return client.NewClaudeClient(ctx, apiKey, modelName)
	case "gemini":
		return client.NewGeminiClient(ctx, apiKey, modelName)
	}
	return nil, fmt.Errorf("unsupported provider: %s", provider)
}

func loadSources(ctx context.Context, wf *workflow.Workflow, svcs *services.Services,
	repoURL, glossaryPath, forbiddenPath string, sourcePaths []string) error {
	var sections []string
	var glossary *models.GlossaryData

	if repoURL != "" {
		content, err := svcs.Git.CollectFromRepo(ctx, repoURL)
		if err != nil {
			return err
		}
		sections = append(sections, content)
	}
	if len(sourcePaths) > 0 {
		bundle, err := svcs.Sources.Collect(sourcePaths)
		if err != nil {
			return err
		}
		if bundle.Content != "" {
			sections = append(sections, bundle.Content)
		}
		glossary = bundle.Glossary
	}
	if glossaryPath != "" {
		bundle, err := svcs.Sources.Collect([]string{glossaryPath})
		if err != nil {
			return err
		}
		if bundle.Glossary == nil {
			return fmt.Errorf("%s does not contain glossary data", glossaryPath)
		}
		glossary = bundle.Glossary
	}
	if forbiddenPath != "" {
		terms, err := svcs.Sources.LoadForbiddenTerms(forbiddenPath)
		if err != nil {
			return err
		}
		if glossary == nil {
			glossary = terms
		} else {
			glossary.ForbiddenTerms = append(glossary.ForbiddenTerms, terms.ForbiddenTerms...)
		}
	}

	if len(sections) == 0 {
		return fmt.Errorf("no source material: pass files, a directory, or -repo")
	}
	if err := wf.SetContent(strings.Join(sections, "\n\n---\n\n")); err != nil {
		return err
	}
	return wf.SetContext("", glossary)
}

// answerQuestions walks the gap questions on stdin. Empty input leaves a
// question unanswered, "skip" flags it for the generator to assume.
func answerQuestions(wf *workflow.Workflow) error {
	questions := wf.Questions()
	if len(questions) == 0 {
		return nil
	}

	fmt.Printf("\n%d clarification questions. Answer, press Enter to leave blank, or type 'skip'.\n\n", len(questions))
	reader := bufio.NewReader(os.Stdin)
	for _, q := range questions {
		fmt.Printf("[%s] %s\n> ", q.Category, q.Question)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading answer: %w", err)
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "skip"):
			if err := wf.SkipQuestion(q.ID); err != nil {
				return err
			}
		default:
			if err := wf.AnswerQuestion(q.ID, line); err != nil {
				return err
			}
		}
	}

	answered, total := wf.Completion()
	fmt.Printf("\n%d/%d questions resolved, generating...\n\n", answered, total)
	return nil
}

func printCompliance(ctx context.Context, wf *workflow.Workflow) error {
	list, err := wf.CheckCompliance(ctx)
	if err != nil {
		return err
	}
	errs, warns, suggestions := list.Counts()
	fmt.Fprintf(os.Stderr, "\nCompliance: %d errors, %d warnings, %d suggestions\n", errs, warns, suggestions)
	for _, issue := range list.Visible() {
		fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", issue.Severity, issue.Rule, issue.Suggestion)
	}
	return nil
}

func printHistory(ctx context.Context, history services.HistoryService) error {
	sessions, err := history.List(ctx)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No stored sessions.")
		return nil
	}
	for _, s := range sessions {
		fmt.Printf("%s  %s  %-16s  %s\n", s.ID, s.Timestamp.Format("2006-01-02 15:04"), s.DocType, s.InputSummary)
	}
	return nil
}
