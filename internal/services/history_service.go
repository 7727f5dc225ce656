package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"doccraft/internal/events"
	"doccraft/internal/models"
	"doccraft/internal/repositories"
	"doccraft/internal/utils"

	"github.com/google/uuid"
)

const inputSummaryMaxLen = 255

// HistoryService persists completed generation runs. It satisfies the
// workflow's history collaborator, so the orchestrator appends a session on
// every successful generation and restores one by id.
type HistoryService interface {
	Startup(ctx context.Context)
	Save(ctx context.Context, config models.DocConfig, inputSummary, document string) (*models.DocSession, error)
	Get(ctx context.Context, id string) (*models.DocSession, error)
	List(ctx context.Context) ([]*models.DocSession, error)
	DeleteByID(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type historyService struct {
	repo repositories.DocSessionRepository
	ctx  context.Context
}

func NewHistoryService(repo repositories.DocSessionRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *historyService) Save(ctx context.Context, config models.DocConfig, inputSummary, document string) (*models.DocSession, error) {
	if strings.TrimSpace(document) == "" {
		return nil, fmt.Errorf("document is required")
	}

	cfg := config.Normalize()
	inputSummary = utils.TruncateRunes(inputSummary, inputSummaryMaxLen)

	session := &models.DocSession{
		ID:                 uuid.NewString(),
		Timestamp:          time.Now().UTC(),
		DocType:            cfg.DocType,
		Audience:           cfg.Audience,
		Tone:               cfg.Tone,
		CustomInstructions: cfg.CustomInstructions,
		InputSummary:       inputSummary,
		GeneratedDoc:       document,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	events.Emit(ctx, events.HistoryEvent, events.NewSuccess(
		fmt.Sprintf("session %s saved", session.ID)))
	return session, nil
}

func (s *historyService) Get(ctx context.Context, id string) (*models.DocSession, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *historyService) List(ctx context.Context) ([]*models.DocSession, error) {
	return s.repo.ListRecent(ctx)
}

func (s *historyService) DeleteByID(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("session ID is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *historyService) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	events.Emit(ctx, events.HistoryEvent, events.NewInfo("session history cleared"))
	return nil
}
