package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"doccraft/internal/models"
)

// HistoryLimit is the maximum number of stored sessions. Creating a session
// beyond the limit evicts the oldest rows by timestamp in the same call.
const HistoryLimit = 10

type DocSessionRepository interface {
	Get(ctx context.Context, id string) (*models.DocSession, error)
	ListRecent(ctx context.Context) ([]*models.DocSession, error)
	Create(ctx context.Context, session *models.DocSession) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

type docSessionRepository struct {
	db *gorm.DB
}

func NewDocSessionRepository(db *gorm.DB) DocSessionRepository {
	return &docSessionRepository{db: db}
}

func (r *docSessionRepository) Get(ctx context.Context, id string) (*models.DocSession, error) {
	var session models.DocSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting session %s: %w", id, err)
	}
	return &session, nil
}

// ListRecent returns the stored sessions most recent first.
func (r *docSessionRepository) ListRecent(ctx context.Context) ([]*models.DocSession, error) {
	var list []*models.DocSession
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return list, nil
}

func (r *docSessionRepository) Create(ctx context.Context, session *models.DocSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return r.prune(ctx)
}

// prune evicts everything beyond the newest HistoryLimit rows.
func (r *docSessionRepository) prune(ctx context.Context) error {
	var stale []models.DocSession
	if err := r.db.WithContext(ctx).
		Select("id").
		Order("timestamp DESC").
		Offset(HistoryLimit).
		Find(&stale).Error; err != nil {
		return fmt.Errorf("finding stale sessions: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}
	ids := make([]string, len(stale))
	for i, s := range stale {
		ids[i] = s.ID
	}
	if err := r.db.WithContext(ctx).Delete(&models.DocSession{}, "id IN ?", ids).Error; err != nil {
		return fmt.Errorf("pruning sessions: %w", err)
	}
	return nil
}

func (r *docSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.DocSession{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	return nil
}

func (r *docSessionRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.DocSession{}).Error; err != nil {
		return fmt.Errorf("clearing sessions: %w", err)
	}
	return nil
}
