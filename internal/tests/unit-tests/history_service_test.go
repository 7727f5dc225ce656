package unit_tests

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"doccraft/internal/models"
	"doccraft/internal/services"
	"doccraft/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_Save_RequiresDocument(t *testing.T) {
	svc := services.NewHistoryService(&mocks.DocSessionRepositoryMock{})

	_, err := svc.Save(context.Background(), models.DefaultDocConfig(), "summary", "   ")

	require.Error(t, err)
}

func TestHistoryService_Save_BuildsSession(t *testing.T) {
	var created *models.DocSession
	repo := &mocks.DocSessionRepositoryMock{}
	repo.CreateFunc = func(ctx context.Context, session *models.DocSession) error {
		created = session
		return nil
	}
	svc := services.NewHistoryService(repo)

	config := models.DocConfig{
		DocType:            models.DocType("unknown-type"),
		Audience:           models.AudienceTechnical,
		Tone:               models.ToneFormal,
		CustomInstructions: "  keep it short  ",
	}
	session, err := svc.Save(context.Background(), config, strings.Repeat("s", 300), "# Doc")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created, session)
	assert.Len(t, created.ID, 36, "id is a uuid")
	assert.False(t, created.Timestamp.IsZero())
	assert.Equal(t, models.DocTypeUserGuide, created.DocType, "unknown doc type normalizes to default")
	assert.Equal(t, models.AudienceTechnical, created.Audience)
	assert.Equal(t, "keep it short", created.CustomInstructions)
	assert.Len(t, created.InputSummary, 255, "summary is truncated for the column")
	assert.Equal(t, "# Doc", created.GeneratedDoc)
}

func TestHistoryService_Save_SummaryTruncationKeepsRunesIntact(t *testing.T) {
	var created *models.DocSession
	repo := &mocks.DocSessionRepositoryMock{}
	repo.CreateFunc = func(ctx context.Context, session *models.DocSession) error {
		created = session
		return nil
	}
	svc := services.NewHistoryService(repo)

	_, err := svc.Save(context.Background(), models.DefaultDocConfig(), strings.Repeat("é", 300), "# Doc")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, utf8.ValidString(created.InputSummary))
	assert.Equal(t, 255, utf8.RuneCountInString(created.InputSummary))
}

func TestHistoryService_Save_PropagatesRepoError(t *testing.T) {
	repo := &mocks.DocSessionRepositoryMock{}
	repo.CreateFunc = func(ctx context.Context, session *models.DocSession) error {
		return fmt.Errorf("disk full")
	}
	svc := services.NewHistoryService(repo)

	_, err := svc.Save(context.Background(), models.DefaultDocConfig(), "s", "doc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestHistoryService_Get_Validation(t *testing.T) {
	svc := services.NewHistoryService(&mocks.DocSessionRepositoryMock{})

	_, err := svc.Get(context.Background(), "  ")

	require.Error(t, err)
}

func TestHistoryService_Get_Delegates(t *testing.T) {
	repo := &mocks.DocSessionRepositoryMock{}
	repo.GetFunc = func(ctx context.Context, id string) (*models.DocSession, error) {
		assert.Equal(t, "abc", id)
		return &models.DocSession{ID: id}, nil
	}
	svc := services.NewHistoryService(repo)

	session, err := svc.Get(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "abc", session.ID)
}

func TestHistoryService_List_Delegates(t *testing.T) {
	repo := &mocks.DocSessionRepositoryMock{}
	repo.ListRecentFunc = func(ctx context.Context) ([]*models.DocSession, error) {
		return []*models.DocSession{{ID: "newest"}, {ID: "older"}}, nil
	}
	svc := services.NewHistoryService(repo)

	sessions, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "newest", sessions[0].ID)
}

func TestHistoryService_DeleteAndClear(t *testing.T) {
	deleted := ""
	cleared := false
	repo := &mocks.DocSessionRepositoryMock{}
	repo.DeleteFunc = func(ctx context.Context, id string) error {
		deleted = id
		return nil
	}
	repo.DeleteAllFunc = func(ctx context.Context) error {
		cleared = true
		return nil
	}
	svc := services.NewHistoryService(repo)

	require.Error(t, svc.DeleteByID(context.Background(), ""))
	require.NoError(t, svc.DeleteByID(context.Background(), "abc"))
	assert.Equal(t, "abc", deleted)

	require.NoError(t, svc.Clear(context.Background()))
	assert.True(t, cleared)
}
