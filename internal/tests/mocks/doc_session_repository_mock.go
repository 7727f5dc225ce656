package mocks

import (
	"context"

	"doccraft/internal/models"
)

type DocSessionRepositoryMock struct {
	GetFunc        func(ctx context.Context, id string) (*models.DocSession, error)
	ListRecentFunc func(ctx context.Context) ([]*models.DocSession, error)
	CreateFunc     func(ctx context.Context, session *models.DocSession) error
	DeleteFunc     func(ctx context.Context, id string) error
	DeleteAllFunc  func(ctx context.Context) error
}

func (m *DocSessionRepositoryMock) Get(ctx context.Context, id string) (*models.DocSession, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *DocSessionRepositoryMock) ListRecent(ctx context.Context) ([]*models.DocSession, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx)
	}
	return nil, nil
}

func (m *DocSessionRepositoryMock) Create(ctx context.Context, session *models.DocSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *DocSessionRepositoryMock) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *DocSessionRepositoryMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
