package services

import (
	"context"

	"gorm.io/gorm"

	"doccraft/internal/repositories"
)

// Services aggregates the application services behind one constructor so
// main wires the database exactly once.
type Services struct {
	History HistoryService
	Sources *SourceService
	Git     *GitService
	Keyring *KeyringService
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB) *Services {
	sessionRepo := repositories.NewDocSessionRepository(db)

	return &Services{
		History: NewHistoryService(sessionRepo),
		Sources: NewSourceService(),
		Git:     NewGitService(),
		Keyring: NewKeyringService(),
	}
}

// Startup hands the application context to every service that holds one.
func (s *Services) Startup(ctx context.Context) {
	s.History.Startup(ctx)
	s.Sources.Startup(ctx)
	s.Git.Startup(ctx)
}
