package service

import (
	"github.com/runclub/runtrack/internal/config"
	"github.com/runclub/runtrack/internal/identity"
	"github.com/runclub/runtrack/internal/repository"
	"github.com/runclub/runtrack/internal/storage"
)

type Services struct {
	Auth        *AuthService
	Record      *RecordService
	Leaderboard *LeaderboardService
	Upload      *UploadService
}

func NewServices(repos *repository.Repositories, verifier identity.Verifier, store storage.ObjectStore, cfg *config.Config) *Services {
	return &Services{
		Auth:        NewAuthService(repos.User, verifier, cfg),
		Record:      NewRecordService(repos.Record, store),
		Leaderboard: NewLeaderboardService(repos.Leaderboard),
		Upload:      NewUploadService(store),
	}
}
