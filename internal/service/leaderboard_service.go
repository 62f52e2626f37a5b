package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository"
)

// Leaderboards are capped at the top 100 entries per period.
const leaderboardLimit = 100

type LeaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository) *LeaderboardService {
	return &LeaderboardService{leaderboardRepo: leaderboardRepo}
}

func (s *LeaderboardService) Top(ctx context.Context, period domain.LeaderboardPeriod) ([]*domain.LeaderboardEntry, error) {
	entries, err := s.leaderboardRepo.Top(ctx, period, leaderboardLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.LeaderboardEntry{}
	}
	return entries, nil
}

func (s *LeaderboardService) Rank(ctx context.Context, period domain.LeaderboardPeriod, userID uuid.UUID) (*domain.RankResult, error) {
	return s.leaderboardRepo.UserRank(ctx, period, userID)
}
