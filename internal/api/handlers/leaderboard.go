package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/api/middleware"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/service"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// Top serves the capped leaderboard for the period in the route pattern.
func (h *LeaderboardHandler) Top(period domain.LeaderboardPeriod) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := h.leaderboardService.Top(r.Context(), period)
		if err != nil {
			log.Error().Err(err).Str("period", string(period)).Msg("leaderboard query failed")
			response.ServerError(w)
			return
		}
		response.Success(w, http.StatusOK, response.MsgOK, entries)
	}
}

func (h *LeaderboardHandler) Rank(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	period := domain.ParsePeriod(chi.URLParam(r, "period"))

	rank, err := h.leaderboardService.Rank(r.Context(), period, user.ID)
	if err != nil {
		log.Error().Err(err).Str("period", string(period)).Msg("rank query failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgOK, rank)
}
