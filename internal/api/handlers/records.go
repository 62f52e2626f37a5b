package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/api/middleware"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/repository"
	"github.com/runclub/runtrack/internal/service"
)

type RecordHandler struct {
	recordService *service.RecordService
}

func NewRecordHandler(recordService *service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

type RecordRequest struct {
	RunDate          *string        `json:"runDate"`
	Distance         *float64       `json:"distance"`
	Duration         *int           `json:"duration"` // minutes at the boundary
	EvidenceImageURL optionalString `json:"evidenceImageUrl"`
}

func (h *RecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง")
		return
	}

	if req.RunDate == nil || req.Distance == nil {
		response.Error(w, http.StatusBadRequest, "กรุณาระบุวันที่และระยะทาง")
		return
	}

	runDate, err := time.Parse(dateLayout, *req.RunDate)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "กรุณาระบุวันที่ให้ถูกต้อง")
		return
	}
	if !domain.ValidDistance(*req.Distance) {
		response.Error(w, http.StatusBadRequest, "กรุณาระบุระยะทางให้ถูกต้อง (0.01-200 กม.)")
		return
	}
	if req.Duration != nil && *req.Duration < 0 {
		response.Error(w, http.StatusBadRequest, "เวลาต้องเป็นจำนวนเต็มบวกหรือศูนย์")
		return
	}
	if req.EvidenceImageURL.Value != nil {
		if _, err := url.ParseRequestURI(*req.EvidenceImageURL.Value); err != nil {
			response.Error(w, http.StatusBadRequest, "URL ไม่ถูกต้อง")
			return
		}
	}

	record, err := h.recordService.Create(r.Context(), user.ID, service.CreateRecordInput{
		RunDate:          runDate,
		Distance:         *req.Distance,
		DurationMinutes:  req.Duration,
		EvidenceImageURL: req.EvidenceImageURL.Value,
	})
	if err != nil {
		log.Error().Err(err).Msg("create record failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusCreated, response.MsgSaved, toRecordResponse(record))
}

type RecordListData struct {
	Records    []RecordResponse `json:"records"`
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	opts := repository.ListOptions{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 10),
		SortBy:    queryString(r, "sortBy", "run_date"),
		SortOrder: queryString(r, "sortOrder", "desc"),
	}

	page, err := h.recordService.List(r.Context(), user.ID, opts)
	if err != nil {
		log.Error().Err(err).Msg("list records failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgOK, RecordListData{
		Records:    toRecordResponses(page.Records),
		Count:      page.Count,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}

func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, recordID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	record, err := h.recordService.Get(r.Context(), user.ID, recordID)
	if err != nil {
		h.writeRecordError(w, err, response.ErrForbidden)
		return
	}

	response.Success(w, http.StatusOK, response.MsgOK, toRecordResponse(record))
}

func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, recordID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง")
		return
	}

	input := service.UpdateRecordInput{
		DurationMinutes: req.Duration,
	}

	if req.RunDate != nil {
		runDate, err := time.Parse(dateLayout, *req.RunDate)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "กรุณาระบุวันที่ให้ถูกต้อง")
			return
		}
		input.RunDate = &runDate
	}
	if req.Distance != nil {
		if !domain.ValidDistance(*req.Distance) {
			response.Error(w, http.StatusBadRequest, "กรุณาระบุระยะทางให้ถูกต้อง (0.01-200 กม.)")
			return
		}
		input.Distance = req.Distance
	}
	if req.Duration != nil && *req.Duration < 0 {
		response.Error(w, http.StatusBadRequest, "เวลาต้องเป็นจำนวนเต็มบวกหรือศูนย์")
		return
	}
	if req.EvidenceImageURL.Set {
		if req.EvidenceImageURL.Value == nil {
			// Explicit null clears the stored evidence URL.
			input.RemoveEvidence = true
		} else {
			if _, err := url.ParseRequestURI(*req.EvidenceImageURL.Value); err != nil {
				response.Error(w, http.StatusBadRequest, "URL ไม่ถูกต้อง")
				return
			}
			input.EvidenceImageURL = req.EvidenceImageURL.Value
		}
	}

	record, err := h.recordService.Update(r.Context(), user.ID, recordID, input)
	if err != nil {
		h.writeRecordError(w, err, "ไม่มีสิทธิ์แก้ไขข้อมูลนี้")
		return
	}

	response.Success(w, http.StatusOK, response.MsgUpdated, toRecordResponse(record))
}

func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, recordID, ok := h.requestContext(w, r)
	if !ok {
		return
	}

	if err := h.recordService.Delete(r.Context(), user.ID, recordID); err != nil {
		h.writeRecordError(w, err, "ไม่มีสิทธิ์ลบข้อมูลนี้")
		return
	}

	response.Success(w, http.StatusOK, response.MsgDeleted, nil)
}

func (h *RecordHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	stats, err := h.recordService.Stats(r.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Msg("stats failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgOK, toStatsData(stats))
}

type DailyDistanceData struct {
	RunDate  string  `json:"runDate"`
	Distance float64 `json:"distance"`
}

type WeeklyDistanceData struct {
	WeekStart string  `json:"weekStart"`
	Distance  float64 `json:"distance"`
}

type StatsData struct {
	TotalDistance   float64              `json:"totalDistance"`
	AverageDistance float64              `json:"averageDistance"`
	DaysCount       int                  `json:"daysCount"`
	DailyDistance   []DailyDistanceData  `json:"dailyDistance"`
	WeeklyDistance  []WeeklyDistanceData `json:"weeklyDistance"`
}

func toStatsData(stats *domain.UserStats) StatsData {
	daily := make([]DailyDistanceData, 0, len(stats.DailyDistance))
	for _, d := range stats.DailyDistance {
		daily = append(daily, DailyDistanceData{
			RunDate:  d.RunDate.Format(dateLayout),
			Distance: d.Distance,
		})
	}
	weekly := make([]WeeklyDistanceData, 0, len(stats.WeeklyDistance))
	for _, wk := range stats.WeeklyDistance {
		weekly = append(weekly, WeeklyDistanceData{
			WeekStart: wk.WeekStart.Format(dateLayout),
			Distance:  wk.Distance,
		})
	}
	return StatsData{
		TotalDistance:   stats.TotalDistance,
		AverageDistance: stats.AverageDistance,
		DaysCount:       stats.DaysCount,
		DailyDistance:   daily,
		WeeklyDistance:  weekly,
	}
}

// requestContext pulls the authenticated user and the record id path param.
func (h *RecordHandler) requestContext(w http.ResponseWriter, r *http.Request) (*domain.User, uuid.UUID, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return nil, uuid.Nil, false
	}

	recordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, response.ErrRecordNotFound)
		return nil, uuid.Nil, false
	}
	return user, recordID, true
}

func (h *RecordHandler) writeRecordError(w http.ResponseWriter, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		response.Error(w, http.StatusNotFound, response.ErrRecordNotFound)
	case errors.Is(err, domain.ErrNotOwner):
		response.Error(w, http.StatusForbidden, forbiddenMsg)
	default:
		log.Error().Err(err).Msg("record operation failed")
		response.ServerError(w)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if val, err := strconv.Atoi(raw); err == nil {
			return val
		}
	}
	return fallback
}

func queryString(r *http.Request, key, fallback string) string {
	if raw := r.URL.Query().Get(key); raw != "" {
		return raw
	}
	return fallback
}
