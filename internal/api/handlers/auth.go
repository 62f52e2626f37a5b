package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/api/middleware"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/service"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	LineIDToken string `json:"lineIdToken"`
}

type LoginData struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LineIDToken == "" {
		response.Error(w, http.StatusBadRequest, response.ErrTokenInvalid)
		return
	}

	result, err := h.authService.Login(r.Context(), req.LineIDToken)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			log.Warn().Err(err).Msg("LINE token verification failed")
			response.Error(w, http.StatusUnauthorized, response.ErrLineVerify)
			return
		}
		log.Error().Err(err).Msg("login failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgLoginOK, LoginData{
		User:  toUserResponse(result.User),
		Token: result.Token,
	})
}

type ProfileRequest struct {
	PhoneNumber *string `json:"phoneNumber"`
	BirthDate   *string `json:"birthDate"`
}

// Register completes first-time onboarding: both fields are required.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง")
		return
	}

	if req.PhoneNumber == nil {
		response.Error(w, http.StatusBadRequest, "กรุณากรอกเบอร์โทรศัพท์")
		return
	}
	if req.BirthDate == nil {
		response.Error(w, http.StatusBadRequest, "กรุณาระบุวันเกิด")
		return
	}

	update, errMsg := validateProfileUpdate(req)
	if errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		log.Error().Err(err).Msg("register failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgSaved, map[string]any{
		"user": toUserResponse(updated),
	})
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	current, err := h.authService.GetUserByID(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.Error(w, http.StatusNotFound, response.ErrUserNotFound)
			return
		}
		log.Error().Err(err).Msg("get profile failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgOK, toUserResponse(current))
}

// UpdateProfile accepts partial updates; absent fields are left untouched.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "ข้อมูลไม่ถูกต้อง")
		return
	}

	update, errMsg := validateProfileUpdate(req)
	if errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg)
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		log.Error().Err(err).Msg("update profile failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgUpdated, toUserResponse(updated))
}

// validateProfileUpdate checks the supplied fields: phone numbers must be
// exactly 10 digits, birth dates must parse and not lie in the future.
func validateProfileUpdate(req ProfileRequest) (service.ProfileUpdate, string) {
	var update service.ProfileUpdate

	if req.PhoneNumber != nil {
		if !phonePattern.MatchString(*req.PhoneNumber) {
			return update, "กรุณากรอกเบอร์โทรศัพท์ให้ถูกต้อง (10 หลัก)"
		}
		update.PhoneNumber = req.PhoneNumber
	}

	if req.BirthDate != nil {
		birthDate, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil || birthDate.After(time.Now()) {
			return update, "กรุณาระบุวันเกิดให้ถูกต้อง"
		}
		update.BirthDate = &birthDate
	}

	return update, ""
}
