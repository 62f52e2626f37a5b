package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/runclub/runtrack/internal/config"
	"github.com/runclub/runtrack/internal/domain"
	"github.com/runclub/runtrack/internal/identity"
	"github.com/runclub/runtrack/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAuthenticationFailed = errors.New("identity provider rejected the token")
	ErrTokenInvalid         = errors.New("session token is invalid")
	ErrTokenExpired         = errors.New("session token has expired")
)

const defaultDisplayName = "LINE User"

type AuthService struct {
	userRepo repository.UserRepository
	verifier identity.Verifier
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier identity.Verifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		cfg:      cfg,
	}
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Login verifies the provider ID token, resolves (or creates) the user row
// for its subject and issues a session token. Two logins resolving to the
// same subject always share one row.
func (s *AuthService) Login(ctx context.Context, idToken string) (*AuthResult, error) {
	profile, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	displayName := profile.DisplayName
	if displayName == "" {
		displayName = defaultDisplayName
	}

	user, err := s.userRepo.FindOrCreateByLineID(ctx, &domain.User{
		ID:             uuid.New(),
		LineID:         profile.SubjectID,
		DisplayName:    displayName,
		ProfilePicture: profile.PictureURL,
		LineProfile:    datatypes.JSON(profile.Raw),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) GenerateToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": now.Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken checks signature and expiry and returns the embedded user id.
// Expired tokens are reported distinctly so the client can prompt a re-login.
func (s *AuthService) ValidateToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return userID, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileUpdate struct {
	PhoneNumber *string
	BirthDate   *time.Time
}

// UpdateProfile persists only the supplied fields plus the updated timestamp.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{
		"updated_at": time.Now(),
	}
	if update.PhoneNumber != nil {
		fields["phone_number"] = *update.PhoneNumber
	}
	if update.BirthDate != nil {
		fields["birth_date"] = *update.BirthDate
	}

	user, err := s.userRepo.UpdateFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
