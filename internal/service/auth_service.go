package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/config"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/model"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// AuthService owns accounts, credentials and tokens.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	SetLogo(ctx context.Context, userID uuid.UUID, logoURL string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error)
	AssignRole(ctx context.Context, userID uuid.UUID, req dto.AssignRoleRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, userID uuid.UUID) error
	Reactivate(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

// Signup creates an account. Manager and Finance are singleton roles: signup
// is rejected while an active holder exists. The check runs at signup time
// only; deactivating the holder frees the seat.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: an account with this email already exists", apierror.ErrValidation)
	}

	if role.Singleton() {
		n, err := s.users.CountActiveByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: an active %s account already exists", apierror.ErrValidation, role)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}

	user := &model.User{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         email,
		Phone:         req.Phone,
		PasswordHash:  string(hash),
		Role:          role,
		ShopName:      req.ShopName,
		ShopLocation:  req.ShopLocation,
		ShopContact:   req.ShopContact,
		SalesCategory: req.SalesCategory,
		Active:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: create user: %v", apierror.ErrPersistence, err)
	}

	log.Info().Str("email", user.Email).Str("role", string(role)).Msg("account created")
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apierror.ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: account is deactivated", apierror.ErrAuthorizationDenied)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apierror.ErrValidation)
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *authService) Refresh(ctx context.Context, req dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(req.RefreshToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", apierror.ErrAuthorizationDenied)
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, fmt.Errorf("%w: not a refresh token", apierror.ErrAuthorizationDenied)
	}
	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apierror.ErrAuthorizationDenied)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: account not found", apierror.ErrAuthorizationDenied)
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: account is deactivated", apierror.ErrAuthorizationDenied)
	}
	return s.issueTokens(user)
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}

	if req.FullName != "" {
		user.FullName = strings.TrimSpace(req.FullName)
	}
	if req.ShopName != nil {
		user.ShopName = req.ShopName
	}
	if req.ShopLocation != nil {
		user.ShopLocation = req.ShopLocation
	}
	if req.ShopContact != nil {
		user.ShopContact = req.ShopContact
	}
	if req.SalesCategory != nil {
		user.SalesCategory = req.SalesCategory
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: update profile: %v", apierror.ErrPersistence, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) SetLogo(ctx context.Context, userID uuid.UUID, logoURL string) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	user.ShopLogoURL = &logoURL
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: update logo: %v", apierror.ErrPersistence, err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context, includeInactive bool) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", apierror.ErrPersistence, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out, nil
}

// AssignRole changes an account's role. The singleton rule applies here too:
// moving someone into Manager or Finance requires the seat to be free.
func (s *authService) AssignRole(ctx context.Context, userID uuid.UUID, req dto.AssignRoleRequest) (*dto.UserResponse, error) {
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apierror.ErrValidation, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	if user.Role == role {
		resp := toUserResponse(user)
		return &resp, nil
	}

	if role.Singleton() {
		n, err := s.users.CountActiveByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: an active %s account already exists", apierror.ErrValidation, role)
		}
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: assign role: %v", apierror.ErrPersistence, err)
	}
	log.Info().Str("user_id", userID.String()).Str("role", string(role)).Msg("role assigned")
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("%w: deactivate user: %v", apierror.ErrPersistence, err)
	}
	return nil
}

func (s *authService) Reactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %s", apierror.ErrNotFound, userID)
		}
		return fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
	}
	if user.Role.Singleton() {
		n, err := s.users.CountActiveByRole(ctx, user.Role)
		if err != nil {
			return fmt.Errorf("%w: %v", apierror.ErrPersistence, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: an active %s account already exists", apierror.ErrValidation, user.Role)
		}
	}
	if err := s.users.Reactivate(ctx, userID); err != nil {
		return fmt.Errorf("%w: reactivate user: %v", apierror.ErrPersistence, err)
	}
	return nil
}

// ─── Tokens ──────────────────────────────────────────────────────────────────

func (s *authService) issueTokens(user *model.User) (*dto.LoginResponse, error) {
	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	access, err := s.signToken(user, expiry, "access")
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", apierror.ErrPersistence, err)
	}
	refresh, err := s.signToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour, "refresh")
	if err != nil {
		return nil, fmt.Errorf("%w: sign token: %v", apierror.ErrPersistence, err)
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(expiry.Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) signToken(user *model.User, ttl time.Duration, typ string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.ID.String(),
		"full_name": user.FullName,
		"role":      string(user.Role),
		"typ":       typ,
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID.String(),
		FullName:      u.FullName,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          string(u.Role),
		ShopName:      u.ShopName,
		ShopLocation:  u.ShopLocation,
		ShopContact:   u.ShopContact,
		SalesCategory: u.SalesCategory,
		ShopLogoURL:   u.ShopLogoURL,
		Active:        u.Active,
	}
}
