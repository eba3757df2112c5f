package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/internal/session"
	"github.com/iamsashka/Kursach/pkg/jwtutil"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/iamsashka/Kursach/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput carries the registration form fields
type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult carries both credentials issued at login: a bearer token for the
// API surface and a session token set as a cookie for the web surface.
type LoginResult struct {
	User         *model.User
	Token        string
	SessionToken string
}

// AuthService handles registration, login and logout
type AuthService struct {
	store      repository.Store
	jwt        *jwtutil.JWTUtil
	sessions   session.Store
	sessionTTL time.Duration
	audit      *AuditService
}

// NewAuthService creates an auth service
func NewAuthService(store repository.Store, jwt *jwtutil.JWTUtil, sessions session.Store, sessionTTL time.Duration, audit *AuditService) *AuthService {
	return &AuthService{store: store, jwt: jwt, sessions: sessions, sessionTTL: sessionTTL, audit: audit}
}

// Register creates a customer account with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	log := logger.FromContext(ctx)

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	if _, err := s.store.Users().FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.store.Users().FindByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     input.Email,
		Username:  input.Username,
		Password:  string(hashed),
		Role:      model.RoleCustomer,
		Enabled:   true,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.Email, model.AuditActionCreate, "user", user.ID, nil,
		map[string]string{"email": user.Email, "username": user.Username})
	log.Info("User registered", zap.String("email", user.Email))
	return user, nil
}

// Login verifies credentials and issues a JWT plus a web session
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx)
	prometheus.AuthAttemptsCounter.Inc()

	user, err := s.store.Users().FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			prometheus.RecordAuthError("user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Warn("Invalid password", zap.String("email", user.Email))
		prometheus.RecordAuthError("invalid_password")
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		prometheus.RecordAuthError("account_disabled")
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateToken(user.Email, user.ID, user.Role)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return nil, err
	}

	sessionToken, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		prometheus.RecordAuthError("session_creation_failed")
		return nil, err
	}

	if err := s.store.Users().TouchLastActivity(ctx, user.ID); err != nil {
		log.Warn("Failed to update last activity", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("role", user.Role))
	return &LoginResult{User: user, Token: token, SessionToken: sessionToken}, nil
}

// Logout drops the web session; bearer tokens simply expire
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionToken)
}
