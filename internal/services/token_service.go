package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and verifies access tokens. Tokens are HS256 JWTs
// backed by a Redis session keyed on the token hash, so a logout revokes
// the token before its signature expires.
type TokenService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

func NewTokenService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtSecret string, tokenTTL time.Duration) *TokenService {
	return &TokenService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		now:         time.Now,
	}
}

func (s *TokenService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, models.ErrInvalidCredentials
	}
	if !s.userRepo.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL)

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		ID:     uuid.NewString(),
		UserID: user.ID.String(),
		Role:   user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	tokenHash := hashToken(token)
	session := &models.UserSession{
		ID:        tokenHash,
		UserID:    user.ID.String(),
		Role:      user.Role,
		TokenHash: tokenHash,
		CreatedAt: issuedAt,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		Role:      user.Role,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies the token signature and the backing session, and
// returns the resolved identity.
func (s *TokenService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetSession(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, models.ErrSessionInvalid) {
			return nil, models.ErrSessionInvalid
		}
		return nil, err
	}
	if !session.IsActive || s.now().After(session.ExpiresAt) {
		return nil, models.ErrSessionInvalid
	}
	if session.UserID != claims.UserID {
		return nil, models.ErrSessionInvalid
	}

	return claims, nil
}

// Logout revokes the session behind the token. Revoking an unknown token is
// a no-op.
func (s *TokenService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteSession(ctx, hashToken(token))
}

// LogoutAll revokes every session of the given user.
func (s *TokenService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID.String())
}

// ActiveSessions lists the user's live sessions.
func (s *TokenService) ActiveSessions(ctx context.Context, userID uuid.UUID) ([]*models.UserSession, error) {
	return s.sessionRepo.GetUserSessions(ctx, userID.String())
}

func (s *TokenService) parseToken(token string) (*models.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &models.Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, models.ErrSessionInvalid
	}

	claims, ok := parsed.Claims.(*models.Claims)
	if !ok || !parsed.Valid {
		return nil, models.ErrSessionInvalid
	}
	return claims, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
