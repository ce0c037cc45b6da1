package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hrdesk/internal/config"
	"hrdesk/internal/domain"
	"hrdesk/internal/port"
)

// SessionClaims are the JWT claims carried by an hrdesk session token.
type SessionClaims struct {
	IdentityKey string `json:"identity_key"`
	EmployeeID  string `json:"employee_id"`
	jwt.RegisteredClaims
}

// AuthService mints and validates session tokens for acting users.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.ActingUser, error)
	ValidateToken(token string) (*domain.ActingUser, error)
}

type authService struct {
	verifier port.CredentialVerifier
	store    port.KeyValue
	cfg      config.JWTConfig
}

// NewAuthService creates an AuthService backed by the remote credential
// verifier and the durable key-value store.
func NewAuthService(verifier port.CredentialVerifier, store port.KeyValue, cfg config.JWTConfig) AuthService {
	return &authService{verifier: verifier, store: store, cfg: cfg}
}

// Login verifies credentials against the remote backend, persists the acting
// user, and returns a signed session token.
func (s *authService) Login(ctx context.Context, username, password string) (string, *domain.ActingUser, error) {
	actor, err := s.verifier.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	claims := SessionClaims{
		IdentityKey: actor.IdentityKey,
		EmployeeID:  actor.EmployeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.IdentityKey,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("signing session token: %w", err)
	}

	// Mirror the acting user to durable storage; login still succeeds if the
	// store is down.
	if payload, err := json.Marshal(actor); err == nil {
		if err := s.store.Set(ctx, "actor:"+actor.IdentityKey, string(payload)); err != nil {
			log.Printf("authService.Login: persisting acting user %s: %v", actor.IdentityKey, err)
		}
	}

	return token, actor, nil
}

// ValidateToken parses and verifies a session token and returns its acting
// user.
func (s *authService) ValidateToken(token string) (*domain.ActingUser, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.IdentityKey == "" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.ActingUser{IdentityKey: claims.IdentityKey, EmployeeID: claims.EmployeeID}, nil
}
