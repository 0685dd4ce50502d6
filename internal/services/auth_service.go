package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fintrackhq/fintrack-backend/internal/auth"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	repo "github.com/fintrackhq/fintrack-backend/internal/repository"
)

// refreshGrace keeps a just-expired stored token usable for a short window,
// so a refresh racing the expiry sweep does not fail spuriously.
const refreshGrace = 30 * time.Second

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthResult struct {
	User models.PublicUser `json:"user"`
	TokenPair
}

type AuthService struct {
	runner repo.TxRunner
	users  repo.Users
	tokens repo.RefreshTokens
	ledger repo.Ledger
	tm     *auth.TokenManager
}

func NewAuthService(runner repo.TxRunner, users repo.Users, tokens repo.RefreshTokens, ledger repo.Ledger, tm *auth.TokenManager) *AuthService {
	return &AuthService{runner: runner, users: users, tokens: tokens, ledger: ledger, tm: tm}
}

// Signup creates the user, a zeroed financial summary and the first session
// in one transaction; a token-persist failure rolls the user row back too.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (AuthResult, error) {
	u := models.User{Name: name, Email: email}
	if err := u.Validate(); err != nil {
		return AuthResult{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if taken {
		return AuthResult{}, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	var res AuthResult
	err = s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		user, err := s.users.Create(ctx, tx, name, email, hash)
		if err != nil {
			return translateDB(err)
		}
		if err := s.ledger.InitSummary(ctx, tx, user.ID); err != nil {
			return err
		}
		pair, err := s.issueSession(ctx, tx, user)
		if err != nil {
			return err
		}
		res = AuthResult{User: user.Public(), TokenPair: pair}
		return nil
	})
	return res, err
}

// Login intentionally reports the same error for an unknown email and a bad
// password.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	var res AuthResult
	err = s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		pair, err := s.issueSession(ctx, tx, user)
		if err != nil {
			return err
		}
		res = AuthResult{User: user.Public(), TokenPair: pair}
		return nil
	})
	return res, err
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token is not revoked; multiple concurrent sessions are permitted.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return AuthResult{}, ErrUnauthorized
	}
	stored, err := s.tokens.FindValid(ctx, refreshToken, time.Now().Add(-refreshGrace))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, err
	}
	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return AuthResult{}, translateDB(err)
	}
	if user.ID != claims.UserID {
		return AuthResult{}, ErrUnauthorized
	}

	var res AuthResult
	err = s.runner.WithTx(ctx, func(tx pgx.Tx) error {
		pair, err := s.issueSession(ctx, tx, user)
		if err != nil {
			return err
		}
		res = AuthResult{User: user.Public(), TokenPair: pair}
		return nil
	})
	return res, err
}

// Logout expires the stored token in place, backdated past the grace window
// so revocation takes effect immediately. Revoking an unknown or already
// expired token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken, time.Now().Add(-refreshGrace))
}

func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailExists(ctx, email)
	return !taken, err
}

func (s *AuthService) Profile(ctx context.Context, userID string) (models.PublicUser, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.PublicUser{}, translateDB(err)
	}
	return u.Public(), nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID, name, email string) (models.PublicUser, error) {
	u := models.User{ID: userID, Name: name, Email: email}
	if err := u.Validate(); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	u, err := s.users.Update(ctx, u)
	if err != nil {
		return models.PublicUser{}, translateDB(err)
	}
	return u.Public(), nil
}

func (s *AuthService) issueSession(ctx context.Context, tx pgx.Tx, user models.User) (TokenPair, error) {
	access, refresh, exp, err := s.tm.GeneratePair(user.ID, user.Email, user.Name)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.tokens.Create(ctx, tx, user.ID, refresh, time.Now().Add(s.tm.RefreshTTL())); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}
