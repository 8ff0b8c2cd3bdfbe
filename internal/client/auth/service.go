package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/flashsync/internal/client/api"
	"github.com/iudanet/flashsync/internal/client/storage"
	"github.com/iudanet/flashsync/internal/validation"
	pkgapi "github.com/iudanet/flashsync/pkg/api"
)

// ErrNotSignedIn is returned when there is no unexpired session on this client
var ErrNotSignedIn = errors.New("not signed in")

// Service предоставляет функции авторизации клиента
type Service struct {
	api     api.ClientAPI
	auth    storage.AuthStorage
	records storage.RecordStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(apiClient api.ClientAPI, auth storage.AuthStorage, records storage.RecordStorage, logger *slog.Logger) *Service {
	return &Service{
		api:     apiClient,
		auth:    auth,
		records: records,
		logger:  logger,
		now:     time.Now,
	}
}

// Signup создает аккаунт на сервере и возвращает его UUID
func (s *Service) Signup(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateCredentials(username, password); err != nil {
		return "", err
	}

	resp, err := s.api.Signup(ctx, pkgapi.SignupRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// Signin authenticates and stores the session. Local rows of a different
// previously signed in user are discarded first.
func (s *Service) Signin(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: empty password", validation.ErrInvalidPassword)
	}

	resp, err := s.api.Signin(ctx, pkgapi.SigninRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	if !resp.SignedIn || resp.AccessToken == "" {
		return nil, fmt.Errorf("signin failed: %s", resp.Message)
	}

	expiresAt := s.now().Add(time.Hour).Unix()
	if resp.Expiration != nil {
		expiresAt = *resp.Expiration
	}

	previous, err := s.auth.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to get previous session: %w", err)
	case previous.Username != username:
		s.logger.Info("Discarding local data of previous user", "username", previous.Username)
		if err := s.records.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset local data: %w", err)
		}
	}

	session := &storage.AuthData{
		Username:    username,
		AccessToken: resp.AccessToken,
		ExpiresAt:   expiresAt,
	}
	if err := s.auth.SaveAuth(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// Signout drops the access token. The username is kept so that unsynced
// rows survive until the same user signs in again; with forget set the
// whole local state is removed.
func (s *Service) Signout(ctx context.Context, forget bool) error {
	session, err := s.auth.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotSignedIn
		}
		return fmt.Errorf("failed to get session: %w", err)
	}

	if forget {
		if err := s.records.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset local data: %w", err)
		}
		if err := s.auth.DeleteAuth(ctx); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	}

	if err := s.auth.SaveAuth(ctx, &storage.AuthData{Username: session.Username}); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Session returns the stored session if its token has not expired
func (s *Service) Session(ctx context.Context) (*storage.AuthData, error) {
	ok, err := s.auth.IsAuthenticated(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if !ok {
		return nil, ErrNotSignedIn
	}

	return s.auth.GetAuth(ctx)
}

// Verify asks the server whether the stored token is still accepted
func (s *Service) Verify(ctx context.Context) (bool, error) {
	session, err := s.Session(ctx)
	if err != nil {
		return false, err
	}

	resp, err := s.api.Session(ctx, session.AccessToken)
	if err != nil {
		return false, err
	}
	return resp.SignedIn, nil
}
