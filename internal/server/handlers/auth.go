package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/flashsync/internal/crypto"
	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/jwt"
	"github.com/iudanet/flashsync/internal/server/storage"
	"github.com/iudanet/flashsync/internal/validation"
	"github.com/iudanet/flashsync/pkg/api"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID, username string) (string, time.Time, error)
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger        *slog.Logger
	userStorage   storage.UserStorage
	tokens        TokenService
	hasher        PasswordHasher
	now           func() time.Time
	secureCookies bool
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(
	logger *slog.Logger,
	userStorage storage.UserStorage,
	tokens TokenService,
	hasher PasswordHasher,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		logger:        logger,
		userStorage:   userStorage,
		tokens:        tokens,
		hasher:        hasher,
		now:           time.Now,
		secureCookies: secureCookies,
	}
}

// Signup обрабатывает POST /api/v1/auth/signup
// Регистрация нового аккаунта. Хранилище записей создается при первой синхронизации
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signup request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateCredentials(req.Username, req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid credentials", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    h.now(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			sendError(h.logger, w, "username already taken", http.StatusConflict)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user signed up",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.SignupResponse{
		UserID:  user.ID,
		Message: "User registered successfully",
	}, http.StatusCreated)
}

// Signin обрабатывает POST /api/v1/auth/signin
// Выдает access token в теле ответа и в cookie
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode signin request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil || req.Password == "" {
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "signin failed: user not found", slog.String("username", req.Username))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.hasher.Verify(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrPasswordMismatch) {
			h.logger.WarnContext(ctx, "signin failed: wrong password", slog.String("username", req.Username))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to verify password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.userStorage.UpdateLastLogin(ctx, user.ID, h.now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	http.SetCookie(w, h.tokenCookie(token, expiresAt))

	h.logger.InfoContext(ctx, "user signed in",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID))

	expiration := expiresAt.Unix()
	sendJSON(h.logger, w, api.SessionResponse{
		SignedIn:    true,
		Expiration:  &expiration,
		AccessToken: token,
		Message:     "Signed in",
	}, http.StatusOK)
}

// Signout обрабатывает POST /api/v1/auth/signout
// Токены не хранятся на сервере, поэтому достаточно удалить cookie
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.expiredCookie())

	sendJSON(h.logger, w, api.SessionResponse{
		SignedIn: false,
		Message:  "Signed out",
	}, http.StatusOK)
}

// Status обрабатывает POST /api/v1/auth/status
// Сообщает, действителен ли токен запроса. Недействительный cookie удаляется
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := jwt.TokenFromRequest(r)
	if !ok {
		sendJSON(h.logger, w, api.SessionResponse{
			SignedIn: false,
			Message:  "Not signed in",
		}, http.StatusOK)
		return
	}

	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		h.logger.DebugContext(ctx, "session token rejected", slog.Any("error", err))
		if _, cookieErr := r.Cookie(jwt.CookieName); cookieErr == nil {
			http.SetCookie(w, h.expiredCookie())
		}
		sendJSON(h.logger, w, api.SessionResponse{
			SignedIn: false,
			Message:  "Session expired",
		}, http.StatusOK)
		return
	}

	var expiration *int64
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Unix()
		expiration = &exp
	}

	sendJSON(h.logger, w, api.SessionResponse{
		SignedIn:   true,
		Expiration: expiration,
		Message:    "Signed in as " + claims.Username,
	}, http.StatusOK)
}

func (h *AuthHandler) tokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     jwt.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     jwt.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
