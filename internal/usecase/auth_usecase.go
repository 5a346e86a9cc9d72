package usecase

import (
	"context"
	"sync"
	"time"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/internal/remote"
	"nothingelse-storefront/pkg/logger"
	"nothingelse-storefront/pkg/utils"
)

// AuthUsecase tracks the current session. Every state-mutating operation
// writes the token into the local store before updating in-memory state,
// so a restart mid-session is always consistent with the last successful
// auth call.
type AuthUsecase struct {
	api   *remote.Client
	store localstore.Store

	mu        sync.Mutex
	session   *domain.Session
	loading   bool
	listeners []func(authenticated bool)
}

func NewAuthUsecase(api *remote.Client, store localstore.Store) *AuthUsecase {
	return &AuthUsecase{
		api:   api,
		store: store,
	}
}

// OnChange registers a callback invoked after every authentication state
// change. The wishlist uses this to swap persistence backends.
func (u *AuthUsecase) OnChange(fn func(authenticated bool)) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.listeners = append(u.listeners, fn)
}

// CheckSession restores the session from a stored token at startup.
// A failed probe clears the token and leaves the user logged out; the
// loading flag is cleared exactly once on every path so the caller's
// spinner can never hang.
func (u *AuthUsecase) CheckSession(ctx context.Context) {
	u.mu.Lock()
	u.loading = true
	u.mu.Unlock()
	defer func() {
		u.mu.Lock()
		u.loading = false
		u.mu.Unlock()
	}()

	token, ok := u.store.Get(localstore.KeyToken)
	if !ok || token == "" {
		return
	}

	// Discard a token that is already past its expiry without a round trip.
	// The claims are unverified; the backend still has the final say below.
	if claims, err := utils.DecodeToken(token); err == nil && claims.IsExpired(time.Now()) {
		u.clearCredentials()
		return
	}

	var user domain.User
	if err := u.api.Get(ctx, "/auth/me", &user); err != nil {
		logger.Warn().Err(err).Msg("session restore failed, clearing token")
		u.clearCredentials()
		return
	}

	u.setSession(user, token)
}

// Login authenticates with email and password. Server errors (invalid
// credentials) propagate without mutating any state.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var resp domain.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := u.api.Post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}

	if err := u.store.Set(localstore.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	u.setSession(resp.User, resp.Token)
	return &resp.User, nil
}

// Register creates an account and logs it in, symmetric to Login.
func (u *AuthUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	var resp domain.AuthResponse
	if err := u.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	if err := u.store.Set(localstore.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	u.setSession(resp.User, resp.Token)
	return &resp.User, nil
}

// AdminLogin authenticates against the admin endpoint and additionally
// enforces the admin flag client-side. Defense in depth only; server-side
// authorization still guards every admin endpoint.
func (u *AuthUsecase) AdminLogin(ctx context.Context, email, password string) (*domain.User, error) {
	var resp domain.AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := u.api.Post(ctx, "/auth/admin/login", body, &resp); err != nil {
		return nil, err
	}

	if !resp.User.IsAdmin {
		return nil, ErrNotAuthorized
	}

	if err := u.store.Set(localstore.KeyToken, resp.Token); err != nil {
		return nil, err
	}
	if err := u.store.Set(localstore.KeyIsAdmin, "true"); err != nil {
		return nil, err
	}
	u.setSession(resp.User, resp.Token)
	return &resp.User, nil
}

// Logout clears the credential and session synchronously. No network call.
func (u *AuthUsecase) Logout() {
	u.clearCredentials()

	u.mu.Lock()
	u.session = nil
	listeners := append([]func(bool){}, u.listeners...)
	u.mu.Unlock()

	for _, fn := range listeners {
		fn(false)
	}
}

// IsAuthenticated reports whether a session is active.
func (u *AuthUsecase) IsAuthenticated() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session != nil
}

// IsAdmin reports whether the active session belongs to an admin.
func (u *AuthUsecase) IsAdmin() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.session != nil && u.session.User.IsAdmin
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (u *AuthUsecase) CurrentUser() *domain.User {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.session == nil {
		return nil
	}
	user := u.session.User
	return &user
}

// IsLoading reports whether a session restore is in flight.
func (u *AuthUsecase) IsLoading() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loading
}

func (u *AuthUsecase) setSession(user domain.User, token string) {
	u.mu.Lock()
	u.session = &domain.Session{User: user, Token: token}
	listeners := append([]func(bool){}, u.listeners...)
	u.mu.Unlock()

	for _, fn := range listeners {
		fn(true)
	}
}

func (u *AuthUsecase) clearCredentials() {
	if err := u.store.Delete(localstore.KeyToken); err != nil {
		logger.Error().Err(err).Msg("failed to clear stored token")
	}
	if err := u.store.Delete(localstore.KeyIsAdmin); err != nil {
		logger.Error().Err(err).Msg("failed to clear admin flag")
	}
}
