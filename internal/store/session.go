package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/i18n"
	"autoparts-backend/internal/models"
	"autoparts-backend/internal/naming"
)

const (
	StaticAdminID       = "static-admin-id"
	staticAdminEmail    = "admin@auto.com"
	staticAdminPassword = "admin123"

	// loginDomain completes bare usernames that have no profile row.
	loginDomain = "@autopro.com"
)

// AuthResult is what login and sign-up report to the caller. They never fail
// otherwise. Token is the bearer credential for every later request.
type AuthResult struct {
	Success   bool         `json:"success"`
	Error     string       `json:"error,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expiresAt,omitempty"`
	User      *models.User `json:"user,omitempty"`
}

// StaticAdmin is the locally held administrator identity. It has no profile row.
func StaticAdmin() models.User {
	return models.User{
		ID:       StaticAdminID,
		Username: "admin",
		Email:    staticAdminEmail,
		Role:     models.RoleAdmin,
		FullName: "Administrateur Système",
	}
}

func (s *Store) Login(ctx context.Context, identifier, secret string) AuthResult {
	ident := strings.TrimSpace(identifier)
	pass := strings.TrimSpace(secret)

	if s.staticAdmin && ident == staticAdminEmail && pass == staticAdminPassword {
		token := uuid.NewString()
		expires := s.now().Add(s.sessionTTL)
		s.mu.Lock()
		s.adminTokens[token] = expires
		admin := s.adminProfile
		s.currentUser = &admin
		s.mu.Unlock()
		s.log.Warn("static administrator signed in without the gateway")
		s.m.ObserveCommand("login", nil)
		return AuthResult{Success: true, Token: token, ExpiresAt: &expires, User: &admin}
	}

	email := ident
	if !strings.Contains(email, "@") {
		email = s.resolveEmail(ctx, ident)
	}

	session, err := s.gw.SignIn(ctx, email, pass)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", email), zap.Error(err))
		s.m.ObserveCommand("login", err)
		return AuthResult{Error: i18n.T(string(s.Language()), "auth.invalid")}
	}

	s.mu.Lock()
	s.currentUser = nil
	s.mu.Unlock()
	_ = s.Refresh(ctx)

	s.m.ObserveCommand("login", nil)
	return s.granted(ctx, session)
}

// granted reports a gateway session along with the profile it belongs to.
func (s *Store) granted(ctx context.Context, session *gateway.Session) AuthResult {
	expires := session.ExpiresAt
	profile, err := s.profileByEmail(ctx, session.Email)
	if err != nil {
		s.log.Warn("profile lookup failed", zap.String("email", session.Email), zap.Error(err))
	}
	return AuthResult{Success: true, Token: session.AccessToken, ExpiresAt: &expires, User: profile}
}

// Authenticate returns the profile an access token was issued to. Unknown,
// expired and logged-out tokens give ErrNotAuthenticated.
func (s *Store) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrNotAuthenticated
	}

	s.mu.RLock()
	expires, static := s.adminTokens[token]
	_, revoked := s.revoked[token]
	admin := s.adminProfile
	s.mu.RUnlock()

	if static {
		if s.now().Before(expires) {
			return admin, nil
		}
		s.mu.Lock()
		delete(s.adminTokens, token)
		s.mu.Unlock()
		return models.User{}, ErrNotAuthenticated
	}
	if revoked {
		return models.User{}, ErrNotAuthenticated
	}

	session, err := s.gw.Verify(ctx, token)
	if errors.Is(err, gateway.ErrInvalidSession) {
		return models.User{}, ErrNotAuthenticated
	}
	if err != nil {
		return models.User{}, fmt.Errorf("verify session: %w", err)
	}

	profile, err := s.profileByEmail(ctx, session.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return models.User{}, ErrNotAuthenticated
	}
	return *profile, nil
}

func (s *Store) profileByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := s.gw.Select(ctx, gateway.Query{
		Table: tableUsers,
		Match: gateway.Row{"email": email},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u, err := naming.Decode[models.User](rows[0])
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) resolveEmail(ctx context.Context, username string) string {
	rows, err := s.gw.Select(ctx, gateway.Query{
		Table:   tableUsers,
		Columns: []string{"email"},
		Match:   gateway.Row{"username": username},
		Limit:   1,
	})
	if err != nil {
		s.log.Warn("username lookup failed", zap.String("username", username), zap.Error(err))
	}
	if len(rows) > 0 {
		if email, ok := rows[0]["email"].(string); ok && email != "" {
			return email
		}
	}
	return username + loginDomain
}

// SignUp creates the account and its profile. The role is ADMIN when "admin"
// appears in the username or the email, WORKER otherwise.
func (s *Store) SignUp(ctx context.Context, username, email, secret string) AuthResult {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	session, err := s.gw.SignUp(ctx, email, strings.TrimSpace(secret))
	if err != nil {
		s.m.ObserveCommand("sign_up", err)
		return AuthResult{Error: err.Error()}
	}

	role := models.RoleWorker
	if strings.Contains(strings.ToLower(username), "admin") || strings.Contains(email, "admin") {
		role = models.RoleAdmin
	}

	profile, err := naming.Encode(models.UserPatch{Username: &username, Email: &email, FullName: &username})
	if err == nil {
		profile["role"] = string(role)
		err = s.gw.Upsert(ctx, tableUsers, []gateway.Row{profile}, "email")
	}
	if err != nil {
		s.log.Error("profile upsert failed", zap.String("email", email), zap.Error(err))
	}
	s.m.ObserveCommand("sign_up", err)

	if session == nil {
		return AuthResult{Error: i18n.T(string(s.Language()), "auth.confirm")}
	}
	_ = s.Refresh(ctx)
	return s.granted(ctx, session)
}

// Logout ends the session behind token: the token is refused from then on.
// The current user is cleared even if the gateway sign-out fails.
func (s *Store) Logout(ctx context.Context, token string) (err error) {
	defer s.track("logout", &err)

	now := s.now()
	s.mu.Lock()
	_, static := s.adminTokens[token]
	delete(s.adminTokens, token)
	for t, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, t)
		}
	}
	s.mu.Unlock()

	if !static && token != "" {
		if session, verr := s.gw.Verify(ctx, token); verr == nil {
			s.mu.Lock()
			s.revoked[token] = session.ExpiresAt
			s.mu.Unlock()
		}
	}

	err = s.gw.SignOut(ctx)
	s.mu.Lock()
	s.currentUser = nil
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// UpdateProfile edits the profile of cur, the authenticated caller. The static
// administrator is edited in memory only.
func (s *Store) UpdateProfile(ctx context.Context, cur models.User, patch models.UserPatch) (u models.User, err error) {
	defer s.track("update_profile", &err)

	if cur.ID == "" {
		return models.User{}, ErrNotAuthenticated
	}

	if cur.ID == StaticAdminID {
		s.mu.Lock()
		s.adminProfile = patch.Apply(s.adminProfile)
		u = s.adminProfile
		s.syncUser(u)
		s.mu.Unlock()
		return u, nil
	}

	u, err = updateOne[models.User](ctx, s.gw, tableUsers, cur.ID, patch)
	if err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	s.syncUser(u)
	s.mu.Unlock()
	return u, nil
}

// syncUser replaces every in-memory copy of u. s.mu must be held.
func (s *Store) syncUser(u models.User) {
	s.workers = replaceWhere(s.workers, func(w models.User) bool { return w.ID == u.ID }, u)
	if s.currentUser != nil && s.currentUser.ID == u.ID {
		cur := u
		s.currentUser = &cur
	}
}
