package sqlgateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
)

const minPasswordLength = 6

func (g *Gateway) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	email = normalizeEmail(email)
	var acc models.AuthAccount
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gateway.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, gateway.ErrInvalidCredentials
	}
	if !acc.Confirmed {
		return nil, gateway.ErrNotConfirmed
	}

	return g.startSession(&acc)
}

// SignUp creates an account. Without auto-confirmation the account is left
// pending and no session is returned.
func (g *Gateway) SignUp(ctx context.Context, email, password string) (*gateway.Session, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("sign up: invalid email %q", email)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("sign up: password should be at least %d characters", minPasswordLength)
	}

	var count int64
	if err := g.db.WithContext(ctx).Model(&models.AuthAccount{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if count > 0 {
		return nil, gateway.ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("sign up: hash password: %w", err)
	}

	acc := models.AuthAccount{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Confirmed:    g.opts.AutoConfirm,
	}
	if err := g.db.WithContext(ctx).Create(&acc).Error; err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	if !acc.Confirmed {
		g.log.Info("account pending confirmation", zap.String("email", email))
		return nil, nil
	}
	return g.startSession(&acc)
}

// ConfirmAccount marks a pending account as confirmed.
func (g *Gateway) ConfirmAccount(ctx context.Context, email string) error {
	res := g.db.WithContext(ctx).Model(&models.AuthAccount{}).
		Where("email = ?", normalizeEmail(email)).
		Update("confirmed", true)
	if res.Error != nil {
		return fmt.Errorf("confirm account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("confirm account: %w", gateway.ErrNoRows)
	}
	return nil
}

func (g *Gateway) SignOut(ctx context.Context) error {
	g.mu.Lock()
	g.session = nil
	g.mu.Unlock()
	return nil
}

// Session returns the active session, or nil once it has expired or was never started.
func (g *Gateway) Session(ctx context.Context) (*gateway.Session, error) {
	g.mu.RLock()
	s := g.session
	g.mu.RUnlock()
	if s == nil {
		return nil, nil
	}

	if _, err := parseToken([]byte(g.opts.JWTSecret), s.AccessToken); err != nil {
		g.log.Debug("session dropped", zap.Error(err))
		g.mu.Lock()
		if g.session == s {
			g.session = nil
		}
		g.mu.Unlock()
		return nil, nil
	}

	cp := *s
	return &cp, nil
}

// Verify reads the account out of a session token. The active session is left alone.
func (g *Gateway) Verify(ctx context.Context, accessToken string) (*gateway.Session, error) {
	claims, err := parseToken([]byte(g.opts.JWTSecret), accessToken)
	if err != nil {
		g.log.Debug("session token rejected", zap.Error(err))
		return nil, gateway.ErrInvalidSession
	}
	return &gateway.Session{
		AccessToken: accessToken,
		AccountID:   claims.AccountID,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (g *Gateway) startSession(acc *models.AuthAccount) (*gateway.Session, error) {
	token, expires, err := issueToken([]byte(g.opts.JWTSecret), g.opts.SessionTTL, acc)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}

	s := &gateway.Session{
		AccessToken: token,
		AccountID:   acc.ID,
		Email:       acc.Email,
		ExpiresAt:   expires,
	}
	g.mu.Lock()
	g.session = s
	g.mu.Unlock()

	cp := *s
	return &cp, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
