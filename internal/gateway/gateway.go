// Package gateway describes the hosted auth + tabular storage service the store talks to.
package gateway

import (
	"context"
	"errors"
	"time"
)

// Row is one record in storage naming.
type Row = map[string]any

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrAccountExists      = errors.New("user already registered")
	ErrNotConfirmed       = errors.New("email not confirmed")
	ErrNoRows             = errors.New("no rows matched")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

type Session struct {
	AccessToken string    `json:"accessToken"`
	AccountID   string    `json:"accountId"`
	Email       string    `json:"email"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Embed joins a child table onto each selected row under Alias, matching
// child.ForeignKey against the parent id.
type Embed struct {
	Alias      string
	Table      string
	ForeignKey string
}

type Order struct {
	Field     string
	Ascending bool
}

type Query struct {
	Table   string
	Columns []string
	Embeds  []Embed
	Match   Row
	Order   *Order
	Limit   int
}

func Desc(field string) *Order { return &Order{Field: field} }

type Auth interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// SignUp returns a nil session when the account still needs confirmation.
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
	Session(ctx context.Context) (*Session, error)
	// Verify checks an access token handed out by SignIn or SignUp and
	// returns ErrInvalidSession when it is forged or expired.
	Verify(ctx context.Context, accessToken string) (*Session, error)
}

type Tables interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, rows ...Row) ([]Row, error)
	Update(ctx context.Context, table string, patch, match Row) ([]Row, error)
	Delete(ctx context.Context, table string, match Row) error
	Upsert(ctx context.Context, table string, rows []Row, conflictKey string) error
}

type Gateway interface {
	Auth
	Tables
}

// ByID is the usual match clause.
func ByID(id string) Row { return Row{"id": id} }
