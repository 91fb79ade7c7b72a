package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/gateway/sqlgateway"
)

// faultGateway wraps a real gateway, records every call and fails the ones it is told to.
type faultGateway struct {
	gateway.Gateway

	mu       sync.Mutex
	failures map[string]error
	calls    []string
}

func (f *faultGateway) failOn(table, op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[table+"/"+op] = err
}

func (f *faultGateway) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures = map[string]error{}
	f.calls = nil
}

func (f *faultGateway) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *faultGateway) check(table, op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := table + "/" + op
	f.calls = append(f.calls, key)
	return f.failures[key]
}

func (f *faultGateway) SignIn(ctx context.Context, email, password string) (*gateway.Session, error) {
	if err := f.check("auth", "sign_in"); err != nil {
		return nil, err
	}
	return f.Gateway.SignIn(ctx, email, password)
}

func (f *faultGateway) SignUp(ctx context.Context, email, password string) (*gateway.Session, error) {
	if err := f.check("auth", "sign_up"); err != nil {
		return nil, err
	}
	return f.Gateway.SignUp(ctx, email, password)
}

func (f *faultGateway) SignOut(ctx context.Context) error {
	if err := f.check("auth", "sign_out"); err != nil {
		return err
	}
	return f.Gateway.SignOut(ctx)
}

func (f *faultGateway) Session(ctx context.Context) (*gateway.Session, error) {
	if err := f.check("auth", "session"); err != nil {
		return nil, err
	}
	return f.Gateway.Session(ctx)
}

func (f *faultGateway) Verify(ctx context.Context, accessToken string) (*gateway.Session, error) {
	if err := f.check("auth", "verify"); err != nil {
		return nil, err
	}
	return f.Gateway.Verify(ctx, accessToken)
}

func (f *faultGateway) Select(ctx context.Context, q gateway.Query) ([]gateway.Row, error) {
	if err := f.check(q.Table, "select"); err != nil {
		return nil, err
	}
	return f.Gateway.Select(ctx, q)
}

func (f *faultGateway) Insert(ctx context.Context, table string, rows ...gateway.Row) ([]gateway.Row, error) {
	if err := f.check(table, "insert"); err != nil {
		return nil, err
	}
	return f.Gateway.Insert(ctx, table, rows...)
}

func (f *faultGateway) Update(ctx context.Context, table string, patch, match gateway.Row) ([]gateway.Row, error) {
	if err := f.check(table, "update"); err != nil {
		return nil, err
	}
	return f.Gateway.Update(ctx, table, patch, match)
}

func (f *faultGateway) Delete(ctx context.Context, table string, match gateway.Row) error {
	if err := f.check(table, "delete"); err != nil {
		return err
	}
	return f.Gateway.Delete(ctx, table, match)
}

func (f *faultGateway) Upsert(ctx context.Context, table string, rows []gateway.Row, conflictKey string) error {
	if err := f.check(table, "upsert"); err != nil {
		return err
	}
	return f.Gateway.Upsert(ctx, table, rows, conflictKey)
}

type harness struct {
	store *Store
	gw    *faultGateway
	sql   *sqlgateway.Gateway
}

func newHarness(t *testing.T, autoConfirm bool, opts ...Option) *harness {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	sg := sqlgateway.New(db, sqlgateway.Options{
		JWTSecret:    "0123456789abcdef0123456789abcdef",
		SessionTTL:   time.Hour,
		AutoConfirm:  autoConfirm,
		QueryTimeout: 5 * time.Second,
	}, zap.NewNop())
	fg := &faultGateway{Gateway: sg, failures: map[string]error{}}

	opts = append([]Option{WithLogger(zap.NewNop())}, opts...)
	return &harness{store: New(fg, opts...), gw: fg, sql: sg}
}
