package sqlgateway

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"autoparts-backend/internal/database"
	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestGateway(t *testing.T, autoConfirm bool) *Gateway {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	return New(db, Options{
		JWTSecret:    testSecret,
		SessionTTL:   time.Hour,
		AutoConfirm:  autoConfirm,
		QueryTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestSignUpSignInSignOut(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	s, err := g.SignUp(ctx, " Karim@AutoPro.com ", "secret1")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "karim@autopro.com", s.Email)

	_, err = g.SignUp(ctx, "karim@autopro.com", "secret1")
	assert.ErrorIs(t, err, gateway.ErrAccountExists)

	require.NoError(t, g.SignOut(ctx))
	cur, err := g.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)

	_, err = g.SignIn(ctx, "karim@autopro.com", "wrong-password")
	assert.ErrorIs(t, err, gateway.ErrInvalidCredentials)
	_, err = g.SignIn(ctx, "nobody@autopro.com", "secret1")
	assert.ErrorIs(t, err, gateway.ErrInvalidCredentials)

	s, err = g.SignIn(ctx, "KARIM@autopro.com", "secret1")
	require.NoError(t, err)
	cur, err = g.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, s.AccessToken, cur.AccessToken)
}

func TestSignUpPendingConfirmation(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, false)

	s, err := g.SignUp(ctx, "new@autopro.com", "secret1")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = g.SignIn(ctx, "new@autopro.com", "secret1")
	assert.ErrorIs(t, err, gateway.ErrNotConfirmed)

	require.NoError(t, g.ConfirmAccount(ctx, "new@autopro.com"))
	_, err = g.SignIn(ctx, "new@autopro.com", "secret1")
	assert.NoError(t, err)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	g := newTestGateway(t, true)
	_, err := g.SignUp(context.Background(), "a@b.com", "123")
	assert.Error(t, err)
}

func TestExpiredSessionIsDropped(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)
	g.opts.SessionTTL = -time.Minute

	_, err := g.SignUp(ctx, "late@autopro.com", "secret1")
	require.NoError(t, err)

	cur, err := g.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestVerifyAccessToken(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	s, err := g.SignUp(ctx, "karim@autopro.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, g.SignOut(ctx))

	got, err := g.Verify(ctx, s.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "karim@autopro.com", got.Email)
	assert.Equal(t, s.AccountID, got.AccountID)
	assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Second)

	forged, _, err := issueToken([]byte("another-secret-another-secret-00"), time.Hour, &models.AuthAccount{ID: s.AccountID, Email: s.Email})
	require.NoError(t, err)
	expired, _, err := issueToken([]byte(testSecret), -time.Minute, &models.AuthAccount{ID: s.AccountID, Email: s.Email})
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", forged, expired} {
		_, err := g.Verify(ctx, token)
		assert.ErrorIs(t, err, gateway.ErrInvalidSession)
	}
}

func TestInsertSelectUpdateDelete(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	rows, err := g.Insert(ctx, "suppliers",
		gateway.Row{"full_name": "Atlas Pièces", "phone": "0550", "address": "Oran"},
		gateway.Row{"full_name": "Sahara Auto", "phone": "0551", "address": "Alger"},
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Atlas Pièces", rows[0]["full_name"])
	assert.Equal(t, "Sahara Auto", rows[1]["full_name"])
	id, _ := rows[0]["id"].(string)
	require.NotEmpty(t, id)
	assert.NotNil(t, rows[0]["created_at"])

	updated, err := g.Update(ctx, "suppliers", gateway.Row{"phone": "0660"}, gateway.ByID(id))
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, "0660", updated[0]["phone"])

	_, err = g.Update(ctx, "suppliers", gateway.Row{"phone": "1"}, gateway.ByID("missing"))
	assert.ErrorIs(t, err, gateway.ErrNoRows)

	found, err := g.Select(ctx, gateway.Query{Table: "suppliers", Match: gateway.Row{"address": "Oran"}})
	require.NoError(t, err)
	require.Len(t, found, 1)

	require.NoError(t, g.Delete(ctx, "suppliers", gateway.ByID(id)))
	all, err := g.Select(ctx, gateway.Query{Table: "suppliers"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Sahara Auto", all[0]["full_name"])

	assert.Error(t, g.Delete(ctx, "suppliers", nil))
}

func TestSelectOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	for _, name := range []string{"b", "c", "a"} {
		_, err := g.Insert(ctx, "users", gateway.Row{"username": name, "email": name + "@x.com", "role": "WORKER"})
		require.NoError(t, err)
	}

	rows, err := g.Select(ctx, gateway.Query{Table: "users", Order: gateway.Desc("username"), Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "c", rows[0]["username"])
	assert.Equal(t, "b", rows[1]["username"])

	rows, err = g.Select(ctx, gateway.Query{Table: "users", Columns: []string{"email"}, Match: gateway.Row{"username": "a"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@x.com", rows[0]["email"])
	assert.NotContains(t, rows[0], "role")
}

func TestSelectEmbedsChildren(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	headers, err := g.Insert(ctx, "sales_invoices",
		gateway.Row{"total_amount": 100.0, "paid_amount": 60.0, "debt_amount": 40.0},
		gateway.Row{"total_amount": 10.0, "paid_amount": 10.0, "debt_amount": 0.0},
	)
	require.NoError(t, err)
	first := headers[0]["id"].(string)

	_, err = g.Insert(ctx, "sales_items",
		gateway.Row{"invoice_id": first, "product_id": "p1", "product_name": "Filtre", "quantity": 2, "price": 50.0},
	)
	require.NoError(t, err)
	_, err = g.Insert(ctx, "sales_payments", gateway.Row{"invoice_id": first, "amount": 60.0})
	require.NoError(t, err)

	rows, err := g.Select(ctx, gateway.Query{
		Table: "sales_invoices",
		Embeds: []gateway.Embed{
			{Alias: "paymentHistory", Table: "sales_payments", ForeignKey: "invoice_id"},
			{Alias: "items", Table: "sales_items", ForeignKey: "invoice_id"},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, r := range rows {
		items := r["items"].([]gateway.Row)
		payments := r["paymentHistory"].([]gateway.Row)
		if r["id"] == first {
			require.Len(t, items, 1)
			assert.Equal(t, "Filtre", items[0]["product_name"])
			require.Len(t, payments, 1)
		} else {
			assert.Empty(t, items)
			assert.Empty(t, payments)
		}
	}
}

func TestUpsertOnConflictKey(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t, true)

	row := gateway.Row{"email": "ali@autopro.com", "username": "ali", "full_name": "ali", "role": "WORKER"}
	require.NoError(t, g.Upsert(ctx, "users", []gateway.Row{row}, "email"))

	row = gateway.Row{"email": "ali@autopro.com", "username": "ali", "full_name": "Ali B.", "role": "ADMIN"}
	require.NoError(t, g.Upsert(ctx, "users", []gateway.Row{row}, "email"))

	rows, err := g.Select(ctx, gateway.Query{Table: "users"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ali B.", rows[0]["full_name"])
	assert.Equal(t, "ADMIN", rows[0]["role"])
}
