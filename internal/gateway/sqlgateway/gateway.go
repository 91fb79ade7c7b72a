// Package sqlgateway serves the gateway contract from a gorm connection
// (PostgreSQL in production, SQLite locally and in tests).
package sqlgateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoparts-backend/internal/gateway"
)

type Options struct {
	JWTSecret    string
	SessionTTL   time.Duration
	AutoConfirm  bool
	QueryTimeout time.Duration
}

type Gateway struct {
	db   *gorm.DB
	log  *zap.Logger
	opts Options

	mu      sync.RWMutex
	session *gateway.Session
}

var _ gateway.Gateway = (*Gateway)(nil)

func New(db *gorm.DB, opts Options, log *zap.Logger) *Gateway {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{db: db, opts: opts, log: log.Named("sqlgateway")}
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.opts.QueryTimeout)
}

func (g *Gateway) Select(ctx context.Context, q gateway.Query) ([]gateway.Row, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	tx := g.db.WithContext(ctx).Table(q.Table)
	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}
	if len(q.Match) > 0 {
		tx = tx.Where(map[string]any(q.Match))
	}
	if q.Order != nil {
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: q.Order.Field},
			Desc:   !q.Order.Ascending,
		})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	rows := []map[string]any{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w", q.Table, err)
	}

	if len(q.Embeds) > 0 && len(rows) > 0 {
		if err := g.embed(ctx, rows, q.Embeds); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (g *Gateway) embed(ctx context.Context, rows []gateway.Row, embeds []gateway.Embed) error {
	ids := make([]any, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r["id"])
	}

	for _, e := range embeds {
		children := []map[string]any{}
		err := g.db.WithContext(ctx).Table(e.Table).
			Where(clause.IN{Column: clause.Column{Name: e.ForeignKey}, Values: ids}).
			Find(&children).Error
		if err != nil {
			return fmt.Errorf("select %s for %s: %w", e.Table, e.Alias, err)
		}

		byParent := make(map[string][]gateway.Row, len(rows))
		for _, c := range children {
			key := fmt.Sprint(c[e.ForeignKey])
			byParent[key] = append(byParent[key], c)
		}
		for _, r := range rows {
			list := byParent[fmt.Sprint(r["id"])]
			if list == nil {
				list = []gateway.Row{}
			}
			r[e.Alias] = list
		}
	}
	return nil
}

// Insert writes rows in one transaction and returns them as stored, in input order.
// Rows without an id get a UUID.
func (g *Gateway) Insert(ctx context.Context, table string, rows ...gateway.Row) ([]gateway.Row, error) {
	if len(rows) == 0 {
		return []gateway.Row{}, nil
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	ids := make([]any, 0, len(rows))
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			row := withID(r)
			ids = append(ids, row["id"])
			if err := tx.Table(table).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", table, err)
	}

	return g.byIDs(ctx, table, ids)
}

func (g *Gateway) Update(ctx context.Context, table string, patch, match gateway.Row) ([]gateway.Row, error) {
	if len(match) == 0 {
		return nil, fmt.Errorf("update %s: match clause required", table)
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	if len(patch) > 0 {
		res := g.db.WithContext(ctx).Table(table).
			Where(map[string]any(match)).
			Updates(map[string]any(patch))
		if res.Error != nil {
			return nil, fmt.Errorf("update %s: %w", table, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("update %s: %w", table, gateway.ErrNoRows)
		}
	}

	rows := []map[string]any{}
	if err := g.db.WithContext(ctx).Table(table).Where(map[string]any(match)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("update %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("update %s: %w", table, gateway.ErrNoRows)
	}
	return rows, nil
}

func (g *Gateway) Delete(ctx context.Context, table string, match gateway.Row) error {
	if len(match) == 0 {
		return fmt.Errorf("delete %s: match clause required", table)
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	err := g.db.WithContext(ctx).Table(table).
		Where(map[string]any(match)).
		Delete(map[string]any{}).Error
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

// Upsert inserts rows, updating every non-key column when conflictKey already exists.
func (g *Gateway) Upsert(ctx context.Context, table string, rows []gateway.Row, conflictKey string) error {
	if conflictKey == "" {
		return errors.New("upsert: conflict key required")
	}
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			row := withID(r)
			cols := make([]string, 0, len(row))
			for k := range row {
				if k != "id" && k != conflictKey {
					cols = append(cols, k)
				}
			}
			onConflict := clause.OnConflict{Columns: []clause.Column{{Name: conflictKey}}}
			if len(cols) > 0 {
				onConflict.DoUpdates = clause.AssignmentColumns(cols)
			} else {
				onConflict.DoNothing = true
			}
			if err := tx.Table(table).Clauses(onConflict).Create(row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}
	return nil
}

func (g *Gateway) byIDs(ctx context.Context, table string, ids []any) ([]gateway.Row, error) {
	found := []map[string]any{}
	err := g.db.WithContext(ctx).Table(table).
		Where(clause.IN{Column: clause.Column{Name: "id"}, Values: ids}).
		Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("read back %s: %w", table, err)
	}

	byID := make(map[string]gateway.Row, len(found))
	for _, r := range found {
		byID[fmt.Sprint(r["id"])] = r
	}
	out := make([]gateway.Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[fmt.Sprint(id)]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func withID(r gateway.Row) map[string]any {
	row := make(map[string]any, len(r)+1)
	for k, v := range r {
		row[k] = v
	}
	if id, _ := row["id"].(string); id == "" {
		row["id"] = uuid.NewString()
	}
	return row
}
