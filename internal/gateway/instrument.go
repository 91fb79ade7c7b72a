package gateway

import (
	"context"
	"time"

	"autoparts-backend/internal/metrics"
)

// Instrumented records call counts and latency for every gateway operation.
type Instrumented struct {
	next Gateway
	m    *metrics.Metrics
}

func Instrument(next Gateway, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, m: m}
}

func (g *Instrumented) observe(table, op string, start time.Time, err error) {
	g.m.ObserveGateway(table, op, time.Since(start), err)
}

func (g *Instrumented) SignIn(ctx context.Context, email, password string) (s *Session, err error) {
	defer func(start time.Time) { g.observe("auth", "sign_in", start, err) }(time.Now())
	return g.next.SignIn(ctx, email, password)
}

func (g *Instrumented) SignUp(ctx context.Context, email, password string) (s *Session, err error) {
	defer func(start time.Time) { g.observe("auth", "sign_up", start, err) }(time.Now())
	return g.next.SignUp(ctx, email, password)
}

func (g *Instrumented) SignOut(ctx context.Context) (err error) {
	defer func(start time.Time) { g.observe("auth", "sign_out", start, err) }(time.Now())
	return g.next.SignOut(ctx)
}

func (g *Instrumented) Session(ctx context.Context) (s *Session, err error) {
	defer func(start time.Time) { g.observe("auth", "session", start, err) }(time.Now())
	return g.next.Session(ctx)
}

func (g *Instrumented) Verify(ctx context.Context, accessToken string) (s *Session, err error) {
	defer func(start time.Time) { g.observe("auth", "verify", start, err) }(time.Now())
	return g.next.Verify(ctx, accessToken)
}

func (g *Instrumented) Select(ctx context.Context, q Query) (rows []Row, err error) {
	defer func(start time.Time) { g.observe(q.Table, "select", start, err) }(time.Now())
	return g.next.Select(ctx, q)
}

func (g *Instrumented) Insert(ctx context.Context, table string, rows ...Row) (out []Row, err error) {
	defer func(start time.Time) { g.observe(table, "insert", start, err) }(time.Now())
	return g.next.Insert(ctx, table, rows...)
}

func (g *Instrumented) Update(ctx context.Context, table string, patch, match Row) (out []Row, err error) {
	defer func(start time.Time) { g.observe(table, "update", start, err) }(time.Now())
	return g.next.Update(ctx, table, patch, match)
}

func (g *Instrumented) Delete(ctx context.Context, table string, match Row) (err error) {
	defer func(start time.Time) { g.observe(table, "delete", start, err) }(time.Now())
	return g.next.Delete(ctx, table, match)
}

func (g *Instrumented) Upsert(ctx context.Context, table string, rows []Row, conflictKey string) (err error) {
	defer func(start time.Time) { g.observe(table, "upsert", start, err) }(time.Now())
	return g.next.Upsert(ctx, table, rows, conflictKey)
}
