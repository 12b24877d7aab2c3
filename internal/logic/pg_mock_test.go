package logic

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type MockPgPool struct {
	QueryFunc    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFunc func(ctx context.Context, sql string, args ...any) pgx.Row

	QuerySQL  []string
	QueryArgs [][]any
}

func (m *MockPgPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	m.QuerySQL = append(m.QuerySQL, sql)
	m.QueryArgs = append(m.QueryArgs, args)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, sql, args...)
	}
	return &MockPgRows{}, nil
}

func (m *MockPgPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if m.QueryRowFunc != nil {
		return m.QueryRowFunc(ctx, sql, args...)
	}
	return &MockPgRow{err: pgx.ErrNoRows}
}

func (m *MockPgPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

// MockPgRows yields one map per row, with columns in the given order.
type MockPgRows struct {
	columns []string
	rows    [][]any
	curr    int
	err     error
}

func (r *MockPgRows) Close()                        {}
func (r *MockPgRows) Err() error                    { return r.err }
func (r *MockPgRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *MockPgRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}
func (r *MockPgRows) Next() bool {
	r.curr++
	return r.curr <= len(r.rows)
}
func (r *MockPgRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	return nil
}
func (r *MockPgRows) Values() ([]any, error) { return r.rows[r.curr-1], nil }
func (r *MockPgRows) RawValues() [][]byte    { return nil }
func (r *MockPgRows) Conn() *pgx.Conn        { return nil }

type MockPgRow struct {
	values []any
	err    error
}

func (r *MockPgRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		}
	}
	return nil
}
