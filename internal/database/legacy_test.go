package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type columnRows struct {
	names []string
	idx   int
}

func (r *columnRows) Close()                                       {}
func (r *columnRows) Err() error                                   { return nil }
func (r *columnRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *columnRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *columnRows) Values() ([]any, error)                       { return nil, nil }
func (r *columnRows) RawValues() [][]byte                          { return nil }
func (r *columnRows) Conn() *pgx.Conn                              { return nil }

func (r *columnRows) Next() bool {
	if r.idx < len(r.names) {
		r.idx++
		return true
	}
	return false
}

func (r *columnRows) Scan(dest ...any) error {
	*dest[0].(*string) = r.names[r.idx-1]
	return nil
}

type legacyTx struct {
	pgx.Tx
	columns    []string
	failOn     string
	executed   []string
	committed  bool
	rolledBack bool
}

func (t *legacyTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return &columnRows{names: t.columns}, nil
}

func (t *legacyTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if t.failOn != "" && strings.Contains(sql, t.failOn) {
		return pgconn.CommandTag{}, errors.New("statement failed")
	}
	t.executed = append(t.executed, strings.TrimSpace(sql))
	return pgconn.NewCommandTag("OK"), nil
}

func (t *legacyTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *legacyTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type txBeginnerFunc func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)

func (f txBeginnerFunc) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	return f(ctx, opts)
}

func beginner(tx *legacyTx) TxBeginner {
	return txBeginnerFunc(func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
		return tx, nil
	})
}

func TestMigrateLegacyDesignation(t *testing.T) {
	legacyColumns := []string{"id", "name", "title", "department", "office_location", "email", "google_scholar_url",
		"linkedin_url", "profile_picture_url", "headline", "experience", "certifications", "projects",
		"publications", "last_updated"}

	t.Run("no table", func(t *testing.T) {
		tx := &legacyTx{}
		status, err := MigrateLegacyDesignation(context.Background(), beginner(tx))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != LegacyNoTable || len(tx.executed) != 0 || tx.committed {
			t.Fatalf("expected untouched database, got status=%s executed=%v", status, tx.executed)
		}
	})

	t.Run("already migrated", func(t *testing.T) {
		tx := &legacyTx{columns: []string{"id", "name", "designation"}}
		status, err := MigrateLegacyDesignation(context.Background(), beginner(tx))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != LegacyAlreadyMigrated || len(tx.executed) != 0 {
			t.Fatalf("expected no-op, got status=%s executed=%v", status, tx.executed)
		}
	})

	t.Run("unexpected schema", func(t *testing.T) {
		tx := &legacyTx{columns: []string{"id", "name"}}
		_, err := MigrateLegacyDesignation(context.Background(), beginner(tx))
		if !errors.Is(err, ErrUnexpectedSchema) {
			t.Fatalf("expected ErrUnexpectedSchema, got %v", err)
		}
		if !tx.rolledBack {
			t.Fatalf("expected rollback")
		}
	})

	t.Run("migrates", func(t *testing.T) {
		tx := &legacyTx{columns: legacyColumns}
		status, err := MigrateLegacyDesignation(context.Background(), beginner(tx))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != LegacyMigrated || !tx.committed {
			t.Fatalf("expected committed migration, got %s", status)
		}
		if len(tx.executed) != len(legacySteps) {
			t.Fatalf("expected %d statements, got %d", len(legacySteps), len(tx.executed))
		}
		order := []string{"CREATE TABLE faculty_new", "INSERT INTO faculty_new", "DROP TABLE faculty", "ALTER TABLE faculty_new RENAME TO faculty"}
		for i, prefix := range order {
			if !strings.HasPrefix(tx.executed[i], prefix) {
				t.Fatalf("statement %d: expected prefix %q, got %q", i, prefix, tx.executed[i])
			}
		}
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		tx := &legacyTx{columns: legacyColumns, failOn: "DROP TABLE"}
		if _, err := MigrateLegacyDesignation(context.Background(), beginner(tx)); err == nil {
			t.Fatalf("expected error")
		}
		if tx.committed || !tx.rolledBack {
			t.Fatalf("expected rollback without commit")
		}
	})
}
