package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// LegacyStatus reports the outcome of the designation column migration.
type LegacyStatus string

const (
	// LegacyNoTable means there is no faculty table yet; the runtime schema will create it.
	LegacyNoTable LegacyStatus = "no_table"
	// LegacyAlreadyMigrated means the table already has a designation column.
	LegacyAlreadyMigrated LegacyStatus = "already_migrated"
	// LegacyMigrated means the title column was renamed to designation.
	LegacyMigrated LegacyStatus = "migrated"
)

// ErrUnexpectedSchema is returned when the faculty table has neither a title nor a
// designation column.
var ErrUnexpectedSchema = errors.New("unexpected faculty schema")

// TxBeginner starts transactions; satisfied by *pgxpool.Pool.
type TxBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

const legacyColumnsSQL = `
        SELECT column_name
        FROM information_schema.columns
        WHERE table_schema = current_schema() AND table_name = 'faculty'
    `

var legacySteps = []struct {
	name  string
	query string
}{
	{
		name: "create faculty_new",
		query: `
        CREATE TABLE faculty_new (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            designation TEXT,
            department TEXT,
            office_location TEXT,
            email TEXT,
            google_scholar_url TEXT,
            linkedin_url TEXT,
            profile_picture_url TEXT,
            headline TEXT,
            experience TEXT NOT NULL DEFAULT '[]',
            certifications TEXT NOT NULL DEFAULT '[]',
            projects TEXT NOT NULL DEFAULT '[]',
            publications TEXT NOT NULL DEFAULT '[]',
            last_updated TEXT
        )`,
	},
	{
		name: "copy rows",
		query: `
        INSERT INTO faculty_new (
            id, name, designation, department, office_location, email,
            google_scholar_url, linkedin_url, profile_picture_url, headline,
            experience, certifications, projects, publications, last_updated
        )
        SELECT
            id, name, title, department, office_location, email,
            google_scholar_url, linkedin_url, profile_picture_url, headline,
            COALESCE(experience, '[]'), COALESCE(certifications, '[]'),
            COALESCE(projects, '[]'), COALESCE(publications, '[]'),
            last_updated::text
        FROM faculty`,
	},
	{
		name:  "drop faculty",
		query: `DROP TABLE faculty`,
	},
	{
		name:  "rename faculty_new",
		query: `ALTER TABLE faculty_new RENAME TO faculty`,
	},
	{
		name:  "recreate name index",
		query: `CREATE INDEX IF NOT EXISTS faculty_name_idx ON faculty (name)`,
	},
	{
		name: "align id sequence",
		query: `
        SELECT setval(pg_get_serial_sequence('faculty', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL)
        FROM faculty`,
	},
}

// MigrateLegacyDesignation renames the legacy title column to designation by
// creating a new table, copying every row, dropping the old table and renaming
// the new one, all inside a single transaction. It is a no-op when the table is
// missing or already migrated, and rolls back on any failure.
func MigrateLegacyDesignation(ctx context.Context, db TxBeginner) (LegacyStatus, error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", fmt.Errorf("start legacy migration tx: %w", err)
	}
	defer tx.Rollback(ctx)

	columns, err := facultyColumnSet(ctx, tx)
	if err != nil {
		return "", err
	}

	switch {
	case len(columns) == 0:
		return LegacyNoTable, nil
	case columns["designation"]:
		return LegacyAlreadyMigrated, nil
	case !columns["title"]:
		return "", fmt.Errorf("%w: neither title nor designation column present", ErrUnexpectedSchema)
	}

	for _, step := range legacySteps {
		if _, err := tx.Exec(ctx, step.query); err != nil {
			return "", fmt.Errorf("legacy migration step %q: %w", step.name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit legacy migration: %w", err)
	}
	return LegacyMigrated, nil
}

func facultyColumnSet(ctx context.Context, tx pgx.Tx) (map[string]bool, error) {
	rows, err := tx.Query(ctx, legacyColumnsSQL)
	if err != nil {
		return nil, fmt.Errorf("inspect faculty columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faculty columns: %w", err)
	}
	return columns, nil
}
