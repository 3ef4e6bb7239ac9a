package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/faculty-hub/api/internal/entity"
)

// ErrFacultyNotFound is returned when no faculty row matches the given id.
var ErrFacultyNotFound = errors.New("faculty not found")

// FacultyRepository describes persistence operations for faculty records.
type FacultyRepository interface {
	Create(ctx context.Context, faculty *entity.Faculty) (int64, error)
	BulkCreate(ctx context.Context, records []entity.Faculty) (BulkCreateResult, error)
	Get(ctx context.Context, id int64) (*entity.Faculty, error)
	List(ctx context.Context) ([]entity.Faculty, error)
	Update(ctx context.Context, id int64, faculty *entity.Faculty) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]entity.Faculty, error)
}

// BulkCreateResult lists the identifiers generated by a bulk insert.
type BulkCreateResult struct {
	IDs []int64
}

// PGXFacultyRepository implements FacultyRepository using pgx.
type PGXFacultyRepository struct {
	pool pgxPool
	now  func() time.Time
}

// NewPGXFacultyRepository wires a pgx backed repository.
func NewPGXFacultyRepository(pool *pgxpool.Pool) *PGXFacultyRepository {
	return &PGXFacultyRepository{pool: pool, now: time.Now}
}

const facultyColumns = `
            id,
            name,
            designation,
            department,
            office_location,
            email,
            google_scholar_url,
            linkedin_url,
            profile_picture_url,
            headline,
            experience,
            certifications,
            projects,
            publications,
            last_updated`

const insertFacultySQL = `
        INSERT INTO faculty (
            name,
            designation,
            department,
            office_location,
            email,
            google_scholar_url,
            linkedin_url,
            profile_picture_url,
            headline,
            experience,
            certifications,
            projects,
            publications,
            last_updated
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING id
    `

// Create inserts a new faculty row and returns its generated id.
func (r *PGXFacultyRepository) Create(ctx context.Context, faculty *entity.Faculty) (int64, error) {
	args, err := r.writeArgs(faculty)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.pool.QueryRow(ctx, insertFacultySQL, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert faculty: %w", err)
	}
	return id, nil
}

// BulkCreate inserts all records inside a single transaction.
func (r *PGXFacultyRepository) BulkCreate(ctx context.Context, records []entity.Faculty) (BulkCreateResult, error) {
	var result BulkCreateResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk insert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	ids := make([]int64, 0, len(records))
	for i := range records {
		args, err := r.writeArgs(&records[i])
		if err != nil {
			return result, err
		}
		var id int64
		if err := tx.QueryRow(ctx, insertFacultySQL, args...).Scan(&id); err != nil {
			return result, fmt.Errorf("bulk insert faculty %q: %w", records[i].Name, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk insert tx: %w", err)
	}

	result.IDs = ids
	return result, nil
}

// Get fetches a single faculty record by id.
func (r *PGXFacultyRepository) Get(ctx context.Context, id int64) (*entity.Faculty, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+facultyColumns+` FROM faculty WHERE id = $1`, id)

	faculty, err := scanFaculty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("query faculty by id: %w", err)
	}
	return faculty, nil
}

// List returns every faculty record ordered by name.
func (r *PGXFacultyRepository) List(ctx context.Context) ([]entity.Faculty, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+facultyColumns+` FROM faculty ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list faculty: %w", err)
	}
	defer rows.Close()

	return collectFaculty(rows)
}

// Update replaces every column of the faculty row. Nil lists are written as empty
// lists, so callers must pass the complete desired state.
func (r *PGXFacultyRepository) Update(ctx context.Context, id int64, faculty *entity.Faculty) error {
	args, err := r.writeArgs(faculty)
	if err != nil {
		return err
	}
	args = append(args, id)

	query := `
        UPDATE faculty SET
            name = $1,
            designation = $2,
            department = $3,
            office_location = $4,
            email = $5,
            google_scholar_url = $6,
            linkedin_url = $7,
            profile_picture_url = $8,
            headline = $9,
            experience = $10,
            certifications = $11,
            projects = $12,
            publications = $13,
            last_updated = $14
        WHERE id = $15
    `

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update faculty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}
	return nil
}

// Delete removes a faculty row by id.
func (r *PGXFacultyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faculty: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFacultyNotFound
	}
	return nil
}

// Search performs a case-insensitive substring match over the scalar text columns
// and over the serialized experience, projects and publications blobs, so a query
// may also match text buried in those nested lists. An empty query matches every row.
func (r *PGXFacultyRepository) Search(ctx context.Context, query string) ([]entity.Faculty, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := r.pool.Query(ctx, `
        SELECT `+facultyColumns+`
        FROM faculty
        WHERE name ILIKE $1
           OR department ILIKE $1
           OR designation ILIKE $1
           OR headline ILIKE $1
           OR experience ILIKE $1
           OR projects ILIKE $1
           OR publications ILIKE $1
        ORDER BY name ASC, id ASC
    `, pattern)
	if err != nil {
		return nil, fmt.Errorf("search faculty: %w", err)
	}
	defer rows.Close()

	return collectFaculty(rows)
}

func (r *PGXFacultyRepository) writeArgs(faculty *entity.Faculty) ([]any, error) {
	if faculty == nil {
		return nil, fmt.Errorf("faculty payload is nil")
	}

	experience, err := encodeList(faculty.Experience)
	if err != nil {
		return nil, fmt.Errorf("marshal experience: %w", err)
	}
	certifications, err := encodeList(faculty.Certifications)
	if err != nil {
		return nil, fmt.Errorf("marshal certifications: %w", err)
	}
	projects, err := encodeList(faculty.Projects)
	if err != nil {
		return nil, fmt.Errorf("marshal projects: %w", err)
	}
	publications, err := encodeList(faculty.Publications)
	if err != nil {
		return nil, fmt.Errorf("marshal publications: %w", err)
	}

	lastUpdated := r.now()
	if faculty.LastUpdated != nil {
		lastUpdated = *faculty.LastUpdated
	}

	return []any{
		faculty.Name,
		faculty.Designation,
		faculty.Department,
		faculty.OfficeLocation,
		faculty.Email,
		faculty.ScholarURL,
		faculty.LinkedInURL,
		faculty.ProfilePictureURL,
		faculty.Headline,
		experience,
		certifications,
		projects,
		publications,
		FormatTimestamp(lastUpdated),
	}, nil
}

func collectFaculty(rows pgx.Rows) ([]entity.Faculty, error) {
	records := make([]entity.Faculty, 0)
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan faculty: %w", err)
		}
		records = append(records, *faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate faculty: %w", err)
	}
	return records, nil
}

func scanFaculty(row pgx.Row) (*entity.Faculty, error) {
	var (
		f              entity.Faculty
		designation    sql.NullString
		department     sql.NullString
		officeLocation sql.NullString
		email          sql.NullString
		scholarURL     sql.NullString
		linkedinURL    sql.NullString
		pictureURL     sql.NullString
		headline       sql.NullString
		experience     sql.NullString
		certifications sql.NullString
		projects       sql.NullString
		publications   sql.NullString
		lastUpdated    sql.NullString
	)

	err := row.Scan(
		&f.ID,
		&f.Name,
		&designation,
		&department,
		&officeLocation,
		&email,
		&scholarURL,
		&linkedinURL,
		&pictureURL,
		&headline,
		&experience,
		&certifications,
		&projects,
		&publications,
		&lastUpdated,
	)
	if err != nil {
		return nil, err
	}

	f.Designation = nullStringToPtr(designation)
	f.Department = nullStringToPtr(department)
	f.OfficeLocation = nullStringToPtr(officeLocation)
	f.Email = nullStringToPtr(email)
	f.ScholarURL = nullStringToPtr(scholarURL)
	f.LinkedInURL = nullStringToPtr(linkedinURL)
	f.ProfilePictureURL = nullStringToPtr(pictureURL)
	f.Headline = nullStringToPtr(headline)
	f.Experience = decodeList[entity.ExperienceItem](experience)
	f.Certifications = decodeList[entity.Certification](certifications)
	f.Projects = decodeList[entity.Project](projects)
	f.Publications = decodeList[entity.Publication](publications)
	if lastUpdated.Valid {
		if ts, ok := ParseTimestamp(lastUpdated.String); ok {
			f.LastUpdated = &ts
		}
	}

	return &f, nil
}

func encodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeList parses a serialized list column. Absent or malformed blobs yield an
// empty list.
func decodeList[T any](raw sql.NullString) []T {
	items := []T{}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return items
	}
	var decoded []T
	if err := json.Unmarshal([]byte(raw.String), &decoded); err != nil || decoded == nil {
		return items
	}
	return decoded
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
