package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"careerflow-engine/internal/domain"
)

var ErrNotFound = errors.New("job not found")

type ListJobsOpts struct {
	Sort   string // date | title | company | status | applied_date
	Order  string // asc | desc
	Status string // optional filter, any casing
	Limit  int
}

const (
	defaultListLimit = 500
	maxListLimit     = 5000
)

const jobColumns = `id, title, company, link, source_id, category, status, applied_date, interview_date, notes, date`

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1: tables ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  company TEXT NOT NULL DEFAULT '',
  link TEXT NOT NULL DEFAULT '',
  source_id TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'Saved',
  applied_date TEXT NOT NULL DEFAULT '',
  interview_date TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  date TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// Back-compat for DBs created before categorization existed.
	if !columnExists(tx, "jobs", "category") {
		if _, err := tx.Exec(`ALTER TABLE jobs ADD COLUMN category TEXT NOT NULL DEFAULT '';`); err != nil {
			return err
		}
	}

	// ---- Schema v1: indexes ----

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_date
ON jobs(date);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_link
ON jobs(link);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_source_id
ON jobs(source_id)
WHERE source_id != '';
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(s rowScanner) (domain.Job, error) {
	var j domain.Job
	var status string
	if err := s.Scan(
		&j.ID,
		&j.Title,
		&j.Company,
		&j.Link,
		&j.SourceID,
		&j.Category,
		&status,
		&j.AppliedDate,
		&j.InterviewDate,
		&j.Notes,
		&j.Date,
	); err != nil {
		return domain.Job{}, err
	}
	j.Status = domain.Status(status)
	if parsed, err := time.Parse(time.RFC3339, j.Date); err == nil {
		j.Date = parsed.Format("2006-01-02 15:04:05")
	}
	return j, nil
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]domain.Job, error) {
	if opts.Sort == "" {
		opts.Sort = "date"
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultListLimit
	}
	if opts.Limit > maxListLimit {
		opts.Limit = maxListLimit
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"date":         "date",
		"title":        "title",
		"company":      "company",
		"status":       "status",
		"applied_date": "applied_date",
	}[opts.Sort]
	if sortCol == "" {
		return nil, fmt.Errorf("unknown sort %q", opts.Sort)
	}

	order := strings.ToLower(opts.Order)
	switch order {
	case "asc", "desc":
	case "":
		order = "asc"
		if sortCol == "date" || sortCol == "applied_date" {
			order = "desc"
		}
	default:
		return nil, fmt.Errorf("unknown order %q", opts.Order)
	}

	where := ""
	var args []any
	if opts.Status != "" {
		st, err := domain.ParseStatus(opts.Status)
		if err != nil {
			return nil, err
		}
		where = "WHERE status = ?"
		args = append(args, string(st))
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT %s
FROM jobs
%s
ORDER BY %s %s, id %s
LIMIT ?;
`, jobColumns, where, sortCol, order, order)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func GetJob(ctx context.Context, db *sql.DB, id int64) (domain.Job, error) {
	row := db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?;`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, ErrNotFound
	}
	return j, err
}

// JobPatch holds the user-editable fields. Nil means unchanged; an empty
// date clears it.
type JobPatch struct {
	Status        *domain.Status `json:"status,omitempty"`
	Category      *string        `json:"category,omitempty"`
	AppliedDate   *string        `json:"appliedDate,omitempty"`
	InterviewDate *string        `json:"interviewDate,omitempty"`
	Notes         *string        `json:"notes,omitempty"`
}

// Validate normalizes the status casing and checks dates are YYYY-MM-DD.
func (p *JobPatch) Validate() error {
	if p.Status != nil {
		st, err := domain.ParseStatus(string(*p.Status))
		if err != nil {
			return err
		}
		p.Status = &st
	}
	for name, d := range map[string]*string{"appliedDate": p.AppliedDate, "interviewDate": p.InterviewDate} {
		if d == nil {
			continue
		}
		*d = strings.TrimSpace(*d)
		if *d == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, *d); err != nil {
			return fmt.Errorf("%s must be YYYY-MM-DD", name)
		}
	}
	return nil
}

func UpdateJob(ctx context.Context, db *sql.DB, id int64, p JobPatch) (domain.Job, error) {
	if err := p.Validate(); err != nil {
		return domain.Job{}, err
	}

	var sets []string
	var args []any
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*p.Status))
	}
	if p.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, strings.TrimSpace(*p.Category))
	}
	if p.AppliedDate != nil {
		sets = append(sets, "applied_date = ?")
		args = append(args, *p.AppliedDate)
	}
	if p.InterviewDate != nil {
		sets = append(sets, "interview_date = ?")
		args = append(args, *p.InterviewDate)
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := db.ExecContext(ctx, `UPDATE jobs SET `+strings.Join(sets, ", ")+` WHERE id = ?;`, args...)
		if err != nil {
			return domain.Job{}, fmt.Errorf("update job %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Job{}, ErrNotFound
		}
	}
	return GetJob(ctx, db, id)
}

func DeleteJob(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
