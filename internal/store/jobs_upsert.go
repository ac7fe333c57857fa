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

type JobInsert struct {
	Title    string
	Company  string
	Link     string
	Category string
	Status   domain.Status
	Date     string // RFC3339; now when empty
	SourceID string
}

// FindJobByLinkOrTitle looks for an exact link match first, then falls back
// to an exact title match. An empty link or title skips that step.
func FindJobByLinkOrTitle(ctx context.Context, db *sql.DB, link, title string) (domain.Job, bool, error) {
	if link = strings.TrimSpace(link); link != "" {
		j, err := scanJob(db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE link = ? LIMIT 1;`, link))
		if err == nil {
			return j, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return domain.Job{}, false, err
		}
	}

	if title = strings.TrimSpace(title); title != "" {
		j, err := scanJob(db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE title = ? LIMIT 1;`, title))
		if err == nil {
			return j, true, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return domain.Job{}, false, err
		}
	}
	return domain.Job{}, false, nil
}

// InsertJobIgnore inserts j unless a row with the same source_id exists.
// Returns the new row id, or 0 when nothing was inserted.
func InsertJobIgnore(ctx context.Context, db *sql.DB, j JobInsert) (id int64, err error) {
	if strings.TrimSpace(j.Title) == "" {
		return 0, errors.New("insert job: missing title")
	}
	if j.Status == "" {
		j.Status = domain.StatusSaved
	}
	if j.Date == "" {
		j.Date = time.Now().UTC().Format(time.RFC3339)
	}

	// relies on unique index on source_id WHERE source_id != ''
	res, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (title, company, link, category, status, date, source_id)
VALUES (?, ?, ?, ?, ?, ?, ?);`,
		j.Title, j.Company, j.Link, j.Category, string(j.Status), j.Date, j.SourceID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, nil
	}
	return res.LastInsertId()
}
