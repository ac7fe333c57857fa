package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"careerflow-engine/internal/domain"
	"careerflow-engine/internal/scrape/util"
)

// Importer adds extracted listings to the jobs table, skipping any that are
// already tracked.
type Importer struct {
	DB *sql.DB

	// Categorize maps a title to a category tag. Optional.
	Categorize func(title string) string

	// GenericTitles are placeholder titles ("Untitled") that must not be
	// used to match an existing job by title.
	GenericTitles []string

	Now func() time.Time
}

type ImportResult struct {
	Imported int     `json:"imported"`
	Skipped  int     `json:"skipped"`
	IDs      []int64 `json:"ids"`
}

// Import processes listings in order. A listing is skipped when a job with
// the same link, or failing that the same title, already exists.
func (im Importer) Import(ctx context.Context, listings []domain.Listing) (ImportResult, error) {
	res := ImportResult{IDs: []int64{}}
	if len(listings) == 0 {
		return res, nil
	}

	now := time.Now
	if im.Now != nil {
		now = im.Now
	}
	date := now().UTC().Format(time.RFC3339)

	for _, l := range listings {
		title := util.CleanText(l.Title)
		company := util.CleanText(l.Company)
		if title == "" || l.Link == "" {
			res.Skipped++
			continue
		}

		matchTitle := title
		if slices.Contains(im.GenericTitles, title) {
			matchTitle = ""
		}
		if _, found, err := FindJobByLinkOrTitle(ctx, im.DB, l.Link, matchTitle); err != nil {
			return res, fmt.Errorf("lookup %s: %w", l.Link, err)
		} else if found {
			res.Skipped++
			continue
		}

		category := ""
		if im.Categorize != nil {
			category = im.Categorize(title)
		}

		id, err := InsertJobIgnore(ctx, im.DB, JobInsert{
			Title:    title,
			Company:  company,
			Link:     l.Link,
			Category: category,
			Status:   domain.StatusSaved,
			Date:     date,
			SourceID: util.SourceID(l.Link),
		})
		if err != nil {
			return res, err
		}
		if id == 0 {
			res.Skipped++
			continue
		}
		res.Imported++
		res.IDs = append(res.IDs, id)
	}
	return res, nil
}
