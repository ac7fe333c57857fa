package store_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerflow-engine/internal/domain"
	"careerflow-engine/internal/store"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.Pool
}

var fixedNow = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

func importAll(t *testing.T, db *sql.DB, listings ...domain.Listing) store.ImportResult {
	t.Helper()

	res, err := store.Importer{
		DB:            db,
		GenericTitles: []string{"Untitled"},
		Now:           fixedNow,
	}.Import(context.Background(), listings)
	require.NoError(t, err)
	return res
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates schema", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		var v int
		require.NoError(t, db.QueryRow(`PRAGMA user_version;`).Scan(&v))
		assert.Equal(t, 1, v)

		var n int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		require.NoError(t, store.Migrate(db))
		require.NoError(t, store.Migrate(db))
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		_, err := store.Open("/nonexistent/dir/test.db")
		require.Error(t, err)
	})
}

func TestImporter_Import(t *testing.T) {
	t.Parallel()

	t.Run("inserts new listings as saved", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		res := importAll(t, db,
			domain.Listing{Title: "Go  Engineer", Company: " Acme ", Link: "https://www.linkedin.com/jobs/view/1"},
			domain.Listing{Title: "SRE", Company: "Initech", Link: "https://www.linkedin.com/jobs/view/2"},
		)

		assert.Equal(t, 2, res.Imported)
		assert.Zero(t, res.Skipped)
		require.Len(t, res.IDs, 2)

		j, err := store.GetJob(context.Background(), db, res.IDs[0])
		require.NoError(t, err)
		assert.Equal(t, "Go Engineer", j.Title)
		assert.Equal(t, "Acme", j.Company)
		assert.Equal(t, domain.StatusSaved, j.Status)
		assert.Equal(t, "linkedin:1", j.SourceID)
		assert.Equal(t, "2024-05-01 10:00:00", j.Date)
	})

	t.Run("re-import skips everything", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		l := domain.Listing{Title: "SRE", Company: "Initech", Link: "https://www.linkedin.com/jobs/view/2"}

		importAll(t, db, l)
		res := importAll(t, db, l)

		assert.Zero(t, res.Imported)
		assert.Equal(t, 1, res.Skipped)
		assert.Empty(t, res.IDs)
	})

	t.Run("same title with another link is a duplicate", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		res := importAll(t, db,
			domain.Listing{Title: "SRE", Link: "https://www.linkedin.com/jobs/view/2"},
			domain.Listing{Title: "SRE", Link: "https://www.linkedin.com/jobs/view/3"},
		)

		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("generic titles never match by title", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		res := importAll(t, db,
			domain.Listing{Title: "Untitled", Link: "https://www.linkedin.com/jobs/view/2"},
			domain.Listing{Title: "Untitled", Link: "https://www.linkedin.com/jobs/view/3"},
		)

		assert.Equal(t, 2, res.Imported)
	})

	t.Run("same posting id under another URL is a duplicate", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		res := importAll(t, db,
			domain.Listing{Title: "A", Link: "https://www.linkedin.com/jobs/view/5"},
			domain.Listing{Title: "B", Link: "https://www.linkedin.com/jobs/view/5/?refId=x"},
		)

		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("categorizes titles", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		res, err := store.Importer{
			DB:         db,
			Categorize: func(title string) string { return "cat:" + title },
		}.Import(context.Background(), []domain.Listing{{Title: "SRE", Link: "https://example.com/sre"}})
		require.NoError(t, err)
		require.Len(t, res.IDs, 1)

		j, err := store.GetJob(context.Background(), db, res.IDs[0])
		require.NoError(t, err)
		assert.Equal(t, "cat:SRE", j.Category)
		assert.Len(t, j.SourceID, 40)
	})

	t.Run("nothing to import", func(t *testing.T) {
		t.Parallel()

		res := importAll(t, openTestDB(t))

		assert.Equal(t, store.ImportResult{IDs: []int64{}}, res)
	})
}

func TestFindJobByLinkOrTitle(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	importAll(t, db, domain.Listing{Title: "Data Engineer", Company: "Acme", Link: "https://example.com/a"})

	j, found, err := store.FindJobByLinkOrTitle(ctx, db, "https://example.com/a", "")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Data Engineer", j.Title)

	_, found, err = store.FindJobByLinkOrTitle(ctx, db, "https://example.com/b", "Data Engineer")
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = store.FindJobByLinkOrTitle(ctx, db, "https://example.com/b", "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListJobs(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	res := importAll(t, db,
		domain.Listing{Title: "Bravo", Company: "Zeta", Link: "https://example.com/1"},
		domain.Listing{Title: "Alpha", Company: "Yotta", Link: "https://example.com/2"},
		domain.Listing{Title: "Charlie", Company: "Xeno", Link: "https://example.com/3"},
	)
	applied := domain.StatusApplied
	_, err := store.UpdateJob(ctx, db, res.IDs[2], store.JobPatch{Status: &applied})
	require.NoError(t, err)

	titles := func(jobs []domain.Job) []string {
		out := make([]string, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, j.Title)
		}
		return out
	}

	t.Run("by title", func(t *testing.T) {
		t.Parallel()

		jobs, err := store.ListJobs(ctx, db, store.ListJobsOpts{Sort: "title"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, titles(jobs))
	})

	t.Run("by company descending with limit", func(t *testing.T) {
		t.Parallel()

		jobs, err := store.ListJobs(ctx, db, store.ListJobsOpts{Sort: "company", Order: "DESC", Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"Bravo", "Alpha"}, titles(jobs))
	})

	t.Run("default is newest first", func(t *testing.T) {
		t.Parallel()

		jobs, err := store.ListJobs(ctx, db, store.ListJobsOpts{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, titles(jobs))
	})

	t.Run("status filter", func(t *testing.T) {
		t.Parallel()

		jobs, err := store.ListJobs(ctx, db, store.ListJobsOpts{Status: "applied"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie"}, titles(jobs))

		jobs, err = store.ListJobs(ctx, db, store.ListJobsOpts{Status: "Offer"})
		require.NoError(t, err)
		assert.NotNil(t, jobs)
		assert.Empty(t, jobs)
	})

	t.Run("rejects unknown options", func(t *testing.T) {
		t.Parallel()

		_, err := store.ListJobs(ctx, db, store.ListJobsOpts{Sort: "id; DROP TABLE jobs"})
		require.Error(t, err)
		_, err = store.ListJobs(ctx, db, store.ListJobsOpts{Order: "sideways"})
		require.Error(t, err)
		_, err = store.ListJobs(ctx, db, store.ListJobsOpts{Status: "Ghosted"})
		require.Error(t, err)
	})
}

func TestUpdateJob(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ptr := func(s string) *string { return &s }

	t.Run("applies only set fields", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		id := importAll(t, db, domain.Listing{Title: "SRE", Link: "https://example.com/1"}).IDs[0]
		st := domain.Status("interview")

		j, err := store.UpdateJob(ctx, db, id, store.JobPatch{
			Status:        &st,
			InterviewDate: ptr("2024-06-01"),
			Notes:         ptr("second round"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.StatusInterview, j.Status)
		assert.Equal(t, "2024-06-01", j.InterviewDate)
		assert.Equal(t, "second round", j.Notes)
		assert.Empty(t, j.AppliedDate)
		assert.Equal(t, "SRE", j.Title)
	})

	t.Run("empty date clears", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		id := importAll(t, db, domain.Listing{Title: "SRE", Link: "https://example.com/1"}).IDs[0]
		_, err := store.UpdateJob(ctx, db, id, store.JobPatch{AppliedDate: ptr("2024-06-01")})
		require.NoError(t, err)

		j, err := store.UpdateJob(ctx, db, id, store.JobPatch{AppliedDate: ptr(" ")})

		require.NoError(t, err)
		assert.Empty(t, j.AppliedDate)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		id := importAll(t, db, domain.Listing{Title: "SRE", Link: "https://example.com/1"}).IDs[0]
		bad := domain.Status("Ghosted")

		_, err := store.UpdateJob(ctx, db, id, store.JobPatch{Status: &bad})
		require.Error(t, err)
		_, err = store.UpdateJob(ctx, db, id, store.JobPatch{AppliedDate: ptr("06/01/2024")})
		require.Error(t, err)
	})

	t.Run("missing job", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)

		_, err := store.UpdateJob(ctx, db, 42, store.JobPatch{Notes: ptr("x")})
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = store.UpdateJob(ctx, db, 42, store.JobPatch{})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestDeleteJob(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()
	id := importAll(t, db, domain.Listing{Title: "SRE", Link: "https://example.com/1"}).IDs[0]

	require.NoError(t, store.DeleteJob(ctx, db, id))
	require.ErrorIs(t, store.DeleteJob(ctx, db, id), store.ErrNotFound)

	_, err := store.GetJob(ctx, db, id)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckpoint(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	importAll(t, db, domain.Listing{Title: "SRE", Link: "https://example.com/1"})

	require.NoError(t, store.Checkpoint(context.Background(), db))
}
