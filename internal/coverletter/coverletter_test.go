package coverletter_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerflow-engine/internal/coverletter"
	"careerflow-engine/internal/domain"
	"careerflow-engine/internal/scrape/linkedin"
)

var day = time.Date(2024, 3, 7, 12, 0, 0, 0, time.UTC)

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("fills job and profile", func(t *testing.T) {
		t.Parallel()

		l := coverletter.Build(
			domain.Job{ID: 3, Title: "Platform Engineer", Company: "Initech"},
			coverletter.Profile{ApplicantName: "Ada Lovelace", Skills: []string{"Go", "SQL", "Kubernetes"}},
			day,
		)

		require.Len(t, l.Paragraphs, 7)
		assert.Equal(t, "March 07, 2024", l.Paragraphs[0])
		assert.Equal(t, "Dear Hiring Team at Initech,", l.Paragraphs[1])
		assert.Contains(t, l.Paragraphs[2], "the Platform Engineer position at Initech")
		assert.Contains(t, l.Paragraphs[2], "background in Go, SQL and Kubernetes")
		assert.Equal(t, "Sincerely,", l.Paragraphs[5])
		assert.Equal(t, "Ada Lovelace", l.Paragraphs[6])
		assert.Equal(t, "cover-letter-initech-platform-engineer.txt", l.Filename)
	})

	t.Run("placeholder fields read naturally", func(t *testing.T) {
		t.Parallel()

		l := coverletter.Build(
			domain.Job{ID: 9, Title: linkedin.DefaultTitle, Company: linkedin.DefaultCompany},
			coverletter.Profile{Closing: "Best regards,"},
			day,
		)

		assert.Equal(t, "Dear Hiring Team,", l.Paragraphs[1])
		assert.Contains(t, l.Paragraphs[2], "the open position at your company")
		assert.Equal(t, "Best regards,", l.Paragraphs[len(l.Paragraphs)-1])
	})

	t.Run("filename falls back to id", func(t *testing.T) {
		t.Parallel()

		l := coverletter.Build(domain.Job{ID: 12, Title: "!!!"}, coverletter.Profile{}, day)

		assert.Equal(t, "cover-letter-12.txt", l.Filename)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := coverletter.Render(&b, coverletter.Letter{Paragraphs: []string{"one", "two"}})

	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo\n", b.String())
}
