package linkedin_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerflow-engine/internal/scrape/linkedin"
)

func TestExtractFallback(t *testing.T) {
	t.Parallel()

	t.Run("prose title at company", func(t *testing.T) {
		t.Parallel()

		got := linkedin.ExtractFallback("Platform Engineer at Initech. https://www.linkedin.com/jobs/view/77")

		assert.Equal(t, []linkedin.Candidate{{
			Title:   "Platform Engineer",
			Company: "Initech",
			Link:    "https://www.linkedin.com/jobs/view/77",
		}}, got)
	})

	t.Run("quoted fields beat prose", func(t *testing.T) {
		t.Parallel()

		got := linkedin.ExtractFallback(`"title": "Data Engineer", "companyName": "Cyberdyne" https://www.linkedin.com/jobs/view/5?trk=x`)

		require.Len(t, got, 1)
		assert.Equal(t, "Data Engineer", got[0].Title)
		assert.Equal(t, "Cyberdyne", got[0].Company)
		assert.Equal(t, "https://www.linkedin.com/jobs/view/5?trk=x", got[0].Link)
	})

	t.Run("text outside the window is not used", func(t *testing.T) {
		t.Parallel()

		text := `"companyName": "Faraway Corp"` + strings.Repeat("x ", 200) + "https://www.linkedin.com/jobs/view/3"

		got := linkedin.ExtractFallback(text)

		require.Len(t, got, 1)
		assert.Empty(t, got[0].Company)
		assert.Empty(t, got[0].Title)
	})

	t.Run("multibyte text around the link", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("é", 400) + " https://www.linkedin.com/jobs/view/4 " + strings.Repeat("ü", 400)

		got := linkedin.ExtractFallback(text)

		require.Len(t, got, 1)
		assert.Equal(t, "https://www.linkedin.com/jobs/view/4", got[0].Link)
	})

	t.Run("every occurrence is reported", func(t *testing.T) {
		t.Parallel()

		got := linkedin.ExtractFallback("https://www.linkedin.com/jobs/view/1 https://www.linkedin.com/jobs/view/1 HTTP://WWW.LINKEDIN.COM/jobs/view/2")

		require.Len(t, got, 3)
		assert.Equal(t, got[0].Link, got[1].Link)
	})

	t.Run("no links", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, linkedin.ExtractFallback("Senior Engineer at Hooli, https://www.linkedin.com/company/hooli"))
	})
}
