// Package coverletter drafts a plain-text cover letter for a tracked job.
package coverletter

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"careerflow-engine/internal/domain"
	"careerflow-engine/internal/scrape/linkedin"
)

type Profile struct {
	ApplicantName string
	Skills        []string
	Closing       string
}

type Letter struct {
	Date       string
	Paragraphs []string
	Filename   string
}

var reSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Build fills the letter template from job and p. now only sets the date line.
func Build(job domain.Job, p Profile, now time.Time) Letter {
	title := strings.TrimSpace(job.Title)
	if title == "" || title == linkedin.DefaultTitle {
		title = "open"
	}
	company := strings.TrimSpace(job.Company)
	if company == "" || company == linkedin.DefaultCompany {
		company = "your company"
	}
	greeting := "Dear Hiring Team,"
	if company != "your company" {
		greeting = fmt.Sprintf("Dear Hiring Team at %s,", company)
	}

	background := "software development, problem-solving and continuous learning"
	if len(p.Skills) > 0 {
		background = joinList(p.Skills)
	}

	closing := p.Closing
	if closing == "" {
		closing = "Sincerely,"
	}

	date := now.Format("January 02, 2006")
	paras := []string{
		date,
		greeting,
		fmt.Sprintf("I am writing to express my strong interest in the %s position at %s. "+
			"After reviewing the job description, I am confident that my background in %s "+
			"aligns closely with your team's needs.", title, company, background),
		fmt.Sprintf("I would appreciate the opportunity to contribute my skills to %s and to grow within your team. "+
			"I am excited about the possibility of discussing how I can add value to your organization.", company),
		"Thank you for considering my application. I look forward to hearing from you.",
		closing,
	}
	if name := strings.TrimSpace(p.ApplicantName); name != "" {
		paras = append(paras, name)
	}

	return Letter{
		Date:       date,
		Paragraphs: paras,
		Filename:   filename(job),
	}
}

// Render writes the letter as text/plain, one blank line between paragraphs.
func Render(w io.Writer, l Letter) error {
	_, err := io.WriteString(w, strings.Join(l.Paragraphs, "\n\n")+"\n")
	return err
}

func joinList(xs []string) string {
	switch len(xs) {
	case 1:
		return xs[0]
	case 2:
		return xs[0] + " and " + xs[1]
	default:
		return strings.Join(xs[:len(xs)-1], ", ") + " and " + xs[len(xs)-1]
	}
}

func filename(job domain.Job) string {
	parts := []string{"cover-letter"}
	for _, s := range []string{job.Company, job.Title} {
		if slug := strings.Trim(reSlug.ReplaceAllString(strings.ToLower(s), "-"), "-"); slug != "" {
			parts = append(parts, slug)
		}
	}
	if len(parts) == 1 {
		parts = append(parts, fmt.Sprint(job.ID))
	}
	return strings.Join(parts, "-") + ".txt"
}
