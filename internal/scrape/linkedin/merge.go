package linkedin

import (
	"strings"

	"careerflow-engine/internal/domain"
)

// Merge collapses candidates into one listing per link, in first-seen order.
// The first non-empty title and company win; later candidates only fill gaps.
// Defaults are applied once, after every candidate has been seen.
func Merge(cands []Candidate) []domain.Listing {
	out := make([]domain.Listing, 0, len(cands))
	byLink := make(map[string]int, len(cands))

	for _, c := range cands {
		link, ok := ValidateLink(c.Link)
		if !ok {
			continue
		}
		title := strings.TrimSpace(c.Title)
		company := strings.TrimSpace(c.Company)

		i, seen := byLink[link]
		if !seen {
			byLink[link] = len(out)
			out = append(out, domain.Listing{Title: title, Company: company, Link: link})
			continue
		}
		if out[i].Title == "" {
			out[i].Title = title
		}
		if out[i].Company == "" {
			out[i].Company = company
		}
	}

	for i := range out {
		if out[i].Title == "" {
			out[i].Title = DefaultTitle
		}
		if out[i].Company == "" {
			out[i].Company = DefaultCompany
		}
	}
	return out
}
