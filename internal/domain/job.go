package domain

import (
	"fmt"
	"strings"
)

// Listing is one saved job extracted from an uploaded page.
// Link is the identity key and is always an absolute URL.
type Listing struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Link    string `json:"link"`
}

type Status string

const (
	StatusSaved     Status = "Saved"
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

var statuses = []Status{StatusSaved, StatusApplied, StatusInterview, StatusRejected, StatusOffer}

func (s Status) Valid() bool {
	for _, x := range statuses {
		if s == x {
			return true
		}
	}
	return false
}

// ParseStatus accepts any casing ("applied", "APPLIED").
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, x := range statuses {
		if strings.EqualFold(s, string(x)) {
			return x, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

type Job struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Link          string `json:"link"`
	SourceID      string `json:"sourceId"`
	Category      string `json:"category"`
	Status        Status `json:"status"`
	AppliedDate   string `json:"appliedDate,omitempty"`
	InterviewDate string `json:"interviewDate,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Date          string `json:"date"`
}
