package rank

import (
	"strings"

	"careerflow-engine/internal/config"
)

// Categorizer tags a job title using the scoring.title_rules section of the
// config. The highest-weight matching rule wins; ties go to the earlier rule.
type Categorizer struct {
	Rules []config.Rule
}

func (c Categorizer) Category(title string) string {
	text := strings.ToLower(title)

	best := ""
	bestWeight := 0
	for _, r := range c.Rules {
		if !matchesAny(text, r.Any) {
			continue
		}
		if best == "" || r.Weight > bestWeight {
			best = r.Tag
			bestWeight = r.Weight
		}
	}
	return best
}

func matchesAny(text string, needles []string) bool {
	for _, needle := range needles {
		n := strings.ToLower(strings.TrimSpace(needle))
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}
