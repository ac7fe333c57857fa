package rank_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/rank"
)

func TestCategorizer(t *testing.T) {
	t.Parallel()

	c := rank.Categorizer{Rules: []config.Rule{
		{Tag: "backend", Weight: 10, Any: []string{"backend", "golang", "go engineer"}},
		{Tag: "sre", Weight: 20, Any: []string{"SRE", "site reliability", "platform"}},
		{Tag: "data", Weight: 20, Any: []string{"data"}},
		{Tag: "backend", Weight: 5, Any: []string{"api"}},
	}}

	tests := []struct {
		title string
		want  string
	}{
		{"Senior Go Engineer", "backend"},
		{"Site Reliability Engineer", "sre"},
		{"Backend Platform Engineer", "sre"},
		{"Platform Data Engineer", "sre"},
		{"Product Designer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, c.Category(tt.title))
		})
	}

	t.Run("no rules", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, rank.Categorizer{}.Category("SRE"))
	})
}
