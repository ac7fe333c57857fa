package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag    string   `yaml:"tag" json:"tag"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Import struct {
		MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`
		Workers        int   `yaml:"workers" json:"workers"`
		RatePerMinute  int   `yaml:"rate_per_minute" json:"rate_per_minute"`
	} `yaml:"import" json:"import"`

	Scoring struct {
		TitleRules []Rule `yaml:"title_rules" json:"title_rules"`
	} `yaml:"scoring" json:"scoring"`

	CoverLetter struct {
		ApplicantName string   `yaml:"applicant_name" json:"applicant_name"`
		Skills        []string `yaml:"skills" json:"skills"`
		Closing       string   `yaml:"closing" json:"closing"`
	} `yaml:"cover_letter" json:"cover_letter"`
}

// Default is the config written on first run.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Import.MaxUploadBytes = 20 << 20
	cfg.Import.Workers = 4
	cfg.Import.RatePerMinute = 30
	cfg.Scoring.TitleRules = []Rule{
		{Tag: "backend", Weight: 10, Any: []string{"backend", "golang", "go engineer", "api"}},
		{Tag: "frontend", Weight: 10, Any: []string{"frontend", "front-end", "react", "ui engineer"}},
		{Tag: "devops", Weight: 15, Any: []string{"devops", "sre", "site reliability", "platform", "infrastructure"}},
		{Tag: "data", Weight: 15, Any: []string{"data engineer", "data scientist", "analytics", "machine learning"}},
		{Tag: "qa", Weight: 5, Any: []string{"qa", "quality", "test"}},
	}
	cfg.CoverLetter.Skills = []string{"software development", "problem-solving", "continuous learning"}
	cfg.CoverLetter.Closing = "Sincerely,"
	return cfg
}

// Load reads path on top of Default, so sections missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
