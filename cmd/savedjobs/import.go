package main

import (
	"fmt"

	"careerflow-engine/internal/config"
	"careerflow-engine/internal/rank"
	"careerflow-engine/internal/scrape/linkedin"
	"careerflow-engine/internal/store"
)

func (c *ImportCmd) Run(deps *Dependencies) error {
	cfg := config.Default()
	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	listings, err := extractFile(deps, c.File, c.Workers)
	if err != nil {
		return err
	}

	db, err := store.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := store.Importer{
		DB:            db.Pool,
		Categorize:    rank.Categorizer{Rules: cfg.Scoring.TitleRules}.Category,
		GenericTitles: []string{linkedin.DefaultTitle},
	}.Import(deps.Ctx, listings)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "Found %d saved jobs: %d imported, %d already tracked.\n",
		len(listings), res.Imported, res.Skipped)
	return nil
}
