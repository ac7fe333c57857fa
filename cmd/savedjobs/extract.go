package main

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"careerflow-engine/internal/domain"
	"careerflow-engine/internal/scrape/linkedin"
	"careerflow-engine/internal/scrape/util"
)

func (c *ExtractCmd) Run(deps *Dependencies) error {
	listings, err := extractFile(deps, c.File, c.Workers)
	if err != nil {
		return err
	}

	if c.JSON {
		if err := json.MarshalWrite(deps.Stdout, listings, jsontext.WithIndent("  ")); err != nil {
			return err
		}
		_, err := fmt.Fprintln(deps.Stdout)
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved jobs found.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLINK")
	for _, l := range listings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Title, l.Company, l.Link)
	}
	return tw.Flush()
}

func extractFile(deps *Dependencies, file string, workers int) ([]domain.Listing, error) {
	b, contentType, err := readInput(deps.Stdin, file)
	if err != nil {
		return nil, err
	}

	ex := linkedin.New(
		linkedin.WithWorkers(workers),
		linkedin.WithLogger(deps.Logger),
	)
	return ex.Extract(util.DecodeDocument(b, contentType))
}

func readInput(stdin io.Reader, file string) ([]byte, string, error) {
	if file == "-" {
		if stdin == nil {
			return nil, "", linkedin.ErrNoInput
		}
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return b, "", nil
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", file, err)
	}
	return b, mime.TypeByExtension(strings.ToLower(filepath.Ext(file))), nil
}
