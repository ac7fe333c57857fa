// Package linkedin extracts saved-job listings from an HTML snapshot of
// LinkedIn's "My Jobs" page.
//
// The page embeds its data as HTML-escaped JSON inside <code> and <script>
// elements, with no stable schema. Each block is parsed and searched for
// nodes carrying a job link; blocks that are not JSON (or hold nothing
// useful) are scanned for /jobs/view/ URLs instead. Results from all blocks
// are merged by link. Extraction is best-effort and does no I/O.
package linkedin

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"careerflow-engine/internal/domain"
)

// ErrNoInput is returned when there is no document at all, as opposed to a
// document without listings.
var ErrNoInput = errors.New("linkedin: no input document")

type Extractor struct {
	workers int
	logger  *slog.Logger
}

type Option func(*Extractor)

// WithWorkers bounds how many blocks are decoded in parallel. n < 1 means 1.
func WithWorkers(n int) Option {
	return func(e *Extractor) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(opts ...Option) *Extractor {
	e := &Extractor{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseSavedJobsHTML runs a default Extractor over htmlText.
func ParseSavedJobsHTML(htmlText string) ([]domain.Listing, error) {
	return New().Extract(htmlText)
}

// Stats describes one extraction run.
type Stats struct {
	Blocks     int
	Structured int // candidates found by walking parsed JSON
	Fallback   int // candidates found by URL pattern
	Listings   int
}

// ExtractReader reads a whole document (already decoded to UTF-8) from r.
func (e *Extractor) ExtractReader(r io.Reader) ([]domain.Listing, error) {
	if r == nil {
		return nil, ErrNoInput
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return e.Extract(strings.ToValidUTF8(string(b), "\uFFFD"))
}

// Extract returns the listings found in htmlText. A document with none is
// not an error.
func (e *Extractor) Extract(htmlText string) ([]domain.Listing, error) {
	listings, _, err := e.ExtractWithStats(htmlText)
	return listings, err
}

func (e *Extractor) ExtractWithStats(htmlText string) ([]domain.Listing, Stats, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, Stats{}, fmt.Errorf("parse html: %w", err)
	}

	blocks := ScanBlocks(doc)
	results := make([]blockResult, len(blocks))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, text := range blocks {
		g.Go(func() error {
			results[i] = extractBlock(text)
			return nil
		})
	}
	_ = g.Wait()

	st := Stats{Blocks: len(blocks)}
	var cands []Candidate
	for _, r := range results {
		if r.fallback {
			st.Fallback += len(r.cands)
		} else {
			st.Structured += len(r.cands)
		}
		cands = append(cands, r.cands...)
	}

	listings := Merge(cands)
	st.Listings = len(listings)

	e.logger.Debug("linkedin extract",
		"blocks", st.Blocks,
		"structured", st.Structured,
		"fallback", st.Fallback,
		"listings", st.Listings,
	)
	return listings, st, nil
}

// ScanBlocks returns the trimmed, non-empty text of every <code> and
// <script> element in document order.
func ScanBlocks(doc *goquery.Document) []string {
	var blocks []string
	doc.Find("code, script").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			blocks = append(blocks, t)
		}
	})
	return blocks
}

type blockResult struct {
	cands    []Candidate
	fallback bool
}

func extractBlock(text string) blockResult {
	decoded := DecodeEntities(text)
	if v, err := ParseValue(decoded); err == nil {
		if cands := WalkTree(v); len(cands) > 0 {
			return blockResult{cands: cands}
		}
	}
	return blockResult{cands: ExtractFallback(decoded), fallback: true}
}
