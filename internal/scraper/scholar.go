package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/entity"
)

// MaxPublications caps how many publication rows a single refresh reads.
const MaxPublications = 5

// ScholarStrategy reads the publication table of an academic citation profile.
type ScholarStrategy struct {
	client *PageClient
	logger zerolog.Logger
}

// NewScholarStrategy constructs the strategy.
func NewScholarStrategy(client *PageClient, logger zerolog.Logger) *ScholarStrategy {
	return &ScholarStrategy{client: client, logger: logger}
}

// Name implements Strategy.
func (s *ScholarStrategy) Name() string { return "scholar" }

// Fetch implements Strategy.
func (s *ScholarStrategy) Fetch(ctx context.Context, url string) Result {
	result := EmptyResult()

	doc, err := s.client.Document(ctx, url)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", s.Name()).Str("url", url).Msg("profile scrape failed")
		return result
	}

	result.Publications = extractPublications(doc)

	s.logger.Info().
		Str("source", s.Name()).
		Str("url", url).
		Int("publications", len(result.Publications)).
		Msg("profile scrape completed")
	return result
}

// extractPublications reads the first MaxPublications rows of the citation table.
// Rows without a title are skipped; citation is never populated.
func extractPublications(doc *goquery.Document) []entity.Publication {
	publications := []entity.Publication{}

	rows := doc.Find("tr.gsc_a_tr")
	if rows.Length() > MaxPublications {
		rows = rows.Slice(0, MaxPublications)
	}

	rows.Each(func(_ int, row *goquery.Selection) {
		title := textOrNil(row.Find("a.gsc_a_at").First().Text())
		if title == nil {
			return
		}
		publications = append(publications, entity.Publication{
			Title:   *title,
			Authors: textOrNil(row.Find("div.gs_gray").First().Text()),
			Year:    textOrNil(row.Find("span.gsc_a_h").First().Text()),
		})
	})

	return publications
}
