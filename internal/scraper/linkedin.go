package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// LinkedInStrategy pulls the profile picture and headline from a professional
// network page. Public profile pages are mostly behind a login wall, so empty
// results are the common case.
type LinkedInStrategy struct {
	client *PageClient
	logger zerolog.Logger
}

// NewLinkedInStrategy constructs the strategy.
func NewLinkedInStrategy(client *PageClient, logger zerolog.Logger) *LinkedInStrategy {
	return &LinkedInStrategy{client: client, logger: logger}
}

// Name implements Strategy.
func (s *LinkedInStrategy) Name() string { return "linkedin" }

// Fetch implements Strategy.
func (s *LinkedInStrategy) Fetch(ctx context.Context, url string) Result {
	result := EmptyResult()

	doc, err := s.client.Document(ctx, url)
	if err != nil {
		s.logger.Warn().Err(err).Str("source", s.Name()).Str("url", url).Msg("profile scrape failed")
		return result
	}

	result.ProfilePictureURL = extractProfilePicture(doc)
	result.Headline = extractHeadline(doc)

	s.logger.Info().
		Str("source", s.Name()).
		Str("url", url).
		Bool("picture", result.ProfilePictureURL != nil).
		Bool("headline", result.Headline != nil).
		Msg("profile scrape completed")
	return result
}

// extractProfilePicture picks the first image whose class mentions "profile",
// falling back to the first image carrying an alt attribute.
func extractProfilePicture(doc *goquery.Document) *string {
	img := firstWithClass(doc.Find("img"), "profile")
	if img == nil {
		if withAlt := doc.Find("img[alt]").First(); withAlt.Length() > 0 {
			img = withAlt
		}
	}
	if img == nil {
		return nil
	}
	src, ok := img.Attr("src")
	if !ok {
		return nil
	}
	return textOrNil(src)
}

// extractHeadline reads the first div whose class mentions "headline", falling
// back to a top-card heading.
func extractHeadline(doc *goquery.Document) *string {
	elem := firstWithClass(doc.Find("div"), "headline")
	if elem == nil {
		elem = firstWithClass(doc.Find("h2"), "top-card")
	}
	if elem == nil {
		return nil
	}
	return textOrNil(elem.Text())
}

func firstWithClass(sel *goquery.Selection, fragment string) *goquery.Selection {
	var found *goquery.Selection
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if ok && strings.Contains(strings.ToLower(class), fragment) {
			found = s
			return false
		}
		return true
	})
	return found
}
