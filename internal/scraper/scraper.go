package scraper

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/octobees/faculty-hub/api/internal/entity"
)

// Result is the fixed-shape set of fields recovered from external profile pages.
// Scalars are nil and lists are empty when nothing was found.
type Result struct {
	ProfilePictureURL *string                 `json:"profile_picture_url"`
	Headline          *string                 `json:"headline"`
	Experience        []entity.ExperienceItem `json:"experience"`
	Certifications    []entity.Certification  `json:"certifications"`
	Projects          []entity.Project        `json:"projects"`
	Publications      []entity.Publication    `json:"publications"`
}

// EmptyResult returns a result with every list initialised and no scalars set.
func EmptyResult() Result {
	return Result{
		Experience:     []entity.ExperienceItem{},
		Certifications: []entity.Certification{},
		Projects:       []entity.Project{},
		Publications:   []entity.Publication{},
	}
}

// Strategy extracts fields from one external site. Implementations must not
// return errors: any failure yields an empty Result.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, url string) Result
}

// ProfileFetcher combines the professional-network and citation strategies.
type ProfileFetcher struct {
	linkedin Strategy
	scholar  Strategy
	logger   zerolog.Logger
}

// NewProfileFetcher wires the default strategies on top of a shared page client.
func NewProfileFetcher(client *PageClient, logger zerolog.Logger) *ProfileFetcher {
	return NewProfileFetcherWithStrategies(
		NewLinkedInStrategy(client, logger),
		NewScholarStrategy(client, logger),
		logger,
	)
}

// NewProfileFetcherWithStrategies allows injecting custom strategies (useful for tests).
func NewProfileFetcherWithStrategies(linkedin, scholar Strategy, logger zerolog.Logger) *ProfileFetcher {
	return &ProfileFetcher{linkedin: linkedin, scholar: scholar, logger: logger}
}

// Fetch queries both sources concurrently and returns once both are done. Absent
// URLs are skipped without any network call.
func (f *ProfileFetcher) Fetch(ctx context.Context, linkedinURL, scholarURL *string) Result {
	var (
		g                 errgroup.Group
		fromLinkedIn      = EmptyResult()
		fromScholar       = EmptyResult()
		linkedin, scholar = trimmed(linkedinURL), trimmed(scholarURL)
	)

	if linkedin != "" && f.linkedin != nil {
		g.Go(func() error {
			fromLinkedIn = f.safeFetch(ctx, f.linkedin, linkedin)
			return nil
		})
	}
	if scholar != "" && f.scholar != nil {
		g.Go(func() error {
			fromScholar = f.safeFetch(ctx, f.scholar, scholar)
			return nil
		})
	}
	_ = g.Wait()

	result := EmptyResult()
	result.ProfilePictureURL = fromLinkedIn.ProfilePictureURL
	result.Headline = fromLinkedIn.Headline
	result.Experience = nonNil(fromLinkedIn.Experience)
	result.Certifications = nonNil(fromLinkedIn.Certifications)
	result.Projects = nonNil(fromLinkedIn.Projects)
	result.Publications = nonNil(fromScholar.Publications)
	return result
}

func (f *ProfileFetcher) safeFetch(ctx context.Context, strategy Strategy, url string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			f.logger.Error().
				Str("source", strategy.Name()).
				Str("url", url).
				Interface("panic", rec).
				Msg("profile scrape panicked")
			result = EmptyResult()
		}
	}()
	return strategy.Fetch(ctx, url)
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func textOrNil(value string) *string {
	value = strings.Join(strings.Fields(value), " ")
	if value == "" {
		return nil
	}
	return &value
}
