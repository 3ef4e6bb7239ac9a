package refresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/entity"
	"github.com/octobees/faculty-hub/api/internal/repository"
	"github.com/octobees/faculty-hub/api/internal/scraper"
)

// Job asks for one faculty record to be re-scraped.
type Job struct {
	FacultyID   int64
	LinkedInURL *string
	ScholarURL  *string
	Reason      string
}

// JobFor builds a job from the current state of a record.
func JobFor(faculty *entity.Faculty, reason string) Job {
	return Job{
		FacultyID:   faculty.ID,
		LinkedInURL: faculty.LinkedInURL,
		ScholarURL:  faculty.ScholarURL,
		Reason:      reason,
	}
}

// Fetcher retrieves scraped profile fields.
type Fetcher interface {
	Fetch(ctx context.Context, linkedinURL, scholarURL *string) scraper.Result
}

// Store is the subset of the faculty repository used by refresh jobs.
type Store interface {
	Get(ctx context.Context, id int64) (*entity.Faculty, error)
	Update(ctx context.Context, id int64, faculty *entity.Faculty) error
}

// Refresher scrapes a record's external profiles and writes the result back.
type Refresher struct {
	fetcher Fetcher
	store   Store
	now     func() time.Time
	logger  zerolog.Logger
}

// NewRefresher constructs a Refresher.
func NewRefresher(fetcher Fetcher, store Store, logger zerolog.Logger) *Refresher {
	return &Refresher{fetcher: fetcher, store: store, now: time.Now, logger: logger}
}

// Run executes one refresh. A record deleted while the scrape was in flight is
// abandoned without error.
func (r *Refresher) Run(ctx context.Context, job Job) error {
	scraped := r.fetcher.Fetch(ctx, job.LinkedInURL, job.ScholarURL)

	current, err := r.store.Get(ctx, job.FacultyID)
	if err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			r.logger.Info().Int64("faculty_id", job.FacultyID).Msg("refresh abandoned: record deleted")
			return nil
		}
		return fmt.Errorf("load faculty %d: %w", job.FacultyID, err)
	}

	merged := Merge(current, scraped, r.now())
	if err := r.store.Update(ctx, job.FacultyID, merged); err != nil {
		if errors.Is(err, repository.ErrFacultyNotFound) {
			r.logger.Info().Int64("faculty_id", job.FacultyID).Msg("refresh abandoned: record deleted")
			return nil
		}
		return fmt.Errorf("store refreshed faculty %d: %w", job.FacultyID, err)
	}

	r.logger.Info().
		Int64("faculty_id", job.FacultyID).
		Str("reason", job.Reason).
		Int("publications", len(merged.Publications)).
		Msg("faculty refreshed")
	return nil
}

// Merge applies scraped fields onto a copy of current. Picture and headline are
// only overwritten by non-empty values; the four lists are replaced outright.
func Merge(current *entity.Faculty, scraped scraper.Result, now time.Time) *entity.Faculty {
	merged := *current
	if scraped.ProfilePictureURL != nil {
		merged.ProfilePictureURL = scraped.ProfilePictureURL
	}
	if scraped.Headline != nil {
		merged.Headline = scraped.Headline
	}
	merged.Experience = scraped.Experience
	merged.Certifications = scraped.Certifications
	merged.Projects = scraped.Projects
	merged.Publications = scraped.Publications
	merged.Normalize()

	stamp := now.UTC()
	merged.LastUpdated = &stamp
	return &merged
}
