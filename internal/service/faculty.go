package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/octobees/faculty-hub/api/internal/entity"
	"github.com/octobees/faculty-hub/api/internal/refresh"
	"github.com/octobees/faculty-hub/api/internal/repository"
)

const defaultStaleAfter = 24 * time.Hour

// Scheduler queues background refresh jobs without blocking.
type Scheduler interface {
	Schedule(job refresh.Job) bool
}

// FacultyService implements the directory operations on top of the store and
// the refresh dispatcher.
type FacultyService struct {
	repo       repository.FacultyRepository
	scheduler  Scheduler
	staleAfter time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

// NewFacultyService creates a new instance of FacultyService.
func NewFacultyService(repo repository.FacultyRepository, scheduler Scheduler, staleAfter time.Duration, logger zerolog.Logger) *FacultyService {
	if staleAfter <= 0 {
		staleAfter = defaultStaleAfter
	}
	return &FacultyService{
		repo:       repo,
		scheduler:  scheduler,
		staleAfter: staleAfter,
		now:        time.Now,
		logger:     logger,
	}
}

// List returns every record ordered by name.
func (s *FacultyService) List(ctx context.Context) ([]entity.Faculty, error) {
	return s.repo.List(ctx)
}

// Search returns records matching query; a blank query matches everything.
func (s *FacultyService) Search(ctx context.Context, query string) ([]entity.Faculty, error) {
	return s.repo.Search(ctx, query)
}

// Get returns one record. When the record is older than the staleness
// threshold a background refresh is queued; the caller still receives the
// stored version.
func (s *FacultyService) Get(ctx context.Context, id int64) (*entity.Faculty, error) {
	faculty, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if faculty.IsStale(s.now(), s.staleAfter) {
		s.schedule(refresh.JobFor(faculty, "stale"))
	}
	return faculty, nil
}

// Create validates and stores a new record, returning it as persisted.
func (s *FacultyService) Create(ctx context.Context, faculty *entity.Faculty) (*entity.Faculty, error) {
	if err := validateFaculty(faculty); err != nil {
		return nil, err
	}
	s.stamp(faculty)

	id, err := s.repo.Create(ctx, faculty)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update replaces every field of an existing record.
func (s *FacultyService) Update(ctx context.Context, id int64, faculty *entity.Faculty) (*entity.Faculty, error) {
	if err := validateFaculty(faculty); err != nil {
		return nil, err
	}
	s.stamp(faculty)

	if err := s.repo.Update(ctx, id, faculty); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a record.
func (s *FacultyService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RequestRefresh queues a refresh regardless of staleness. The boolean reports
// whether the dispatcher accepted the job.
func (s *FacultyService) RequestRefresh(ctx context.Context, id int64) (bool, error) {
	faculty, err := s.repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	return s.schedule(refresh.JobFor(faculty, "manual")), nil
}

func (s *FacultyService) schedule(job refresh.Job) bool {
	if s.scheduler == nil {
		return false
	}
	return s.scheduler.Schedule(job)
}

func (s *FacultyService) stamp(faculty *entity.Faculty) {
	now := s.now().UTC()
	faculty.LastUpdated = &now
}
