package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/octobees/faculty-hub/api/internal/dto"
	"github.com/octobees/faculty-hub/api/internal/entity"
)

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// csvColumnAliases maps accepted header spellings to faculty fields.
var csvColumnAliases = map[string]string{
	"name":                "name",
	"title":               "designation",
	"designation":         "designation",
	"department":          "department",
	"office_location":     "office_location",
	"office":              "office_location",
	"email":               "email",
	"linkedin_url":        "linkedin_url",
	"linkedin":            "linkedin_url",
	"google_scholar_url":  "google_scholar_url",
	"scholar_url":         "google_scholar_url",
	"scholar":             "google_scholar_url",
	"headline":            "headline",
	"profile_picture_url": "profile_picture_url",
	"picture_url":         "profile_picture_url",
	"photo_url":           "profile_picture_url",
}

// ImportCSV creates one record per data row. Rows without a name or with an
// invalid email are skipped; nested lists start empty.
func (s *FacultyService) ImportCSV(ctx context.Context, r io.Reader) (dto.ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return dto.ImportSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return dto.ImportSummary{}, csvReadError(err)
	}

	index, err := buildHeaderIndex(header)
	if err != nil {
		return dto.ImportSummary{}, err
	}

	var (
		records []entity.Faculty
		summary = dto.ImportSummary{IDs: []int64{}}
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return dto.ImportSummary{}, csvReadError(err)
		}
		if isBlankRow(row) {
			continue
		}
		summary.Total++

		faculty := facultyFromRow(row, index)
		if err := validateFaculty(&faculty); err != nil {
			summary.Skipped++
			continue
		}
		s.stamp(&faculty)
		records = append(records, faculty)
	}

	if summary.Total == 0 {
		return dto.ImportSummary{}, CSVValidationError{Message: "csv file must have a header row and at least one data row"}
	}
	if len(records) == 0 {
		return summary, nil
	}

	result, err := s.repo.BulkCreate(ctx, records)
	if err != nil {
		return dto.ImportSummary{}, err
	}

	summary.Inserted = len(result.IDs)
	summary.IDs = result.IDs
	s.logger.Info().
		Int("inserted", summary.Inserted).
		Int("skipped", summary.Skipped).
		Msg("faculty csv imported")
	return summary, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		field, ok := csvColumnAliases[col]
		if !ok {
			continue
		}
		if _, seen := index[field]; !seen {
			index[field] = i
		}
	}

	if _, ok := index["name"]; !ok {
		return nil, CSVValidationError{Message: "missing required columns: name"}
	}
	return index, nil
}

func facultyFromRow(row []string, index map[string]int) entity.Faculty {
	value := func(field string) *string {
		i, ok := index[field]
		if !ok || i >= len(row) {
			return nil
		}
		return normalizeString(row[i])
	}

	faculty := entity.Faculty{
		Designation:       value("designation"),
		Department:        value("department"),
		OfficeLocation:    value("office_location"),
		Email:             value("email"),
		ScholarURL:        value("google_scholar_url"),
		LinkedInURL:       value("linkedin_url"),
		ProfilePictureURL: value("profile_picture_url"),
		Headline:          value("headline"),
	}
	if name := value("name"); name != nil {
		faculty.Name = *name
	}
	return faculty
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func csvReadError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return CSVValidationError{Message: fmt.Sprintf("malformed csv on line %d: %v", parseErr.Line, parseErr.Err)}
	}
	return fmt.Errorf("read csv: %w", err)
}
