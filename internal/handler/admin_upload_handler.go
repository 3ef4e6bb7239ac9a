package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// maxImportSize caps the accepted CSV upload.
const maxImportSize = 5 << 20

// Import handles POST /api/admin/faculty/import requests carrying a CSV file
// in the multipart field "file".
func (h *FacultyHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		return Error(c, http.StatusBadRequest, "file must have a .csv extension")
	}
	if fileHeader.Size > maxImportSize {
		return Error(c, http.StatusRequestEntityTooLarge, "csv file exceeds 5 MiB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.service.ImportCSV(c.Request().Context(), io.LimitReader(file, maxImportSize))
	if err != nil {
		return respondError(c, h.logger, err, "failed to process csv")
	}

	h.logger.Info().
		Str("request_id", requestID(c)).
		Str("filename", fileHeader.Filename).
		Int("inserted", summary.Inserted).
		Msg("faculty import finished")
	return Success(c, http.StatusOK, summary)
}
