package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/store"
	"tally/internal/workbook"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DataHandler handles bulk data operations: spreadsheet export and import,
// and the clear-all reset.
type DataHandler struct {
	store *store.Store
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(s *store.Store) *DataHandler {
	return &DataHandler{store: s}
}

// ExportWorkbook streams the two-sheet workbook of all cached data.
func (h *DataHandler) ExportWorkbook(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}
	snap := h.store.Snapshot()

	var buf bytes.Buffer
	if err := workbook.Export(&buf, snap.Transactions, snap.Categories); err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("tally-export-%s.xlsx", snap.CurrentDate)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, workbookContentType, buf.Bytes())
}

// ImportWorkbook reads an uploaded workbook and applies it row by row.
// Bad rows are skipped and reported in the summary; the import never rolls
// back the rows that did apply.
func (h *DataHandler) ImportWorkbook(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "A workbook file upload is required"))
		return
	}
	defer file.Close()

	parsed, err := workbook.Parse(file)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary := workbook.NewImporter(h.store).Run(c.Request.Context(), parsed)
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// ClearAllData deletes every transaction and resets the selection state.
// Categories are left untouched.
func (h *DataHandler) ClearAllData(c *gin.Context) {
	if !requireInitialized(c, h.store) {
		return
	}

	if err := h.store.ClearAllData(c.Request.Context()); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All transactions cleared"})
}
