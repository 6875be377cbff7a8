// pdf.go handles PDF text extraction HTTP endpoints.
//
// POST   /extract-pdf                     Upload a PDF, get cleaned text back
// POST   /api/v1/pdf/extract              Same, behind auth + rate limiting
// GET    /api/v1/pdf/extractions          List recent extractions
// GET    /api/v1/pdf/extractions/:id      Get one extraction
// DELETE /api/v1/pdf/extractions/:id      Delete one extraction
package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/pdf-text-service/internal/database"
	"github.com/Shimizu-Technology/pdf-text-service/internal/middleware"
	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
	pdfservice "github.com/Shimizu-Technology/pdf-text-service/internal/services/pdf"
)

// ExtractPDF handles PDF file upload and text extraction.
//
// Accepts multipart file upload with field name "file".
// Only .pdf files are accepted. Processing is synchronous.
func (h *Handler) ExtractPDF(c *gin.Context) {
	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("No PDF file provided. Upload a file with the field name 'file'. Max size: %dMB.", h.MaxUploadBytes>>20),
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	// Validate file extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: "File must be a PDF",
			Code:    http.StatusBadRequest,
		})
		return
	}

	// Go Pattern: io.ReadAll reads the entire reader into a byte slice.
	// The pdf library needs random access, so the upload lives in memory.
	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	log.Printf("📄 Processing PDF: %s (%d bytes)", header.Filename, len(data))

	result, err := h.Extractor.Process(data)
	if err != nil {
		h.recordFailure(c, header.Filename, int64(len(data)), err)

		var extErr *pdfservice.ExtractionError
		if errors.As(err, &extErr) {
			log.Printf("❌ PDF extraction failed for %s: %v", header.Filename, err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "extraction_failed",
				Message: "PDF extraction failed: " + extErr.Err.Error(),
				Code:    http.StatusBadRequest,
			})
			return
		}

		log.Printf("❌ Unexpected error processing %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "processing_failed",
			Message: "Processing failed: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
		return
	}

	resp := pdfservice.BuildResponse(header.Filename, result, time.Now())
	if resp.Success {
		log.Printf("✅ Extracted %d words from %s", resp.WordCount, header.Filename)
	} else {
		log.Printf("⚠️  Minimal text extracted from %s", header.Filename)
	}

	if h.DB != nil {
		pe := pdfservice.Record(resp, int64(len(data)))
		pe.Owner = owner(c)
		if err := h.DB.CreatePDFExtraction(c.Request.Context(), pe); err != nil {
			// Still return the result even if the history write fails
			log.Printf("⚠️  Failed to save PDF extraction record: %v", err)
		} else {
			resp.ID = pe.ID
		}
	}

	c.JSON(http.StatusOK, resp)
}

// recordFailure stores a failed extraction in history, if enabled.
func (h *Handler) recordFailure(c *gin.Context, filename string, size int64, cause error) {
	if h.DB == nil {
		return
	}
	pe := &models.PDFExtraction{
		OriginalName: filename,
		FileSize:     size,
		Status:       models.StatusFailed,
		ErrorMessage: cause.Error(),
		Owner:        owner(c),
	}
	if err := h.DB.CreatePDFExtraction(c.Request.Context(), pe); err != nil {
		log.Printf("⚠️  Failed to save PDF extraction record: %v", err)
	}
}

// GetPDFExtraction retrieves a single PDF extraction by ID.
// GET /api/v1/pdf/extractions/:id
func (h *Handler) GetPDFExtraction(c *gin.Context) {
	pe, err := h.DB.GetPDFExtraction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.historyError(c, err, "Failed to get PDF extraction")
		return
	}
	if !ownsRecord(c, pe) {
		h.historyError(c, database.ErrNotFound, "")
		return
	}

	c.JSON(http.StatusOK, pe)
}

// ListPDFExtractions returns recent PDF extractions for the caller.
// GET /api/v1/pdf/extractions
func (h *Handler) ListPDFExtractions(c *gin.Context) {
	extractions, err := h.DB.ListPDFExtractions(c.Request.Context(), 50, owner(c))
	if err != nil {
		h.historyError(c, err, "Failed to list PDF extractions")
		return
	}

	if extractions == nil {
		extractions = []models.PDFExtraction{}
	}

	c.JSON(http.StatusOK, extractions)
}

// DeletePDFExtraction removes a PDF extraction by ID.
// DELETE /api/v1/pdf/extractions/:id
func (h *Handler) DeletePDFExtraction(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	pe, err := h.DB.GetPDFExtraction(ctx, id)
	if err == nil && !ownsRecord(c, pe) {
		err = database.ErrNotFound
	}
	if err == nil {
		err = h.DB.DeletePDFExtraction(ctx, id)
	}
	if err != nil {
		h.historyError(c, err, "Failed to delete PDF extraction")
		return
	}

	c.Status(http.StatusNoContent)
}

// historyError maps a database error to a JSON error response.
func (h *Handler) historyError(c *gin.Context, err error, message string) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "PDF extraction not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	log.Printf("❌ %s: %v", message, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: message,
		Code:    http.StatusInternalServerError,
	})
}

// owner returns the authenticated caller ("key:<id>" or "jwt:<sub>"), or
// nil when auth is off.
func owner(c *gin.Context) *string {
	if p := middleware.Principal(c); p != "" {
		return &p
	}
	return nil
}

// ownsRecord hides records created by any other caller. With auth off
// every record is visible.
func ownsRecord(c *gin.Context, pe *models.PDFExtraction) bool {
	caller := owner(c)
	if caller == nil {
		return true
	}
	return pe.Owner != nil && *pe.Owner == *caller
}
