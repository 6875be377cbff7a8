package pdf

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
)

// LowContentError is the error message given for low-content PDFs.
const LowContentError = "PDF appears to be image-based or encrypted. Minimal text extracted."

// BuildResponse turns a pipeline result into the API response for filename.
//
// A low-content result is still a 200 response, but with Success=false, a
// placeholder text and zero words, so the frontend can tell the user the
// PDF probably needs OCR.
func BuildResponse(filename string, r *Result, processedAt time.Time) models.ExtractionResponse {
	if r.IsLowContent() {
		return models.ExtractionResponse{
			Success:      false,
			Filename:     filename,
			Error:        LowContentError,
			RawText:      r.RawText,
			Text:         fmt.Sprintf("[PDF Content from %s]\n\nThis PDF appears to be image-based or encrypted. Only minimal text could be extracted.", filename),
			WordCount:    0,
			CharCount:    utf8.RuneCountInString(r.RawText),
			PageCount:    r.PageCount,
			SkippedPages: r.SkippedPages,
		}
	}

	return models.ExtractionResponse{
		Success:         true,
		Filename:        filename,
		Text:            r.Text,
		RawText:         r.RawText,
		WordCount:       r.Stats.WordCount,
		CharCount:       r.Stats.CharCount,
		EstimatedTokens: r.Stats.EstimatedTokens,
		PageCount:       r.PageCount,
		SkippedPages:    r.SkippedPages,
		ProcessedAt:     &processedAt,
	}
}

// Record converts a response into a history row.
func Record(resp models.ExtractionResponse, fileSize int64) *models.PDFExtraction {
	pe := &models.PDFExtraction{
		OriginalName:    resp.Filename,
		FileSize:        fileSize,
		PageCount:       resp.PageCount,
		TextContent:     resp.Text,
		RawText:         resp.RawText,
		WordCount:       resp.WordCount,
		CharCount:       resp.CharCount,
		EstimatedTokens: resp.EstimatedTokens,
		Status:          models.StatusCompleted,
	}
	if !resp.Success {
		pe.Status = models.StatusLowContent
		pe.ErrorMessage = resp.Error
	}
	return pe
}
