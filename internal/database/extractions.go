package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
)

// ErrNotFound is returned when a record doesn't exist.
var ErrNotFound = errors.New("not found")

// --- PDF Extraction Operations ---

// CreatePDFExtraction inserts a new PDF extraction record.
// The ID and CreatedAt fields are filled in on the passed struct.
func (db *DB) CreatePDFExtraction(ctx context.Context, pe *models.PDFExtraction) error {
	pe.ID = uuid.New().String()
	pe.CreatedAt = time.Now().UTC()

	query := db.Rebind(`
		INSERT INTO pdf_extractions (id, original_name, file_size, page_count, text_content, raw_text,
			word_count, char_count, estimated_tokens, status, error_message, owner, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := db.ExecContext(ctx, query,
		pe.ID, pe.OriginalName, pe.FileSize, pe.PageCount, pe.TextContent, pe.RawText,
		pe.WordCount, pe.CharCount, pe.EstimatedTokens, pe.Status, pe.ErrorMessage, pe.Owner,
		pe.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pdf extraction: %w", err)
	}
	return nil
}

// GetPDFExtraction retrieves a single PDF extraction by ID.
func (db *DB) GetPDFExtraction(ctx context.Context, id string) (*models.PDFExtraction, error) {
	// Postgres rejects a malformed UUID with a type error; treat it as missing.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var pe models.PDFExtraction
	err := db.GetContext(ctx, &pe, db.Rebind(`SELECT * FROM pdf_extractions WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pdf extraction: %w", err)
	}
	return &pe, nil
}

// ListPDFExtractions returns recent PDF extractions, newest first.
// A nil owner lists every record; otherwise only that owner's are returned.
func (db *DB) ListPDFExtractions(ctx context.Context, limit int, owner *string) ([]models.PDFExtraction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `SELECT * FROM pdf_extractions`
	args := []interface{}{}
	if owner != nil {
		query += ` WHERE owner = ?`
		args = append(args, *owner)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	var extractions []models.PDFExtraction
	if err := db.SelectContext(ctx, &extractions, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list pdf extractions: %w", err)
	}
	return extractions, nil
}

// DeletePDFExtraction removes a PDF extraction by ID.
func (db *DB) DeletePDFExtraction(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM pdf_extractions WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete pdf extraction: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
