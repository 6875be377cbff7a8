// Package models defines the data structures used throughout the application.
//
// Go Pattern: Models are plain structs with JSON tags for serialization.
// The database package handles persistence; the `db` tags work with sqlx
// for column mapping.
package models

import (
	"time"
)

// ExtractionStatus represents the outcome of a PDF extraction.
// Go Pattern: We use string constants instead of enums (Go doesn't have enums).
type ExtractionStatus string

const (
	StatusCompleted  ExtractionStatus = "completed"
	StatusLowContent ExtractionStatus = "low_content" // Probably image-based or encrypted
	StatusFailed     ExtractionStatus = "failed"
)

// PDFExtraction is one row of extraction history.
type PDFExtraction struct {
	ID              string           `json:"id" db:"id"`
	OriginalName    string           `json:"original_name" db:"original_name"`
	FileSize        int64            `json:"file_size" db:"file_size"` // Bytes uploaded
	PageCount       int              `json:"page_count" db:"page_count"`
	TextContent     string           `json:"text" db:"text_content"`
	RawText         string           `json:"raw_text" db:"raw_text"`
	WordCount       int              `json:"word_count" db:"word_count"`
	CharCount       int              `json:"char_count" db:"char_count"`
	EstimatedTokens int              `json:"estimated_tokens" db:"estimated_tokens"`
	Status          ExtractionStatus `json:"status" db:"status"`
	ErrorMessage    string           `json:"error_message,omitempty" db:"error_message"`
	Owner           *string          `json:"owner,omitempty" db:"owner"` // "key:<id>" or "jwt:<sub>"; nil when uploaded without auth
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}

// APIKey identifies a caller authenticated with X-API-Key.
// Note: We keep the HASH of the key, never the raw key itself.
type APIKey struct {
	ID        string `json:"id"`
	KeyHash   string `json:"-"`          // "-" means never serialize to JSON
	KeyPrefix string `json:"key_prefix"` // First 8 chars for identification
}

// --- Request/Response DTOs ---
// Go Pattern: Separate structs for API input/output vs database models.

// ExtractionResponse is returned by the PDF upload endpoints.
// Success is false for low-content PDFs, which still return 200.
type ExtractionResponse struct {
	Success         bool       `json:"success" yaml:"success"`
	ID              string     `json:"id,omitempty" yaml:"id,omitempty"`
	Filename        string     `json:"filename" yaml:"filename"`
	Error           string     `json:"error,omitempty" yaml:"error,omitempty"`
	Text            string     `json:"text" yaml:"text"`
	RawText         string     `json:"raw_text" yaml:"raw_text"`
	WordCount       int        `json:"word_count" yaml:"word_count"`
	CharCount       int        `json:"char_count" yaml:"char_count"`
	EstimatedTokens int        `json:"estimated_tokens,omitempty" yaml:"estimated_tokens,omitempty"`
	PageCount       int        `json:"page_count" yaml:"page_count"`
	SkippedPages    []int      `json:"skipped_pages,omitempty" yaml:"skipped_pages,omitempty"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty" yaml:"processed_at,omitempty"`
}

// ErrorResponse is a standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Database  string `json:"database"`
}
