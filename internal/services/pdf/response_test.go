package pdf

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Shimizu-Technology/pdf-text-service/internal/models"
)

func TestBuildResponse_Success(t *testing.T) {
	raw := "--- Page 1 ---\nHello World\n42\n--- Page 2 ---\nMore   text here"
	cleaned := Clean(raw)
	r := &Result{Text: cleaned, RawText: raw, PageCount: 2, PagesWithText: 2, Stats: ComputeStats(cleaned)}
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	resp := BuildResponse("report.pdf", r, now)

	if !resp.Success || resp.Error != "" {
		t.Errorf("Success/Error = %v/%q, want true/empty", resp.Success, resp.Error)
	}
	if resp.Text != cleaned || resp.RawText != raw {
		t.Errorf("Text/RawText not copied from result: %+v", resp)
	}
	if resp.WordCount != 13 || resp.CharCount != len(cleaned) || resp.EstimatedTokens != len(cleaned)/4 {
		t.Errorf("counts = %d/%d/%d", resp.WordCount, resp.CharCount, resp.EstimatedTokens)
	}
	if resp.ProcessedAt == nil || !resp.ProcessedAt.Equal(now) {
		t.Errorf("ProcessedAt = %v, want %v", resp.ProcessedAt, now)
	}

	pe := Record(resp, 1234)
	if pe.Status != models.StatusCompleted || pe.FileSize != 1234 || pe.TextContent != cleaned {
		t.Errorf("Record() = %+v", pe)
	}
}

func TestBuildResponse_LowContent(t *testing.T) {
	r := &Result{RawText: "--- P", PageCount: 4}

	resp := BuildResponse("scan.pdf", r, time.Now())

	if resp.Success {
		t.Error("Success = true for a low-content result")
	}
	if resp.Error != LowContentError {
		t.Errorf("Error = %q, want %q", resp.Error, LowContentError)
	}
	if !strings.HasPrefix(resp.Text, "[PDF Content from scan.pdf]") {
		t.Errorf("Text = %q, want placeholder", resp.Text)
	}
	if resp.WordCount != 0 || resp.CharCount != 5 {
		t.Errorf("WordCount/CharCount = %d/%d, want 0/5", resp.WordCount, resp.CharCount)
	}
	if resp.ProcessedAt != nil {
		t.Error("ProcessedAt set on a low-content response")
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"estimated_tokens"`, `"processed_at"`} {
		if strings.Contains(string(body), key) {
			t.Errorf("low-content JSON has %s: %s", key, body)
		}
	}

	pe := Record(resp, 99)
	if pe.Status != models.StatusLowContent || pe.ErrorMessage != LowContentError {
		t.Errorf("Record() status/error = %s/%q", pe.Status, pe.ErrorMessage)
	}
}
