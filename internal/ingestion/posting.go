// Package ingestion turns job posting pages into job records of a profile.
package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/fetch"
	"github.com/jonathan/application-tailor/internal/parsing"
	"github.com/jonathan/application-tailor/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be fetched
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no posting text can be extracted
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// Posting is what a job posting page reveals about the job.
type Posting struct {
	URL      string         `json:"url"`
	Platform fetch.Platform `json:"platform"`
	Title    string         `json:"title,omitempty"`
	Company  string         `json:"company,omitempty"`
	Address  types.Address  `json:"address"`
	Text     string         `json:"text"`
	// Hash is the SHA-256 hex digest of Text.
	Hash string `json:"hash"`
}

// Options configures FromURL.
type Options struct {
	Fetch *fetch.Options
	// UseBrowser renders the page in headless Chrome when plain HTTP yields too little text.
	UseBrowser     bool
	ChromePath     string
	BrowserTimeout time.Duration
}

// FromURL fetches a job posting page and extracts its metadata and main text.
func FromURL(ctx context.Context, urlStr string, opts Options) (*Posting, error) {
	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	posting, err := ParsePage(urlStr, result.HTML)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "extracted job posting",
		"url", urlStr, "platform", posting.Platform, "chars", len(posting.Text))

	if opts.UseBrowser && fetch.ShouldUseBrowser(posting.Text) {
		timeout := opts.BrowserTimeout
		if timeout == 0 {
			timeout = fetch.DefaultTimeout
		}
		html, err := fetch.WithBrowser(ctx, urlStr, opts.ChromePath, timeout)
		if err != nil {
			// Keep the HTTP content
			slog.WarnContext(ctx, "browser rendering failed", "url", urlStr, "error", err)
		} else if rendered, err := ParsePage(urlStr, html); err == nil && len(rendered.Text) > len(posting.Text) {
			posting = rendered
		}
	}

	if strings.TrimSpace(posting.Text) == "" {
		return nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}
	return posting, nil
}

// ParsePage extracts a posting from fetched HTML without any network access.
func ParsePage(urlStr, html string) (*Posting, error) {
	platform := fetch.DetectPlatform(urlStr)

	meta, err := readMetadata(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	text, err := fetch.ExtractMainText(html, fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	text = parsing.CleanText(text)

	// Structured data often carries the full description even when the page body is rendered client-side.
	if meta.Description != "" && fetch.ShouldUseBrowser(text) {
		if described, err := parsing.NotesText(meta.Description); err == nil && len(described) > len(text) {
			text = described
		}
	}

	return &Posting{
		URL:      urlStr,
		Platform: platform,
		Title:    meta.Title,
		Company:  meta.Company,
		Address:  meta.Address,
		Text:     text,
		Hash:     computeHash(text),
	}, nil
}

// Job returns the posting as a draft job of the profile. An unknown company falls back to
// the host name of the posting URL.
func (p *Posting) Job(profileID uuid.UUID) *types.Job {
	job := &types.Job{
		ProfileID: profileID,
		Company:   p.Company,
		Title:     p.Title,
		Notes:     p.Text,
		Address:   p.Address,
		Status:    types.StatusDraft,
	}
	if job.Company == "" {
		job.Company = hostOf(p.URL)
	}
	return job
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
