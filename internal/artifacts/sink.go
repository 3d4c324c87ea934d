// Package artifacts stores rendered files (PDFs, page previews) where users can download them.
package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/types"
)

// Content types of stored artifacts.
const (
	ContentTypePDF = "application/pdf"
	ContentTypePNG = "image/png"
)

// Sink stores a finished artifact under name and returns where it can be fetched from.
type Sink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// DocumentName returns the artifact name for a document, e.g. "cover_letter-<id>.pdf".
func DocumentName(kind types.DocumentKind, id uuid.UUID, ext string) string {
	return fmt.Sprintf("%s-%s.%s", kind, id, strings.TrimPrefix(ext, "."))
}

// PageName returns the artifact name of a single page preview.
func PageName(id uuid.UUID, page int) string {
	return fmt.Sprintf("%s-page-%d.png", id, page)
}

// DirSink writes artifacts into a local directory.
type DirSink struct {
	Root string
}

// NewDirSink creates a sink rooted at root.
func NewDirSink(root string) *DirSink {
	return &DirSink{Root: root}
}

// Put writes data to Root/name and returns the file path.
func (s *DirSink) Put(_ context.Context, name, _ string, data []byte) (string, error) {
	if !filepath.IsLocal(name) {
		return "", &StoreError{Name: name, Message: "name must stay inside the output directory"}
	}
	path := filepath.Join(s.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", &StoreError{Name: name, Message: "failed to create directory", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &StoreError{Name: name, Message: "failed to write file", Cause: err}
	}
	return path, nil
}

// StoreError reports a failed artifact write.
type StoreError struct {
	Name    string
	Message string
	Cause   error
}

func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("artifact %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("artifact %s: %s", e.Name, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
