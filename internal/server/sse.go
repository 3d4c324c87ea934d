package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/jonathan/application-tailor/internal/pipeline"
)

// Events of a generation stream, in the order a client sees them.
const (
	eventStep     = "step"
	eventDocument = "document"
	eventError    = "error"
	eventComplete = "complete"
)

// progressStream writes the progress of one generation run as server-sent events.
// Every event carries an increasing id so clients can tell where a dropped stream ended.
type progressStream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	seq     int
}

func newProgressStream(w http.ResponseWriter) (*progressStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &progressStream{w: w, flusher: flusher}, nil
}

func (p *progressStream) send(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	if _, err := fmt.Fprintf(p.w, "id: %d\nevent: %s\ndata: %s\n\n", p.seq, event, payload); err != nil {
		return err
	}
	p.flusher.Flush()
	return nil
}

func (p *progressStream) step(e pipeline.ProgressEvent) error {
	return p.send(eventStep, e)
}

func (p *progressStream) document(resp DocumentResponse) error {
	return p.send(eventDocument, resp)
}

// fail ends the stream with the body a JSON error response would carry.
func (p *progressStream) fail(body ErrorResponse) error {
	return p.send(eventError, body)
}

func (p *progressStream) complete(resp DocumentResponse) error {
	return p.send(eventComplete, map[string]any{
		"document_id": resp.Document.ID,
		"pages":       resp.Pages,
		"status":      "completed",
	})
}
