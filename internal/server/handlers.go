package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/application-tailor/internal/artifacts"
	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/pipeline"
	"github.com/jonathan/application-tailor/internal/types"
)

// maxContentBytes bounds the size of edited content accepted by PUT.
const maxContentBytes = 1 << 20

// DocumentResponse is returned after a document is generated, fetched or edited.
type DocumentResponse struct {
	Document *types.Document  `json:"document"`
	Pages    int              `json:"pages,omitempty"`
	Report   *assembly.Report `json:"report,omitempty"`
	// Warning is set when the generated letter lacked sections that were filled with defaults.
	Warning string `json:"warning,omitempty"`
}

// requestFieldNames maps request struct fields to their JSON names.
var requestFieldNames = map[string]string{
	"ProfileID": "profile_id",
	"JobID":     "job_id",
	"Kind":      "kind",
	"Template":  "template",
	"Locale":    "locale",
}

// requestError turns a validator failure into an *types.InputError naming the top-level field.
func requestError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &types.InputError{Message: err.Error()}
	}
	fe := verrs[0]
	field := fe.Field()
	if parts := strings.Split(fe.StructNamespace(), "."); len(parts) > 1 {
		field = parts[1]
	}
	name, ok := requestFieldNames[field]
	if !ok {
		name = strings.ToLower(field)
	}
	return &types.InputError{
		Field:   name,
		Message: fmt.Sprintf("%s failed on the '%s' rule", fe.StructNamespace(), fe.Tag()),
	}
}

// requestLocale picks the language of user-facing error messages: the locale query
// parameter, then Accept-Language, then fallback.
func requestLocale(r *http.Request, fallback types.Locale) types.Locale {
	if q := types.Locale(r.URL.Query().Get("locale")); locale.Supported(q) {
		return q
	}
	if al := r.Header.Get("Accept-Language"); al != "" {
		tag := strings.SplitN(strings.SplitN(al, ",", 2)[0], ";", 2)[0]
		lang := types.Locale(strings.ToLower(strings.SplitN(strings.TrimSpace(tag), "-", 2)[0]))
		if locale.Supported(lang) {
			return lang
		}
	}
	if locale.Supported(fallback) {
		return fallback
	}
	return types.LocaleDE
}

// parseID reads a UUID path value.
func parseID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &types.InputError{Field: name, Message: "invalid ID format"}
	}
	return id, nil
}

// decodeGenerateRequest reads and validates the body of a generate request.
func decodeGenerateRequest(r *http.Request) (types.GenerateRequest, error) {
	var req types.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &types.InputError{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return req, requestError(err)
	}
	return req, nil
}

func templateLocale(req types.GenerateRequest) types.Locale {
	if req.Template == nil {
		return ""
	}
	return req.Template.Locale
}

// documentResponse builds the response for a finished session.
func documentResponse(s *pipeline.Session) DocumentResponse {
	resp := DocumentResponse{
		Document: s.Document(),
		Report:   s.Report,
	}
	if s.Layout != nil {
		resp.Pages = s.Layout.PageCount()
	}
	if s.Report != nil && len(s.Report.MissingSections) > 0 {
		resp.Warning = locale.Message(s.Template.Locale, locale.MsgIncomplete,
			strings.Join(s.Report.MissingSections, ", "))
	}
	return resp
}

// handleGenerate generates, lays out and stores a document
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r)
	if err != nil {
		s.writeError(w, r, requestLocale(r, templateLocale(req)), err)
		return
	}

	session, err := s.runner.Generate(r.Context(), req, nil)
	if err != nil {
		s.writeError(w, r, requestLocale(r, templateLocale(req)), err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, documentResponse(session))
}

// handleGenerateStream generates a document and streams progress via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGenerateRequest(r)
	loc := requestLocale(r, templateLocale(req))
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	stream, err := newProgressStream(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	session, err := s.runner.Generate(r.Context(), req, func(event pipeline.ProgressEvent) {
		if err := stream.step(event); err != nil {
			s.logger.WarnContext(r.Context(), "failed to write progress event", "step", event.Step, "error", err)
		}
	})
	if err != nil {
		s.logger.WarnContext(r.Context(), "streamed generation failed", "error", err)
		if err := stream.fail(errorBody(loc, err)); err != nil {
			s.logger.WarnContext(r.Context(), "failed to write error event", "error", err)
		}
		return
	}

	resp := documentResponse(session)
	if err := stream.document(resp); err != nil {
		s.logger.WarnContext(r.Context(), "failed to write document event", "error", err)
		return
	}
	if err := stream.complete(resp); err != nil {
		s.logger.WarnContext(r.Context(), "failed to write complete event", "error", err)
	}
}

// handleGetDocument returns a stored document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r, "")
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	doc, err := s.runner.Store.GetDocument(r.Context(), id)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, DocumentResponse{Document: doc})
}

// handleReplaceContent replaces a document's content with an edited version
func (s *Server) handleReplaceContent(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r, "")
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxContentBytes))
	if err != nil {
		s.writeError(w, r, loc, &types.InputError{Field: "body", Message: err.Error()})
		return
	}

	session, err := s.runner.ReplaceContent(r.Context(), id, data)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, documentResponse(session))
}

// handleDocumentPDF renders a stored document as PDF
func (s *Server) handleDocumentPDF(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r, "")
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	session, err := s.runner.Render(r.Context(), id)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	pdf, err := s.renderer.PDF(r.Context(), session.Layout)
	if err != nil {
		s.writeError(w, r, requestLocale(r, session.Template.Locale), err)
		return
	}

	name := artifacts.DocumentName(session.Kind, session.ID, "pdf")
	s.storeArtifact(w, r, name, artifacts.ContentTypePDF, pdf)
	s.binaryResponse(w, artifacts.ContentTypePDF, name, pdf)
}

// handlePagePreview renders one page of a stored document as PNG
func (s *Server) handlePagePreview(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r, "")
	id, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}
	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil {
		s.writeError(w, r, loc, &types.InputError{Field: "page", Message: "page must be a number"})
		return
	}
	scale := s.previewScale
	if q := r.URL.Query().Get("scale"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v < 0.5 || v > 4 {
			s.writeError(w, r, loc, &types.InputError{Field: "scale", Message: "scale must be between 0.5 and 4"})
			return
		}
		scale = v
	}

	session, err := s.runner.Render(r.Context(), id)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}
	if page < 1 || page > session.Layout.PageCount() {
		s.errorResponse(w, http.StatusNotFound,
			fmt.Sprintf("page %d not found, document has %d page(s)", page, session.Layout.PageCount()))
		return
	}

	png, err := s.renderer.PreviewPNG(r.Context(), session.Layout, page, scale)
	if err != nil {
		s.writeError(w, r, requestLocale(r, session.Template.Locale), err)
		return
	}

	w.Header().Set("X-Page-Count", strconv.Itoa(session.Layout.PageCount()))
	s.binaryResponse(w, artifacts.ContentTypePNG, artifacts.PageName(session.ID, page), png)
}

// handleOverviewPDF renders the applications overview of a profile as PDF
func (s *Server) handleOverviewPDF(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r, "")
	profileID, err := parseID(r, "id")
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	req := types.OverviewRequest{Locale: types.Locale(r.URL.Query().Get("locale"))}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, loc, requestError(err))
		return
	}

	doc, err := s.runner.Overview(r.Context(), profileID, req.Locale)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	pdf, err := s.renderer.PDF(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, loc, err)
		return
	}

	name := overviewName(profileID, doc)
	s.storeArtifact(w, r, name, artifacts.ContentTypePDF, pdf)
	s.binaryResponse(w, artifacts.ContentTypePDF, name, pdf)
}

func overviewName(profileID uuid.UUID, doc *layout.Document) string {
	return fmt.Sprintf("applications-%s-%s.pdf", profileID, doc.Locale)
}

// storeArtifact copies a rendered artifact to the configured sink. A failed copy is logged
// and the download is still served.
func (s *Server) storeArtifact(w http.ResponseWriter, r *http.Request, name, contentType string, data []byte) {
	if s.sink == nil {
		return
	}
	location, err := s.sink.Put(r.Context(), name, contentType, data)
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to store artifact", "name", name, "error", err)
		return
	}
	w.Header().Set("X-Artifact-Location", location)
}
