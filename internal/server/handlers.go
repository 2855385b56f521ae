package server

import (
	"encoding/json"
	stderrors "errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/matzehuels/gvmanaged/pkg/buildinfo"
	"github.com/matzehuels/gvmanaged/pkg/diagram"
	"github.com/matzehuels/gvmanaged/pkg/errors"
	gvio "github.com/matzehuels/gvmanaged/pkg/io"
	"github.com/matzehuels/gvmanaged/pkg/pipeline"
	"github.com/matzehuels/gvmanaged/pkg/render/dot"
)

// Response headers set by POST /render.
const (
	CacheHeader     = "X-Cache"
	NodeCountHeader = "X-Node-Count"
	EdgeCountHeader = "X-Edge-Count"
)

var contentTypes = map[string]string{
	dot.Native: "text/vnd.graphviz; charset=utf-8",
	"svg":      "image/svg+xml",
	"png":      "image/png",
	"jpg":      "image/jpeg",
}

var manifestTypes = map[string]string{
	"application/toml":   gvio.FormatTOML,
	"text/toml":          gvio.FormatTOML,
	"application/yaml":   gvio.FormatYAML,
	"application/x-yaml": gvio.FormatYAML,
	"text/yaml":          gvio.FormatYAML,
	"text/x-yaml":        gvio.FormatYAML,
	"application/json":   gvio.FormatJSON,
	"text/json":          gvio.FormatJSON,
}

type errorBody struct {
	Code      string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Resolved(),
	})
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := diagram.Filter(diagram.Kinds(), r.URL.Query().Get("prefix"))
	if kinds == nil {
		kinds = []string{}
	}
	writeJSON(w, http.StatusOK, kinds)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := manifestFormat(q.Get("type"), r.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := gvio.Decode(http.MaxBytesReader(w, r.Body, s.maxBody), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.iconDir != "" && m.Type == gvio.TypeDiagram {
		m.IconDir = s.iconDir
	}

	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Manifest: m,
		Format:   q.Get("format"),
		Refresh:  refresh,
		Logger:   s.logger.With("request_id", requestIDFrom(r.Context())),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[res.Format])
	h.Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	h.Set(NodeCountHeader, strconv.Itoa(res.Stats.NodeCount))
	h.Set(EdgeCountHeader, strconv.Itoa(res.Stats.EdgeCount))
	if res.CacheHit {
		h.Set(CacheHeader, "HIT")
	} else {
		h.Set(CacheHeader, "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifact)
}

// manifestFormat picks the manifest format from the type query parameter,
// then the Content-Type header. Without either the body is read as TOML.
func manifestFormat(typ, contentType string) (string, error) {
	if typ != "" {
		typ = strings.ToLower(typ)
		if err := errors.ValidateFormat(typ, gvio.Formats); err != nil {
			return "", errors.New(errors.ErrCodeInvalidInput, "unsupported manifest type %q (must be one of %s)", typ, strings.Join(gvio.Formats, ", "))
		}
		return typ, nil
	}
	if contentType == "" {
		return gvio.FormatTOML, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid Content-Type %q", contentType)
	}
	if f, ok := manifestTypes[mt]; ok {
		return f, nil
	}
	if mt == "text/plain" || mt == "application/octet-stream" {
		return gvio.FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unsupported manifest Content-Type %q", mt)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeUnknownKind,
		errors.ErrCodeUnsupportedConnection,
		errors.ErrCodeInvalidConnector,
		errors.ErrCodeMissingDestination:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRender:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	body := errorBody{
		Code:      string(errors.GetCode(err)),
		Message:   errors.UserMessage(err),
		RequestID: requestIDFrom(r.Context()),
	}
	switch {
	case status == http.StatusRequestEntityTooLarge:
		body.Code = string(errors.ErrCodeInvalidInput)
		body.Message = "manifest too large"
	case body.Code == "":
		body.Code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err, "request_id", body.RequestID)
		body.Message = "internal error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
