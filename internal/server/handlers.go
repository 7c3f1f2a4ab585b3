package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/assetmap/pkg/buildinfo"
	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/inventory"
	"github.com/matzehuels/assetmap/pkg/mapping"
	"github.com/matzehuels/assetmap/pkg/observability"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// =============================================================================
// Wire Types
// =============================================================================

// MapRequest is the body of POST /v1/map and POST /v1/render.
type MapRequest struct {
	Nodes   []inventory.Node `json:"nodes"`
	Edges   []inventory.Edge `json:"edges"`
	Routing string           `json:"routing,omitempty"`
	Pass    string           `json:"pass,omitempty"`

	// Render-only options
	Detailed bool   `json:"detailed,omitempty"`
	RankDir  string `json:"rank_dir,omitempty"`
}

// MapResponse is the body returned by POST /v1/map.
type MapResponse struct {
	Pass      string            `json:"pass"`
	Elements  []graph.Element   `json:"elements"`
	Conflicts []ConflictJSON    `json:"conflicts"`
	Warnings  []WarningJSON     `json:"warnings"`
	Nesting   map[string]string `json:"nesting"`
	Stats     mapping.Stats     `json:"stats"`
}

// ConflictJSON reports a node with more than one membership.
type ConflictJSON struct {
	NodeID      string   `json:"nodeId"`
	Memberships []string `json:"memberships"`
}

// WarningJSON reports a dropped edge.
type WarningJSON struct {
	EdgeID  string   `json:"edgeId"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Missing []string `json:"missing"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"requestId,omitempty"`
	} `json:"error"`
}

func (req MapRequest) inventory() inventory.Inventory {
	return inventory.Inventory{Nodes: req.Nodes, Edges: req.Edges}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	opts := s.options(req)
	res, err := s.runner.Map(r.Context(), req.inventory(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := MapResponse{
		Pass:      res.Pass,
		Elements:  graph.FromResult(res),
		Conflicts: make([]ConflictJSON, 0, len(res.Conflicts)),
		Warnings:  make([]WarningJSON, 0, len(res.Warnings)),
		Nesting:   res.Nesting,
		Stats:     res.Stats(),
	}
	for _, c := range res.Conflicts {
		cj := ConflictJSON{NodeID: c.NodeID}
		for _, m := range c.Memberships {
			cj.Memberships = append(cj.Memberships, m.Key())
		}
		resp.Conflicts = append(resp.Conflicts, cj)
	}
	for _, wr := range res.Warnings {
		resp.Warnings = append(resp.Warnings, WarningJSON{
			EdgeID: wr.EdgeID, From: wr.From, To: wr.To, Missing: wr.Missing,
		})
	}
	if resp.Nesting == nil {
		resp.Nesting = map[string]string{}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	opts := s.options(req)
	opts.Formats = []string{format}
	opts.Detailed = req.Detailed
	opts.RankDir = req.RankDir
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	res, err := s.runner.Execute(r.Context(), req.inventory(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	data := res.Artifacts[format]
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheState)
	w.Header().Set("X-Assetmap-Pass", res.Mapping.Pass)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) options(req MapRequest) pipeline.Options {
	routing := req.Routing
	if routing == "" {
		routing = s.routing
	}
	return pipeline.Options{
		Routing: routing,
		Pass:    req.Pass,
		Logger:  s.logger,
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (MapRequest, bool) {
	var req MapRequest
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeStatus(w, r, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body too large")
			return req, false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return req, false
	}
	return req, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsInvalidInput(err) {
		status = http.StatusBadRequest
	} else {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "id", RequestID(r.Context()), "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	s.writeStatus(w, r, status, string(code), msg)
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Error.RequestID = RequestID(r.Context())
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}
