package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmylchreest/colourgrid/internal/grid"
	"github.com/jmylchreest/colourgrid/internal/swatch"
)

const pngSuffix = ".png"

// maxSwatchPixels caps swatches served over HTTP below the export limit.
const maxSwatchPixels = 2048 * 2048

func (s *Server) handleFirst(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var previous string
	if prev := query.Get(prevArg); s.geometry.Space().IsValidHex(prev) {
		previous = prev
	}

	s.renderPage(w, newPageData(s.geometry.First(), s.opts.Title, r.URL.Path, query, previous))
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGrid(r.PathValue("depth"), r.PathValue("hex"))
	if err != nil {
		s.logger.Debug("grid not found", "path", r.URL.Path, "error", err)
		writeHTMLError(w, http.StatusNotFound)
		return
	}

	s.renderPage(w, newPageData(g, s.opts.Title, r.URL.Path, r.URL.Query(), ""))
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeHTMLError(w, http.StatusNotFound)
}

// lookupGrid parses the depth and start colour of a grid URL. Every failure
// means the page does not exist.
func (s *Server) lookupGrid(depthText, hex string) (*grid.Grid, error) {
	depth, err := grid.ParseDepth(depthText)
	if err != nil {
		return nil, err
	}

	start, err := s.geometry.Space().ParseHex(hex)
	if err != nil {
		return nil, err
	}

	return s.geometry.Grid(depth, start)
}

func (s *Server) handleAPIGrid(w http.ResponseWriter, r *http.Request) {
	g, err := s.lookupGrid(r.PathValue("depth"), r.PathValue("hex"))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, g)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		writeHTMLError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) handleSwatch(w http.ResponseWriter, r *http.Request) {
	hex, ok := strings.CutSuffix(r.PathValue("file"), pngSuffix)
	if !ok {
		writeHTMLError(w, http.StatusNotFound)
		return
	}

	g, err := s.lookupGrid(r.PathValue("depth"), hex)
	if err != nil {
		s.logger.Debug("swatch not found", "path", r.URL.Path, "error", err)
		writeHTMLError(w, http.StatusNotFound)
		return
	}

	opts := swatch.Options{
		Labels:    r.URL.Query().Get("labels") == "1",
		MaxPixels: maxSwatchPixels,
	}
	if size := r.URL.Query().Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil {
			writeHTMLError(w, http.StatusNotFound)
			return
		}
		opts.CellSize = n
	}

	img, err := swatch.Render(g, opts)
	if err != nil {
		s.logger.Debug("invalid swatch options", "error", err)
		writeHTMLError(w, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := swatch.Encode(&buf, img); err != nil {
		s.logger.Error("failed to encode swatch", "error", err)
		writeHTMLError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}
