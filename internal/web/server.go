// Package web serves the colour grids as linked HTML pages, JSON and PNG
// swatches.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/colourgrid/internal/grid"
	tmplloader "github.com/jmylchreest/colourgrid/internal/template"
)

// PageTemplate is the name of the grid page template.
const PageTemplate = "grid.html.tmpl"

//go:embed *.tmpl
var templates embed.FS

// NewTemplateLoader returns the loader for the page templates, preferring
// customised copies in customDir (or the default location when empty).
func NewTemplateLoader(customDir string) *tmplloader.Loader {
	return tmplloader.New("web", templates).WithCustomDir(customDir)
}

// Options configures a Server.
type Options struct {
	Addr            string
	Title           string
	ShutdownTimeout time.Duration
}

// Server serves the grids of a single geometry.
type Server struct {
	geometry *grid.Geometry
	logger   hclog.Logger
	opts     Options
	page     *template.Template
	handler  http.Handler
}

// New creates a server for geometry. The page template is read once through
// loader, so a customised template must parse or New fails.
func New(geometry *grid.Geometry, loader *tmplloader.Loader, logger hclog.Logger, opts Options) (*Server, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if loader == nil {
		loader = NewTemplateLoader("")
	}
	logger = logger.Named("web")

	content, fromCustom, err := loader.WithLogger(logger).Load(PageTemplate)
	if err != nil {
		return nil, err
	}
	page, err := template.New(PageTemplate).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template (custom: %t): %w", fromCustom, err)
	}

	s := &Server{
		geometry: geometry,
		logger:   logger,
		opts:     opts,
		page:     page,
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleFirst)
	mux.HandleFunc("GET /{depth}/{hex}", s.handleGrid)
	mux.HandleFunc("GET /api/grids/{depth}/{hex}", s.handleAPIGrid)
	mux.HandleFunc("GET /swatches/{depth}/{file}", s.handleSwatch)
	mux.HandleFunc("/", s.handleNotFound)

	return s.recoverPanics(s.logRequests(mux))
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		timeout := s.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		writeHTMLError(w, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func writeHTMLError(w http.ResponseWriter, status int) {
	msg := "Page not found."
	if status != http.StatusNotFound {
		msg = "Internal server error."
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, "<p>%s</p>\n", msg)
}
