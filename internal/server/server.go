// Package server serves a form over HTTP: the form page with its records
// table, per-field event endpoints, submission, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/policy"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
)

const (
	fieldsPrefix      = "/fields/"
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	Title          string
	AllowedOrigins []string
	Defaults       map[string]any
	Form           model.FormConfig
}

// Option configures a Server.
type Option func(*Server)

// WithConfig applies server settings.
func WithConfig(cfg Config) Option {
	return func(s *Server) {
		s.cfg = cfg
	}
}

// WithLogger sets the request and event logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRegistry registers metrics on reg and serves them from /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithHTMLRenderer overrides the page renderer.
func WithHTMLRenderer(r *html.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.html = r
		}
	}
}

// Server owns one form instance and the records submitted through it.
type Server struct {
	cfg      Config
	logger   zerolog.Logger
	registry *prometheus.Registry
	html     *html.Renderer

	mu         sync.Mutex
	controller *form.Controller
	records    *Records
	metrics    *Metrics
}

// New builds a server for schema.
func New(schema *model.Schema, options ...Option) (*Server, error) {
	s := &Server{
		logger:  zerolog.Nop(),
		records: NewRecords(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry)

	if s.html == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, err
		}
		s.html = renderer
	}

	controller, err := form.New(schema,
		form.WithDefaults(s.cfg.Defaults),
		form.WithConfig(s.cfg.Form),
		form.WithPolicy(policy.Dependencies()),
		form.WithLogger(s.logger),
		form.WithOnSubmit(s.recordSubmission),
	)
	if err != nil {
		return nil, err
	}
	s.controller = controller
	return s, nil
}

// Controller exposes the form instance.
func (s *Server) Controller() *form.Controller { return s.controller }

// Records exposes the submitted records.
func (s *Server) Records() *Records { return s.records }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/controls", s.handleControls)
	r.Post(fieldsPrefix+"{name}", s.handleEvent)
	r.Post("/submit", s.handleSubmit)
	r.Get("/records", s.handleRecords)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves Handler on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("dynform server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	controls := s.controller.Render()
	s.mu.Unlock()

	formHTML, err := s.html.RenderForm(controls, html.FormView{
		Action:      "/submit",
		EventPrefix: fieldsPrefix,
		Config:      s.controller.Config(),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	tableHTML, err := s.html.RenderTable(s.controller.Schema(), s.records.Values())
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := s.html.RenderPage(html.PageView{Title: s.title(), Form: formHTML, Table: tableHTML})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleControls(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	controls := s.controller.Render()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, controls)
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	name := chi.URLParam(r, "name")
	action := form.Action(r.Form.Get(html.ParamAction))
	var value any = r.Form.Get(html.ParamValue)
	if action == form.ActionAddOption {
		if pending, ok := r.PostForm[html.PendingPrefix+name]; ok && len(pending) > 0 {
			value = pending[0]
		} else if _, ok := r.Form[html.ParamValue]; !ok {
			value = nil
		}
	}

	s.mu.Lock()
	s.syncForm(r.PostForm)
	before := len(s.controller.Schema().Options(name))
	err := s.controller.Apply(form.Event{Field: name, Action: action, Value: value})
	added := action == form.ActionAddOption && len(s.controller.Schema().Options(name)) > before
	control, _ := s.controller.Control(name)
	s.mu.Unlock()

	switch {
	case errors.Is(err, form.ErrUnknownField):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, form.ErrUnknownAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		s.fail(w, err)
		return
	}

	s.metrics.recordEvent(string(action))
	if added {
		s.metrics.recordOptionAdded()
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, control)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.syncForm(r.PostForm)
	record := s.controller.Submit()
	s.mu.Unlock()

	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, record)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRecords(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.records.List())
}

// syncForm applies the field values of a full-form post. Posts without the
// form marker carry only event parameters and leave values alone.
func (s *Server) syncForm(values url.Values) {
	if values.Get(html.ParamForm) == "" {
		return
	}
	for _, control := range s.controller.Render() {
		if control.Hidden || control.Disabled || control.ReadOnly {
			continue
		}
		var err error
		switch control.Kind {
		case render.KindMultiSelect:
			if control.AddOption != nil {
				if text, ok := values[html.PendingPrefix+control.Name]; ok && len(text) > 0 {
					err = s.controller.Apply(form.Event{Field: control.Name, Action: form.ActionPending, Value: text[0]})
				}
			}
		case render.KindSwitch, render.KindCheckbox:
			err = s.controller.Apply(form.Event{Field: control.Name, Action: form.ActionChange, Value: values.Get(control.Name)})
		default:
			raw, ok := values[control.Name]
			if !ok || len(raw) == 0 {
				continue
			}
			// Password inputs render empty, so a blank post keeps the stored value.
			if control.Type == model.FieldTypePassword && raw[0] == "" {
				continue
			}
			err = s.controller.Apply(form.Event{Field: control.Name, Action: form.ActionChange, Value: raw[0]})
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("field", control.Name).Msg("sync form value")
		}
	}
}

func (s *Server) recordSubmission(record form.Record) {
	entry := s.records.Add(record)
	s.metrics.recordSubmission()
	s.logger.Info().Str("id", entry.ID).Int("fields", len(record)).Msg("form submitted")
}

func (s *Server) title() string {
	if s.cfg.Title != "" {
		return s.cfg.Title
	}
	return "Form"
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
