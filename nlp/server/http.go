// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/oarkflow/xid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oarkflow/transcripts/nlp/cleaner"
	"github.com/oarkflow/transcripts/nlp/corpus"
	"github.com/oarkflow/transcripts/nlp/logger"
	"github.com/oarkflow/transcripts/nlp/pipeline"
	"github.com/oarkflow/transcripts/nlp/topic"
)

const shutdownTimeout = 5 * time.Second

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Documents []corpus.Document `json:"documents"`
}

// Server serves the pipeline on a fiber app.
type Server struct {
	app      *fiber.App
	pipeline *pipeline.Pipeline
	log      *slog.Logger
}

// New builds the routes:
//
//	GET  /healthz  liveness
//	GET  /metrics  prometheus exposition of the pipeline registry
//	POST /analyze  analyse the posted documents and return the report
func New(p *pipeline.Pipeline, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{pipeline: p, log: log}
	app := fiber.New(fiber.Config{
		AppName:               "transcripts",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          s.handleError,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return xid.New().String()
		},
	}))
	app.Use(s.accessLog)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(p.Metrics().Registry, promhttp.HandlerOpts{})))
	app.Post("/analyze", s.analyze)
	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App { return s.app }

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- s.app.Listen(addr)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("http server shutting down")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}

func (s *Server) analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	docs, err := validate(req.Documents)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	log := s.log.With("request_id", c.Locals(requestid.ConfigDefault.ContextKey))
	ctx := logger.ContextWithLogger(c.UserContext(), log)

	res, err := s.pipeline.Analyze(ctx, docs)
	if err != nil {
		return err
	}
	if err := s.pipeline.Archive(ctx, res); err != nil {
		log.Warn("archiving run failed", "run_id", res.RunID, "error", err)
	}
	return c.JSON(res.Report(s.pipeline.Config()))
}

// validate sorts documents by name and rejects empty or duplicate names.
func validate(docs []corpus.Document) ([]corpus.Document, error) {
	if len(docs) == 0 {
		return nil, errors.New("documents must not be empty")
	}
	seen := make(map[string]struct{}, len(docs))
	out := make([]corpus.Document, 0, len(docs))
	for _, d := range docs {
		name := strings.TrimSpace(d.FileName)
		if name == "" {
			return nil, errors.New("every document needs a file_name")
		}
		if _, dup := seen[name]; dup {
			return nil, errors.New("duplicate file_name " + name)
		}
		seen[name] = struct{}{}
		out = append(out, corpus.Document{FileName: name, Text: strings.ToValidUTF8(d.Text, "�")})
	}
	corpus.SortByName(out)
	return out, nil
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	var fitErr *topic.ModelFitError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, cleaner.ErrEmptyInput), errors.As(err, &fitErr):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		code = fiber.StatusServiceUnavailable
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"code": code, "error": err.Error()})
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	s.log.Debug("http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"duration", time.Since(start),
	)
	return err
}
