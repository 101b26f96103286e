package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docstudy/internal/config"
	"github.com/dgallion1/docstudy/internal/llm"
	"github.com/dgallion1/docstudy/internal/pipeline"
	"github.com/dgallion1/docstudy/internal/research"
)

// StudyModel is the model surface the study endpoints use. *llm.Client
// implements it.
type StudyModel interface {
	research.Model
	Summarize(ctx context.Context, title, content string) (string, error)
	GenerateQuiz(ctx context.Context, title, content string) ([]llm.Question, error)
	Model() string
	Report() llm.Report
}

// Server is the HTTP API server for docstudy.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	model        StudyModel
	agent        *research.Agent
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, model StudyModel, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		model:        model,
		agent:        research.NewAgent(model, log),
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocstudyAPIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)

		r.Get("/api/documents", s.handleListDocuments)
		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/topics/{index}", s.handleGetTopic)
			r.Post("/topics/{index}/summary", s.handleSummary)
			r.Post("/topics/{index}/quiz", s.handleQuiz)
			r.Post("/ask", s.handleAsk)
		})

		r.Post("/api/extract", s.handleExtract)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
