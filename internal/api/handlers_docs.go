package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dgallion1/docstudy/internal/chunker"
	"github.com/dgallion1/docstudy/internal/llm"
	"github.com/dgallion1/docstudy/internal/pipeline"
	"github.com/dgallion1/docstudy/internal/topics"
)

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs := s.orchestrator.Documents().List()
	out := make([]map[string]any, len(docs))
	for i, d := range docs {
		out[i] = map[string]any{
			"doc_id":     d.ID,
			"title":      d.Title,
			"filename":   d.Filename,
			"topics":     len(d.Topics),
			"created_at": d.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": out})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w, r)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.orchestrator.Documents().Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}

func (s *Server) handleGetTopic(w http.ResponseWriter, r *http.Request) {
	doc, idx, topic, content, ok := s.topic(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":  doc.ID,
		"index":   idx,
		"topic":   topic,
		"content": content,
		"words":   chunker.CountWords(content),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	doc, idx, topic, content, ok := s.topic(w, r)
	if !ok {
		return
	}
	summary, err := s.model.Summarize(r.Context(), topic.Title, content)
	if err != nil {
		s.modelError(w, "summarize", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":  doc.ID,
		"index":   idx,
		"title":   topic.Title,
		"summary": summary,
	})
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	doc, idx, topic, content, ok := s.topic(w, r)
	if !ok {
		return
	}
	questions, err := s.model.GenerateQuiz(r.Context(), topic.Title, content)
	if err != nil {
		s.modelError(w, "quiz", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doc_id":    doc.ID,
		"index":     idx,
		"title":     topic.Title,
		"questions": questions,
	})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w, r)
	if doc == nil {
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	res, err := s.agent.Ask(r.Context(), question, doc.Sections())
	if err != nil {
		s.modelError(w, "ask", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullText    string `json:"full_text"`
		StartMarker string `json:"start_marker"`
		NextMarker  string `json:"next_marker"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	content := topics.Extract(req.FullText, req.StartMarker, req.NextMarker)
	writeJSON(w, http.StatusOK, map[string]any{
		"content": content,
		"words":   chunker.CountWords(content),
	})
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	if s.model == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"model": s.model.Model(),
		"stats": s.model.Report(),
	})
}

// document resolves {docID}, writing a 404 when it is unknown.
func (s *Server) document(w http.ResponseWriter, r *http.Request) *pipeline.Document {
	doc := s.orchestrator.Documents().Get(chi.URLParam(r, "docID"))
	if doc == nil {
		jsonError(w, "document not found", http.StatusNotFound)
	}
	return doc
}

func (s *Server) topic(w http.ResponseWriter, r *http.Request) (*pipeline.Document, int, topics.Topic, string, bool) {
	doc := s.document(w, r)
	if doc == nil {
		return nil, 0, topics.Topic{}, "", false
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "topic index must be an integer", http.StatusBadRequest)
		return nil, 0, topics.Topic{}, "", false
	}
	topic, content, ok := doc.TopicContent(idx)
	if !ok {
		jsonError(w, "topic not found", http.StatusNotFound)
		return nil, 0, topics.Topic{}, "", false
	}
	return doc, idx, topic, content, true
}

func (s *Server) modelError(w http.ResponseWriter, op string, err error) {
	s.log.Error("model call failed", "op", op, "error", err)

	var retryErr *llm.RetryableError
	var parseErr *llm.ParseError
	switch {
	case errors.As(err, &retryErr):
		w.Header().Set("Retry-After", "5")
		jsonError(w, "model temporarily unavailable", http.StatusServiceUnavailable)
	case errors.As(err, &parseErr):
		jsonError(w, "model returned an unusable response", http.StatusBadGateway)
	default:
		jsonError(w, op+" failed: "+err.Error(), http.StatusBadGateway)
	}
}
