package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appanalyses "github.com/bryanwahyu/automaton-compliance/internal/application/analyses"
	appchat "github.com/bryanwahyu/automaton-compliance/internal/application/chat"
	domai "github.com/bryanwahyu/automaton-compliance/internal/domain/ai"
	domain "github.com/bryanwahyu/automaton-compliance/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-compliance/internal/middleware"
)

type Router struct {
	analysesSvc *appanalyses.Service
	chatRouter  *appchat.Router
	qaSvc       *appchat.QAService
	reviewSvc   *appchat.ReviewService
}

func NewRouter(analysesSvc *appanalyses.Service, chatRouter *appchat.Router, qaSvc *appchat.QAService, reviewSvc *appchat.ReviewService) http.Handler {
	r := &Router{analysesSvc: analysesSvc, chatRouter: chatRouter, qaSvc: qaSvc, reviewSvc: reviewSvc}
	mux := chi.NewRouter()

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Post("/chat", r.wrap(r.handleChat))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/analyses/{id}/scores", r.wrap(r.handleScores))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks errors caused by the caller's input.
type badRequest struct{ err error }

func (e badRequest) Error() string { return e.err.Error() }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequest
			if errors.As(err, &br) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "model quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{tenant}/chat
// Body: {"message": "<question or pasted document>"}
// The router model picks the handler; the multi-agent path runs the full
// pipeline synchronously and returns the report inline.
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	body.Message = middleware.SanitizeString(body.Message)
	if err := middleware.ValidateContent(body.Message); err != nil {
		return badRequest{err}
	}

	route := r.chatRouter.Route(req.Context(), body.Message)

	resp := map[string]any{"route": route}
	switch route {
	case appchat.RouteQA:
		answer, chunks, err := r.qaSvc.Answer(req.Context(), body.Message)
		if err != nil {
			return err
		}
		sources := make([]map[string]any, 0, len(chunks))
		for _, c := range chunks {
			sources = append(sources, map[string]any{"source": c.Source, "page": c.Page})
		}
		resp["answer"] = answer
		resp["sources"] = sources

	case appchat.RouteDocumentAnalysis:
		answer, err := r.reviewSvc.Review(req.Context(), body.Message)
		if err != nil {
			return err
		}
		resp["answer"] = answer

	case appchat.RouteMultiAgent:
		middleware.IncrementAnalyses()
		rec, outcomes, err := r.analysesSvc.Analyze(req.Context(), tenant, "", body.Message)
		if err != nil {
			return err
		}
		if domain.AnyDegraded(outcomes) {
			middleware.IncrementAnalysesDegraded()
		}
		res, err := appanalyses.DecodeResult(rec.Result)
		if err != nil {
			return err
		}
		resp["answer"] = res.State.FinalReport
		resp["analysis_id"] = rec.ID
		resp["overall_score"] = rec.OverallScore
		resp["overall_grade"] = rec.OverallGrade
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}

// POST /v1/{tenant}/analyze
// Body: {"content": "<document text>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{err}
	}
	body.Content = middleware.SanitizeString(body.Content)
	if err := middleware.ValidateContent(body.Content); err != nil {
		return badRequest{err}
	}

	id := domain.AnalysisID(uuid.NewString())

	// Jalankan di background, biar jalan sampai selesai
	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	go func() {
		defer middleware.DecrementAnalysesRunning()
		outcomes := r.analysesSvc.AnalyzeUntilDone(tenant, id, body.Content)
		if domain.AnyDegraded(outcomes) {
			middleware.IncrementAnalysesDegraded()
		}
	}()

	resp := map[string]any{
		"status":   "queued",
		"tenant":   tenant,
		"id":       id,
		"message":  "analysis started in background",
		"queuedAt": time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	return json.NewEncoder(w).Encode(resp)
}

// GET /v1/{tenant}/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.analysesSvc.Paginate(req.Context(), tenant, middleware.ValidatePage(page), middleware.ValidatePageSize(size))
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest{err}
	}

	rec, err := r.analysesSvc.Get(req.Context(), tenant, domain.AnalysisID(id))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(rec)
}

// GET /v1/{tenant}/analyses/{id}/scores
// Chart-ready view of the per-category compliance scores.
func (r *Router) handleScores(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest{err}
	}

	rec, err := r.analysesSvc.Get(req.Context(), tenant, domain.AnalysisID(id))
	if err != nil {
		return err
	}
	res, err := appanalyses.DecodeResult(rec.Result)
	if err != nil {
		return fmt.Errorf("stored result for %s: %w", id, err)
	}

	categories := make([]string, 0, len(domain.RiskCategories))
	scores := make([]float64, 0, len(domain.RiskCategories))
	grades := make([]string, 0, len(domain.RiskCategories))
	for _, cat := range domain.RiskCategories {
		cs, ok := res.State.ComplianceScores[cat]
		if !ok {
			continue
		}
		categories = append(categories, cat)
		scores = append(scores, cs.Score)
		grades = append(grades, cs.Grade)
	}

	resp := map[string]any{
		"id":         rec.ID,
		"categories": categories,
		"scores":     scores,
		"grades":     grades,
	}
	if overall, ok := res.State.OverallScore(); ok {
		resp["overall_score"] = overall.Score
		resp["overall_grade"] = overall.Grade
		resp["overall_percentage"] = overall.Percentage
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(resp)
}
