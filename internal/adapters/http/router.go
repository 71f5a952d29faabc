package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/essaylab/essaylab-backend/internal/config"
	"github.com/essaylab/essaylab-backend/internal/core/ports"
	"github.com/essaylab/essaylab-backend/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	cfg      config.Config
	auth     ports.Authenticator
	pipeline ports.UploadPipeline
	analysis ports.AnalysisService
	scores   ports.ScoreReader
	practice ports.PracticeService
	tokens   ports.TokenIssuer
	health   ports.DatabaseHealth
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(
	cfg config.Config,
	auth ports.Authenticator,
	pipeline ports.UploadPipeline,
	analysis ports.AnalysisService,
	scores ports.ScoreReader,
	practice ports.PracticeService,
	tokens ports.TokenIssuer,
	health ports.DatabaseHealth,
) *Router {
	return &Router{
		cfg:      cfg,
		auth:     auth,
		pipeline: pipeline,
		analysis: analysis,
		scores:   scores,
		practice: practice,
		tokens:   tokens,
		health:   health,
	}
}

// SetMetrics wires the prometheus registry; without it the router still
// serves, just unobserved.
func (rt *Router) SetMetrics(m *metrics.HTTPServerMetrics) {
	rt.metrics = m
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/register", rt.register)
	mux.HandleFunc("/api/login", rt.login)
	mux.HandleFunc("/api/users", rt.listUsers)
	mux.HandleFunc("/api/user/scores", rt.latestScores)
	mux.HandleFunc("/api/user/scores/export", rt.exportScores)
	mux.HandleFunc("/api/user/me", rt.requireAuth(rt.profile))
	mux.HandleFunc("/api/homework", rt.latestPractice)
	mux.HandleFunc("/api/analyze", rt.analyzeText)
	mux.HandleFunc("/api/generate-homework", rt.generateHomework)
	mux.HandleFunc("/upload", rt.upload)
	mux.HandleFunc("/", rt.liveness)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, rt.cfg.BackpressureWait())
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// liveness answers GET / with the database timestamp in plain text.
func (rt *Router) liveness(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}

	now, err := rt.health.Now(r.Context())
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(now))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
