package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/conncheck/api"
	"github.com/aretw0/conncheck/internal/logging"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/aretw0/conncheck/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server implements the backend endpoints.
type Server struct {
	store    ports.TodoStore
	logger   *slog.Logger
	limiter  *clientLimiter
	registry *prometheus.Registry
	now      func() time.Time
	randInt  func(min, max int) int
	maxInput int
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit limits each client address to rps requests per second with the given burst.
// Zero values disable limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.limiter = newClientLimiter(rps, burst)
	}
}

// WithRegistry records HTTP metrics into reg and serves it on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithClock overrides the time source for greeting timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRandom overrides the random source. fn must return a value in [min, max].
func WithRandom(fn func(min, max int) int) Option {
	return func(s *Server) {
		s.randInt = fn
	}
}

// NewHandler creates the HTTP handler of the reference backend.
func NewHandler(store ports.TodoStore, opts ...Option) http.Handler {
	s := &Server{
		store:    store,
		logger:   logging.NewNop(),
		now:      time.Now,
		randInt:  randomInRange,
		maxInput: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(s.rateLimit)
	if s.registry != nil {
		r.Use(newHTTPMetrics(s.registry).middleware)
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(api.Spec())
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.getHealth)
		r.Get("/greeting", s.getGreeting)
		r.Get("/todos", s.listTodos)
		r.Post("/todos", s.addTodo)
		r.Put("/todos/{id}/toggle", s.toggleTodo)
		r.Delete("/todos/{id}", s.deleteTodo)
		r.Get("/calculate", s.calculate)
		r.Get("/random", s.random)
	})

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !s.limiter.Allow(host, s.now()) {
			s.logger.Warn("Rate limit exceeded", "client", host, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// getHealth handles GET /api/health.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.Health{
		Status:  "Healthy",
		Message: "Backend is running",
	})
}

// getGreeting handles GET /api/greeting.
func (s *Server) getGreeting(w http.ResponseWriter, r *http.Request) {
	name, err := SanitizeInput(r.URL.Query().Get("name"), s.maxInput)
	if err != nil {
		s.logger.Warn("Greeting: input rejected", "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if name == "" {
		name = "World"
	}
	writeJSON(w, http.StatusOK, domain.Greeting{
		Greeting:  fmt.Sprintf("Hello, %s!", name),
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

// listTodos handles GET /api/todos.
func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("List todos failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// addTodo handles POST /api/todos.
func (s *Server) addTodo(w http.ResponseWriter, r *http.Request) {
	var body domain.NewTodo
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("AddTodo: invalid request body", "err", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title, err := SanitizeInput(body.Title, s.maxInput)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	todo, err := s.store.Add(r.Context(), title)
	if err != nil {
		s.logger.Error("Add todo failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to add todo")
		return
	}
	s.logger.Info("Todo added", "id", todo.ID)
	writeJSON(w, http.StatusCreated, todo)
}

// toggleTodo handles PUT /api/todos/{id}/toggle.
func (s *Server) toggleTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	todo, err := s.store.Toggle(r.Context(), id)
	if err != nil {
		s.storeError(w, "toggle", id, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// deleteTodo handles DELETE /api/todos/{id}.
func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := todoID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.storeError(w, "delete", id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// calculate handles GET /api/calculate.
func (s *Server) calculate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, errA := strconv.ParseFloat(q.Get("a"), 64)
	b, errB := strconv.ParseFloat(q.Get("b"), 64)
	if errA != nil || errB != nil || !finite(a) || !finite(b) {
		writeError(w, http.StatusBadRequest, "a and b must be finite numbers")
		return
	}
	op, err := domain.ParseOperation(q.Get("operation"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result float64
	switch op {
	case domain.OpAdd:
		result = a + b
	case domain.OpSubtract:
		result = a - b
	case domain.OpMultiply:
		result = a * b
	case domain.OpDivide:
		if b == 0 {
			writeError(w, http.StatusBadRequest, "division by zero")
			return
		}
		result = a / b
	}
	if !finite(result) {
		writeError(w, http.StatusBadRequest, "result is out of range")
		return
	}

	writeJSON(w, http.StatusOK, domain.Calculation{A: a, B: b, Operation: op, Result: result})
}

// random handles GET /api/random.
func (s *Server) random(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	min, errMin := strconv.Atoi(q.Get("min"))
	max, errMax := strconv.Atoi(q.Get("max"))
	if errMin != nil || errMax != nil {
		writeError(w, http.StatusBadRequest, "min and max must be integers")
		return
	}
	if min > max {
		writeError(w, http.StatusBadRequest, "min must not exceed max")
		return
	}
	writeJSON(w, http.StatusOK, domain.RandomNumber{RandomNumber: s.randInt(min, max)})
}

func (s *Server) storeError(w http.ResponseWriter, op string, id int, err error) {
	if errors.Is(err, domain.ErrTodoNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("todo %d not found", id))
		return
	}
	s.logger.Error("Todo store failed", "op", op, "id", id, "err", err)
	writeError(w, http.StatusInternalServerError, "failed to "+op+" todo")
}

// -- Helpers --

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// randomInRange returns a uniform value in [min, max]. The span is computed in
// uint64 so bounds as wide as the whole int range do not overflow.
func randomInRange(min, max int) int {
	span := uint64(max) - uint64(min) + 1
	if span == 0 {
		return int(rand.Uint64())
	}
	return min + int(rand.Uint64N(span))
}

func todoID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return 0, false
	}
	return id, true
}

// writeJSON encodes v before writing the status, so an encode failure becomes a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Response encode failed", "err", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
