package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type handlerFunc func(http.ResponseWriter, *http.Request) error

type router struct {
	ports *Ports
}

// NewRouter builds the API handler.
func NewRouter(ports *Ports, opts Options) (http.Handler, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	rt := &router{ports: ports}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(requestLogger)
	if len(opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{sessionHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Route("/api", func(r chi.Router) {
		r.Use(withSession)

		r.Get("/templates", rt.wrap(rt.listTemplates))
		r.Get("/templates/{id}", rt.wrap(rt.getTemplate))
		r.Get("/products", rt.wrap(rt.listProducts))
		r.Get("/quiz", rt.wrap(rt.quizQuestions))
		r.Post("/quiz/score", rt.wrap(rt.scoreQuiz))

		r.Post("/login", rt.wrap(rt.login))
		r.Post("/logout", rt.wrap(rt.logout))
		r.Get("/profile", rt.wrap(rt.profile))
		r.Post("/purchase", rt.wrap(rt.purchase))

		r.Post("/generate", rt.wrap(rt.generate))
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", rt.wrap(rt.listDocuments))
			r.Post("/", rt.wrap(rt.saveDocument))
			r.Get("/{id}", rt.wrap(rt.getDocument))
			r.Post("/{id}/download", rt.wrap(rt.download))
		})

		r.Post("/ask", rt.wrap(rt.ask))
	})

	if opts.MCP != nil {
		mux.Handle("/mcp", opts.MCP)
		mux.Handle("/mcp/*", opts.MCP)
	}

	return mux, nil
}

func (rt *router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			rt.writeError(w, r, err)
		}
	}
}

func (rt *router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var herr *httpError
	if errors.As(err, &herr) {
		writeJSON(w, herr.status, errorBody{Error: herr.msg})
		return
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	} else {
		logger.Debug("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, newErrorBody(err, status))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// requestLogger logs one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	log := logger.Slog()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
