package topicd

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/hubdeck/hubdeck/internal/logging"
)

// DefaultAddr is the listen address topicd binds when none is given.
const DefaultAddr = ":8240"

// Server is the Topic ID generation service. It exposes a tiny HTTP API:
//
//	POST /v1/topic-id  -> {"topicId":"483920175648392"}
//	GET  /healthz      -> 200 OK
type Server struct {
	addr   string
	router *mux.Router
	http   *http.Server
}

// NewServer builds a server listening on addr (DefaultAddr if empty).
func NewServer(addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{addr: addr}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/v1/topic-id", s.handleGenerate).Methods("POST")
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	router.Use(requestLogger)
	s.router = router

	s.http = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info("topicd listening", zap.String("addr", s.addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logging.Info("topicd shutting down")
		return s.http.Shutdown(shutdownCtx)
	}
}

type generateResponse struct {
	TopicID string `json:"topicId"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, err := NewTopicID()
	if err != nil {
		logging.Error("topic id generation failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(generateResponse{TopicID: id}); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLogger tags every request with a UUID and logs it.
func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		logging.Debug("request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
		)
		h.ServeHTTP(w, r)
	})
}
