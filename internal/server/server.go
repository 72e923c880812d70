// Copyright 2025 The Storeprovd Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"

	"github.com/storeops/storeprovd/internal/store"
)

// Provisioner is the engine surface the HTTP layer consumes.
type Provisioner interface {
	Create(ctx context.Context, name string, engine store.Engine) (*store.Store, error)
	List(ctx context.Context) ([]store.Store, error)
	Delete(ctx context.Context, name string) error
}

// defaultAllowedOrigins are the development origins of the bundled
// dashboard.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Config carries the HTTP layer's tunables.
type Config struct {
	// Addr is the bind address, e.g. "0.0.0.0".
	Addr string
	// Port is the listen port.
	Port int
	// AllowedOrigins overrides the CORS origin allowlist. Empty means
	// the dashboard development origins.
	AllowedOrigins []string
	// UnsupportedEngineStatus is the status code returned for a
	// recognized engine whose provisioning is not implemented. Zero
	// means 501 Not Implemented.
	UnsupportedEngineStatus int
}

// Server serves the store provisioning API.
type Server struct {
	cfg         Config
	provisioner Provisioner
	server      *http.Server
}

// NewServer creates a server around the given provisioner.
func NewServer(cfg Config, p Provisioner) *Server {
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = defaultAllowedOrigins
	}
	if cfg.UnsupportedEngineStatus == 0 {
		cfg.UnsupportedEngineStatus = http.StatusNotImplemented
	}
	return &Server{
		cfg:         cfg,
		provisioner: p,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /stores", s.handleListStores)
	mux.HandleFunc("POST /stores/{name}", s.handleCreateStore)
	mux.HandleFunc("DELETE /stores/{name}", s.handleDeleteStore)
	return s.cors(mux)
}

// readHeaderTimeout bounds how long a client may take to send request
// headers, so a stalled connection cannot pin a handler goroutine.
const readHeaderTimeout = 10 * time.Second

// httpServer builds the configured listener.
func (s *Server) httpServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Addr, s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Start runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = s.httpServer()

	errChan := make(chan error, 1)
	go func() {
		log.Log.Info("Starting store provisioning API", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Log.Info("Shutting down store provisioning API")
	return s.server.Shutdown(ctx)
}

// cors answers preflight requests and stamps the CORS headers for the
// allowed origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range s.cfg.AllowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.provisioner.List(r.Context())
	if err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to list stores")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, stores)
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	logger := log.FromContext(r.Context())
	name := r.PathValue("name")

	req := CreateStoreRequest{Engine: store.EngineWooCommerce}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body"})
		return
	}
	if req.Engine == "" {
		req.Engine = store.EngineWooCommerce
	}

	created, err := s.provisioner.Create(r.Context(), name, req.Engine)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidName), errors.Is(err, store.ErrUnknownEngine):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
		case errors.Is(err, store.ErrEngineNotSupported):
			writeJSON(w, s.cfg.UnsupportedEngineStatus, ErrorResponse{Detail: err.Error()})
		default:
			logger.Error(err, "Failed to create store", "store", name)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	if err := s.provisioner.Delete(r.Context(), name); err != nil {
		log.FromContext(r.Context()).Error(err, "Failed to delete store", "store", name)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, DeleteStoreResponse{Store: name, Status: "deleted"})
}

// decodeBody parses an optional JSON body. A missing or empty body
// leaves v untouched so field defaults apply.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	defer r.Body.Close()

	if len(body) == 0 {
		return nil
	}

	return json.Unmarshal(body, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Log.Error(err, "Failed to encode response")
	}
}
