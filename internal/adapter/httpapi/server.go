package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/example/wismo-service/internal/adapter/cache"
	"github.com/example/wismo-service/internal/domain"
	"github.com/example/wismo-service/internal/usecase"
)

// Server wires the order-status usecases into the HTTP surface.
type Server struct {
	Router     *mux.Router
	UCResolve  usecase.ResolveOrderTree
	UCEmail    usecase.ComposeOrderEmail
	UCProducts usecase.LookupProducts
	UCHealth   usecase.CheckHealth
	OrderCache *cache.TTLOrderCache
}

func NewServer(resolve usecase.ResolveOrderTree, compose usecase.ComposeOrderEmail,
	products usecase.LookupProducts, health usecase.CheckHealth, orderCache *cache.TTLOrderCache) *Server {
	s := &Server{
		Router:     mux.NewRouter(),
		UCResolve:  resolve,
		UCEmail:    compose,
		UCProducts: products,
		UCHealth:   health,
		OrderCache: orderCache,
	}
	s.Router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.Router.HandleFunc("/cache/stats", s.handleCacheStats).Methods(http.MethodGet)
	s.Router.HandleFunc("/products/", s.handleProducts).Methods(http.MethodPost)
	s.Router.HandleFunc("/email/{orderNumber}", s.handleEmail).Methods(http.MethodGet)
	s.Router.HandleFunc("/{orderNumber}", s.handleOrder).Methods(http.MethodGet)
	s.Router.Use(requestLogMiddleware)
	return s
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["orderNumber"]
	orders, err := s.UCResolve.Execute(r.Context(), key)
	if err != nil {
		log.WithError(err).WithField("order", key).Error("resolve order")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleEmail(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["orderNumber"]
	body, err := s.UCEmail.Execute(r.Context(), key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
		return
	case err != nil:
		log.WithError(err).WithField("order", key).Error("compose email")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"email": body})
}

type productsRequest struct {
	Skus []string `json:"skus"`
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	var req productsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	products, err := s.UCProducts.Execute(r.Context(), req.Skus)
	if err != nil {
		log.WithError(err).Error("lookup products")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.UCHealth.Execute(r.Context()); err != nil {
		log.WithError(err).Warn("health probe failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "connected",
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.OrderCache.Stats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"url":        r.URL.Path,
			"remoteAddr": r.RemoteAddr,
		}).Info("request")
		h.ServeHTTP(w, r)
	})
}
