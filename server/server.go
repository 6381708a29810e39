// Package server exposes published storefronts over HTTP. Stores are routed
// by the Host header's subdomain, with a path fallback for setups without
// wildcard DNS. The text rendering shares the preview renderer with the TUIs.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/logging"
	"github.com/shopcanvas/shopcanvas/preview"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/sirupsen/logrus"
)

// StoreBackend is the slice of the repository the server reads through.
type StoreBackend interface {
	GetBySubdomain(ctx context.Context, subdomain string, publishedOnly bool) (*store.Store, error)
	Products(ctx context.Context, storeID string) ([]catalog.Product, error)
	PlaceOrder(ctx context.Context, req store.CheckoutRequest) (string, error)
}

// Server serves storefronts for one base domain.
type Server struct {
	backend StoreBackend
	log     *logrus.Entry

	mu         sync.RWMutex
	baseDomain string
}

// New creates a server. baseDomain is the apex under which store subdomains
// live, e.g. "shopcanvas.dev" serves "acme.shopcanvas.dev".
func New(backend StoreBackend, baseDomain string) *Server {
	return &Server{
		backend:    backend,
		log:        logging.NewLogger("server"),
		baseDomain: baseDomain,
	}
}

// SetBaseDomain swaps the base domain, used by config hot reload.
func (s *Server) SetBaseDomain(domain string) {
	s.mu.Lock()
	s.baseDomain = domain
	s.mu.Unlock()
}

// BaseDomain returns the current base domain.
func (s *Server) BaseDomain() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseDomain
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/", s.handleRoot)
	r.Get("/s/{subdomain}", s.handleStorefrontText)

	r.Route("/api/storefronts/{subdomain}", func(r chi.Router) {
		r.Get("/", s.handleStorefrontJSON)
		r.Post("/orders", s.handleOrder)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"host":     r.Host,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request")
	})
}

// subdomainFromHost extracts the store subdomain from the Host header.
// Returns empty for the apex itself and for hosts outside the base domain.
func subdomainFromHost(host, baseDomain string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	if host == baseDomain {
		return ""
	}
	suffix := "." + baseDomain
	if !strings.HasSuffix(host, suffix) {
		return ""
	}
	sub := strings.TrimSuffix(host, suffix)
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	sub := subdomainFromHost(r.Host, s.BaseDomain())
	if sub == "" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("shopcanvas storefront server\n\n" +
			"GET  /s/{subdomain}                      storefront (text)\n" +
			"GET  /api/storefronts/{subdomain}        storefront (json)\n" +
			"POST /api/storefronts/{subdomain}/orders place an order\n"))
		return
	}
	s.renderStorefront(w, r, sub)
}

func (s *Server) handleStorefrontText(w http.ResponseWriter, r *http.Request) {
	s.renderStorefront(w, r, chi.URLParam(r, "subdomain"))
}

func (s *Server) renderStorefront(w http.ResponseWriter, r *http.Request, subdomain string) {
	st, products, err := s.load(r.Context(), subdomain)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cfg, err := st.Config()
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := preview.Render(cfg, st.Name, products, preview.Options{
		Viewport: preview.ViewportDesktop,
		Width:    100,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(out + "\n"))
}

// storefrontPayload is the public JSON shape; internal fields like user_id
// are not exposed.
type storefrontPayload struct {
	Name      string            `json:"name"`
	Subdomain string            `json:"subdomain"`
	Template  string            `json:"template"`
	Config    json.RawMessage   `json:"config"`
	Products  []catalog.Product `json:"products"`
}

func (s *Server) handleStorefrontJSON(w http.ResponseWriter, r *http.Request) {
	st, products, err := s.load(r.Context(), chi.URLParam(r, "subdomain"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, storefrontPayload{
		Name:      st.Name,
		Subdomain: st.Subdomain,
		Template:  st.Template,
		Config:    st.TemplateConfig,
		Products:  products,
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	st, err := s.backend.GetBySubdomain(r.Context(), chi.URLParam(r, "subdomain"), true)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req store.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "malformed order payload"))
		return
	}
	req.StoreID = st.ID

	orderID, err := s.backend.PlaceOrder(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"order_id": orderID,
	})
}

func (s *Server) load(ctx context.Context, subdomain string) (*store.Store, []catalog.Product, error) {
	st, err := s.backend.GetBySubdomain(ctx, subdomain, true)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.backend.Products(ctx, st.ID)
	if err != nil {
		return nil, nil, err
	}
	return st, products, nil
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeStoreNotFound, errors.ErrCodeConfigNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeSubdomainInvalid, errors.ErrCodeCheckoutField,
		errors.ErrCodeCartEmpty, errors.ErrCodeCouponInvalid, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeStockShortfall, errors.ErrCodeOrderRejected:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeBackendUnavailable:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		s.log.WithError(err).Error("Request failed")
	}
	writeJSON(w, status, map[string]any{
		"success": false,
		"code":    string(code),
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
