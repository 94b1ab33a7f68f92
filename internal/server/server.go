package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lpOracle/internal/model"
	"lpOracle/internal/oracle"
	"lpOracle/internal/storage"
)

const maxQueryBytes = 64 << 10

// Service is the query surface served over HTTP.
type Service interface {
	QueryConfig(ctx context.Context) (model.ConfigResponse, error)
	QueryPrice(ctx context.Context, assetToken string) (model.ProxyPriceResponse, error)
	Query(ctx context.Context, raw []byte) ([]byte, error)
}

// Server serves oracle queries as JSON over HTTP.
type Server struct {
	service Service
	sink    storage.QuoteSink
	logger  *zap.Logger
	router  *mux.Router
}

type errorResponse struct {
	Error     string `json:"error"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
}

// NewServer registers the routes. sink may be nil.
func NewServer(service Service, sink storage.QuoteSink, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: service,
		sink:    sink,
		logger:  logger,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/config", s.config).Methods(http.MethodGet)
	s.router.HandleFunc("/price/{assetToken}", s.price).Methods(http.MethodGet)
	s.router.HandleFunc("/query", s.query).Methods(http.MethodPost)
	s.router.Use(s.logRequests)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) config(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.QueryConfig(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) price(w http.ResponseWriter, r *http.Request) {
	assetToken := mux.Vars(r)["assetToken"]
	resp, err := s.service.QueryPrice(r.Context(), assetToken)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.record(r.Context(), assetToken, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxQueryBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read body"})
		return
	}
	resp, err := s.service.Query(r.Context(), body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if msg, perr := oracle.ParseQueryMsg(body); perr == nil && msg.Base != nil {
		var price model.ProxyPriceResponse
		if json.Unmarshal(resp, &price) == nil {
			s.record(r.Context(), msg.Base.Price.AssetToken, price)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp)
}

func (s *Server) record(ctx context.Context, assetToken string, resp model.ProxyPriceResponse) {
	if s.sink == nil {
		return
	}
	record := model.QuoteRecord{
		AssetToken:  assetToken,
		Rate:        resp.Rate.String(),
		LastUpdated: resp.LastUpdated,
		ServedAt:    time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := s.sink.PutQuotes(ctx, []model.QuoteRecord{record}); err != nil {
		s.logger.Warn("quote journal write failed", zap.String("asset_token", assetToken), zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Warn("query failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Codespace: codespace, Code: code})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, oracle.ErrConfig), errors.Is(err, oracle.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, oracle.ErrPoolData), errors.Is(err, oracle.ErrArithmetic):
		return http.StatusUnprocessableEntity
	case errors.Is(err, oracle.ErrExternalQuery):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
