// Package health содержит health check сервер.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"spotifyetl/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// Pinger определяет интерфейс проверки доступности компонента
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server представляет health check сервер
type Server struct {
	server    *http.Server
	db        Pinger
	store     Pinger
	metrics   *metrics.Metrics
	logger    *zap.Logger
	startTime time.Time
}

// Status представляет статус здоровья системы
type Status struct {
	Status     string                 `json:"status"`
	Timestamp  time.Time              `json:"timestamp"`
	Uptime     string                 `json:"uptime"`
	Components map[string]string      `json:"components,omitempty"`
	Metrics    map[string]interface{} `json:"metrics,omitempty"`
}

// NewServer создает новый health check сервер.
// db может быть nil если журнал выгрузок отключен.
func NewServer(port string, logger *zap.Logger, db Pinger, store Pinger, m *metrics.Metrics) *Server {
	mux := http.NewServeMux()

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	healthServer := &Server{
		server:    server,
		db:        db,
		store:     store,
		metrics:   m,
		logger:    logger,
		startTime: time.Now(),
	}

	// Регистрируем маршруты
	mux.HandleFunc("/health", healthServer.healthHandler)
	mux.HandleFunc("/ready", healthServer.readyHandler)
	mux.HandleFunc("/live", healthServer.liveHandler)

	return healthServer
}

// Start запускает health check сервер
func (s *Server) Start() error {
	s.logger.Info("Starting health check server", zap.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Stop останавливает health check сервер
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("Stopping health check server")
	return s.server.Shutdown(ctx)
}

// checkComponents проверяет состояние компонентов
func (s *Server) checkComponents(ctx context.Context) map[string]string {
	components := make(map[string]string)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			components["database"] = "unhealthy: " + err.Error()
		} else {
			components["database"] = "healthy"
		}
	} else {
		components["database"] = "disabled"
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			components["objectstore"] = "unhealthy: " + err.Error()
		} else {
			components["objectstore"] = "healthy"
		}
	}

	return components
}

// healthHandler обрабатывает запросы /health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := Status{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Components: s.checkComponents(ctx),
	}

	if s.metrics != nil {
		status.Metrics = s.metrics.GetStats()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("Failed to encode health status", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// readyHandler обрабатывает запросы /ready
func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := s.checkComponents(ctx)

	overallStatus := "ready"
	httpStatus := http.StatusOK
	for _, status := range components {
		if status != "healthy" && status != "disabled" {
			overallStatus = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
			break
		}
	}

	status := Status{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Uptime:     time.Since(s.startTime).Round(time.Second).String(),
		Components: components,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("Failed to encode ready status", zap.Error(err))
	}
}

// liveHandler обрабатывает запросы /live
func (s *Server) liveHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("Failed to write live response", zap.Error(err))
	}
}
