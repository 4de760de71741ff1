package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"smarttech/pkg/logger"
	"smarttech/reports-worker-service/internal/app/reports-worker/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// HealthCheckHandler отдаёт состояние зависимостей воркера
type HealthCheckHandler struct {
	mongoClient *mongo.Client
	reportRepo  repository.ReportRepository
}

// NewHealthCheckHandler создает новый healthcheck handler
func NewHealthCheckHandler(mongoClient *mongo.Client, reportRepo repository.ReportRepository) *HealthCheckHandler {
	return &HealthCheckHandler{
		mongoClient: mongoClient,
		reportRepo:  reportRepo,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.checkMongo(ctx); err != nil {
		checks["mongodb"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["mongodb"] = "healthy"
	}

	if err := h.checkReports(ctx); err != nil {
		checks["reports"] = "warning: " + err.Error()
	} else {
		checks["reports"] = "healthy"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.checkMongo(ctx); err != nil {
		http.Error(w, "mongodb not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) checkMongo(ctx context.Context) error {
	return h.mongoClient.Ping(ctx, nil)
}

// checkReports проверяет свежесть последнего отчёта
// Отсутствие отчётов не считается ошибкой - воркер мог только что запуститься
func (h *HealthCheckHandler) checkReports(ctx context.Context) error {
	report, err := h.reportRepo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil
		}
		return err
	}

	age := time.Since(report.GeneratedAt)
	if age > 48*time.Hour {
		logger.Warn().Dur("age", age).Msg("Latest sales report is outdated")
	}

	return nil
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
