package handlers

import (
	"context"
	"net/http"

	"github.com/iac-studio/projects/internal/api/types"
	appErr "github.com/iac-studio/projects/pkg/errors"
	"github.com/iac-studio/projects/pkg/logger"
	"go.uber.org/zap"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler { return &HealthHandler{db: db} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.Success(map[string]string{"status": "ok"}))
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			logger.L().Warn("readiness check failed", zap.Error(err))
			writeError[map[string]string](w, appErr.Wrap(err, appErr.CodeUnavailable, "database unavailable"))
			return
		}
	}
	writeJSON(w, http.StatusOK, types.Success(map[string]string{"status": "ready"}))
}
