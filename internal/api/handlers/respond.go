package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iac-studio/projects/internal/api/types"
	appErr "github.com/iac-studio/projects/pkg/errors"
	"github.com/iac-studio/projects/pkg/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

// writeError answers with the status mapped from err's code and a
// failure-form envelope. Error metadata stays in the log.
func writeError[T any](w http.ResponseWriter, err error) {
	code := appErr.CodeOf(err)
	status := appErr.HTTPStatus(code)

	fields := []zap.Field{zap.String("code", string(code)), zap.Int("status", status)}
	for k, v := range appErr.MetaOf(err) {
		fields = append(fields, zap.Any(k, v))
	}
	logger.L().Info("request failed", fields...)

	writeJSON(w, status, types.FromError[T](err))
}
