package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iac-studio/projects/internal/api/types"
)

// deny short-circuits a request with a failure-form envelope.
func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.Failure[struct{}](msg))
}
