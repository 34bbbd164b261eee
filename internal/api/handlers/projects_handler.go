package handlers

import (
	"net/http"

	"github.com/iac-studio/projects/internal/models"
	"github.com/iac-studio/projects/internal/services"
	"github.com/iac-studio/projects/pkg/config"
)

type ProjectsHandler struct {
	svc  services.ProjectService
	mode string
}

// NewProjectsHandler builds the list handler. mode is config.ResponseModeRaw
// or config.ResponseModeEnvelope.
func NewProjectsHandler(svc services.ProjectService, mode string) *ProjectsHandler {
	return &ProjectsHandler{svc: svc, mode: mode}
}

// List answers GET /projects. Success is always 200; the body is the bare
// project array in raw mode and the full envelope otherwise. Failures carry
// the envelope in both modes.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ReadProjects(r.Context())
	if err != nil {
		writeError[[]models.Project](w, err)
		return
	}
	if h.mode == config.ResponseModeEnvelope {
		writeJSON(w, http.StatusOK, services.NewEnvelope(res, nil))
		return
	}
	writeJSON(w, http.StatusOK, res.Projects)
}
