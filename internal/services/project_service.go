package services

import (
	"context"
	"errors"
	"time"

	"github.com/iac-studio/projects/internal/api/types"
	"github.com/iac-studio/projects/internal/models"
	appErr "github.com/iac-studio/projects/pkg/errors"
	"github.com/iac-studio/projects/pkg/logger"
	"github.com/iac-studio/projects/pkg/metrics"
	"go.uber.org/zap"
)

// ProjectReader is the persistence collaborator the read path depends on.
type ProjectReader interface {
	FetchAll(ctx context.Context) ([]models.Project, error)
}

// ProjectService reads the project collection.
type ProjectService interface {
	ReadProjects(ctx context.Context) (*ReadResult, error)
	ReadEnvelope(ctx context.Context) types.Envelope[[]models.Project]
}

// ReadResult is the outcome of a successful read. Projects is never nil.
type ReadResult struct {
	Projects []models.Project
}

type projectService struct {
	reader  ProjectReader
	timeout time.Duration
	metrics *metrics.ReadMetrics
}

// NewProjectService builds the read service. A zero timeout leaves the
// caller's deadline untouched; m may be nil.
func NewProjectService(reader ProjectReader, timeout time.Duration, m *metrics.ReadMetrics) ProjectService {
	return &projectService{reader: reader, timeout: timeout, metrics: m}
}

// Ensure interfaces are satisfied at compile time
var _ ProjectService = (*projectService)(nil)

// ReadProjects fetches every project. A collaborator failure is returned as
// an error, never as an empty result.
func (s *projectService) ReadProjects(ctx context.Context) (*ReadResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	items, err := s.reader.FetchAll(ctx)
	if err != nil {
		s.metrics.ObserveRead(metrics.OutcomeFailure, time.Since(start))
		var ae *appErr.AppError
		if !errors.As(err, &ae) {
			err = appErr.Wrap(err, appErr.CodeInternal, "read projects failed")
		}
		if appErr.IsCode(err, appErr.CodeCanceled) {
			logger.L().Info("read projects canceled by caller", zap.Duration("duration", time.Since(start)))
			return nil, err
		}
		logger.L().Warn("read projects failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	if items == nil {
		items = []models.Project{}
	}

	s.metrics.ObserveRead(metrics.OutcomeSuccess, time.Since(start))
	logger.L().Info("projects read", zap.Int("count", len(items)), zap.Duration("duration", time.Since(start)))
	return &ReadResult{Projects: items}, nil
}

// ReadEnvelope runs ReadProjects and reports the outcome as an envelope.
func (s *projectService) ReadEnvelope(ctx context.Context) types.Envelope[[]models.Project] {
	return NewEnvelope(s.ReadProjects(ctx))
}

// NewEnvelope maps the result of ReadProjects onto the response envelope.
func NewEnvelope(res *ReadResult, err error) types.Envelope[[]models.Project] {
	if err != nil {
		return types.FromError[[]models.Project](err)
	}
	env := types.Success(res.Projects)
	if len(res.Projects) == 0 {
		env = env.WithInfo("no projects found")
	}
	return env
}
