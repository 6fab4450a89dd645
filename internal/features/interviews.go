package features

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
)

type InterviewService struct {
	*Resource[domain.Interview]
	configs *ConfigService
}

func NewInterviewService(store repo.Store[domain.Interview], configs *ConfigService, logger *zap.Logger) *InterviewService {
	return &InterviewService{
		Resource: NewResource("Interview", store, logger),
		configs:  configs,
	}
}

// Create requires the referenced config to exist locally.
func (s *InterviewService) Create(ctx context.Context, in *domain.CreateInterview) (*domain.Interview, error) {
	if _, err := s.configs.FindOne(ctx, in.ConfigID); err != nil {
		return nil, err
	}

	i := in.Build()
	i.InterviewID = uuid.NewString()
	i.CreatedAt = now()
	return s.Resource.Create(ctx, i)
}

func (s *InterviewService) Update(ctx context.Context, id string, in *domain.UpdateInterview) (*domain.Interview, error) {
	return s.Resource.Update(ctx, id, in.Apply)
}

func (s *InterviewService) UpdateStatus(ctx context.Context, id string, st domain.InterviewStatus) (*domain.Interview, error) {
	return s.Resource.Update(ctx, id, func(i *domain.Interview) {
		i.Status = st
	})
}

// FindByApplication returns the first interview of the application.
func (s *InterviewService) FindByApplication(ctx context.Context, applicationID string) (*domain.Interview, error) {
	rows, err := s.FindBy(ctx, repo.Eq("application_id", applicationID))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, status.Errorf(codes.NotFound, "Interview for application %s not found", applicationID)
	}
	return rows[0], nil
}
