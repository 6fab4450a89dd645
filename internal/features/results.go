package features

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
)

type ResultService struct {
	*Resource[domain.InterviewResult]
}

func NewResultService(store repo.Store[domain.InterviewResult], logger *zap.Logger) *ResultService {
	return &ResultService{
		Resource: NewResource("Interview result", store, logger),
	}
}

func (s *ResultService) Create(ctx context.Context, in *domain.CreateInterviewResult) (*domain.InterviewResult, error) {
	r := in.Build()
	r.ResultID = uuid.NewString()
	r.CreatedAt = now()
	return s.Resource.Create(ctx, r)
}

func (s *ResultService) Update(ctx context.Context, id string, in *domain.UpdateInterviewResult) (*domain.InterviewResult, error) {
	return s.Resource.Update(ctx, id, in.Apply)
}

func (s *ResultService) UpdateRating(ctx context.Context, id string, rating int) (*domain.InterviewResult, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewResult) {
		r.Rating = rating
	})
}

func (s *ResultService) UpdateAiFeedback(ctx context.Context, id, feedback string) (*domain.InterviewResult, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewResult) {
		r.AiFeedback = &feedback
	})
}

func (s *ResultService) FindByInterview(ctx context.Context, interviewID string) ([]*domain.InterviewResult, error) {
	return s.FindBy(ctx, repo.Eq("interview_id", interviewID))
}
