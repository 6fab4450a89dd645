package features

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
)

type QuestionService struct {
	*Resource[domain.Question]
}

func NewQuestionService(store repo.Store[domain.Question], logger *zap.Logger) *QuestionService {
	return &QuestionService{
		Resource: NewResource("Question", store, logger),
	}
}

func (s *QuestionService) Create(ctx context.Context, in *domain.CreateQuestion) (*domain.Question, error) {
	q := in.Build()
	q.QuestionID = uuid.NewString()
	q.CreatedAt = now()
	return s.Resource.Create(ctx, q)
}

func (s *QuestionService) Update(ctx context.Context, id string, in *domain.UpdateQuestion) (*domain.Question, error) {
	return s.Resource.Update(ctx, id, in.Apply)
}

func (s *QuestionService) FindByRoleAndSeniority(ctx context.Context, roleID, seniorityID string) ([]*domain.Question, error) {
	return s.FindBy(ctx,
		repo.Eq("job_role_id", roleID),
		repo.Eq("seniority_id", seniorityID))
}
