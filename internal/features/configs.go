package features

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
)

type ConfigService struct {
	*Resource[domain.InterviewConfig]
}

func NewConfigService(store repo.Store[domain.InterviewConfig], logger *zap.Logger) *ConfigService {
	return &ConfigService{
		Resource: NewResource("Interview config", store, logger),
	}
}

func (s *ConfigService) Create(ctx context.Context, in *domain.CreateInterviewConfig) (*domain.InterviewConfig, error) {
	c := in.Build()
	c.ConfigID = uuid.NewString()
	c.CreatedAt = now()
	return s.Resource.Create(ctx, c)
}

func (s *ConfigService) Update(ctx context.Context, id string, in *domain.UpdateInterviewConfig) (*domain.InterviewConfig, error) {
	return s.Resource.Update(ctx, id, in.Apply)
}

func (s *ConfigService) FindByEnterpriseAndRole(ctx context.Context, enterpriseID, roleID string) ([]*domain.InterviewConfig, error) {
	return s.FindBy(ctx,
		repo.Eq("enterprise_id", enterpriseID),
		repo.Eq("job_role_id", roleID))
}
