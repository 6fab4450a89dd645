package features

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
)

type ReportService struct {
	*Resource[domain.InterviewReport]
}

func NewReportService(store repo.Store[domain.InterviewReport], logger *zap.Logger) *ReportService {
	return &ReportService{
		Resource: NewResource("Interview report", store, logger),
	}
}

func (s *ReportService) Create(ctx context.Context, in *domain.CreateInterviewReport) (*domain.InterviewReport, error) {
	r := in.Build()
	r.ReportID = uuid.NewString()
	r.CreatedAt = now()
	return s.Resource.Create(ctx, r)
}

func (s *ReportService) Update(ctx context.Context, id string, in *domain.UpdateInterviewReport) (*domain.InterviewReport, error) {
	return s.Resource.Update(ctx, id, in.Apply)
}

func (s *ReportService) UpdateOverallScore(ctx context.Context, id string, score float64) (*domain.InterviewReport, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewReport) {
		r.OverallScore = domain.Score(score)
	})
}

func (s *ReportService) UpdateRecommendations(ctx context.Context, id, recommendations string) (*domain.InterviewReport, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewReport) {
		r.Recommendations = &recommendations
	})
}

func (s *ReportService) UpdateCompanyReport(ctx context.Context, id string, report domain.JSONObject) (*domain.InterviewReport, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewReport) {
		r.CompanyReport = report
	})
}

func (s *ReportService) UpdateCandidateReport(ctx context.Context, id string, report domain.JSONObject) (*domain.InterviewReport, error) {
	return s.Resource.Update(ctx, id, func(r *domain.InterviewReport) {
		r.CandidateReport = report
	})
}

func (s *ReportService) FindByInterview(ctx context.Context, interviewID string) ([]*domain.InterviewReport, error) {
	return s.FindBy(ctx, repo.Eq("interview_id", interviewID))
}
