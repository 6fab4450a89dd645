package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-service/internal/domain"
)

const validUUID = "0b5e9a51-3c7e-4f3e-9f43-2a8b2f1f6d11"

func TestCheck_Valid(t *testing.T) {
	assert.NoError(t, Check(&domain.CreateInterviewConfig{
		EnterpriseID:    validUUID,
		JobRoleID:       validUUID,
		SeniorityID:     validUUID,
		DurationMinutes: 30,
		NumQuestions:    5,
		ComplexityLevel: 3,
		ValidityHours:   48,
	}))
}

func TestCheck_Failures(t *testing.T) {
	score := 120.0
	zero := 0
	empty := ""
	bad := "not a url"
	status5 := domain.InterviewStatus("archived")

	tests := []struct {
		name    string
		input   any
		message string
	}{
		{
			name: "complexity out of range",
			input: &domain.CreateInterviewConfig{
				EnterpriseID: validUUID, JobRoleID: validUUID, SeniorityID: validUUID,
				DurationMinutes: 30, NumQuestions: 5, ComplexityLevel: 6, ValidityHours: 1,
			},
			message: "complexity_level must not be greater than 5",
		},
		{
			name:    "missing uuid",
			input:   &domain.CreateQuestion{SeniorityID: validUUID, QuestionText: "q", ComplexityLevel: 1},
			message: "job_role_id is required",
		},
		{
			name:    "malformed uuid",
			input:   &domain.CreateQuestion{JobRoleID: "abc", SeniorityID: validUUID, QuestionText: "q", ComplexityLevel: 1},
			message: "job_role_id must be a UUID",
		},
		{
			name:    "score above 100",
			input:   &domain.UpdateOverallScore{OverallScore: &score},
			message: "overall_score must not be greater than 100",
		},
		{
			name:    "score missing",
			input:   &domain.UpdateOverallScore{},
			message: "overall_score is required",
		},
		{
			name:    "rating zero",
			input:   &domain.UpdateRating{Rating: 0},
			message: "rating is required",
		},
		{
			name:    "partial update zero duration",
			input:   &domain.UpdateInterviewConfig{DurationMinutes: &zero},
			message: "duration_minutes must not be less than 1",
		},
		{
			name:    "empty feedback",
			input:   &domain.UpdateFeedback{AiFeedback: empty},
			message: "ai_feedback is required",
		},
		{
			name: "bad url",
			input: &domain.UpdateInterview{
				VideoRecordingURL: &bad,
			},
			message: "video_recording_url must be a URL address",
		},
		{
			name:    "unknown status",
			input:   &domain.UpdateInterviewStatus{Status: status5},
			message: "status must be one of: pending, scheduled, in_progress, completed, cancelled",
		},
		{
			name:    "company report missing",
			input:   &domain.UpdateCompanyReport{},
			message: "company_report is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.input)
			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.InvalidArgument, st.Code())
			assert.Contains(t, st.Message(), tt.message)
		})
	}
}

func TestCheck_LongRecommendations(t *testing.T) {
	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}
	err := Check(&domain.UpdateRecommendations{Recommendations: string(long)})
	require.Error(t, err)
	assert.Contains(t, status.Convert(err).Message(), "recommendations must be shorter than or equal to 1000 characters")
}
