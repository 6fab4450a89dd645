package domain

import "time"

type InterviewConfig struct {
	ConfigID        string    `json:"config_id"`
	EnterpriseID    string    `json:"enterprise_id"`
	JobRoleID       string    `json:"job_role_id"`
	SeniorityID     string    `json:"seniority_id"`
	DurationMinutes int       `json:"duration_minutes"`
	NumQuestions    int       `json:"num_questions"`
	ComplexityLevel int       `json:"complexity_level"`
	ValidityHours   int       `json:"validity_hours"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateInterviewConfig struct {
	EnterpriseID    string `json:"enterprise_id" validate:"required,uuid"`
	JobRoleID       string `json:"job_role_id" validate:"required,uuid"`
	SeniorityID     string `json:"seniority_id" validate:"required,uuid"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
	NumQuestions    int    `json:"num_questions" validate:"required,min=1"`
	ComplexityLevel int    `json:"complexity_level" validate:"required,min=1,max=5"`
	ValidityHours   int    `json:"validity_hours" validate:"required,min=1"`
}

func (in *CreateInterviewConfig) Build() *InterviewConfig {
	return &InterviewConfig{
		EnterpriseID:    in.EnterpriseID,
		JobRoleID:       in.JobRoleID,
		SeniorityID:     in.SeniorityID,
		DurationMinutes: in.DurationMinutes,
		NumQuestions:    in.NumQuestions,
		ComplexityLevel: in.ComplexityLevel,
		ValidityHours:   in.ValidityHours,
	}
}

type UpdateInterviewConfig struct {
	EnterpriseID    *string `json:"enterprise_id" validate:"omitempty,uuid"`
	JobRoleID       *string `json:"job_role_id" validate:"omitempty,uuid"`
	SeniorityID     *string `json:"seniority_id" validate:"omitempty,uuid"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,min=1"`
	NumQuestions    *int    `json:"num_questions" validate:"omitempty,min=1"`
	ComplexityLevel *int    `json:"complexity_level" validate:"omitempty,min=1,max=5"`
	ValidityHours   *int    `json:"validity_hours" validate:"omitempty,min=1"`
}

func (in *UpdateInterviewConfig) Apply(c *InterviewConfig) {
	setIf(&c.EnterpriseID, in.EnterpriseID)
	setIf(&c.JobRoleID, in.JobRoleID)
	setIf(&c.SeniorityID, in.SeniorityID)
	setIf(&c.DurationMinutes, in.DurationMinutes)
	setIf(&c.NumQuestions, in.NumQuestions)
	setIf(&c.ComplexityLevel, in.ComplexityLevel)
	setIf(&c.ValidityHours, in.ValidityHours)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtrIf[T any](dst **T, v *T) {
	if v != nil {
		c := *v
		*dst = &c
	}
}
