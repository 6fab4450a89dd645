package domain

import "time"

type Question struct {
	QuestionID      string    `json:"question_id"`
	JobRoleID       string    `json:"job_role_id"`
	SeniorityID     string    `json:"seniority_id"`
	QuestionText    string    `json:"question_text"`
	ExpectedAnswer  *string   `json:"expected_answer"`
	ComplexityLevel int       `json:"complexity_level"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateQuestion struct {
	JobRoleID       string  `json:"job_role_id" validate:"required,uuid"`
	SeniorityID     string  `json:"seniority_id" validate:"required,uuid"`
	QuestionText    string  `json:"question_text" validate:"required"`
	ExpectedAnswer  *string `json:"expected_answer"`
	ComplexityLevel int     `json:"complexity_level" validate:"required,min=1,max=5"`
}

func (in *CreateQuestion) Build() *Question {
	return &Question{
		JobRoleID:       in.JobRoleID,
		SeniorityID:     in.SeniorityID,
		QuestionText:    in.QuestionText,
		ExpectedAnswer:  in.ExpectedAnswer,
		ComplexityLevel: in.ComplexityLevel,
	}
}

type UpdateQuestion struct {
	JobRoleID       *string `json:"job_role_id" validate:"omitempty,uuid"`
	SeniorityID     *string `json:"seniority_id" validate:"omitempty,uuid"`
	QuestionText    *string `json:"question_text" validate:"omitempty,min=1"`
	ExpectedAnswer  *string `json:"expected_answer"`
	ComplexityLevel *int    `json:"complexity_level" validate:"omitempty,min=1,max=5"`
}

func (in *UpdateQuestion) Apply(q *Question) {
	setIf(&q.JobRoleID, in.JobRoleID)
	setIf(&q.SeniorityID, in.SeniorityID)
	setIf(&q.QuestionText, in.QuestionText)
	setPtrIf(&q.ExpectedAnswer, in.ExpectedAnswer)
	setIf(&q.ComplexityLevel, in.ComplexityLevel)
}
