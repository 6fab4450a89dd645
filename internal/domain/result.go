package domain

import "time"

type InterviewResult struct {
	ResultID        string    `json:"result_id"`
	InterviewID     string    `json:"interview_id"`
	QuestionID      string    `json:"question_id"`
	CandidateAnswer *string   `json:"candidate_answer"`
	Rating          int       `json:"rating"`
	AiFeedback      *string   `json:"ai_feedback"`
	CreatedAt       time.Time `json:"created_at"`
}

type CreateInterviewResult struct {
	InterviewID     string  `json:"interview_id" validate:"required,uuid"`
	QuestionID      string  `json:"question_id" validate:"required,uuid"`
	CandidateAnswer *string `json:"candidate_answer"`
	Rating          int     `json:"rating" validate:"required,min=1,max=5"`
	AiFeedback      *string `json:"ai_feedback"`
}

func (in *CreateInterviewResult) Build() *InterviewResult {
	return &InterviewResult{
		InterviewID:     in.InterviewID,
		QuestionID:      in.QuestionID,
		CandidateAnswer: in.CandidateAnswer,
		Rating:          in.Rating,
		AiFeedback:      in.AiFeedback,
	}
}

type UpdateInterviewResult struct {
	InterviewID     *string `json:"interview_id" validate:"omitempty,uuid"`
	QuestionID      *string `json:"question_id" validate:"omitempty,uuid"`
	CandidateAnswer *string `json:"candidate_answer"`
	Rating          *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	AiFeedback      *string `json:"ai_feedback"`
}

func (in *UpdateInterviewResult) Apply(r *InterviewResult) {
	setIf(&r.InterviewID, in.InterviewID)
	setIf(&r.QuestionID, in.QuestionID)
	setPtrIf(&r.CandidateAnswer, in.CandidateAnswer)
	setIf(&r.Rating, in.Rating)
	setPtrIf(&r.AiFeedback, in.AiFeedback)
}

type UpdateRating struct {
	Rating FlexInt `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateFeedback struct {
	AiFeedback string `json:"ai_feedback" validate:"required,max=1000"`
}
