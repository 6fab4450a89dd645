package domain

import "time"

type InterviewReport struct {
	ReportID        string     `json:"report_id"`
	InterviewID     string     `json:"interview_id"`
	CompanyReport   JSONObject `json:"company_report"`
	CandidateReport JSONObject `json:"candidate_report"`
	OverallScore    float64    `json:"overall_score"`
	Recommendations *string    `json:"recommendations"`
	CreatedAt       time.Time  `json:"created_at"`
}

type CreateInterviewReport struct {
	InterviewID     string     `json:"interview_id" validate:"required,uuid"`
	CompanyReport   JSONObject `json:"company_report"`
	CandidateReport JSONObject `json:"candidate_report"`
	OverallScore    *float64   `json:"overall_score" validate:"required"`
	Recommendations *string    `json:"recommendations"`
}

func (in *CreateInterviewReport) Build() *InterviewReport {
	r := &InterviewReport{
		InterviewID:     in.InterviewID,
		CompanyReport:   in.CompanyReport,
		CandidateReport: in.CandidateReport,
		Recommendations: in.Recommendations,
	}
	if in.OverallScore != nil {
		r.OverallScore = Score(*in.OverallScore)
	}
	return r
}

type UpdateInterviewReport struct {
	InterviewID     *string    `json:"interview_id" validate:"omitempty,uuid"`
	CompanyReport   JSONObject `json:"company_report"`
	CandidateReport JSONObject `json:"candidate_report"`
	OverallScore    *float64   `json:"overall_score"`
	Recommendations *string    `json:"recommendations"`
}

func (in *UpdateInterviewReport) Apply(r *InterviewReport) {
	setIf(&r.InterviewID, in.InterviewID)
	if in.CompanyReport != nil {
		r.CompanyReport = in.CompanyReport
	}
	if in.CandidateReport != nil {
		r.CandidateReport = in.CandidateReport
	}
	if in.OverallScore != nil {
		r.OverallScore = Score(*in.OverallScore)
	}
	setPtrIf(&r.Recommendations, in.Recommendations)
}

type UpdateOverallScore struct {
	OverallScore *float64 `json:"overall_score" validate:"required,min=0,max=100"`
}

type UpdateRecommendations struct {
	Recommendations string `json:"recommendations" validate:"required,max=1000"`
}

type UpdateCompanyReport struct {
	CompanyReport JSONObject `json:"company_report" validate:"required"`
}

type UpdateCandidateReport struct {
	CandidateReport JSONObject `json:"candidate_report" validate:"required"`
}
