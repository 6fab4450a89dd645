package repo

import (
	"interview-service/internal/domain"
)

// Table maps an entity onto its SQL table. Columns, Values and Dest share one order.
type Table[T any] struct {
	Name    string
	Key     string
	Columns []string
	Values  func(*T) []any
	Dest    func(*T) []any
	ID      func(*T) string
}

func (t *Table[T]) index(column string) int {
	for i, c := range t.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

var ConfigTable = &Table[domain.InterviewConfig]{
	Name: "interview_configs",
	Key:  "config_id",
	Columns: []string{
		"config_id", "enterprise_id", "job_role_id", "seniority_id",
		"duration_minutes", "num_questions", "complexity_level", "validity_hours", "created_at",
	},
	Values: func(c *domain.InterviewConfig) []any {
		return []any{
			c.ConfigID, c.EnterpriseID, c.JobRoleID, c.SeniorityID,
			c.DurationMinutes, c.NumQuestions, c.ComplexityLevel, c.ValidityHours, c.CreatedAt,
		}
	},
	Dest: func(c *domain.InterviewConfig) []any {
		return []any{
			&c.ConfigID, &c.EnterpriseID, &c.JobRoleID, &c.SeniorityID,
			&c.DurationMinutes, &c.NumQuestions, &c.ComplexityLevel, &c.ValidityHours, &c.CreatedAt,
		}
	},
	ID: func(c *domain.InterviewConfig) string { return c.ConfigID },
}

var InterviewTable = &Table[domain.Interview]{
	Name: "interviews",
	Key:  "interview_id",
	Columns: []string{
		"interview_id", "application_id", "config_id", "status",
		"scheduled_date", "expiration_date", "video_recording_url", "created_at",
	},
	Values: func(i *domain.Interview) []any {
		return []any{
			i.InterviewID, i.ApplicationID, i.ConfigID, string(i.Status),
			i.ScheduledDate, i.ExpirationDate, i.VideoRecordingURL, i.CreatedAt,
		}
	},
	Dest: func(i *domain.Interview) []any {
		return []any{
			&i.InterviewID, &i.ApplicationID, &i.ConfigID, &i.Status,
			&i.ScheduledDate, &i.ExpirationDate, &i.VideoRecordingURL, &i.CreatedAt,
		}
	},
	ID: func(i *domain.Interview) string { return i.InterviewID },
}

var ResultTable = &Table[domain.InterviewResult]{
	Name: "interview_results",
	Key:  "result_id",
	Columns: []string{
		"result_id", "interview_id", "question_id", "candidate_answer", "rating", "ai_feedback", "created_at",
	},
	Values: func(r *domain.InterviewResult) []any {
		return []any{r.ResultID, r.InterviewID, r.QuestionID, r.CandidateAnswer, r.Rating, r.AiFeedback, r.CreatedAt}
	},
	Dest: func(r *domain.InterviewResult) []any {
		return []any{&r.ResultID, &r.InterviewID, &r.QuestionID, &r.CandidateAnswer, &r.Rating, &r.AiFeedback, &r.CreatedAt}
	},
	ID: func(r *domain.InterviewResult) string { return r.ResultID },
}

var ReportTable = &Table[domain.InterviewReport]{
	Name: "interview_reports",
	Key:  "report_id",
	Columns: []string{
		"report_id", "interview_id", "company_report", "candidate_report", "overall_score", "recommendations", "created_at",
	},
	Values: func(r *domain.InterviewReport) []any {
		return []any{r.ReportID, r.InterviewID, r.CompanyReport, r.CandidateReport, r.OverallScore, r.Recommendations, r.CreatedAt}
	},
	Dest: func(r *domain.InterviewReport) []any {
		return []any{&r.ReportID, &r.InterviewID, &r.CompanyReport, &r.CandidateReport, &r.OverallScore, &r.Recommendations, &r.CreatedAt}
	},
	ID: func(r *domain.InterviewReport) string { return r.ReportID },
}

var QuestionTable = &Table[domain.Question]{
	Name: "questions",
	Key:  "question_id",
	Columns: []string{
		"question_id", "job_role_id", "seniority_id", "question_text", "expected_answer", "complexity_level", "created_at",
	},
	Values: func(q *domain.Question) []any {
		return []any{q.QuestionID, q.JobRoleID, q.SeniorityID, q.QuestionText, q.ExpectedAnswer, q.ComplexityLevel, q.CreatedAt}
	},
	Dest: func(q *domain.Question) []any {
		return []any{&q.QuestionID, &q.JobRoleID, &q.SeniorityID, &q.QuestionText, &q.ExpectedAnswer, &q.ComplexityLevel, &q.CreatedAt}
	},
	ID: func(q *domain.Question) string { return q.QuestionID },
}
