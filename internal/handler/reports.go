package handler

import (
	"net/http"

	"interview-service/internal/domain"
	"interview-service/internal/verify"
)

func (h *Handler) reportRoutes() []endpoint {
	return []endpoint{
		{http.MethodPost, "/api/interview-reports", h.createReport},
		{http.MethodGet, "/api/interview-reports", h.listReports},
		{http.MethodGet, "/api/interview-reports/interview/{interviewId}", h.reportsByInterview},
		{http.MethodGet, "/api/interview-reports/{id}", h.getReport},
		{http.MethodPatch, "/api/interview-reports/{id}", h.updateReport},
		{http.MethodPatch, "/api/interview-reports/{id}/overall-score", h.updateReportScore},
		{http.MethodPatch, "/api/interview-reports/{id}/recommendations", h.updateReportRecommendations},
		{http.MethodPatch, "/api/interview-reports/{id}/company-report", h.updateCompanyReport},
		{http.MethodPatch, "/api/interview-reports/{id}/candidate-report", h.updateCandidateReport},
		{http.MethodDelete, "/api/interview-reports/{id}", h.deleteReport},
	}
}

func (h *Handler) createReport(r *http.Request, _ map[string]string) (int, any, error) {
	var in domain.CreateInterviewReport
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}

	ctx := r.Context()
	if err := h.verifier.Ensure(ctx, verify.Interview(in.InterviewID)); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.Create(ctx, &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_created", map[string]any{"report": rep})
	return http.StatusCreated, rep, nil
}

func (h *Handler) listReports(r *http.Request, _ map[string]string) (int, any, error) {
	list, err := h.Reports.FindAll(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) reportsByInterview(r *http.Request, params map[string]string) (int, any, error) {
	ctx := r.Context()
	interviewID := params["interviewId"]
	if err := h.verifier.Ensure(ctx, verify.Interview(interviewID)); err != nil {
		return 0, nil, err
	}
	list, err := h.Reports.FindByInterview(ctx, interviewID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) getReport(r *http.Request, params map[string]string) (int, any, error) {
	rep, err := h.Reports.FindOne(r.Context(), params["id"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, rep, nil
}

func (h *Handler) updateReport(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateInterviewReport
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.Update(r.Context(), params["id"], &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_updated", map[string]any{"report": rep})
	return http.StatusOK, rep, nil
}

func (h *Handler) updateReportScore(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateOverallScore
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.UpdateOverallScore(r.Context(), params["id"], *in.OverallScore)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_score_updated", map[string]any{
		"report_id":     rep.ReportID,
		"overall_score": rep.OverallScore,
	})
	return http.StatusOK, rep, nil
}

func (h *Handler) updateReportRecommendations(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateRecommendations
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.UpdateRecommendations(r.Context(), params["id"], in.Recommendations)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_recommendations_updated", map[string]any{
		"report_id":       rep.ReportID,
		"recommendations": in.Recommendations,
	})
	return http.StatusOK, rep, nil
}

func (h *Handler) updateCompanyReport(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateCompanyReport
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.UpdateCompanyReport(r.Context(), params["id"], in.CompanyReport)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_company_report_updated", map[string]any{
		"report_id":      rep.ReportID,
		"company_report": rep.CompanyReport,
	})
	return http.StatusOK, rep, nil
}

func (h *Handler) updateCandidateReport(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateCandidateReport
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	rep, err := h.Reports.UpdateCandidateReport(r.Context(), params["id"], in.CandidateReport)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_candidate_report_updated", map[string]any{
		"report_id":        rep.ReportID,
		"candidate_report": rep.CandidateReport,
	})
	return http.StatusOK, rep, nil
}

func (h *Handler) deleteReport(r *http.Request, params map[string]string) (int, any, error) {
	id := params["id"]
	if _, err := h.Reports.Remove(r.Context(), id); err != nil {
		return 0, nil, err
	}

	h.notify("interview_report_deleted", map[string]any{"report_id": id})
	return http.StatusOK, deleted(h.Reports.Name()), nil
}
