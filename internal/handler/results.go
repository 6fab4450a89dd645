package handler

import (
	"net/http"

	"interview-service/internal/domain"
	"interview-service/internal/verify"
)

func (h *Handler) resultRoutes() []endpoint {
	return []endpoint{
		{http.MethodPost, "/api/interview-results", h.createResult},
		{http.MethodGet, "/api/interview-results", h.listResults},
		{http.MethodGet, "/api/interview-results/interview/{interviewId}", h.resultsByInterview},
		{http.MethodGet, "/api/interview-results/{id}", h.getResult},
		{http.MethodPatch, "/api/interview-results/{id}", h.updateResult},
		{http.MethodPatch, "/api/interview-results/{id}/rating", h.updateResultRating},
		{http.MethodPatch, "/api/interview-results/{id}/feedback", h.updateResultFeedback},
		{http.MethodDelete, "/api/interview-results/{id}", h.deleteResult},
	}
}

func (h *Handler) createResult(r *http.Request, _ map[string]string) (int, any, error) {
	var in domain.CreateInterviewResult
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}

	ctx := r.Context()
	if err := h.verifier.Ensure(ctx, verify.Interview(in.InterviewID), verify.Question(in.QuestionID)); err != nil {
		return 0, nil, err
	}
	res, err := h.Results.Create(ctx, &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_result_created", map[string]any{"result": res})
	return http.StatusCreated, res, nil
}

func (h *Handler) listResults(r *http.Request, _ map[string]string) (int, any, error) {
	list, err := h.Results.FindAll(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) resultsByInterview(r *http.Request, params map[string]string) (int, any, error) {
	ctx := r.Context()
	interviewID := params["interviewId"]
	if err := h.verifier.Ensure(ctx, verify.Interview(interviewID)); err != nil {
		return 0, nil, err
	}
	list, err := h.Results.FindByInterview(ctx, interviewID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) getResult(r *http.Request, params map[string]string) (int, any, error) {
	res, err := h.Results.FindOne(r.Context(), params["id"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, res, nil
}

func (h *Handler) updateResult(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateInterviewResult
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	res, err := h.Results.Update(r.Context(), params["id"], &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_result_updated", map[string]any{"result": res})
	return http.StatusOK, res, nil
}

func (h *Handler) updateResultRating(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateRating
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	res, err := h.Results.UpdateRating(r.Context(), params["id"], int(in.Rating))
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_result_rating_updated", map[string]any{
		"result_id": res.ResultID,
		"rating":    res.Rating,
	})
	return http.StatusOK, res, nil
}

func (h *Handler) updateResultFeedback(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateFeedback
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	res, err := h.Results.UpdateAiFeedback(r.Context(), params["id"], in.AiFeedback)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_result_feedback_updated", map[string]any{
		"result_id": res.ResultID,
		"feedback":  in.AiFeedback,
	})
	return http.StatusOK, res, nil
}

func (h *Handler) deleteResult(r *http.Request, params map[string]string) (int, any, error) {
	id := params["id"]
	if _, err := h.Results.Remove(r.Context(), id); err != nil {
		return 0, nil, err
	}

	h.notify("interview_result_deleted", map[string]any{"result_id": id})
	return http.StatusOK, deleted(h.Results.Name()), nil
}
