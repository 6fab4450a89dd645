package handler

import (
	"net/http"

	"interview-service/internal/domain"
	"interview-service/internal/verify"
)

func (h *Handler) questionRoutes() []endpoint {
	return []endpoint{
		{http.MethodPost, "/api/questions", h.createQuestion},
		{http.MethodGet, "/api/questions", h.listQuestions},
		{http.MethodGet, "/api/questions/role/{roleId}/seniority/{seniorityId}", h.questionsByRoleAndSeniority},
		{http.MethodGet, "/api/questions/{id}", h.getQuestion},
		{http.MethodPatch, "/api/questions/{id}", h.updateQuestion},
		{http.MethodDelete, "/api/questions/{id}", h.deleteQuestion},
	}
}

func (h *Handler) createQuestion(r *http.Request, _ map[string]string) (int, any, error) {
	var in domain.CreateQuestion
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}

	ctx := r.Context()
	if err := h.verifier.Ensure(ctx, verify.JobRole(in.JobRoleID), verify.SeniorityLevel(in.SeniorityID)); err != nil {
		return 0, nil, err
	}
	q, err := h.Questions.Create(ctx, &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("question_created", map[string]any{"question": q})
	return http.StatusCreated, q, nil
}

func (h *Handler) listQuestions(r *http.Request, _ map[string]string) (int, any, error) {
	list, err := h.Questions.FindAll(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) questionsByRoleAndSeniority(r *http.Request, params map[string]string) (int, any, error) {
	ctx := r.Context()
	roleID, seniorityID := params["roleId"], params["seniorityId"]
	if err := h.verifier.Ensure(ctx, verify.JobRole(roleID), verify.SeniorityLevel(seniorityID)); err != nil {
		return 0, nil, err
	}
	list, err := h.Questions.FindByRoleAndSeniority(ctx, roleID, seniorityID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) getQuestion(r *http.Request, params map[string]string) (int, any, error) {
	q, err := h.Questions.FindOne(r.Context(), params["id"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, q, nil
}

func (h *Handler) updateQuestion(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateQuestion
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	q, err := h.Questions.Update(r.Context(), params["id"], &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("question_updated", map[string]any{"question": q})
	return http.StatusOK, q, nil
}

func (h *Handler) deleteQuestion(r *http.Request, params map[string]string) (int, any, error) {
	id := params["id"]
	if _, err := h.Questions.Remove(r.Context(), id); err != nil {
		return 0, nil, err
	}

	h.notify("question_deleted", map[string]any{"question_id": id})
	return http.StatusOK, deleted(h.Questions.Name()), nil
}
