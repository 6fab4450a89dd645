package handler

import (
	"net/http"

	"interview-service/internal/domain"
	"interview-service/internal/verify"
)

func (h *Handler) interviewRoutes() []endpoint {
	return []endpoint{
		{http.MethodPost, "/api/interviews", h.createInterview},
		{http.MethodGet, "/api/interviews", h.listInterviews},
		{http.MethodGet, "/api/interviews/application/{applicationId}", h.interviewByApplication},
		{http.MethodGet, "/api/interviews/{id}", h.getInterview},
		{http.MethodPatch, "/api/interviews/{id}", h.updateInterview},
		{http.MethodPatch, "/api/interviews/{id}/status", h.updateInterviewStatus},
		{http.MethodDelete, "/api/interviews/{id}", h.deleteInterview},
	}
}

func (h *Handler) createInterview(r *http.Request, _ map[string]string) (int, any, error) {
	var in domain.CreateInterview
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}

	ctx := r.Context()
	if err := h.verifier.Ensure(ctx, verify.Application(in.ApplicationID)); err != nil {
		return 0, nil, err
	}
	i, err := h.Interviews.Create(ctx, &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_created", map[string]any{"interview": i})
	return http.StatusCreated, i, nil
}

func (h *Handler) listInterviews(r *http.Request, _ map[string]string) (int, any, error) {
	list, err := h.Interviews.FindAll(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) interviewByApplication(r *http.Request, params map[string]string) (int, any, error) {
	ctx := r.Context()
	applicationID := params["applicationId"]
	if err := h.verifier.Ensure(ctx, verify.Application(applicationID)); err != nil {
		return 0, nil, err
	}
	i, err := h.Interviews.FindByApplication(ctx, applicationID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, i, nil
}

func (h *Handler) getInterview(r *http.Request, params map[string]string) (int, any, error) {
	i, err := h.Interviews.FindOne(r.Context(), params["id"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, i, nil
}

func (h *Handler) updateInterview(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateInterview
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	i, err := h.Interviews.Update(r.Context(), params["id"], &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_updated", map[string]any{"interview": i})
	return http.StatusOK, i, nil
}

func (h *Handler) updateInterviewStatus(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateInterviewStatus
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	i, err := h.Interviews.UpdateStatus(r.Context(), params["id"], in.Status)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_status_updated", map[string]any{
		"interview_id": i.InterviewID,
		"status":       i.Status,
	})
	return http.StatusOK, i, nil
}

func (h *Handler) deleteInterview(r *http.Request, params map[string]string) (int, any, error) {
	id := params["id"]
	if _, err := h.Interviews.Remove(r.Context(), id); err != nil {
		return 0, nil, err
	}

	h.notify("interview_deleted", map[string]any{"interview_id": id})
	return http.StatusOK, deleted(h.Interviews.Name()), nil
}
