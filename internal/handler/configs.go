package handler

import (
	"net/http"

	"interview-service/internal/domain"
	"interview-service/internal/verify"
)

func (h *Handler) configRoutes() []endpoint {
	return []endpoint{
		{http.MethodPost, "/api/interview-configs", h.createConfig},
		{http.MethodGet, "/api/interview-configs", h.listConfigs},
		{http.MethodGet, "/api/interview-configs/enterprise/{enterpriseId}/role/{roleId}", h.configsByEnterpriseAndRole},
		{http.MethodGet, "/api/interview-configs/{id}", h.getConfig},
		{http.MethodPatch, "/api/interview-configs/{id}", h.updateConfig},
		{http.MethodDelete, "/api/interview-configs/{id}", h.deleteConfig},
	}
}

func (h *Handler) createConfig(r *http.Request, _ map[string]string) (int, any, error) {
	var in domain.CreateInterviewConfig
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}

	ctx := r.Context()
	if err := h.verifier.Ensure(ctx, verify.Enterprise(in.EnterpriseID), verify.JobRole(in.JobRoleID)); err != nil {
		return 0, nil, err
	}
	c, err := h.Configs.Create(ctx, &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_config_created", map[string]any{"config": c})
	return http.StatusCreated, c, nil
}

func (h *Handler) listConfigs(r *http.Request, _ map[string]string) (int, any, error) {
	list, err := h.Configs.FindAll(r.Context())
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) configsByEnterpriseAndRole(r *http.Request, params map[string]string) (int, any, error) {
	ctx := r.Context()
	enterpriseID, roleID := params["enterpriseId"], params["roleId"]
	if err := h.verifier.Ensure(ctx, verify.Enterprise(enterpriseID), verify.JobRole(roleID)); err != nil {
		return 0, nil, err
	}
	list, err := h.Configs.FindByEnterpriseAndRole(ctx, enterpriseID, roleID)
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, list, nil
}

func (h *Handler) getConfig(r *http.Request, params map[string]string) (int, any, error) {
	c, err := h.Configs.FindOne(r.Context(), params["id"])
	if err != nil {
		return 0, nil, err
	}
	return http.StatusOK, c, nil
}

func (h *Handler) updateConfig(r *http.Request, params map[string]string) (int, any, error) {
	var in domain.UpdateInterviewConfig
	if err := decode(r, &in); err != nil {
		return 0, nil, err
	}
	c, err := h.Configs.Update(r.Context(), params["id"], &in)
	if err != nil {
		return 0, nil, err
	}

	h.notify("interview_config_updated", map[string]any{"config": c})
	return http.StatusOK, c, nil
}

func (h *Handler) deleteConfig(r *http.Request, params map[string]string) (int, any, error) {
	id := params["id"]
	if _, err := h.Configs.Remove(r.Context(), id); err != nil {
		return 0, nil, err
	}

	h.notify("interview_config_deleted", map[string]any{"config_id": id})
	return http.StatusOK, deleted(h.Configs.Name()), nil
}
