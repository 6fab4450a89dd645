package handler

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"interview-service/internal/domain"
	"interview-service/internal/utils/sse"
	"interview-service/pkg/broker"
	logging "interview-service/pkg/logger/pkg"
)

// Events lists every notification this service emits.
var Events = []string{
	"interview_config_created",
	"interview_config_updated",
	"interview_config_deleted",
	"interview_created",
	"interview_updated",
	"interview_status_updated",
	"interview_deleted",
	"interview_result_created",
	"interview_result_updated",
	"interview_result_rating_updated",
	"interview_result_feedback_updated",
	"interview_result_deleted",
	"interview_report_created",
	"interview_report_updated",
	"interview_report_score_updated",
	"interview_report_recommendations_updated",
	"interview_report_company_report_updated",
	"interview_report_candidate_report_updated",
	"interview_report_deleted",
	"question_created",
	"question_updated",
	"question_deleted",
}

type existsReply struct {
	Exists bool `json:"exists"`
}

// RegisterBus wires the request/reply responders and the event subscribers.
func (h *Handler) RegisterBus(srv broker.Server) {
	srv.HandleMessage("verify_config", h.responder(h.Configs.Exists))
	srv.HandleMessage("verify_interview", h.responder(h.Interviews.Exists))
	srv.HandleMessage("verify_result", h.responder(h.Results.Exists))
	srv.HandleMessage("verify_report", h.responder(h.Reports.Exists))
	srv.HandleMessage("verify_question", h.responder(h.Questions.Exists))

	srv.HandleMessage("get_config_by_enterprise_and_role", h.configByEnterpriseAndRole)
	srv.HandleMessage("get_questions_by_role_and_seniority", h.questionsByRoleAndSeniorityMessage)

	for _, pattern := range Events {
		srv.HandleEvent(pattern, h.onEvent(pattern))
	}
}

// responder answers {exists} for a bare id or {"id": ...}. It never fails.
func (h *Handler) responder(exists func(context.Context, string) bool) broker.Handler {
	return func(ctx context.Context, data json.RawMessage) (any, error) {
		id, ok := idFromPayload(data)
		if !ok {
			return existsReply{Exists: false}, nil
		}
		return existsReply{Exists: exists(ctx, id)}, nil
	}
}

func idFromPayload(data json.RawMessage) (string, bool) {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		return id, true
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.ID != "" {
		return obj.ID, true
	}
	return "", false
}

type configLookupReply struct {
	Config  []*domain.InterviewConfig `json:"config"`
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
}

func (h *Handler) configByEnterpriseAndRole(ctx context.Context, data json.RawMessage) (any, error) {
	var req struct {
		EnterpriseID string `json:"enterpriseId"`
		RoleID       string `json:"roleId"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return configLookupReply{Error: err.Error()}, nil
	}
	list, err := h.Configs.FindByEnterpriseAndRole(ctx, req.EnterpriseID, req.RoleID)
	if err != nil {
		return configLookupReply{Error: err.Error()}, nil
	}
	return configLookupReply{Config: list, Success: true}, nil
}

type questionLookupReply struct {
	Questions []*domain.Question `json:"questions"`
	Success   bool               `json:"success"`
	Error     string             `json:"error,omitempty"`
}

func (h *Handler) questionsByRoleAndSeniorityMessage(ctx context.Context, data json.RawMessage) (any, error) {
	var req struct {
		RoleID      string `json:"roleId"`
		SeniorityID string `json:"seniorityId"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return questionLookupReply{Questions: []*domain.Question{}, Error: err.Error()}, nil
	}
	list, err := h.Questions.FindByRoleAndSeniority(ctx, req.RoleID, req.SeniorityID)
	if err != nil {
		return questionLookupReply{Questions: []*domain.Question{}, Error: err.Error()}, nil
	}
	return questionLookupReply{Questions: list, Success: true}, nil
}

// onEvent logs a notification and fans it out to SSE subscribers.
func (h *Handler) onEvent(pattern string) broker.EventHandler {
	return func(ctx context.Context, data json.RawMessage) error {
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		delivered := sse.Broadcast(sse.Event{
			"pattern": pattern,
			"data":    payload,
		})
		logging.Logger(ctx).Info("Received notification",
			zap.String("pattern", pattern),
			zap.Int("subscribers", delivered))
		return nil
	}
}
