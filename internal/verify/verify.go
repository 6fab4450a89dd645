// Package verify asks the services owning foreign entities whether a
// referenced id exists before a write is accepted.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-service/internal/metrics"
	"interview-service/pkg/broker"
	logging "interview-service/pkg/logger/pkg"
)

// Reference names one foreign id and the query that checks it.
type Reference struct {
	Pattern  string
	ID       string
	Resource string
}

func Enterprise(id string) Reference {
	return Reference{Pattern: "verify_enterprise", ID: id, Resource: "Enterprise"}
}

func JobRole(id string) Reference {
	return Reference{Pattern: "verify_job_role", ID: id, Resource: "Job role"}
}

func SeniorityLevel(id string) Reference {
	return Reference{Pattern: "verify_seniority_level", ID: id, Resource: "Seniority level"}
}

func Application(id string) Reference {
	return Reference{Pattern: "verify_application", ID: id, Resource: "Application"}
}

func Interview(id string) Reference {
	return Reference{Pattern: "verify_interview", ID: id, Resource: "Interview"}
}

func Question(id string) Reference {
	return Reference{Pattern: "verify_question", ID: id, Resource: "Question"}
}

type Verifier struct {
	client  broker.Client
	timeout time.Duration
	logger  *zap.Logger
}

func New(client broker.Client, timeout time.Duration, logger *zap.Logger) *Verifier {
	return &Verifier{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// Ensure queries every reference concurrently and then checks the answers in
// the order given. The first missing reference fails with NotFound naming the
// resource; a bus failure or timeout fails with Unavailable.
func (v *Verifier) Ensure(ctx context.Context, refs ...Reference) error {
	if len(refs) == 0 {
		return nil
	}

	exists := make([]bool, len(refs))
	errs := make([]error, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			exists[i], errs[i] = v.exists(gctx, ref)
			// Keep the siblings running so every answer is known.
			return nil
		})
	}
	_ = g.Wait()

	for i, ref := range refs {
		if errs[i] != nil {
			metrics.VerifyRequests.WithLabelValues(ref.Pattern, metrics.OutcomeUnavailable).Inc()
			logging.Logger(ctx).Error("Reference verification failed",
				zap.String("pattern", ref.Pattern),
				zap.String("id", ref.ID),
				zap.Error(errs[i]))
			return status.Errorf(codes.Unavailable, "could not verify %s: %v", ref.Resource, errs[i])
		}
		if !exists[i] {
			metrics.VerifyRequests.WithLabelValues(ref.Pattern, metrics.OutcomeMissing).Inc()
			return status.Errorf(codes.NotFound, "%s not found", ref.Resource)
		}
		metrics.VerifyRequests.WithLabelValues(ref.Pattern, metrics.OutcomeFound).Inc()
	}
	return nil
}

func (v *Verifier) exists(ctx context.Context, ref Reference) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	raw, err := v.client.Send(ctx, ref.Pattern, ref.ID)
	if err != nil {
		return false, err
	}
	return ParseExists(raw), nil
}

// ParseExists reads a verification reply: a bare boolean or {"exists": bool}.
// Anything else counts as absent.
func ParseExists(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}

	var obj struct {
		Exists bool `json:"exists"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Exists
	}
	return false
}
