package extractor

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

type Extractor interface {
	Get(ctx context.Context, name string) []string
	GetFirst(ctx context.Context, name string) string
	GetRequestID(ctx context.Context) string
	GetXForwardedFor(ctx context.Context) string
}

type extractor struct {
}

func New() Extractor {
	return &extractor{}
}

func (t *extractor) Get(ctx context.Context, name string) []string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	return md.Get(name)
}

func (t *extractor) GetFirst(ctx context.Context, name string) string {
	values := t.Get(ctx, name)
	if len(values) == 0 {
		return ""
	}

	return values[0]
}

func (t *extractor) GetRequestID(ctx context.Context) string {
	return t.GetFirst(ctx, RequestID)
}

func (t *extractor) GetXForwardedFor(ctx context.Context) string {
	values := t.Get(ctx, XForwardedFor)
	if len(values) == 0 {
		return ""
	}

	return strings.Join(values[:], ",")
}

// FromRequest copies the x-* headers of req into incoming metadata and makes
// sure a request id is present, generating one when the caller sent none.
func FromRequest(ctx context.Context, req *http.Request) (context.Context, string) {
	md := metadata.MD{}
	for name, values := range req.Header {
		lowerName := strings.ToLower(name)
		if strings.HasPrefix(lowerName, "x-") {
			md.Append(lowerName, values...)
		}
	}

	ctx = metadata.NewIncomingContext(ctx, md)
	if requestID := New().GetRequestID(ctx); requestID != "" {
		return ctx, requestID
	}
	requestID := uuid.NewString()
	md.Set(RequestID, requestID)
	return metadata.NewIncomingContext(ctx, md), requestID
}
