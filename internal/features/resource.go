package features

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"interview-service/internal/domain"
	"interview-service/internal/repo"
	logging "interview-service/pkg/logger/pkg"
)

// now stamps created_at in the precision storage keeps, so a created record
// equals the one read back.
var now = func() time.Time {
	return domain.Timestamp(time.Now())
}

// Resource is the CRUD core shared by every module.
type Resource[T any] struct {
	name   string
	store  repo.Store[T]
	logger *zap.Logger
}

func NewResource[T any](name string, store repo.Store[T], logger *zap.Logger) *Resource[T] {
	return &Resource[T]{
		name:   name,
		store:  store,
		logger: logger,
	}
}

// Name is the human label used in error messages, e.g. "Interview config".
func (r *Resource[T]) Name() string {
	return r.name
}

func (r *Resource[T]) log(ctx context.Context) *zap.Logger {
	if id := logging.RequestID(ctx); id != "" {
		return r.logger.With(zap.String(logging.XRequestIDHeader(), id))
	}
	return r.logger
}

func (r *Resource[T]) NotFound(id string) error {
	return status.Errorf(codes.NotFound, "%s with ID %s not found", r.name, id)
}

func (r *Resource[T]) internal(ctx context.Context, op string, err error) error {
	r.log(ctx).Error("Store operation failed",
		zap.String("resource", r.name),
		zap.String("op", op),
		zap.Error(err))
	return status.Errorf(codes.Internal, "failed to %s %s", op, strings.ToLower(r.name))
}

func (r *Resource[T]) Create(ctx context.Context, v *T) (*T, error) {
	if err := r.store.Create(ctx, v); err != nil {
		return nil, r.internal(ctx, "create", err)
	}
	return v, nil
}

func (r *Resource[T]) FindAll(ctx context.Context) ([]*T, error) {
	rows, err := r.store.List(ctx)
	if err != nil {
		return nil, r.internal(ctx, "list", err)
	}
	return rows, nil
}

// FindOne returns NotFound for any id that does not name a stored record,
// including ids that are not UUIDs at all.
func (r *Resource[T]) FindOne(ctx context.Context, id string) (*T, error) {
	if uuid.Validate(id) != nil {
		return nil, r.NotFound(id)
	}
	v, err := r.store.Get(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, r.NotFound(id)
	}
	if err != nil {
		return nil, r.internal(ctx, "get", err)
	}
	return v, nil
}

// FindBy filters on UUID columns. A malformed filter value matches nothing.
func (r *Resource[T]) FindBy(ctx context.Context, conds ...repo.Cond) ([]*T, error) {
	for _, c := range conds {
		if s, ok := c.Value.(string); ok && uuid.Validate(s) != nil {
			return []*T{}, nil
		}
	}
	rows, err := r.store.Find(ctx, conds...)
	if err != nil {
		return nil, r.internal(ctx, "find", err)
	}
	return rows, nil
}

// Update loads the record, applies fn and saves it back.
func (r *Resource[T]) Update(ctx context.Context, id string, fn func(*T)) (*T, error) {
	v, err := r.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(v)
	err = r.store.Save(ctx, v)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, r.NotFound(id)
	}
	if err != nil {
		return nil, r.internal(ctx, "update", err)
	}
	return v, nil
}

// Remove deletes the record and returns it as it was.
func (r *Resource[T]) Remove(ctx context.Context, id string) (*T, error) {
	v, err := r.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	err = r.store.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, r.NotFound(id)
	}
	if err != nil {
		return nil, r.internal(ctx, "delete", err)
	}
	return v, nil
}

// Exists never fails; lookup errors count as absent.
func (r *Resource[T]) Exists(ctx context.Context, id string) bool {
	_, err := r.FindOne(ctx, id)
	if err != nil && status.Code(err) != codes.NotFound {
		r.log(ctx).Warn("Existence check failed", zap.String("resource", r.name), zap.String("id", id), zap.Error(err))
	}
	return err == nil
}
