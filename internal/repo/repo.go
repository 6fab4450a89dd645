package repo

import (
	"context"
	"errors"

	entsql "entgo.io/ent/dialect/sql"

	"interview-service/internal/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store persists one entity type keyed by a string id.
type Store[T any] interface {
	Create(ctx context.Context, v *T) error
	Get(ctx context.Context, id string) (*T, error)
	// List returns every row in storage order.
	List(ctx context.Context) ([]*T, error)
	// Find returns the rows matching every condition, in storage order.
	Find(ctx context.Context, conds ...Cond) ([]*T, error)
	Save(ctx context.Context, v *T) error
	Delete(ctx context.Context, id string) error
}

// Cond is a column equality filter.
type Cond struct {
	Column string
	Value  any
}

func Eq(column string, value any) Cond {
	return Cond{Column: column, Value: value}
}

type Repository struct {
	Configs    Store[domain.InterviewConfig]
	Interviews Store[domain.Interview]
	Results    Store[domain.InterviewResult]
	Reports    Store[domain.InterviewReport]
	Questions  Store[domain.Question]

	drv *entsql.Driver
}

func New(drv *entsql.Driver) *Repository {
	return &Repository{
		Configs:    NewSQLStore(drv, ConfigTable),
		Interviews: NewSQLStore(drv, InterviewTable),
		Results:    NewSQLStore(drv, ResultTable),
		Reports:    NewSQLStore(drv, ReportTable),
		Questions:  NewSQLStore(drv, QuestionTable),
		drv:        drv,
	}
}

func NewMemory() *Repository {
	return &Repository{
		Configs:    NewMemoryStore(ConfigTable),
		Interviews: NewMemoryStore(InterviewTable),
		Results:    NewMemoryStore(ResultTable),
		Reports:    NewMemoryStore(ReportTable),
		Questions:  NewMemoryStore(QuestionTable),
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if r.drv == nil {
		return nil
	}
	return r.drv.DB().PingContext(ctx)
}

func (r *Repository) Close() error {
	if r.drv == nil {
		return nil
	}
	return r.drv.Close()
}
