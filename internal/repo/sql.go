package repo

import (
	"context"
	stdsql "database/sql"

	entsql "entgo.io/ent/dialect/sql"
)

// SQLStore is a Store over an ent SQL driver. Queries are built with ent's
// dialect builder so the same code serves MySQL and Postgres.
type SQLStore[T any] struct {
	drv   *entsql.Driver
	table *Table[T]
}

func NewSQLStore[T any](drv *entsql.Driver, table *Table[T]) *SQLStore[T] {
	return &SQLStore[T]{drv: drv, table: table}
}

func (s *SQLStore[T]) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

func (s *SQLStore[T]) Create(ctx context.Context, v *T) error {
	query, args := s.builder().
		Insert(s.table.Name).
		Columns(s.table.Columns...).
		Values(s.table.Values(v)...).
		Query()
	return s.drv.Exec(ctx, query, args, nil)
}

func (s *SQLStore[T]) Get(ctx context.Context, id string) (*T, error) {
	rows, err := s.Find(ctx, Eq(s.table.Key, id))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

func (s *SQLStore[T]) List(ctx context.Context) ([]*T, error) {
	return s.Find(ctx)
}

func (s *SQLStore[T]) Find(ctx context.Context, conds ...Cond) ([]*T, error) {
	b := s.builder()
	selector := b.Select(s.table.Columns...).
		From(b.Table(s.table.Name)).
		OrderBy("created_at", s.table.Key)
	if len(conds) > 0 {
		preds := make([]*entsql.Predicate, 0, len(conds))
		for _, c := range conds {
			preds = append(preds, entsql.EQ(c.Column, c.Value))
		}
		selector.Where(entsql.And(preds...))
	}
	query, args := selector.Query()

	rows := &entsql.Rows{}
	if err := s.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*T{}
	for rows.Next() {
		v := new(T)
		if err := rows.Scan(s.table.Dest(v)...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLStore[T]) Save(ctx context.Context, v *T) error {
	values := s.table.Values(v)
	update := s.builder().Update(s.table.Name)
	for i, col := range s.table.Columns {
		if col == s.table.Key {
			continue
		}
		update.Set(col, values[i])
	}
	query, args := update.Where(entsql.EQ(s.table.Key, s.table.ID(v))).Query()
	return s.execOne(ctx, query, args)
}

func (s *SQLStore[T]) Delete(ctx context.Context, id string) error {
	query, args := s.builder().
		Delete(s.table.Name).
		Where(entsql.EQ(s.table.Key, id)).
		Query()
	return s.execOne(ctx, query, args)
}

// execOne runs a statement that must touch a row, ErrNotFound otherwise.
func (s *SQLStore[T]) execOne(ctx context.Context, query string, args []any) error {
	var res stdsql.Result
	if err := s.drv.Exec(ctx, query, args, &res); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
