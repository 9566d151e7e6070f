package todoapp

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Todos is the persistence surface for to-do items. Every operation is
// scoped to an owner so one user can never see or touch another's
// items.
type Todos interface {
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]*TodoItem, error)
	Create(ctx context.Context, item *TodoItem) (*TodoItem, error)
	DeleteByIDForOwner(ctx context.Context, id int64, owner uuid.UUID) (*TodoItem, error)
}

type todos struct {
	db *bun.DB
}

var _ Todos = (*todos)(nil)

func NewTodosRepository(db *bun.DB) Todos {
	return &todos{db: db}
}

func (t *todos) ListByOwner(ctx context.Context, owner uuid.UUID) ([]*TodoItem, error) {
	items := []*TodoItem{}
	err := t.db.NewSelect().
		Model(&items).
		Where("?TableAlias.user_id = ?", owner).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (t *todos) Create(ctx context.Context, item *TodoItem) (*TodoItem, error) {
	if _, err := t.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteByIDForOwner removes an item and returns it. A missing id, or
// an id owned by someone else, yields ErrTodoNotFound rather than an
// internal failure.
func (t *todos) DeleteByIDForOwner(ctx context.Context, id int64, owner uuid.UUID) (*TodoItem, error) {
	item := &TodoItem{}
	err := t.db.NewSelect().
		Model(item).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.user_id = ?", owner).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, err
	}

	_, err = t.db.NewDelete().
		Model((*TodoItem)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", owner).
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	return item, nil
}
