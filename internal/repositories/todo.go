package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// TodoReadRepository handles todo read operations
type TodoReadRepository struct {
	db *sqlx.DB
}

func NewTodoReadRepository(db *sqlx.DB) *TodoReadRepository {
	return &TodoReadRepository{db: db}
}

// ListByUserID returns all todos owned by the given user in store-native order.
func (r *TodoReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TodoDB, error) {
	const query = `
		SELECT id, title, description, is_completed, user_id, created_at, updated_at
		FROM todos
		WHERE user_id = $1
	`

	todos := make([]models.TodoDB, 0)
	err := r.db.SelectContext(ctx, &todos, query, userID)

	logger.Log.Infow("todo read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(todos),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return todos, nil
}

// GetByID returns the todo with the given id owned by the given user.
// Returns (nil, nil) when no such row exists, including rows owned by
// a different user.
func (r *TodoReadRepository) GetByID(ctx context.Context, id, userID int64) (*models.TodoDB, error) {
	const query = `
		SELECT id, title, description, is_completed, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2
	`

	var todo models.TodoDB
	err := r.db.GetContext(ctx, &todo, query, id, userID)

	logger.Log.Infow("todo read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &todo, nil
}

// TodoWriteRepository handles todo write operations
type TodoWriteRepository struct {
	db *sqlx.DB
}

func NewTodoWriteRepository(db *sqlx.DB) *TodoWriteRepository {
	return &TodoWriteRepository{db: db}
}

// Save inserts a new todo for the given user and returns the stored record.
func (r *TodoWriteRepository) Save(ctx context.Context, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error) {
	const query = `
		INSERT INTO todos (title, description, is_completed, user_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, title, description, is_completed, user_id, created_at, updated_at
	`
	args := []any{title, description, isCompleted, userID}

	var todo models.TodoDB
	err := r.db.GetContext(ctx, &todo, query, args...)

	logger.Log.Infow("todo write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

// Update overwrites title, description and the completion flag of the todo
// owned by the given user, stamping updated_at. Returns (nil, nil) when the
// row no longer exists.
func (r *TodoWriteRepository) Update(ctx context.Context, id, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error) {
	const query = `
		UPDATE todos
		SET title = $3, description = $4, is_completed = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, is_completed, user_id, created_at, updated_at
	`
	args := []any{id, userID, title, description, isCompleted}

	var todo models.TodoDB
	err := r.db.GetContext(ctx, &todo, query, args...)

	logger.Log.Infow("todo write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &todo, nil
}

// Delete removes the todo owned by the given user. Returns false when no
// row was deleted.
func (r *TodoWriteRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	const query = `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
	`
	args := []any{id, userID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("todo write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
