package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/middlewares"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// TodoCreator defines the interface that the service must implement.
type TodoCreator interface {
	Create(ctx context.Context, userID int64, title, description string, isCompleted bool) (*models.TodoDB, error)
}

// CreateTodoRequest represents the JSON body for creating a todo
// swagger:model CreateTodoRequest
type CreateTodoRequest struct {
	// Title of the todo item
	// example: Buy milk
	Title string `json:"title"`

	// Detailed description
	// example: Two liters, lactose free
	Description string `json:"description"`

	// Completion flag, defaults to false
	// example: false
	IsCompleted bool `json:"isCompleted"`
}

// NewTodoCreateHandler returns an HTTP handler creating a todo for the caller.
// @Summary Create todo
// @Description Creates a new todo item owned by the authenticated user
// @Tags todo
// @Accept json
// @Produce json
// @Param createTodoRequest body handlers.CreateTodoRequest true "Todo to create"
// @Success 201 {object} models.TodoDB "Created todo item"
// @Failure 400 {object} handlers.TodoErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.TodoErrorResponse "Unauthorized"
// @Router /api/todo [post]
// @Security BearerAuth
func NewTodoCreateHandler(svc TodoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set("Content-Type", "application/json")

		claims := middlewares.GetClaimsFromContext(ctx)
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Unauthorized"})
			return
		}

		var req CreateTodoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Invalid request body"})
			return
		}

		todo, err := svc.Create(ctx, claims.UserID, req.Title, req.Description, req.IsCompleted)
		if err != nil {
			logger.Log.Errorw("failed to create todo", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TodoErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/api/todo/%d", todo.ID))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(todo)
	}
}
